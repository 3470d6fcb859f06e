// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config captures settings which can be supplied through a configuration file,
// rather than on the command line.  Command-line flags take precedence over
// any value given here.
type Config struct {
	// Logging level (e.g. "info", "debug" or "trace").
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Pipeline settings used by the amplify and search commands.
	Pipeline Pipeline `toml:"pipeline" yaml:"pipeline"`
	// Search settings.
	Search Search `toml:"search" yaml:"search"`
}

// Pipeline identifies the topology and initial input of a pipeline.
type Pipeline struct {
	// Topology name, either "linear" or "ring".
	Topology string `toml:"topology" yaml:"topology"`
	// Initial input given to the first machine.
	Input int64 `toml:"input" yaml:"input"`
	// Phase settings, one per machine.
	Phases []int64 `toml:"phases" yaml:"phases"`
}

// Search identifies the candidate phase values and level of parallelism for a
// phase search.
type Search struct {
	Candidates []int64 `toml:"candidates" yaml:"candidates"`
	// Maximum number of pipelines evaluated concurrently (0 means one per CPU).
	Workers uint `toml:"workers" yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Pipeline: Pipeline{Topology: "linear"},
	}
}

// Load reads a configuration file, using a parser chosen by the extension of
// the filename.  Values not given in the file retain their defaults.
func Load(filename string) (Config, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	//
	return Parse(path.Ext(filename), bytes)
}

// Parse a configuration from a given set of bytes, where the extension
// determines the expected format.
func Parse(ext string, bytes []byte) (Config, error) {
	var cfg = Default()
	//
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(bytes), &cfg); err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown config file format: %s", ext)
	}
	//
	return cfg, nil
}

// ApplyEnvOverrides overrides settings with those given in the environment
// (if any).  These take precedence over the configuration file, but not over
// command-line flags.
func (c *Config) ApplyEnvOverrides() error {
	if level := os.Getenv("INTCODE_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	//
	if topology := os.Getenv("INTCODE_TOPOLOGY"); topology != "" {
		c.Pipeline.Topology = topology
	}
	//
	if workers := os.Getenv("INTCODE_WORKERS"); workers != "" {
		n, err := strconv.ParseUint(workers, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid INTCODE_WORKERS \"%s\"", workers)
		}
		//
		c.Search.Workers = uint(n)
	}
	//
	return nil
}
