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
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/consensys/go-intcode/pkg/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// Settings loaded from the configuration file (if any).
var settings = config.Default()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intcode",
	Short: "An interpreter for intcode programs.",
	Long:  "An interpreter (and general toolbox) for intcode programs, including pipelines of machines.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configure(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "version") {
			fmt.Print("intcode ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			_ = cmd.Help()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// Load the configuration file (if given) and apply environment overrides, then
// set the logging level.  Flags override whatever level these specify.
func configure(cmd *cobra.Command) {
	var err error
	//
	if filename := getString(cmd, "config"); filename != "" {
		if settings, err = config.Load(filename); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	if err = settings.ApplyEnvOverrides(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	switch {
	case getFlag(cmd, "trace"):
		level = log.TraceLevel
	case getFlag(cmd, "verbose"):
		level = log.DebugLevel
	}
	//
	log.SetLevel(level)
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("trace", false, "trace every executed instruction")
	rootCmd.PersistentFlags().String("config", "", "configuration file (.toml or .yaml)")
}
