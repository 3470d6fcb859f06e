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
	"strconv"
	"strings"

	"github.com/consensys/go-intcode/pkg/util/source"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	"github.com/consensys/go-intcode/pkg/vm/pipeline"
	"github.com/consensys/go-intcode/pkg/vm/program"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected 64bit integer, or panic if an error arises.
func getInt64(cmd *cobra.Command, flag string) int64 {
	r, err := cmd.Flags().GetInt64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected array of strings, or panic if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected comma-separated list of words, or panic if an error arises.
// An empty flag yields an empty list.
func getWords(cmd *cobra.Command, flag string) []memory.Word {
	text := getString(cmd, flag)
	//
	if strings.TrimSpace(text) == "" {
		return nil
	}
	//
	words, err := program.ParseString(text)
	if err != nil {
		fmt.Printf("invalid --%s: %s\n", flag, err)
		os.Exit(2)
	}
	//
	return words
}

// Get a list of words, either from a given flag (if set) or from the
// configuration file.
func getWordsOrDefault(cmd *cobra.Command, flag string, defaults []int64) []memory.Word {
	if cmd.Flags().Changed(flag) {
		return getWords(cmd, flag)
	}
	//
	words := make([]memory.Word, len(defaults))
	//
	for i, w := range defaults {
		words[i] = memory.Word(w)
	}
	//
	return words
}

// Get the initial pipeline input, either from the "input" flag (if set) or
// from the configuration file.
func getPipelineInput(cmd *cobra.Command) memory.Word {
	if !cmd.Flags().Changed("input") {
		return memory.Word(settings.Pipeline.Input)
	}
	//
	r, err := cmd.Flags().GetInt64("input")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return memory.Word(r)
}

// Determine the pipeline topology, where the "ring" flag (if set) overrides the
// configuration file and environment.
func getTopology(cmd *cobra.Command) pipeline.Topology {
	if cmd.Flags().Changed("ring") {
		if getFlag(cmd, "ring") {
			return pipeline.RING
		}
		//
		return pipeline.LINEAR
	}
	//
	topology, err := pipeline.ParseTopology(settings.Pipeline.Topology)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return topology
}

// Parse an assignment of the form "address=value".
func parseAssignment(text string) (memory.Word, memory.Word, error) {
	lhs, rhs, ok := strings.Cut(text, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid assignment \"%s\" (expected address=value)", text)
	}
	//
	address, err := strconv.ParseInt(strings.TrimSpace(lhs), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid address in \"%s\"", text)
	}
	//
	value, err := strconv.ParseInt(strings.TrimSpace(rhs), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid value in \"%s\"", text)
	}
	//
	return memory.Word(address), memory.Word(value), nil
}

// Read and parse a program file, exiting with an appropriate error code if
// either fails.
func readProgram(filename string) program.Program {
	file, err := source.ReadFile(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	prog, serr := program.Parse(file)
	if serr != nil {
		printSyntaxError(serr)
		os.Exit(3)
	}
	//
	return prog
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}
