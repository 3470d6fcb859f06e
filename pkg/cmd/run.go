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
	"strings"

	"github.com/consensys/go-intcode/pkg/util"
	"github.com/consensys/go-intcode/pkg/vm/machine"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] program.txt",
	Short: "Execute an intcode program.",
	Long: `Execute an intcode program until it halts, printing each output value on its own line.
Inputs are taken from --input first and then, with --interactive, read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run:  runRunCmd,
}

func runRunCmd(cmd *cobra.Command, args []string) {
	var (
		prog    = readProgram(args[0])
		inputs  = getWords(cmd, "input")
		options = []machine.Option{machine.Name(args[0]), machine.Inputs(inputs...)}
	)
	//
	if getFlag(cmd, "interactive") {
		prompt := term.IsTerminal(int(os.Stdin.Fd()))
		options = append(options, machine.WithInputProvider(newPrompter(os.Stdin, os.Stdout, prompt).Next))
	}
	//
	m := machine.New(prog, options...)
	// Apply patches
	for _, assignment := range getStringArray(cmd, "set") {
		address, value, err := parseAssignment(assignment)
		if err == nil {
			err = m.Store(address, value)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	}
	//
	stats := util.NewPerfStats()
	err := machine.Drive(m, func(value memory.Word) error {
		_, err := fmt.Println(value)
		return err
	})
	//
	stats.Log("Execution", m.Steps())
	//
	if err != nil {
		log.Error(err)
		os.Exit(4)
	}
	//
	if cmd.Flags().Changed("result-addr") {
		printResult(cmd, m)
	}
	//
	if getFlag(cmd, "dump") {
		dumpMemory(m)
	}
}

func printResult(cmd *cobra.Command, m *machine.Machine) {
	address, err := cmd.Flags().GetInt64("result-addr")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	value, err := m.Load(memory.Word(address))
	if err != nil {
		log.Error(err)
		os.Exit(4)
	}
	//
	fmt.Println(value)
}

func dumpMemory(m *machine.Machine) {
	var builder strings.Builder
	//
	for i, w := range m.Memory().Contents() {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		fmt.Fprintf(&builder, "%d", w)
	}
	//
	fmt.Println(builder.String())
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("input", "", "comma-separated input values (e.g. 1,2,3)")
	runCmd.Flags().StringArray("set", nil, "patch memory before execution (e.g. --set 1=12)")
	runCmd.Flags().BoolP("interactive", "i", false, "read further inputs from stdin")
	runCmd.Flags().Bool("dump", false, "print memory contents after halting")
	runCmd.Flags().Int64("result-addr", 0, "print memory at this address after halting")
}
