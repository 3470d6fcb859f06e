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

	"github.com/consensys/go-intcode/pkg/vm/machine"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var patchCmd = &cobra.Command{
	Use:   "patch [flags] program.txt",
	Short: "Find the noun and verb producing a given result.",
	Long: `Search for a noun and verb which, when stored at addresses 1 and 2 respectively, cause
the program to halt with the target value at address 0.  Reports 100 * noun + verb.`,
	Args: cobra.ExactArgs(1),
	Run:  runPatchCmd,
}

func runPatchCmd(cmd *cobra.Command, args []string) {
	var (
		prog   = readProgram(args[0])
		target = getInt64(cmd, "target")
		limit  = getInt64(cmd, "limit")
	)
	//
	noun, verb, err := machine.FindPatch(prog, memory.Word(target), memory.Word(limit))
	//
	if err != nil {
		log.Error(err)
		os.Exit(4)
	}
	//
	log.Infof("noun %d verb %d", noun, verb)
	fmt.Println(100*noun + verb)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(patchCmd)
	patchCmd.Flags().Int64("target", 19690720, "value required at address 0 after halting")
	patchCmd.Flags().Int64("limit", 100, "exclusive upper bound for the noun and verb")
}
