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

	"github.com/consensys/go-intcode/pkg/util"
	"github.com/consensys/go-intcode/pkg/vm/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var amplifyCmd = &cobra.Command{
	Use:   "amplify [flags] program.txt",
	Short: "Run a pipeline of machines with given phase settings.",
	Long: `Run a pipeline with one machine per phase setting, each executing the given program.
Every machine receives its phase setting as its first input, and the first machine then receives
the initial input.  The final signal is the last value output by the final machine.`,
	Args: cobra.ExactArgs(1),
	Run:  runAmplifyCmd,
}

func runAmplifyCmd(cmd *cobra.Command, args []string) {
	var (
		prog     = readProgram(args[0])
		phases   = getWordsOrDefault(cmd, "phases", settings.Pipeline.Phases)
		topology = getTopology(cmd)
		input    = getPipelineInput(cmd)
	)
	//
	if len(phases) == 0 {
		fmt.Println("no phase settings given (use --phases)")
		os.Exit(2)
	}
	//
	p, err := pipeline.New(prog, topology, uint(len(phases)))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	for i, phase := range phases {
		p.Seed(uint(i), phase)
	}
	//
	p.Seed(0, input)
	//
	stats := util.NewPerfStats()
	signal, err := p.Run()
	//
	stats.Log("Pipeline", p.Steps())
	//
	if err != nil {
		log.Error(err)
		os.Exit(4)
	}
	//
	fmt.Println(signal)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(amplifyCmd)
	amplifyCmd.Flags().String("phases", "", "comma-separated phase settings (e.g. 9,8,7,6,5)")
	amplifyCmd.Flags().Bool("ring", false, "feed outputs of the final machine back to the first")
	amplifyCmd.Flags().Int64("input", 0, "initial input to the first machine")
}
