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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/consensys/go-intcode/pkg/util"
	"github.com/consensys/go-intcode/pkg/vm/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [flags] program.txt",
	Short: "Find the phase settings yielding the largest signal.",
	Long: `Evaluate a pipeline for every ordering of the candidate phase values, reporting an ordering
which yields the largest final signal.  Pipelines are evaluated concurrently.`,
	Args: cobra.ExactArgs(1),
	Run:  runSearchCmd,
}

func runSearchCmd(cmd *cobra.Command, args []string) {
	var (
		prog       = readProgram(args[0])
		candidates = getWordsOrDefault(cmd, "candidates", settings.Search.Candidates)
		topology   = getTopology(cmd)
		input      = getPipelineInput(cmd)
		workers    = settings.Search.Workers
	)
	//
	if cmd.Flags().Changed("workers") {
		workers = getUint(cmd, "workers")
	}
	//
	if len(candidates) == 0 {
		fmt.Println("no candidate phase values given (use --candidates)")
		os.Exit(2)
	}
	// Allow search to be interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	//
	stats := util.NewPerfStats()
	result, err := pipeline.Search(ctx, prog, topology, candidates, input, workers)
	//
	stats.Log("Search", result.Steps)
	//
	if err != nil {
		log.Error(err)
		stop()
		os.Exit(4)
	}
	//
	fmt.Println(result.Signal)
	log.Infof("phase settings %v", result.Phases)
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("candidates", "", "comma-separated candidate phase values (e.g. 5,6,7,8,9)")
	searchCmd.Flags().Bool("ring", false, "feed outputs of the final machine back to the first")
	searchCmd.Flags().Int64("input", 0, "initial input to the first machine")
	searchCmd.Flags().Uint("workers", 0, "maximum number of concurrent pipelines (0 means one per CPU)")
}
