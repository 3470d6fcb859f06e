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
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/consensys/go-intcode/pkg/util"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result identifies the phase setting for which a search found the largest
// final signal.
type Result struct {
	Phases []memory.Word
	Signal memory.Word
	// Total number of instructions executed across all pipelines evaluated.
	Steps uint64
}

func (p Result) String() string {
	return fmt.Sprintf("%d (phases %v)", p.Signal, p.Phases)
}

// Search evaluates every ordering of a given set of candidate phase values,
// returning an ordering which yields the largest final signal.  Each ordering
// is evaluated on its own pipeline (with independent program copies), and up
// to the given number of pipelines are evaluated concurrently.  When workers is
// zero, the number of available CPUs is used.  Where several orderings yield
// the same signal, the first in enumeration order is returned.  Any failure
// aborts the search.
func Search(ctx context.Context, program []memory.Word, topology Topology, candidates []memory.Word,
	input memory.Word, workers uint) (Result, error) {
	var (
		mutex sync.Mutex
		best  Result
		index = -1
		total uint64
	)
	//
	if len(candidates) == 0 {
		return best, ErrEmptyPipeline
	} else if workers == 0 {
		workers = uint(runtime.NumCPU())
	}
	//
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(int(workers))
	//
	var n = 0
	//
	for perm := range util.Permutations(candidates) {
		if gctx.Err() != nil {
			break
		}
		//
		ith := n
		phases := perm
		n++
		//
		group.Go(func() error {
			signal, steps, err := amplify(program, topology, phases, input)
			if err != nil {
				return fmt.Errorf("phases %v: %w", phases, err)
			}
			//
			mutex.Lock()
			defer mutex.Unlock()
			//
			total += steps
			//
			if index < 0 || signal > best.Signal || (signal == best.Signal && ith < index) {
				best, index = Result{phases, signal, 0}, ith
			}
			//
			return nil
		})
	}
	//
	if err := group.Wait(); err != nil {
		return Result{}, err
	} else if err := ctx.Err(); err != nil {
		return Result{}, err
	} else if index < 0 {
		return Result{}, errors.New("no phase settings evaluated")
	}
	//
	log.Debugf("evaluated %d phase settings using %d workers", n, workers)
	//
	best.Steps = total
	//
	return best, nil
}
