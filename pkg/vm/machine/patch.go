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
package machine

import (
	"errors"

	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// ErrNoPatch indicates that no combination of patched values causes a program
// to produce the required result.
var ErrNoPatch = errors.New("no patch produces the target value")

// FindPatch searches for a noun and verb, each in the range [0, limit), such
// that running a program with the noun stored at address 1 and the verb at
// address 2 halts with a given target value at address 0.  Combinations are
// tried in increasing order of noun, then verb, and the first match is
// returned.  Combinations which fault or require input are skipped.
func FindPatch(program []memory.Word, target memory.Word, limit memory.Word) (memory.Word, memory.Word, error) {
	for noun := memory.Word(0); noun < limit; noun++ {
		for verb := memory.Word(0); verb < limit; verb++ {
			if result, ok := runPatched(program, noun, verb); ok && result == target {
				return noun, verb, nil
			}
		}
	}
	//
	return 0, 0, ErrNoPatch
}

// Run a program after patching addresses 1 and 2, returning the final value at
// address 0.
func runPatched(program []memory.Word, noun, verb memory.Word) (memory.Word, bool) {
	m := New(program)
	// NOTE: stores to non-negative addresses cannot fail.
	_ = m.Store(1, noun)
	_ = m.Store(2, verb)
	//
	if _, err := Run(m); err != nil {
		log.Debugf("noun %d verb %d: %s", noun, verb, err)
		return 0, false
	}
	//
	result, err := m.Load(0)
	//
	return result, err == nil
}
