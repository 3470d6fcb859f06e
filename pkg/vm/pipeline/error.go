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
	"errors"
	"fmt"
)

var (
	// ErrNoSignal indicates the final machine of a pipeline halted without ever
	// producing an output.
	ErrNoSignal = errors.New("final machine produced no output")
	// ErrEmptyPipeline indicates an attempt to construct a pipeline without any
	// machines.
	ErrEmptyPipeline = errors.New("pipeline requires at least one machine")
)

// DeadlockError indicates a pipeline in which no machine can make progress,
// because every machine which has not halted is waiting for input which no
// machine will ever produce.
type DeadlockError struct {
	// Scheduling round in which the deadlock was detected (counting from 1).
	Round uint
	// Indices of machines waiting for input.
	Awaiting []uint
}

// Error implements the error interface.
func (p *DeadlockError) Error() string {
	return fmt.Sprintf("deadlock in round %d: machines %v awaiting input", p.Round, p.Awaiting)
}
