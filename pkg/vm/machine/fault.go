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
	"fmt"

	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// ErrInputStarved is returned by the drivers in this package when a machine
// blocks on input which nothing can supply.
var ErrInputStarved = errors.New("machine requires input but none is available")

// Fault records the fatal error which terminated a machine, along with the
// position of the offending instruction.
type Fault struct {
	// Instruction pointer of the offending instruction
	PC memory.Word
	// Instruction word at that position (zero if it could not be fetched)
	Word memory.Word
	// Underlying error
	Err error
}

// Error implements the error interface.
func (p *Fault) Error() string {
	return fmt.Sprintf("fault at pc %d (word %d): %s", p.PC, p.Word, p.Err)
}

// Unwrap provides access to the underlying error.
func (p *Fault) Unwrap() error {
	return p.Err
}
