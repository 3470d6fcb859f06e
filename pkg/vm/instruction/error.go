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
package instruction

import (
	"fmt"

	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// DecodeError indicates an instruction word which does not correspond to a
// valid instruction.  This arises from an unknown opcode, an unknown parameter
// mode digit or an immediate mode parameter in a written position.
type DecodeError struct {
	// Instruction word being decoded
	Word memory.Word
	// Error message being reported
	msg string
}

// Error implements the error interface.
func (p *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %d: %s", p.Word, p.msg)
}

// OverflowError indicates an arithmetic operation whose result cannot be
// represented in a machine word.
type OverflowError struct {
	// Operation being performed
	Operation string
	// Left-hand operand
	Lhs memory.Word
	// Right-hand operand
	Rhs memory.Word
}

// Error implements the error interface.
func (p *OverflowError) Error() string {
	return fmt.Sprintf("integer overflow computing %d %s %d", p.Lhs, p.Operation, p.Rhs)
}
