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

import "fmt"

// Opcode identifies the operation performed by an instruction, and is
// determined by the two least significant decimal digits of an instruction
// word.
type Opcode uint8

const (
	// ADD writes the sum of its first two parameters into its third.
	ADD Opcode = 1
	// MUL writes the product of its first two parameters into its third.
	MUL Opcode = 2
	// INPUT writes the next input value into its only parameter, suspending the
	// machine if no input is available.
	INPUT Opcode = 3
	// OUTPUT produces the value of its only parameter, suspending the machine so
	// the value can be consumed.
	OUTPUT Opcode = 4
	// JUMP_IF_TRUE jumps to its second parameter if its first is non-zero.
	JUMP_IF_TRUE Opcode = 5
	// JUMP_IF_FALSE jumps to its second parameter if its first is zero.
	JUMP_IF_FALSE Opcode = 6
	// LESS_THAN writes 1 into its third parameter if its first is less than its
	// second, and 0 otherwise.
	LESS_THAN Opcode = 7
	// EQUALS writes 1 into its third parameter if its first two are equal, and
	// 0 otherwise.
	EQUALS Opcode = 8
	// ADJUST_BASE adds its only parameter to the relative base.
	ADJUST_BASE Opcode = 9
	// HALT terminates the machine permanently.
	HALT Opcode = 99
)

// MAX_ARITY is the largest number of parameters taken by any instruction.
const MAX_ARITY = 3

// Arity returns the number of parameters taken by this opcode.
func (p Opcode) Arity() uint {
	switch p {
	case ADD, MUL, LESS_THAN, EQUALS:
		return 3
	case JUMP_IF_TRUE, JUMP_IF_FALSE:
		return 2
	case INPUT, OUTPUT, ADJUST_BASE:
		return 1
	default:
		return 0
	}
}

// Width returns the number of words occupied by an instruction with this
// opcode, including the instruction word itself.
func (p Opcode) Width() uint {
	return 1 + p.Arity()
}

// Target returns the (1-based) index of the parameter written by this opcode,
// or false if it writes no parameter.
func (p Opcode) Target() (uint, bool) {
	switch p {
	case ADD, MUL, LESS_THAN, EQUALS:
		return 3, true
	case INPUT:
		return 1, true
	default:
		return 0, false
	}
}

// IsValid determines whether this is a recognised opcode.
func (p Opcode) IsValid() bool {
	switch p {
	case ADD, MUL, INPUT, OUTPUT, JUMP_IF_TRUE, JUMP_IF_FALSE, LESS_THAN, EQUALS, ADJUST_BASE, HALT:
		return true
	default:
		return false
	}
}

func (p Opcode) String() string {
	switch p {
	case ADD:
		return "add"
	case MUL:
		return "mul"
	case INPUT:
		return "in"
	case OUTPUT:
		return "out"
	case JUMP_IF_TRUE:
		return "jnz"
	case JUMP_IF_FALSE:
		return "jz"
	case LESS_THAN:
		return "lt"
	case EQUALS:
		return "eq"
	case ADJUST_BASE:
		return "arb"
	case HALT:
		return "halt"
	default:
		return fmt.Sprintf("op%d", uint8(p))
	}
}
