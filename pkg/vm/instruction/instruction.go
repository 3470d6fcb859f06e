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
	"strings"

	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// Instruction is a decoded instruction word: an opcode together with the
// addressing mode of each of its parameters.  The parameters themselves are
// not part of an instruction, since they reside in the memory words following
// it and are only resolved upon execution.
type Instruction struct {
	// Operation being performed
	Opcode Opcode
	// Addressing mode of each parameter, where Modes[k-1] is the mode of the
	// kth parameter.  Modes beyond the arity of the opcode are always POSITION.
	Modes [MAX_ARITY]Mode
}

// Decode an instruction word.  The opcode is given by the two least significant
// decimal digits, whilst the mode of the kth parameter is given by the (k+2)th
// least significant digit.  For example, 1002 decodes as a MUL whose first and
// third parameters are in POSITION mode, and whose second is IMMEDIATE.
// Digits beyond the arity of the opcode are ignored.
func Decode(word memory.Word) (Instruction, error) {
	var insn Instruction
	// Negative words cannot be represented in an Opcode, and would otherwise
	// produce negative digits below.
	if word < 0 {
		return insn, &DecodeError{word, "negative instruction word"}
	}
	//
	insn.Opcode = Opcode(word % 100)
	//
	if !insn.Opcode.IsValid() {
		return insn, &DecodeError{word, fmt.Sprintf("unknown opcode %d", word%100)}
	}
	// Decode the parameter modes
	digits := word / 100
	//
	for k := range insn.Opcode.Arity() {
		switch mode := Mode(digits % 10); mode {
		case POSITION, RELATIVE, IMMEDIATE:
			insn.Modes[k] = mode
		default:
			return insn, &DecodeError{word, fmt.Sprintf("unknown mode %d for parameter %d", digits%10, k+1)}
		}
		//
		digits /= 10
	}
	// Written parameters must designate a location
	if k, ok := insn.Opcode.Target(); ok && insn.Modes[k-1] == IMMEDIATE {
		return insn, &DecodeError{word, fmt.Sprintf("immediate mode for written parameter %d", k)}
	}
	//
	return insn, nil
}

// Mode returns the addressing mode of the kth parameter (counting from 1).
func (p Instruction) Mode(k uint) Mode {
	return p.Modes[k-1]
}

// Format returns a human readable form of this instruction, given the raw
// parameter words which follow it in memory.  Position mode parameters are
// written [n], relative mode parameters are written [rb+n] and immediate mode
// parameters are written as is.
func (p Instruction) Format(params ...memory.Word) string {
	var builder strings.Builder
	//
	builder.WriteString(p.Opcode.String())
	//
	for k := range min(p.Opcode.Arity(), uint(len(params))) {
		if k == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(", ")
		}
		//
		switch p.Modes[k] {
		case IMMEDIATE:
			builder.WriteString(fmt.Sprintf("%d", params[k]))
		case RELATIVE:
			builder.WriteString(fmt.Sprintf("[rb%+d]", params[k]))
		default:
			builder.WriteString(fmt.Sprintf("[%d]", params[k]))
		}
	}
	//
	return builder.String()
}

func (p Instruction) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Opcode.String())
	//
	for k := range p.Opcode.Arity() {
		builder.WriteString(" ")
		builder.WriteString(p.Modes[k].String())
	}
	//
	return builder.String()
}
