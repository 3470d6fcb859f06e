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
	"math"

	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// State captures the parts of an executing machine which an instruction can
// observe or modify.
type State interface {
	// PC returns the current instruction pointer.
	PC() memory.Word
	// Goto sets the instruction pointer to a given position.
	Goto(pc memory.Word)
	// RelativeBase returns the current value of the relative base register.
	RelativeBase() memory.Word
	// SetRelativeBase sets the relative base register.
	SetRelativeBase(base memory.Word)
	// Memory returns the memory of the machine.
	Memory() memory.Memory
	// NextInput consumes the next available input value, or returns false if
	// none is currently available.
	NextInput() (memory.Word, bool)
}

// Effect describes how the machine should proceed after executing an
// instruction.
type Effect struct {
	// Kind of effect
	Kind EffectKind
	// Value produced (only meaningful for OUTPUT effects)
	Value memory.Word
}

// EffectKind distinguishes the different kinds of Effect.
type EffectKind uint8

const (
	// CONTINUE indicates the machine can continue with the next instruction.
	CONTINUE EffectKind = iota
	// STARVED indicates an input was required but none was available.  The
	// instruction pointer has not been advanced, so the same instruction will
	// execute again when the machine is resumed.
	STARVED
	// PRODUCED indicates an output value was produced.  The instruction pointer
	// has already been advanced past the producing instruction.
	PRODUCED
	// HALTED indicates the machine has terminated.
	HALTED
)

// Execute this instruction against a given machine state.  The instruction is
// assumed to have been decoded from the word at the current instruction
// pointer.  Observe that, if an error arises, then the state may have been
// partially modified though the instruction pointer will not have been
// advanced.
func (p Instruction) Execute(state State) (Effect, error) {
	var (
		pc   = state.PC()
		next = pc + memory.Word(p.Opcode.Width())
	)
	//
	switch p.Opcode {
	case ADD, MUL, LESS_THAN, EQUALS:
		lhs, rhs, err := p.readPair(state)
		if err != nil {
			return Effect{}, err
		}
		//
		result, err := p.Opcode.evaluate(lhs, rhs)
		if err != nil {
			return Effect{}, err
		} else if err = p.write(state, 3, result); err != nil {
			return Effect{}, err
		}
	case INPUT:
		value, ok := state.NextInput()
		if !ok {
			return Effect{Kind: STARVED}, nil
		} else if err := p.write(state, 1, value); err != nil {
			return Effect{}, err
		}
	case OUTPUT:
		value, err := p.read(state, 1)
		if err != nil {
			return Effect{}, err
		}
		//
		state.Goto(next)
		//
		return Effect{PRODUCED, value}, nil
	case JUMP_IF_TRUE, JUMP_IF_FALSE:
		cond, target, err := p.readPair(state)
		if err != nil {
			return Effect{}, err
		}
		// Decide whether branch taken
		if (cond != 0) == (p.Opcode == JUMP_IF_TRUE) {
			next = target
		}
	case ADJUST_BASE:
		delta, err := p.read(state, 1)
		if err != nil {
			return Effect{}, err
		}
		//
		base, ok := add(state.RelativeBase(), delta)
		if !ok {
			return Effect{}, &OverflowError{"+", state.RelativeBase(), delta}
		}
		//
		state.SetRelativeBase(base)
	case HALT:
		return Effect{Kind: HALTED}, nil
	default:
		// Decode should have rejected this already.
		return Effect{}, &DecodeError{memory.Word(p.Opcode), "unknown opcode"}
	}
	//
	state.Goto(next)
	//
	return Effect{Kind: CONTINUE}, nil
}

// Evaluate a binary operation over two operands.
func (p Opcode) evaluate(lhs, rhs memory.Word) (memory.Word, error) {
	switch p {
	case ADD:
		if r, ok := add(lhs, rhs); ok {
			return r, nil
		}
		//
		return 0, &OverflowError{"+", lhs, rhs}
	case MUL:
		if r, ok := mul(lhs, rhs); ok {
			return r, nil
		}
		//
		return 0, &OverflowError{"*", lhs, rhs}
	case LESS_THAN:
		return boolToWord(lhs < rhs), nil
	default:
		return boolToWord(lhs == rhs), nil
	}
}

// Address determines the location designated by the kth parameter (counting
// from 1) of this instruction.
func (p Instruction) address(state State, k uint) (memory.Word, error) {
	var location = state.PC() + memory.Word(k)
	//
	switch p.Modes[k-1] {
	case IMMEDIATE:
		return location, nil
	case RELATIVE:
		offset, err := state.Memory().Load(location)
		if err != nil {
			return 0, err
		}
		//
		addr, ok := add(state.RelativeBase(), offset)
		if !ok {
			return 0, &OverflowError{"+", state.RelativeBase(), offset}
		}
		//
		return addr, nil
	default:
		return state.Memory().Load(location)
	}
}

// Read the value of the kth parameter (counting from 1).
func (p Instruction) read(state State, k uint) (memory.Word, error) {
	addr, err := p.address(state, k)
	if err != nil {
		return 0, err
	}
	//
	return state.Memory().Load(addr)
}

// Read the values of the first two parameters.
func (p Instruction) readPair(state State) (memory.Word, memory.Word, error) {
	lhs, err := p.read(state, 1)
	if err != nil {
		return 0, 0, err
	}
	//
	rhs, err := p.read(state, 2)
	//
	return lhs, rhs, err
}

// Write a given value to the location designated by the kth parameter.
func (p Instruction) write(state State, k uint, value memory.Word) error {
	addr, err := p.address(state, k)
	if err != nil {
		return err
	}
	//
	return state.Memory().Store(addr, value)
}

func add(lhs, rhs memory.Word) (memory.Word, bool) {
	r := lhs + rhs
	// Overflow occurs iff both operands have the same sign, and the result's
	// sign differs from it.
	if (lhs >= 0) == (rhs >= 0) && (r >= 0) != (lhs >= 0) {
		return 0, false
	}
	//
	return r, true
}

func mul(lhs, rhs memory.Word) (memory.Word, bool) {
	if lhs == 0 || rhs == 0 {
		return 0, true
	} else if (lhs == -1 && rhs == math.MinInt64) || (rhs == -1 && lhs == math.MinInt64) {
		return 0, false
	}
	//
	r := lhs * rhs
	//
	if r/rhs != lhs {
		return 0, false
	}
	//
	return r, true
}

func boolToWord(b bool) memory.Word {
	if b {
		return 1
	}
	//
	return 0
}
