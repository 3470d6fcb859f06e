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
	"fmt"

	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// Status captures the lifecycle of a machine.  A machine begins READY and
// becomes RUNNING when first resumed.  From there it can become AWAITING_INPUT
// (from which it returns to RUNNING once an input is available), HALTED or
// FAULTED.  The latter two are terminal.
type Status uint8

const (
	// READY indicates a machine which has never been resumed.
	READY Status = iota
	// RUNNING indicates a machine which has been resumed, and is not blocked.
	RUNNING
	// AWAITING_INPUT indicates a machine blocked on an input instruction.
	AWAITING_INPUT
	// HALTED indicates a machine which executed a halt instruction.
	HALTED
	// FAULTED indicates a machine terminated by a fatal error.
	FAULTED
)

// IsTerminal determines whether a machine with this status can never execute
// another instruction.
func (p Status) IsTerminal() bool {
	return p == HALTED || p == FAULTED
}

func (p Status) String() string {
	switch p {
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case AWAITING_INPUT:
		return "awaiting input"
	case HALTED:
		return "halted"
	case FAULTED:
		return "faulted"
	default:
		return fmt.Sprintf("status%d", uint8(p))
	}
}

// Event is returned from resuming a machine, and identifies why the machine
// stopped running.  An event is one of: an output value was produced; the
// machine is blocked waiting for input; or, the machine has halted.
type Event struct {
	kind  eventKind
	value memory.Word
}

type eventKind uint8

const (
	// Zero value, as returned alongside an error.
	none eventKind = iota
	produced
	needInput
	halted
)

// Produced constructs an event for a produced output value.
func Produced(value memory.Word) Event {
	return Event{produced, value}
}

// NeedInput constructs an event for a machine blocked on input.
func NeedInput() Event {
	return Event{kind: needInput}
}

// Halted constructs an event for a halted machine.
func Halted() Event {
	return Event{kind: halted}
}

// IsProduced determines whether an output value was produced.
func (p Event) IsProduced() bool {
	return p.kind == produced
}

// NeedsInput determines whether the machine is blocked waiting for input.
func (p Event) NeedsInput() bool {
	return p.kind == needInput
}

// IsHalted determines whether the machine has halted.
func (p Event) IsHalted() bool {
	return p.kind == halted
}

// Value returns the output value of a produced event, and panics for any other
// kind of event.
func (p Event) Value() memory.Word {
	if p.kind != produced {
		panic("event has no value")
	}
	//
	return p.value
}

func (p Event) String() string {
	switch p.kind {
	case produced:
		return fmt.Sprintf("produced(%d)", p.value)
	case needInput:
		return "need input"
	case halted:
		return "halted"
	default:
		return "none"
	}
}
