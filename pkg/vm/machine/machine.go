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
	"github.com/consensys/go-intcode/pkg/util/collection/queue"
	"github.com/consensys/go-intcode/pkg/vm/instruction"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// InputProvider is consulted whenever a machine executes an input instruction
// and its input queue is empty.  It returns the next input value, or false if
// none is currently available (in which case the machine blocks).
type InputProvider func() (memory.Word, bool)

// Option configures a machine upon construction.
type Option func(*Machine)

// Inputs queues the given input values ahead of time.
func Inputs(values ...memory.Word) Option {
	return func(m *Machine) { m.inputs.EnqueueAll(values) }
}

// WithInputProvider configures a pull-style provider from which inputs are
// obtained just-in-time, once any queued inputs have been consumed.
func WithInputProvider(provider InputProvider) Option {
	return func(m *Machine) { m.provider = provider }
}

// Name sets the name used to identify this machine in log messages.
func Name(name string) Option {
	return func(m *Machine) { m.name = name }
}

// Machine is a single resumable instance of the virtual processor.  Execution
// proceeds only within a call to Resume, which returns control to the caller
// whenever an output is produced, an input is required but unavailable, or the
// machine halts.
type Machine struct {
	name     string
	memory   memory.Memory
	pc       memory.Word
	base     memory.Word
	status   Status
	inputs   *queue.Queue[memory.Word]
	provider InputProvider
	steps    uint64
	fault    *Fault
}

// New constructs a machine from a given program.  The program is copied into
// a fresh memory at addresses 0 onwards, such that the program itself is never
// modified by execution.
func New(program []memory.Word, opts ...Option) *Machine {
	return NewWithMemory(memory.NewSparse(program...), opts...)
}

// NewWithMemory constructs a machine which executes directly over a given
// memory.  The machine assumes exclusive ownership of the memory.
func NewWithMemory(mem memory.Memory, opts ...Option) *Machine {
	m := &Machine{
		name:   "machine",
		memory: mem,
		status: READY,
		inputs: queue.NewQueue[memory.Word](),
	}
	//
	for _, opt := range opts {
		opt(m)
	}
	//
	return m
}

// Provide queues zero or more input values, without resuming the machine.
func (p *Machine) Provide(values ...memory.Word) {
	p.inputs.EnqueueAll(values)
}

// Resume execution of this machine after first queueing the given input values
// (if any).  Execution continues until an output is produced, an input is
// required but none is available, or the machine halts.  Resuming a halted
// machine does nothing, and simply reports it is halted again.  A machine
// which encounters a fatal error is permanently faulted, and every subsequent
// resumption returns the same fault.
func (p *Machine) Resume(values ...memory.Word) (Event, error) {
	switch p.status {
	case HALTED:
		return Halted(), nil
	case FAULTED:
		return Event{}, p.fault
	}
	//
	p.inputs.EnqueueAll(values)
	p.status = RUNNING
	//
	for {
		insn, err := p.fetch()
		if err != nil {
			return Event{}, err
		}
		//
		effect, err := insn.Execute(p)
		if err != nil {
			return Event{}, p.abort(err)
		}
		//
		switch effect.Kind {
		case instruction.STARVED:
			p.status = AWAITING_INPUT
			return NeedInput(), nil
		case instruction.PRODUCED:
			p.steps++
			return Produced(effect.Value), nil
		case instruction.HALTED:
			p.steps++
			p.status = HALTED
			log.Debugf("%s halted after %d steps", p.name, p.steps)
			//
			return Halted(), nil
		default:
			p.steps++
		}
	}
}

// Fetch and decode the instruction at the current instruction pointer.
func (p *Machine) fetch() (instruction.Instruction, error) {
	word, err := p.memory.Load(p.pc)
	if err != nil {
		return instruction.Instruction{}, p.abort(err)
	}
	//
	insn, err := instruction.Decode(word)
	if err != nil {
		return insn, p.abort(err)
	}
	//
	if log.IsLevelEnabled(log.TraceLevel) {
		p.trace(insn)
	}
	//
	return insn, nil
}

// Abort this machine with a given fatal error.
func (p *Machine) abort(err error) error {
	// Instruction word is a best effort, since the pc may be invalid.
	word, _ := p.memory.Load(p.pc)
	//
	p.fault = &Fault{p.pc, word, err}
	p.status = FAULTED
	//
	log.Debugf("%s faulted after %d steps: %s", p.name, p.steps, p.fault)
	//
	return p.fault
}

func (p *Machine) trace(insn instruction.Instruction) {
	params := make([]memory.Word, insn.Opcode.Arity())
	//
	for k := range params {
		params[k], _ = p.memory.Load(p.pc + memory.Word(k+1))
	}
	//
	log.Tracef("%s [%d] rb=%d %s", p.name, p.pc, p.base, insn.Format(params...))
}

// ============================================================================
// Inspection
// ============================================================================

// Name returns the name of this machine.
func (p *Machine) Name() string {
	return p.name
}

// Status returns the current status of this machine.
func (p *Machine) Status() Status {
	return p.status
}

// Fault returns the fault which terminated this machine, or nil if it has not
// faulted.
func (p *Machine) Fault() error {
	if p.fault == nil {
		return nil
	}
	//
	return p.fault
}

// Steps returns the number of instructions executed so far.
func (p *Machine) Steps() uint64 {
	return p.steps
}

// Pending returns the number of queued input values not yet consumed.
func (p *Machine) Pending() uint {
	return p.inputs.Len()
}

// Load returns the word at a given address of this machine's memory.  This
// can be used to inspect a machine before, between or after resumptions.
func (p *Machine) Load(address memory.Word) (memory.Word, error) {
	return p.memory.Load(address)
}

// Store a word at a given address of this machine's memory.  This is typically
// used to patch a program before it is first resumed.
func (p *Machine) Store(address memory.Word, value memory.Word) error {
	return p.memory.Store(address, value)
}

// ============================================================================
// Instruction State
// ============================================================================

// PC implementation for instruction.State interface.
func (p *Machine) PC() memory.Word {
	return p.pc
}

// Goto implementation for instruction.State interface.
func (p *Machine) Goto(pc memory.Word) {
	p.pc = pc
}

// RelativeBase implementation for instruction.State interface.
func (p *Machine) RelativeBase() memory.Word {
	return p.base
}

// SetRelativeBase implementation for instruction.State interface.
func (p *Machine) SetRelativeBase(base memory.Word) {
	p.base = base
}

// Memory implementation for instruction.State interface.
func (p *Machine) Memory() memory.Memory {
	return p.memory
}

// NextInput implementation for instruction.State interface.  Queued inputs are
// consumed first, after which the input provider (if any) is consulted.
func (p *Machine) NextInput() (memory.Word, bool) {
	if value, ok := p.inputs.TryDequeue(); ok {
		return value, true
	} else if p.provider != nil {
		return p.provider()
	}
	//
	return 0, false
}
