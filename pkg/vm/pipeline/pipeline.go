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
	"fmt"

	"github.com/consensys/go-intcode/pkg/util/collection/queue"
	"github.com/consensys/go-intcode/pkg/vm/machine"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// Pipeline is a fixed sequence of machines M0 .. Mn-1, where the outputs of
// each machine Mi are queued as inputs for machine Mi+1.  In a RING, the
// outputs of Mn-1 are also queued as inputs for M0.  There is exactly one queue
// per edge, and values are dequeued in the order they were produced.
//
// Machines are scheduled cooperatively on a single thread, in round-robin
// order.  A machine's turn lasts until it produces one output, halts or blocks
// on input.  Values which machines require before any other machine produces
// anything (e.g. phase settings) must be seeded beforehand.
type Pipeline struct {
	topology Topology
	machines []*machine.Machine
	// edges[i] holds values waiting to be consumed by machine i.
	edges     []*queue.Queue[memory.Word]
	signal    memory.Word
	signalled bool
	rounds    uint
}

// New constructs a pipeline of n machines with a given topology, each of which
// executes its own copy of a given program.
func New(program []memory.Word, topology Topology, n uint) (*Pipeline, error) {
	if n == 0 {
		return nil, ErrEmptyPipeline
	}
	//
	p := &Pipeline{
		topology: topology,
		machines: make([]*machine.Machine, n),
		edges:    make([]*queue.Queue[memory.Word], n),
	}
	//
	for i := range n {
		edge := queue.NewQueue[memory.Word]()
		name := fmt.Sprintf("machine %d", i)
		//
		p.edges[i] = edge
		p.machines[i] = machine.New(program, machine.Name(name), machine.WithInputProvider(edge.TryDequeue))
	}
	//
	return p, nil
}

// Len returns the number of machines in this pipeline.
func (p *Pipeline) Len() uint {
	return uint(len(p.machines))
}

// Topology returns the topology of this pipeline.
func (p *Pipeline) Topology() Topology {
	return p.topology
}

// Machine returns the ith machine of this pipeline.
func (p *Pipeline) Machine(i uint) *machine.Machine {
	return p.machines[i]
}

// Seed queues the given values on the edge feeding the ith machine, such that
// they are consumed before anything subsequently produced by its predecessor.
func (p *Pipeline) Seed(i uint, values ...memory.Word) {
	p.edges[i].EnqueueAll(values)
}

// Steps returns the total number of instructions executed across all machines.
func (p *Pipeline) Steps() uint64 {
	var steps uint64
	//
	for _, m := range p.machines {
		steps += m.Steps()
	}
	//
	return steps
}

// Run drives all machines in this pipeline until they have halted, returning
// the last output produced by the final machine.  A fault in any machine aborts
// the whole pipeline, as does a round in which no machine executes a single
// instruction (which indicates a deadlock).
func (p *Pipeline) Run() (memory.Word, error) {
	for !p.halted() {
		progress, err := p.round()
		//
		if err != nil {
			return 0, err
		} else if !progress && !p.halted() {
			return 0, &DeadlockError{p.rounds, p.awaiting()}
		}
	}
	//
	log.Debugf("%s pipeline of %d machines halted after %d rounds", p.topology, len(p.machines), p.rounds)
	//
	if !p.signalled {
		return 0, ErrNoSignal
	}
	//
	return p.signal, nil
}

// Perform a single round of scheduling, giving each machine which has not
// halted a turn.  This determines whether any machine executed any instruction
// during the round.
func (p *Pipeline) round() (bool, error) {
	var progress bool
	//
	p.rounds++
	//
	for i, m := range p.machines {
		if m.Status() == machine.HALTED {
			continue
		}
		//
		steps := m.Steps()
		event, err := m.Resume()
		//
		if err != nil {
			return false, fmt.Errorf("%s: %w", m.Name(), err)
		} else if m.Steps() != steps {
			progress = true
		}
		//
		if event.IsProduced() {
			p.forward(uint(i), event.Value())
		}
	}
	//
	return progress, nil
}

// Forward a value produced by the ith machine along its outgoing edge.
func (p *Pipeline) forward(i uint, value memory.Word) {
	var n = uint(len(p.machines))
	//
	switch {
	case i+1 < n:
		p.edges[i+1].Enqueue(value)
	case p.topology == RING:
		p.edges[0].Enqueue(value)
		fallthrough
	default:
		p.signal, p.signalled = value, true
	}
}

func (p *Pipeline) halted() bool {
	for _, m := range p.machines {
		if m.Status() != machine.HALTED {
			return false
		}
	}
	//
	return true
}

func (p *Pipeline) awaiting() []uint {
	var indices []uint
	//
	for i, m := range p.machines {
		if m.Status() == machine.AWAITING_INPUT {
			indices = append(indices, uint(i))
		}
	}
	//
	return indices
}

// Amplify constructs a pipeline with one machine per phase value, where each
// machine's first input is its phase value and the first machine's second
// input is a given initial input.  The pipeline is then run to completion,
// returning the last output of the final machine.
func Amplify(program []memory.Word, topology Topology, phases []memory.Word, input memory.Word) (memory.Word, error) {
	signal, _, err := amplify(program, topology, phases, input)
	//
	return signal, err
}

// Construct and run a pipeline for a given phase setting, additionally
// returning the total number of steps executed.
func amplify(program []memory.Word, topology Topology, phases []memory.Word,
	input memory.Word) (memory.Word, uint64, error) {
	p, err := New(program, topology, uint(len(phases)))
	if err != nil {
		return 0, 0, err
	}
	//
	for i, phase := range phases {
		p.Seed(uint(i), phase)
	}
	//
	p.Seed(0, input)
	//
	signal, err := p.Run()
	//
	return signal, p.Steps(), err
}
