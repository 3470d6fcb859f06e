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
	"testing"

	"github.com/consensys/go-intcode/pkg/vm/instruction"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	"github.com/consensys/go-intcode/pkg/vm/program"
	"github.com/google/go-cmp/cmp"
)

// ============================================================================
// Add / Multiply
// ============================================================================

func Test_Machine_01(t *testing.T) {
	checkFinalMemory(t, "1,0,0,0,99", 2, 0, 0, 0, 99)
}

func Test_Machine_02(t *testing.T) {
	checkFinalMemory(t, "2,3,0,3,99", 2, 3, 0, 6, 99)
}

func Test_Machine_03(t *testing.T) {
	checkFinalMemory(t, "2,4,4,5,99,0", 2, 4, 4, 5, 99, 9801)
}

func Test_Machine_04(t *testing.T) {
	checkFinalMemory(t, "1,1,1,4,99,5,6,0,99", 30, 1, 1, 4, 2, 5, 6, 0, 99)
}

func Test_Machine_05(t *testing.T) {
	checkFinalMemory(t, "1,9,10,3,2,3,11,0,99,30,40,50", 3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50)
}

// ============================================================================
// Comparisons & Jumps
// ============================================================================

func Test_Machine_06(t *testing.T) {
	// Position mode equality
	checkOutputs(t, "3,9,8,9,10,9,4,9,99,-1,8", []memory.Word{8}, 1)
	checkOutputs(t, "3,9,8,9,10,9,4,9,99,-1,8", []memory.Word{7}, 0)
}

func Test_Machine_07(t *testing.T) {
	// Position mode less than
	checkOutputs(t, "3,9,7,9,10,9,4,9,99,-1,8", []memory.Word{5}, 1)
	checkOutputs(t, "3,9,7,9,10,9,4,9,99,-1,8", []memory.Word{8}, 0)
}

func Test_Machine_08(t *testing.T) {
	// Immediate mode equality and less than
	checkOutputs(t, "3,3,1108,-1,8,3,4,3,99", []memory.Word{8}, 1)
	checkOutputs(t, "3,3,1108,-1,8,3,4,3,99", []memory.Word{9}, 0)
	checkOutputs(t, "3,3,1107,-1,8,3,4,3,99", []memory.Word{-3}, 1)
	checkOutputs(t, "3,3,1107,-1,8,3,4,3,99", []memory.Word{10}, 0)
}

func Test_Machine_09(t *testing.T) {
	// Jumps in position and immediate mode
	checkOutputs(t, "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []memory.Word{0}, 0)
	checkOutputs(t, "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", []memory.Word{5}, 1)
	checkOutputs(t, "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []memory.Word{0}, 0)
	checkOutputs(t, "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", []memory.Word{-2}, 1)
}

func Test_Machine_10(t *testing.T) {
	src := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
	//
	checkOutputs(t, src, []memory.Word{7}, 999)
	checkOutputs(t, src, []memory.Word{8}, 1000)
	checkOutputs(t, src, []memory.Word{9}, 1001)
}

// ============================================================================
// Relative Base & Large Values
// ============================================================================

func Test_Machine_11(t *testing.T) {
	src := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	// Program outputs a copy of itself
	checkOutputs(t, src, nil, parse(t, src)...)
}

func Test_Machine_12(t *testing.T) {
	checkOutputs(t, "1102,34915192,34915192,7,4,7,99,0", nil, 1219070632396864)
}

func Test_Machine_13(t *testing.T) {
	checkOutputs(t, "104,1125899906842624,99", nil, 1125899906842624)
}

func Test_Machine_14(t *testing.T) {
	// Relative mode write: input stored at rb+5 = 2005, then echoed
	checkOutputs(t, "109,2000,203,5,204,5,99", []memory.Word{42}, 42)
}

// ============================================================================
// Suspend / Resume Protocol
// ============================================================================

func Test_Machine_15(t *testing.T) {
	m := New(parse(t, "3,0,4,0,99"))
	//
	checkStatus(t, m, READY)
	// Nothing queued
	checkResume(t, m, NeedInput())
	checkStatus(t, m, AWAITING_INPUT)
	// Still nothing queued
	checkResume(t, m, NeedInput())
	// Supply a value in the resume call
	checkResume(t, m, Produced(5), 5)
	checkStatus(t, m, RUNNING)
	checkResume(t, m, Halted())
	checkStatus(t, m, HALTED)
}

func Test_Machine_16(t *testing.T) {
	// Inputs queued ahead of time are consumed in order
	m := New(parse(t, "3,0,3,1,4,1,4,0,99"), Inputs(1))
	m.Provide(2)
	//
	checkResume(t, m, Produced(2))
	checkResume(t, m, Produced(1))
	checkResume(t, m, Halted())
}

func Test_Machine_17(t *testing.T) {
	// Pull-style provider consulted just-in-time
	var (
		calls  int
		supply = func() (memory.Word, bool) {
			calls++
			return memory.Word(calls * 10), true
		}
		m = New(parse(t, "3,0,4,0,3,0,4,0,99"), WithInputProvider(supply))
	)
	//
	checkResume(t, m, Produced(10))
	//
	if calls != 1 {
		t.Errorf("provider consulted %d times", calls)
	}
	//
	checkResume(t, m, Produced(20))
	checkResume(t, m, Halted())
}

func Test_Machine_18(t *testing.T) {
	// Queued inputs take priority over the provider
	m := New(parse(t, "3,0,4,0,3,0,4,0,99"), Inputs(1), WithInputProvider(func() (memory.Word, bool) {
		return 2, true
	}))
	//
	outputs, err := Run(m)
	checkOutputsEqual(t, outputs, err, 1, 2)
}

func Test_Machine_19(t *testing.T) {
	// Halting is idempotent
	m := New(parse(t, "1101,1,1,0,99"))
	checkResume(t, m, Halted())
	//
	before := m.Memory().Contents()
	steps := m.Steps()
	//
	for range 3 {
		checkResume(t, m, Halted(), 100)
	}
	//
	if diff := cmp.Diff(before, m.Memory().Contents()); diff != "" {
		t.Errorf("memory changed after halt (-want +got):\n%s", diff)
	} else if m.Steps() != steps || m.Pending() != 0 {
		t.Errorf("machine executed after halt")
	}
}

func Test_Machine_20(t *testing.T) {
	// Program is not modified by execution
	prog := parse(t, "1,0,0,0,99")
	m := New(prog)
	//
	if _, err := Run(m); err != nil {
		t.Fatal(err)
	}
	//
	if prog[0] != 1 {
		t.Errorf("program modified: %v", prog)
	}
}

func Test_Machine_21(t *testing.T) {
	// Patching memory before the first resume
	m := New(parse(t, "1,0,0,3,99"))
	//
	if err := m.Store(1, 4); err != nil {
		t.Fatal(err)
	} else if _, err := Run(m); err != nil {
		t.Fatal(err)
	}
	//
	if v, _ := m.Load(3); v != 100 {
		t.Errorf("expected 100, got %d", v)
	}
}

func Test_Machine_22(t *testing.T) {
	// Determinism
	src := "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"
	//
	m1, m2 := New(parse(t, src)), New(parse(t, src))
	o1, e1 := Run(m1, 6)
	o2, e2 := Run(m2, 6)
	//
	if e1 != nil || e2 != nil {
		t.Fatalf("unexpected errors %v, %v", e1, e2)
	} else if diff := cmp.Diff(o1, o2); diff != "" {
		t.Errorf("outputs differ:\n%s", diff)
	} else if diff := cmp.Diff(m1.Memory().Contents(), m2.Memory().Contents()); diff != "" {
		t.Errorf("memories differ:\n%s", diff)
	}
}

// ============================================================================
// Faults
// ============================================================================

func Test_Machine_23(t *testing.T) {
	var de *instruction.DecodeError
	//
	m := New(parse(t, "1101,1,1,5,42"))
	err := checkFault(t, m, 4, 42)
	//
	if !errors.As(err, &de) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func Test_Machine_24(t *testing.T) {
	var ae *memory.AddressError
	// Relative base driven negative
	m := New(parse(t, "109,-5,204,0,99"))
	err := checkFault(t, m, 2, 204)
	//
	if !errors.As(err, &ae) || ae.Address != -5 {
		t.Errorf("expected address error, got %v", err)
	}
}

func Test_Machine_25(t *testing.T) {
	var ae *memory.AddressError
	// Jump to a negative address
	m := New(parse(t, "1105,1,-3"))
	err := checkFault(t, m, -3, 0)
	//
	if !errors.As(err, &ae) {
		t.Errorf("expected address error, got %v", err)
	}
}

func Test_Machine_26(t *testing.T) {
	var oe *instruction.OverflowError
	//
	m := New(parse(t, "1102,4611686018427387904,2,0,99"))
	err := checkFault(t, m, 0, 1102)
	//
	if !errors.As(err, &oe) {
		t.Errorf("expected overflow error, got %v", err)
	}
}

func Test_Machine_27(t *testing.T) {
	m := New(parse(t, "3,0,99"))
	//
	if _, err := Run(m); !errors.Is(err, ErrInputStarved) {
		t.Errorf("expected starvation, got %v", err)
	}
}

func Test_Machine_28(t *testing.T) {
	// Event accompanying a fault carries no output.
	m := New(parse(t, "98"))
	event, err := m.Resume()
	//
	if err == nil {
		t.Fatalf("expected fault")
	} else if event.IsProduced() || event.NeedsInput() || event.IsHalted() {
		t.Errorf("unexpected event %s alongside fault", event)
	}
}

func Test_Machine_29(t *testing.T) {
	var event Event
	//
	if event.IsProduced() || event.String() != "none" {
		t.Errorf("unexpected zero event %s", event)
	}
}

// ============================================================================
// Patch search
// ============================================================================

func Test_FindPatch_01(t *testing.T) {
	// Memory[0] = memory[noun] + memory[verb], first reaching 1 + 99 with verb 4.
	checkFindPatch(t, "1,0,0,0,99", 100, 5, 0, 4)
}

func Test_FindPatch_02(t *testing.T) {
	// Memory[0] = memory[noun] * memory[verb]
	checkFindPatch(t, "2,0,0,0,99,7,11", 77, 7, 5, 6)
}

func Test_FindPatch_03(t *testing.T) {
	// Several combinations match, hence the first in noun then verb order.
	checkFindPatch(t, "1,0,0,0,99", 0, 20, 3, 3)
}

func Test_FindPatch_04(t *testing.T) {
	if _, _, err := FindPatch(parse(t, "1,0,0,0,99"), 1000, 5); !errors.Is(err, ErrNoPatch) {
		t.Errorf("expected no patch, got %v", err)
	}
}

func Test_FindPatch_05(t *testing.T) {
	// Every combination requires input, hence none can match.
	if _, _, err := FindPatch(parse(t, "3,0,99"), 3, 5); !errors.Is(err, ErrNoPatch) {
		t.Errorf("expected no patch, got %v", err)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, src string) []memory.Word {
	t.Helper()
	//
	prog, err := program.ParseString(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	//
	return prog
}

func checkFinalMemory(t *testing.T, src string, expected ...memory.Word) {
	t.Helper()
	//
	m := New(parse(t, src))
	//
	if _, err := Run(m); err != nil {
		t.Fatalf("execution failed: %v", err)
	} else if diff := cmp.Diff(expected, m.Memory().Contents()); diff != "" {
		t.Errorf("unexpected memory (-want +got):\n%s", diff)
	}
	//
	checkStatus(t, m, HALTED)
}

func checkOutputs(t *testing.T, src string, inputs []memory.Word, expected ...memory.Word) {
	t.Helper()
	//
	outputs, err := Run(New(parse(t, src)), inputs...)
	checkOutputsEqual(t, outputs, err, expected...)
}

func checkOutputsEqual(t *testing.T, outputs []memory.Word, err error, expected ...memory.Word) {
	t.Helper()
	//
	if err != nil {
		t.Fatalf("execution failed: %v", err)
	} else if diff := cmp.Diff(expected, outputs); diff != "" {
		t.Errorf("unexpected outputs (-want +got):\n%s", diff)
	}
}

func checkResume(t *testing.T, m *Machine, expected Event, inputs ...memory.Word) {
	t.Helper()
	//
	if actual, err := m.Resume(inputs...); err != nil {
		t.Fatalf("resume failed: %v", err)
	} else if actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func checkStatus(t *testing.T, m *Machine, expected Status) {
	t.Helper()
	//
	if m.Status() != expected {
		t.Errorf("expected status %s, got %s", expected, m.Status())
	}
}

// Check machine faults at the given pc, and that resuming again reports the
// same fault.
func checkFault(t *testing.T, m *Machine, pc memory.Word, word memory.Word) error {
	t.Helper()
	//
	var fault *Fault
	//
	_, err := m.Resume()
	//
	if !errors.As(err, &fault) {
		t.Fatalf("expected fault, got %v", err)
	} else if fault.PC != pc || fault.Word != word {
		t.Errorf("expected fault at %d (word %d), got %s", pc, word, fault)
	}
	//
	checkStatus(t, m, FAULTED)
	//
	if _, again := m.Resume(); again != err {
		t.Errorf("expected same fault, got %v", again)
	}
	//
	return err
}

func checkFindPatch(t *testing.T, src string, target, limit, noun, verb memory.Word) {
	t.Helper()
	//
	n, v, err := FindPatch(parse(t, src), target, limit)
	if err != nil {
		t.Fatal(err)
	} else if n != noun || v != verb {
		t.Errorf("expected noun %d verb %d, got noun %d verb %d", noun, verb, n, v)
	}
}
