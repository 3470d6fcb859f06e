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
	"context"
	"errors"
	"testing"

	"github.com/consensys/go-intcode/pkg/vm/machine"
	"github.com/consensys/go-intcode/pkg/vm/memory"
	"github.com/consensys/go-intcode/pkg/vm/program"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

const (
	linear1 = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	linear2 = "3,23,3,24,1002,24,10,24,1002,23,-1,23,101,5,23,23,1,24,23,23,4,23,99,0,0"
	linear3 = "3,31,3,32,1002,32,10,32,1001,31,-2,31,1007,31,0,33,1002,33,7,33,1,33,31,31,1,32,31,31,4,31," +
		"99,0,0,0"
	ring1 = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
	ring2 = "3,52,1001,52,-5,52,3,53,1,52,56,54,1007,54,5,55,1005,55,26,1001,54,-5,54,1105,1,12,1,53,54,53," +
		"1008,54,0,55,1001,55,1,55,2,53,55,53,4,53,1001,56,-1,56,1005,56,6,99,0,0,0,0,10"
	// Echoes its second input, ignoring the first.
	echo = "3,0,3,0,4,0,99"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// Amplify
// ============================================================================

func Test_Amplify_01(t *testing.T) {
	checkAmplify(t, linear1, LINEAR, 43210, 4, 3, 2, 1, 0)
}

func Test_Amplify_02(t *testing.T) {
	checkAmplify(t, linear2, LINEAR, 54321, 0, 1, 2, 3, 4)
}

func Test_Amplify_03(t *testing.T) {
	checkAmplify(t, linear3, LINEAR, 65210, 1, 0, 4, 3, 2)
}

func Test_Amplify_04(t *testing.T) {
	checkAmplify(t, ring1, RING, 139629729, 9, 8, 7, 6, 5)
}

func Test_Amplify_05(t *testing.T) {
	checkAmplify(t, ring2, RING, 18216, 9, 7, 8, 5, 6)
}

func Test_Amplify_06(t *testing.T) {
	// Single machine pipeline, whose signal is the initial input.
	signal, err := Amplify(parse(t, echo), LINEAR, []memory.Word{3}, 7)
	//
	if err != nil {
		t.Fatal(err)
	} else if signal != 7 {
		t.Errorf("expected signal 7, got %d", signal)
	}
}

func Test_Amplify_07(t *testing.T) {
	_, err := Amplify(parse(t, echo), LINEAR, nil, 0)
	//
	if !errors.Is(err, ErrEmptyPipeline) {
		t.Errorf("expected empty pipeline error, got %v", err)
	}
}

// ============================================================================
// Failures
// ============================================================================

func Test_Pipeline_01(t *testing.T) {
	// Nothing is ever seeded, hence every machine blocks immediately.
	p, err := New(parse(t, "3,0,4,0,99"), RING, 5)
	if err != nil {
		t.Fatal(err)
	}
	//
	_, err = p.Run()
	//
	var deadlock *DeadlockError
	//
	if !errors.As(err, &deadlock) {
		t.Fatalf("expected deadlock, got %v", err)
	} else if deadlock.Round != 1 {
		t.Errorf("expected deadlock in round 1, got round %d", deadlock.Round)
	} else if diff := cmp.Diff([]uint{0, 1, 2, 3, 4}, deadlock.Awaiting); diff != "" {
		t.Errorf("unexpected awaiting machines (-want +got):\n%s", diff)
	}
}

func Test_Pipeline_02(t *testing.T) {
	// Second machine requires two inputs but only ever receives one.
	p, err := New(parse(t, echo), LINEAR, 2)
	if err != nil {
		t.Fatal(err)
	}
	//
	p.Seed(0, 1, 2)
	//
	_, err = p.Run()
	//
	var deadlock *DeadlockError
	//
	if !errors.As(err, &deadlock) {
		t.Fatalf("expected deadlock, got %v", err)
	} else if diff := cmp.Diff([]uint{1}, deadlock.Awaiting); diff != "" {
		t.Errorf("unexpected awaiting machines (-want +got):\n%s", diff)
	}
}

func Test_Pipeline_03(t *testing.T) {
	p, err := New(parse(t, "99"), LINEAR, 2)
	if err != nil {
		t.Fatal(err)
	}
	//
	if _, err = p.Run(); !errors.Is(err, ErrNoSignal) {
		t.Errorf("expected no signal error, got %v", err)
	}
}

func Test_Pipeline_04(t *testing.T) {
	// Echo the phase and then fault on an unknown opcode.
	_, err := Amplify(parse(t, "3,0,4,0,98"), LINEAR, []memory.Word{5}, 0)
	//
	var fault *machine.Fault
	//
	if !errors.As(err, &fault) {
		t.Fatalf("expected fault, got %v", err)
	} else if fault.PC != 4 {
		t.Errorf("expected fault at pc 4, got %d", fault.PC)
	}
}

func Test_Pipeline_05(t *testing.T) {
	_, err := New(parse(t, echo), RING, 0)
	//
	if !errors.Is(err, ErrEmptyPipeline) {
		t.Errorf("expected empty pipeline error, got %v", err)
	}
}

func Test_Pipeline_06(t *testing.T) {
	p, err := New(parse(t, ring1), RING, 5)
	if err != nil {
		t.Fatal(err)
	}
	//
	for i, phase := range []memory.Word{9, 8, 7, 6, 5} {
		p.Seed(uint(i), phase)
	}
	//
	p.Seed(0, 0)
	//
	if _, err := p.Run(); err != nil {
		t.Fatal(err)
	}
	// Every machine should have halted.
	for i := range p.Len() {
		if status := p.Machine(i).Status(); status != machine.HALTED {
			t.Errorf("machine %d has status %s", i, status)
		}
	}
	//
	if p.Steps() == 0 {
		t.Errorf("expected non-zero step count")
	}
}

// ============================================================================
// Search
// ============================================================================

func Test_Search_01(t *testing.T) {
	checkSearch(t, linear1, LINEAR, []memory.Word{0, 1, 2, 3, 4}, 43210, 4, 3, 2, 1, 0)
}

func Test_Search_02(t *testing.T) {
	checkSearch(t, linear2, LINEAR, []memory.Word{0, 1, 2, 3, 4}, 54321, 0, 1, 2, 3, 4)
}

func Test_Search_03(t *testing.T) {
	checkSearch(t, linear3, LINEAR, []memory.Word{0, 1, 2, 3, 4}, 65210, 1, 0, 4, 3, 2)
}

func Test_Search_04(t *testing.T) {
	checkSearch(t, ring1, RING, []memory.Word{5, 6, 7, 8, 9}, 139629729, 9, 8, 7, 6, 5)
}

func Test_Search_05(t *testing.T) {
	checkSearch(t, ring2, RING, []memory.Word{5, 6, 7, 8, 9}, 18216, 9, 7, 8, 5, 6)
}

func Test_Search_06(t *testing.T) {
	// All orderings tie, so the first enumerated wins.
	checkSearch(t, echo, LINEAR, []memory.Word{3, 1, 2}, 0, 3, 1, 2)
}

func Test_Search_07(t *testing.T) {
	_, err := Search(context.Background(), parse(t, "3,0,3,0,98"), LINEAR, []memory.Word{0, 1}, 0, 2)
	//
	var fault *machine.Fault
	//
	if !errors.As(err, &fault) {
		t.Errorf("expected fault, got %v", err)
	}
}

func Test_Search_08(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	_, err := Search(ctx, parse(t, linear1), LINEAR, []memory.Word{0, 1, 2, 3, 4}, 0, 2)
	//
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func Test_Search_09(t *testing.T) {
	_, err := Search(context.Background(), parse(t, linear1), LINEAR, nil, 0, 1)
	//
	if !errors.Is(err, ErrEmptyPipeline) {
		t.Errorf("expected empty pipeline error, got %v", err)
	}
}

func Test_Topology_01(t *testing.T) {
	for _, topology := range []Topology{LINEAR, RING} {
		if parsed, err := ParseTopology(topology.String()); err != nil || parsed != topology {
			t.Errorf("failed to round trip %s", topology)
		}
	}
	//
	if _, err := ParseTopology("star"); err == nil {
		t.Errorf("expected error for unknown topology")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, text string) []memory.Word {
	t.Helper()
	//
	prog, err := program.ParseString(text)
	if err != nil {
		t.Fatal(err)
	}
	//
	return prog
}

func checkAmplify(t *testing.T, text string, topology Topology, expected memory.Word, phases ...memory.Word) {
	t.Helper()
	//
	signal, err := Amplify(parse(t, text), topology, phases, 0)
	//
	if err != nil {
		t.Fatal(err)
	} else if signal != expected {
		t.Errorf("expected signal %d, got %d", expected, signal)
	}
}

func checkSearch(t *testing.T, text string, topology Topology, candidates []memory.Word, signal memory.Word,
	phases ...memory.Word) {
	t.Helper()
	//
	result, err := Search(context.Background(), parse(t, text), topology, candidates, 0, 3)
	//
	if err != nil {
		t.Fatal(err)
	} else if result.Signal != signal {
		t.Errorf("expected signal %d, got %d", signal, result.Signal)
	} else if diff := cmp.Diff(phases, result.Phases); diff != "" {
		t.Errorf("unexpected phases (-want +got):\n%s", diff)
	}
}
