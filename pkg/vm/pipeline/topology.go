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
	"strings"
)

// Topology determines how the output of the final machine in a pipeline is
// routed.
type Topology uint8

const (
	// LINEAR pipelines pass each machine's outputs to the next machine, with
	// outputs of the final machine forming the pipeline's result.
	LINEAR Topology = iota
	// RING pipelines are linear pipelines where the outputs of the final
	// machine are additionally fed back to the first machine.
	RING
)

// ParseTopology returns the topology with a given name (i.e. "linear" or
// "ring").
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(name) {
	case "linear":
		return LINEAR, nil
	case "ring":
		return RING, nil
	default:
		return LINEAR, fmt.Errorf("unknown topology \"%s\"", name)
	}
}

func (p Topology) String() string {
	switch p {
	case LINEAR:
		return "linear"
	case RING:
		return "ring"
	default:
		return fmt.Sprintf("topology%d", uint8(p))
	}
}
