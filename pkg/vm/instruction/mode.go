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

// Mode determines how a parameter of an instruction resolves to a value, or to
// a location in memory.
type Mode uint8

const (
	// POSITION mode parameters hold the address of the operand.
	POSITION Mode = 0
	// IMMEDIATE mode parameters are the operand themselves.  This mode is only
	// valid for parameters which are read, never for those which are written.
	IMMEDIATE Mode = 1
	// RELATIVE mode parameters hold the address of the operand, offset by the
	// relative base.
	RELATIVE Mode = 2
)

func (p Mode) String() string {
	switch p {
	case POSITION:
		return "position"
	case IMMEDIATE:
		return "immediate"
	case RELATIVE:
		return "relative"
	default:
		return fmt.Sprintf("mode%d", uint8(p))
	}
}
