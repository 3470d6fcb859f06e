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
package memory

import "fmt"

// AddressError indicates an attempt to access a negative memory location.
type AddressError struct {
	// Offending address
	Address Word
	// Indicates whether the access was a write (or a read)
	Write bool
}

// Error implements the error interface.
func (p *AddressError) Error() string {
	if p.Write {
		return fmt.Sprintf("invalid write to address %d", p.Address)
	}
	//
	return fmt.Sprintf("invalid read from address %d", p.Address)
}
