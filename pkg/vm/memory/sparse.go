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

import (
	"maps"
	"slices"
)

// DenseWindow determines the number of low addresses held in a contiguous
// slice.  Addresses at or beyond this window are held in a map instead, such
// that a program writing to some enormous address does not force allocation of
// everything below it.
const DenseWindow = 1 << 20

// Sparse is the default Memory implementation.  Programs overwhelmingly access
// a compact region starting from zero, which is stored in a slice that grows
// lazily on writes.  The remainder of the address space is stored sparsely.
type Sparse struct {
	dense []Word
	far   map[Word]Word
}

// NewSparse constructs a memory whose first locations are initialised with the
// given words.  The initial words are copied.
func NewSparse(init ...Word) *Sparse {
	return &Sparse{slices.Clone(init), nil}
}

// Load implementation for Memory interface.
func (p *Sparse) Load(address Word) (Word, error) {
	switch {
	case address < 0:
		return 0, &AddressError{address, false}
	case address < Word(len(p.dense)):
		return p.dense[address], nil
	case address < DenseWindow:
		return 0, nil
	}
	// NOTE: reading a missing key yields zero (including for a nil map).
	return p.far[address], nil
}

// Store implementation for Memory interface.
func (p *Sparse) Store(address Word, value Word) error {
	switch {
	case address < 0:
		return &AddressError{address, true}
	case address < Word(len(p.dense)):
		p.dense[address] = value
	case address < DenseWindow:
		// Grow the dense region upto the given address
		p.dense = append(p.dense, make([]Word, int(address)+1-len(p.dense))...)
		p.dense[address] = value
	default:
		if p.far == nil {
			p.far = make(map[Word]Word)
		}
		//
		p.far[address] = value
	}
	//
	return nil
}

// Contents implementation for Memory interface.
func (p *Sparse) Contents() []Word {
	return slices.Clone(p.dense)
}

// Clone implementation for Memory interface.
func (p *Sparse) Clone() Memory {
	var far map[Word]Word
	//
	if p.far != nil {
		far = maps.Clone(p.far)
	}
	//
	return &Sparse{slices.Clone(p.dense), far}
}

// Len returns the size of the dense region of this memory.
func (p *Sparse) Len() uint {
	return uint(len(p.dense))
}
