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

// Word is the data type held in every memory location of the machine, and
// therefore the type of every value an instruction reads, writes or produces.
// Programs in the wild exercise magnitudes approaching 2^60, hence a full
// 64bit signed word.
type Word int64

// Memory represents an unbounded random-access memory.  Initially, all
// locations can be considered to hold zero.  Thus, reading a location which has
// not yet been written will return zero; otherwise, it will return the last
// value written.  Only non-negative addresses are valid.
type Memory interface {
	// Load the word stored at a given address, or zero if that address has
	// never been written.  Loading from a negative address fails with an
	// AddressError.
	Load(address Word) (Word, error)
	// Store a given word at a given address, overwriting the previous value
	// stored there.  Storing to a negative address fails with an AddressError.
	Store(address Word, value Word) error
	// Contents returns a copy of the contiguous prefix of this memory, starting
	// from address zero upto (and including) the highest location within that
	// prefix which has been initialised or written.
	Contents() []Word
	// Clone returns an independent copy of this memory, such that writes to
	// either are not visible in the other.
	Clone() Memory
}
