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
package util

import (
	"iter"
	"slices"
)

// Permutations enumerates every ordering of the given items.  Orderings are
// produced in lexicographic order of the items' original positions, starting
// with the items as given.  Each yielded slice is freshly allocated and can
// therefore be retained by the caller.  Duplicate items are not coalesced,
// hence n items always produce n! orderings.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		indices := make([]int, len(items))
		//
		for i := range indices {
			indices[i] = i
		}
		//
		for {
			perm := make([]T, len(items))
			//
			for i, j := range indices {
				perm[i] = items[j]
			}
			//
			if !yield(perm) || !nextPermutation(indices) {
				return
			}
		}
	}
}

// NextPermutation rearranges indices into the lexicographically next greater
// ordering, returning false if it is already the greatest.
func nextPermutation(indices []int) bool {
	// Find the rightmost ascent
	i := len(indices) - 2
	for i >= 0 && indices[i] >= indices[i+1] {
		i--
	}
	//
	if i < 0 {
		return false
	}
	// Find rightmost element exceeding the ascent
	j := len(indices) - 1
	for indices[j] <= indices[i] {
		j--
	}
	//
	indices[i], indices[j] = indices[j], indices[i]
	slices.Reverse(indices[i+1:])
	//
	return true
}
