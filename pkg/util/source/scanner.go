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
package source

import (
	"cmp"
	"slices"
)

// Scanner looks at a given sequence of items, starting from the beginning, and
// attempts to consume one or more of them.  If it cannot, then false is
// returned.  Otherwise, it returns a Token spanning the consumed items.
type Scanner[T any] func([]T) (Token, bool)

// Eof produces a token with a given tag at the end of the sequence.
func Eof[T any](tag uint) Scanner[T] {
	return func(items []T) (Token, bool) {
		return Token{tag, NewSpan(0, 0)}, len(items) == 0
	}
}

// One associates a single given item with a given tag.
func One[T comparable](tag uint, item T) Scanner[T] {
	return func(items []T) (Token, bool) {
		return Token{tag, NewSpan(0, 1)}, len(items) > 0 && items[0] == item
	}
}

// Many associates a maximal run of one or more of the given items with a given
// tag.
func Many[T comparable](tag uint, set ...T) Scanner[T] {
	return run(tag, func(item T) bool { return slices.Contains(set, item) })
}

// ManyWith associates a maximal run of one or more items within a given
// (inclusive) range with a given tag.
func ManyWith[T cmp.Ordered](tag uint, first T, last T) Scanner[T] {
	return run(tag, func(item T) bool { return first <= item && item <= last })
}

// Or accepts whatever is accepted by the first of the given scanners to accept
// anything.
func Or[T any](scanners ...Scanner[T]) Scanner[T] {
	return func(items []T) (Token, bool) {
		for _, scanner := range scanners {
			if token, ok := scanner(items); ok {
				return token, true
			}
		}
		//
		return Token{}, false
	}
}

func run[T any](tag uint, accept func(T) bool) Scanner[T] {
	return func(items []T) (Token, bool) {
		i := 0
		//
		for i < len(items) && accept(items[i]) {
			i++
		}
		//
		return Token{tag, NewSpan(0, i)}, i != 0
	}
}
