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
package queue

// Queue represents a reusable FIFO queue which is implemented using an array.
// Items are dequeued in exactly the order they were enqueued.
type Queue[T any] struct {
	items []T
	head  int
}

// NewQueue returns a queue initially holding the given items, where the first
// item given will be the first dequeued.
func NewQueue[T any](items ...T) *Queue[T] {
	var q Queue[T]
	//
	q.EnqueueAll(items)
	//
	return &q
}

// IsEmpty checks whether or not there are still items in the queue
func (p *Queue[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Len returns the number of items in the queue.
func (p *Queue[T]) Len() uint {
	return uint(len(p.items) - p.head)
}

// Peek at the nth item from the front of the queue.
func (p *Queue[T]) Peek(offset uint) T {
	var n = p.head + int(offset)
	//
	if n >= len(p.items) {
		panic("peek out-of-bounds")
	}
	//
	return p.items[n]
}

// Enqueue a new item at the back of the queue
func (p *Queue[T]) Enqueue(item T) {
	p.items = append(p.items, item)
}

// EnqueueAll enqueues zero or more items in order
func (p *Queue[T]) EnqueueAll(items []T) {
	p.items = append(p.items, items...)
}

// Dequeue the item at the front of the queue
func (p *Queue[T]) Dequeue() T {
	if p.IsEmpty() {
		panic("cannot dequeue from empty queue")
	}
	// Get first item
	item := p.items[p.head]
	// Release the slot so that dequeued items can be collected
	var empty T
	p.items[p.head] = empty
	p.head++
	// Reclaim space once the dead prefix dominates
	if p.head == len(p.items) {
		p.items, p.head = p.items[:0], 0
	} else if p.head > 32 && 2*p.head > len(p.items) {
		p.items, p.head = append(p.items[:0], p.items[p.head:]...), 0
	}
	// Done
	return item
}

// TryDequeue dequeues the item at the front of the queue, or returns false if
// the queue is empty.
func (p *Queue[T]) TryDequeue() (T, bool) {
	if p.IsEmpty() {
		var empty T
		return empty, false
	}
	//
	return p.Dequeue(), true
}

// Items returns a copy of the items in the queue, from front to back.
func (p *Queue[T]) Items() []T {
	return append([]T(nil), p.items[p.head:]...)
}
