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

// Token associates a piece of information with a given range of characters in
// the string being scanned.
type Token struct {
	Kind uint
	Span Span
}

// Lexer provides a top-level construct for tokenising a given input string.
// Tokenising stops at the first point where the scanner cannot consume
// anything, which can be detected by checking Remaining() after Collect().
type Lexer[T any] struct {
	items   []T
	index   int
	scanner Scanner[T]
	next    *Token
}

// NewLexer constructs a new lexer with a given scanner.
func NewLexer[T any](input []T, scanner Scanner[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, scanner, nil}
}

// Index returns the position within the original sequence of the next item to
// be scanned.
func (p *Lexer[T]) Index() int {
	return p.index
}

// Remaining determines how many items from the original sequence were left.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// HasNext checks whether or not there are any tokens remaining.
func (p *Lexer[T]) HasNext() bool {
	p.scan()
	return p.next != nil
}

// Next returns the next token and advances the lexer.
func (p *Lexer[T]) Next() Token {
	p.scan()
	//
	if p.next == nil {
		panic("no token available")
	}
	//
	next := *p.next
	p.next = nil
	//
	if p.index == len(p.items) {
		// Step past the end, so the EOF token is produced only once.
		p.index++
	} else {
		p.index = next.Span.End()
	}
	//
	return next
}

// Collect is a convenience function which parses all remaining tokens in one
// go, producing an array of tokens.
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for p.HasNext() {
		tokens = append(tokens, p.Next())
	}
	//
	return tokens
}

func (p *Lexer[T]) scan() {
	if p.next != nil || p.index > len(p.items) {
		return
	}
	//
	if token, ok := p.scanner(p.items[p.index:]); ok {
		// Shift span into correct position
		token.Span = NewSpan(token.Span.Start()+p.index, token.Span.End()+p.index)
		p.next = &token
	}
}
