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
package program

import (
	"strconv"

	"github.com/consensys/go-intcode/pkg/util/source"
	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// Token kinds
const (
	END_OF uint = iota
	NUMBER
	MINUS
	PLUS
	COMMA
	WHITESPACE
)

// Rule for describing numbers
var number = source.ManyWith(NUMBER, '0', '9')

// Rule for describing whitespace
var whitespace = source.Many(WHITESPACE, ' ', '\t', '\n', '\r')

// Rule for describing program text
var lexRule = source.Or(
	number,
	source.One(COMMA, ','),
	source.One(MINUS, '-'),
	source.One(PLUS, '+'),
	whitespace,
	source.Eof[rune](END_OF),
)

// Parse the text of a given source file into a program.  Program text is a
// comma separated sequence of base 10 integers, each with an optional sign.
// Whitespace (including newlines) is permitted around and between integers,
// but not between a sign and its digits.
func Parse(file *source.File) (Program, *source.SyntaxError) {
	var (
		lexer  = source.NewLexer(file.Contents(), lexRule)
		tokens = lexer.Collect()
	)
	// Check whether anything was left unscanned
	if lexer.Remaining() != 0 {
		index := lexer.Index()
		return nil, file.SyntaxError(source.NewSpan(index, index+1), "unknown text encountered")
	}
	//
	p := parser{file, removeWhitespace(tokens), 0}
	//
	return p.parseProgram()
}

type parser struct {
	file   *source.File
	tokens []source.Token
	index  int
}

func (p *parser) parseProgram() (Program, *source.SyntaxError) {
	var words Program
	//
	if p.lookahead().Kind == END_OF {
		return nil, p.file.SyntaxError(p.lookahead().Span, "empty program")
	}
	//
	for {
		word, err := p.parseWord()
		if err != nil {
			return nil, err
		}
		//
		words = append(words, word)
		//
		switch next := p.next(); next.Kind {
		case END_OF:
			return words, nil
		case COMMA:
			continue
		default:
			return nil, p.file.SyntaxError(next.Span, "expected comma")
		}
	}
}

func (p *parser) parseWord() (memory.Word, *source.SyntaxError) {
	var (
		token = p.next()
		span  = token.Span
	)
	// Optional sign, immediately followed by digits
	if token.Kind == MINUS || token.Kind == PLUS {
		digits := p.next()
		//
		if digits.Kind != NUMBER || digits.Span.Start() != span.End() {
			return 0, p.file.SyntaxError(span.Join(digits.Span), "expected integer")
		}
		//
		span = span.Join(digits.Span)
	} else if token.Kind != NUMBER {
		return 0, p.file.SyntaxError(span, "expected integer")
	}
	//
	value, err := strconv.ParseInt(p.file.Text(span), 10, 64)
	if err != nil {
		return 0, p.file.SyntaxError(span, "integer out of range")
	}
	//
	return memory.Word(value), nil
}

func (p *parser) lookahead() source.Token {
	return p.tokens[p.index]
}

func (p *parser) next() source.Token {
	token := p.tokens[p.index]
	// END_OF is sticky
	if token.Kind != END_OF {
		p.index++
	}
	//
	return token
}

func removeWhitespace(tokens []source.Token) []source.Token {
	var ntokens []source.Token
	//
	for _, t := range tokens {
		if t.Kind != WHITESPACE {
			ntokens = append(ntokens, t)
		}
	}
	//
	return ntokens
}
