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
	"strings"

	"github.com/consensys/go-intcode/pkg/util/source"
	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// Program is an ordered sequence of words, which forms the initial contents of
// a machine's memory.  A program is never modified after being parsed: every
// machine constructed from it receives its own copy.
type Program []memory.Word

// Clone returns an independent copy of this program.
func (p Program) Clone() Program {
	return append(Program(nil), p...)
}

// Len returns the number of words in this program.
func (p Program) Len() uint {
	return uint(len(p))
}

// String returns this program in its textual form, which can be parsed again.
func (p Program) String() string {
	var builder strings.Builder
	//
	for i, w := range p {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(strconv.FormatInt(int64(w), 10))
	}
	//
	return builder.String()
}

// ReadFile reads and parses a program from a given file.  Syntax errors are
// returned as *source.SyntaxError.
func ReadFile(filename string) (Program, error) {
	file, err := source.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return parseOrError(file)
}

// ParseString parses a program from a given string.  Syntax errors are returned
// as *source.SyntaxError.
func ParseString(text string) (Program, error) {
	return parseOrError(source.NewSourceFile("<input>", []byte(text)))
}

func parseOrError(file *source.File) (Program, error) {
	prog, err := Parse(file)
	// NOTE: avoid returning a typed nil as a non-nil error.
	if err != nil {
		return nil, err
	}
	//
	return prog, nil
}
