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
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/go-intcode/pkg/vm/memory"
	log "github.com/sirupsen/logrus"
)

// Prompter supplies machine inputs read line-by-line from a given reader,
// optionally printing a prompt before each.  Blank and malformed lines are
// skipped.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  bool
}

func newPrompter(in io.Reader, out io.Writer, prompt bool) *Prompter {
	return &Prompter{bufio.NewScanner(in), out, prompt}
}

// Next reads the next input value, returning false once the reader is
// exhausted.
func (p *Prompter) Next() (memory.Word, bool) {
	for {
		if p.prompt {
			fmt.Fprint(p.out, "input> ")
		}
		//
		if !p.scanner.Scan() {
			return 0, false
		}
		//
		line := strings.TrimSpace(p.scanner.Text())
		//
		if line == "" {
			continue
		} else if value, err := strconv.ParseInt(line, 10, 64); err != nil {
			log.Errorf("invalid input \"%s\"", line)
		} else {
			return memory.Word(value), true
		}
	}
}
