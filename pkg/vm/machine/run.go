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
package machine

import (
	"github.com/consensys/go-intcode/pkg/vm/memory"
)

// Run executes a given machine to completion after queueing the given inputs,
// returning every output produced in order.  If the machine blocks on input
// which neither its queue nor its provider can supply, then ErrInputStarved is
// returned along with the outputs produced so far.
func Run(m *Machine, inputs ...memory.Word) ([]memory.Word, error) {
	var outputs []memory.Word
	//
	m.Provide(inputs...)
	//
	err := Drive(m, func(value memory.Word) error {
		outputs = append(outputs, value)
		return nil
	})
	//
	return outputs, err
}

// Drive executes a given machine to completion, passing each output to a
// given consumer as it is produced.  Inputs are obtained from the machine's
// queue and provider, so this suits controllers which decide the next input
// based on the outputs seen so far.  Execution stops early if the consumer
// returns an error.
func Drive(m *Machine, consumer func(memory.Word) error) error {
	for {
		event, err := m.Resume()
		//
		switch {
		case err != nil:
			return err
		case event.IsHalted():
			return nil
		case event.NeedsInput():
			return ErrInputStarved
		}
		//
		if err = consumer(event.Value()); err != nil {
			return err
		}
	}
}
