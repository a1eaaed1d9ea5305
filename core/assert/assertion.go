// Copyright (C) 2021 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assert

import (
	"bytes"
	"fmt"
	"reflect"
)

type level int

const (
	levelLog = level(iota)
	levelError
	levelFatal
)

// Assertion is the type for the start of an assertion line.
// You construct an assertion from an Output using assert.For.
type Assertion struct {
	level level
	out   *bytes.Buffer
	to    Output
}

// Critical switches this assertion from Error to Fatal.
func (a *Assertion) Critical() *Assertion {
	a.level = levelFatal
	return a
}

// Got appends the value being tested to the assertion message.
func (a *Assertion) Got(values ...interface{}) *Assertion {
	fmt.Fprint(a.out, "Got       ")
	fmt.Fprintln(a.out, values...)
	return a
}

// Expect appends the operator and the expected values to the assertion
// message.
func (a *Assertion) Expect(op string, values ...interface{}) *Assertion {
	fmt.Fprintf(a.out, "Expect %v ", op)
	fmt.Fprintln(a.out, values...)
	return a
}

// Compare is a helper for the common pattern of Got(value).Expect(op, expect).
func (a *Assertion) Compare(value interface{}, op string, expect ...interface{}) *Assertion {
	return a.Got(value).Expect(op, expect...)
}

// Test commits the assertion message if the condition does not hold, and
// returns the condition.
func (a *Assertion) Test(condition bool) bool {
	if !condition {
		a.commit()
	}
	return condition
}

// TestDeepEqual is a helper for testing deep equality of two values and
// committing the comparison if they do not match.
func (a *Assertion) TestDeepEqual(value, expect interface{}) bool {
	return a.Compare(value, "deep ==", expect).Test(reflect.DeepEqual(value, expect))
}

func (a *Assertion) commit() {
	switch a.level {
	case levelFatal:
		a.to.Fatal(a.out.String())
	case levelError:
		a.to.Error(a.out.String())
	default:
		a.to.Log(a.out.String())
	}
}
