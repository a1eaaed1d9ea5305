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

import "errors"

// OnError is the result of calling ThatError on an Assertion.
// It provides assertion tests that are specific to error types.
type OnError struct {
	assertion *Assertion
	err       error
}

// ThatError returns an OnError for the specified error value.
func (a *Assertion) ThatError(err error) OnError {
	return OnError{assertion: a, err: err}
}

// Succeeded asserts that the error value was nil.
func (o OnError) Succeeded() bool {
	return o.assertion.Compare(o.err, "==", nil).Test(o.err == nil)
}

// Failed asserts that the error value was a non-nil error.
func (o OnError) Failed() bool {
	return o.assertion.Compare(o.err, "!=", nil).Test(o.err != nil)
}

// Equals asserts that the error chain contains the expected error, in the
// sense of errors.Is.
func (o OnError) Equals(expect error) bool {
	return o.assertion.Compare(o.err, "is", expect).Test(errors.Is(o.err, expect))
}
