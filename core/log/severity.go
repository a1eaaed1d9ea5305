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

package log

// Severity is the importance level of a log message.
type Severity int

const (
	// Verbose is the lowest severity, used for spammy messages.
	Verbose Severity = iota
	// Debug is used for messages that help diagnose problems.
	Debug
	// Info is used for regular messages.
	Info
	// Warning is used for messages about unexpected but recoverable
	// conditions.
	Warning
	// Error is used for messages about failures.
	Error
	// Fatal is used for messages about failures that should stop the
	// process.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return "Unknown"
	}
}
