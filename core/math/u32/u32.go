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

package u32

import "math/bits"

// Min returns the minimum value of a and b.
func Min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum value of a and b.
func Max(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// AlignUp returns the result of aligning up the given value to the given
// alignment. alignment must be a power of two.
func AlignUp(value, alignment uint32) uint32 {
	return (value + alignment - 1) &^ (alignment - 1)
}

// CeilDiv returns the quotient of a and b, rounded up.
func CeilDiv(a, b uint32) uint32 {
	return (a + b - 1) / b
}

// Log2Ceil returns the base-2 logarithm of v, rounded up.
// Log2Ceil(0) and Log2Ceil(1) are both 0.
func Log2Ceil(v uint32) uint32 {
	if v <= 1 {
		return 0
	}
	return uint32(bits.Len32(v - 1))
}

// NextPOT returns the next power of two greater than or equal to v.
func NextPOT(v uint32) uint32 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len32(v-1)
}

// Minify returns v right-shifted by levels, clamped to a minimum of 1.
func Minify(v, levels uint32) uint32 {
	return Max(v>>levels, 1)
}
