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

package u32_test

import (
	"testing"

	"github.com/google/tiledimg/core/assert"
	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/core/math/u32"
)

func TestAlignUp(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		value, align, expect uint32
	}{
		{0, 64, 0},
		{1, 64, 64},
		{64, 64, 64},
		{65, 64, 128},
		{300, 64, 320},
		{4095, 4096, 4096},
	} {
		assert.For(ctx, "AlignUp(%d, %d)", test.value, test.align).
			That(u32.AlignUp(test.value, test.align)).Equals(test.expect)
	}
}

func TestCeilDiv(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		n, d, expect uint32
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{1024, 16, 64},
	} {
		assert.For(ctx, "CeilDiv(%d, %d)", test.n, test.d).
			That(u32.CeilDiv(test.n, test.d)).Equals(test.expect)
	}
}

func TestLog2Ceil(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		value, expect uint32
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{64, 6},
		{65, 7},
	} {
		assert.For(ctx, "Log2Ceil(%d)", test.value).
			That(u32.Log2Ceil(test.value)).Equals(test.expect)
	}
}

func TestMinify(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		value, levels, expect uint32
	}{
		{1024, 0, 1024},
		{1024, 3, 128},
		{1024, 10, 1},
		{1024, 14, 1},
		{3, 1, 1},
	} {
		assert.For(ctx, "Minify(%d, %d)", test.value, test.levels).
			That(u32.Minify(test.value, test.levels)).Equals(test.expect)
	}
}

func TestNextPOT(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		value, expect uint32
	}{
		{1, 1},
		{2, 2},
		{3, 4},
		{768, 1024},
		{1024, 1024},
	} {
		assert.For(ctx, "NextPOT(%d)", test.value).
			That(u32.NextPOT(test.value)).Equals(test.expect)
	}
}
