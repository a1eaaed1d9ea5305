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

package image

import (
	"testing"

	"github.com/google/tiledimg/core/assert"
	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

func TestBufferViewElementSplit(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	buf := &Buffer{
		Memory: &Memory{IOVA: 1 << 32, Size: 1 << 21},
		Size:   1 << 21,
	}

	// 65536 16-byte texels: the element count wraps out of the width field
	// entirely.
	v := d.CreateBufferView(buf, format.R32G32B32A32_SFLOAT, 0, 65536*16)
	desc := v.Descriptor
	assert.For(ctx, "width").That(desc[1] & 0x7fff).Equals(uint32(0))
	assert.For(ctx, "height").That(desc[1] >> 15 & 0x7fff).Equals(uint32(2))

	assert.For(ctx, "format").That(desc[0] >> 22 & 0xff).
		Equals(uint32(a6xx.FMT6_32_32_32_32_FLOAT))
	assert.For(ctx, "linear").That(desc[0] & 3).Equals(uint32(a6xx.TILE6_LINEAR))
	assert.For(ctx, "base").That(desc[4]).Equals(uint32(buf.IOVA()))
	assert.For(ctx, "base hi").That(desc[5]).Equals(uint32(1))
	assert.For(ctx, "unk bits").That(desc[2]).
		Equals(a6xx.TexConst2UNK4 | a6xx.TexConst2UNK31)
}

func TestBufferViewOffsetAndWholeSize(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	buf := &Buffer{
		Memory: &Memory{IOVA: 1 << 32, Size: 4096},
		Offset: 1024,
		Size:   2048,
	}

	v := d.CreateBufferView(buf, format.R32_UINT, 512, WholeSize)
	desc := v.Descriptor
	// (2048 - 512) / 4 = 384 elements.
	assert.For(ctx, "width").That(desc[1] & 0x7fff).Equals(uint32(384))
	assert.For(ctx, "height").That(desc[1] >> 15 & 0x7fff).Equals(uint32(0))
	assert.For(ctx, "base").That(desc[4]).Equals(uint32(buf.IOVA() + 512))
}

func TestBufferViewSRGB(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	buf := &Buffer{
		Memory: &Memory{IOVA: 1 << 32, Size: 4096},
		Size:   4096,
	}

	v := d.CreateBufferView(buf, format.R8G8B8A8_SRGB, 0, WholeSize)
	assert.For(ctx, "srgb set").That(v.Descriptor[0]&a6xx.TexConst0SRGB != 0).IsTrue()

	v = d.CreateBufferView(buf, format.R8G8B8A8_UNORM, 0, WholeSize)
	assert.For(ctx, "srgb clear").That(v.Descriptor[0]&a6xx.TexConst0SRGB != 0).IsFalse()
}
