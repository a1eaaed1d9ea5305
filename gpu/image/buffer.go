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
	"fmt"

	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// WholeSize makes a buffer view cover the buffer from its offset to the
// end.
const WholeSize = ^uint64(0)

// Buffer is a formatted-fetch source: a range of bound memory.
type Buffer struct {
	Memory *Memory
	Offset uint64
	Size   uint64
}

// IOVA returns the GPU address of the start of the buffer.
func (b *Buffer) IOVA() uint64 {
	return b.Memory.IOVA + b.Offset
}

// BufferView is a texel view of a buffer: a texture descriptor addressing
// the buffer as a huge 2D surface.
type BufferView struct {
	Buffer *Buffer
	Format format.Format

	Descriptor [a6xx.TexConstDwords]uint32
}

// CreateBufferView builds the texel-fetch descriptor for a range of buf.
// size may be WholeSize.
func (d *Device) CreateBufferView(buf *Buffer, f format.Format, offset, size uint64) *BufferView {
	if size == WholeSize {
		size = buf.Size - offset
	}
	info := f.Info()
	if info.BlockWidth != 1 || info.BlockHeight != 1 {
		panic(fmt.Sprintf("image: format %d cannot view a buffer", f))
	}

	elements := uint32(size / uint64(info.BlockSize))
	iova := buf.IOVA() + offset

	nat := format.Texture(f, a6xx.TILE6_LINEAR)

	v := &BufferView{Buffer: buf, Format: f}
	desc := &v.Descriptor
	desc[0] = a6xx.TexConst0TileMode(a6xx.TILE6_LINEAR) |
		texSwiz(f, format.ASPECT_COLOR, ComponentMapping{}, nil, false) |
		a6xx.TexConst0Fmt(nat.Fmt) |
		a6xx.TexConst0Swap(nat.Swap)
	if f.IsSRGB() {
		desc[0] |= a6xx.TexConst0SRGB
	}
	// The element count splits across the width and height fields; the
	// fetch unit multiplies them back together.
	desc[1] = a6xx.TexConst1Width(elements&0x7fff) |
		a6xx.TexConst1Height(elements>>15)
	desc[2] = a6xx.TexConst2UNK4 | a6xx.TexConst2UNK31
	desc[4] = a6xx.TexConst4BaseLo(iova)
	desc[5] = a6xx.TexConst5BaseHi(iova)
	return v
}
