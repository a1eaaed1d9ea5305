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

// Package a6xx models the a6xx-generation resource descriptor registers.
//
// Descriptor words are assembled from typed register views so that every
// field position is defined exactly once. The enumerant names follow the
// hardware register database.
package a6xx

// TileMode is the storage arrangement of a surface.
type TileMode uint32

const (
	TILE6_LINEAR TileMode = 0
	TILE6_1      TileMode = 1
	TILE6_2      TileMode = 2
	// TILE6_3 is the tile mode used for optimally-tiled images.
	TILE6_3 TileMode = 3
)

// Swap is the byte-swap class applied when fetching a surface.
type Swap uint32

const (
	WZYX Swap = 0
	WXZY Swap = 1
	ZYXW Swap = 2
	XYZW Swap = 3
)

// TexSwiz is a source selector for one component of a texture fetch.
type TexSwiz uint32

const (
	TEX_X    TexSwiz = 0
	TEX_Y    TexSwiz = 1
	TEX_Z    TexSwiz = 2
	TEX_W    TexSwiz = 3
	TEX_ZERO TexSwiz = 4
	TEX_ONE  TexSwiz = 5
)

// Samples is the MSAA sample-count enumerant.
type Samples uint32

const (
	MSAA_ONE  Samples = 0
	MSAA_TWO  Samples = 1
	MSAA_FOUR Samples = 2
)

// TexType is the texture dimensionality enumerant.
type TexType uint32

const (
	TEX_1D   TexType = 0
	TEX_2D   TexType = 1
	TEX_CUBE TexType = 2
	TEX_3D   TexType = 3
)

// Fmt is a hardware surface format code.
type Fmt uint32

const (
	FMT6_NONE Fmt = 0xff

	FMT6_A8_UNORM Fmt = 0x02
	FMT6_8_UNORM  Fmt = 0x03
	FMT6_8_SNORM  Fmt = 0x04
	FMT6_8_UINT   Fmt = 0x05
	FMT6_8_SINT   Fmt = 0x06

	FMT6_4_4_4_4_UNORM Fmt = 0x08
	FMT6_5_5_5_1_UNORM Fmt = 0x0a
	FMT6_5_6_5_UNORM   Fmt = 0x0e

	FMT6_8_8_UNORM Fmt = 0x0f
	FMT6_8_8_SNORM Fmt = 0x10
	FMT6_8_8_UINT  Fmt = 0x11
	FMT6_8_8_SINT  Fmt = 0x12

	FMT6_16_UNORM Fmt = 0x15
	FMT6_16_SNORM Fmt = 0x16
	FMT6_16_FLOAT Fmt = 0x17
	FMT6_16_UINT  Fmt = 0x18
	FMT6_16_SINT  Fmt = 0x19

	FMT6_8_8_8_8_UNORM  Fmt = 0x30
	FMT6_8_8_8_X8_UNORM Fmt = 0x31
	FMT6_8_8_8_8_SNORM  Fmt = 0x32
	FMT6_8_8_8_8_UINT   Fmt = 0x33
	FMT6_8_8_8_8_SINT   Fmt = 0x34

	FMT6_9_9_9_E5_FLOAT Fmt = 0x35

	FMT6_10_10_10_2_UNORM      Fmt = 0x36
	FMT6_10_10_10_2_UNORM_DEST Fmt = 0x37
	FMT6_10_10_10_2_UINT       Fmt = 0x3a

	FMT6_11_11_10_FLOAT Fmt = 0x42

	FMT6_16_16_UNORM Fmt = 0x43
	FMT6_16_16_SNORM Fmt = 0x44
	FMT6_16_16_FLOAT Fmt = 0x45
	FMT6_16_16_UINT  Fmt = 0x46
	FMT6_16_16_SINT  Fmt = 0x47

	FMT6_32_FLOAT Fmt = 0x4a
	FMT6_32_UINT  Fmt = 0x4b
	FMT6_32_SINT  Fmt = 0x4c

	FMT6_16_16_16_16_UNORM Fmt = 0x60
	FMT6_16_16_16_16_SNORM Fmt = 0x61
	FMT6_16_16_16_16_FLOAT Fmt = 0x62
	FMT6_16_16_16_16_UINT  Fmt = 0x63
	FMT6_16_16_16_16_SINT  Fmt = 0x64

	FMT6_32_32_FLOAT Fmt = 0x67
	FMT6_32_32_UINT  Fmt = 0x68
	FMT6_32_32_SINT  Fmt = 0x69

	FMT6_32_32_32_32_FLOAT Fmt = 0x82
	FMT6_32_32_32_32_UINT  Fmt = 0x83
	FMT6_32_32_32_32_SINT  Fmt = 0x84

	FMT6_X8Z24_UNORM       Fmt = 0xa0
	FMT6_Z24_UNORM_S8_UINT Fmt = 0xa1

	FMT6_ETC2_RGB8  Fmt = 0xb1
	FMT6_ETC2_RGBA8 Fmt = 0xb2

	FMT6_DXT1        Fmt = 0xba
	FMT6_DXT3        Fmt = 0xbb
	FMT6_DXT5        Fmt = 0xbc
	FMT6_RGTC1_UNORM Fmt = 0xbd
	FMT6_RGTC1_SNORM Fmt = 0xbe
	FMT6_RGTC2_UNORM Fmt = 0xbf
	FMT6_RGTC2_SNORM Fmt = 0xc0
	FMT6_BPTC        Fmt = 0xc3
	FMT6_ASTC_4X4    Fmt = 0xc4

	FMT6_G8R8B8R8_422_UNORM            Fmt = 0xe3
	FMT6_R8G8R8B8_422_UNORM            Fmt = 0xe4
	FMT6_R8_G8B8_2PLANE_420_UNORM      Fmt = 0xe5
	FMT6_8_8_8_420_UNORM               Fmt = 0xe6
	FMT6_Z24_UINT_S8_UINT              Fmt = 0xe9
	FMT6_Z24_UNORM_S8_UINT_AS_R8G8B8A8 Fmt = 0xea
)
