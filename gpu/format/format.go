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

// Package format is the registry of API-level image formats.
//
// It answers the pure format queries the layout and descriptor code needs:
// block footprint, channel class, plane decomposition, and the translation
// to hardware format codes.
package format

import "fmt"

// Format is an API-level image or buffer format.
type Format int

const (
	UNDEFINED Format = iota

	R4G4B4A4_UNORM_PACK16
	R5G5B5A1_UNORM_PACK16
	R5G6B5_UNORM_PACK16

	R8_UNORM
	R8_SNORM
	R8_UINT
	R8_SINT

	R8G8_UNORM
	R8G8_SNORM
	R8G8_UINT
	R8G8_SINT

	R16_UNORM
	R16_SNORM
	R16_UINT
	R16_SINT
	R16_SFLOAT

	R8G8B8A8_UNORM
	R8G8B8A8_SRGB
	R8G8B8A8_SNORM
	R8G8B8A8_UINT
	R8G8B8A8_SINT
	B8G8R8A8_UNORM
	B8G8R8A8_SRGB

	A2B10G10R10_UNORM_PACK32
	A2B10G10R10_UINT_PACK32
	B10G11R11_UFLOAT_PACK32
	E5B9G9R9_UFLOAT_PACK32

	R16G16_UNORM
	R16G16_SNORM
	R16G16_UINT
	R16G16_SINT
	R16G16_SFLOAT

	R32_UINT
	R32_SINT
	R32_SFLOAT

	R16G16B16A16_UNORM
	R16G16B16A16_SNORM
	R16G16B16A16_UINT
	R16G16B16A16_SINT
	R16G16B16A16_SFLOAT

	R32G32_UINT
	R32G32_SINT
	R32G32_SFLOAT

	R32G32B32A32_UINT
	R32G32B32A32_SINT
	R32G32B32A32_SFLOAT

	D16_UNORM
	X8_D24_UNORM_PACK32
	D24_UNORM_S8_UINT
	D32_SFLOAT
	S8_UINT
	D32_SFLOAT_S8_UINT

	BC1_RGB_UNORM_BLOCK
	BC1_RGB_SRGB_BLOCK
	BC1_RGBA_UNORM_BLOCK
	BC1_RGBA_SRGB_BLOCK
	BC2_UNORM_BLOCK
	BC3_UNORM_BLOCK
	BC4_UNORM_BLOCK
	BC5_UNORM_BLOCK
	BC7_UNORM_BLOCK
	ETC2_R8G8B8_UNORM_BLOCK
	ETC2_R8G8B8A8_UNORM_BLOCK
	ASTC_4x4_UNORM_BLOCK

	G8B8G8R8_422_UNORM
	B8G8R8G8_422_UNORM
	G8_B8R8_2PLANE_420_UNORM
	G8_B8_R8_3PLANE_420_UNORM
)

// Layout is the coarse storage class of a format.
type Layout int

const (
	// Plain formats store one block per texel.
	Plain Layout = iota
	// Subsampled formats pack more than one texel into a block on a single
	// plane (YUYV and friends).
	Subsampled
	// Compressed formats store a block of texels in a fixed-size packet.
	Compressed
)

// NumType is the numeric interpretation of a format's channels.
type NumType int

const (
	UNORM NumType = iota
	SNORM
	UINT
	SINT
	UFLOAT
	SFLOAT
)

// Info describes the storage geometry and channel class of a format.
type Info struct {
	BlockWidth  uint32 // block footprint in texels
	BlockHeight uint32
	BlockSize   uint32 // bytes per block
	Layout      Layout
	NumType     NumType
	SRGB        bool
	Depth       bool
	Stencil     bool
	Planes      int
}

var infos = map[Format]Info{
	R4G4B4A4_UNORM_PACK16: {1, 1, 2, Plain, UNORM, false, false, false, 1},
	R5G5B5A1_UNORM_PACK16: {1, 1, 2, Plain, UNORM, false, false, false, 1},
	R5G6B5_UNORM_PACK16:   {1, 1, 2, Plain, UNORM, false, false, false, 1},

	R8_UNORM: {1, 1, 1, Plain, UNORM, false, false, false, 1},
	R8_SNORM: {1, 1, 1, Plain, SNORM, false, false, false, 1},
	R8_UINT:  {1, 1, 1, Plain, UINT, false, false, false, 1},
	R8_SINT:  {1, 1, 1, Plain, SINT, false, false, false, 1},

	R8G8_UNORM: {1, 1, 2, Plain, UNORM, false, false, false, 1},
	R8G8_SNORM: {1, 1, 2, Plain, SNORM, false, false, false, 1},
	R8G8_UINT:  {1, 1, 2, Plain, UINT, false, false, false, 1},
	R8G8_SINT:  {1, 1, 2, Plain, SINT, false, false, false, 1},

	R16_UNORM:  {1, 1, 2, Plain, UNORM, false, false, false, 1},
	R16_SNORM:  {1, 1, 2, Plain, SNORM, false, false, false, 1},
	R16_UINT:   {1, 1, 2, Plain, UINT, false, false, false, 1},
	R16_SINT:   {1, 1, 2, Plain, SINT, false, false, false, 1},
	R16_SFLOAT: {1, 1, 2, Plain, SFLOAT, false, false, false, 1},

	R8G8B8A8_UNORM: {1, 1, 4, Plain, UNORM, false, false, false, 1},
	R8G8B8A8_SRGB:  {1, 1, 4, Plain, UNORM, true, false, false, 1},
	R8G8B8A8_SNORM: {1, 1, 4, Plain, SNORM, false, false, false, 1},
	R8G8B8A8_UINT:  {1, 1, 4, Plain, UINT, false, false, false, 1},
	R8G8B8A8_SINT:  {1, 1, 4, Plain, SINT, false, false, false, 1},
	B8G8R8A8_UNORM: {1, 1, 4, Plain, UNORM, false, false, false, 1},
	B8G8R8A8_SRGB:  {1, 1, 4, Plain, UNORM, true, false, false, 1},

	A2B10G10R10_UNORM_PACK32: {1, 1, 4, Plain, UNORM, false, false, false, 1},
	A2B10G10R10_UINT_PACK32:  {1, 1, 4, Plain, UINT, false, false, false, 1},
	B10G11R11_UFLOAT_PACK32:  {1, 1, 4, Plain, UFLOAT, false, false, false, 1},
	E5B9G9R9_UFLOAT_PACK32:   {1, 1, 4, Plain, UFLOAT, false, false, false, 1},

	R16G16_UNORM:  {1, 1, 4, Plain, UNORM, false, false, false, 1},
	R16G16_SNORM:  {1, 1, 4, Plain, SNORM, false, false, false, 1},
	R16G16_UINT:   {1, 1, 4, Plain, UINT, false, false, false, 1},
	R16G16_SINT:   {1, 1, 4, Plain, SINT, false, false, false, 1},
	R16G16_SFLOAT: {1, 1, 4, Plain, SFLOAT, false, false, false, 1},

	R32_UINT:   {1, 1, 4, Plain, UINT, false, false, false, 1},
	R32_SINT:   {1, 1, 4, Plain, SINT, false, false, false, 1},
	R32_SFLOAT: {1, 1, 4, Plain, SFLOAT, false, false, false, 1},

	R16G16B16A16_UNORM:  {1, 1, 8, Plain, UNORM, false, false, false, 1},
	R16G16B16A16_SNORM:  {1, 1, 8, Plain, SNORM, false, false, false, 1},
	R16G16B16A16_UINT:   {1, 1, 8, Plain, UINT, false, false, false, 1},
	R16G16B16A16_SINT:   {1, 1, 8, Plain, SINT, false, false, false, 1},
	R16G16B16A16_SFLOAT: {1, 1, 8, Plain, SFLOAT, false, false, false, 1},

	R32G32_UINT:   {1, 1, 8, Plain, UINT, false, false, false, 1},
	R32G32_SINT:   {1, 1, 8, Plain, SINT, false, false, false, 1},
	R32G32_SFLOAT: {1, 1, 8, Plain, SFLOAT, false, false, false, 1},

	R32G32B32A32_UINT:   {1, 1, 16, Plain, UINT, false, false, false, 1},
	R32G32B32A32_SINT:   {1, 1, 16, Plain, SINT, false, false, false, 1},
	R32G32B32A32_SFLOAT: {1, 1, 16, Plain, SFLOAT, false, false, false, 1},

	D16_UNORM:           {1, 1, 2, Plain, UNORM, false, true, false, 1},
	X8_D24_UNORM_PACK32: {1, 1, 4, Plain, UNORM, false, true, false, 1},
	D24_UNORM_S8_UINT:   {1, 1, 4, Plain, UNORM, false, true, true, 1},
	D32_SFLOAT:          {1, 1, 4, Plain, SFLOAT, false, true, false, 1},
	S8_UINT:             {1, 1, 1, Plain, UINT, false, false, true, 1},
	D32_SFLOAT_S8_UINT:  {1, 1, 4, Plain, SFLOAT, false, true, true, 2},

	BC1_RGB_UNORM_BLOCK:       {4, 4, 8, Compressed, UNORM, false, false, false, 1},
	BC1_RGB_SRGB_BLOCK:        {4, 4, 8, Compressed, UNORM, true, false, false, 1},
	BC1_RGBA_UNORM_BLOCK:      {4, 4, 8, Compressed, UNORM, false, false, false, 1},
	BC1_RGBA_SRGB_BLOCK:       {4, 4, 8, Compressed, UNORM, true, false, false, 1},
	BC2_UNORM_BLOCK:           {4, 4, 16, Compressed, UNORM, false, false, false, 1},
	BC3_UNORM_BLOCK:           {4, 4, 16, Compressed, UNORM, false, false, false, 1},
	BC4_UNORM_BLOCK:           {4, 4, 8, Compressed, UNORM, false, false, false, 1},
	BC5_UNORM_BLOCK:           {4, 4, 16, Compressed, UNORM, false, false, false, 1},
	BC7_UNORM_BLOCK:           {4, 4, 16, Compressed, UNORM, false, false, false, 1},
	ETC2_R8G8B8_UNORM_BLOCK:   {4, 4, 8, Compressed, UNORM, false, false, false, 1},
	ETC2_R8G8B8A8_UNORM_BLOCK: {4, 4, 16, Compressed, UNORM, false, false, false, 1},
	ASTC_4x4_UNORM_BLOCK:      {4, 4, 16, Compressed, UNORM, false, false, false, 1},

	G8B8G8R8_422_UNORM: {2, 1, 4, Subsampled, UNORM, false, false, false, 1},
	B8G8R8G8_422_UNORM: {2, 1, 4, Subsampled, UNORM, false, false, false, 1},

	// Multi-planar infos describe plane 0; per-plane geometry comes from
	// PlaneFormat.
	G8_B8R8_2PLANE_420_UNORM:  {1, 1, 1, Plain, UNORM, false, false, false, 2},
	G8_B8_R8_3PLANE_420_UNORM: {1, 1, 1, Plain, UNORM, false, false, false, 3},
}

// Info returns the storage description of the format.
// It panics for formats outside the registry.
func (f Format) Info() Info {
	info, ok := infos[f]
	if !ok {
		panic(fmt.Errorf("no format info for format %d", f))
	}
	return info
}

// PlaneCount returns the number of independently-addressable planes of the
// format.
func (f Format) PlaneCount() int {
	return f.Info().Planes
}

// PlaneFormat returns the format of a single plane of f.
// Single-plane formats are their own plane format.
func (f Format) PlaneFormat(plane int) Format {
	switch f {
	case G8_B8R8_2PLANE_420_UNORM:
		if plane > 0 {
			return R8G8_UNORM
		}
		return R8_UNORM
	case G8_B8_R8_3PLANE_420_UNORM:
		return R8_UNORM
	case D32_SFLOAT_S8_UINT:
		if plane > 0 {
			return S8_UINT
		}
		return D32_SFLOAT
	default:
		return f
	}
}

// IsCompressed returns true if the format is block-compressed.
func (f Format) IsCompressed() bool { return f.Info().Layout == Compressed }

// IsSubsampled returns true if the format packs several texels into a block
// on a single plane.
func (f Format) IsSubsampled() bool { return f.Info().Layout == Subsampled }

// IsDepthOrStencil returns true if the format has a depth or stencil
// channel.
func (f Format) IsDepthOrStencil() bool {
	info := f.Info()
	return info.Depth || info.Stencil
}

// IsSRGB returns true if the format has sRGB-encoded channels.
func (f Format) IsSRGB() bool { return f.Info().SRGB }

// IsUint returns true if the format has unsigned integer channels.
func (f Format) IsUint() bool { return f.Info().NumType == UINT }

// IsSint returns true if the format has signed integer channels.
func (f Format) IsSint() bool { return f.Info().NumType == SINT }

// IsInt returns true if the format has integer channels of either
// signedness.
func (f Format) IsInt() bool { return f.IsUint() || f.IsSint() }

// Aspect selects a subset of a format's planes at the API boundary.
type Aspect int

const (
	ASPECT_COLOR Aspect = iota
	ASPECT_DEPTH
	ASPECT_STENCIL
	ASPECT_PLANE_0
	ASPECT_PLANE_1
	ASPECT_PLANE_2
)

// PlaneIndex reduces an aspect to the plane it addresses within f.
func PlaneIndex(f Format, aspect Aspect) int {
	switch aspect {
	case ASPECT_PLANE_1:
		return 1
	case ASPECT_PLANE_2:
		return 2
	case ASPECT_STENCIL:
		if f == D32_SFLOAT_S8_UINT {
			return 1
		}
		return 0
	default:
		return 0
	}
}
