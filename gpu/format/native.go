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

package format

import (
	"fmt"

	"github.com/google/tiledimg/gpu/a6xx"
)

// Support describes which hardware units accept a native format.
type Support uint8

const (
	// SupportTexture marks formats the texture fetch unit accepts.
	SupportTexture Support = 1 << iota
	// SupportColor marks formats the render backend accepts as color
	// output. Formats without it get no render-target or storage
	// descriptors.
	SupportColor
)

// Native is the hardware encoding of a format for one unit.
type Native struct {
	Fmt       a6xx.Fmt
	Swap      a6xx.Swap
	TileMode  a6xx.TileMode
	Supported Support
}

var native = map[Format]Native{
	R4G4B4A4_UNORM_PACK16: {Fmt: a6xx.FMT6_4_4_4_4_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R5G5B5A1_UNORM_PACK16: {Fmt: a6xx.FMT6_5_5_5_1_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R5G6B5_UNORM_PACK16:   {Fmt: a6xx.FMT6_5_6_5_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R8_UNORM: {Fmt: a6xx.FMT6_8_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8_SNORM: {Fmt: a6xx.FMT6_8_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8_UINT:  {Fmt: a6xx.FMT6_8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8_SINT:  {Fmt: a6xx.FMT6_8_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R8G8_UNORM: {Fmt: a6xx.FMT6_8_8_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8_SNORM: {Fmt: a6xx.FMT6_8_8_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8_UINT:  {Fmt: a6xx.FMT6_8_8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8_SINT:  {Fmt: a6xx.FMT6_8_8_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R16_UNORM:  {Fmt: a6xx.FMT6_16_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16_SNORM:  {Fmt: a6xx.FMT6_16_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16_UINT:   {Fmt: a6xx.FMT6_16_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16_SINT:   {Fmt: a6xx.FMT6_16_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16_SFLOAT: {Fmt: a6xx.FMT6_16_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R8G8B8A8_UNORM: {Fmt: a6xx.FMT6_8_8_8_8_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8B8A8_SRGB:  {Fmt: a6xx.FMT6_8_8_8_8_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8B8A8_SNORM: {Fmt: a6xx.FMT6_8_8_8_8_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8B8A8_UINT:  {Fmt: a6xx.FMT6_8_8_8_8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R8G8B8A8_SINT:  {Fmt: a6xx.FMT6_8_8_8_8_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	B8G8R8A8_UNORM: {Fmt: a6xx.FMT6_8_8_8_8_UNORM, Swap: a6xx.WXZY, Supported: SupportTexture | SupportColor},
	B8G8R8A8_SRGB:  {Fmt: a6xx.FMT6_8_8_8_8_UNORM, Swap: a6xx.WXZY, Supported: SupportTexture | SupportColor},

	A2B10G10R10_UNORM_PACK32: {Fmt: a6xx.FMT6_10_10_10_2_UNORM_DEST, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	A2B10G10R10_UINT_PACK32:  {Fmt: a6xx.FMT6_10_10_10_2_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	B10G11R11_UFLOAT_PACK32:  {Fmt: a6xx.FMT6_11_11_10_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	E5B9G9R9_UFLOAT_PACK32:   {Fmt: a6xx.FMT6_9_9_9_E5_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture},

	R16G16_UNORM:  {Fmt: a6xx.FMT6_16_16_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16_SNORM:  {Fmt: a6xx.FMT6_16_16_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16_UINT:   {Fmt: a6xx.FMT6_16_16_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16_SINT:   {Fmt: a6xx.FMT6_16_16_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16_SFLOAT: {Fmt: a6xx.FMT6_16_16_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R32_UINT:   {Fmt: a6xx.FMT6_32_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32_SINT:   {Fmt: a6xx.FMT6_32_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32_SFLOAT: {Fmt: a6xx.FMT6_32_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R16G16B16A16_UNORM:  {Fmt: a6xx.FMT6_16_16_16_16_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16B16A16_SNORM:  {Fmt: a6xx.FMT6_16_16_16_16_SNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16B16A16_UINT:   {Fmt: a6xx.FMT6_16_16_16_16_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16B16A16_SINT:   {Fmt: a6xx.FMT6_16_16_16_16_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R16G16B16A16_SFLOAT: {Fmt: a6xx.FMT6_16_16_16_16_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R32G32_UINT:   {Fmt: a6xx.FMT6_32_32_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32G32_SINT:   {Fmt: a6xx.FMT6_32_32_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32G32_SFLOAT: {Fmt: a6xx.FMT6_32_32_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	R32G32B32A32_UINT:   {Fmt: a6xx.FMT6_32_32_32_32_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32G32B32A32_SINT:   {Fmt: a6xx.FMT6_32_32_32_32_SINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	R32G32B32A32_SFLOAT: {Fmt: a6xx.FMT6_32_32_32_32_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	D16_UNORM:           {Fmt: a6xx.FMT6_16_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	X8_D24_UNORM_PACK32: {Fmt: a6xx.FMT6_Z24_UNORM_S8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	D24_UNORM_S8_UINT:   {Fmt: a6xx.FMT6_Z24_UNORM_S8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	D32_SFLOAT:          {Fmt: a6xx.FMT6_32_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	S8_UINT:             {Fmt: a6xx.FMT6_8_UINT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},
	D32_SFLOAT_S8_UINT:  {Fmt: a6xx.FMT6_32_FLOAT, Swap: a6xx.WZYX, Supported: SupportTexture | SupportColor},

	BC1_RGB_UNORM_BLOCK:       {Fmt: a6xx.FMT6_DXT1, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC1_RGB_SRGB_BLOCK:        {Fmt: a6xx.FMT6_DXT1, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC1_RGBA_UNORM_BLOCK:      {Fmt: a6xx.FMT6_DXT1, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC1_RGBA_SRGB_BLOCK:       {Fmt: a6xx.FMT6_DXT1, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC2_UNORM_BLOCK:           {Fmt: a6xx.FMT6_DXT3, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC3_UNORM_BLOCK:           {Fmt: a6xx.FMT6_DXT5, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC4_UNORM_BLOCK:           {Fmt: a6xx.FMT6_RGTC1_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC5_UNORM_BLOCK:           {Fmt: a6xx.FMT6_RGTC2_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
	BC7_UNORM_BLOCK:           {Fmt: a6xx.FMT6_BPTC, Swap: a6xx.WZYX, Supported: SupportTexture},
	ETC2_R8G8B8_UNORM_BLOCK:   {Fmt: a6xx.FMT6_ETC2_RGB8, Swap: a6xx.WZYX, Supported: SupportTexture},
	ETC2_R8G8B8A8_UNORM_BLOCK: {Fmt: a6xx.FMT6_ETC2_RGBA8, Swap: a6xx.WZYX, Supported: SupportTexture},
	ASTC_4x4_UNORM_BLOCK:      {Fmt: a6xx.FMT6_ASTC_4X4, Swap: a6xx.WZYX, Supported: SupportTexture},

	G8B8G8R8_422_UNORM:        {Fmt: a6xx.FMT6_G8R8B8R8_422_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
	B8G8R8G8_422_UNORM:        {Fmt: a6xx.FMT6_R8G8R8B8_422_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
	G8_B8R8_2PLANE_420_UNORM:  {Fmt: a6xx.FMT6_R8_G8B8_2PLANE_420_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
	G8_B8_R8_3PLANE_420_UNORM: {Fmt: a6xx.FMT6_8_8_8_420_UNORM, Swap: a6xx.WZYX, Supported: SupportTexture},
}

func nativeFormat(f Format) Native {
	n, ok := native[f]
	if !ok {
		panic(fmt.Errorf("no native encoding for format %d", f))
	}
	return n
}

// Supported returns which hardware units accept f.
func Supported(f Format) Support {
	return nativeFormat(f).Supported
}

// Texture returns the hardware encoding of f for the texture fetch unit.
// It panics if the format is not sampleable.
func Texture(f Format, tileMode a6xx.TileMode) Native {
	n := nativeFormat(f)
	if n.Supported&SupportTexture == 0 {
		panic(fmt.Errorf("format %d is not sampleable", f))
	}
	// The DEST variant is only for the render backend.
	if n.Fmt == a6xx.FMT6_10_10_10_2_UNORM_DEST {
		n.Fmt = a6xx.FMT6_10_10_10_2_UNORM
	}
	n.TileMode = tileMode
	return n
}

// Color returns the hardware encoding of f for the render backend.
// It panics if the format does not support color output.
func Color(f Format, tileMode a6xx.TileMode) Native {
	n := nativeFormat(f)
	if n.Supported&SupportColor == 0 {
		panic(fmt.Errorf("format %d does not support color output", f))
	}
	if n.Fmt == a6xx.FMT6_10_10_10_2_UNORM_DEST && tileMode == a6xx.TILE6_LINEAR {
		n.Fmt = a6xx.FMT6_10_10_10_2_UNORM
	}
	n.TileMode = tileMode
	return n
}
