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

// Package fdl computes the memory layout of image planes for a6xx-class
// tiled GPUs.
//
// A Layout holds one plane: a per-mip slice table, the optional
// bandwidth-compression (UBWC) metadata slices, and the derived strides and
// alignments. The layout is computed once by Layout6 and never mutated
// afterwards.
package fdl

import (
	"github.com/google/tiledimg/core/math/u32"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// MaxLevels is the deepest mip chain the layout supports (16K base extent).
const MaxLevels = 15

const (
	// rgbTileWidthAlign is the alignment of a UBWC metadata row in bytes.
	rgbTileWidthAlign = 64
	// rgbTileHeightAlign is the alignment of a UBWC metadata plane height
	// for single-level images; mipmapped images align to 64 instead.
	rgbTileHeightAlign = 16
	// ubwcPlaneSizeAlign is the alignment of each UBWC metadata slice.
	ubwcPlaneSizeAlign = 4096
)

// Slice describes the storage of a single mip level within a plane.
type Slice struct {
	// Offset is the byte offset of the slice from the start of the image.
	Offset uint64
	// Size0 is the per-layer (or per-depth for 3D) byte size of the level.
	Size0 uint32
}

// Layout is the computed memory layout of one image plane.
type Layout struct {
	Slices     [MaxLevels]Slice
	UBWCSlices [MaxLevels]Slice

	// Pitch0 is the byte pitch of mip 0. Smaller levels derive their pitch
	// by minification re-aligned to 1 << PitchAlign.
	Pitch0 uint32
	// UBWCWidth0 is the byte width of the mip-0 UBWC metadata row.
	UBWCWidth0 uint32
	// UBWCHeight0 is the row count of the mip-0 UBWC metadata plane.
	UBWCHeight0 uint32

	// LayerSize is the per-layer stride for layer-first layouts.
	LayerSize uint32
	// UBWCLayerSize is the per-layer stride of the UBWC metadata.
	UBWCLayerSize uint32

	// TileMode is the whole-image tile mode. Individual levels may still be
	// linear; see TileModeAt.
	TileMode a6xx.TileMode
	// UBWC is set when the plane carries a compression metadata region.
	UBWC bool
	// LayerFirst is set when array layers are laid out outermost (anything
	// but 3D images).
	LayerFirst bool
	// TileAll forces every level to be tiled; set when UBWC is enabled.
	TileAll bool

	// BaseAlign is the required byte alignment of the plane base address.
	BaseAlign uint32
	// PitchAlign is the log2 of the byte alignment of every level's pitch.
	PitchAlign uint32
	// CPP is the bytes per block, multiplied by the sample count.
	CPP uint32

	// Mip-0 extent in texels, after plane subsampling.
	Width0, Height0, Depth0 uint32
	SampleCount             uint32
	Format                  format.Format

	// Size is the total byte size of the plane, including UBWC metadata and
	// any explicit base offset.
	Size uint64
}

// Pitch returns the byte pitch of the given level.
func (l *Layout) Pitch(level uint32) uint32 {
	return u32.AlignUp(u32.Minify(l.Pitch0, level), 1<<l.PitchAlign)
}

// UBWCPitch returns the byte pitch of the given level's UBWC metadata, or 0
// when the plane is not compressed.
func (l *Layout) UBWCPitch(level uint32) uint32 {
	if !l.UBWC {
		return 0
	}
	return u32.AlignUp(u32.Minify(l.UBWCWidth0, level), rgbTileWidthAlign)
}

// LevelLinear reports whether the hardware stores the given level linearly
// even though the image is tiled: tails smaller than a tile always are.
func (l *Layout) LevelLinear(level uint32) bool {
	if l.TileAll {
		return false
	}
	if u32.Minify(l.Width0, level) < 16 {
		return true
	}
	if u32.Minify(l.Height0, level) < 4 {
		return true
	}
	return false
}

// TileModeAt returns the effective tile mode of the given level.
func (l *Layout) TileModeAt(level uint32) a6xx.TileMode {
	if l.TileMode == a6xx.TILE6_LINEAR {
		return a6xx.TILE6_LINEAR
	}
	if l.LevelLinear(level) {
		return a6xx.TILE6_LINEAR
	}
	return l.TileMode
}

// UBWCEnabled reports whether the given level has compression metadata.
func (l *Layout) UBWCEnabled(level uint32) bool {
	return l.UBWC && !l.LevelLinear(level)
}

// LayerStride returns the byte distance between adjacent array layers of
// the given level.
func (l *Layout) LayerStride(level uint32) uint32 {
	if l.LayerFirst {
		return l.LayerSize
	}
	return l.Slices[level].Size0
}

// SurfaceOffset returns the byte offset of (level, layer) from the start of
// the image.
func (l *Layout) SurfaceOffset(level, layer uint32) uint64 {
	return l.Slices[level].Offset + uint64(l.LayerStride(level))*uint64(layer)
}

// UBWCOffset returns the byte offset of (level, layer)'s compression
// metadata from the start of the image.
func (l *Layout) UBWCOffset(level, layer uint32) uint64 {
	return l.UBWCSlices[level].Offset + uint64(l.UBWCLayerSize)*uint64(layer)
}

// UBWCBlockSize returns the texel footprint covered by one byte of UBWC
// metadata for this plane. A zero width means the format cannot be
// compressed.
func (l *Layout) UBWCBlockSize() (width, height uint32) {
	return ubwcBlockSize(l.CPP)
}

func ubwcBlockSize(cpp uint32) (width, height uint32) {
	switch cpp {
	case 1, 2, 4:
		return 16, 4
	case 8:
		return 8, 4
	case 16:
		return 4, 4
	case 32:
		return 4, 2
	default:
		return 0, 0
	}
}
