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

package fdl

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/google/tiledimg/core/fault"
	"github.com/google/tiledimg/core/math/u32"
	"github.com/google/tiledimg/core/math/u64"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// ErrExplicitLayout is returned by Layout6 when the caller-supplied plane
// layout cannot be honoured by the hardware.
const ErrExplicitLayout = fault.Const("infeasible explicit plane layout")

// ExplicitLayout pins a plane to an externally-imposed position, used when
// importing images whose layout was decided by another allocator.
type ExplicitLayout struct {
	// Offset of the plane from the start of the memory.
	Offset uint64
	// Pitch of mip 0 in bytes.
	Pitch uint32
}

// Params are the inputs to Layout6.
//
// TileMode and UBWC on the target Layout must be set by the caller before
// the call; Layout6 may still demote UBWC when the format cannot carry it.
type Params struct {
	Format      format.Format
	SampleCount uint32

	Width0, Height0, Depth0 uint32
	MipLevels, ArrayLayers  uint32
	Is3D                    bool

	Explicit *ExplicitLayout
}

type tileAlign struct {
	base       uint32 // base address alignment in bytes
	pitchLog2  uint32 // log2 of the pitch alignment in bytes
	heightTile uint32 // block-row alignment of tiled levels
}

// tileAlignment returns the alignment constraints for a tiled surface of
// the given bytes-per-block.
func tileAlignment(cpp uint32) tileAlign {
	switch cpp {
	case 1:
		return tileAlign{64, 7, 32}
	case 2:
		return tileAlign{128, 7, 16}
	case 4:
		return tileAlign{256, 6, 16}
	case 8:
		return tileAlign{512, 6, 16}
	case 16:
		return tileAlign{1024, 6, 16}
	case 32:
		return tileAlign{4096, 6, 16}
	case 64:
		return tileAlign{4096, 6, 16}
	default:
		panic(fmt.Sprintf("fdl: no tile alignment for cpp %d", cpp))
	}
}

// Layout6 fills l with the plane layout for the given parameters.
//
// It fails only when an explicit layout was supplied and is infeasible;
// every other input combination has a defined layout. The same inputs
// always produce the same layout.
func Layout6(l *Layout, p Params) error {
	if p.MipLevels < 1 || p.MipLevels > MaxLevels {
		panic(fmt.Sprintf("fdl: mip level count %d out of range", p.MipLevels))
	}
	if p.SampleCount == 0 || p.ArrayLayers == 0 {
		panic("fdl: zero sample or layer count")
	}

	info := p.Format.Info()
	blockW, blockH := info.BlockWidth, info.BlockHeight
	l.CPP = info.BlockSize * p.SampleCount
	l.Format = p.Format
	l.Width0, l.Height0, l.Depth0 = p.Width0, p.Height0, p.Depth0
	l.SampleCount = p.SampleCount
	l.LayerFirst = !p.Is3D

	if l.TileMode != a6xx.TILE6_LINEAR {
		ta := tileAlignment(l.CPP)
		l.BaseAlign = ta.base
		l.PitchAlign = ta.pitchLog2
	} else {
		l.BaseAlign = 64
		l.PitchAlign = 6
	}

	ubwcW, ubwcH := ubwcBlockSize(l.CPP)
	if l.UBWC && ubwcW == 0 {
		l.UBWC = false
	}
	// Compression metadata indexes every level as tiled, so a compressed
	// image must not let its mip tail go linear.
	l.TileAll = l.UBWC
	if l.UBWC {
		l.BaseAlign = u32.Max(l.BaseAlign, ubwcPlaneSizeAlign)
	}

	nblocksx0 := u32.CeilDiv(p.Width0, blockW)
	l.Pitch0 = u32.AlignUp(nblocksx0*l.CPP, 1<<l.PitchAlign)

	var offset uint64
	if p.Explicit != nil {
		e := p.Explicit
		if e.Pitch != u32.AlignUp(e.Pitch, 1<<l.PitchAlign) {
			return errors.Wrapf(ErrExplicitLayout,
				"pitch %d not %d-byte aligned", e.Pitch, uint32(1)<<l.PitchAlign)
		}
		if e.Pitch < l.Pitch0 {
			return errors.Wrapf(ErrExplicitLayout,
				"pitch %d below minimum %d", e.Pitch, l.Pitch0)
		}
		if e.Offset != u64.AlignUp(e.Offset, uint64(l.BaseAlign)) {
			return errors.Wrapf(ErrExplicitLayout,
				"offset %d not %d-byte aligned", e.Offset, l.BaseAlign)
		}
		l.Pitch0 = e.Pitch
		offset = e.Offset
	}

	// UBWC metadata geometry. Mipmapped images pad the mip-0 extent to a
	// power of two so that minified metadata planes nest.
	if l.UBWC {
		metaW, metaH := p.Width0, p.Height0
		heightAlign := uint32(rgbTileHeightAlign)
		if p.MipLevels > 1 {
			metaW = u32.NextPOT(metaW)
			metaH = u32.NextPOT(metaH)
			heightAlign = 64
		}
		l.UBWCWidth0 = u32.AlignUp(u32.CeilDiv(metaW, ubwcW), rgbTileWidthAlign)
		l.UBWCHeight0 = u32.AlignUp(u32.CeilDiv(metaH, ubwcH), heightAlign)
	}

	var size uint64
	var prevSize0 uint32
	for level := uint32(0); level < p.MipLevels; level++ {
		h := u32.Minify(p.Height0, level)
		d := u32.Minify(p.Depth0, level)
		nblocksy := u32.CeilDiv(h, blockH)

		if l.TileModeAt(level) != a6xx.TILE6_LINEAR {
			nblocksy = u32.AlignUp(nblocksy, tileAlignment(l.CPP).heightTile)
		}
		// The hardware fetches in groups of four rows even on linear
		// levels; pad the last level so the over-fetch stays in bounds.
		if level == p.MipLevels-1 {
			nblocksy = u32.AlignUp(nblocksy, 4)
		}

		pitch := l.Pitch(level)
		slice := &l.Slices[level]
		slice.Offset = offset + size

		if p.Is3D {
			size0 := u32.AlignUp(nblocksy*pitch, 4096)
			// Once a 3D mip drops below a page-cluster the hardware stops
			// halving the per-depth stride.
			if level > 1 && prevSize0 <= 0xf000 {
				size0 = prevSize0
			}
			slice.Size0 = size0
			prevSize0 = size0
			size += uint64(size0) * uint64(d)
		} else {
			slice.Size0 = nblocksy * pitch
			size += uint64(slice.Size0) * uint64(d)
		}
	}

	if l.LayerFirst {
		l.LayerSize = uint32(u64.AlignUp(size, 4096))
		size = uint64(l.LayerSize) * uint64(p.ArrayLayers)
	}

	// Metadata slices sit in front of the data slices, each layer's
	// metadata packed contiguously.
	if l.UBWC {
		var meta uint64
		for level := uint32(0); level < p.MipLevels; level++ {
			metaPitch := l.UBWCPitch(level)
			metaHeight := u32.Minify(l.UBWCHeight0, level)
			us := &l.UBWCSlices[level]
			us.Offset = offset + meta
			us.Size0 = uint32(u64.AlignUp(uint64(metaPitch)*uint64(metaHeight), ubwcPlaneSizeAlign))
			meta += uint64(us.Size0)
		}
		l.UBWCLayerSize = uint32(meta)

		metaTotal := meta * uint64(p.ArrayLayers)
		for level := uint32(0); level < p.MipLevels; level++ {
			l.Slices[level].Offset += metaTotal
		}
		size += metaTotal
	}

	l.Size = offset + size
	return nil
}
