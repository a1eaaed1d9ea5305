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

package a6xx

// TexConstDwords is the size of a texture descriptor in 32-bit words.
const TexConstDwords = 16

// IBODwords is the size of a storage image descriptor in 32-bit words.
const IBODwords = 16

// field places v into the bit range [lo, hi]. Values wider than the field
// are masked.
func field(v uint32, lo, hi uint) uint32 {
	mask := uint32(1)<<(hi-lo+1) - 1
	return (v & mask) << lo
}

func cond(b bool, bits uint32) uint32 {
	if b {
		return bits
	}
	return 0
}

// TEX_CONST_0
const (
	TexConst0SRGB            = uint32(1) << 2
	TexConst0ChromaMidpointX = uint32(1) << 16
	TexConst0ChromaMidpointY = uint32(1) << 17
)

func TexConst0TileMode(v TileMode) uint32 { return field(uint32(v), 0, 1) }
func TexConst0SwizX(v TexSwiz) uint32     { return field(uint32(v), 4, 6) }
func TexConst0SwizY(v TexSwiz) uint32     { return field(uint32(v), 7, 9) }
func TexConst0SwizZ(v TexSwiz) uint32     { return field(uint32(v), 10, 12) }
func TexConst0SwizW(v TexSwiz) uint32     { return field(uint32(v), 13, 15) }

// TexConst0MipLvls shares storage with the chroma midpoint bits; multi-planar
// views must be single-level.
func TexConst0MipLvls(v uint32) uint32 { return field(v, 16, 19) }

func TexConst0Samples(v Samples) uint32 { return field(uint32(v), 20, 21) }
func TexConst0Fmt(v Fmt) uint32         { return field(uint32(v), 22, 29) }
func TexConst0Swap(v Swap) uint32       { return field(uint32(v), 30, 31) }

// TEX_CONST_1
func TexConst1Width(v uint32) uint32  { return field(v, 0, 14) }
func TexConst1Height(v uint32) uint32 { return field(v, 15, 29) }

// TEX_CONST_2
const (
	TexConst2UNK4  = uint32(1) << 4
	TexConst2UNK31 = uint32(1) << 31
)

func TexConst2PitchAlign(v uint32) uint32 { return field(v, 0, 3) }
func TexConst2Pitch(v uint32) uint32      { return field(v, 7, 28) }
func TexConst2Type(v TexType) uint32      { return field(uint32(v), 29, 30) }

// TEX_CONST_3
const (
	TexConst3TileAll = uint32(1) << 27
	TexConst3Flag    = uint32(1) << 28
)

// TexConst3ArrayPitch takes the layer stride in bytes; the hardware field is
// in 4KB units.
func TexConst3ArrayPitch(v uint32) uint32 { return field(v>>12, 0, 22) }

// TexConst3MinLayerSz takes the last-level slice size in bytes; the hardware
// field is in 4KB units.
func TexConst3MinLayerSz(v uint32) uint32 { return field(v>>12, 23, 26) }

// TEX_CONST_4 .. TEX_CONST_5
func TexConst4BaseLo(addr uint64) uint32 { return uint32(addr) }
func TexConst5BaseHi(addr uint64) uint32 { return field(uint32(addr>>32), 0, 16) }
func TexConst5Depth(v uint32) uint32     { return field(v, 17, 29) }

// TEX_CONST_6
func TexConst6PlanePitch(v uint32) uint32 { return field(v, 8, 31) }

// TEX_CONST_7 .. TEX_CONST_10 (flag buffer)
func TexConst7FlagLo(addr uint64) uint32 { return uint32(addr) }
func TexConst8FlagHi(addr uint64) uint32 { return field(uint32(addr>>32), 0, 16) }

// TexConst9FlagBufferArrayPitch takes the flag-plane layer stride in 4-byte
// units, as the descriptor builders compute it; the hardware field is in
// 16-byte units, so the remaining shift happens here.
func TexConst9FlagBufferArrayPitch(v uint32) uint32 { return field(v>>2, 0, 16) }

// TexConst10FlagBufferPitch takes the flag-plane pitch in bytes; the hardware
// field is in 64-byte units.
func TexConst10FlagBufferPitch(v uint32) uint32 { return field(v>>6, 0, 6) }
func TexConst10FlagBufferLogW(v uint32) uint32  { return field(v, 8, 11) }
func TexConst10FlagBufferLogH(v uint32) uint32  { return field(v, 12, 15) }

// IBO (storage image descriptor)
const (
	IBO3UNK27 = uint32(1) << 27
	IBO3Flag  = uint32(1) << 28
)

func IBO0TileMode(v TileMode) uint32 { return field(uint32(v), 0, 1) }
func IBO0Fmt(v Fmt) uint32           { return field(uint32(v), 22, 29) }
func IBO1Width(v uint32) uint32      { return field(v, 0, 14) }
func IBO1Height(v uint32) uint32     { return field(v, 15, 29) }
func IBO2Pitch(v uint32) uint32      { return field(v, 7, 28) }
func IBO2Type(v TexType) uint32      { return field(uint32(v), 29, 30) }
func IBO3ArrayPitch(v uint32) uint32 { return field(v>>12, 0, 22) }
func IBO4BaseLo(addr uint64) uint32  { return uint32(addr) }
func IBO5BaseHi(addr uint64) uint32  { return field(uint32(addr>>32), 0, 16) }
func IBO5Depth(v uint32) uint32      { return field(v, 17, 29) }
func IBO7FlagLo(addr uint64) uint32  { return uint32(addr) }
func IBO8FlagHi(addr uint64) uint32  { return field(uint32(addr>>32), 0, 16) }

// IBO9FlagBufferArrayPitch takes the flag-plane layer stride in 4-byte units;
// see TexConst9FlagBufferArrayPitch.
func IBO9FlagBufferArrayPitch(v uint32) uint32 { return field(v>>2, 0, 16) }
func IBO10FlagBufferPitch(v uint32) uint32     { return field(v>>6, 0, 6) }

// SPPS2DSrcInfo is the SP_PS_2D_SRC_INFO register.
type SPPS2DSrcInfo struct {
	ColorFormat    Fmt
	TileMode       TileMode
	ColorSwap      Swap
	Flags          bool
	SRGB           bool
	Samples        Samples
	SamplesAverage bool
	Unk20          bool
	Unk22          bool
}

// Pack returns the register value.
func (r SPPS2DSrcInfo) Pack() uint32 {
	return field(uint32(r.ColorFormat), 0, 7) |
		field(uint32(r.TileMode), 8, 9) |
		field(uint32(r.ColorSwap), 10, 11) |
		cond(r.Flags, 1<<12) |
		cond(r.SRGB, 1<<13) |
		field(uint32(r.Samples), 14, 15) |
		cond(r.SamplesAverage, 1<<17) |
		cond(r.Unk20, 1<<20) |
		cond(r.Unk22, 1<<22)
}

// SPPS2DSrcPitch is the SP_PS_2D_SRC_PITCH register. The RB_2D_DST_PITCH
// register uses the same encoding.
type SPPS2DSrcPitch struct {
	Pitch uint32 // bytes; the hardware field is in 64-byte units
}

// Pack returns the register value.
func (r SPPS2DSrcPitch) Pack() uint32 {
	return field(r.Pitch>>6, 9, 23)
}

// RB2DDstPitch is the RB_2D_DST_PITCH register.
type RB2DDstPitch struct {
	Pitch uint32 // bytes; the hardware field is in 64-byte units
}

// Pack returns the register value.
func (r RB2DDstPitch) Pack() uint32 {
	return field(r.Pitch>>6, 0, 14)
}

// SPPS2DSrcSize is the SP_PS_2D_SRC_SIZE register.
type SPPS2DSrcSize struct {
	Width, Height uint32
}

// Pack returns the register value.
func (r SPPS2DSrcSize) Pack() uint32 {
	return field(r.Width, 0, 14) | field(r.Height, 15, 29)
}

// RBMRTBufInfo is the RB_MRT[n].BUF_INFO register.
type RBMRTBufInfo struct {
	ColorFormat   Fmt
	ColorTileMode TileMode
	ColorSwap     Swap
}

// Pack returns the register value.
func (r RBMRTBufInfo) Pack() uint32 {
	return field(uint32(r.ColorFormat), 0, 7) |
		field(uint32(r.ColorTileMode), 8, 9) |
		field(uint32(r.ColorSwap), 13, 14)
}

// SPFSMRTReg is the SP_FS_MRT[n] register.
type SPFSMRTReg struct {
	ColorFormat Fmt
	ColorSint   bool
	ColorUint   bool
}

// Pack returns the register value.
func (r SPFSMRTReg) Pack() uint32 {
	return field(uint32(r.ColorFormat), 0, 7) |
		cond(r.ColorSint, 1<<8) |
		cond(r.ColorUint, 1<<9)
}

// RB2DDstInfo is the RB_2D_DST_INFO register.
type RB2DDstInfo struct {
	ColorFormat Fmt
	TileMode    TileMode
	ColorSwap   Swap
	Flags       bool
	SRGB        bool
}

// Pack returns the register value.
func (r RB2DDstInfo) Pack() uint32 {
	return field(uint32(r.ColorFormat), 0, 7) |
		field(uint32(r.TileMode), 8, 9) |
		field(uint32(r.ColorSwap), 10, 11) |
		cond(r.Flags, 1<<12) |
		cond(r.SRGB, 1<<13)
}

// RBBlitDstInfo is the RB_BLIT_DST_INFO register.
type RBBlitDstInfo struct {
	TileMode    TileMode
	Flags       bool
	Samples     Samples
	ColorSwap   Swap
	ColorFormat Fmt
}

// Pack returns the register value.
func (r RBBlitDstInfo) Pack() uint32 {
	return field(uint32(r.TileMode), 0, 1) |
		cond(r.Flags, 1<<2) |
		field(uint32(r.Samples), 3, 4) |
		field(uint32(r.ColorSwap), 5, 6) |
		field(uint32(r.ColorFormat), 7, 14)
}

// RBDepthBufferPitch is the RB_DEPTH_BUFFER_PITCH register. The same
// encoding is used for the MRT and 2D destination pitches.
type RBDepthBufferPitch struct {
	Pitch uint32 // bytes; the hardware field is in 64-byte units
}

// Pack returns the register value.
func (r RBDepthBufferPitch) Pack() uint32 {
	return field(r.Pitch>>6, 0, 13)
}

// RBDepthFlagBufferPitch is the RB_DEPTH_FLAG_BUFFER_PITCH register.
type RBDepthFlagBufferPitch struct {
	Pitch      uint32 // bytes; the hardware field is in 64-byte units
	ArrayPitch uint32 // 4-byte units; the hardware field is in 16-byte units
}

// Pack returns the register value.
func (r RBDepthFlagBufferPitch) Pack() uint32 {
	return field(r.Pitch>>6, 0, 10) | field(r.ArrayPitch>>2, 11, 27)
}

// RBStencilBufferPitch is the RB_STENCIL_BUFFER_PITCH register.
type RBStencilBufferPitch struct {
	Pitch uint32 // bytes; the hardware field is in 64-byte units
}

// Pack returns the register value.
func (r RBStencilBufferPitch) Pack() uint32 {
	return field(r.Pitch>>6, 0, 9)
}
