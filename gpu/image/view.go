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
	"github.com/google/tiledimg/core/math/u32"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// ViewType is the dimensionality of an image view.
type ViewType int

const (
	View1D ViewType = iota
	View1DArray
	View2D
	View2DArray
	ViewCube
	ViewCubeArray
	View3D
)

// ChromaLocation is the position of chroma samples relative to luma.
type ChromaLocation int

const (
	ChromaCositedEven ChromaLocation = iota
	ChromaMidpoint
)

// YCbCrConversion carries the sampler-conversion state a multi-planar view
// bakes into its descriptor.
type YCbCrConversion struct {
	Components    ComponentMapping
	ChromaOffsetX ChromaLocation
	ChromaOffsetY ChromaLocation
}

const (
	// RemainingLevels selects every level from the base to the last.
	RemainingLevels = ^uint32(0)
	// RemainingLayers selects every layer from the base to the last.
	RemainingLayers = ^uint32(0)
)

// SubresourceRange selects the aspect, levels and layers a view covers.
type SubresourceRange struct {
	Aspect     format.Aspect
	BaseLevel  uint32
	LevelCount uint32
	BaseLayer  uint32
	LayerCount uint32
}

// ViewCreateInfo describes an image view to create.
type ViewCreateInfo struct {
	Image      *Image
	Type       ViewType
	Format     format.Format
	Components ComponentMapping
	Range      SubresourceRange
	Conversion *YCbCrConversion
}

// View is a fully-built image view: the texture descriptor, the optional
// storage descriptor, and the register words attachment and blit code
// emits. A View is immutable and safe for concurrent use.
type View struct {
	Image  *Image
	Format format.Format
	Aspect format.Aspect

	BaseLevel, LevelCount uint32
	BaseLayer, LayerCount uint32

	// Base-level extent in texels.
	Width, Height uint32

	Descriptor        [a6xx.TexConstDwords]uint32
	StorageDescriptor [a6xx.IBODwords]uint32

	BaseAddr      uint64
	UBWCAddr      uint64
	LayerSize     uint32
	UBWCLayerSize uint32
	PitchBytes    uint32

	// Pre-packed register words.
	Pitch           uint32 // RB_DEPTH_BUFFER_PITCH encoding
	FlagBufferPitch uint32 // RB_DEPTH_FLAG_BUFFER_PITCH encoding
	SPPS2DSrcInfo   uint32
	SPPS2DSrcSize   uint32
	RBMRTBufInfo    uint32
	SPFSMRT         uint32
	RB2DDstInfo     uint32
	RBBlitDstInfo   uint32

	// NeedY2Align is set when the viewed level is stored linearly and is
	// not the last, whose height the blitter must not round up.
	NeedY2Align bool
	// UBWC is set when the viewed level carries compression metadata.
	UBWC bool

	// Separate-stencil side band, filled for packed depth/stencil images
	// whose stencil lives on its own plane.
	StencilBaseAddr  uint64
	StencilLayerSize uint32
	StencilPitch     uint32 // RB_STENCIL_BUFFER_PITCH encoding
}

func (r SubresourceRange) levelCount(img *Image) uint32 {
	if r.LevelCount == RemainingLevels {
		return img.Info.MipLevels - r.BaseLevel
	}
	return r.LevelCount
}

func (r SubresourceRange) layerCount(img *Image) uint32 {
	if r.LayerCount == RemainingLayers {
		return img.Info.ArrayLayers - r.BaseLayer
	}
	return r.LayerCount
}

// texType maps a view type onto the fetch unit's dimensionality. The
// shader image unit has no cube type; cube storage views degrade to 2D
// arrays.
func texType(vt ViewType, storage bool) a6xx.TexType {
	switch vt {
	case View1D, View1DArray:
		return a6xx.TEX_1D
	case ViewCube, ViewCubeArray:
		if storage {
			return a6xx.TEX_2D
		}
		return a6xx.TEX_CUBE
	case View3D:
		return a6xx.TEX_3D
	default:
		return a6xx.TEX_2D
	}
}

func msaaSamples(n uint32) a6xx.Samples {
	switch n {
	case 1:
		return a6xx.MSAA_ONE
	case 2:
		return a6xx.MSAA_TWO
	case 4:
		return a6xx.MSAA_FOUR
	default:
		panic("image: unsupported sample count")
	}
}

// viewFormat resolves the format a view actually fetches, given the aspect
// it addresses.
func viewFormat(img *Image, f format.Format, aspect format.Aspect, plane int) format.Format {
	switch aspect {
	case format.ASPECT_PLANE_0, format.ASPECT_PLANE_1, format.ASPECT_PLANE_2:
		return f.PlaneFormat(plane)
	case format.ASPECT_DEPTH:
		if img.Info.Format == format.D32_SFLOAT_S8_UINT {
			return format.D32_SFLOAT
		}
	case format.ASPECT_STENCIL:
		if img.Info.Format == format.D32_SFLOAT_S8_UINT {
			return format.S8_UINT
		}
	}
	return f
}

// CreateImageView builds the descriptors and register words for a view of
// img. The image must have memory bound.
func (d *Device) CreateImageView(info *ViewCreateInfo) *View {
	img := info.Image
	rng := info.Range

	plane := format.PlaneIndex(img.Info.Format, rng.Aspect)
	layout := &img.Layouts[plane]
	vfmt := viewFormat(img, info.Format, rng.Aspect, plane)

	v := &View{
		Image:      img,
		Format:     vfmt,
		Aspect:     rng.Aspect,
		BaseLevel:  rng.BaseLevel,
		LevelCount: rng.levelCount(img),
		BaseLayer:  rng.BaseLayer,
		LayerCount: rng.layerCount(img),
	}
	if v.BaseLevel+v.LevelCount > img.Info.MipLevels {
		panic("image: view levels out of range")
	}
	if v.BaseLayer+v.LayerCount > img.Info.ArrayLayers {
		panic("image: view layers out of range")
	}

	width := u32.Minify(layout.Width0, rng.BaseLevel)
	height := u32.Minify(layout.Height0, rng.BaseLevel)
	v.Width, v.Height = width, height

	v.BaseAddr = img.IOVA() + layout.SurfaceOffset(rng.BaseLevel, rng.BaseLayer)
	v.UBWCAddr = img.IOVA() + layout.UBWCOffset(rng.BaseLevel, rng.BaseLayer)
	v.LayerSize = layout.LayerStride(rng.BaseLevel)
	v.UBWCLayerSize = layout.UBWCLayerSize
	v.PitchBytes = layout.Pitch(rng.BaseLevel)

	nat := format.Texture(vfmt, layout.TileMode)
	// Sub-tile tail mips of a tiled image are stored linearly; every
	// encoded tile mode is the base level's, not the whole image's.
	nat.TileMode = layout.TileModeAt(rng.BaseLevel)

	ubwcPitch := layout.UBWCPitch(rng.BaseLevel)
	ubwcEnabled := layout.UBWCEnabled(rng.BaseLevel)
	v.UBWC = ubwcEnabled
	v.NeedY2Align = nat.TileMode == a6xx.TILE6_LINEAR &&
		rng.BaseLevel != img.Info.MipLevels-1

	// The fetch and blit units cannot walk compression metadata for packed
	// 24-bit depth; the compressed surface is aliased as raw 8888.
	isD24S8 := vfmt == format.D24_UNORM_S8_UINT || vfmt == format.X8_D24_UNORM_PACK32
	if isD24S8 && ubwcEnabled {
		nat.Fmt = a6xx.FMT6_Z24_UNORM_S8_UINT_AS_R8G8B8A8
	}

	fmt6 := nat.Fmt
	if isD24S8 {
		switch rng.Aspect {
		case format.ASPECT_DEPTH:
			fmt6 = a6xx.FMT6_Z24_UNORM_S8_UINT
		case format.ASPECT_STENCIL:
			// The sampler cannot address the stencil byte of a packed
			// Z24S8 texel; refetch the texel through an aliased format.
			if d.LimitedZ24S8 {
				fmt6 = a6xx.FMT6_8_8_8_8_UINT
			} else {
				fmt6 = a6xx.FMT6_Z24_UINT_S8_UINT
			}
		}
	}

	var depth uint32
	switch info.Type {
	case View3D:
		depth = u32.Minify(layout.Depth0, rng.BaseLevel)
	case ViewCube, ViewCubeArray:
		depth = v.LayerCount / 6
	default:
		depth = v.LayerCount
	}

	desc := &v.Descriptor
	desc[0] = a6xx.TexConst0TileMode(nat.TileMode) |
		texSwiz(vfmt, rng.Aspect, info.Components, info.Conversion, d.LimitedZ24S8) |
		a6xx.TexConst0MipLvls(v.LevelCount-1) |
		a6xx.TexConst0Samples(msaaSamples(img.Info.Samples)) |
		a6xx.TexConst0Fmt(fmt6) |
		a6xx.TexConst0Swap(nat.Swap)
	if vfmt.IsSRGB() {
		desc[0] |= a6xx.TexConst0SRGB
	}
	desc[1] = a6xx.TexConst1Width(width) | a6xx.TexConst1Height(height)
	desc[2] = a6xx.TexConst2PitchAlign(layout.PitchAlign-6) |
		a6xx.TexConst2Pitch(v.PitchBytes) |
		a6xx.TexConst2Type(texType(info.Type, false))
	desc[3] = a6xx.TexConst3ArrayPitch(v.LayerSize)
	desc[4] = a6xx.TexConst4BaseLo(v.BaseAddr)
	desc[5] = a6xx.TexConst5BaseHi(v.BaseAddr) | a6xx.TexConst5Depth(depth)

	// Multi-planar color views fetch all planes through one descriptor;
	// the plane addresses take over the flag-buffer words.
	if rng.Aspect == format.ASPECT_COLOR &&
		(img.Info.Format == format.G8_B8R8_2PLANE_420_UNORM ||
			img.Info.Format == format.G8_B8_R8_3PLANE_420_UNORM) {
		// The chroma offset bits alias the mip count field.
		if v.LevelCount != 1 {
			panic("image: multi-planar view with more than one level")
		}
		if info.Type == View3D {
			panic("image: 3D multi-planar view")
		}
		if img.Info.Usage&UsageStorage != 0 {
			panic("image: storage use of a multi-planar image")
		}
		if conv := info.Conversion; conv != nil {
			if conv.ChromaOffsetX == ChromaMidpoint {
				desc[0] |= a6xx.TexConst0ChromaMidpointX
			}
			if conv.ChromaOffsetY == ChromaMidpoint {
				desc[0] |= a6xx.TexConst0ChromaMidpointY
			}
		}

		desc[3] |= a6xx.TexConst3TileAll
		if ubwcEnabled {
			// There is no separate metadata base per plane; the image must
			// carry the expected layout.
			desc[3] |= a6xx.TexConst3Flag
		}
		var addrs [MaxPlanes]uint64
		for p := 0; p < img.PlaneCount; p++ {
			pl := &img.Layouts[p]
			if ubwcEnabled {
				addrs[p] = img.IOVA() + pl.UBWCOffset(rng.BaseLevel, rng.BaseLayer)
			} else {
				addrs[p] = img.IOVA() + pl.SurfaceOffset(rng.BaseLevel, rng.BaseLayer)
			}
		}
		desc[4] = a6xx.TexConst4BaseLo(addrs[0])
		desc[5] = a6xx.TexConst5BaseHi(addrs[0]) | a6xx.TexConst5Depth(depth)
		desc[6] = a6xx.TexConst6PlanePitch(img.Layouts[1].Pitch(rng.BaseLevel))
		desc[7] = uint32(addrs[1])
		desc[8] = uint32(addrs[1] >> 32)
		desc[9] = uint32(addrs[2])
		desc[10] = uint32(addrs[2] >> 32)
		return v
	}

	if ubwcEnabled {
		bw, bh := layout.UBWCBlockSize()
		desc[3] |= a6xx.TexConst3Flag | a6xx.TexConst3TileAll
		desc[7] = a6xx.TexConst7FlagLo(v.UBWCAddr)
		desc[8] = a6xx.TexConst8FlagHi(v.UBWCAddr)
		desc[9] = a6xx.TexConst9FlagBufferArrayPitch(v.UBWCLayerSize >> 2)
		desc[10] = a6xx.TexConst10FlagBufferPitch(ubwcPitch) |
			a6xx.TexConst10FlagBufferLogW(u32.Log2Ceil(u32.CeilDiv(width, bw))) |
			a6xx.TexConst10FlagBufferLogH(u32.Log2Ceil(u32.CeilDiv(height, bh)))
	}

	if info.Type == View3D {
		// Keep the sampler from stepping below the clamped tail stride.
		desc[3] |= a6xx.TexConst3MinLayerSz(layout.Slices[img.Info.MipLevels-1].Size0)
	}

	samplesAvg := img.Info.Samples > 1 && !vfmt.IsInt() && !vfmt.IsDepthOrStencil()

	v.SPPS2DSrcInfo = a6xx.SPPS2DSrcInfo{
		ColorFormat:    nat.Fmt,
		TileMode:       nat.TileMode,
		ColorSwap:      nat.Swap,
		Flags:          ubwcEnabled,
		SRGB:           vfmt.IsSRGB(),
		Samples:        msaaSamples(img.Info.Samples),
		SamplesAverage: samplesAvg,
		Unk20:          true,
		Unk22:          true,
	}.Pack()
	v.SPPS2DSrcSize = a6xx.SPPS2DSrcSize{Width: width, Height: height}.Pack()

	v.Pitch = a6xx.RBDepthBufferPitch{Pitch: v.PitchBytes}.Pack()
	v.FlagBufferPitch = a6xx.RBDepthFlagBufferPitch{
		Pitch:      ubwcPitch,
		ArrayPitch: v.UBWCLayerSize >> 2,
	}.Pack()

	if img.Info.Format == format.D32_SFLOAT_S8_UINT {
		sl := &img.Layouts[1]
		v.StencilBaseAddr = img.IOVA() + sl.SurfaceOffset(rng.BaseLevel, rng.BaseLayer)
		v.StencilLayerSize = sl.LayerStride(rng.BaseLevel)
		v.StencilPitch = a6xx.RBStencilBufferPitch{Pitch: sl.Pitch(rng.BaseLevel)}.Pack()
	}

	if format.Supported(vfmt)&format.SupportColor == 0 {
		return v
	}
	cnat := format.Color(vfmt, layout.TileMode)
	cnat.TileMode = nat.TileMode
	if isD24S8 && ubwcEnabled {
		cnat.Fmt = a6xx.FMT6_Z24_UNORM_S8_UINT_AS_R8G8B8A8
	}

	if img.Info.Usage&UsageStorage != 0 {
		storageDepth := v.LayerCount
		if info.Type == View3D {
			storageDepth = depth
		}
		sd := &v.StorageDescriptor
		sd[0] = a6xx.IBO0Fmt(nat.Fmt) | a6xx.IBO0TileMode(nat.TileMode)
		sd[1] = a6xx.IBO1Width(width) | a6xx.IBO1Height(height)
		sd[2] = a6xx.IBO2Pitch(v.PitchBytes) | a6xx.IBO2Type(texType(info.Type, true))
		sd[3] = a6xx.IBO3ArrayPitch(v.LayerSize)
		sd[4] = a6xx.IBO4BaseLo(v.BaseAddr)
		sd[5] = a6xx.IBO5BaseHi(v.BaseAddr) | a6xx.IBO5Depth(storageDepth)
		if ubwcEnabled {
			sd[3] |= a6xx.IBO3Flag | a6xx.IBO3UNK27
			sd[7] = a6xx.IBO7FlagLo(v.UBWCAddr)
			sd[8] = a6xx.IBO8FlagHi(v.UBWCAddr)
			sd[9] = a6xx.IBO9FlagBufferArrayPitch(v.UBWCLayerSize >> 2)
			sd[10] = a6xx.IBO10FlagBufferPitch(ubwcPitch)
		}
	}

	v.RBMRTBufInfo = a6xx.RBMRTBufInfo{
		ColorFormat:   cnat.Fmt,
		ColorTileMode: cnat.TileMode,
		ColorSwap:     cnat.Swap,
	}.Pack()
	v.SPFSMRT = a6xx.SPFSMRTReg{
		ColorFormat: cnat.Fmt,
		ColorSint:   vfmt.IsSint(),
		ColorUint:   vfmt.IsUint(),
	}.Pack()
	v.RB2DDstInfo = a6xx.RB2DDstInfo{
		ColorFormat: cnat.Fmt,
		TileMode:    cnat.TileMode,
		ColorSwap:   cnat.Swap,
		Flags:       ubwcEnabled,
		SRGB:        vfmt.IsSRGB(),
	}.Pack()
	v.RBBlitDstInfo = a6xx.RBBlitDstInfo{
		TileMode:    cnat.TileMode,
		Flags:       ubwcEnabled,
		Samples:     msaaSamples(img.Info.Samples),
		ColorSwap:   cnat.Swap,
		ColorFormat: cnat.Fmt,
	}.Pack()

	return v
}

// Stream receives command-stream words from the emission helpers.
type Stream interface {
	Emit(v uint32)
	EmitQW(v uint64)
}

// EmitRef emits the pitch, array pitch and address words of an attachment
// reference for the given layer.
func (v *View) EmitRef(cs Stream, layer uint32) {
	cs.Emit(v.Pitch)
	cs.Emit(v.LayerSize >> 6)
	cs.EmitQW(v.BaseAddr + uint64(v.LayerSize)*uint64(layer))
}

// EmitStencilRef emits the separate-stencil reference words for the given
// layer.
func (v *View) EmitStencilRef(cs Stream, layer uint32) {
	cs.Emit(v.StencilPitch)
	cs.Emit(v.StencilLayerSize >> 6)
	cs.EmitQW(v.StencilBaseAddr + uint64(v.StencilLayerSize)*uint64(layer))
}

// Emit2DRef emits the address and pitch words of a 2D engine source or
// destination reference for the given layer.
func (v *View) Emit2DRef(cs Stream, layer uint32, src bool) {
	cs.EmitQW(v.BaseAddr + uint64(v.LayerSize)*uint64(layer))
	if src {
		cs.Emit(a6xx.SPPS2DSrcPitch{Pitch: v.PitchBytes}.Pack())
	} else {
		cs.Emit(a6xx.RB2DDstPitch{Pitch: v.PitchBytes}.Pack())
	}
}

// EmitFlagRef emits the compression metadata reference words for the given
// layer.
func (v *View) EmitFlagRef(cs Stream, layer uint32) {
	cs.EmitQW(v.UBWCAddr + uint64(v.UBWCLayerSize)*uint64(layer))
	cs.Emit(v.FlagBufferPitch)
}
