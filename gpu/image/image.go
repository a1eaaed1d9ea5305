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
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/google/tiledimg/core/math/u64"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/fdl"
	"github.com/google/tiledimg/gpu/format"
)

// MaxPlanes is the largest number of planes any format decomposes into.
const MaxPlanes = 3

// maxQueueFamilies bounds the queue-family access mask.
const maxQueueFamilies = 3

// planeBoundary is the byte alignment between consecutive planes.
const planeBoundary = 4096

// Extent3D is an image extent in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}

// ImageType is the dimensionality of an image.
type ImageType int

const (
	Type1D ImageType = iota
	Type2D
	Type3D
)

// Tiling is the caller's requested storage arrangement.
type Tiling int

const (
	TilingOptimal Tiling = iota
	TilingLinear
)

// Usage describes how an image will be accessed.
type Usage uint32

const (
	UsageTransferSrc Usage = 1 << iota
	UsageTransferDst
	UsageSampled
	UsageStorage
	UsageColorAttachment
	UsageDepthStencilAttachment
	UsageInputAttachment
)

// Flags are image creation flags.
type Flags uint32

const (
	// FlagMutableFormat allows views of any compatible format.
	FlagMutableFormat Flags = 1 << iota
	// FlagCubeCompatible allows cube views of a 2D array image.
	FlagCubeCompatible
)

// SharingMode controls which queue families may access the image.
type SharingMode int

const (
	SharingExclusive SharingMode = iota
	SharingConcurrent
)

// Modifier is a DRM format modifier describing an externally-visible
// layout.
type Modifier uint64

const (
	// ModLinear is DRM_FORMAT_MOD_LINEAR.
	ModLinear Modifier = 0
	// ModQcomCompressed is DRM_FORMAT_MOD_QCOM_COMPRESSED.
	ModQcomCompressed Modifier = (3 << 56) | 1
	// ModInvalid means no modifier: the driver picks the layout.
	ModInvalid Modifier = 0x00ffffffffffffff
)

// PlaneLayout pins one plane of an imported image to an externally-decided
// position.
type PlaneLayout struct {
	Offset uint64
	Pitch  uint32
}

// CreateInfo describes an image to create.
type CreateInfo struct {
	Flags       Flags
	Type        ImageType
	Format      format.Format
	Extent      Extent3D
	MipLevels   uint32
	ArrayLayers uint32
	Samples     uint32
	Tiling      Tiling
	Usage       Usage
	Sharing     SharingMode
	// QueueFamilies lists the families of a concurrently-shared image.
	QueueFamilies []uint32
	// External marks images whose memory is imported or exported; every
	// queue family may touch them.
	External bool
	// Shareable marks images whose memory may be exported later.
	Shareable bool
}

// Image is a created image resource: per-plane layouts plus (optionally)
// bound memory. An Image is immutable once its memory is bound and is safe
// for concurrent use from then on.
type Image struct {
	Info            CreateInfo
	Layouts         [MaxPlanes]fdl.Layout
	PlaneCount      int
	TotalSize       uint64
	TileMode        a6xx.TileMode
	UBWCEnabled     bool
	QueueFamilyMask uint32
	Shareable       bool

	modifier Modifier

	mem       *Memory
	memOffset uint64
	ownedMem  bool
	dev       *Device
}

func queueFamilyMask(info *CreateInfo) uint32 {
	all := uint32(1)<<maxQueueFamilies - 1
	if info.External {
		return all
	}
	if info.Sharing == SharingConcurrent {
		var mask uint32
		for _, qf := range info.QueueFamilies {
			mask |= 1 << qf
		}
		return mask & all
	}
	return all
}

func validateCreateInfo(info *CreateInfo) {
	if info.Extent.Width == 0 || info.Extent.Height == 0 || info.Extent.Depth == 0 {
		panic("image: zero extent")
	}
	if info.MipLevels < 1 || info.MipLevels > fdl.MaxLevels {
		panic(fmt.Sprintf("image: mip level count %d out of range", info.MipLevels))
	}
	if info.ArrayLayers < 1 {
		panic("image: zero array layers")
	}
	switch info.Samples {
	case 1, 2, 4:
	default:
		panic(fmt.Sprintf("image: unsupported sample count %d", info.Samples))
	}
	if info.Type == Type3D && info.ArrayLayers != 1 {
		panic("image: 3D images cannot be arrayed")
	}
	if info.Type != Type3D && info.Extent.Depth != 1 {
		panic("image: non-3D image with depth > 1")
	}
}

// CreateImage computes the plane layouts of a new image. No memory is bound;
// use BindMemory or CreateImageWithMemory.
//
// modifier is ModInvalid unless the image is imported or exported with an
// externally-negotiated layout. planeLayouts, when non-nil, pins each plane
// to the given position; infeasible pins fail with ErrInvalidExternalLayout.
func (d *Device) CreateImage(ctx context.Context, info CreateInfo, modifier Modifier, planeLayouts []PlaneLayout) (*Image, error) {
	validateCreateInfo(&info)

	tileMode, ubwc := d.tileSettings(ctx, &info, modifier)

	img := &Image{
		Info:            info,
		PlaneCount:      info.Format.PlaneCount(),
		TileMode:        tileMode,
		QueueFamilyMask: queueFamilyMask(&info),
		Shareable:       info.Shareable || info.External,
		modifier:        modifier,
		dev:             d,
	}

	if planeLayouts != nil {
		if len(planeLayouts) != img.PlaneCount {
			return nil, errors.Wrapf(ErrInvalidExternalLayout,
				"%d plane layouts for a %d-plane format", len(planeLayouts), img.PlaneCount)
		}
		if info.MipLevels != 1 || info.ArrayLayers != 1 || info.Extent.Depth != 1 {
			return nil, errors.Wrap(ErrInvalidExternalLayout,
				"explicit layouts require a single-level, single-layer 2D image")
		}
	}

	for plane := 0; plane < img.PlaneCount; plane++ {
		planeFmt := info.Format.PlaneFormat(plane)
		w, h := info.Extent.Width, info.Extent.Height
		if plane > 0 && planeFmt != format.S8_UINT {
			// Chroma planes of 4:2:0 formats cover half the luma extent.
			w = (w + 1) >> 1
			h = (h + 1) >> 1
		}

		layout := &img.Layouts[plane]
		layout.TileMode = tileMode
		// The stencil plane of a packed depth/stencil pair is fetched raw
		// and never compressed; compression also ends at the first plane
		// that cannot carry it.
		layout.UBWC = ubwc
		if plane > 0 && info.Format == format.D32_SFLOAT_S8_UINT {
			layout.UBWC = false
			ubwc = false
		}

		var explicit *fdl.ExplicitLayout
		if planeLayouts != nil {
			explicit = &fdl.ExplicitLayout{
				Offset: planeLayouts[plane].Offset,
				Pitch:  planeLayouts[plane].Pitch,
			}
		}

		err := fdl.Layout6(layout, fdl.Params{
			Format:      planeFmt,
			SampleCount: info.Samples,
			Width0:      w,
			Height0:     h,
			Depth0:      info.Extent.Depth,
			MipLevels:   info.MipLevels,
			ArrayLayers: info.ArrayLayers,
			Is3D:        info.Type == Type3D,
			Explicit:    explicit,
		})
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidExternalLayout, "plane %d: %v", plane, err)
		}

		if explicit != nil {
			img.TotalSize = u64.Max(img.TotalSize, layout.Size)
			continue
		}

		// Planes are stacked on page boundaries so each can be mapped
		// independently.
		base := u64.AlignUp(img.TotalSize, planeBoundary)
		if base != 0 {
			for level := uint32(0); level < info.MipLevels; level++ {
				layout.Slices[level].Offset += base
				if layout.UBWC {
					layout.UBWCSlices[level].Offset += base
				}
			}
		}
		img.TotalSize = base + layout.Size
	}

	img.UBWCEnabled = img.Layouts[0].UBWC
	if modifier == ModQcomCompressed && !img.UBWCEnabled {
		// Modifier negotiation must offer the compressed modifier only for
		// images that can actually be compressed.
		panic("image: compressed modifier on an image that cannot be compressed")
	}
	return img, nil
}

// CreateImageWithMemory creates an image and allocates and binds backing
// memory from the device allocator. The memory is freed by DestroyImage.
func (d *Device) CreateImageWithMemory(ctx context.Context, info CreateInfo) (*Image, error) {
	img, err := d.CreateImage(ctx, info, ModInvalid, nil)
	if err != nil {
		return nil, err
	}
	mem, err := d.Allocator.Alloc(ctx, img.TotalSize, uint64(img.Layouts[0].BaseAlign))
	if err != nil {
		return nil, errors.Wrap(ErrOutOfHostMemory, err.Error())
	}
	img.BindMemory(mem, 0)
	img.ownedMem = true
	return img, nil
}

// DestroyImage releases any memory the image owns.
func (d *Device) DestroyImage(ctx context.Context, img *Image) {
	if img == nil {
		return
	}
	if img.ownedMem && img.mem != nil {
		d.Allocator.Free(ctx, img.mem)
	}
	img.mem = nil
}

// BindMemory attaches backing memory to the image. The bound range must
// cover TotalSize and satisfy the plane base alignment.
func (i *Image) BindMemory(mem *Memory, offset uint64) {
	if offset != u64.AlignUp(offset, uint64(i.Layouts[0].BaseAlign)) {
		panic(fmt.Sprintf("image: bind offset %d breaks base alignment %d",
			offset, i.Layouts[0].BaseAlign))
	}
	if mem.Size-offset < i.TotalSize {
		panic("image: bound memory smaller than the image")
	}
	i.mem = mem
	i.memOffset = offset
}

// IOVA returns the GPU address of the start of the image.
// The image must have memory bound.
func (i *Image) IOVA() uint64 {
	if i.mem == nil {
		panic("image: no memory bound")
	}
	return i.mem.IOVA + i.memOffset
}

// Modifier returns the DRM modifier describing the image's layout.
func (i *Image) Modifier() Modifier {
	if i.modifier != ModInvalid {
		return i.modifier
	}
	switch {
	case i.UBWCEnabled:
		return ModQcomCompressed
	case i.TileMode == a6xx.TILE6_LINEAR:
		return ModLinear
	default:
		// Plain tiled layouts have no externally-visible name.
		return ModInvalid
	}
}

// SupportedModifiers returns the modifiers an image with the given
// properties could be created with, best first.
func (d *Device) SupportedModifiers(ctx context.Context, info CreateInfo) []Modifier {
	mods := []Modifier{}
	probe := info
	probe.Tiling = TilingOptimal
	if _, ubwc := d.tileSettings(ctx, &probe, ModInvalid); ubwc {
		mods = append(mods, ModQcomCompressed)
	}
	return append(mods, ModLinear)
}

// Subresource names a single (aspect, level, layer) of an image.
type Subresource struct {
	Aspect format.Aspect
	Level  uint32
	Layer  uint32
}

// SubresourceLayout describes where a subresource lives in the bound
// memory, for host access to linear images.
type SubresourceLayout struct {
	Offset     uint64
	Size       uint64
	RowPitch   uint64
	ArrayPitch uint64
	DepthPitch uint64
}

// SubresourceLayout returns the placement of the given subresource.
func (i *Image) SubresourceLayout(sub Subresource) SubresourceLayout {
	plane := format.PlaneIndex(i.Info.Format, sub.Aspect)
	layout := &i.Layouts[plane]

	out := SubresourceLayout{
		Offset:     layout.SurfaceOffset(sub.Level, sub.Layer),
		Size:       uint64(layout.Slices[sub.Level].Size0),
		RowPitch:   uint64(layout.Pitch(sub.Level)),
		ArrayPitch: uint64(layout.LayerStride(sub.Level)),
		DepthPitch: uint64(layout.Slices[sub.Level].Size0),
	}
	if layout.UBWC {
		// Compression metadata leads the plane, so the mapping covers the
		// whole plane and no byte offset to the texel data can be given.
		if i.Info.MipLevels != 1 || i.Info.ArrayLayers != 1 {
			panic("image: subresource layout of a mipmapped or arrayed compressed image")
		}
		out.Offset = 0
	}
	return out
}
