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
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/google/tiledimg/core/assert"
	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/core/math/u64"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

type testAllocator struct {
	next  uint64
	freed []*Memory
}

func (a *testAllocator) Alloc(ctx context.Context, size, align uint64) (*Memory, error) {
	if a.next == 0 {
		a.next = 1 << 32
	}
	a.next = u64.AlignUp(a.next, align)
	m := &Memory{IOVA: a.next, Size: size}
	a.next += size
	return m, nil
}

func (a *testAllocator) Free(ctx context.Context, mem *Memory) {
	a.freed = append(a.freed, mem)
}

func testDevice() *Device {
	return &Device{Allocator: &testAllocator{}}
}

func info2D(f format.Format, w, h uint32) CreateInfo {
	return CreateInfo{
		Type:        Type2D,
		Format:      f,
		Extent:      Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     1,
		Tiling:      TilingOptimal,
		Usage:       UsageSampled,
	}
}

func TestTilePolicy(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name     string
		dev      Device
		mutate   func(*CreateInfo)
		tileMode a6xx.TileMode
		ubwc     bool
	}{
		{
			name:     "optimal color",
			mutate:   func(i *CreateInfo) {},
			tileMode: a6xx.TILE6_3, ubwc: true,
		},
		{
			name:     "linear tiling",
			mutate:   func(i *CreateInfo) { i.Tiling = TilingLinear },
			tileMode: a6xx.TILE6_LINEAR, ubwc: false,
		},
		{
			name:     "debug no compression",
			dev:      Device{Debug: DebugNoUBWC},
			mutate:   func(i *CreateInfo) {},
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name:     "debug linear",
			dev:      Device{Debug: DebugLinear},
			mutate:   func(i *CreateInfo) {},
			tileMode: a6xx.TILE6_LINEAR, ubwc: false,
		},
		{
			name:     "mutable color",
			mutate:   func(i *CreateInfo) { i.Flags = FlagMutableFormat },
			tileMode: a6xx.TILE6_LINEAR, ubwc: false,
		},
		{
			name: "mutable depth stencil stays tiled",
			mutate: func(i *CreateInfo) {
				i.Flags = FlagMutableFormat
				i.Format = format.D24_UNORM_S8_UINT
				i.Usage = UsageDepthStencilAttachment
			},
			tileMode: a6xx.TILE6_3, ubwc: true,
		},
		{
			name:     "subsampled",
			mutate:   func(i *CreateInfo) { i.Format = format.G8B8G8R8_422_UNORM },
			tileMode: a6xx.TILE6_LINEAR, ubwc: false,
		},
		{
			name:     "multi-planar",
			mutate:   func(i *CreateInfo) { i.Format = format.G8_B8R8_2PLANE_420_UNORM },
			tileMode: a6xx.TILE6_LINEAR, ubwc: false,
		},
		{
			name:     "block compressed",
			mutate:   func(i *CreateInfo) { i.Format = format.BC1_RGB_UNORM_BLOCK },
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name:     "shared exponent",
			mutate:   func(i *CreateInfo) { i.Format = format.E5B9G9R9_UFLOAT_PACK32 },
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name:     "stencil only",
			mutate:   func(i *CreateInfo) { i.Format = format.S8_UINT },
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name: "3D",
			mutate: func(i *CreateInfo) {
				i.Type = Type3D
				i.Extent.Depth = 8
			},
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name:     "storage",
			mutate:   func(i *CreateInfo) { i.Usage |= UsageStorage },
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name: "sampled z24s8 on limited parts",
			dev:  Device{LimitedZ24S8: true},
			mutate: func(i *CreateInfo) {
				i.Format = format.D24_UNORM_S8_UINT
				i.Usage = UsageDepthStencilAttachment | UsageSampled
			},
			tileMode: a6xx.TILE6_3, ubwc: false,
		},
		{
			name: "attachment-only z24s8 on limited parts",
			dev:  Device{LimitedZ24S8: true},
			mutate: func(i *CreateInfo) {
				i.Format = format.D24_UNORM_S8_UINT
				i.Usage = UsageDepthStencilAttachment
			},
			tileMode: a6xx.TILE6_3, ubwc: true,
		},
	} {
		info := info2D(format.R8G8B8A8_UNORM, 256, 256)
		test.mutate(&info)
		tileMode, ubwc := test.dev.tileSettings(ctx, &info, ModInvalid)
		assert.For(ctx, "%s: tile mode", test.name).That(tileMode).Equals(test.tileMode)
		assert.For(ctx, "%s: compression", test.name).That(ubwc).Equals(test.ubwc)
	}
}

func TestCreateImageDeterministic(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	info := info2D(format.R8G8B8A8_UNORM, 1000, 600)
	info.MipLevels = 5
	info.ArrayLayers = 4

	a, err := d.CreateImage(ctx, info, ModInvalid, nil)
	assert.For(ctx, "first").ThatError(err).Succeeded()
	b, err := d.CreateImage(ctx, info, ModInvalid, nil)
	assert.For(ctx, "second").ThatError(err).Succeeded()

	assert.For(ctx, "layouts").That(reflect.DeepEqual(a.Layouts, b.Layouts)).IsTrue()
	assert.For(ctx, "size").That(a.TotalSize).Equals(b.TotalSize)
}

func TestPlaneBoundaries(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	img, err := d.CreateImage(ctx, info2D(format.G8_B8R8_2PLANE_420_UNORM, 128, 128), ModInvalid, nil)
	assert.For(ctx, "create").ThatError(err).Succeeded()

	assert.For(ctx, "planes").That(img.PlaneCount).Equals(2)
	assert.For(ctx, "linear").That(img.TileMode).Equals(a6xx.TILE6_LINEAR)

	luma := &img.Layouts[0]
	chroma := &img.Layouts[1]
	assert.For(ctx, "luma at zero").That(luma.Slices[0].Offset).Equals(uint64(0))
	assert.For(ctx, "chroma extent").That(chroma.Width0).Equals(uint32(64))
	assert.For(ctx, "chroma extent").That(chroma.Height0).Equals(uint32(64))

	lumaEnd := luma.Slices[0].Offset + uint64(luma.Slices[0].Size0)
	assert.For(ctx, "chroma page aligned").
		That(chroma.Slices[0].Offset % 4096).Equals(uint64(0))
	assert.For(ctx, "chroma after luma").
		That(chroma.Slices[0].Offset >= lumaEnd).IsTrue()
	assert.For(ctx, "total covers chroma").
		That(img.TotalSize >= chroma.Slices[0].Offset+uint64(chroma.Slices[0].Size0)).IsTrue()
}

func TestDepthStencilPlanes(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	info := info2D(format.D32_SFLOAT_S8_UINT, 128, 128)
	info.Usage = UsageDepthStencilAttachment | UsageSampled
	img, err := d.CreateImage(ctx, info, ModInvalid, nil)
	assert.For(ctx, "create").ThatError(err).Succeeded()

	assert.For(ctx, "planes").That(img.PlaneCount).Equals(2)
	// The stencil plane covers the full extent, one byte per texel, and is
	// never compressed.
	assert.For(ctx, "stencil extent").That(img.Layouts[1].Width0).Equals(uint32(128))
	assert.For(ctx, "stencil cpp").That(img.Layouts[1].CPP).Equals(uint32(1))
	assert.For(ctx, "stencil uncompressed").That(img.Layouts[1].UBWC).IsFalse()
}

func TestModifiers(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()

	img, err := d.CreateImage(ctx, info2D(format.R8G8B8A8_UNORM, 256, 256), ModInvalid, nil)
	assert.For(ctx, "optimal").ThatError(err).Succeeded()
	assert.For(ctx, "compressed modifier").That(img.Modifier()).Equals(ModQcomCompressed)

	linear := info2D(format.R8G8B8A8_UNORM, 256, 256)
	linear.Tiling = TilingLinear
	img, err = d.CreateImage(ctx, linear, ModInvalid, nil)
	assert.For(ctx, "linear").ThatError(err).Succeeded()
	assert.For(ctx, "linear modifier").That(img.Modifier()).Equals(ModLinear)

	noUBWC := &Device{Debug: DebugNoUBWC, Allocator: &testAllocator{}}
	img, err = noUBWC.CreateImage(ctx, info2D(format.R8G8B8A8_UNORM, 256, 256), ModInvalid, nil)
	assert.For(ctx, "tiled").ThatError(err).Succeeded()
	// A plain tiled layout has no externally-visible name.
	assert.For(ctx, "unnamed modifier").That(img.Modifier()).Equals(ModInvalid)

	img, err = d.CreateImage(ctx, linear, ModLinear, nil)
	assert.For(ctx, "imported linear").ThatError(err).Succeeded()
	assert.For(ctx, "imported modifier").That(img.Modifier()).Equals(ModLinear)
}

func TestSupportedModifiers(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()

	mods := d.SupportedModifiers(ctx, info2D(format.R8G8B8A8_UNORM, 256, 256))
	assert.For(ctx, "color modifiers").
		That(reflect.DeepEqual(mods, []Modifier{ModQcomCompressed, ModLinear})).IsTrue()

	mods = d.SupportedModifiers(ctx, info2D(format.BC1_RGB_UNORM_BLOCK, 256, 256))
	assert.For(ctx, "compressed-format modifiers").
		That(reflect.DeepEqual(mods, []Modifier{ModLinear})).IsTrue()
}

func TestExplicitImport(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	info := info2D(format.R8G8B8A8_UNORM, 64, 64)
	info.Tiling = TilingLinear

	img, err := d.CreateImage(ctx, info, ModLinear, []PlaneLayout{{Offset: 4096, Pitch: 512}})
	assert.For(ctx, "feasible").ThatError(err).Succeeded()
	assert.For(ctx, "offset").That(img.Layouts[0].Slices[0].Offset).Equals(uint64(4096))
	assert.For(ctx, "pitch").That(img.Layouts[0].Pitch(0)).Equals(uint32(512))

	_, err = d.CreateImage(ctx, info, ModLinear, []PlaneLayout{{Pitch: 300}})
	assert.For(ctx, "misaligned pitch").
		That(errors.Is(err, ErrInvalidExternalLayout)).IsTrue()

	_, err = d.CreateImage(ctx, info, ModLinear, []PlaneLayout{{Pitch: 512}, {Pitch: 512}})
	assert.For(ctx, "plane count mismatch").
		That(errors.Is(err, ErrInvalidExternalLayout)).IsTrue()

	mipped := info
	mipped.MipLevels = 2
	_, err = d.CreateImage(ctx, mipped, ModLinear, []PlaneLayout{{Pitch: 512}})
	assert.For(ctx, "mipmapped import").
		That(errors.Is(err, ErrInvalidExternalLayout)).IsTrue()
}

func TestSubresourceLayout(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	info := info2D(format.R8G8B8A8_UNORM, 64, 64)
	info.Tiling = TilingLinear
	info.MipLevels = 3
	info.ArrayLayers = 2
	img, err := d.CreateImage(ctx, info, ModInvalid, nil)
	assert.For(ctx, "create").ThatError(err).Succeeded()

	sub := img.SubresourceLayout(Subresource{Aspect: format.ASPECT_COLOR, Level: 1, Layer: 1})
	layout := &img.Layouts[0]
	assert.For(ctx, "offset").That(sub.Offset).
		Equals(layout.Slices[1].Offset + uint64(layout.LayerSize))
	assert.For(ctx, "row pitch").That(sub.RowPitch).Equals(uint64(128))
	assert.For(ctx, "array pitch").That(sub.ArrayPitch).Equals(uint64(layout.LayerSize))
	assert.For(ctx, "size").That(sub.Size).Equals(uint64(layout.Slices[1].Size0))
}

func TestSubresourceLayoutCompressed(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()
	img, err := d.CreateImage(ctx, info2D(format.R8G8B8A8_UNORM, 256, 256), ModInvalid, nil)
	assert.For(ctx, "create").ThatError(err).Succeeded()
	assert.For(ctx, "compressed").That(img.UBWCEnabled).IsTrue()

	// Metadata leads the plane, so the mapping starts at the plane base and
	// the texel data offset cannot be reported.
	sub := img.SubresourceLayout(Subresource{Aspect: format.ASPECT_COLOR})
	layout := &img.Layouts[0]
	assert.For(ctx, "offset").That(sub.Offset).Equals(uint64(0))
	assert.For(ctx, "size").That(sub.Size).Equals(uint64(layout.Slices[0].Size0))
	assert.For(ctx, "row pitch").That(sub.RowPitch).Equals(uint64(layout.Pitch(0)))
	assert.For(ctx, "array pitch").That(sub.ArrayPitch).Equals(uint64(layout.LayerStride(0)))
}

func TestQueueFamilyMask(t *testing.T) {
	ctx := log.Testing(t)
	d := testDevice()

	img, err := d.CreateImage(ctx, info2D(format.R8G8B8A8_UNORM, 64, 64), ModInvalid, nil)
	assert.For(ctx, "exclusive").ThatError(err).Succeeded()
	assert.For(ctx, "exclusive mask").That(img.QueueFamilyMask).Equals(uint32(0b111))

	concurrent := info2D(format.R8G8B8A8_UNORM, 64, 64)
	concurrent.Sharing = SharingConcurrent
	concurrent.QueueFamilies = []uint32{0, 2}
	img, err = d.CreateImage(ctx, concurrent, ModInvalid, nil)
	assert.For(ctx, "concurrent").ThatError(err).Succeeded()
	assert.For(ctx, "concurrent mask").That(img.QueueFamilyMask).Equals(uint32(0b101))

	external := concurrent
	external.External = true
	img, err = d.CreateImage(ctx, external, ModInvalid, nil)
	assert.For(ctx, "external").ThatError(err).Succeeded()
	assert.For(ctx, "external mask").That(img.QueueFamilyMask).Equals(uint32(0b111))
	assert.For(ctx, "external shareable").That(img.Shareable).IsTrue()
}

func TestImageMemoryLifecycle(t *testing.T) {
	ctx := log.Testing(t)
	alloc := &testAllocator{}
	d := &Device{Allocator: alloc}

	img, err := d.CreateImageWithMemory(ctx, info2D(format.R8G8B8A8_UNORM, 256, 256))
	assert.For(ctx, "create").ThatError(err).Succeeded()
	assert.For(ctx, "iova aligned").
		That(img.IOVA() % uint64(img.Layouts[0].BaseAlign)).Equals(uint64(0))

	d.DestroyImage(ctx, img)
	assert.For(ctx, "freed").That(len(alloc.freed)).Equals(1)

	// Bind-to-provided-memory path.
	img, err = d.CreateImage(ctx, info2D(format.R8G8B8A8_UNORM, 64, 64), ModInvalid, nil)
	assert.For(ctx, "create unbound").ThatError(err).Succeeded()
	mem := &Memory{IOVA: 1 << 33, Size: img.TotalSize + 8192}
	img.BindMemory(mem, 4096)
	assert.For(ctx, "bound iova").That(img.IOVA()).Equals(uint64(1<<33 + 4096))
	d.DestroyImage(ctx, img)
	assert.For(ctx, "caller memory not freed").That(len(alloc.freed)).Equals(1)
}
