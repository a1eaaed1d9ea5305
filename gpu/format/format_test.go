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

package format_test

import (
	"testing"

	"github.com/google/tiledimg/core/assert"
	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

func TestPlaneDecomposition(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		format format.Format
		planes int
		plane  []format.Format
	}{
		{format.R8G8B8A8_UNORM, 1, []format.Format{format.R8G8B8A8_UNORM}},
		{format.G8B8G8R8_422_UNORM, 1, []format.Format{format.G8B8G8R8_422_UNORM}},
		{format.G8_B8R8_2PLANE_420_UNORM, 2,
			[]format.Format{format.R8_UNORM, format.R8G8_UNORM}},
		{format.G8_B8_R8_3PLANE_420_UNORM, 3,
			[]format.Format{format.R8_UNORM, format.R8_UNORM, format.R8_UNORM}},
		{format.D32_SFLOAT_S8_UINT, 2,
			[]format.Format{format.D32_SFLOAT, format.S8_UINT}},
		{format.D24_UNORM_S8_UINT, 1, []format.Format{format.D24_UNORM_S8_UINT}},
	} {
		assert.For(ctx, "planes of %d", test.format).
			That(test.format.PlaneCount()).Equals(test.planes)
		for i, expect := range test.plane {
			assert.For(ctx, "plane %d of %d", i, test.format).
				That(test.format.PlaneFormat(i)).Equals(expect)
		}
	}
}

func TestPlaneIndex(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "color").
		That(format.PlaneIndex(format.R8G8B8A8_UNORM, format.ASPECT_COLOR)).Equals(0)
	assert.For(ctx, "d24s8 stencil shares the depth plane").
		That(format.PlaneIndex(format.D24_UNORM_S8_UINT, format.ASPECT_STENCIL)).Equals(0)
	assert.For(ctx, "d32s8 stencil has its own plane").
		That(format.PlaneIndex(format.D32_SFLOAT_S8_UINT, format.ASPECT_STENCIL)).Equals(1)
	assert.For(ctx, "plane 2").
		That(format.PlaneIndex(format.G8_B8_R8_3PLANE_420_UNORM, format.ASPECT_PLANE_2)).Equals(2)
}

func TestNativeTranslation(t *testing.T) {
	ctx := log.Testing(t)

	n := format.Texture(format.R8G8B8A8_UNORM, a6xx.TILE6_3)
	assert.For(ctx, "rgba8 fmt").That(n.Fmt).Equals(a6xx.FMT6_8_8_8_8_UNORM)
	assert.For(ctx, "rgba8 swap").That(n.Swap).Equals(a6xx.WZYX)
	assert.For(ctx, "rgba8 tile").That(n.TileMode).Equals(a6xx.TILE6_3)

	n = format.Texture(format.B8G8R8A8_UNORM, a6xx.TILE6_LINEAR)
	assert.For(ctx, "bgra8 swap").That(n.Swap).Equals(a6xx.WXZY)

	// The texture unit never sees the DEST variant of 1010102.
	n = format.Texture(format.A2B10G10R10_UNORM_PACK32, a6xx.TILE6_3)
	assert.For(ctx, "1010102 texture").That(n.Fmt).Equals(a6xx.FMT6_10_10_10_2_UNORM)

	// The render backend keeps DEST when tiled, and drops it when linear.
	n = format.Color(format.A2B10G10R10_UNORM_PACK32, a6xx.TILE6_3)
	assert.For(ctx, "1010102 tiled color").That(n.Fmt).Equals(a6xx.FMT6_10_10_10_2_UNORM_DEST)
	n = format.Color(format.A2B10G10R10_UNORM_PACK32, a6xx.TILE6_LINEAR)
	assert.For(ctx, "1010102 linear color").That(n.Fmt).Equals(a6xx.FMT6_10_10_10_2_UNORM)
}

func TestSupportClasses(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "bc1 samples only").
		That(format.Supported(format.BC1_RGB_UNORM_BLOCK) & format.SupportColor).
		Equals(format.Support(0))
	assert.For(ctx, "e5b9g9r9 samples only").
		That(format.Supported(format.E5B9G9R9_UFLOAT_PACK32) & format.SupportColor).
		Equals(format.Support(0))
	assert.For(ctx, "rgba8 renders").
		That(format.Supported(format.R8G8B8A8_UNORM)&format.SupportColor != 0).IsTrue()
}

func TestChannelClasses(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "srgb").That(format.R8G8B8A8_SRGB.IsSRGB()).IsTrue()
	assert.For(ctx, "not srgb").That(format.R8G8B8A8_UNORM.IsSRGB()).IsFalse()
	assert.For(ctx, "uint").That(format.R32_UINT.IsUint()).IsTrue()
	assert.For(ctx, "sint").That(format.R32_SINT.IsSint()).IsTrue()
	assert.For(ctx, "depth").That(format.D24_UNORM_S8_UINT.IsDepthOrStencil()).IsTrue()
	assert.For(ctx, "stencil only").That(format.S8_UINT.IsDepthOrStencil()).IsTrue()
	assert.For(ctx, "subsampled").That(format.G8B8G8R8_422_UNORM.IsSubsampled()).IsTrue()
	assert.For(ctx, "compressed").That(format.BC3_UNORM_BLOCK.IsCompressed()).IsTrue()
}
