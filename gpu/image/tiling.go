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

	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// tileSettings decides the tile mode and bandwidth compression for a new
// image. The rules are ordered: anything that forces a linear layout also
// kills compression, and later rules only ever remove capabilities.
func (d *Device) tileSettings(ctx context.Context, info *CreateInfo, modifier Modifier) (a6xx.TileMode, bool) {
	tileMode := a6xx.TILE6_3
	ubwc := d.Debug&DebugNoUBWC == 0

	linear := info.Tiling == TilingLinear ||
		modifier == ModLinear ||
		d.Debug&DebugLinear != 0

	// Subsampled formats address pairs of texels per block; the tiler
	// cannot express that.
	if info.Format.IsSubsampled() {
		linear = true
	}

	// Each plane of a multi-planar image is imported and exported
	// separately, so no plane may carry a private tiling.
	if info.Format.PlaneCount() > 1 && !info.Format.IsDepthOrStencil() {
		linear = true
	}

	// Mutable images can be aliased with a view of any compatible format,
	// including ones the tiler handles differently. Depth/stencil images
	// only mutate between their own aspects, which share a layout.
	if info.Flags&FlagMutableFormat != 0 && !info.Format.IsDepthOrStencil() {
		linear = true
	}

	if linear {
		tileMode = a6xx.TILE6_LINEAR
		ubwc = false
	}

	if info.Format.IsCompressed() {
		ubwc = false
	}

	// No compression scheme exists for shared-exponent or stencil-only
	// surfaces.
	if info.Format == format.E5B9G9R9_UFLOAT_PACK32 || info.Format == format.S8_UINT {
		ubwc = false
	}

	if info.Extent.Depth > 1 {
		if ubwc {
			log.W(ctx, "disabling bandwidth compression for 3D image")
		}
		ubwc = false
	}

	// The shader image unit writes around the compressor.
	if info.Usage&UsageStorage != 0 {
		ubwc = false
	}

	// On limited-Z24S8 parts the stencil lowering reads raw bytes, which a
	// compressed surface cannot serve.
	if d.LimitedZ24S8 && info.Format == format.D24_UNORM_S8_UINT &&
		info.Usage&(UsageSampled|UsageInputAttachment) != 0 {
		ubwc = false
	}

	return tileMode, ubwc
}
