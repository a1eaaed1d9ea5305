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
	"fmt"

	"github.com/google/tiledimg/gpu/a6xx"
	"github.com/google/tiledimg/gpu/format"
)

// ComponentSwizzle selects the source of one output component of a view.
type ComponentSwizzle int

const (
	SwizzleIdentity ComponentSwizzle = iota
	SwizzleZero
	SwizzleOne
	SwizzleR
	SwizzleG
	SwizzleB
	SwizzleA
)

// ComponentMapping remaps the components of a view. The zero value is the
// identity mapping.
type ComponentMapping struct {
	R, G, B, A ComponentSwizzle
}

// composeSwizzle applies the mapping m on top of the selectors in swiz.
func composeSwizzle(swiz *[4]a6xx.TexSwiz, m ComponentMapping) {
	src := *swiz
	for i, s := range [4]ComponentSwizzle{m.R, m.G, m.B, m.A} {
		switch {
		case s == SwizzleIdentity:
			swiz[i] = src[i]
		case s >= SwizzleR && s <= SwizzleA:
			swiz[i] = src[s-SwizzleR]
		case s == SwizzleZero:
			swiz[i] = a6xx.TEX_ZERO
		case s == SwizzleOne:
			swiz[i] = a6xx.TEX_ONE
		default:
			panic(fmt.Sprintf("image: invalid component swizzle %d", s))
		}
	}
}

// texSwiz returns the TEX_CONST_0 swizzle field for a view of f through
// the given aspect. Hardware quirks seed the selectors; the view mapping
// and then any sampler-conversion mapping compose on top.
func texSwiz(f format.Format, aspect format.Aspect, m ComponentMapping, conv *YCbCrConversion, limitedZ24S8 bool) uint32 {
	swiz := [4]a6xx.TexSwiz{a6xx.TEX_X, a6xx.TEX_Y, a6xx.TEX_Z, a6xx.TEX_W}

	switch f {
	case format.G8B8G8R8_422_UNORM, format.B8G8R8G8_422_UNORM,
		format.G8_B8R8_2PLANE_420_UNORM, format.G8_B8_R8_3PLANE_420_UNORM:
		// The hardware returns CrYCb; the API wants YCbCr.
		swiz = [4]a6xx.TexSwiz{a6xx.TEX_Z, a6xx.TEX_X, a6xx.TEX_Y, a6xx.TEX_W}
	case format.BC1_RGB_UNORM_BLOCK, format.BC1_RGB_SRGB_BLOCK:
		// The opaque BC1 variant still decodes an alpha bit; force it to 1.
		swiz[3] = a6xx.TEX_ONE
	case format.D24_UNORM_S8_UINT:
		if aspect == format.ASPECT_STENCIL {
			if limitedZ24S8 {
				// Fetched as 8888 uint; stencil lives in the last byte.
				swiz[0] = a6xx.TEX_W
			} else {
				swiz[0] = a6xx.TEX_Y
			}
			swiz[1] = a6xx.TEX_ZERO
		}
	}

	composeSwizzle(&swiz, m)
	if conv != nil {
		composeSwizzle(&swiz, conv.Components)
	}

	return a6xx.TexConst0SwizX(swiz[0]) |
		a6xx.TexConst0SwizY(swiz[1]) |
		a6xx.TexConst0SwizZ(swiz[2]) |
		a6xx.TexConst0SwizW(swiz[3])
}
