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
	"testing"

	"github.com/google/tiledimg/core/assert"
	"github.com/google/tiledimg/core/log"
	"github.com/google/tiledimg/gpu/a6xx"
)

func TestComposeSwizzle(t *testing.T) {
	ctx := log.Testing(t)
	identity := [4]a6xx.TexSwiz{a6xx.TEX_X, a6xx.TEX_Y, a6xx.TEX_Z, a6xx.TEX_W}

	swiz := identity
	composeSwizzle(&swiz, ComponentMapping{})
	assert.For(ctx, "identity").That(swiz).Equals(identity)

	swiz = identity
	composeSwizzle(&swiz, ComponentMapping{
		R: SwizzleA, G: SwizzleB, B: SwizzleG, A: SwizzleR,
	})
	assert.For(ctx, "reverse").That(swiz).
		Equals([4]a6xx.TexSwiz{a6xx.TEX_W, a6xx.TEX_Z, a6xx.TEX_Y, a6xx.TEX_X})

	swiz = identity
	composeSwizzle(&swiz, ComponentMapping{R: SwizzleOne, G: SwizzleZero})
	assert.For(ctx, "constants").That(swiz).
		Equals([4]a6xx.TexSwiz{a6xx.TEX_ONE, a6xx.TEX_ZERO, a6xx.TEX_Z, a6xx.TEX_W})

	// Mappings compose over the current selectors, not the identity.
	swiz = [4]a6xx.TexSwiz{a6xx.TEX_Z, a6xx.TEX_X, a6xx.TEX_Y, a6xx.TEX_W}
	composeSwizzle(&swiz, ComponentMapping{R: SwizzleG, G: SwizzleR})
	assert.For(ctx, "composed").That(swiz).
		Equals([4]a6xx.TexSwiz{a6xx.TEX_X, a6xx.TEX_Z, a6xx.TEX_Y, a6xx.TEX_W})
}

func TestComposeSwizzleSequential(t *testing.T) {
	ctx := log.Testing(t)
	// Applying m1 then m2 must equal applying their composition.
	m1 := ComponentMapping{R: SwizzleG, G: SwizzleB, B: SwizzleA, A: SwizzleR}
	m2 := ComponentMapping{R: SwizzleA, G: SwizzleZero}

	got := [4]a6xx.TexSwiz{a6xx.TEX_X, a6xx.TEX_Y, a6xx.TEX_Z, a6xx.TEX_W}
	composeSwizzle(&got, m1)
	composeSwizzle(&got, m2)

	// m1: (Y, Z, W, X); m2 on top: R<-A of m1 = X, G<-0.
	assert.For(ctx, "sequential").That(got).
		Equals([4]a6xx.TexSwiz{a6xx.TEX_X, a6xx.TEX_ZERO, a6xx.TEX_W, a6xx.TEX_X})
}
