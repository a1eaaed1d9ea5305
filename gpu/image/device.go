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

// Package image builds image resources and hardware descriptors for
// a6xx-class tiled GPUs: plane layouts, texture and storage descriptors,
// render-target register words, and buffer views.
package image

import (
	"context"

	"github.com/google/tiledimg/core/fault"
)

const (
	// ErrOutOfHostMemory is returned when backing memory cannot be
	// allocated.
	ErrOutOfHostMemory = fault.Const("out of host memory")
	// ErrInvalidExternalLayout is returned when an imported image's explicit
	// plane layout cannot be honoured.
	ErrInvalidExternalLayout = fault.Const("invalid external plane layout")
)

// DebugFlags tweak layout decisions for debugging.
type DebugFlags uint32

const (
	// DebugNoUBWC disables bandwidth compression on all images.
	DebugNoUBWC DebugFlags = 1 << iota
	// DebugLinear forces every image to be laid out linearly.
	DebugLinear
)

// Memory is a range of GPU-addressable memory.
type Memory struct {
	IOVA uint64
	Size uint64
}

// Allocator provides backing memory for images created with
// CreateImageWithMemory.
type Allocator interface {
	Alloc(ctx context.Context, size, align uint64) (*Memory, error)
	Free(ctx context.Context, mem *Memory)
}

// Device holds the per-GPU capabilities that layout and descriptor
// construction depend on. A Device is immutable after creation and safe for
// concurrent use.
type Device struct {
	// LimitedZ24S8 is set on GPUs whose sampler cannot read the stencil
	// channel of a Z24S8 surface directly; stencil views are lowered to an
	// 8888 uint fetch instead.
	LimitedZ24S8 bool

	Debug DebugFlags

	// Allocator backs images created with CreateImageWithMemory. May be nil
	// when all images are bound to caller-provided memory.
	Allocator Allocator
}
