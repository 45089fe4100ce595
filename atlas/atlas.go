// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package atlas implements the resource atlases consumed by the vertex
// stage: shared rectangular-region caches for glyph bitmaps and clip masks.
//
// An atlas may grow between frames but never mid-frame, and it never moves
// rectangles it has already handed out; growth extends the free area to the
// right and bottom. Consumers must query the current dimensions at use time
// rather than caching them, since UV normalization against stale dimensions
// produces incorrect sampling.
package atlas

import (
	"github.com/prism-gfx/prism/internal/debug"
	"github.com/prism-gfx/prism/pmath"
)

// growthGranularity keeps atlas dimensions at sizes texture allocators are
// happy with.
const growthGranularity = 64

type Atlas struct {
	width   int
	height  int
	shelves []shelf
}

// shelf is one horizontal band of the atlas. Allocations within a shelf
// advance left to right and are never reclaimed individually; the external
// cache decides when to rebuild the atlas wholesale.
type shelf struct {
	y      int
	height int
	used   int
}

func New(width, height int) *Atlas {
	return &Atlas{
		width:  pmath.NextMultipleOf(width, growthGranularity),
		height: pmath.NextMultipleOf(height, growthGranularity),
	}
}

// Size reports the atlas's current pixel dimensions.
func (a *Atlas) Size() (width, height int) {
	return a.width, a.height
}

// Grow extends the atlas. Shrinking would invalidate every rectangle already
// handed out and is a caller error.
func (a *Atlas) Grow(width, height int) {
	width = pmath.NextMultipleOf(width, growthGranularity)
	height = pmath.NextMultipleOf(height, growthGranularity)
	if width < a.width || height < a.height {
		panic("atlas: cannot shrink")
	}
	debug.Logger().Debug("atlas grown",
		"from_width", a.width, "from_height", a.height,
		"to_width", width, "to_height", height)
	a.width = width
	a.height = height
}

// Allocate reserves a width x height region and returns its rectangle in
// atlas pixel coordinates. It reports false when the atlas is full; callers
// grow the atlas between frames and retry.
func (a *Atlas) Allocate(width, height int) (pmath.Rect, bool) {
	if width > a.width {
		return pmath.Rect{}, false
	}
	for i := range a.shelves {
		sh := &a.shelves[i]
		if height <= sh.height && sh.used+width <= a.width {
			r := pixelRect(sh.used, sh.y, width, height)
			sh.used += width
			return r, true
		}
	}
	nextY := 0
	if n := len(a.shelves); n > 0 {
		nextY = a.shelves[n-1].y + a.shelves[n-1].height
	}
	if nextY+height > a.height {
		return pmath.Rect{}, false
	}
	a.shelves = append(a.shelves, shelf{y: nextY, height: height, used: width})
	return pixelRect(0, nextY, width, height), true
}

func pixelRect(x, y, width, height int) pmath.Rect {
	return pmath.Rect{
		Origin: pmath.Vec2{X: float32(x), Y: float32(y)},
		Size:   pmath.Vec2{X: float32(width), Y: float32(height)},
	}
}
