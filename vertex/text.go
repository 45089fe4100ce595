// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package vertex

import (
	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

// resolveTextRun resolves one vertex of one glyph quad. The instance's first
// user datum is the glyph index within the run, the second the base address
// of the run's rasterization resource array.
func resolveTextRun(f *Frame, prim Primitive, corner pmath.Vec2, place placement, out *Output) {
	run := store.Fetch[store.TextRun](f.Store, prim.Specific)
	glyphAddr := prim.Specific + store.TextRunTexels +
		store.GlyphTexels*store.Address(prim.UserData0)
	glyph := store.Fetch[store.Glyph](f.Store, glyphAddr)
	resAddr := store.Address(prim.UserData1) +
		store.GlyphResourceTexels*store.Address(prim.UserData0)
	res := store.Fetch[store.GlyphResource](f.Store, resAddr)

	// The rasterized offset is in device pixels with Y pointing up; local
	// space is Y-down, hence the negation and the ratio divide.
	dpr := f.DevicePixelRatio
	rasterOffset := pmath.Vec2{X: res.Offset.X, Y: -res.Offset.Y}.Scale(1 / dpr)
	rect := pmath.Rect{
		Origin: run.Offset.Add(glyph.Offset).Add(rasterOffset),
		Size:   res.UVRect.Size.Scale(1 / dpr),
	}

	place.place(f, prim, rect, corner, out)
	out.Color = run.Color

	// Normalize against the atlas size at resolve time; the atlas may have
	// grown since the resource record was written.
	aw, ah := f.Glyphs.Size()
	uv := res.UVRect.Corner(corner)
	out.UV = pmath.Vec2{X: uv.X / float32(aw), Y: uv.Y / float32(ah)}
}
