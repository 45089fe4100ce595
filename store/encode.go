// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package store

import (
	"honnef.co/go/curve"

	"github.com/prism-gfx/prism/pmath"
)

// EncodePrimitive appends a primitive geometry header and returns its
// address for use as an instance's PrimAddress.
func (s *Store) EncodePrimitive(localRect, localClipRect curve.Rect) Address {
	addr := s.alloc(PrimitiveHeaderTexels)
	*Fetch[PrimitiveHeader](s, addr) = PrimitiveHeader{
		LocalRect:     pmath.RectFromCurve(localRect),
		LocalClipRect: pmath.RectFromCurve(localClipRect),
	}
	return addr
}

// EncodeGradient appends a gradient payload followed by its stops and
// returns the payload address for use as an instance's SpecificAddress.
// Start and end are local-space positions relative to the primitive origin.
func (s *Store) EncodeGradient(start, end curve.Point, stops []GradientStop) Address {
	if len(stops) == 0 {
		panic("store: gradient with no stops")
	}
	addr := s.alloc(GradientTexels + GradientStopTexels*Address(len(stops)))
	*Fetch[Gradient](s, addr) = Gradient{
		Start: pmath.Vec2FromPoint(start),
		End:   pmath.Vec2FromPoint(end),
	}
	for i, stop := range stops {
		*Fetch[GradientStop](s, addr+GradientTexels+GradientStopTexels*Address(i)) = stop
	}
	return addr
}

// EncodeTextRun appends a text run payload followed by its glyphs and
// returns the payload address. The glyph at index i is fetched by the vertex
// stage from payload + TextRunTexels + GlyphTexels*i.
func (s *Store) EncodeTextRun(offset curve.Point, color [4]float32, glyphs []Glyph) Address {
	addr := s.alloc(TextRunTexels + GlyphTexels*Address(len(glyphs)))
	*Fetch[TextRun](s, addr) = TextRun{
		Color:  color,
		Offset: pmath.Vec2FromPoint(offset),
	}
	for i, glyph := range glyphs {
		*Fetch[Glyph](s, addr+TextRunTexels+GlyphTexels*Address(i)) = glyph
	}
	return addr
}

// EncodeGlyphResources appends one resource record per glyph of a run and
// returns the base address for use as an instance's UserData1.
func (s *Store) EncodeGlyphResources(resources []GlyphResource) Address {
	addr := s.alloc(GlyphResourceTexels * Address(len(resources)))
	for i, res := range resources {
		*Fetch[GlyphResource](s, addr+GlyphResourceTexels*Address(i)) = res
	}
	return addr
}

func (s *Store) EncodeClipArea(area ClipArea) Address {
	addr := s.alloc(ClipAreaTexels)
	*Fetch[ClipArea](s, addr) = area
	return addr
}
