// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package store implements the primitive data store: a flat, append-only
// arena of fixed-size records shared between the frame producer and the
// vertex resolution stage.
//
// Records are multiples of a 16-byte texel and are addressed by texel index,
// the CPU rendering of a GPU data texture. The producer writes the store once
// per frame; the vertex stage only reads it. Fetching performs no bounds or
// tag checking: supplying an address outside the populated region, or of the
// wrong kind, is a caller error.
package store

import (
	"slices"
	"structs"

	"honnef.co/go/safeish"

	"github.com/prism-gfx/prism/pmath"
)

// Address indexes the store in texel units.
type Address uint32

// Record sizes in texels. Offsets into kind-specific payloads are computed
// as base + header size + record size * index.
const (
	PrimitiveHeaderTexels Address = 2
	GradientTexels        Address = 1
	GradientStopTexels    Address = 2
	TextRunTexels         Address = 2
	GlyphTexels           Address = 1
	GlyphResourceTexels   Address = 2
	ClipAreaTexels        Address = 2
)

const texelFloats = 4

type Store struct {
	data []float32
}

// Len reports the number of populated texels.
func (s *Store) Len() Address {
	return Address(len(s.data) / texelFloats)
}

// Reset discards all records while retaining capacity for the next frame.
func (s *Store) Reset() {
	s.data = s.data[:0]
}

func (s *Store) alloc(texels Address) Address {
	addr := s.Len()
	n := int(texels) * texelFloats
	s.data = slices.Grow(s.data, n)[:len(s.data)+n]
	clear(s.data[int(addr)*texelFloats:])
	return addr
}

// Fetch returns a typed view of the record at addr. The returned pointer
// aliases the store's memory and is valid only until the next append or
// Reset; appending may move the backing array.
func Fetch[T any](s *Store, addr Address) *T {
	return safeish.Cast[*T](&s.data[int(addr)*texelFloats])
}

// PrimitiveHeader is the per-primitive geometry record every instance points
// at, regardless of kind.
type PrimitiveHeader struct {
	_ structs.HostLayout

	LocalRect     pmath.Rect
	LocalClipRect pmath.Rect
}

// Gradient is the kind-specific payload of a gradient primitive. Start and
// End are in local space, relative to the primitive's origin. The payload is
// followed contiguously by the gradient's stops.
type Gradient struct {
	_ structs.HostLayout

	Start pmath.Vec2
	End   pmath.Vec2
}

// GradientStop colors are linear, in [0, 1] per channel, not premultiplied.
// Offsets are normalized positions along the gradient and non-decreasing
// across a stop sequence by construction upstream.
type GradientStop struct {
	_ structs.HostLayout

	Color  [4]float32
	Offset float32
	_      [3]float32
}

// TextRun is the kind-specific payload of a text run primitive, followed
// contiguously by its glyphs.
type TextRun struct {
	_ structs.HostLayout

	Color  [4]float32
	Offset pmath.Vec2
	_      [2]float32
}

type Glyph struct {
	_ structs.HostLayout

	Offset pmath.Vec2
	_      [2]float32
}

// GlyphResource locates a rasterized glyph in the glyph atlas. UVRect is in
// atlas pixel coordinates. Offset is the rasterizer's subpixel offset; its y
// axis points in the rasterizer's convention, not the device's, and is
// negated by the vertex stage.
type GlyphResource struct {
	_ structs.HostLayout

	UVRect pmath.Rect
	Offset pmath.Vec2
	_      [2]float32
}

// ClipArea is opaque to the vertex stage beyond forwarding: a screen
// rectangle plus the mask's UV bounds in the clip atlas.
type ClipArea struct {
	_ structs.HostLayout

	Rect     pmath.Rect
	UVBounds [4]float32
}
