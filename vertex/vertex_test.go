// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package vertex

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"

	"github.com/prism-gfx/prism/atlas"
	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

var (
	red  = [4]float32{1, 0, 0, 1}
	blue = [4]float32{0, 0, 1, 1}
)

func testFrame(s *store.Store) *Frame {
	return &Frame{
		Store:            s,
		Glyphs:           atlas.New(128, 128),
		Masks:            atlas.New(128, 128),
		Tasks:            []RenderTask{{}},
		Layers:           []Layer{{Transform: pmath.Identity}},
		DevicePixelRatio: 1,
	}
}

// encodeGradientPrim writes a primitive header plus a two-stop gradient and
// returns an instance referencing them.
func encodeGradientPrim(s *store.Store, rect curve.Rect, start, end curve.Point, stops []store.GradientStop) Instance {
	prim := s.EncodePrimitive(rect, rect)
	grad := s.EncodeGradient(start, end, stops)
	return Instance{
		PrimAddress:     prim,
		SpecificAddress: grad,
		ClipAddress:     -1,
	}
}

func TestInstanceLayout(t *testing.T) {
	// Instance binds as the GPU instance stream: eight 32-bit fields, no
	// padding.
	assert.Equal(t, uintptr(32), unsafe.Sizeof(Instance{}))
}

func TestDispatch(t *testing.T) {
	var s store.Store
	rect := curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	stops := []store.GradientStop{
		{Color: red, Offset: 0},
		{Color: blue, Offset: 1},
	}
	instances := []Instance{
		encodeGradientPrim(&s, rect, curve.Point{}, curve.Point{X: 100}, stops),
		encodeGradientPrim(&s, rect, curve.Point{}, curve.Point{X: 100}, stops),
	}
	instances[0].Z = 3
	instances[1].Z = 7

	f := testFrame(&s)
	p := NewPipeline(KindGradient, PlacementAxisAligned)
	out := make([]Output, len(instances)*VerticesPerInstance)
	p.Dispatch(f, instances, out)

	for v := range VerticesPerInstance {
		assert.Equal(t, int32(3), out[v].Z)
		assert.Equal(t, int32(7), out[VerticesPerInstance+v].Z)
	}
	// Corner order is a triangle strip over the unit quad.
	assert.Equal(t, pmath.Vec2{X: 0, Y: 0}, out[0].Position)
	assert.Equal(t, pmath.Vec2{X: 100, Y: 0}, out[1].Position)
	assert.Equal(t, pmath.Vec2{X: 0, Y: 100}, out[2].Position)
	assert.Equal(t, pmath.Vec2{X: 100, Y: 100}, out[3].Position)
}

func TestClipForwarding(t *testing.T) {
	var s store.Store
	rect := curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	stops := []store.GradientStop{
		{Color: red, Offset: 0},
		{Color: blue, Offset: 1},
	}
	inst := encodeGradientPrim(&s, rect, curve.Point{}, curve.Point{X: 100}, stops)
	area := store.ClipArea{
		Rect:     pmath.Rect{Origin: pmath.Vec2{X: 5, Y: 5}, Size: pmath.Vec2{X: 50, Y: 50}},
		UVBounds: [4]float32{0, 0, 0.5, 0.5},
	}
	inst.ClipAddress = int32(s.EncodeClipArea(area))

	f := testFrame(&s)
	p := NewPipeline(KindGradient, PlacementAxisAligned)
	out := p.ResolveVertex(f, inst, 0)
	assert.Equal(t, area.Rect, out.ClipRect)
	assert.Equal(t, area.UVBounds, out.ClipUV)
}

func TestNoClipLeavesOutputZero(t *testing.T) {
	var s store.Store
	rect := curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	stops := []store.GradientStop{
		{Color: red, Offset: 0},
		{Color: blue, Offset: 1},
	}
	inst := encodeGradientPrim(&s, rect, curve.Point{}, curve.Point{X: 100}, stops)

	f := testFrame(&s)
	p := NewPipeline(KindGradient, PlacementAxisAligned)
	out := p.ResolveVertex(f, inst, 0)
	assert.Equal(t, pmath.Rect{}, out.ClipRect)
	assert.Equal(t, [4]float32{}, out.ClipUV)
}
