// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package vertex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"honnef.co/go/curve"

	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

func translationLayer(x, y float32) Layer {
	m := pmath.Identity
	m.Translation = [2]float32{x, y}
	return Layer{Transform: m}
}

func TestPlacementPathEquivalence(t *testing.T) {
	// For a pure translation both placement strategies must agree on the
	// device position.
	var s store.Store
	inst := encodeGradientPrim(&s,
		curve.Rect{X0: 10, Y0: 10, X1: 110, Y1: 60},
		curve.Point{X: 0, Y: 0}, curve.Point{X: 100, Y: 0},
		[]store.GradientStop{
			{Color: red, Offset: 0},
			{Color: blue, Offset: 1},
		})

	f := testFrame(&s)
	f.Layers = []Layer{translationLayer(7, 9)}
	f.DevicePixelRatio = 2
	f.Tasks = []RenderTask{{Origin: pmath.Vec2{X: 100, Y: 200}}}

	fast := NewPipeline(KindGradient, PlacementAxisAligned)
	slow := NewPipeline(KindGradient, PlacementTransform)
	for v := range uint32(VerticesPerInstance) {
		a := fast.ResolveVertex(f, inst, v)
		b := slow.ResolveVertex(f, inst, v)
		assert.InDelta(t, a.Position.X, b.Position.X, 1e-4)
		assert.InDelta(t, a.Position.Y, b.Position.Y, 1e-4)
		assert.Equal(t, a.Color, b.Color)
	}
}

func TestFastPathPosition(t *testing.T) {
	var s store.Store
	inst := encodeGradientPrim(&s,
		curve.Rect{X0: 5, Y0: 5, X1: 25, Y1: 25},
		curve.Point{X: 0, Y: 0}, curve.Point{X: 20, Y: 0},
		[]store.GradientStop{
			{Color: red, Offset: 0},
			{Color: blue, Offset: 1},
		})

	f := testFrame(&s)
	f.DevicePixelRatio = 2
	f.Tasks = []RenderTask{{Origin: pmath.Vec2{X: 10, Y: 10}}}

	p := NewPipeline(KindGradient, PlacementAxisAligned)
	out := p.ResolveVertex(f, inst, 0)
	assert.Equal(t, pmath.Vec2{X: 20, Y: 20}, out.Position)
	// The fast path does not emit local bounds.
	assert.Equal(t, pmath.Rect{}, out.LocalBounds)
}

func TestTransformPathEmitsLocalBounds(t *testing.T) {
	var s store.Store
	inst := encodeGradientPrim(&s,
		curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
		curve.Point{X: 0, Y: 0}, curve.Point{X: 100, Y: 0},
		[]store.GradientStop{
			{Color: red, Offset: 0},
			{Color: blue, Offset: 1},
		})

	f := testFrame(&s)
	// 90 degree rotation.
	f.Layers = []Layer{{Transform: pmath.Matrix{
		Matrix:      [4]float32{0, 1, -1, 0},
		Perspective: [3]float32{0, 0, 1},
	}}}

	p := NewPipeline(KindGradient, PlacementTransform)
	out := p.ResolveVertex(f, inst, 3)
	assert.Equal(t, pmath.Vec2{X: 100, Y: 100}, out.LocalPos)
	assert.Equal(t, pmath.Vec2{X: 0, Y: 0}, out.LocalBounds.Origin)
	assert.Equal(t, pmath.Vec2{X: 100, Y: 100}, out.LocalBounds.Size)
	assert.InDelta(t, -100, out.Position.X, 1e-4)
	assert.InDelta(t, 100, out.Position.Y, 1e-4)
}

func TestTransformPathPerspectiveFinite(t *testing.T) {
	var s store.Store
	inst := encodeGradientPrim(&s,
		curve.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
		curve.Point{X: 0, Y: 0}, curve.Point{X: 100, Y: 0},
		[]store.GradientStop{
			{Color: red, Offset: 0},
			{Color: blue, Offset: 1},
		})

	f := testFrame(&s)
	m := pmath.Identity
	// The homogeneous weight vanishes along x = 0.
	m.Perspective = [3]float32{0.01, 0, 0}
	f.Layers = []Layer{{Transform: m}}

	p := NewPipeline(KindGradient, PlacementTransform)
	for v := range uint32(VerticesPerInstance) {
		assertFinite(t, p.ResolveVertex(f, inst, v))
	}
}
