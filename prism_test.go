// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package prism

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prism-gfx/prism/atlas"
	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
	"github.com/prism-gfx/prism/vertex"
)

func TestRendererVariants(t *testing.T) {
	r := New()
	for _, kind := range []vertex.Kind{vertex.KindGradient, vertex.KindTextRun} {
		for _, place := range []vertex.PlacementKind{vertex.PlacementAxisAligned, vertex.PlacementTransform} {
			p := r.Pipeline(kind, place)
			assert.NotNil(t, p)
			assert.Equal(t, kind, p.Kind())
		}
	}
}

func TestNewFrame(t *testing.T) {
	var s store.Store
	glyphs := atlas.New(128, 128)
	masks := atlas.New(128, 128)
	tasks := []vertex.RenderTask{{Origin: pmath.Vec2{X: 10, Y: 10}}}
	layers := []vertex.Layer{IdentityLayer()}

	f := NewFrame(FrameParams{
		DevicePixelRatio: 2,
		TargetWidth:      800,
		TargetHeight:     600,
	}, &s, glyphs, masks, tasks, layers)

	assert.Same(t, &s, f.Store)
	assert.Same(t, glyphs, f.Glyphs)
	assert.Equal(t, float32(2), f.DevicePixelRatio)
	assert.Equal(t, tasks, f.Tasks)
}

func TestFrameUniforms(t *testing.T) {
	glyphs := atlas.New(128, 128)
	u := FrameParams{
		DevicePixelRatio: 2,
		TargetWidth:      800,
		TargetHeight:     600,
	}.Uniforms(glyphs)

	assert.Equal(t, [2]float32{800, 600}, u.TargetSize)
	assert.Equal(t, [2]float32{128, 128}, u.GlyphAtlasSize)
	assert.Equal(t, float32(2), u.DevicePixelRatio)

	// The block tracks the atlas's current dimensions.
	glyphs.Grow(256, 256)
	u = FrameParams{}.Uniforms(glyphs)
	assert.Equal(t, [2]float32{256, 256}, u.GlyphAtlasSize)
}

func TestIdentityLayer(t *testing.T) {
	l := IdentityLayer()
	p := pmath.Vec2{X: 17, Y: -4}
	assert.Equal(t, p, l.Transform.Apply(p))
	assert.Equal(t, pmath.Vec2{}, l.Transform.Offset())
}
