// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package prism resolves retained-mode 2D primitives into rasterization-ready
// vertices. Primitives live as fixed-layout records in a flat texel store and
// are referenced indirectly by compact instance records; this package is the
// stage that joins the two and produces placed, colored, texture-addressed
// vertices for gradient segments and text run glyphs.
package prism

import (
	"github.com/prism-gfx/prism/atlas"
	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
	"github.com/prism-gfx/prism/vertex"
)

// FrameParams are the per-frame scalars the external scene builder decides.
type FrameParams struct {
	DevicePixelRatio float32
	TargetWidth      int
	TargetHeight     int
}

// Renderer owns the full set of specialized vertex pipelines. All variants
// are built up front; batch submission picks one and never pays a
// per-invocation dispatch cost.
type Renderer struct {
	pipelines [2][2]*vertex.Pipeline
}

func New() *Renderer {
	r := &Renderer{}
	for _, kind := range []vertex.Kind{vertex.KindGradient, vertex.KindTextRun} {
		for _, place := range []vertex.PlacementKind{vertex.PlacementAxisAligned, vertex.PlacementTransform} {
			r.pipelines[kind][place] = vertex.NewPipeline(kind, place)
		}
	}
	return r
}

// Pipeline returns the resolver variant for the given primitive kind and
// placement strategy.
func (r *Renderer) Pipeline(kind vertex.Kind, place vertex.PlacementKind) *vertex.Pipeline {
	return r.pipelines[kind][place]
}

// NewFrame assembles the frozen per-frame inputs. The caller keeps ownership
// of the store and atlases and must not mutate them until all dispatches for
// the frame have completed.
func NewFrame(params FrameParams, s *store.Store, glyphs, masks *atlas.Atlas, tasks []vertex.RenderTask, layers []vertex.Layer) *vertex.Frame {
	return &vertex.Frame{
		Store:            s,
		Glyphs:           glyphs,
		Masks:            masks,
		Tasks:            tasks,
		Layers:           layers,
		DevicePixelRatio: params.DevicePixelRatio,
	}
}

// IdentityLayer is the root coordinate space.
func IdentityLayer() vertex.Layer {
	return vertex.Layer{Transform: pmath.Identity}
}
