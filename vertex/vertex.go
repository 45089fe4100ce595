// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package vertex implements the per-vertex resolution stage: it turns
// indirectly-addressed primitive records into the device-space placement,
// texture coordinates, and color inputs rasterization needs.
//
// Each invocation resolves one output vertex and is independent of every
// other invocation. All inputs (the record store, the atlases, the render
// task list) are frozen for the duration of a frame, so invocations may run
// on any number of goroutines with no synchronization. Any waiting for
// resource availability happens before this stage is invoked.
package vertex

import (
	"structs"

	"github.com/prism-gfx/prism/atlas"
	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

// Kind selects which primitive payload a pipeline variant resolves. The
// choice is made once, when the pipeline for a batch is built; invocations
// never branch on a runtime tag.
type Kind int

const (
	KindGradient Kind = iota
	KindTextRun
)

// PlacementKind selects the vertex placement strategy for a pipeline
// variant. Both strategies fulfill the same contract; the axis-aligned path
// is a performance specialization for coordinate spaces that are pure
// translations.
type PlacementKind int

const (
	PlacementAxisAligned PlacementKind = iota
	PlacementTransform
)

// RenderTask is the cached render target a primitive is drawn into, as
// supplied by the external task graph.
type RenderTask struct {
	// Origin of the target in device pixels.
	Origin pmath.Vec2
}

// Layer is one coordinate space of the transform/clip hierarchy.
type Layer struct {
	Transform pmath.Matrix
}

// Frame bundles the read-only inputs of one frame. Nothing here may be
// written while any invocation for the frame may still run.
type Frame struct {
	Store  *store.Store
	Glyphs *atlas.Atlas
	// Masks is the atlas the forwarded ClipArea UV bounds point into. This
	// stage never samples or normalizes against it; it is carried so the
	// frame owner keeps it frozen alongside the other inputs for the
	// downstream clip-mask lookup.
	Masks  *atlas.Atlas
	Tasks  []RenderTask
	Layers []Layer

	// DevicePixelRatio maps local/layout units to device pixels.
	DevicePixelRatio float32
}

// Instance is what the external batcher submits per drawn primitive,
// mirroring the two integer vectors of the GPU instance stream. Meaning of
// UserData0 and UserData1 depends on the pipeline kind: the first visible
// stop index for gradients, glyph index and resource base address for text
// runs.
type Instance struct {
	_ structs.HostLayout

	PrimAddress     store.Address
	SpecificAddress store.Address
	TaskIndex       int32
	LayerIndex      int32
	Z               int32
	// ClipAddress points at a ClipArea record; negative means unclipped.
	ClipAddress int32
	UserData0   int32
	UserData1   int32
}

// Primitive is an instance joined with its geometry header and render task.
type Primitive struct {
	LocalRect pmath.Rect
	// LocalClipRect is decoded with the header for downstream consumers;
	// clipping happens in the fragment stage against the clip mask, so no
	// resolver consults it.
	LocalClipRect pmath.Rect
	Z             int32
	Layer         int32
	Task          RenderTask
	Specific      store.Address
	ClipAddress   int32
	UserData0     int32
	UserData1     int32
}

// Primitive fetches the geometry header for inst. The address is trusted;
// see the store package.
func (f *Frame) Primitive(inst Instance) Primitive {
	header := store.Fetch[store.PrimitiveHeader](f.Store, inst.PrimAddress)
	return Primitive{
		LocalRect:     header.LocalRect,
		LocalClipRect: header.LocalClipRect,
		Z:             inst.Z,
		Layer:         inst.LayerIndex,
		Task:          f.Tasks[inst.TaskIndex],
		Specific:      inst.SpecificAddress,
		ClipAddress:   inst.ClipAddress,
		UserData0:     inst.UserData0,
		UserData1:     inst.UserData1,
	}
}

// Output is the stage's sole product, one record per emitted vertex, owned
// by the rasterization stage.
type Output struct {
	// Position in device pixels.
	Position pmath.Vec2
	// UV in normalized atlas coordinates; text runs only.
	UV    pmath.Vec2
	Color [4]float32
	Z     int32

	// Clip-mask reference, forwarded unresolved from the ClipArea record.
	ClipRect pmath.Rect
	ClipUV   [4]float32

	// Local position and bounds of the placed rectangle, emitted by the
	// transform-aware placement for per-fragment inside/outside testing.
	LocalPos    pmath.Vec2
	LocalBounds pmath.Rect
}

// quadCorners is the unit quad each instance is expanded into, in the
// triangle-strip order the vertex indices follow.
var quadCorners = [4]pmath.Vec2{
	{X: 0, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: 1, Y: 1},
}

// VerticesPerInstance is the number of output vertices Dispatch emits per
// instance.
const VerticesPerInstance = len(quadCorners)

type resolveFunc func(f *Frame, prim Primitive, corner pmath.Vec2, place placement, out *Output)

// Pipeline is one fully specialized variant of the stage. The kind-specific
// resolve function and the placement strategy are bound at construction,
// the moral equivalent of the original's compile-time shader feature flags.
type Pipeline struct {
	kind    Kind
	resolve resolveFunc
	place   placement
}

func NewPipeline(kind Kind, placementKind PlacementKind) *Pipeline {
	p := &Pipeline{kind: kind}
	switch kind {
	case KindGradient:
		p.resolve = resolveGradient
	case KindTextRun:
		p.resolve = resolveTextRun
	default:
		panic("vertex: unknown primitive kind")
	}
	switch placementKind {
	case PlacementAxisAligned:
		p.place = axisAlignedPlacement{}
	case PlacementTransform:
		p.place = transformPlacement{}
	default:
		panic("vertex: unknown placement kind")
	}
	return p
}

func (p *Pipeline) Kind() Kind {
	return p.kind
}

// ResolveVertex resolves one output vertex: vertexIX selects the quad corner
// within the instance.
func (p *Pipeline) ResolveVertex(f *Frame, inst Instance, vertexIX uint32) Output {
	prim := f.Primitive(inst)
	var out Output
	out.Z = prim.Z
	p.resolve(f, prim, quadCorners[vertexIX], p.place, &out)
	forwardClip(f, prim, &out)
	return out
}

// Dispatch resolves all vertices of a batch into out, which must hold
// VerticesPerInstance records per instance. Invocations share no mutable
// state; callers may split instances across goroutines freely.
func (p *Pipeline) Dispatch(f *Frame, instances []Instance, out []Output) {
	for i, inst := range instances {
		for v := range uint32(VerticesPerInstance) {
			out[i*VerticesPerInstance+int(v)] = p.ResolveVertex(f, inst, v)
		}
	}
}

// forwardClip copies the primitive's clip-area rectangle and atlas UV bounds
// into the output unchanged. No resolution, no sampling; downstream
// consumers use them for clip-mask lookup.
func forwardClip(f *Frame, prim Primitive, out *Output) {
	if prim.ClipAddress < 0 {
		return
	}
	area := store.Fetch[store.ClipArea](f.Store, store.Address(prim.ClipAddress))
	out.ClipRect = area.Rect
	out.ClipUV = area.UVBounds
}
