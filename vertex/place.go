// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package vertex

import "github.com/prism-gfx/prism/pmath"

// placement maps one corner of a local-space rectangle to device pixels.
// Implementations return the local position so kind-specific resolvers can
// derive interpolation fractions from it.
type placement interface {
	place(f *Frame, prim Primitive, rect pmath.Rect, corner pmath.Vec2, out *Output) pmath.Vec2
}

// axisAlignedPlacement handles layers whose transform is a pure translation.
// It applies the translation directly and leaves LocalPos and LocalBounds
// zero; fragments need no inside/outside test on this path.
type axisAlignedPlacement struct{}

func (axisAlignedPlacement) place(f *Frame, prim Primitive, rect pmath.Rect, corner pmath.Vec2, out *Output) pmath.Vec2 {
	local := rect.Corner(corner)
	world := local.Add(f.Layers[prim.Layer].Transform.Offset())
	out.Position = prim.Task.Origin.Add(world.Scale(f.DevicePixelRatio))
	return local
}

// transformPlacement handles arbitrary projective layer transforms. The
// placed rectangle's local bounds travel with each vertex so the fragment
// stage can reject samples outside the pre-transform geometry.
type transformPlacement struct{}

func (transformPlacement) place(f *Frame, prim Primitive, rect pmath.Rect, corner pmath.Vec2, out *Output) pmath.Vec2 {
	local := rect.Corner(corner)
	world := f.Layers[prim.Layer].Transform.Apply(local)
	out.Position = prim.Task.Origin.Add(world.Scale(f.DevicePixelRatio))
	out.LocalPos = local
	out.LocalBounds = rect
	return local
}
