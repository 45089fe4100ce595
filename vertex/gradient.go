// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package vertex

import (
	"github.com/chewxy/math32"

	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

// segmentEpsilon guards the division by the unclamped stop distance. A
// segment shorter than this in local units degenerates to a flat fill.
const segmentEpsilon = 1e-6

// segment is one resolved gradient slice: the sub-rectangle it covers and
// the colors interpolated across it along axis.
type segment struct {
	rect pmath.Rect
	// axis: 0 for horizontal gradients, 1 for vertical.
	axis   int
	c0, c1 [4]float32
}

// resolveGradient resolves one vertex of a two-stop gradient segment. The
// instance's first user datum indexes the stop pair within the gradient's
// stop array.
func resolveGradient(f *Frame, prim Primitive, corner pmath.Vec2, place placement, out *Output) {
	grad := store.Fetch[store.Gradient](f.Store, prim.Specific)
	stopBase := prim.Specific + store.GradientTexels +
		store.GradientStopTexels*store.Address(prim.UserData0)
	g0 := store.Fetch[store.GradientStop](f.Store, stopBase)
	g1 := store.Fetch[store.GradientStop](f.Store, stopBase+store.GradientStopTexels)

	seg := resolveSegment(grad, g0, g1, prim.LocalRect)

	local := place.place(f, prim, seg.rect, corner, out)
	frac := seg.rect.Fraction(local)
	t := [2]float32{frac.X, frac.Y}[seg.axis]
	out.Color = pmath.Mix4(seg.c0, seg.c1, t)
}

// resolveSegment computes the covered sub-rectangle and endpoint colors for
// the stop pair (g0, g1) of grad within localRect.
//
// Stop positions are interpolated between the gradient's absolute endpoints
// and clamped to the primitive rectangle. When clamping moves a position,
// the endpoint color is re-derived at the clamped position so the visible
// ramp stays continuous with neighboring segments; when it does not, the
// stop colors pass through untouched.
func resolveSegment(grad *store.Gradient, g0, g1 *store.GradientStop, localRect pmath.Rect) segment {
	start := grad.Start.Add(localRect.Origin)
	end := grad.End.Add(localRect.Origin)

	// Horizontal exactly when the endpoints share a Y coordinate. Any
	// other direction, however slight, selects the vertical axis.
	axis := 1
	if start.Y == end.Y {
		axis = 0
	}

	var a0, a1, lo, hi float32
	if axis == 0 {
		a0, a1 = start.X, end.X
		lo, hi = localRect.Origin.X, localRect.Max().X
	} else {
		a0, a1 = start.Y, end.Y
		lo, hi = localRect.Origin.Y, localRect.Max().Y
	}

	p0 := pmath.Mix(a0, a1, g0.Offset)
	p1 := pmath.Mix(a0, a1, g1.Offset)
	denom := p1 - p0

	seg := segment{c0: g0.Color, c1: g1.Color}
	if math32.Abs(denom) < segmentEpsilon {
		// Degenerate stop pair. Fill flat with the leading stop's color
		// over an empty slice; no division takes place.
		seg.c1 = g0.Color
		seg.rect = segRect(localRect, axis, p0, p0)
		return seg
	}

	pc0 := pmath.Clamp(p0, lo, hi)
	pc1 := pmath.Clamp(p1, lo, hi)
	if pc0 != p0 {
		seg.c0 = pmath.Mix4(g0.Color, g1.Color, (pc0-p0)/denom)
	}
	if pc1 != p1 {
		seg.c1 = pmath.Mix4(g0.Color, g1.Color, (pc1-p0)/denom)
	}
	seg.rect = segRect(localRect, axis, pc0, pc1)
	return seg
}

// segRect spans p0..p1 on axis, keeping the signed extent so that fraction 0
// always lands on p0 and with it c0, and the primitive's full extent on the
// other axis. Reversed gradients produce a negative size.
func segRect(localRect pmath.Rect, axis int, p0, p1 float32) pmath.Rect {
	r := localRect
	if axis == 0 {
		r.Origin.X = p0
		r.Size.X = p1 - p0
	} else {
		r.Origin.Y = p0
		r.Size.Y = p1 - p0
	}
	return r
}
