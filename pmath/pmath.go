// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package pmath provides the float32 geometry used by the vertex stage.
//
// Producer-facing APIs speak honnef.co/go/curve's float64 types; everything
// that crosses into the per-frame record store is converted to the float32
// representations defined here, which are laid out to be GPU-mappable.
package pmath

import (
	"structs"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
	"honnef.co/go/curve"
)

type Vec2 struct {
	_ structs.HostLayout

	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float32) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Mix(o Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
	}
}

func Vec2FromPoint(p curve.Point) Vec2 {
	return Vec2{X: float32(p.X), Y: float32(p.Y)}
}

// Rect is an origin+size rectangle. The size may be negative along an axis;
// Corner and Fraction remain consistent with each other in that case.
type Rect struct {
	_ structs.HostLayout

	Origin Vec2
	Size   Vec2
}

func RectFromCurve(r curve.Rect) Rect {
	return Rect{
		Origin: Vec2{X: float32(r.X0), Y: float32(r.Y0)},
		Size:   Vec2{X: float32(r.X1 - r.X0), Y: float32(r.Y1 - r.Y0)},
	}
}

func (r Rect) Max() Vec2 {
	return r.Origin.Add(r.Size)
}

// Corner returns the position at the normalized coordinate f within r,
// with f = (0,0) at the origin and f = (1,1) at the opposite corner.
func (r Rect) Corner(f Vec2) Vec2 {
	return Vec2{
		X: r.Origin.X + f.X*r.Size.X,
		Y: r.Origin.Y + f.Y*r.Size.Y,
	}
}

// Fraction is the inverse of Corner. Degenerate extents map to 0 rather
// than dividing by zero.
func (r Rect) Fraction(p Vec2) Vec2 {
	var f Vec2
	if r.Size.X != 0 {
		f.X = (p.X - r.Origin.X) / r.Size.X
	}
	if r.Size.Y != 0 {
		f.Y = (p.Y - r.Origin.Y) / r.Size.Y
	}
	return f
}

// Matrix is a projective 2D transform: a column-major 2x2 linear part and a
// translation, like the GPU-side affine transforms, plus a perspective row
// for coordinate spaces that carry one.
type Matrix struct {
	_ structs.HostLayout

	Matrix      [4]float32
	Translation [2]float32
	Perspective [3]float32
}

var Identity = Matrix{
	Matrix:      [4]float32{1, 0, 0, 1},
	Perspective: [3]float32{0, 0, 1},
}

func MatrixFromAffine(transform curve.Affine) Matrix {
	c := transform.Coefficients()
	return Matrix{
		Matrix:      [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])},
		Translation: [2]float32{float32(c[4]), float32(c[5])},
		Perspective: [3]float32{0, 0, 1},
	}
}

// Apply transforms p, performing the perspective divide. A degenerate
// homogeneous weight is clamped away from zero so results stay finite.
func (m Matrix) Apply(p Vec2) Vec2 {
	x := m.Matrix[0]*p.X + m.Matrix[2]*p.Y + m.Translation[0]
	y := m.Matrix[1]*p.X + m.Matrix[3]*p.Y + m.Translation[1]
	w := m.Perspective[0]*p.X + m.Perspective[1]*p.Y + m.Perspective[2]
	if math32.Abs(w) < 1e-6 {
		w = math32.Copysign(1e-6, w)
	}
	return Vec2{X: x / w, Y: y / w}
}

// Offset is the translation component, which is the whole transform for the
// axis-aligned fast path.
func (m Matrix) Offset() Vec2 {
	return Vec2{X: m.Translation[0], Y: m.Translation[1]}
}

func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func Clamp(v, lo, hi float32) float32 {
	return math32.Min(math32.Max(v, lo), hi)
}

func Mix4(a, b [4]float32, t float32) [4]float32 {
	return [4]float32{
		Mix(a[0], b[0], t),
		Mix(a[1], b[1], t),
		Mix(a[2], b[2], t),
		Mix(a[3], b[3], t),
	}
}

func NextMultipleOf[T constraints.Integer](x, y T) T {
	r := x % y
	if r == 0 {
		return x
	}
	return x + y - r
}
