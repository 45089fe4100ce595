// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package store

import (
	"honnef.co/go/color"
)

// LinearRGBA converts a color to the linear, straight-alpha representation
// gradient stop and text run records carry.
func LinearRGBA(c *color.Color) [4]float32 {
	cc := c.Convert(color.LinearSRGB)
	return [4]float32{
		float32(cc.Values[0]),
		float32(cc.Values[1]),
		float32(cc.Values[2]),
		float32(cc.Values[3]),
	}
}

// Stop builds a gradient stop record from a color.
func Stop(offset float32, c *color.Color) GradientStop {
	if c == nil {
		panic("store: nil color in gradient stop")
	}
	return GradientStop{
		Color:  LinearRGBA(c),
		Offset: offset,
	}
}
