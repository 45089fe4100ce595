// Copyright 2026 the Prism Authors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package atlas

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/prism-gfx/prism/pmath"
	"github.com/prism-gfx/prism/store"
)

// SubpixelOffset is a rasterization position quantized to quarter pixels.
// Rasterizing per exact subpixel position would defeat caching; quarter
// pixels are indistinguishable in practice.
type SubpixelOffset uint8

// QuantizeSubpixel buckets the fractional part of a 26.6 fixed-point
// position into one of four subpixel offsets.
func QuantizeSubpixel(v fixed.Int26_6) SubpixelOffset {
	return SubpixelOffset((v & 63) >> 4)
}

// GlyphKey identifies a rasterized glyph in the cache.
type GlyphKey struct {
	// Font identifies the font instance, including size and variation
	// coordinates; assigning it is the text subsystem's concern.
	Font      uint64
	GID       font.GID
	SubpixelX SubpixelOffset
	SubpixelY SubpixelOffset
}

type glyphEntry struct {
	resource store.GlyphResource
	epoch    uint64
}

// GlyphCache maps glyph keys to their atlas locations. Entries unused for
// retainedEpochs maintenance cycles are dropped; their atlas area is only
// reclaimed when the external cache rebuilds the atlas.
type GlyphCache struct {
	epoch   uint64
	atlas   *Atlas
	entries map[GlyphKey]*glyphEntry
}

const retainedEpochs = 2

func NewGlyphCache(a *Atlas) *GlyphCache {
	return &GlyphCache{
		atlas:   a,
		entries: make(map[GlyphKey]*glyphEntry),
	}
}

// Atlas returns the atlas the cache allocates from.
func (c *GlyphCache) Atlas() *Atlas {
	return c.atlas
}

// Maintain starts a new epoch and drops entries that have not been used
// recently. Call once per frame, before this frame's lookups.
func (c *GlyphCache) Maintain() {
	c.epoch++
	for k, e := range c.entries {
		if e.epoch+retainedEpochs < c.epoch {
			delete(c.entries, k)
		}
	}
}

// Lookup returns the cached resource for key and marks it used.
func (c *GlyphCache) Lookup(key GlyphKey) (store.GlyphResource, bool) {
	e, ok := c.entries[key]
	if !ok {
		return store.GlyphResource{}, false
	}
	e.epoch = c.epoch
	return e.resource, true
}

// Insert allocates atlas space for a freshly rasterized glyph. Width and
// height are the bitmap's device-pixel dimensions and offset is the
// rasterizer's subpixel offset, stored verbatim in the resource record. It
// reports false when the atlas is full.
func (c *GlyphCache) Insert(key GlyphKey, width, height int, offset pmath.Vec2) (store.GlyphResource, bool) {
	uvRect, ok := c.atlas.Allocate(width, height)
	if !ok {
		return store.GlyphResource{}, false
	}
	res := store.GlyphResource{
		UVRect: uvRect,
		Offset: offset,
	}
	c.entries[key] = &glyphEntry{resource: res, epoch: c.epoch}
	return res, true
}
