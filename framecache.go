package armature

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// CachedFrame is a pre-rendered image of one animation frame. Anchor is the
// point in the image that corresponds to the scene origin, used to align onion
// skins and sprite-sheet cells.
type CachedFrame struct {
	Image  *ebiten.Image
	Anchor image.Point
}

// empty reports whether the slot holds no image.
func (c CachedFrame) empty() bool {
	return c.Image == nil
}

// CacheFrame stores a rendered image for frame. The cache is first truncated to
// FrameCount entries so slots of deleted frames never survive, then padded with
// empty slots so that frames may be cached in any order.
func (a *Animation) CacheFrame(frame int, img *ebiten.Image, anchor image.Point) {
	if frame < 0 {
		panic("armature: cache frame index out of range")
	}
	if len(a.cache) > a.frameCount {
		clear(a.cache[a.frameCount:])
		a.cache = a.cache[:a.frameCount]
	}
	for len(a.cache) <= frame {
		a.cache = append(a.cache, CachedFrame{})
	}
	a.cache[frame] = CachedFrame{Image: img, Anchor: anchor}
}

// HasCache reports whether a rendered image is cached for frame.
func (a *Animation) HasCache(frame int) bool {
	return frame >= 0 && frame < len(a.cache) && !a.cache[frame].empty()
}

// CachedImage returns the cached slot for frame. The zero CachedFrame is
// returned for frames that were never cached.
func (a *Animation) CachedImage(frame int) CachedFrame {
	if frame < 0 || frame >= len(a.cache) {
		return CachedFrame{}
	}
	return a.cache[frame]
}

// CacheLen returns the number of cache slots, including empty ones.
func (a *Animation) CacheLen() int {
	return len(a.cache)
}

// InvalidateCache drops every cached image. Images are not deallocated; the
// renderer that produced them owns their GPU memory.
func (a *Animation) InvalidateCache() {
	clear(a.cache)
	a.cache = a.cache[:0]
}
