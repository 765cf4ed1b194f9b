package armature

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCacheFramePadsOutOfOrder(t *testing.T) {
	a := NewAnimation("a")
	a.SetFrameCount(4)
	img := ebiten.NewImage(8, 8)

	a.CacheFrame(2, img, image.Pt(4, 4))
	if a.CacheLen() != 3 {
		t.Errorf("CacheLen = %d, want 3", a.CacheLen())
	}
	if !a.HasCache(2) {
		t.Error("frame 2 should be cached")
	}
	if a.HasCache(0) || a.HasCache(1) || a.HasCache(3) {
		t.Error("only frame 2 should be cached")
	}
	c := a.CachedImage(2)
	if c.Image != img || c.Anchor != image.Pt(4, 4) {
		t.Errorf("CachedImage(2) = %+v", c)
	}
	if a.CachedImage(9).Image != nil {
		t.Error("CachedImage past the end should be empty")
	}
}

func TestCacheFrameReplaces(t *testing.T) {
	a := NewAnimation("a")
	a.SetFrameCount(2)
	first, second := ebiten.NewImage(1, 1), ebiten.NewImage(1, 1)
	a.CacheFrame(1, first, image.Point{})
	a.CacheFrame(1, second, image.Point{})
	if a.CacheLen() != 2 {
		t.Errorf("CacheLen = %d, want 2", a.CacheLen())
	}
	if a.CachedImage(1).Image != second {
		t.Error("second CacheFrame should replace the slot")
	}
}

func TestCacheFrameTruncatesToFrameCount(t *testing.T) {
	a := NewAnimation("a")
	a.SetFrameCount(6)
	img := ebiten.NewImage(1, 1)
	a.CacheFrame(5, img, image.Point{})

	a.SetFrameCount(2)
	a.CacheFrame(0, img, image.Point{})
	if a.CacheLen() != 2 {
		t.Errorf("CacheLen = %d, want 2", a.CacheLen())
	}
	if a.HasCache(5) {
		t.Error("slot of a deleted frame survived")
	}
}

func TestCacheFrameNegativePanics(t *testing.T) {
	a := NewAnimation("a")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative frame")
		}
	}()
	a.CacheFrame(-1, nil, image.Point{})
}

func TestInvalidateCache(t *testing.T) {
	a := NewAnimation("a")
	a.SetFrameCount(3)
	a.CacheFrame(1, ebiten.NewImage(1, 1), image.Point{})
	a.InvalidateCache()
	if a.CacheLen() != 0 || a.HasCache(1) {
		t.Error("cache should be empty after InvalidateCache")
	}
}

func TestCloneDropsCache(t *testing.T) {
	a := NewAnimation("a")
	a.CacheFrame(0, ebiten.NewImage(1, 1), image.Point{})
	if a.Clone().CacheLen() != 0 {
		t.Error("clone should not share the frame cache")
	}
}
