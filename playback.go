package armature

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Player moves a playhead across an Animation at its frame rate. Call
// Update(dt) once per tick; there is no global clock.
//
// The playhead is a linear tween over the frame range [0, FrameCount). Looping
// animations wrap, others stop on their last frame and set Done.
type Player struct {
	anim    *Animation
	tween   *gween.Tween
	elapsed float32
	length  float32
	count   int
	rate    float64
	frame   int
	Done    bool
	Paused  bool
}

// NewPlayer creates a player at frame 0 of anim.
func NewPlayer(anim *Animation) *Player {
	p := &Player{anim: anim}
	p.rebuild()
	return p
}

// rebuild recreates the tween for the current frame count and rate.
func (p *Player) rebuild() {
	p.count = max(p.anim.FrameCount(), 1)
	p.rate = p.anim.FrameRate()
	rate := p.rate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	p.length = float32(float64(p.count) / rate)
	p.tween = gween.New(0, float32(p.count), p.length, ease.Linear)
	p.tween.Set(p.elapsed)
}

// Animation returns the animation being played.
func (p *Player) Animation() *Animation { return p.anim }

// Frame returns the frame under the playhead.
func (p *Player) Frame() int { return p.frame }

// Update advances the playhead by dt seconds and returns the frame under it.
// Changes to the animation's frame count or rate are picked up on the fly.
func (p *Player) Update(dt float32) int {
	if p.count != max(p.anim.FrameCount(), 1) || p.rate != p.anim.FrameRate() {
		p.rebuild()
	}
	if p.Paused || p.Done {
		return p.frame
	}
	p.elapsed += dt
	if p.anim.Loop() {
		p.elapsed = float32(math.Mod(float64(p.elapsed), float64(p.length)))
	}
	v, finished := p.tween.Set(p.elapsed)
	if finished && !p.anim.Loop() {
		p.Done = true
		p.frame = p.count - 1
		return p.frame
	}
	p.frame = min(int(v), p.count-1)
	return p.frame
}

// Seek moves the playhead to frame and clears Done.
func (p *Player) Seek(frame int) {
	frame = max(0, min(frame, p.count-1))
	p.elapsed = p.length * float32(frame) / float32(p.count)
	p.tween.Set(p.elapsed)
	p.frame = frame
	p.Done = false
}

// Reset rewinds to frame 0.
func (p *Player) Reset() {
	p.tween.Reset()
	p.elapsed = 0
	p.frame = 0
	p.Done = false
}
