package armature

import "sort"

// Default values for a new Animation.
const (
	DefaultFrameRate  = 15.0
	DefaultFrameCount = 1
)

// Animation owns one keyframe Track per animated part, the timeline settings,
// the per-controller IK activation map and a cache of rendered frame images.
//
// Tracks are created lazily by SetKeyframe and are only mutated through
// Animation methods, which commands call on the UI thread. There is no
// locking; an Animation must not be shared between goroutines.
type Animation struct {
	id         int
	name       string
	frameRate  float64
	frameCount int
	loop       bool

	tracks      map[int]*Track
	controllers map[int]bool
	cache       []CachedFrame
}

// NewAnimation creates an empty looping animation with one frame at 15 fps.
// The ID is assigned when the animation is added to a Project.
func NewAnimation(name string) *Animation {
	return &Animation{
		name:        name,
		frameRate:   DefaultFrameRate,
		frameCount:  DefaultFrameCount,
		loop:        true,
		tracks:      make(map[int]*Track),
		controllers: make(map[int]bool),
	}
}

// ID returns the project-unique animation identity.
func (a *Animation) ID() int { return a.id }

// Name returns the animation name.
func (a *Animation) Name() string { return a.name }

// SetName sets the animation name.
func (a *Animation) SetName(name string) { a.name = name }

// FrameRate returns the playback rate in frames per second.
func (a *Animation) FrameRate() float64 { return a.frameRate }

// SetFrameRate sets the playback rate in frames per second.
func (a *Animation) SetFrameRate(fps float64) { a.frameRate = fps }

// FrameCount returns the number of frames on the timeline.
func (a *Animation) FrameCount() int { return a.frameCount }

// SetFrameCount sets the number of frames. Existing keys are not touched, so
// keys beyond the new count stay in their tracks and reappear if the timeline
// grows again. Callers keep n >= 1.
func (a *Animation) SetFrameCount(n int) { a.frameCount = n }

// Loop reports whether the animation wraps from its last frame to its first.
func (a *Animation) Loop() bool { return a.loop }

// SetLoop sets whether the animation loops.
func (a *Animation) SetLoop(loop bool) { a.loop = loop }

// --- Keyframes ---

// SetKeyframe writes data into the part's track at frame, replacing any key
// already there. data.Frame is overwritten with frame. Returns the track length.
// Frames beyond FrameCount are accepted.
func (a *Animation) SetKeyframe(frame int, part *Part, data Keyframe) int {
	data.Frame = frame
	t := a.track(part.ID, true)
	t.set(data)
	return t.Len()
}

// RemoveKeyframe deletes the part's key at frame. Returns false if there was
// none. An emptied track is kept, so the part stays listed by Parts.
func (a *Animation) RemoveKeyframe(frame int, part *Part) bool {
	t := a.track(part.ID, false)
	if t == nil {
		return false
	}
	return t.remove(frame)
}

// IsKeyframe returns the Mode of the key at exactly frame in the part's track,
// or ModeNone if there is none.
func (a *Animation) IsKeyframe(frame int, part *Part) Mode {
	t := a.track(part.ID, false)
	if t == nil {
		return ModeNone
	}
	k, ok := t.At(frame)
	if !ok {
		return ModeNone
	}
	return k.Mode
}

// AnyKeyframe returns the union of the key modes at frame across all parts.
// It is the "something is keyed here" marker of the timeline.
func (a *Animation) AnyKeyframe(frame int) Mode {
	var m Mode
	for _, t := range a.tracks {
		for _, k := range t.keys {
			if k.Frame == frame {
				m |= k.Mode
			}
			if k.Frame >= frame {
				break
			}
		}
	}
	return m
}

// Track returns the part's track, or nil if the part has never been keyed.
// The returned Track MUST NOT be mutated.
func (a *Animation) Track(partID int) *Track {
	return a.tracks[partID]
}

// Parts returns the IDs of all parts with a track, in ascending order.
func (a *Animation) Parts() []int {
	ids := make([]int, 0, len(a.tracks))
	for id := range a.tracks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// PartKey pairs a keyframe with the part it belongs to.
type PartKey struct {
	Part int
	Key  Keyframe
}

// Keys returns every authored key (Mode != ModeNone) of every part, ordered by
// part ID and then frame.
func (a *Animation) Keys() []PartKey {
	var out []PartKey
	for _, id := range a.Parts() {
		for _, k := range a.tracks[id].keys {
			if k.Mode != ModeNone {
				out = append(out, PartKey{Part: id, Key: k})
			}
		}
	}
	return out
}

// track returns the part's track, creating it when create is true.
func (a *Animation) track(partID int, create bool) *Track {
	t := a.tracks[partID]
	if t == nil && create {
		t = &Track{}
		a.tracks[partID] = t
	}
	return t
}

// copyTrack copies the track of part from onto part to. No-op if from has none.
func (a *Animation) copyTrack(from, to int) {
	if t := a.tracks[from]; t != nil {
		a.tracks[to] = t.clone()
	}
}

// dropTrack deletes the part's track.
func (a *Animation) dropTrack(partID int) {
	delete(a.tracks, partID)
}

// --- Timeline structure ---

// InsertFrame opens an empty frame at index: every key at or after index moves
// one frame later in every track, and FrameCount grows by one.
func (a *Animation) InsertFrame(index int) {
	for _, t := range a.tracks {
		t.shift(index, 1)
	}
	a.frameCount++
}

// DeleteFrame removes frame index: the key at index is dropped from every
// track, later keys move one frame earlier, and FrameCount shrinks by one.
func (a *Animation) DeleteFrame(index int) {
	for _, t := range a.tracks {
		t.remove(index)
		t.shift(index+1, -1)
	}
	a.frameCount--
}

// --- IK controllers ---

// SetControllerState sets whether the IK controller is active in this animation.
func (a *Animation) SetControllerState(id int, active bool) {
	a.controllers[id] = active
}

// ControllerState reports whether the IK controller is active in this
// animation. Controllers never set are inactive.
func (a *Animation) ControllerState(id int) bool {
	return a.controllers[id]
}

// --- Copy ---

// Clone returns a deep copy of the animation without an ID and without the
// frame cache.
func (a *Animation) Clone() *Animation {
	c := NewAnimation(a.name)
	c.frameRate = a.frameRate
	c.frameCount = a.frameCount
	c.loop = a.loop
	for id, t := range a.tracks {
		c.tracks[id] = t.clone()
	}
	for id, on := range a.controllers {
		c.controllers[id] = on
	}
	return c
}
