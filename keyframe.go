package armature

import "sort"

// Keyframe holds the channel values of one part at one frame. Mode selects
// which channels the key actually defines; the remaining fields are ignored
// when the key is used as an interpolation endpoint.
//
// The same struct is returned by Animation.FrameData, where every channel is
// filled in and Mode reports whether the queried frame is itself a key.
type Keyframe struct {
	Frame   int
	Mode    Mode
	Angle   float64 // degrees
	Offset  Vec2    // parent-relative
	Visible bool
}

// nullFrame returns the pose of a part with no keys at all.
func nullFrame(hidden bool) Keyframe {
	return Keyframe{Visible: !hidden}
}

// --- Track ---

// Track is the ordered keyframe list of one part within one Animation.
// Keys are sorted ascending by Frame with at most one key per frame.
type Track struct {
	keys []Keyframe
}

// Len returns the number of keys.
func (t *Track) Len() int {
	return len(t.keys)
}

// Keys returns the keys in frame order. The returned slice MUST NOT be mutated.
func (t *Track) Keys() []Keyframe {
	return t.keys
}

// At returns the key stored exactly at frame.
func (t *Track) At(frame int) (Keyframe, bool) {
	i, ok := t.search(frame)
	if !ok {
		return Keyframe{}, false
	}
	return t.keys[i], true
}

// search returns the index of the first key with Frame >= frame and whether
// that key is an exact match.
func (t *Track) search(frame int) (int, bool) {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame >= frame })
	return i, i < len(t.keys) && t.keys[i].Frame == frame
}

// set writes k at k.Frame, replacing any key already there.
func (t *Track) set(k Keyframe) {
	i, ok := t.search(k.Frame)
	if ok {
		t.keys[i] = k
		return
	}
	t.keys = append(t.keys, Keyframe{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = k
}

// remove deletes the key at frame. Returns false if there was none.
func (t *Track) remove(frame int) bool {
	i, ok := t.search(frame)
	if !ok {
		return false
	}
	copy(t.keys[i:], t.keys[i+1:])
	t.keys = t.keys[:len(t.keys)-1]
	return true
}

// shift adds delta to the frame of every key at or after from.
// Callers keep the result sorted: delta > 0 never collides, and a negative
// shift must first remove the key at from+delta.
func (t *Track) shift(from, delta int) {
	i, _ := t.search(from)
	for ; i < len(t.keys); i++ {
		t.keys[i].Frame += delta
	}
}

func (t *Track) clone() *Track {
	c := &Track{keys: make([]Keyframe, len(t.keys))}
	copy(c.keys, t.keys)
	return c
}
