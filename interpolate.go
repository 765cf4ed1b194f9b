package armature

import "math"

// channel indexes into the per-channel endpoint arrays of FrameData.
const (
	chanAngle = iota
	chanOffset
	chanVisible
	numChannels
)

var channelBits = [numChannels]Mode{ModeAngle, ModeOffset, ModeVisible}

// FrameData reconstructs the pose of part at frame.
//
// A part with no keys gets the null pose: angle 0, offset 0, visible unless the
// part is hidden by default. Otherwise each channel is resolved independently
// from the nearest key at or before frame (prev) and at or after frame (next)
// that defines it. A looping animation wraps: the last key of a channel is the
// fallback prev and the first is the fallback next. With only one side present
// the value is held flat. Angle and offset interpolate linearly, angles along
// the shorter arc. Visibility steps: it is taken from prev unless prev lies at
// a later frame than next, which happens across the loop wrap, where next wins.
//
// The returned Mode is the mask of the key at exactly frame, or ModeNone for an
// in-between frame.
func (a *Animation) FrameData(frame int, part *Part) Keyframe {
	t := a.track(part.ID, false)
	if t == nil || t.Len() == 0 {
		k := nullFrame(part.Hidden)
		k.Frame = frame
		return k
	}

	out := Keyframe{Frame: frame}

	// Endpoint indexes into t.keys; -1 means unresolved.
	var prev, next [numChannels]int
	for c := range prev {
		prev[c], next[c] = -1, -1
	}

	for i, k := range t.keys {
		for c, bit := range channelBits {
			if k.Mode&bit == 0 {
				continue
			}
			if a.loop && next[c] < 0 {
				next[c] = i // first key, wrap target
			}
			if k.Frame <= frame {
				prev[c] = i
			}
			if k.Frame >= frame && (next[c] < 0 || t.keys[next[c]].Frame < frame) {
				next[c] = i
			}
			if a.loop && (prev[c] < 0 || t.keys[prev[c]].Frame > frame) {
				prev[c] = i // last key, wrap source
			}
		}
		if k.Frame == frame {
			out.Mode = k.Mode
		}
	}

	// Flat extrapolation, then the null pose for channels with no keys.
	null := nullFrame(part.Hidden)
	var ka, kb [numChannels]Keyframe
	var keyed [numChannels]bool
	for c := range prev {
		if prev[c] < 0 {
			prev[c] = next[c]
		}
		if next[c] < 0 {
			next[c] = prev[c]
		}
		if prev[c] < 0 {
			ka[c], kb[c] = null, null
			continue
		}
		ka[c], kb[c] = t.keys[prev[c]], t.keys[next[c]]
		keyed[c] = true
	}

	out.Angle = a.interpolate(frame, ka[chanAngle].Frame, kb[chanAngle].Frame,
		ka[chanAngle].Angle, kb[chanAngle].Angle, true)
	out.Offset.X = a.interpolate(frame, ka[chanOffset].Frame, kb[chanOffset].Frame,
		ka[chanOffset].Offset.X, kb[chanOffset].Offset.X, false)
	out.Offset.Y = a.interpolate(frame, ka[chanOffset].Frame, kb[chanOffset].Frame,
		ka[chanOffset].Offset.Y, kb[chanOffset].Offset.Y, false)

	switch {
	case !keyed[chanVisible]:
		out.Visible = !part.Hidden
	case ka[chanVisible].Frame <= kb[chanVisible].Frame:
		out.Visible = ka[chanVisible].Visible
	default:
		out.Visible = kb[chanVisible].Visible
	}
	return out
}

// unwrap returns the linearized position of the next key fb relative to the
// prev key fa: a next key numerically before its prev lies one loop later.
func (a *Animation) unwrap(fa, fb int) int {
	if fb < fa {
		return fb + a.frameCount
	}
	return fb
}

// interpolate blends va at frame fa towards vb at frame fb. Wrapped endpoints
// (fb < fa) are linearized onto one loop before blending. When angle is set the
// blend takes the shorter arc.
func (a *Animation) interpolate(frame, fa, fb int, va, vb float64, angle bool) float64 {
	if frame == fa || fa == fb {
		return va
	}
	fb = a.unwrap(fa, fb)
	if frame < fa {
		frame += a.frameCount
	}
	if angle && math.Abs(va-vb) > 180 {
		if va < vb {
			va += 360
		} else {
			va -= 360
		}
	}
	t := float64(frame-fa) / float64(fb-fa)
	return va + (vb-va)*t
}
