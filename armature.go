package armature

import "math"

// Vec2 is a 2D vector used for offsets, rest positions and pivots.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rotate returns v rotated by deg degrees (clockwise in screen space, Y down).
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Mode is a bitmask of the channels a keyframe defines.
// Values can be combined with bitwise OR (e.g. ModeAngle | ModeOffset).
type Mode uint8

const (
	ModeAngle   Mode = 1 << iota // keyframe defines the part angle
	ModeOffset                   // keyframe defines the parent-relative offset
	ModeVisible                  // keyframe defines visibility
)

// ModeNone is the mask of a frame that is not a key.
const ModeNone Mode = 0

// ModeAll is the mask of a key that defines every channel.
const ModeAll = ModeAngle | ModeOffset | ModeVisible

// Has reports whether every bit of c is set in m.
func (m Mode) Has(c Mode) bool {
	return m&c == c
}

// ChangeType identifies what a Change notification asks observers to redraw.
type ChangeType uint8

const (
	ChangeTable      ChangeType = iota // keyframe table layout or contents changed
	ChangeFrame                        // a single frame column changed (Change.Frame)
	ChangeView                         // the canvas must redraw
	ChangePart                         // a part has new display data (Change.Part, Change.Data)
	ChangeSkipEvents                   // observers should ignore widget events while Change.Skip is true
	ChangeHistory                      // undo/redo availability or labels changed
	ChangeParts                        // a part was added, removed or renamed (Change.ID)
	ChangeAnimations                   // an animation was added, removed or renamed (Change.ID)
	ChangeControllers                  // an IK controller was added, removed or reordered (Change.ID)
)

// String returns a short name for the change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeTable:
		return "table"
	case ChangeFrame:
		return "frame"
	case ChangeView:
		return "view"
	case ChangePart:
		return "part"
	case ChangeSkipEvents:
		return "skip"
	case ChangeHistory:
		return "history"
	case ChangeParts:
		return "parts"
	case ChangeAnimations:
		return "animations"
	case ChangeControllers:
		return "controllers"
	default:
		return "unknown"
	}
}
