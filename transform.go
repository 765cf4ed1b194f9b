package armature

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// PartPose is the resolved pose of one part at one frame.
type PartPose struct {
	Part  *Part
	Local Keyframe // interpolated channel values, parent-relative

	// World space
	Transform [6]float64 // affine of the part origin: [a, b, c, d, tx, ty]
	Position  Vec2
	Angle     float64 // degrees
	Visible   bool    // false if the part or any ancestor is invisible
}

// ImageTransform returns the world affine of the part graphic, which sits at
// Pivot in the part's local space.
func (pp PartPose) ImageTransform() [6]float64 {
	return multiplyAffine(pp.Transform, [6]float64{1, 0, 0, 1, pp.Part.Pivot.X, pp.Part.Pivot.Y})
}

// computeLocalTransform computes a part's affine relative to its parent:
//
//	Rotate(angle) -> Translate(rest + offset)
func computeLocalTransform(rest Vec2, k Keyframe) [6]float64 {
	sin, cos := math.Sincos(k.Angle * math.Pi / 180)
	return [6]float64{cos, sin, -sin, cos, rest.X + k.Offset.X, rest.Y + k.Offset.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y + m[4], m[1]*v.X + m[3]*v.Y + m[5]}
}

// --- Pose ---

// Pose resolves every part of the project at frame of anim, composing world
// transforms parent to child. A nil anim yields the rest pose.
func (p *Project) Pose(anim *Animation, frame int) map[int]PartPose {
	out := make(map[int]PartPose, len(p.parts))
	for _, c := range p.root.children {
		poseSubtree(out, anim, frame, c, identityTransform, 0, true)
	}
	return out
}

func poseSubtree(out map[int]PartPose, anim *Animation, frame int, part *Part, parent [6]float64, parentAngle float64, parentVisible bool) {
	var local Keyframe
	if anim != nil {
		local = anim.FrameData(frame, part)
	} else {
		local = nullFrame(part.Hidden)
		local.Frame = frame
	}
	world := multiplyAffine(parent, computeLocalTransform(part.Rest, local))
	pp := PartPose{
		Part:      part,
		Local:     local,
		Transform: world,
		Position:  Vec2{world[4], world[5]},
		Angle:     parentAngle + local.Angle,
		Visible:   parentVisible && local.Visible,
	}
	out[part.ID] = pp
	for _, c := range part.children {
		poseSubtree(out, anim, frame, c, world, pp.Angle, pp.Visible)
	}
}

// ToParent maps a world point into the coordinate space of part's parent, using
// the given pose. Top-level parts map through the identity.
func ToParent(pose map[int]PartPose, part *Part, world Vec2) Vec2 {
	pp, ok := pose[part.ParentID()]
	if !ok || part.ParentID() == 0 {
		return world
	}
	return transformPoint(invertAffine(pp.Transform), world)
}

// ToLocal maps a world point into part's own coordinate space.
func ToLocal(pose map[int]PartPose, part *Part, world Vec2) Vec2 {
	pp, ok := pose[part.ID]
	if !ok {
		return world
	}
	return transformPoint(invertAffine(pp.Transform), world)
}
