package armature

// partCommand is embedded by commands that edit one part, held by ID.
type partCommand struct {
	part int
}

func (c partCommand) partOf(env *Env) *Part {
	return env.Project.MustPart(c.part)
}

// PartID returns the ID of the edited part.
func (c partCommand) PartID() int { return c.part }

// displayFrame returns what the canvas shows for part: the interpolated pose at
// the editor cursor, or the rest pose when no animation is current.
func displayFrame(project *Project, part *Part) Keyframe {
	if anim := project.Current(); anim != nil {
		return anim.FrameData(project.Frame(), part)
	}
	k := nullFrame(part.Hidden)
	k.Frame = -1
	return k
}

// --- Rest ---

// Change flags of a ChangeRest.
const (
	restPivot  = 1 << iota // Pivot changes
	restRest               // Rest changes
	restHidden             // Hidden toggles
)

// ChangeRest edits the rest data of a part: its pivot, its rest position and
// whether it is hidden by default. Successive ChangeRest commands on the same
// part merge; two hidden toggles cancel out.
type ChangeRest struct {
	partCommand
	flags              int
	oldPivot, newPivot Vec2
	oldRest, newRest   Vec2
}

// NewChangeRest creates a command setting all rest data of part. Only the
// values that differ from the current ones are recorded as changes.
func NewChangeRest(part *Part, pivot, rest Vec2, hidden bool) *ChangeRest {
	c := &ChangeRest{
		partCommand: partCommand{part: part.ID},
		oldPivot:    part.Pivot,
		newPivot:    pivot,
		oldRest:     part.Rest,
		newRest:     rest,
	}
	if pivot != part.Pivot {
		c.flags |= restPivot
	}
	if rest != part.Rest {
		c.flags |= restRest
	}
	if hidden != part.Hidden {
		c.flags |= restHidden
	}
	return c
}

// NewChangePivot creates a command moving the image offset of part.
func NewChangePivot(part *Part, pivot Vec2) *ChangeRest {
	return &ChangeRest{
		partCommand: partCommand{part: part.ID},
		flags:       restPivot,
		oldPivot:    part.Pivot,
		newPivot:    pivot,
	}
}

// NewChangeRestPosition creates a command moving the rest position of part.
func NewChangeRestPosition(part *Part, rest Vec2) *ChangeRest {
	return &ChangeRest{
		partCommand: partCommand{part: part.ID},
		flags:       restRest,
		oldRest:     part.Rest,
		newRest:     rest,
	}
}

// NewChangeHidden creates a command setting the default visibility of part.
// It records nothing if the flag already has that value.
func NewChangeHidden(part *Part, hidden bool) *ChangeRest {
	c := &ChangeRest{partCommand: partCommand{part: part.ID}}
	if hidden != part.Hidden {
		c.flags = restHidden
	}
	return c
}

func (c *ChangeRest) Text() string { return "rest data" }

func (c *ChangeRest) Execute(env *Env) { c.setRest(env, c.newPivot, c.newRest) }

func (c *ChangeRest) Undo(env *Env) { c.setRest(env, c.oldPivot, c.oldRest) }

func (c *ChangeRest) setRest(env *Env, pivot, rest Vec2) {
	part := c.partOf(env)
	if c.flags&restPivot != 0 {
		part.Pivot = pivot
	}
	if c.flags&restRest != 0 {
		part.Rest = rest
	}
	if c.flags&restHidden != 0 {
		part.Hidden = !part.Hidden
	}
	if anim := env.Project.Current(); anim != nil {
		anim.InvalidateCache()
	}
	env.UpdatePart(part, displayFrame(env.Project, part))
}

func (c *ChangeRest) MergeKind() MergeKind { return MergeRest }

func (c *ChangeRest) Merge(next Command) bool {
	n, ok := next.(*ChangeRest)
	if !ok || n.part != c.part {
		return false
	}
	if n.flags&restPivot != 0 {
		if c.flags&restPivot == 0 {
			c.oldPivot = n.oldPivot
		}
		c.newPivot = n.newPivot
	}
	if n.flags&restRest != 0 {
		if c.flags&restRest == 0 {
			c.oldRest = n.oldRest
		}
		c.newRest = n.newRest
	}
	c.flags |= n.flags & (restPivot | restRest)
	c.flags ^= n.flags & restHidden
	return true
}

// --- Frame data ---

// Channel mask of a ChangeFrameData.
const (
	dataKey     = 1 << iota // key mode
	dataAngle               // angle
	dataOffset              // offset
	dataVisible             // visibility
)

// ChangeFrameData edits the key of one part at one frame of an animation.
// Channels the command does not change are filled in from the current pose, and
// the key is only written if the frame already is a key or the command changes
// the key mode. A key whose mode becomes ModeNone is removed.
//
// Successive ChangeFrameData commands on the same animation, part and frame
// merge, so a drag is one undo step. Undo restores the exact key that was
// stored before the first Execute.
type ChangeFrameData struct {
	partCommand
	anim     int
	frame    int
	mask     int
	old, new Keyframe

	captured bool
	hadKey   bool
	prior    Keyframe
}

func newChangeFrameData(anim *Animation, part *Part, frame, mask int) *ChangeFrameData {
	return &ChangeFrameData{
		partCommand: partCommand{part: part.ID},
		anim:        anim.ID(),
		frame:       frame,
		mask:        mask,
		old:         Keyframe{Frame: frame},
		new:         Keyframe{Frame: frame},
	}
}

// NewChangeFrame creates a command replacing every channel and the key mode of
// the part's key at old.Frame.
func NewChangeFrame(anim *Animation, part *Part, old, new Keyframe) *ChangeFrameData {
	c := newChangeFrameData(anim, part, old.Frame, dataKey|dataAngle|dataOffset|dataVisible)
	new.Frame = old.Frame
	c.old, c.new = old, new
	return c
}

// NewChangeKey creates a command changing which channels frame keys.
func NewChangeKey(anim *Animation, part *Part, frame int, old, new Mode) *ChangeFrameData {
	c := newChangeFrameData(anim, part, frame, dataKey)
	c.old.Mode, c.new.Mode = old, new
	return c
}

// NewChangeAngle creates a command changing the part angle at frame.
func NewChangeAngle(anim *Animation, part *Part, frame int, old, new float64) *ChangeFrameData {
	c := newChangeFrameData(anim, part, frame, dataAngle)
	c.old.Angle, c.new.Angle = old, new
	return c
}

// NewChangeOffset creates a command changing the part offset at frame.
func NewChangeOffset(anim *Animation, part *Part, frame int, old, new Vec2) *ChangeFrameData {
	c := newChangeFrameData(anim, part, frame, dataOffset)
	c.old.Offset, c.new.Offset = old, new
	return c
}

// NewChangeVisible creates a command changing the part visibility at frame.
func NewChangeVisible(anim *Animation, part *Part, frame int, old, new bool) *ChangeFrameData {
	c := newChangeFrameData(anim, part, frame, dataVisible)
	c.old.Visible, c.new.Visible = old, new
	return c
}

// withKey makes the command also key mode on the frame, on top of what is keyed
// there now.
func (c *ChangeFrameData) withKey(current, mode Mode) *ChangeFrameData {
	if c.mask&dataKey == 0 {
		c.old.Mode = current
		c.new.Mode = current
	}
	c.mask |= dataKey
	c.new.Mode |= mode
	return c
}

func (c *ChangeFrameData) Text() string { return "change" }

func (c *ChangeFrameData) Execute(env *Env) {
	anim := env.Project.MustAnimation(c.anim)
	if !c.captured {
		if t := anim.Track(c.part); t != nil {
			c.prior, c.hadKey = t.At(c.frame)
		}
		c.captured = true
	}
	c.setData(env, anim, c.new)
}

func (c *ChangeFrameData) Undo(env *Env) {
	anim := env.Project.MustAnimation(c.anim)
	if !c.captured {
		c.setData(env, anim, c.old)
		return
	}
	part := c.partOf(env)
	if c.hadKey {
		anim.SetKeyframe(c.frame, part, c.prior)
	} else {
		anim.RemoveKeyframe(c.frame, part)
	}
	c.notify(env, anim, part)
}

// setData writes the channels selected by the mask from data, filling the rest
// in from the current pose.
func (c *ChangeFrameData) setData(env *Env, anim *Animation, data Keyframe) {
	part := c.partOf(env)
	key := anim.IsKeyframe(c.frame, part)
	cur := anim.FrameData(c.frame, part)

	data.Frame = c.frame
	if c.mask&dataKey == 0 {
		data.Mode = key
	}
	if c.mask&dataAngle == 0 {
		data.Angle = cur.Angle
	}
	if c.mask&dataOffset == 0 {
		data.Offset = cur.Offset
	}
	if c.mask&dataVisible == 0 {
		data.Visible = cur.Visible
	}

	if c.mask&dataKey != 0 || key != ModeNone {
		if data.Mode == ModeNone {
			anim.RemoveKeyframe(c.frame, part)
		} else {
			anim.SetKeyframe(c.frame, part, data)
		}
	}
	if c.mask&dataKey == 0 && key == ModeNone {
		// Not stored: the canvas shows data until the frame changes.
		anim.InvalidateCache()
		env.UpdatePart(part, data)
		return
	}
	c.notify(env, anim, part)
}

func (c *ChangeFrameData) notify(env *Env, anim *Animation, part *Part) {
	anim.InvalidateCache()
	if c.mask&dataKey != 0 {
		env.UpdateFrame(c.frame)
	}
	env.UpdatePart(part, anim.FrameData(c.frame, part))
}

func (c *ChangeFrameData) MergeKind() MergeKind { return MergeFrameData }

func (c *ChangeFrameData) Merge(next Command) bool {
	n, ok := next.(*ChangeFrameData)
	if !ok || n.part != c.part || n.anim != c.anim || n.frame != c.frame {
		return false
	}
	if n.mask&dataKey != 0 {
		if c.mask&dataKey == 0 {
			c.old.Mode = n.old.Mode
		}
		c.new.Mode = n.new.Mode
	}
	if n.mask&dataAngle != 0 {
		if c.mask&dataAngle == 0 {
			c.old.Angle = n.old.Angle
		}
		c.new.Angle = n.new.Angle
	}
	if n.mask&dataOffset != 0 {
		if c.mask&dataOffset == 0 {
			c.old.Offset = n.old.Offset
		}
		c.new.Offset = n.new.Offset
	}
	if n.mask&dataVisible != 0 {
		if c.mask&dataVisible == 0 {
			c.old.Visible = n.old.Visible
		}
		c.new.Visible = n.new.Visible
	}
	c.mask |= n.mask
	if !c.captured && n.captured {
		c.captured, c.hadKey, c.prior = true, n.hadKey, n.prior
	}
	return true
}

// --- Gestures ---

// pushAll pushes cmds as one undo step: a lone command directly, so it can
// still merge, several in a forward group.
func pushAll(stack *Stack, text string, cmds ...Command) {
	if len(cmds) == 1 || stack.InGroup() {
		for _, c := range cmds {
			stack.Push(c, true)
		}
		return
	}
	stack.BeginForward(text)
	for _, c := range cmds {
		stack.Push(c, true)
	}
	stack.End(true)
}

// RotatePart sets the angle of part at frame of anim, as a rotate gesture on
// the canvas does. With autoKey the frame is keyed for angle if it is not yet.
// Returns false without pushing when anim is nil: the rest pose has no angle.
func RotatePart(stack *Stack, anim *Animation, part *Part, frame int, angle float64, autoKey bool) bool {
	if anim == nil {
		return false
	}
	cur := anim.FrameData(frame, part)
	cmd := NewChangeAngle(anim, part, frame, cur.Angle, angle)
	if key := anim.IsKeyframe(frame, part); autoKey && !key.Has(ModeAngle) {
		cmd.withKey(key, ModeAngle)
	}
	stack.Push(cmd, true)
	return true
}

// MovePart places the origin of part at the world point, as a drag on the
// canvas does. Inside an animation this sets the offset at frame, keying it
// with autoKey; with a nil anim it moves the rest position instead.
func MovePart(stack *Stack, anim *Animation, part *Part, frame int, world Vec2, autoKey bool) {
	p := stack.Project()
	pose := p.Pose(anim, frame)
	target := ToParent(pose, part, world)
	if anim == nil {
		stack.Push(NewChangeRestPosition(part, target), true)
		return
	}
	cur := anim.FrameData(frame, part)
	cmd := NewChangeOffset(anim, part, frame, cur.Offset, target.Sub(part.Rest))
	if key := anim.IsKeyframe(frame, part); autoKey && !key.Has(ModeOffset) {
		cmd.withKey(key, ModeOffset)
	}
	stack.Push(cmd, true)
}

// SetPartVisible sets the visibility of part at frame of anim. With a nil anim
// it sets the rest hidden flag.
func SetPartVisible(stack *Stack, anim *Animation, part *Part, frame int, visible, autoKey bool) {
	if anim == nil {
		stack.Push(NewChangeHidden(part, !visible), true)
		return
	}
	cur := anim.FrameData(frame, part)
	cmd := NewChangeVisible(anim, part, frame, cur.Visible, visible)
	if key := anim.IsKeyframe(frame, part); autoKey && !key.Has(ModeVisible) {
		cmd.withKey(key, ModeVisible)
	}
	stack.Push(cmd, true)
}

// KeyPart sets the key mode of part at frame to mode, ModeNone deleting the key.
func KeyPart(stack *Stack, anim *Animation, part *Part, frame int, mode Mode) {
	stack.Push(NewChangeKey(anim, part, frame, anim.IsKeyframe(frame, part), mode), true)
}

// MoveRest places the rest origin of part at the world point, measured in the
// pose of the current animation and frame.
func MoveRest(stack *Stack, part *Part, world Vec2) {
	p := stack.Project()
	pose := p.Pose(p.Current(), p.Frame())
	cur := displayFrame(p, part)
	rest := ToParent(pose, part, world).Sub(cur.Offset)
	stack.Push(NewChangeRestPosition(part, rest), true)
}

// SetPivot moves the origin of part to the world point without moving anything
// on screen: the rest position moves to the point, the image offset moves the
// opposite way and every direct child's rest is compensated. The edits are one
// undo step.
func SetPivot(stack *Stack, part *Part, world Vec2) {
	p := stack.Project()
	pose := p.Pose(p.Current(), p.Frame())
	local := ToLocal(pose, part, world)
	if local == (Vec2{}) {
		return
	}
	angle := pose[part.ID].Local.Angle

	pivot := part.Pivot
	if !part.Null {
		pivot = part.Pivot.Sub(local)
	}
	cmds := []Command{NewChangeRest(part, pivot, part.Rest.Add(local.Rotate(angle)), part.Hidden)}
	for _, c := range part.Children() {
		cmds = append(cmds, NewChangeRestPosition(c, c.Rest.Sub(local)))
	}
	pushAll(stack, "change pivot", cmds...)
}
