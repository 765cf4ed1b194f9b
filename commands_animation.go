package armature

// animationCommand is embedded by commands that edit one animation. The
// animation is held by ID and resolved on every Execute and Undo.
type animationCommand struct {
	anim int
}

func (c animationCommand) animation(env *Env) *Animation {
	return env.Project.MustAnimation(c.anim)
}

// AnimationID returns the ID of the edited animation. It is 0 for an
// AddAnimation or CloneAnimation that has not executed yet.
func (c animationCommand) AnimationID() int { return c.anim }

// --- Add / Clone / Delete ---

// AddAnimation appends a new empty animation. The ID allocated on the first
// Execute is reused on redo.
type AddAnimation struct {
	animationCommand
	name string
}

// NewAddAnimation creates a command adding an animation called name.
func NewAddAnimation(name string) *AddAnimation {
	return &AddAnimation{name: name}
}

func (c *AddAnimation) Text() string { return "add animation" }

func (c *AddAnimation) Execute(env *Env) {
	anim := NewAnimation(c.name)
	env.Project.AddAnimation(anim, c.anim)
	c.anim = anim.ID()
	env.changedAnimations(c.anim)
}

func (c *AddAnimation) Undo(env *Env) {
	env.Project.RemoveAnimation(c.animation(env))
	env.changedAnimations(c.anim)
}

// CloneAnimation appends a deep copy of an animation named with a "_copy"
// suffix.
type CloneAnimation struct {
	animationCommand
	template int
}

// NewCloneAnimation creates a command duplicating anim.
func NewCloneAnimation(anim *Animation) *CloneAnimation {
	return &CloneAnimation{template: anim.ID()}
}

func (c *CloneAnimation) Text() string { return "clone animation" }

func (c *CloneAnimation) Execute(env *Env) {
	other := env.Project.MustAnimation(c.template)
	anim := other.Clone()
	anim.SetName(other.Name() + "_copy")
	env.Project.AddAnimation(anim, c.anim)
	c.anim = anim.ID()
	env.changedAnimations(c.anim)
}

func (c *CloneAnimation) Undo(env *Env) {
	env.Project.RemoveAnimation(c.animation(env))
	env.changedAnimations(c.anim)
}

// DeleteAnimation removes an animation. Undo puts the same animation back with
// its ID, keys, list position and current selection.
type DeleteAnimation struct {
	animationCommand
	removed    *Animation
	index      int
	wasCurrent bool
}

// NewDeleteAnimation creates a command removing anim.
func NewDeleteAnimation(anim *Animation) *DeleteAnimation {
	return &DeleteAnimation{
		animationCommand: animationCommand{anim: anim.ID()},
		removed:          anim,
		index:            -1,
	}
}

func (c *DeleteAnimation) Text() string { return "delete animation" }

func (c *DeleteAnimation) Execute(env *Env) {
	anim := c.animation(env)
	c.index = env.Project.AnimationIndex(c.anim)
	c.wasCurrent = env.Project.Current() == anim
	anim.InvalidateCache()
	env.Project.RemoveAnimation(anim)
	c.removed = anim
	env.changedAnimations(c.anim)
}

func (c *DeleteAnimation) Undo(env *Env) {
	env.Project.AddAnimation(c.removed, c.anim)
	if c.index >= 0 {
		env.Project.MoveAnimation(c.removed, c.index)
	}
	if c.wasCurrent {
		env.Project.SetCurrent(c.removed)
	}
	env.changedAnimations(c.anim)
	env.UpdateTable()
}

// --- Rename ---

// RenameAnimation changes an animation name. Observers are told to skip their
// own widget events while the name is written back into the list.
type RenameAnimation struct {
	animationCommand
	oldName, newName string
}

// NewRenameAnimation creates a command renaming anim to name.
func NewRenameAnimation(anim *Animation, name string) *RenameAnimation {
	return &RenameAnimation{
		animationCommand: animationCommand{anim: anim.ID()},
		oldName:          anim.Name(),
		newName:          name,
	}
}

func (c *RenameAnimation) Text() string { return "rename animation" }

func (c *RenameAnimation) Execute(env *Env) { c.rename(env, c.newName) }

func (c *RenameAnimation) Undo(env *Env) { c.rename(env, c.oldName) }

func (c *RenameAnimation) rename(env *Env, name string) {
	anim := c.animation(env)
	env.SkipEvents(true)
	anim.SetName(name)
	env.changedAnimations(c.anim)
	env.SkipEvents(false)
}

// --- Frames ---

// InsertFrame opens an empty frame in an animation.
type InsertFrame struct {
	animationCommand
	frame int
}

// NewInsertFrame creates a command inserting a frame at index frame.
func NewInsertFrame(anim *Animation, frame int) *InsertFrame {
	return &InsertFrame{animationCommand: animationCommand{anim: anim.ID()}, frame: frame}
}

func (c *InsertFrame) Text() string { return "insert frame" }

func (c *InsertFrame) Execute(env *Env) {
	anim := c.animation(env)
	anim.InsertFrame(c.frame)
	anim.InvalidateCache()
	env.Project.SetCurrent(anim)
	env.UpdateTable()
}

func (c *InsertFrame) Undo(env *Env) {
	anim := c.animation(env)
	anim.DeleteFrame(c.frame)
	anim.InvalidateCache()
	env.Project.SetCurrent(anim)
	env.UpdateTable()
}

// DeleteFrame removes a frame from an animation. The keys stored at that frame
// are kept by the command and written back on Undo.
type DeleteFrame struct {
	animationCommand
	frame int
	keys  []PartKey
}

// NewDeleteFrame creates a command deleting the frame at index frame.
func NewDeleteFrame(anim *Animation, frame int) *DeleteFrame {
	return &DeleteFrame{animationCommand: animationCommand{anim: anim.ID()}, frame: frame}
}

func (c *DeleteFrame) Text() string { return "delete frame" }

func (c *DeleteFrame) Execute(env *Env) {
	anim := c.animation(env)
	c.keys = c.keys[:0]
	for _, id := range anim.Parts() {
		if k, ok := anim.tracks[id].At(c.frame); ok {
			c.keys = append(c.keys, PartKey{Part: id, Key: k})
		}
	}
	anim.DeleteFrame(c.frame)
	anim.InvalidateCache()
	env.Project.SetCurrent(anim)
	env.UpdateTable()
}

func (c *DeleteFrame) Undo(env *Env) {
	anim := c.animation(env)
	anim.InsertFrame(c.frame)
	for _, pk := range c.keys {
		anim.track(pk.Part, true).set(pk.Key)
	}
	anim.InvalidateCache()
	env.Project.SetCurrent(anim)
	env.UpdateTable()
}

// SetFrames changes the frame count of an animation. Successive SetFrames on
// the same animation merge, so dragging a spin box is one undo step.
type SetFrames struct {
	animationCommand
	oldCount, newCount int
}

// NewSetFrames creates a command setting the frame count of anim to n.
func NewSetFrames(anim *Animation, n int) *SetFrames {
	return &SetFrames{
		animationCommand: animationCommand{anim: anim.ID()},
		oldCount:         anim.FrameCount(),
		newCount:         n,
	}
}

func (c *SetFrames) Text() string { return "set frames" }

func (c *SetFrames) Execute(env *Env) { c.set(env, c.newCount) }

func (c *SetFrames) Undo(env *Env) { c.set(env, c.oldCount) }

func (c *SetFrames) set(env *Env, n int) {
	anim := c.animation(env)
	anim.SetFrameCount(n)
	env.Project.SetCurrent(anim)
	env.UpdateTable()
}

func (c *SetFrames) MergeKind() MergeKind { return MergeFrameCount }

func (c *SetFrames) Merge(next Command) bool {
	n, ok := next.(*SetFrames)
	if !ok || n.anim != c.anim {
		return false
	}
	c.newCount = n.newCount
	return true
}

// SetFrameRate changes the playback rate of an animation. Successive changes
// on the same animation merge.
type SetFrameRate struct {
	animationCommand
	oldRate, newRate float64
}

// NewSetFrameRate creates a command setting the frame rate of anim to fps.
func NewSetFrameRate(anim *Animation, fps float64) *SetFrameRate {
	return &SetFrameRate{
		animationCommand: animationCommand{anim: anim.ID()},
		oldRate:          anim.FrameRate(),
		newRate:          fps,
	}
}

func (c *SetFrameRate) Text() string { return "set frame rate" }

func (c *SetFrameRate) Execute(env *Env) { c.animation(env).SetFrameRate(c.newRate) }

func (c *SetFrameRate) Undo(env *Env) { c.animation(env).SetFrameRate(c.oldRate) }

func (c *SetFrameRate) MergeKind() MergeKind { return MergeFrameRate }

func (c *SetFrameRate) Merge(next Command) bool {
	n, ok := next.(*SetFrameRate)
	if !ok || n.anim != c.anim {
		return false
	}
	c.newRate = n.newRate
	return true
}

// SetLoop toggles whether an animation loops.
type SetLoop struct {
	animationCommand
	oldLoop, newLoop bool
}

// NewSetLoop creates a command setting the loop flag of anim.
func NewSetLoop(anim *Animation, loop bool) *SetLoop {
	return &SetLoop{
		animationCommand: animationCommand{anim: anim.ID()},
		oldLoop:          anim.Loop(),
		newLoop:          loop,
	}
}

func (c *SetLoop) Text() string { return "set loop" }

func (c *SetLoop) Execute(env *Env) { c.set(env, c.newLoop) }

func (c *SetLoop) Undo(env *Env) { c.set(env, c.oldLoop) }

func (c *SetLoop) set(env *Env, loop bool) {
	anim := c.animation(env)
	anim.SetLoop(loop)
	anim.InvalidateCache()
	env.UpdateView()
}
