package armature

// --- Create / Delete ---

// CreatePart adds a new part under a parent. The ID allocated on the first
// Execute is reused on redo.
type CreatePart struct {
	partCommand
	name   string
	source string
	parent int
	null   bool
	rest   Vec2
	pivot  Vec2
}

// NewCreatePart creates a command adding a part called name with its graphic
// loaded from source. parent may be nil for a top-level part. An id of 0
// allocates a fresh ID.
func NewCreatePart(name, source string, parent *Part, id int) *CreatePart {
	c := &CreatePart{partCommand: partCommand{part: id}, name: name, source: source}
	if parent != nil {
		c.parent = parent.ID
	}
	return c
}

// NewCreateNull creates a command adding a null part, used as a bare pivot or
// IK target.
func NewCreateNull(name string, parent *Part, rest Vec2) *CreatePart {
	c := NewCreatePart(name, "", parent, 0)
	c.null = true
	c.rest = rest
	return c
}

// SetRest sets the rest position and pivot the part is created with.
func (c *CreatePart) SetRest(rest, pivot Vec2) *CreatePart {
	c.rest, c.pivot = rest, pivot
	return c
}

func (c *CreatePart) Text() string { return "create part" }

func (c *CreatePart) Execute(env *Env) {
	part := env.Project.NewPart(c.name, c.part)
	part.Source = c.source
	part.Null = c.null
	part.Rest = c.rest
	part.Pivot = c.pivot
	c.part = part.ID
	env.Project.AddPart(part, env.Project.MustPart(c.parent))
	env.changedParts(c.part)
}

func (c *CreatePart) Undo(env *Env) {
	env.Project.RemovePart(c.partOf(env))
	env.changedParts(c.part)
}

// indexedController is a controller with its position in the solve order.
type indexedController struct {
	c     Controller
	index int
}

// DeletePart removes a part with its whole subtree, together with every IK
// controller that references a removed part. Undo restores the subtree in its
// old place among its siblings and the controllers in their old solve order.
// Keyframes of the removed parts are left in their animations.
type DeletePart struct {
	partCommand
	removed     *Part
	parent      int
	index       int
	controllers []indexedController
}

// NewDeletePart creates a command removing part.
func NewDeletePart(part *Part) *DeletePart {
	return &DeletePart{partCommand: partCommand{part: part.ID}, removed: part, index: -1}
}

func (c *DeletePart) Text() string { return "delete part" }

func (c *DeletePart) Execute(env *Env) {
	part := c.partOf(env)
	c.removed = part
	c.parent = part.ParentID()
	if parent := part.Parent(); parent != nil {
		c.index = parent.ChildIndex(part)
	}

	ids := make(map[int]bool)
	part.walk(func(q *Part) { ids[q.ID] = true })
	c.controllers = c.controllers[:0]
	for i, ctl := range env.Project.Controllers() {
		for id := range ids {
			if ctl.Uses(id) {
				c.controllers = append(c.controllers, indexedController{c: *ctl, index: i})
				break
			}
		}
	}
	for _, ic := range c.controllers {
		env.Project.RemoveController(ic.c.ID)
	}

	env.Project.RemovePart(part)
	if anim := env.Project.Current(); anim != nil {
		anim.InvalidateCache()
	}
	env.changedParts(c.part)
	if len(c.controllers) > 0 {
		env.changedControllers(0)
	}
}

func (c *DeletePart) Undo(env *Env) {
	env.Project.insertPart(c.removed, env.Project.MustPart(c.parent), c.index)
	for _, ic := range c.controllers {
		env.Project.insertController(ic.c, ic.index)
	}
	if anim := env.Project.Current(); anim != nil {
		anim.InvalidateCache()
	}
	env.changedParts(c.part)
	if len(c.controllers) > 0 {
		env.changedControllers(0)
	}
}

// --- Rename ---

// RenamePart changes a part name.
type RenamePart struct {
	partCommand
	oldName, newName string
}

// NewRenamePart creates a command renaming part to name.
func NewRenamePart(part *Part, name string) *RenamePart {
	return &RenamePart{partCommand: partCommand{part: part.ID}, oldName: part.Name, newName: name}
}

func (c *RenamePart) Text() string { return "rename part" }

func (c *RenamePart) Execute(env *Env) { c.rename(env, c.newName) }

func (c *RenamePart) Undo(env *Env) { c.rename(env, c.oldName) }

func (c *RenamePart) rename(env *Env, name string) {
	part := c.partOf(env)
	if part.Name == name {
		return
	}
	env.SkipEvents(true)
	part.Name = name
	env.changedParts(c.part)
	env.SkipEvents(false)
}

// --- Hierarchy ---

// ReparentPart moves a part under another parent, keeping it in place: its
// rest position is re-expressed relative to the new parent.
type ReparentPart struct {
	partCommand
	oldParent, newParent int
	oldIndex             int
	oldRest              Vec2
}

// NewReparentPart creates a command moving part under parent, nil for top-level.
// Panics if parent is part or one of its descendants.
func NewReparentPart(part, parent *Part) *ReparentPart {
	c := &ReparentPart{partCommand: partCommand{part: part.ID}, oldParent: part.ParentID(), oldIndex: -1}
	if parent != nil {
		if isAncestor(part, parent) {
			panic("armature: reparenting would create a cycle")
		}
		c.newParent = parent.ID
	}
	return c
}

func (c *ReparentPart) Text() string { return "move part" }

func (c *ReparentPart) Execute(env *Env) {
	part := c.partOf(env)
	c.oldRest = part.Rest
	c.oldParent = part.ParentID()
	if old := part.Parent(); old != nil {
		c.oldIndex = old.ChildIndex(part)
	}
	part.SetParent(env.Project.MustPart(c.newParent))
	env.SkipEvents(true)
	env.changedParts(c.part)
	env.SkipEvents(false)
	env.UpdateView()
}

func (c *ReparentPart) Undo(env *Env) {
	part := c.partOf(env)
	part.setParentAt(env.Project.MustPart(c.oldParent), c.oldIndex)
	part.Rest = c.oldRest
	env.SkipEvents(true)
	env.changedParts(c.part)
	env.SkipEvents(false)
	env.UpdateView()
}

// ClonePart adds a copy of a part next to it, with the same graphic, rest data
// and keys in every animation. Children are not copied.
type ClonePart struct {
	partCommand
	clone int
}

// NewClonePart creates a command duplicating part.
func NewClonePart(part *Part) *ClonePart {
	return &ClonePart{partCommand: partCommand{part: part.ID}}
}

// CloneID returns the ID of the copy, 0 before the first Execute.
func (c *ClonePart) CloneID() int { return c.clone }

func (c *ClonePart) Text() string { return "clone part" }

func (c *ClonePart) Execute(env *Env) {
	old := c.partOf(env)
	part := env.Project.NewPart(old.Name+"_copy", c.clone)
	part.Source = old.Source
	part.Null = old.Null
	part.Rest = old.Rest
	part.Pivot = old.Pivot
	part.Hidden = old.Hidden
	part.Z = old.Z
	c.clone = part.ID
	env.Project.AddPart(part, old.Parent())
	for _, anim := range env.Project.Animations() {
		anim.copyTrack(old.ID, part.ID)
	}
	env.changedParts(c.clone)
}

func (c *ClonePart) Undo(env *Env) {
	env.Project.RemovePart(env.Project.MustPart(c.clone))
	for _, anim := range env.Project.Animations() {
		anim.dropTrack(c.clone)
	}
	env.changedParts(c.clone)
}

// ChangeZOrder sets the draw order of a part among its siblings.
type ChangeZOrder struct {
	partCommand
	oldZ, newZ int
}

// NewChangeZOrder creates a command setting the Z of part.
func NewChangeZOrder(part *Part, z int) *ChangeZOrder {
	return &ChangeZOrder{partCommand: partCommand{part: part.ID}, oldZ: part.Z, newZ: z}
}

func (c *ChangeZOrder) Text() string { return "change order" }

func (c *ChangeZOrder) Execute(env *Env) { c.set(env, c.newZ) }

func (c *ChangeZOrder) Undo(env *Env) { c.set(env, c.oldZ) }

func (c *ChangeZOrder) set(env *Env, z int) {
	c.partOf(env).Z = z
	if anim := env.Project.Current(); anim != nil {
		anim.InvalidateCache()
	}
	env.UpdateView()
}
