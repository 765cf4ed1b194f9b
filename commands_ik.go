package armature

// SetController adds an IK controller, or replaces the one with the same ID.
type SetController struct {
	ctl  Controller
	prev *Controller
}

// NewSetController creates a command storing c. A zero c.ID allocates a fresh
// controller on the first Execute.
func NewSetController(c Controller) *SetController {
	return &SetController{ctl: c}
}

// ControllerID returns the ID of the stored controller, 0 before the first
// Execute of a new controller.
func (c *SetController) ControllerID() int { return c.ctl.ID }

func (c *SetController) Text() string { return "set controller" }

func (c *SetController) Execute(env *Env) {
	c.prev = nil
	if old := env.Project.Controller(c.ctl.ID); c.ctl.ID != 0 && old != nil {
		prev := *old
		c.prev = &prev
	}
	c.ctl.ID = env.Project.SetController(c.ctl)
	env.changedControllers(c.ctl.ID)
}

func (c *SetController) Undo(env *Env) {
	if c.prev != nil {
		env.Project.SetController(*c.prev)
	} else {
		env.Project.RemoveController(c.ctl.ID)
	}
	env.changedControllers(c.ctl.ID)
}

// DeleteController removes an IK controller. Undo puts it back at its old
// position in the solve order. Per-animation activation states are kept.
type DeleteController struct {
	ctl   Controller
	index int
}

// NewDeleteController creates a command removing c.
func NewDeleteController(c *Controller) *DeleteController {
	return &DeleteController{ctl: *c, index: -1}
}

func (c *DeleteController) Text() string { return "delete controller" }

func (c *DeleteController) Execute(env *Env) {
	c.index = env.Project.ControllerIndex(c.ctl.ID)
	env.Project.RemoveController(c.ctl.ID)
	env.changedControllers(c.ctl.ID)
}

func (c *DeleteController) Undo(env *Env) {
	env.Project.insertController(c.ctl, c.index)
	env.changedControllers(c.ctl.ID)
}

// ChangeControllerOrder swaps two controllers in the solve order.
type ChangeControllerOrder struct {
	a, b int
}

// NewChangeControllerOrder creates a command swapping list positions a and b.
func NewChangeControllerOrder(a, b int) *ChangeControllerOrder {
	return &ChangeControllerOrder{a: a, b: b}
}

func (c *ChangeControllerOrder) Text() string { return "change controller order" }

func (c *ChangeControllerOrder) Execute(env *Env) {
	env.Project.SwapControllers(c.a, c.b)
	env.changedControllers(0)
}

func (c *ChangeControllerOrder) Undo(env *Env) { c.Execute(env) }

// ChangeControllerState switches an IK controller on or off in one animation.
type ChangeControllerState struct {
	animationCommand
	id       int
	old, new bool
}

// NewChangeControllerState creates a command setting whether controller id is
// active in anim.
func NewChangeControllerState(anim *Animation, id int, active bool) *ChangeControllerState {
	return &ChangeControllerState{
		animationCommand: animationCommand{anim: anim.ID()},
		id:               id,
		old:              anim.ControllerState(id),
		new:              active,
	}
}

func (c *ChangeControllerState) Text() string { return "controller state" }

func (c *ChangeControllerState) Execute(env *Env) { c.set(env, c.new) }

func (c *ChangeControllerState) Undo(env *Env) { c.set(env, c.old) }

func (c *ChangeControllerState) set(env *Env, active bool) {
	anim := c.animation(env)
	anim.SetControllerState(c.id, active)
	anim.InvalidateCache()
	env.UpdateView()
}
