package armature

import "fmt"

// Controller is a two-bone IK chain. The solver itself lives outside this
// package; animations only record whether each controller is active.
type Controller struct {
	ID    int
	PartA int // upper bone
	PartB int // lower bone, 0 for a single-bone chain
	Head  int // end effector
	Goal  int // target part the head reaches for
}

// Uses reports whether the controller references the part.
func (c *Controller) Uses(partID int) bool {
	return c.PartA == partID || (c.PartB != 0 && c.PartB == partID) ||
		c.Head == partID || c.Goal == partID
}

// SetController adds a controller or replaces the one with the same ID. An id
// of 0 allocates a fresh one. Returns the controller ID.
func (p *Project) SetController(c Controller) int {
	if c.ID == 0 {
		c.ID = p.nextController
	}
	if c.ID >= p.nextController {
		p.nextController = c.ID + 1
	}
	if i := p.ControllerIndex(c.ID); i >= 0 {
		p.controllers[i] = &c
		return c.ID
	}
	p.controllers = append(p.controllers, &c)
	return c.ID
}

// insertController places c at index, used to restore a deleted controller to
// its original list position.
func (p *Project) insertController(c Controller, index int) {
	if index < 0 || index >= len(p.controllers) {
		p.SetController(c)
		return
	}
	if c.ID >= p.nextController {
		p.nextController = c.ID + 1
	}
	p.controllers = append(p.controllers, nil)
	copy(p.controllers[index+1:], p.controllers[index:])
	p.controllers[index] = &c
}

// RemoveController deletes the controller. No-op for unknown IDs.
func (p *Project) RemoveController(id int) {
	i := p.ControllerIndex(id)
	if i < 0 {
		return
	}
	copy(p.controllers[i:], p.controllers[i+1:])
	p.controllers[len(p.controllers)-1] = nil
	p.controllers = p.controllers[:len(p.controllers)-1]
}

// SwapControllers exchanges the list positions a and b. Controllers are solved
// in list order. Panics on out of range indexes.
func (p *Project) SwapControllers(a, b int) {
	if a < 0 || b < 0 || a >= len(p.controllers) || b >= len(p.controllers) {
		panic(fmt.Sprintf("armature: controller index out of range (%d, %d)", a, b))
	}
	p.controllers[a], p.controllers[b] = p.controllers[b], p.controllers[a]
}

// Controller returns the controller with the given ID, or nil.
func (p *Project) Controller(id int) *Controller {
	if i := p.ControllerIndex(id); i >= 0 {
		return p.controllers[i]
	}
	return nil
}

// ControllerIndex returns the list position of a controller, or -1.
func (p *Project) ControllerIndex(id int) int {
	for i, c := range p.controllers {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Controllers returns the controller list in solve order. The returned slice
// MUST NOT be mutated.
func (p *Project) Controllers() []*Controller {
	return p.controllers
}
