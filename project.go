package armature

import "fmt"

// Project owns the part tree, the animation list and the IK controllers of one
// document. It also tracks the editor cursor: the current animation and frame.
type Project struct {
	root  *Part
	parts map[int]*Part

	animations  []*Animation
	controllers []*Controller

	nextPart       int
	nextAnimation  int
	nextController int

	current *Animation
	frame   int
}

// NewProject creates an empty project with a root part (ID 0).
func NewProject() *Project {
	p := &Project{}
	p.reset()
	return p
}

func (p *Project) reset() {
	p.root = newPart(0, "root")
	p.root.Null = true
	p.parts = make(map[int]*Part)
	p.animations = nil
	p.controllers = nil
	p.nextPart = 1
	p.nextAnimation = 1
	p.nextController = 1
	p.current = nil
	p.frame = 0
}

// Clear deletes every part, animation and controller.
func (p *Project) Clear() {
	p.reset()
}

// Root returns the invisible root part all top-level parts hang from.
func (p *Project) Root() *Part {
	return p.root
}

// --- Parts ---

// NewPart creates a detached part. An id of 0 allocates a fresh one; an explicit
// id is reserved so later allocations never reuse it.
func (p *Project) NewPart(name string, id int) *Part {
	if id == 0 {
		id = p.nextPart
	}
	if id >= p.nextPart {
		p.nextPart = id + 1
	}
	return newPart(id, name)
}

// AddPart registers part under parent (nil for top-level) and appends it to the
// parent's children. part.Rest is kept as given, relative to the new parent.
// Panics if the ID is already taken.
func (p *Project) AddPart(part, parent *Part) {
	p.insertPart(part, parent, -1)
}

func (p *Project) insertPart(part, parent *Part, index int) {
	if part.ID == 0 {
		panic("armature: part ID 0 is reserved for the root")
	}
	if _, ok := p.parts[part.ID]; ok {
		panic(fmt.Sprintf("armature: duplicate part ID %d", part.ID))
	}
	if parent == nil {
		parent = p.root
	}
	if part.ID >= p.nextPart {
		p.nextPart = part.ID + 1
	}
	part.attach(parent, index)
	p.parts[part.ID] = part
	for _, c := range part.children {
		c.walk(func(q *Part) { p.parts[q.ID] = q })
	}
}

// RemovePart unregisters part and its whole subtree and detaches it from its
// parent. The subtree stays linked internally so it can be re-added. Keyframes
// of removed parts stay in their animations.
func (p *Project) RemovePart(part *Part) {
	part.walk(func(q *Part) { delete(p.parts, q.ID) })
	part.detach()
}

// Part returns the part with the given ID, the root for 0, or nil.
func (p *Project) Part(id int) *Part {
	if id == 0 {
		return p.root
	}
	return p.parts[id]
}

// MustPart is like Part but panics on an unknown ID. Commands use it: a stale
// ID on the undo stack is a programming error.
func (p *Project) MustPart(id int) *Part {
	part := p.Part(id)
	if part == nil {
		panic(fmt.Sprintf("armature: failed to locate part %d", id))
	}
	return part
}

// Parts returns every registered part, parents before children, siblings in
// child order.
func (p *Project) Parts() []*Part {
	out := make([]*Part, 0, len(p.parts))
	for _, c := range p.root.children {
		c.walk(func(q *Part) { out = append(out, q) })
	}
	return out
}

// NumParts returns the number of registered parts, excluding the root.
func (p *Project) NumParts() int {
	return len(p.parts)
}

// --- Animations ---

// AddAnimation appends anim to the animation list. An id of 0 allocates a fresh
// one; an explicit id restores a previously removed animation.
func (p *Project) AddAnimation(anim *Animation, id int) {
	if id == 0 {
		id = p.nextAnimation
	}
	if id >= p.nextAnimation {
		p.nextAnimation = id + 1
	}
	anim.id = id
	p.animations = append(p.animations, anim)
}

// RemoveAnimation drops anim from the list. If it was current, no animation is
// current afterwards.
func (p *Project) RemoveAnimation(anim *Animation) {
	for i, a := range p.animations {
		if a == anim {
			copy(p.animations[i:], p.animations[i+1:])
			p.animations[len(p.animations)-1] = nil
			p.animations = p.animations[:len(p.animations)-1]
			if p.current == anim {
				p.current = nil
			}
			return
		}
	}
}

// MoveAnimation moves anim to index in the list, clamping index into range.
func (p *Project) MoveAnimation(anim *Animation, index int) {
	old := p.AnimationIndex(anim.id)
	if old < 0 {
		return
	}
	index = max(0, min(index, len(p.animations)-1))
	if old == index {
		return
	}
	if old < index {
		copy(p.animations[old:], p.animations[old+1:index+1])
	} else {
		copy(p.animations[index+1:], p.animations[index:old])
	}
	p.animations[index] = anim
}

// Animation returns the animation with the given ID, or nil.
func (p *Project) Animation(id int) *Animation {
	for _, a := range p.animations {
		if a.id == id {
			return a
		}
	}
	return nil
}

// MustAnimation is like Animation but panics on an unknown ID.
func (p *Project) MustAnimation(id int) *Animation {
	a := p.Animation(id)
	if a == nil {
		panic(fmt.Sprintf("armature: failed to find animation %d", id))
	}
	return a
}

// AnimationIndex returns the list position of the animation, or -1.
func (p *Project) AnimationIndex(id int) int {
	for i, a := range p.animations {
		if a.id == id {
			return i
		}
	}
	return -1
}

// Animations returns the animation list. The returned slice MUST NOT be mutated.
func (p *Project) Animations() []*Animation {
	return p.animations
}

// SetCurrent selects the animation being edited. nil edits the rest pose.
func (p *Project) SetCurrent(anim *Animation) {
	p.current = anim
}

// Current returns the animation being edited, or nil.
func (p *Project) Current() *Animation {
	return p.current
}

// Frame returns the editor's current frame.
func (p *Project) Frame() int {
	return p.frame
}

// SetFrame moves the editor's current frame.
func (p *Project) SetFrame(frame int) {
	p.frame = frame
}

// --- Orphans ---

// OrphanTracks returns the IDs of parts keyed in anim that are no longer part
// of the project, in ascending order.
func (p *Project) OrphanTracks(anim *Animation) []int {
	var out []int
	for _, id := range anim.Parts() {
		if p.parts[id] == nil {
			out = append(out, id)
		}
	}
	return out
}
