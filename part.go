package armature

// Part is one rigid, posable image in the skeleton. Parts form a tree rooted at
// Project.Root. Animations refer to parts only by ID.
type Part struct {
	// Identity
	ID     int
	Name   string
	Source string // image file the part graphic was loaded from
	Null   bool   // marker part with no graphic

	// Rest pose
	Rest   Vec2 // origin position relative to the parent origin
	Pivot  Vec2 // image offset from the part origin
	Hidden bool // hidden unless an animation keys it visible
	Z      int  // draw order among siblings

	// Hierarchy
	parent   *Part
	children []*Part
}

// newPart creates a detached part.
func newPart(id int, name string) *Part {
	return &Part{ID: id, Name: name}
}

// Parent returns the parent part. Top-level parts return the project root; the
// root and detached parts return nil.
func (p *Part) Parent() *Part {
	return p.parent
}

// ParentID returns the parent's ID, or 0 for top-level and detached parts.
func (p *Part) ParentID() int {
	if p.parent == nil {
		return 0
	}
	return p.parent.ID
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (p *Part) Children() []*Part {
	return p.children
}

// NumChildren returns the number of children.
func (p *Part) NumChildren() int {
	return len(p.children)
}

// ChildIndex returns the position of child among p's children, or -1.
func (p *Part) ChildIndex(child *Part) int {
	for i, c := range p.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AbsoluteRest returns the rest position in root space.
func (p *Part) AbsoluteRest() Vec2 {
	r := p.Rest
	for q := p.parent; q != nil; q = q.parent {
		r = r.Add(q.Rest)
	}
	return r
}

// SetParent attaches p under parent, keeping its absolute rest position: Rest
// is re-expressed relative to the new parent. A nil parent detaches p.
// Panics if parent is p or one of its descendants.
func (p *Part) SetParent(parent *Part) {
	if parent != nil && isAncestor(p, parent) {
		panic("armature: reparenting would create a cycle")
	}
	if p.parent != nil {
		p.Rest = p.AbsoluteRest()
		p.parent.removeChildByPtr(p)
	}
	if parent != nil {
		parent.children = append(parent.children, p)
		p.Rest = p.Rest.Sub(parent.AbsoluteRest())
	}
	p.parent = parent
}

// setParentAt is SetParent followed by moving p to index among the new
// parent's children. An index out of range leaves p last.
func (p *Part) setParentAt(parent *Part, index int) {
	p.SetParent(parent)
	if index < 0 || index >= len(parent.children)-1 {
		return
	}
	parent.removeChildByPtr(p)
	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = p
}

// attach links p under parent at index without touching Rest. An index out of
// range appends.
func (p *Part) attach(parent *Part, index int) {
	if p.parent != nil {
		p.parent.removeChildByPtr(p)
	}
	p.parent = parent
	if index < 0 || index >= len(parent.children) {
		parent.children = append(parent.children, p)
		return
	}
	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = p
}

// detach unlinks p from its parent without touching Rest.
func (p *Part) detach() {
	if p.parent == nil {
		return
	}
	p.parent.removeChildByPtr(p)
	p.parent = nil
}

// walk calls fn for p and then every descendant, parents before children.
func (p *Part) walk(fn func(*Part)) {
	fn(p)
	for _, c := range p.children {
		c.walk(fn)
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is part or an ancestor of part.
func isAncestor(candidate, part *Part) bool {
	for q := part; q != nil; q = q.parent {
		if q == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from p.children without clearing child.parent.
func (p *Part) removeChildByPtr(child *Part) {
	for i, c := range p.children {
		if c == child {
			copy(p.children[i:], p.children[i+1:])
			p.children[len(p.children)-1] = nil
			p.children = p.children[:len(p.children)-1]
			return
		}
	}
}
