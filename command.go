package armature

// Command is a reversible unit of mutation. Execute applies it, Undo reverts
// exactly what Execute did. Commands capture identities, never pointers into
// the project, so they stay valid while parts and animations are removed and
// restored by other commands.
type Command interface {
	Text() string
	Execute(env *Env)
	Undo(env *Env)
}

// MergeKind groups commands that may fold into one undo step. Only commands of
// the same non-zero kind are offered to Merge.
type MergeKind uint8

const (
	MergeNone       MergeKind = iota // never merges
	MergeRest                        // ChangeRest
	MergeFrameData                   // ChangeFrameData
	MergeFrameCount                  // SetFrames
	MergeFrameRate                   // SetFrameRate
)

// Merger is implemented by commands that can absorb an immediately following
// command of the same kind, e.g. the steps of a drag gesture.
type Merger interface {
	Command
	MergeKind() MergeKind
	// Merge folds next into the receiver and reports success. On a Stack, next
	// has already been executed unless it was pushed with execute false; in a
	// Group neither command has executed yet. On success next is discarded.
	Merge(next Command) bool
}

// Disposer is implemented by commands that hold resources. Dispose is called
// once when the command is evicted from both the undo and the redo history.
type Disposer interface {
	Dispose()
}

// kindOf returns the merge kind of cmd, MergeNone for non-mergers.
func kindOf(cmd Command) MergeKind {
	if m, ok := cmd.(Merger); ok {
		return m.MergeKind()
	}
	return MergeNone
}

func dispose(cmd Command) {
	if d, ok := cmd.(Disposer); ok {
		d.Dispose()
	}
}

// --- Notifications ---

// Change is a notification telling observers what to redraw.
type Change struct {
	Type  ChangeType
	ID    int      // ChangeParts, ChangeAnimations, ChangeControllers
	Frame int      // ChangeFrame
	Part  *Part    // ChangePart
	Data  Keyframe // ChangePart: new display pose of Part
	Skip  bool     // ChangeSkipEvents

	// ChangeHistory
	CanUndo  bool
	CanRedo  bool
	UndoText string
	RedoText string
}

// Notifier receives change notifications. Implementations must not push
// commands from Notify; the stack is not reentrant.
type Notifier interface {
	Notify(Change)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Change)

// Notify calls f(c).
func (f NotifierFunc) Notify(c Change) { f(c) }

// Env is handed to Execute and Undo. It gives commands the project they edit
// and a way to emit notifications without a reference to the stack.
type Env struct {
	Project  *Project
	notifier Notifier
}

// NewEnv creates an Env for running commands outside a Stack, e.g. in tests.
// n may be nil.
func NewEnv(project *Project, n Notifier) *Env {
	return &Env{Project: project, notifier: n}
}

func (e *Env) notify(c Change) {
	if e.notifier != nil {
		e.notifier.Notify(c)
	}
}

// UpdateTable signals that the keyframe table changed.
func (e *Env) UpdateTable() { e.notify(Change{Type: ChangeTable}) }

// UpdateFrame signals that one frame column changed.
func (e *Env) UpdateFrame(frame int) { e.notify(Change{Type: ChangeFrame, Frame: frame}) }

// UpdateView signals that the canvas must redraw.
func (e *Env) UpdateView() { e.notify(Change{Type: ChangeView}) }

// UpdatePart signals that part has a new display pose.
func (e *Env) UpdatePart(part *Part, data Keyframe) {
	e.notify(Change{Type: ChangePart, Part: part, Data: data})
}

// SkipEvents tells observers to ignore (true) or resume handling (false) their
// own widget events while a command re-synchronizes widgets.
func (e *Env) SkipEvents(skip bool) { e.notify(Change{Type: ChangeSkipEvents, Skip: skip}) }

func (e *Env) changedParts(id int)       { e.notify(Change{Type: ChangeParts, ID: id}) }
func (e *Env) changedAnimations(id int)  { e.notify(Change{Type: ChangeAnimations, ID: id}) }
func (e *Env) changedControllers(id int) { e.notify(Change{Type: ChangeControllers, ID: id}) }

// --- Chain ---

// entry is a command on the undo history with its chain flag: whether the
// next command of the same kind may merge into it.
type entry struct {
	cmd   Command
	chain bool
}

// appendMerge applies the merge policy: fold cmd into the last entry when both
// share a kind and the last entry is still chainable, otherwise close the last
// entry's chain and append cmd. Reports whether cmd was merged.
func appendMerge(list []entry, cmd Command) ([]entry, bool) {
	if n := len(list); n > 0 {
		last := &list[n-1]
		kind := kindOf(cmd)
		if last.chain && kind != MergeNone && kindOf(last.cmd) == kind {
			if last.cmd.(Merger).Merge(cmd) {
				return list, true
			}
		}
		last.chain = false
	}
	return append(list, entry{cmd: cmd, chain: true}), false
}

// --- Group ---

// Group is a command made of an ordered list of commands that execute and undo
// as one transaction. Undo runs the children in reverse order unless the group
// was created with forward set, for children whose undo order must match their
// execute order.
type Group struct {
	text    string
	forward bool
	list    []entry
}

// NewGroup creates an empty group.
func NewGroup(text string, forward bool) *Group {
	return &Group{text: text, forward: forward}
}

// Text returns the group label.
func (g *Group) Text() string { return g.text }

// Len returns the number of children after merging.
func (g *Group) Len() int { return len(g.list) }

// Push appends cmd using the same merge policy as the Stack. cmd is not
// executed; the group's Execute runs it.
func (g *Group) Push(cmd Command) {
	var merged bool
	g.list, merged = appendMerge(g.list, cmd)
	if merged {
		dispose(cmd)
	}
}

// Execute runs every child in order.
func (g *Group) Execute(env *Env) {
	for _, e := range g.list {
		e.cmd.Execute(env)
	}
}

// Undo reverts every child, last first unless the group is forward.
func (g *Group) Undo(env *Env) {
	if g.forward {
		for _, e := range g.list {
			e.cmd.Undo(env)
		}
		return
	}
	for i := len(g.list) - 1; i >= 0; i-- {
		g.list[i].cmd.Undo(env)
	}
}

// Dispose disposes every child.
func (g *Group) Dispose() {
	for _, e := range g.list {
		dispose(e.cmd)
	}
	clear(g.list)
	g.list = nil
}

// --- Stack ---

// cleanUnreachable marks a clean state that no sequence of undo and redo can
// return to.
const cleanUnreachable = -1

// Stack is the undo/redo ledger through which every edit of a project goes.
// It owns the commands it holds.
//
// Stack is not safe for concurrent use. A push completes (execute, merge,
// notify) before the next call is accepted; Notify callbacks must not call
// back into the stack.
type Stack struct {
	env   *Env
	undo  []entry
	redo  []Command // most recent last
	clean int
	group *Group
}

// NewStack creates an empty stack editing project. The empty history is clean.
func NewStack(project *Project) *Stack {
	return &Stack{env: &Env{Project: project}}
}

// SetNotifier sets the observer for change notifications. nil disables them.
func (s *Stack) SetNotifier(n Notifier) {
	s.env.notifier = n
}

// Project returns the project edited through this stack.
func (s *Stack) Project() *Project {
	return s.env.Project
}

// Env returns the environment commands run with.
func (s *Stack) Env() *Env {
	return s.env
}

// Push records cmd, executing it first if execute is true. Pass false when the
// caller already applied the effect (e.g. a widget that moved itself).
//
// While a group is open the command is buffered in the group instead and
// execute is ignored: the whole group executes on End.
//
// Pushing discards the redo history. If the clean state lived there it can no
// longer be reached.
func (s *Stack) Push(cmd Command, execute bool) {
	if s.group != nil {
		s.group.Push(cmd)
		return
	}

	if s.clean > len(s.undo) {
		s.clean = cleanUnreachable
	}
	s.dropRedo()

	if execute {
		cmd.Execute(s.env)
	}

	var merged bool
	s.undo, merged = appendMerge(s.undo, cmd)
	if merged {
		dispose(cmd)
	}
	Logger().Debug("push", "command", cmd.Text(), "merged", merged, "depth", len(s.undo))
	s.updateActions()
}

// Begin opens a group. Commands pushed until End are bundled into it.
// Calling Begin while a group is open logs a warning and does nothing.
func (s *Stack) Begin(text string) {
	s.begin(NewGroup(text, false))
}

// BeginForward is like Begin but the group undoes its children in execute order.
func (s *Stack) BeginForward(text string) {
	s.begin(NewGroup(text, true))
}

func (s *Stack) begin(g *Group) {
	if s.group != nil {
		Logger().Warn("command group already active", "active", s.group.text, "ignored", g.text)
		return
	}
	s.group = g
}

// End closes the open group and pushes it as one command, executing all of its
// children if execute is true. Calling End with no open group logs a warning
// and does nothing.
func (s *Stack) End(execute bool) {
	if s.group == nil {
		Logger().Warn("no command group active")
		return
	}
	g := s.group
	s.group = nil
	s.Push(g, execute)
}

// InGroup reports whether a group is open.
func (s *Stack) InGroup() bool {
	return s.group != nil
}

// Undo reverts the most recent command and moves it to the redo history.
// No-op when there is nothing to undo.
func (s *Stack) Undo() {
	n := len(s.undo)
	if n == 0 {
		return
	}
	cmd := s.undo[n-1].cmd
	Logger().Debug("undo", "command", cmd.Text())
	cmd.Undo(s.env)
	s.undo[n-1] = entry{}
	s.undo = s.undo[:n-1]
	s.redo = append(s.redo, cmd)
	s.updateActions()
}

// Redo re-applies the most recently undone command. A redone command never
// merges with later pushes. No-op when there is nothing to redo.
func (s *Stack) Redo() {
	n := len(s.redo)
	if n == 0 {
		return
	}
	cmd := s.redo[n-1]
	Logger().Debug("redo", "command", cmd.Text())
	cmd.Execute(s.env)
	s.redo[n-1] = nil
	s.redo = s.redo[:n-1]
	if m := len(s.undo); m > 0 {
		s.undo[m-1].chain = false
	}
	s.undo = append(s.undo, entry{cmd: cmd})
	s.updateActions()
}

// BreakChain stops the next push from merging into the current top command,
// even if both are of the same kind. Used between two distinct gestures.
func (s *Stack) BreakChain() {
	if n := len(s.undo); n > 0 {
		s.undo[n-1].chain = false
	}
}

// SetClean records the current depth as the saved state. Unlike a bare depth
// record it also breaks the chain: a later edit merged into the saved command
// would leave the depth unchanged and IsClean would wrongly report true.
func (s *Stack) SetClean() {
	s.clean = len(s.undo)
	s.BreakChain()
}

// IsClean reports whether the history is at the depth recorded by SetClean.
func (s *Stack) IsClean() bool {
	return len(s.undo) == s.clean
}

// Clear discards both histories. The clean state becomes unreachable until the
// next SetClean.
func (s *Stack) Clear() {
	for _, e := range s.undo {
		dispose(e.cmd)
	}
	clear(s.undo)
	s.undo = s.undo[:0]
	s.dropRedo()
	s.clean = cleanUnreachable
	s.updateActions()
}

func (s *Stack) dropRedo() {
	for _, cmd := range s.redo {
		dispose(cmd)
	}
	clear(s.redo)
	s.redo = s.redo[:0]
}

// CanUndo reports whether there is a command to undo.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether there is a command to redo.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of commands on the undo history.
func (s *Stack) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of commands on the redo history.
func (s *Stack) RedoDepth() int { return len(s.redo) }

// UndoText returns the label of the command Undo would revert, or "".
func (s *Stack) UndoText() string {
	if n := len(s.undo); n > 0 {
		return s.undo[n-1].cmd.Text()
	}
	return ""
}

// RedoText returns the label of the command Redo would re-apply, or "".
func (s *Stack) RedoText() string {
	if n := len(s.redo); n > 0 {
		return s.redo[n-1].Text()
	}
	return ""
}

// updateActions notifies observers of the new undo/redo availability.
func (s *Stack) updateActions() {
	s.env.notify(Change{
		Type:     ChangeHistory,
		CanUndo:  s.CanUndo(),
		CanRedo:  s.CanRedo(),
		UndoText: s.UndoText(),
		RedoText: s.RedoText(),
	})
}
