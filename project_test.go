package armature

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// rig builds body(1) -> leg(2) -> foot(3) plus arm(4) under body.
func rig() (*Project, *Part, *Part, *Part, *Part) {
	p := NewProject()
	body := p.NewPart("body", 0)
	body.Rest = Vec2{100, 100}
	p.AddPart(body, nil)
	leg := p.NewPart("leg", 0)
	leg.Rest = Vec2{0, 20}
	p.AddPart(leg, body)
	foot := p.NewPart("foot", 0)
	foot.Rest = Vec2{0, 10}
	p.AddPart(foot, leg)
	arm := p.NewPart("arm", 0)
	arm.Rest = Vec2{10, 0}
	p.AddPart(arm, body)
	return p, body, leg, foot, arm
}

func vecApprox(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// --- Parts ---

func TestNewPartAllocatesIDs(t *testing.T) {
	p := NewProject()
	a := p.NewPart("a", 0)
	b := p.NewPart("b", 7)
	c := p.NewPart("c", 0)
	if a.ID != 1 || b.ID != 7 || c.ID != 8 {
		t.Errorf("IDs = %d %d %d, want 1 7 8", a.ID, b.ID, c.ID)
	}
}

func TestAddPartRegistersAndParents(t *testing.T) {
	p, body, leg, foot, arm := rig()
	if p.NumParts() != 4 {
		t.Errorf("NumParts = %d, want 4", p.NumParts())
	}
	if p.Part(0) != p.Root() || body.Parent() != p.Root() {
		t.Error("top-level parts should hang from the root")
	}
	if leg.Parent() != body || foot.ParentID() != leg.ID {
		t.Error("parents not linked")
	}
	if body.ChildIndex(arm) != 1 {
		t.Errorf("ChildIndex(arm) = %d, want 1", body.ChildIndex(arm))
	}
	got := p.Parts()
	order := []*Part{body, leg, foot, arm}
	for i := range order {
		if got[i] != order[i] {
			t.Errorf("Parts()[%d] = %s, want %s", i, got[i].Name, order[i].Name)
		}
	}
	if abs := foot.AbsoluteRest(); abs != (Vec2{100, 130}) {
		t.Errorf("AbsoluteRest = %v, want (100,130)", abs)
	}
}

func TestAddPartDuplicatePanics(t *testing.T) {
	p, body, _, _, _ := rig()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on duplicate ID")
		}
		if !strings.Contains(fmt.Sprint(r), "duplicate") {
			t.Errorf("panic = %v", r)
		}
	}()
	p.AddPart(newPart(body.ID, "again"), nil)
}

func TestRemovePartKeepsSubtree(t *testing.T) {
	p, body, leg, foot, _ := rig()
	p.RemovePart(leg)
	if p.Part(leg.ID) != nil || p.Part(foot.ID) != nil {
		t.Error("subtree should be unregistered")
	}
	if leg.Parent() != nil || body.NumChildren() != 1 {
		t.Error("leg should be detached from body")
	}
	if foot.Parent() != leg {
		t.Error("subtree should stay linked")
	}

	p.insertPart(leg, body, 0)
	if p.Part(foot.ID) != foot || body.ChildIndex(leg) != 0 {
		t.Error("re-inserted subtree should be registered at index 0")
	}
}

func TestMustPartPanics(t *testing.T) {
	p := NewProject()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown part")
		}
	}()
	p.MustPart(42)
}

func TestSetParentKeepsAbsoluteRest(t *testing.T) {
	_, _, leg, foot, arm := rig()
	before := foot.AbsoluteRest()
	foot.SetParent(arm)
	if foot.Parent() != arm || leg.NumChildren() != 0 {
		t.Fatal("foot should move under arm")
	}
	if foot.AbsoluteRest() != before {
		t.Errorf("AbsoluteRest = %v, want %v", foot.AbsoluteRest(), before)
	}
	if foot.Rest != (Vec2{-10, 30}) {
		t.Errorf("Rest = %v, want (-10,30)", foot.Rest)
	}
}

func TestSetParentCyclePanics(t *testing.T) {
	_, body, _, foot, _ := rig()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for cycle")
		}
	}()
	body.SetParent(foot)
}

func TestSetParentAt(t *testing.T) {
	p, body, leg, _, arm := rig()
	arm.SetParent(p.Root())
	arm.setParentAt(body, 0)
	if body.ChildIndex(arm) != 0 || body.ChildIndex(leg) != 1 {
		t.Errorf("child order = %d %d, want arm first", body.ChildIndex(arm), body.ChildIndex(leg))
	}
	if arm.Rest != (Vec2{10, 0}) {
		t.Errorf("Rest = %v, want (10,0)", arm.Rest)
	}
}

// --- Animations ---

func TestAddAnimationIDs(t *testing.T) {
	p := NewProject()
	a, b := NewAnimation("a"), NewAnimation("b")
	p.AddAnimation(a, 0)
	p.AddAnimation(b, 5)
	c := NewAnimation("c")
	p.AddAnimation(c, 0)
	if a.ID() != 1 || b.ID() != 5 || c.ID() != 6 {
		t.Errorf("IDs = %d %d %d, want 1 5 6", a.ID(), b.ID(), c.ID())
	}
	if p.Animation(5) != b || p.AnimationIndex(6) != 2 {
		t.Error("lookup failed")
	}
}

func TestRemoveAnimationClearsCurrent(t *testing.T) {
	p := NewProject()
	a := NewAnimation("a")
	p.AddAnimation(a, 0)
	p.SetCurrent(a)
	p.RemoveAnimation(a)
	if p.Current() != nil || len(p.Animations()) != 0 {
		t.Error("animation should be removed and deselected")
	}
}

func TestMoveAnimation(t *testing.T) {
	p := NewProject()
	anims := make([]*Animation, 4)
	for i := range anims {
		anims[i] = NewAnimation(fmt.Sprint(i))
		p.AddAnimation(anims[i], 0)
	}
	p.MoveAnimation(anims[3], 1)
	want := "0312"
	var got string
	for _, a := range p.Animations() {
		got += a.Name()
	}
	if got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	p.MoveAnimation(anims[0], 99)
	if p.AnimationIndex(anims[0].ID()) != 3 {
		t.Errorf("out of range index should clamp to the end")
	}
}

func TestOrphanTracks(t *testing.T) {
	p, _, leg, _, arm := rig()
	a := NewAnimation("a")
	a.SetKeyframe(0, leg, angleKey(0))
	a.SetKeyframe(0, arm, angleKey(0))
	p.RemovePart(arm)
	orphans := p.OrphanTracks(a)
	if len(orphans) != 1 || orphans[0] != arm.ID {
		t.Errorf("OrphanTracks = %v, want [%d]", orphans, arm.ID)
	}
}

func TestClearResetsProject(t *testing.T) {
	p, _, _, _, _ := rig()
	p.AddAnimation(NewAnimation("a"), 0)
	p.SetController(Controller{PartA: 1, Head: 2, Goal: 3})
	p.Clear()
	if p.NumParts() != 0 || len(p.Animations()) != 0 || len(p.Controllers()) != 0 {
		t.Error("Clear should empty the project")
	}
	if p.NewPart("x", 0).ID != 1 {
		t.Error("IDs should restart after Clear")
	}
}

// --- Controllers ---

func TestControllers(t *testing.T) {
	p := NewProject()
	id1 := p.SetController(Controller{PartA: 1, PartB: 2, Head: 3, Goal: 4})
	id2 := p.SetController(Controller{PartA: 5, Head: 6, Goal: 7})
	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs = %d %d, want 1 2", id1, id2)
	}
	p.SetController(Controller{ID: id1, PartA: 9, Head: 3, Goal: 4})
	if len(p.Controllers()) != 2 || p.Controller(id1).PartA != 9 {
		t.Error("SetController with an existing ID should replace it")
	}
	if !p.Controller(id2).Uses(6) || p.Controller(id2).Uses(0) {
		t.Error("Uses mismatch")
	}

	p.SwapControllers(0, 1)
	if p.ControllerIndex(id2) != 0 {
		t.Error("SwapControllers did not swap")
	}
	p.RemoveController(id2)
	if p.Controller(id2) != nil || len(p.Controllers()) != 1 {
		t.Error("RemoveController failed")
	}
	p.insertController(Controller{ID: id2, PartA: 5, Head: 6, Goal: 7}, 0)
	if p.ControllerIndex(id2) != 0 {
		t.Error("insertController should restore the index")
	}
}

func TestSwapControllersPanics(t *testing.T) {
	p := NewProject()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out of range swap")
		}
	}()
	p.SwapControllers(0, 1)
}

// --- Pose ---

func TestPoseRestPose(t *testing.T) {
	p, _, _, foot, _ := rig()
	pose := p.Pose(nil, 0)
	if len(pose) != 4 {
		t.Fatalf("pose len = %d, want 4", len(pose))
	}
	if pp := pose[foot.ID]; !vecApprox(pp.Position, Vec2{100, 130}) || !pp.Visible {
		t.Errorf("foot pose = %+v", pp)
	}
}

func TestPoseComposesRotation(t *testing.T) {
	p, body, leg, foot, _ := rig()
	a := NewAnimation("a")
	a.SetFrameCount(2)
	a.SetKeyframe(0, body, angleKey(90))
	a.SetKeyframe(0, leg, Keyframe{Mode: ModeOffset | ModeAngle, Offset: Vec2{0, 5}, Angle: 0})

	pose := p.Pose(a, 0)
	// leg rest+offset (0,25) rotated 90 degrees about body.
	if got := pose[leg.ID].Position; !vecApprox(got, Vec2{75, 100}) {
		t.Errorf("leg position = %v, want (75,100)", got)
	}
	if got := pose[foot.ID].Angle; !approx(got, 90) {
		t.Errorf("foot angle = %v, want 90", got)
	}
	if got := pose[foot.ID].Position; !vecApprox(got, Vec2{65, 100}) {
		t.Errorf("foot position = %v, want (65,100)", got)
	}
}

func TestPoseVisibilityInherits(t *testing.T) {
	p, body, _, foot, _ := rig()
	a := NewAnimation("a")
	a.SetKeyframe(0, body, Keyframe{Mode: ModeVisible, Visible: false})
	if p.Pose(a, 0)[foot.ID].Visible {
		t.Error("children of an invisible part should be invisible")
	}
}

func TestToParentAndToLocal(t *testing.T) {
	p, body, leg, _, _ := rig()
	a := NewAnimation("a")
	a.SetKeyframe(0, body, angleKey(90))
	pose := p.Pose(a, 0)

	world := pose[leg.ID].Position
	if got := ToParent(pose, leg, world); !vecApprox(got, leg.Rest) {
		t.Errorf("ToParent = %v, want %v", got, leg.Rest)
	}
	if got := ToLocal(pose, leg, world); !vecApprox(got, Vec2{}) {
		t.Errorf("ToLocal = %v, want origin", got)
	}
	if got := ToParent(pose, body, Vec2{3, 4}); got != (Vec2{3, 4}) {
		t.Errorf("top-level ToParent = %v, want identity", got)
	}
}

func TestImageTransformAppliesPivot(t *testing.T) {
	p, body, _, _, _ := rig()
	body.Pivot = Vec2{-5, -8}
	m := p.Pose(nil, 0)[body.ID].ImageTransform()
	if !approx(m[4], 95) || !approx(m[5], 92) {
		t.Errorf("image translation = (%v,%v), want (95,92)", m[4], m[5])
	}
}

func TestVec2Rotate(t *testing.T) {
	got := Vec2{1, 0}.Rotate(90)
	if !vecApprox(got, Vec2{0, 1}) {
		t.Errorf("Rotate(90) = %v, want (0,1)", got)
	}
}
