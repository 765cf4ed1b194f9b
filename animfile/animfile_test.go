package animfile

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/armature"
)

func buildProject() *armature.Project {
	p := armature.NewProject()
	body := p.NewPart("body", 0)
	body.Source = "/art/body.png"
	body.Rest = armature.Vec2{X: 10, Y: 20}
	body.Pivot = armature.Vec2{X: -8, Y: -16}
	p.AddPart(body, nil)

	leg := p.NewPart("leg", 0)
	leg.Rest = armature.Vec2{X: 0, Y: 12}
	leg.Hidden = true
	p.AddPart(leg, body)

	ctl := p.SetController(armature.Controller{PartA: body.ID, Head: leg.ID, Goal: leg.ID})

	walk := armature.NewAnimation("walk")
	walk.SetFrameCount(8)
	walk.SetFrameRate(24)
	walk.SetKeyframe(0, leg, armature.Keyframe{Mode: armature.ModeAngle, Angle: 0})
	walk.SetKeyframe(4, leg, armature.Keyframe{Mode: armature.ModeAngle | armature.ModeVisible, Angle: 90, Visible: true})
	walk.SetKeyframe(2, body, armature.Keyframe{Mode: armature.ModeOffset, Offset: armature.Vec2{X: 3, Y: -1}})
	walk.SetControllerState(ctl, true)
	p.AddAnimation(walk, 0)

	idle := armature.NewAnimation("idle")
	idle.SetLoop(false)
	p.AddAnimation(idle, 0)
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")

	if err := Save(buildProject(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.NumParts() != 2 {
		t.Fatalf("NumParts = %d, want 2", p.NumParts())
	}
	body, leg := p.Part(1), p.Part(2)
	if body == nil || leg == nil {
		t.Fatal("parts 1 and 2 should exist")
	}
	if leg.Parent() != body {
		t.Error("leg should be a child of body")
	}
	if body.Rest != (armature.Vec2{X: 10, Y: 20}) || body.Pivot != (armature.Vec2{X: -8, Y: -16}) {
		t.Errorf("body rest/pivot = %v/%v", body.Rest, body.Pivot)
	}
	if !leg.Hidden {
		t.Error("leg should be hidden")
	}

	if len(p.Animations()) != 2 {
		t.Fatalf("animations = %d, want 2", len(p.Animations()))
	}
	walk := p.Animations()[0]
	if walk.Name() != "walk" || walk.FrameCount() != 8 || walk.FrameRate() != 24 || !walk.Loop() {
		t.Errorf("walk = %q %d %v %v", walk.Name(), walk.FrameCount(), walk.FrameRate(), walk.Loop())
	}
	if p.Animations()[1].Loop() {
		t.Error("idle should not loop")
	}

	if m := walk.IsKeyframe(4, leg); m != armature.ModeAngle|armature.ModeVisible {
		t.Errorf("IsKeyframe(4, leg) = %v, want angle|visible", m)
	}
	if m := walk.IsKeyframe(0, leg); m != armature.ModeAngle {
		t.Errorf("IsKeyframe(0, leg) = %v, want angle", m)
	}
	if d := walk.FrameData(2, leg); math.Abs(d.Angle-45) > 1e-9 {
		t.Errorf("FrameData(2, leg).Angle = %v, want 45", d.Angle)
	}
	if d := walk.FrameData(2, body); d.Offset != (armature.Vec2{X: 3, Y: -1}) {
		t.Errorf("FrameData(2, body).Offset = %v, want (3,-1)", d.Offset)
	}
	if len(p.Controllers()) != 1 || !walk.ControllerState(p.Controllers()[0].ID) {
		t.Error("controller should be restored and active in walk")
	}
	if body.Source != "/art/body.png" {
		t.Errorf("body source = %q", body.Source)
	}
}

func TestSaveRelativeSources(t *testing.T) {
	dir := t.TempDir()
	p := armature.NewProject()
	part := p.NewPart("head", 0)
	part.Source = filepath.Join(dir, "img", "head.png")
	p.AddPart(part, nil)

	path := filepath.Join(dir, "p.yaml")
	if err := Save(p, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "file: img/head.png") {
		t.Errorf("expected relative source in:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Part(part.ID).Source; got != part.Source {
		t.Errorf("Source = %q, want %q", got, part.Source)
	}
}

func TestSaveOnlyAuthoredKeys(t *testing.T) {
	p := armature.NewProject()
	part := p.NewPart("arm", 0)
	p.AddPart(part, nil)
	anim := armature.NewAnimation("a")
	anim.SetFrameCount(4)
	anim.SetKeyframe(1, part, armature.Keyframe{Mode: armature.ModeOffset, Offset: armature.Vec2{X: 1}})
	anim.SetKeyframe(9, part, armature.Keyframe{Mode: armature.ModeAngle, Angle: 5}) // beyond the frame count
	p.AddAnimation(anim, 0)

	f := Encode(p, "")
	if len(f.Animations) != 1 || len(f.Animations[0].Parts) != 1 {
		t.Fatalf("unexpected encoding: %+v", f.Animations)
	}
	frames := f.Animations[0].Parts[0].Frames
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	fr := frames[0]
	if fr.Number != 1 || fr.Offset == nil || fr.Angle != nil || fr.Hidden != nil {
		t.Errorf("frame = %+v, want offset-only key at 1", fr)
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	data := []byte(`
version: "1"
parts:
  - id: 3
    name: tail
animations:
  - name: broken
    length: 0
    fps: 0
    parts:
      - id: 3
        frames: [{number: 0, hidden: true}]
      - id: 99
        frames: [{number: 0, angle: 10}]
`)
	p, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	anim := p.Animations()[0]
	if anim.FrameCount() != 1 {
		t.Errorf("FrameCount = %d, want 1", anim.FrameCount())
	}
	if anim.FrameRate() != armature.DefaultFrameRate {
		t.Errorf("FrameRate = %v, want %v", anim.FrameRate(), armature.DefaultFrameRate)
	}
	tail := p.Part(3)
	if d := anim.FrameData(0, tail); d.Visible || d.Mode != armature.ModeVisible {
		t.Errorf("FrameData(0, tail) = %+v, want hidden visibility key", d)
	}
	if len(anim.Parts()) != 1 {
		t.Errorf("Parts = %v, want only the known part", anim.Parts())
	}
}

func TestUnmarshalErrors(t *testing.T) {
	if _, err := Unmarshal([]byte("parts: [")); err == nil {
		t.Error("expected error for invalid YAML")
	}
	dup := []byte(`
parts:
  - id: 1
    name: a
  - id: 1
    name: b
`)
	if _, err := Unmarshal(dup); err == nil {
		t.Error("expected error for duplicate part id")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
