package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/armature"
	"github.com/phanxgames/armature/animfile"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	p := armature.NewProject()
	body := p.NewPart("body", 0)
	p.AddPart(body, nil)
	leg := p.NewPart("leg", 0)
	leg.Rest = armature.Vec2{X: 0, Y: 10}
	p.AddPart(leg, body)

	walk := armature.NewAnimation("walk")
	walk.SetFrameCount(8)
	walk.SetKeyframe(0, leg, armature.Keyframe{Mode: armature.ModeAngle, Angle: 0})
	walk.SetKeyframe(4, leg, armature.Keyframe{Mode: armature.ModeAngle, Angle: 90})
	p.AddAnimation(walk, 0)

	path := filepath.Join(dir, "walk.yaml")
	if err := animfile.Save(p, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewUsesEnvironment(t *testing.T) {
	t.Setenv("ARMATURE_FPS", "24")
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := run(t, "new", path, "--name", "run", "--frames", "6")
	if err != nil {
		t.Fatalf("new failed: %v\n%s", err, out)
	}
	p, err := animfile.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	anim := p.Animations()[0]
	if anim.Name() != "run" || anim.FrameCount() != 6 || anim.FrameRate() != 24 || !anim.Loop() {
		t.Errorf("animation = %q %d %v %v", anim.Name(), anim.FrameCount(), anim.FrameRate(), anim.Loop())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")
	if _, err := run(t, "new", path, "--frames", "0"); err == nil {
		t.Error("expected error for zero frames")
	}
}

func TestInfo(t *testing.T) {
	path := writeProject(t, t.TempDir())
	out, err := run(t, "info", path)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"body", "leg", "walk"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}

func TestKeysAndPose(t *testing.T) {
	path := writeProject(t, t.TempDir())

	out, err := run(t, "keys", path, "--anim", "walk")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if !strings.Contains(out, "90.00") || !strings.Contains(out, "A--") {
		t.Errorf("keys output:\n%s", out)
	}

	out, err = run(t, "pose", path, "--frame", "2")
	if err != nil {
		t.Fatalf("pose failed: %v", err)
	}
	if !strings.Contains(out, "45.00") {
		t.Errorf("pose output should contain the interpolated angle:\n%s", out)
	}

	if _, err := run(t, "keys", path, "--anim", "nope"); err == nil {
		t.Error("expected error for unknown animation")
	}
}

func TestEditScript(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir)
	script := filepath.Join(dir, "edit.json")
	data := `{"steps": [
		{"action": "rotate", "part": 2, "frame": 2, "angle": 30, "autoKey": true},
		{"action": "rotate", "part": 2, "frame": 2, "angle": 60},
		{"action": "insert", "frame": 0}
	]}`
	if err := os.WriteFile(script, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "out.yaml")
	out, err := run(t, "edit", path, script, "-o", outPath, "--history")
	if err != nil {
		t.Fatalf("edit failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Undo Stack: 2+0 commands") {
		t.Errorf("history output:\n%s", out)
	}

	p, err := animfile.Load(outPath)
	if err != nil {
		t.Fatal(err)
	}
	anim := p.Animations()[0]
	leg := p.Part(2)
	if anim.FrameCount() != 9 {
		t.Errorf("FrameCount = %d, want 9", anim.FrameCount())
	}
	if m := anim.IsKeyframe(3, leg); m != armature.ModeAngle {
		t.Errorf("IsKeyframe(3) = %v, want angle", m)
	}
	if d := anim.FrameData(3, leg); d.Angle != 60 {
		t.Errorf("angle at 3 = %v, want 60", d.Angle)
	}
}
