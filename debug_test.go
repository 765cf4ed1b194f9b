package armature

import (
	"fmt"
	"strings"
	"testing"
)

func TestDebugCheckTrackUnsortedPanics(t *testing.T) {
	tr := &Track{keys: []Keyframe{{Frame: 3}, {Frame: 1}}}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on unsorted track, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "unsorted") {
			t.Errorf("panic message should mention 'unsorted', got: %s", msg)
		}
	}()
	debugCheckTrack(tr)
}

func TestDebugCheckTrackDuplicatePanics(t *testing.T) {
	tr := &Track{keys: []Keyframe{{Frame: 2}, {Frame: 2}}}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate frames, got none")
		}
	}()
	debugCheckTrack(tr)
}

func TestDumpEmpty(t *testing.T) {
	s := NewStack(NewProject())
	if got, want := s.Dump(), "Undo Stack: 0+0 commands:\n"; got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

func TestDumpMarksCleanInRedo(t *testing.T) {
	s, anim, body := editing()
	RotatePart(s, anim, body, 0, 10, true)
	s.Push(NewRenamePart(body, "torso"), true)
	s.SetClean()
	s.Undo()

	want := "Undo Stack: 1+1 commands:\n" +
		"  change\n" +
		"*>rename part\n"
	if got := s.Dump(); got != want {
		t.Errorf("Dump =\n%s\nwant\n%s", got, want)
	}
}
