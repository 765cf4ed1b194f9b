package armature

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestSetLoggerDebugPush(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	s, anim, body := editing()
	RotatePart(s, anim, body, 0, 10, true)
	s.Undo()

	out := buf.String()
	for _, want := range []string{"msg=push", "command=change", "msg=undo"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)
	NewStack(NewProject()).End(true)
	if buf.Len() != 0 {
		t.Errorf("nop logger wrote %q", buf.String())
	}
}
