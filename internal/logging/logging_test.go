package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn, "")

	l.Debug("nope")
	l.Info("nope")
	l.Warn("yes %d", 1)
	l.Error("yes %d", 2)

	out := buf.String()
	if strings.Contains(out, "nope") {
		t.Errorf("messages below level leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] yes 1") || !strings.Contains(out, "[ERROR] yes 2") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug, "editor").WithField("session", "abc123")

	l.Info("opened")

	out := buf.String()
	if !strings.Contains(out, "editor: opened") {
		t.Errorf("missing prefix, got %q", out)
	}
	if !strings.Contains(out, "session=abc123") {
		t.Errorf("missing field, got %q", out)
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, LevelDebug, "")
	_ = parent.WithField("child", true)

	parent.Info("plain")
	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent logger gained child field: %q", buf.String())
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("whatever")
	// Also must not panic on derived loggers.
	l.WithComponent("x").Info("whatever")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"ERROR":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelError, "")
	l.Info("hidden")
	l.SetLevel(LevelDebug)
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("SetLevel not applied: %q", out)
	}
}
