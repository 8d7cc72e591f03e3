package backend

import (
	"testing"

	"github.com/quill-editor/quill/internal/renderer/core"
)

func drawFrame(s *Screen, lines ...string) {
	s.BeginFrame()
	for y, line := range lines {
		s.WriteString(0, y, line, core.DefaultStyle())
	}
	s.EndFrame()
}

func TestScreenFirstFramePaintsEverything(t *testing.T) {
	null := NewNullBackend(10, 3)
	s := NewScreen(null)

	drawFrame(s, "hello")

	if got := null.Line(0); got != "hello     " {
		t.Errorf("line 0 = %q", got)
	}
	if null.SetCallCount() != 30 {
		t.Errorf("expected 30 cells pushed on first frame, got %d", null.SetCallCount())
	}
}

func TestScreenIdenticalFrameCostsNothing(t *testing.T) {
	null := NewNullBackend(10, 3)
	s := NewScreen(null)

	drawFrame(s, "hello")
	null.ResetCounters()

	drawFrame(s, "hello")

	if null.SetCallCount() != 0 {
		t.Errorf("identical frame pushed %d cells, want 0", null.SetCallCount())
	}
}

func TestScreenPushesOnlyDamage(t *testing.T) {
	null := NewNullBackend(10, 3)
	s := NewScreen(null)

	drawFrame(s, "hello")
	null.ResetCounters()

	drawFrame(s, "hallo")

	if null.SetCallCount() != 1 {
		t.Errorf("expected 1 damaged cell, got %d", null.SetCallCount())
	}
	if got := null.Line(0); got != "hallo     " {
		t.Errorf("line 0 = %q", got)
	}
}

func TestScreenUndrawnCellsBecomeBlank(t *testing.T) {
	null := NewNullBackend(10, 2)
	s := NewScreen(null)

	drawFrame(s, "hello")
	drawFrame(s, "hi")

	if got := null.Line(0); got != "hi        " {
		t.Errorf("stale text not cleared: %q", got)
	}
}

func TestScreenResizeForcesFullRepaint(t *testing.T) {
	null := NewNullBackend(10, 2)
	s := NewScreen(null)

	drawFrame(s, "hello")
	null.Resize(8, 2)
	s.Resize(8, 2)
	null.ResetCounters()

	drawFrame(s, "hello")

	if null.SetCallCount() != 16 {
		t.Errorf("expected full repaint of 16 cells after resize, got %d", null.SetCallCount())
	}
}

func TestScreenOutOfBoundsDropped(t *testing.T) {
	null := NewNullBackend(4, 2)
	s := NewScreen(null)

	s.BeginFrame()
	s.WriteString(2, 0, "abcdef", core.DefaultStyle())
	s.SetCell(-1, 0, core.NewCell("x"))
	s.SetCell(0, 5, core.NewCell("x"))
	s.EndFrame()

	if got := null.Line(0); got != "  ab" {
		t.Errorf("line 0 = %q", got)
	}
}

func TestScreenCursor(t *testing.T) {
	null := NewNullBackend(4, 2)
	s := NewScreen(null)

	s.BeginFrame()
	s.SetCursor(3, 1)
	s.EndFrame()

	x, y, visible := null.CursorPosition()
	if !visible || x != 3 || y != 1 {
		t.Errorf("cursor = (%d,%d) visible=%v", x, y, visible)
	}

	// A frame that never sets the cursor hides it.
	s.BeginFrame()
	s.EndFrame()
	if _, _, visible := null.CursorPosition(); visible {
		t.Error("cursor must be hidden when the frame did not place it")
	}
}

func TestScreenFill(t *testing.T) {
	null := NewNullBackend(5, 3)
	s := NewScreen(null)

	s.BeginFrame()
	s.Fill(1, 1, 3, 2, core.NewCell("#"))
	s.EndFrame()

	if got := null.Line(1); got != " ### " {
		t.Errorf("line 1 = %q", got)
	}
	if got := null.Line(2); got != " ### " {
		t.Errorf("line 2 = %q", got)
	}
	if got := null.Line(0); got != "     " {
		t.Errorf("line 0 = %q", got)
	}
}
