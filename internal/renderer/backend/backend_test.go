package backend

import (
	"testing"

	"github.com/quill-editor/quill/internal/renderer/core"
)

func TestNullBackendCells(t *testing.T) {
	b := NewNullBackend(4, 2)

	b.SetCell(1, 0, core.NewCell("x"))
	if got := b.Cell(1, 0).Text; got != "x" {
		t.Errorf("cell = %q", got)
	}

	// Out of bounds is dropped, not panicked on.
	b.SetCell(10, 10, core.NewCell("x"))
	b.SetCell(-1, 0, core.NewCell("x"))
	if got := b.Line(0); got != " x  " {
		t.Errorf("line = %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(4, 2)

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'q'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'q' {
		t.Errorf("event = %+v", ev)
	}
}

func TestNullBackendClipboard(t *testing.T) {
	b := NewNullBackend(4, 2)
	b.SetClipboard("copied")
	if b.Clipboard() != "copied" {
		t.Errorf("clipboard = %q", b.Clipboard())
	}
}

func TestModMaskHas(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Error("expected ctrl and shift")
	}
	if m.Has(ModAlt) {
		t.Error("alt must not be set")
	}
}
