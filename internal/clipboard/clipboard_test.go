package clipboard

import (
	"errors"
	"testing"

	"github.com/quill-editor/quill/internal/renderer/backend"
)

func TestSetMirrorsToSystem(t *testing.T) {
	b := backend.NewNullBackend(10, 5)
	c := New(b)

	if err := c.Set("hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if c.Get() != "hello" {
		t.Errorf("register = %q, want %q", c.Get(), "hello")
	}
	if b.Clipboard() != "hello" {
		t.Errorf("system clipboard = %q, want %q", b.Clipboard(), "hello")
	}
}

func TestSetWithoutSystemKeepsRegister(t *testing.T) {
	c := New(nil)

	err := c.Set("local only")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if c.Get() != "local only" {
		t.Errorf("register = %q, want %q", c.Get(), "local only")
	}
}

func TestEmpty(t *testing.T) {
	c := New(nil)
	if !c.Empty() {
		t.Error("fresh clipboard should be empty")
	}
	_ = c.Set("x")
	if c.Empty() {
		t.Error("clipboard with text should not be empty")
	}
}
