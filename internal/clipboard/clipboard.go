// Package clipboard holds the editor's copy register and mirrors it to
// the system clipboard when the terminal supports OSC 52.
package clipboard

import "errors"

// ErrUnavailable is reported when the system clipboard cannot be
// reached. The internal register still works in that case.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Setter pushes text to the system clipboard.
type Setter interface {
	SetClipboard(text string)
}

// Clipboard is the editor's copy register. Reads always come from the
// internal register; writes are mirrored to the system clipboard on a
// best-effort basis.
type Clipboard struct {
	register string
	system   Setter
}

// New creates a clipboard mirroring writes to the given setter.
// A nil setter keeps the register purely internal.
func New(system Setter) *Clipboard {
	return &Clipboard{system: system}
}

// Set stores text in the register and mirrors it to the system
// clipboard. Returns ErrUnavailable when no system clipboard is
// attached; the register is updated regardless.
func (c *Clipboard) Set(text string) error {
	c.register = text
	if c.system == nil {
		return ErrUnavailable
	}
	c.system.SetClipboard(text)
	return nil
}

// Get returns the register contents.
func (c *Clipboard) Get() string {
	return c.register
}

// Empty reports whether the register holds no text.
func (c *Clipboard) Empty() bool {
	return c.register == ""
}
