package editor

import (
	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
)

const wheelPan = 3

func (e *Editor) handleMouse(ev backend.Event) {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		e.followCursor = false
		dt := 1
		if ev.Mod.Has(backend.ModAlt) {
			dt = wheelPan
		}
		e.viewbox.Y = satSub(e.viewbox.Y, dt)

	case backend.MouseWheelDown:
		e.followCursor = false
		dt := 1
		if ev.Mod.Has(backend.ModAlt) {
			dt = wheelPan
		}
		if max := satSub(e.buf.RowCount()+e.scrollGap, e.textHeight()); e.viewbox.Y+dt > max {
			e.viewbox.Y = max
		} else {
			e.viewbox.Y += dt
		}

	case backend.MouseWheelLeft:
		e.followCursor = false
		e.viewbox.X = satSub(e.viewbox.X, wheelPan)

	case backend.MouseWheelRight:
		e.followCursor = false
		if max := e.rowLen() + e.scrollGap + 1; e.viewbox.X+wheelPan > max {
			e.viewbox.X = max
		} else {
			e.viewbox.X += wheelPan
		}

	case backend.MouseLeft:
		// A press starts a selection; motion with the button held
		// extends it. Either way the event sticks until release.
		e.heldPress = !e.heldActive
		e.heldActive = true
		e.held = ev

	case backend.MouseNone:
		e.heldActive = false

	default:
		e.followCursor = false
	}
}

// applyHeld re-applies the latest press or drag. It runs every tick
// while the left button is down: holding the pointer past the window
// edge keeps scrolling the selection.
func (e *Editor) applyHeld() {
	col, mouseRow := e.held.MouseX, e.held.MouseY
	if mouseRow >= e.textHeight() {
		return
	}

	_, height := e.rend.Screen().Size()
	sidebar := renderer.SidebarWidth(e.viewbox.Y, height, e.buf.RowCount())

	e.cursor.Y = mouseRow + e.viewbox.Y
	x := satSub(col+e.viewbox.X, sidebar)

	switch {
	case e.cursor.Y >= e.buf.RowCount():
		e.cursor.Y = e.buf.RowCount() - 1
		e.cursor.X = e.rowLen()
		if e.heldPress {
			e.anchor = e.cursor
			e.anchored = true
		}

	case col < sidebar:
		// Sidebar click selects the whole line; dragging extends the
		// selection a line at a time.
		e.cursor.X = 0
		if e.heldPress {
			e.followCursor = false
			e.anchor = buffer.Position{X: 0, Y: e.cursor.Y}
			e.anchored = true
		}
		anchorY := e.cursor.Y
		if e.anchored {
			anchorY = e.anchor.Y
		}
		if e.cursor.Y >= anchorY {
			e.cursor.Y++
			if e.cursor.Y == e.buf.RowCount() {
				e.cursor.Y = e.buf.RowCount() - 1
				e.cursor.X = e.rowLen()
			}
		}

	default:
		e.cursor.X = e.hitCell(x)
		if e.heldPress {
			e.anchor = e.cursor
			e.anchored = true
		}
	}
}

// hitCell maps a visual column to a cell index on the cursor row. A
// click past the midpoint of a wide glyph lands after it; a click past
// the row end lands at the row end.
func (e *Editor) hitCell(x int) int {
	r := e.buf.Row(e.cursor.Y)
	if x > r.Width() {
		return r.Len()
	}
	width := 0
	for i := 0; i < r.Len(); i++ {
		w := r.Cell(i).Width
		if width+w/2 >= x {
			return i
		}
		width += w
	}
	return r.Len()
}
