package editor

import (
	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/engine/row"
	"github.com/quill-editor/quill/internal/renderer/backend"
)

func (e *Editor) handleKey(ev backend.Event) {
	switch ev.Key {
	case backend.KeyCtrlS:
		e.saveFile()
	case backend.KeyEscape, backend.KeyCtrlW:
		e.confirmExit()
	case backend.KeyCtrlA:
		e.selectAll()
	case backend.KeyCtrlZ:
		e.undo()
	case backend.KeyCtrlY:
		e.redo()
	case backend.KeyCtrlX:
		e.cutSelection()
	case backend.KeyCtrlC:
		e.copySelection()
	case backend.KeyCtrlV:
		e.paste(e.clip.Get())
	case backend.KeyRune:
		if !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt) {
			e.insertRune(ev.Rune)
		}
	case backend.KeyTab:
		e.insertTab()
	case backend.KeyEnter:
		e.insertNewline()
	case backend.KeyBackspace:
		e.deleteBackward()
	case backend.KeyDelete:
		e.deleteForward()
	case backend.KeyUp:
		e.moveUp(ev.Mod)
	case backend.KeyDown:
		e.moveDown(ev.Mod)
	case backend.KeyLeft:
		e.moveLeft(ev.Mod)
	case backend.KeyRight:
		e.moveRight(ev.Mod)
	case backend.KeyPageUp:
		e.updateSelection(ev.Mod)
		e.cursor.Y = satSub(e.cursor.Y, e.textHeight())
	case backend.KeyPageDown:
		e.updateSelection(ev.Mod)
		if y := e.cursor.Y + e.textHeight(); y < e.buf.RowCount() {
			e.cursor.Y = y
		} else {
			e.cursor.Y = e.buf.RowCount() - 1
		}
	case backend.KeyHome:
		e.updateSelection(ev.Mod)
		e.cursor.X = 0
	case backend.KeyEnd:
		e.updateSelection(ev.Mod)
		e.cursor.X = e.rowLen()
	}
}

func (e *Editor) selectAll() {
	e.anchor = buffer.Position{}
	e.anchored = true
	e.cursor.Y = e.buf.RowCount() - 1
	e.cursor.X = e.rowLen()
	e.followCursor = false
}

// insertRune types one character at the cursor, replacing the
// selection if one is active.
func (e *Editor) insertRune(r rune) {
	e.amendHistory()
	e.dirty = true
	e.clampX()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	}

	cells := row.FromString(string(r), e.buf.TabWidth())
	e.spliceCells(cells)
	e.highlight.Invalidate(e.cursor.Y)
	e.commitHistory()
}

// insertTab inserts spaces up to the next tab stop.
func (e *Editor) insertTab() {
	e.amendHistory()
	e.dirty = true
	e.clampX()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	}

	visual := e.buf.Row(e.cursor.Y).WidthTo(e.cursor.X)
	tw := e.buf.TabWidth()
	n := tw - visual%tw
	cells := make([]row.Cell, n)
	for i := range cells {
		cells[i] = row.SpaceCell()
	}
	e.spliceCells(row.FromCells(cells))
	e.highlight.Invalidate(e.cursor.Y)
	e.commitHistory()
}

// spliceCells inserts cells at the cursor and advances past them.
func (e *Editor) spliceCells(cells row.Row) {
	r := e.buf.Row(e.cursor.Y)
	head := r.Slice(0, e.cursor.X)
	tail := r.Slice(e.cursor.X, r.Len())
	e.buf.SetRow(e.cursor.Y, row.Concat(row.Concat(head, cells), tail))
	e.cursor.X += cells.Len()
}

func (e *Editor) insertNewline() {
	e.amendHistory()
	e.dirty = true
	e.clampX()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	}

	left, right := e.buf.Row(e.cursor.Y).Split(e.cursor.X)
	e.buf.SetRow(e.cursor.Y, left)
	e.buf.InsertRow(e.cursor.Y+1, right)
	e.highlight.Invalidate(e.cursor.Y)
	e.cursor.Y++
	e.cursor.X = 0
	e.commitHistory()
}

func (e *Editor) deleteBackward() {
	e.amendHistory()
	e.dirty = true
	e.clampX()
	e.dropEmptySelection()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	} else if e.cursor.X > 0 {
		e.cursor.X--
		r := e.buf.Row(e.cursor.Y)
		r.Remove(e.cursor.X)
		e.buf.SetRow(e.cursor.Y, r)
		e.highlight.Invalidate(e.cursor.Y)
	} else if e.cursor.Y > 0 {
		// At line start: merge with the previous line.
		e.cursor.Y--
		e.cursor.X = e.rowLen()
		e.mergeWithNextRow()
	}
	e.commitHistory()
}

func (e *Editor) deleteForward() {
	e.amendHistory()
	e.dirty = true
	e.clampX()
	e.dropEmptySelection()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	} else if e.cursor.X < e.rowLen() {
		r := e.buf.Row(e.cursor.Y)
		r.Remove(e.cursor.X)
		e.buf.SetRow(e.cursor.Y, r)
		e.highlight.Invalidate(e.cursor.Y)
	} else if e.cursor.Y < e.buf.RowCount()-1 {
		// At line end: merge with the next line.
		e.mergeWithNextRow()
	}
	e.commitHistory()
}

// dropEmptySelection clears a zero-width selection so delete keys
// remove a character instead of nothing.
func (e *Editor) dropEmptySelection() {
	if begin, end, ok := e.selection(); ok && begin == end {
		e.anchored = false
	}
}

func (e *Editor) mergeWithNextRow() {
	merged := row.Concat(e.buf.Row(e.cursor.Y), e.buf.Row(e.cursor.Y+1))
	e.buf.SetRow(e.cursor.Y, merged)
	e.buf.RemoveRow(e.cursor.Y + 1)
	e.highlight.Invalidate(e.cursor.Y)
}

func (e *Editor) moveUp(mod backend.ModMask) {
	switch {
	case mod.Has(backend.ModAlt) && mod.Has(backend.ModShift):
		e.duplicateLines(false)
		return
	case mod.Has(backend.ModAlt):
		e.moveLines(-1)
	default:
		e.updateSelection(mod)
	}

	if mod.Has(backend.ModCtrl) {
		e.followCursor = false
		e.viewbox.Y = satSub(e.viewbox.Y, 1)
	} else if e.cursor.Y > 0 {
		e.cursor.Y--
	} else {
		e.cursor.X = 0
	}
}

func (e *Editor) moveDown(mod backend.ModMask) {
	switch {
	case mod.Has(backend.ModAlt) && mod.Has(backend.ModShift):
		e.duplicateLines(true)
		return
	case mod.Has(backend.ModAlt):
		e.moveLines(1)
	default:
		e.updateSelection(mod)
	}

	if mod.Has(backend.ModCtrl) {
		e.followCursor = false
		if max := satSub(e.buf.RowCount()+e.scrollGap, e.textHeight()); e.viewbox.Y+1 <= max {
			e.viewbox.Y++
		}
	} else if e.cursor.Y < e.buf.RowCount()-1 {
		e.cursor.Y++
	} else {
		e.cursor.X = e.rowLen()
	}
}

// moveLines shifts the selected rows (or the cursor row) one step up
// or down, keeping the selection on them.
func (e *Editor) moveLines(delta int) {
	begin, end, ok := e.selection()
	if !ok {
		begin, end = e.cursor, e.cursor
	}

	if delta < 0 {
		if begin.Y == 0 {
			return
		}
		e.amendHistory()
		e.dirty = true
		for y := begin.Y; y <= end.Y; y++ {
			e.buf.SwapRows(y-1, y)
		}
	} else {
		if end.Y >= e.buf.RowCount()-1 {
			return
		}
		e.amendHistory()
		e.dirty = true
		for y := end.Y; y >= begin.Y; y-- {
			e.buf.SwapRows(y, y+1)
		}
	}
	if e.anchored {
		e.anchor.Y += delta
	}
	e.highlight.Invalidate(begin.Y + min(delta, 0))
	e.commitHistory()
}

// duplicateLines copies the selected rows (or the cursor row) in
// place. With below set the cursor moves onto the new copy.
func (e *Editor) duplicateLines(below bool) {
	begin, end, ok := e.selection()
	if !ok {
		begin, end = e.cursor, e.cursor
	}

	e.amendHistory()
	e.dirty = true
	e.buf.DuplicateRange(begin.Y, end.Y)
	if below {
		n := end.Y - begin.Y + 1
		e.cursor.Y += n
		if e.anchored {
			e.anchor.Y += n
		}
	}
	e.highlight.Invalidate(begin.Y)
	e.commitHistory()
}

func (e *Editor) moveLeft(mod backend.ModMask) {
	e.clampX()
	e.updateSelection(mod)

	if mod.Has(backend.ModCtrl) {
		// To the beginning of the previous word.
		if e.cursor.X == 0 && e.cursor.Y > 0 {
			e.cursor.Y--
			e.cursor.X = e.rowLen()
		}
		r := e.buf.Row(e.cursor.Y)
		for e.cursor.X > 0 && r.Cell(e.cursor.X-1).IsSpace() {
			e.cursor.X--
		}
		for e.cursor.X > 0 && !r.Cell(e.cursor.X-1).IsSpace() {
			e.cursor.X--
		}
	} else if e.cursor.X > 0 {
		e.cursor.X--
	} else if e.cursor.Y > 0 {
		e.cursor.Y--
		e.cursor.X = e.rowLen()
	}
}

func (e *Editor) moveRight(mod backend.ModMask) {
	e.clampX()
	e.updateSelection(mod)

	if mod.Has(backend.ModCtrl) {
		// To the end of the next word. Crossing a line break lands at
		// the start of the next line's first word.
		if e.cursor.X == e.rowLen() && e.cursor.Y < e.buf.RowCount()-1 {
			e.cursor.Y++
			e.cursor.X = 0
			r := e.buf.Row(e.cursor.Y)
			for e.cursor.X < r.Len() && r.Cell(e.cursor.X).IsSpace() {
				e.cursor.X++
			}
			return
		}
		r := e.buf.Row(e.cursor.Y)
		for e.cursor.X < r.Len() && r.Cell(e.cursor.X).IsSpace() {
			e.cursor.X++
		}
		for e.cursor.X < r.Len() && !r.Cell(e.cursor.X).IsSpace() {
			e.cursor.X++
		}
	} else if e.cursor.X < e.rowLen() {
		e.cursor.X++
	} else if e.cursor.Y < e.buf.RowCount()-1 {
		e.cursor.Y++
		e.cursor.X = 0
	}
}

func (e *Editor) cutSelection() {
	begin, end, ok := e.selection()
	if !ok {
		return
	}
	e.setClipboard(e.selectionText(begin, end))
	e.amendHistory()
	e.dirty = true
	e.deleteRange(begin, end)
	e.commitHistory()
}

func (e *Editor) copySelection() {
	begin, end, ok := e.selection()
	if !ok {
		return
	}
	e.setClipboard(e.selectionText(begin, end))
}

func (e *Editor) setClipboard(text string) {
	if err := e.clip.Set(text); err != nil {
		e.log.Warn("copy kept local: %v", err)
	}
}

// paste inserts text at the cursor, over the selection if one is
// active. Line feeds in the text split rows.
func (e *Editor) paste(text string) {
	if text == "" {
		return
	}
	e.amendHistory()
	e.dirty = true
	e.clampX()

	if begin, end, ok := e.selection(); ok {
		e.deleteRange(begin, end)
	}

	lines := splitLines(text)
	e.highlight.Invalidate(e.cursor.Y)
	if len(lines) == 1 {
		e.spliceCells(row.FromString(lines[0], e.buf.TabWidth()))
		e.commitHistory()
		return
	}

	r := e.buf.Row(e.cursor.Y)
	head := r.Slice(0, e.cursor.X)
	tail := r.Slice(e.cursor.X, r.Len())

	e.buf.SetRow(e.cursor.Y, row.Concat(head, row.FromString(lines[0], e.buf.TabWidth())))
	y := e.cursor.Y
	for _, line := range lines[1 : len(lines)-1] {
		y++
		e.buf.InsertRow(y, row.FromString(line, e.buf.TabWidth()))
	}
	last := row.FromString(lines[len(lines)-1], e.buf.TabWidth())
	y++
	e.buf.InsertRow(y, row.Concat(last, tail))
	e.cursor = buffer.Position{X: last.Len(), Y: y}
	e.commitHistory()
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line := text[start:i]
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
			start = i + 1
		}
	}
	return append(lines, text[start:])
}
