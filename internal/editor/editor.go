// Package editor implements the editing state machine: cursor and
// selection movement, text mutation, undo/redo, viewport tracking,
// mouse hit-testing, and the interactive event loop.
package editor

import (
	"fmt"
	"os"

	"github.com/quill-editor/quill/internal/clipboard"
	"github.com/quill-editor/quill/internal/config"
	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/engine/history"
	"github.com/quill-editor/quill/internal/engine/row"
	"github.com/quill-editor/quill/internal/logging"
	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
	"github.com/quill-editor/quill/internal/session"
	"github.com/quill-editor/quill/internal/syntax"
)

// Options wires an Editor to its collaborators.
type Options struct {
	Backend   backend.Backend
	Renderer  *renderer.Renderer
	Clipboard *clipboard.Clipboard
	Logger    *logging.Logger
	Sessions  *session.Store
	Config    *config.Config

	// Filename is the file to open. Empty starts an untitled document.
	Filename string

	// Reload delivers live configuration updates. May be nil.
	Reload <-chan *config.Config
}

// Editor owns one open document and the terminal session editing it.
type Editor struct {
	buf       *buffer.Buffer
	hist      *history.History
	highlight *syntax.Highlighter
	rend      *renderer.Renderer
	term      backend.Backend
	clip      *clipboard.Clipboard
	log       *logging.Logger
	sessions  *session.Store
	reload    <-chan *config.Config

	filename string
	dirty    bool

	// cursor.X is a cell index and may stick past the row end after
	// vertical movement; clampX trims it before any use.
	cursor   buffer.Position
	anchor   buffer.Position
	anchored bool

	// viewbox.Y is in rows, viewbox.X in visual columns.
	viewbox buffer.Position

	scrollGap     int
	showDebugLine bool

	// held replays the last left-button press or drag every tick until
	// the button is released, so selection keeps growing while the
	// pointer rests.
	held       backend.Event
	heldActive bool
	heldPress  bool

	// followCursor is reset each tick; pan operations clear it to keep
	// the viewport where the user put it.
	followCursor bool

	frame     int
	debugLine string
	quit      bool

	events chan backend.Event
}

// New opens the named file, or an untitled empty document.
func New(opts Options) (*Editor, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.New(nil)
	}

	e := &Editor{
		rend:          opts.Renderer,
		term:          opts.Backend,
		clip:          opts.Clipboard,
		log:           opts.Logger,
		sessions:      opts.Sessions,
		reload:        opts.Reload,
		filename:      opts.Filename,
		hist:          history.New(),
		scrollGap:     opts.Config.ScrollGap,
		showDebugLine: opts.Config.ShowDebugLine,
		events:        make(chan backend.Event, 64),
	}

	var content []byte
	if opts.Filename != "" {
		data, err := os.ReadFile(opts.Filename)
		switch {
		case err == nil:
			content = data
		case os.IsNotExist(err):
			// New file: start empty, unsaved.
			e.dirty = true
		default:
			return nil, fmt.Errorf("open %s: %w", opts.Filename, err)
		}
	} else {
		e.dirty = true
	}

	e.buf = buffer.FromString(string(content), opts.Config.TabWidth)
	e.highlight = syntax.NewHighlighter(syntax.Detect(opts.Filename, content))
	e.restoreSession()
	e.commitHistory()
	return e, nil
}

func (e *Editor) restoreSession() {
	if e.sessions == nil || e.filename == "" {
		return
	}
	pos, ok := e.sessions.Lookup(e.filename)
	if !ok {
		return
	}
	e.cursor = buffer.Position{X: pos.CursorX, Y: pos.CursorY}
	if e.cursor.Y >= e.buf.RowCount() {
		e.cursor.Y = e.buf.RowCount() - 1
	}
	e.clampX()
	e.viewbox = buffer.Position{X: pos.ViewX, Y: pos.ViewY}
	if e.viewbox.Y >= e.buf.RowCount() {
		e.viewbox.Y = e.buf.RowCount() - 1
	}
}

func (e *Editor) recordSession() {
	if e.sessions == nil || e.filename == "" {
		return
	}
	err := e.sessions.Record(e.filename, session.Position{
		CursorX: e.cursor.X,
		CursorY: e.cursor.Y,
		ViewX:   e.viewbox.X,
		ViewY:   e.viewbox.Y,
	})
	if err == nil {
		err = e.sessions.Save()
	}
	if err != nil {
		e.log.Warn("session not saved: %v", err)
	}
}

// rowLen is the cell count of the cursor row.
func (e *Editor) rowLen() int {
	return e.buf.RowLen(e.cursor.Y)
}

// clampX trims the sticky column to the current row.
func (e *Editor) clampX() {
	if n := e.rowLen(); e.cursor.X > n {
		e.cursor.X = n
	}
}

// visualCursor converts the cursor to visual columns for viewport and
// rendering math.
func (e *Editor) visualCursor() buffer.Position {
	return buffer.Position{
		X: e.buf.Row(e.cursor.Y).WidthTo(e.cursor.X),
		Y: e.cursor.Y,
	}
}

// selection returns the normalized selection range, begin before end.
func (e *Editor) selection() (begin, end buffer.Position, ok bool) {
	if !e.anchored {
		return begin, end, false
	}
	return buffer.Min(e.anchor, e.cursor), buffer.Max(e.anchor, e.cursor), true
}

// updateSelection starts or drops the selection depending on whether
// Shift is held during a cursor movement.
func (e *Editor) updateSelection(mod backend.ModMask) {
	if mod.Has(backend.ModShift) {
		if !e.anchored {
			e.anchor = e.cursor
			e.anchored = true
		}
	} else {
		e.anchored = false
	}
}

// deleteRange removes [begin, end) and collapses the cursor to begin.
func (e *Editor) deleteRange(begin, end buffer.Position) {
	head := e.buf.Row(begin.Y).Slice(0, begin.X)
	tail := e.buf.Row(end.Y).Slice(end.X, e.buf.RowLen(end.Y))
	e.buf.SetRow(begin.Y, row.Concat(head, tail))
	for y := end.Y; y > begin.Y; y-- {
		e.buf.RemoveRow(y)
	}
	e.cursor = begin
	e.anchored = false
	e.highlight.Invalidate(begin.Y)
}

// selectionText joins the selected cells with line feeds.
func (e *Editor) selectionText(begin, end buffer.Position) string {
	if begin.Y == end.Y {
		return e.buf.Row(begin.Y).Slice(begin.X, end.X).Text()
	}
	text := e.buf.Row(begin.Y).Slice(begin.X, e.buf.RowLen(begin.Y)).Text()
	for y := begin.Y + 1; y < end.Y; y++ {
		text += "\n" + e.buf.Row(y).Text()
	}
	return text + "\n" + e.buf.Row(end.Y).Slice(0, end.X).Text()
}

func (e *Editor) uiState() history.UIState {
	return history.UIState{
		Viewbox:  e.viewbox,
		Cursor:   e.cursor,
		Anchor:   e.anchor,
		Anchored: e.anchored,
	}
}

func (e *Editor) commitHistory() {
	e.hist.Commit(e.buf.Rows(), e.uiState())
}

// amendHistory records the UI state as it stood right before an edit,
// so undo lands where the user was.
func (e *Editor) amendHistory() {
	e.hist.AmendLastState(e.uiState())
}

func (e *Editor) undo() {
	if !e.hist.Undo() {
		return
	}
	e.restoreHistory()
}

func (e *Editor) redo() {
	if !e.hist.Redo() {
		return
	}
	e.restoreHistory()
}

func (e *Editor) restoreHistory() {
	e.buf.Replace(e.hist.Current())
	st := e.hist.CurrentState()
	e.viewbox = st.Viewbox
	e.cursor = st.Cursor
	e.anchor = st.Anchor
	e.anchored = st.Anchored
	e.dirty = true
	e.highlight.Invalidate(0)
}

// textHeight is the document area height: the window minus the status
// bar and the debug line.
func (e *Editor) textHeight() int {
	_, h := e.rend.Screen().Size()
	return h - 2
}

// updateViewbox keeps the cursor inside the viewport with a gap margin
// on every side, accounting for the sidebar width.
func (e *Editor) updateViewbox() {
	width, height := e.rend.Screen().Size()
	sidebar := renderer.SidebarWidth(e.viewbox.Y, height, e.buf.RowCount())
	pos := e.visualCursor()
	gap := e.scrollGap

	e.viewbox.Y = clamp(e.viewbox.Y,
		satSub(pos.Y+gap+3, height),
		satSub(pos.Y, gap))
	e.viewbox.X = clamp(e.viewbox.X,
		satSub(pos.X+gap+1, width-sidebar),
		satSub(pos.X, gap))
}

func (e *Editor) docState() *renderer.DocState {
	begin, end, selected := e.selection()
	debug := ""
	if e.showDebugLine {
		debug = e.debugLine
	}
	return &renderer.DocState{
		Buf:       e.buf,
		Highlight: e.highlight,
		Viewbox:   e.viewbox,
		Cursor:    e.cursor,
		Selected:  selected,
		SelBegin:  begin,
		SelEnd:    end,
		Filename:  e.filename,
		Dirty:     e.dirty,
		Debug:     debug,
	}
}

func (e *Editor) updateDebugLine() {
	pos := e.visualCursor()
	anchor := "None"
	if e.anchored {
		anchor = fmt.Sprintf("Some((%d, %d))", e.anchor.Y+1, e.anchor.X+1)
	}
	e.debugLine = fmt.Sprintf(
		" viewbox: (%d, %d) | cursor: (%d, %d) @ %s | view cursor: (%d, %d) | Frame = %d",
		e.viewbox.Y+1, e.viewbox.X+1,
		e.cursor.Y+1, e.cursor.X+1,
		anchor,
		pos.Y+1, pos.X+1,
		e.frame,
	)
	e.frame++
}

// ApplyConfig folds a live configuration update into the session.
func (e *Editor) ApplyConfig(cfg *config.Config) {
	e.buf.SetTabWidth(cfg.TabWidth)
	e.scrollGap = cfg.ScrollGap
	e.showDebugLine = cfg.ShowDebugLine
	e.rend.SetTheme(renderer.ThemeFromOverrides(cfg.Theme))
	e.log.Info("configuration reloaded")
}

// clamp applies lo then hi, so hi wins when the bounds cross (a short
// document in a tall window produces lo > hi).
func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
