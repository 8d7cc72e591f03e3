// Package history implements the diff-based undo/redo log.
//
// Instead of snapshotting the whole document per edit, the log stores
// one sparse record per committed version: the rows that changed, keyed
// by row index, in both directions. Undo and redo therefore cost
// O(changed rows), not O(document size), which matters because every
// content-mutating keypress is its own version.
package history

import (
	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/engine/row"
)

// UIState is the viewport/cursor/selection snapshot restored when undo
// or redo lands on a version.
type UIState struct {
	Viewbox  buffer.Position
	Cursor   buffer.Position
	Anchor   buffer.Position
	Anchored bool
}

// record describes one committed version of the document.
//
// The maps are sparse: only rows that differ across the adjacent
// transition appear. For record i (version i+1):
//
//	backward holds the old rows of the transition i -> i+1 and is
//	overlaid when undoing from version i+1 back to version i.
//	forward holds the new rows of the transition i+1 -> i+2 and is
//	overlaid when redoing from version i+1 to version i+2.
//	length is the row count at version i+1.
//
// Rows removed by a shrink appear only in backward; rows appended by a
// growth appear only in the previous record's forward map.
type record struct {
	forward  map[int]row.Row
	backward map[int]row.Row
	length   int
	state    UIState
}

// History is the append-only version log plus the live row arena.
type History struct {
	records []*record
	current []row.Row
	version int // number of commits applied; points one past the active record
}

// New creates an empty history.
func New() *History {
	return &History{}
}

// Version returns the current version number (count of applied diffs).
func (h *History) Version() int {
	return h.version
}

// Current returns the live rows for the current version. Callers must
// treat the slice and its rows as read-only.
func (h *History) Current() []row.Row {
	return h.current
}

// CurrentState returns the UI state recorded for the current version.
func (h *History) CurrentState() UIState {
	if h.version == 0 {
		return UIState{}
	}
	return h.records[h.version-1].state
}

// CanUndo reports whether an earlier version exists.
func (h *History) CanUndo() bool {
	return h.version > 1
}

// CanRedo reports whether a later version exists.
func (h *History) CanRedo() bool {
	return h.version < len(h.records)
}

// Commit records rows as the next version. Any versions beyond the
// current one are discarded first (the redo branch dies on a new edit).
// The rows are compared index-by-index against the live arena; only
// differing, removed or appended rows enter the sparse maps. After
// Commit the live arena equals rows exactly.
func (h *History) Commit(rows []row.Row, state UIState) {
	v := h.version
	h.records = h.records[:v]

	newLen := len(rows)
	rec := &record{
		forward:  make(map[int]row.Row),
		backward: make(map[int]row.Row),
		length:   newLen,
		state:    state,
	}

	if v == 0 {
		h.current = cloneRows(rows)
	} else {
		prev := h.records[v-1]
		// A discarded redo branch may have left forward entries on the
		// previous record; they describe a transition that no longer
		// exists and must not leak into the new one.
		prev.forward = make(map[int]row.Row)
		oldLen := len(h.current)

		minLen := min(oldLen, newLen)
		for i := 0; i < minLen; i++ {
			if !h.current[i].Equal(rows[i]) {
				prev.forward[i] = rows[i].Clone()
				rec.backward[i] = h.current[i].Clone()
				h.current[i] = rows[i].Clone()
			}
		}
		// Rows past the shorter length are pure removals or insertions.
		for i := minLen; i < oldLen; i++ {
			rec.backward[i] = h.current[i].Clone()
		}
		h.current = resizeRows(h.current, newLen)
		for i := minLen; i < newLen; i++ {
			prev.forward[i] = rows[i].Clone()
			h.current[i] = rows[i].Clone()
		}
	}

	h.records = append(h.records, rec)
	h.version++
}

// AmendLastState overwrites the UI state of the most recent version
// without creating a new diff. The editor uses this to pin "where the
// cursor was just before this edit" so that undo lands there.
func (h *History) AmendLastState(state UIState) {
	if h.version == 0 {
		return
	}
	h.records[h.version-1].state = state
}

// Undo steps back one version. It reports false at version one or
// below: the first commit is the load state and cannot be undone.
func (h *History) Undo() bool {
	if h.version <= 1 {
		return false
	}
	h.version--
	h.current = resizeRows(h.current, h.records[h.version-1].length)
	for i, r := range h.records[h.version].backward {
		if i < len(h.current) {
			h.current[i] = r.Clone()
		}
	}
	return true
}

// Redo steps forward one version, reporting false at the newest.
func (h *History) Redo() bool {
	if h.version >= len(h.records) {
		return false
	}
	h.current = resizeRows(h.current, h.records[h.version].length)
	for i, r := range h.records[h.version-1].forward {
		if i < len(h.current) {
			h.current[i] = r.Clone()
		}
	}
	h.version++
	return true
}

func cloneRows(rows []row.Row) []row.Row {
	out := make([]row.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}

func resizeRows(rows []row.Row, n int) []row.Row {
	if n <= len(rows) {
		return rows[:n]
	}
	for len(rows) < n {
		rows = append(rows, row.New())
	}
	return rows
}
