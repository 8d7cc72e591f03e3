package syntax

import "github.com/quill-editor/quill/internal/engine/buffer"

// Highlighter caches per-row classification for a buffer. Because a
// row's tags depend on the end state of the row above, an edit at row
// y invalidates everything from y down; rows above keep their cache.
type Highlighter struct {
	rules *Ruleset

	tags   [][]Token
	states []State // end state of each classified row
	valid  int     // rows [0, valid) are current
}

// NewHighlighter creates a highlighter for the given ruleset.
// A nil ruleset is allowed and classifies everything as normal.
func NewHighlighter(rules *Ruleset) *Highlighter {
	return &Highlighter{rules: rules}
}

// Ruleset returns the active ruleset, nil when highlighting is off.
func (h *Highlighter) Ruleset() *Ruleset {
	return h.rules
}

// Invalidate discards cached results from row y to the end.
func (h *Highlighter) Invalidate(y int) {
	if y < 0 {
		y = 0
	}
	if y < h.valid {
		h.valid = y
	}
}

// Line returns the tags for row y, classifying any stale rows above
// it first so row-crossing state is correct. Returns nil when no
// ruleset is active.
func (h *Highlighter) Line(buf *buffer.Buffer, y int) []Token {
	if h.rules == nil || y < 0 || y >= buf.RowCount() {
		return nil
	}
	h.ensure(buf, y)
	return h.tags[y]
}

func (h *Highlighter) ensure(buf *buffer.Buffer, y int) {
	n := buf.RowCount()
	if cap(h.tags) < n {
		tags := make([][]Token, n)
		copy(tags, h.tags[:h.valid])
		states := make([]State, n)
		copy(states, h.states[:h.valid])
		h.tags, h.states = tags, states
	}
	h.tags = h.tags[:n]
	h.states = h.states[:n]
	if h.valid > n {
		h.valid = n
	}

	for row := h.valid; row <= y; row++ {
		prev := State{}
		if row > 0 {
			prev = h.states[row-1]
		}
		h.tags[row], h.states[row] = Classify(prev, buf.Row(row).Cells(), h.rules)
	}
	if y+1 > h.valid {
		h.valid = y + 1
	}
}
