// Package buffer implements the document model: an ordered sequence of
// rows with a remembered line-ending convention.
//
// A buffer always holds at least one row; a brand-new or just-cleared
// document has exactly one empty row. The buffer is exclusively owned
// by the editor loop and is not safe for concurrent use.
package buffer

import (
	"strings"
	"sync/atomic"

	"github.com/quill-editor/quill/internal/engine/row"
)

// LineEnding specifies the line ending style used when saving.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// String returns a printable representation of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "CRLF"
	}
	return "LF"
}

// RevisionID identifies a buffer revision. It changes on every mutation.
type RevisionID uint64

var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// Position addresses a cell in the buffer: x is a cell index within a
// row, y is a row index. Positions order primarily by y, then by x.
type Position struct {
	X int
	Y int
}

// Less reports whether p comes before other in document order.
func (p Position) Less(other Position) bool {
	if p.Y != other.Y {
		return p.Y < other.Y
	}
	return p.X < other.X
}

// Min returns the earlier of two positions.
func Min(a, b Position) Position {
	if b.Less(a) {
		return b
	}
	return a
}

// Max returns the later of two positions.
func Max(a, b Position) Position {
	if a.Less(b) {
		return b
	}
	return a
}

// Buffer is an ordered sequence of rows.
type Buffer struct {
	rows       []row.Row
	lineEnding LineEnding
	revision   RevisionID
	tabWidth   int
}

// New creates an empty buffer holding a single empty row.
func New() *Buffer {
	return &Buffer{
		rows:       []row.Row{row.New()},
		lineEnding: LineEndingLF,
		revision:   NewRevisionID(),
		tabWidth:   4,
	}
}

// FromString creates a buffer from file text. The text is split on
// line feeds; a trailing carriage return is stripped per line, and the
// first line carrying one decides the save-time convention.
func FromString(text string, tabWidth int) *Buffer {
	b := New()
	if tabWidth > 0 {
		b.tabWidth = tabWidth
	}

	lines := strings.Split(text, "\n")
	rows := make([]row.Row, 0, len(lines))
	detected := false
	for _, line := range lines {
		if stripped, ok := strings.CutSuffix(line, "\r"); ok {
			line = stripped
			if !detected {
				b.lineEnding = LineEndingCRLF
				detected = true
			}
		}
		rows = append(rows, row.FromString(line, b.tabWidth))
	}
	if len(rows) == 0 {
		rows = []row.Row{row.New()}
	}
	b.rows = rows
	return b
}

// Text joins all rows with the buffer's line-ending convention.
func (b *Buffer) Text() string {
	var sb strings.Builder
	sep := b.lineEnding.Sequence()
	for i, r := range b.rows {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// RowCount returns the number of rows. Always at least 1.
func (b *Buffer) RowCount() int {
	return len(b.rows)
}

// Row returns the row at index y, or an empty row if out of range.
func (b *Buffer) Row(y int) row.Row {
	if y < 0 || y >= len(b.rows) {
		return row.New()
	}
	return b.rows[y]
}

// RowLen returns the cell count of the row at index y.
func (b *Buffer) RowLen(y int) int {
	return b.Row(y).Len()
}

// SetRow replaces the row at index y. Out-of-range indices are ignored.
func (b *Buffer) SetRow(y int, r row.Row) {
	if y < 0 || y >= len(b.rows) {
		return
	}
	b.rows[y] = r
	b.revision = NewRevisionID()
}

// InsertRow inserts a row at index y, clamped to [0, RowCount].
func (b *Buffer) InsertRow(y int, r row.Row) {
	if y < 0 {
		y = 0
	}
	if y > len(b.rows) {
		y = len(b.rows)
	}
	b.rows = append(b.rows, row.Row{})
	copy(b.rows[y+1:], b.rows[y:])
	b.rows[y] = r
	b.revision = NewRevisionID()
}

// RemoveRow deletes the row at index y. Removing the last remaining
// row leaves a single empty row, preserving the buffer invariant.
func (b *Buffer) RemoveRow(y int) {
	if y < 0 || y >= len(b.rows) {
		return
	}
	b.rows = append(b.rows[:y], b.rows[y+1:]...)
	if len(b.rows) == 0 {
		b.rows = []row.Row{row.New()}
	}
	b.revision = NewRevisionID()
}

// SwapRows exchanges two rows. Out-of-range indices are ignored.
func (b *Buffer) SwapRows(i, j int) {
	if i < 0 || i >= len(b.rows) || j < 0 || j >= len(b.rows) {
		return
	}
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.revision = NewRevisionID()
}

// DuplicateRange inserts a copy of rows [from, to] immediately after
// the range. Indices are clamped to the buffer.
func (b *Buffer) DuplicateRange(from, to int) {
	if from < 0 {
		from = 0
	}
	if to >= len(b.rows) {
		to = len(b.rows) - 1
	}
	if from > to {
		return
	}
	dup := make([]row.Row, 0, to-from+1)
	for _, r := range b.rows[from : to+1] {
		dup = append(dup, r.Clone())
	}
	tail := make([]row.Row, len(b.rows[to+1:]))
	copy(tail, b.rows[to+1:])
	b.rows = append(b.rows[:to+1], append(dup, tail...)...)
	b.revision = NewRevisionID()
}

// Rows returns the live row slice. Callers must treat it as read-only;
// mutations go through the buffer methods.
func (b *Buffer) Rows() []row.Row {
	return b.rows
}

// CloneRows returns a deep copy of all rows, suitable for handing to
// the history engine.
func (b *Buffer) CloneRows() []row.Row {
	out := make([]row.Row, len(b.rows))
	for i, r := range b.rows {
		out[i] = r.Clone()
	}
	return out
}

// Replace swaps the buffer content for the given rows, cloning them.
// An empty slice resets to a single empty row.
func (b *Buffer) Replace(rows []row.Row) {
	if len(rows) == 0 {
		b.rows = []row.Row{row.New()}
	} else {
		b.rows = make([]row.Row, len(rows))
		for i, r := range rows {
			b.rows[i] = r.Clone()
		}
	}
	b.revision = NewRevisionID()
}

// LineEnding returns the buffer's line-ending convention.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// SetLineEnding sets the save-time line-ending convention.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// TabWidth returns the tab stop width used when expanding tabs.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetTabWidth sets the tab stop width for future insertions.
func (b *Buffer) SetTabWidth(w int) {
	if w > 0 {
		b.tabWidth = w
	}
}

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// Touch records a mutation performed directly on a row obtained from Row.
func (b *Buffer) Touch() {
	b.revision = NewRevisionID()
}
