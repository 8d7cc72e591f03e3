// Package row implements the cell-based line model used by the editor.
//
// A Row is an ordered sequence of Cells. Each Cell holds exactly one
// extended grapheme cluster and its terminal display width, so that
// multi-codepoint sequences (combining marks, emoji) move and delete as
// a single unit. Rows never contain line separators; line structure is
// owned by the buffer.
package row

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell is one editable unit of a row: a grapheme cluster and its
// display width in terminal columns (0, 1 or 2).
type Cell struct {
	Text  string
	Width int
}

// NewCell creates a cell for a single grapheme cluster.
func NewCell(grapheme string) Cell {
	return Cell{Text: grapheme, Width: runewidth.StringWidth(grapheme)}
}

// SpaceCell returns a plain single-width space cell.
func SpaceCell() Cell {
	return Cell{Text: " ", Width: 1}
}

// IsSpace reports whether the cell holds a space character.
func (c Cell) IsSpace() bool {
	return c.Text == " "
}

// Row is an ordered sequence of grapheme cells.
type Row struct {
	cells []Cell
}

// New creates an empty row.
func New() Row {
	return Row{}
}

// FromCells creates a row owning a copy of the given cells.
func FromCells(cells []Cell) Row {
	owned := make([]Cell, len(cells))
	copy(owned, cells)
	return Row{cells: owned}
}

// FromString creates a row from text. The text is segmented into
// grapheme clusters; tab characters are expanded to space cells up to
// the next tab stop, so the stored row never contains a tab cell.
func FromString(text string, tabWidth int) Row {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	var r Row
	col := 0
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\t" {
			n := tabWidth - col%tabWidth
			for i := 0; i < n; i++ {
				r.cells = append(r.cells, SpaceCell())
			}
			col += n
			continue
		}
		cell := NewCell(cluster)
		r.cells = append(r.cells, cell)
		col += cell.Width
	}
	return r
}

// Len returns the number of cells (not bytes, not codepoints).
func (r Row) Len() int {
	return len(r.cells)
}

// Width returns the total display width of the row.
func (r Row) Width() int {
	w := 0
	for _, c := range r.cells {
		w += c.Width
	}
	return w
}

// WidthTo returns the display width of the first n cells.
// n is clamped to the row length.
func (r Row) WidthTo(n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(r.cells) {
		n = len(r.cells)
	}
	w := 0
	for _, c := range r.cells[:n] {
		w += c.Width
	}
	return w
}

// Cell returns the cell at index i, or a zero Cell if out of range.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.cells) {
		return Cell{}
	}
	return r.cells[i]
}

// Cells returns the row's cells. The slice must not be mutated.
func (r Row) Cells() []Cell {
	return r.cells
}

// Text returns the concatenated text of all cells.
func (r Row) Text() string {
	var sb strings.Builder
	for _, c := range r.cells {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// Insert places a cell at index i. Indices beyond the row length are
// clamped; the operation never fails. The new cell slice is freshly
// allocated so that clones taken earlier (history records) stay intact.
func (r *Row) Insert(i int, c Cell) {
	if i < 0 {
		i = 0
	}
	if i > len(r.cells) {
		i = len(r.cells)
	}
	cells := make([]Cell, len(r.cells)+1)
	copy(cells, r.cells[:i])
	cells[i] = c
	copy(cells[i+1:], r.cells[i:])
	r.cells = cells
}

// Remove deletes the cell at index i. Out-of-range indices are ignored.
// Like Insert, the result does not share storage with prior clones.
func (r *Row) Remove(i int) {
	if i < 0 || i >= len(r.cells) {
		return
	}
	cells := make([]Cell, len(r.cells)-1)
	copy(cells, r.cells[:i])
	copy(cells[i:], r.cells[i+1:])
	r.cells = cells
}

// Split divides the row at cell index i into a prefix and a suffix.
// The receiver is unchanged; both results own their cells.
func (r Row) Split(i int) (Row, Row) {
	if i < 0 {
		i = 0
	}
	if i > len(r.cells) {
		i = len(r.cells)
	}
	return FromCells(r.cells[:i]), FromCells(r.cells[i:])
}

// Concat returns a new row holding a's cells followed by b's.
func Concat(a, b Row) Row {
	cells := make([]Cell, 0, len(a.cells)+len(b.cells))
	cells = append(cells, a.cells...)
	cells = append(cells, b.cells...)
	return Row{cells: cells}
}

// Slice returns a copy of the cells in [from, to), clamped to the row.
func (r Row) Slice(from, to int) Row {
	if from < 0 {
		from = 0
	}
	if to > len(r.cells) {
		to = len(r.cells)
	}
	if from > to {
		from = to
	}
	return FromCells(r.cells[from:to])
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	return FromCells(r.cells)
}

// Equal reports whether two rows hold identical cells.
func (r Row) Equal(other Row) bool {
	if len(r.cells) != len(other.cells) {
		return false
	}
	for i, c := range r.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}
