package backend

import "github.com/quill-editor/quill/internal/renderer/core"

// Screen provides double-buffered frame composition over a Backend.
// Each frame is drawn in full into the front grid; EndFrame compares
// it against the last flushed grid and pushes only the cells that
// changed, so a frame identical to the previous one costs nothing.
type Screen struct {
	backend Backend

	width, height int
	front         [][]core.Cell // frame being composed
	last          [][]core.Cell // what the backend currently shows

	cursorX, cursorY int
	cursorVisible    bool

	// full forces every cell out on the next EndFrame, set after a
	// resize when the backend's contents are unknown.
	full bool
}

// NewScreen creates a screen sized to the backend.
func NewScreen(b Backend) *Screen {
	width, height := b.Size()
	s := &Screen{backend: b}
	s.setSize(width, height)
	return s
}

func (s *Screen) setSize(width, height int) {
	s.width = width
	s.height = height
	s.front = blankGrid(width, height)
	s.last = blankGrid(width, height)
	s.full = true
}

// Size returns the screen dimensions.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// Resize reallocates both grids for the new dimensions.
// The next EndFrame repaints everything.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.setSize(width, height)
}

// BeginFrame resets the composition grid to blank cells.
// Every frame draws the whole screen; damage tracking happens on
// EndFrame, not at the draw calls.
func (s *Screen) BeginFrame() {
	empty := core.EmptyCell()
	for y := range s.front {
		for x := range s.front[y] {
			s.front[y][x] = empty
		}
	}
	s.cursorVisible = false
}

// SetCell places one cell in the frame.
// Out-of-bounds positions are silently dropped.
func (s *Screen) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.front[y][x] = cell
}

// Write places a run of cells starting at (x, y) and returns the
// column after the last cell written.
func (s *Screen) Write(x, y int, cells []core.Cell) int {
	for _, c := range cells {
		s.SetCell(x, y, c)
		x++
	}
	return x
}

// WriteString places a styled string at (x, y) and returns the column
// after its last cell.
func (s *Screen) WriteString(x, y int, text string, style core.Style) int {
	return s.Write(x, y, core.CellsFromString(text, style))
}

// Fill paints a rectangle given by its top-left corner and size.
func (s *Screen) Fill(x, y, width, height int, cell core.Cell) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetCell(col, row, cell)
		}
	}
}

// SetCursor records where the text cursor lands after this frame.
func (s *Screen) SetCursor(x, y int) {
	s.cursorX = x
	s.cursorY = y
	s.cursorVisible = true
}

// HideCursor hides the text cursor for this frame.
func (s *Screen) HideCursor() {
	s.cursorVisible = false
}

// EndFrame pushes the damage to the backend and flushes it.
// Cells are visited in row-major order so stream backends can
// coalesce cursor movement.
func (s *Screen) EndFrame() {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.full || s.front[y][x] != s.last[y][x] {
				s.backend.SetCell(x, y, s.front[y][x])
				s.last[y][x] = s.front[y][x]
			}
		}
	}
	s.full = false

	if s.cursorVisible {
		s.backend.SetCursor(s.cursorX, s.cursorY)
	} else {
		s.backend.HideCursor()
	}
	s.backend.Flush()
}
