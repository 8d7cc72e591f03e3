package renderer

import (
	"strings"
	"testing"

	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/renderer/backend"
)

func testRenderer(width, height int) (*Renderer, *backend.NullBackend) {
	null := backend.NewNullBackend(width, height)
	screen := backend.NewScreen(null)
	return New(screen, DefaultTheme()), null
}

func TestSidebarWidth(t *testing.T) {
	tests := []struct {
		viewboxY, height, rows int
		want                   int
	}{
		{0, 9, 2, 4},       // two-digit minimum
		{0, 9, 1000, 4},    // only 7 lines visible
		{95, 9, 1000, 5},   // line 102 visible, three digits
		{995, 9, 10000, 6}, // four digits
	}
	for _, tt := range tests {
		if got := SidebarWidth(tt.viewboxY, tt.height, tt.rows); got != tt.want {
			t.Errorf("SidebarWidth(%d,%d,%d) = %d, want %d",
				tt.viewboxY, tt.height, tt.rows, got, tt.want)
		}
	}
}

func TestRenderDocumentAndSidebar(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{
		Buf:      buffer.FromString("hello\nworld", 4),
		Filename: "demo.txt",
	}
	r.Render(st)

	if got := null.Line(0); !strings.HasPrefix(got, "  1 hello") {
		t.Errorf("line 0 = %q", got)
	}
	if got := null.Line(1); !strings.HasPrefix(got, "  2 world") {
		t.Errorf("line 1 = %q", got)
	}
	// Rows past the end of the document show a tilde.
	if got := null.Line(2); !strings.HasPrefix(got, "  ~ ") {
		t.Errorf("line 2 = %q", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{
		Buf:      buffer.FromString("hello", 4),
		Filename: "demo.txt",
		Dirty:    true,
		Cursor:   buffer.Position{X: 2, Y: 0},
	}
	r.Render(st)

	bar := null.Line(7)
	if !strings.Contains(bar, "demo.txt (modified)") {
		t.Errorf("status bar = %q", bar)
	}
	if !strings.Contains(bar, "Ln 1, Col 3") {
		t.Errorf("status bar = %q", bar)
	}
}

func TestRenderUntitled(t *testing.T) {
	r, null := testRenderer(40, 9)
	r.Render(&DocState{Buf: buffer.New()})

	if !strings.Contains(null.Line(7), "Untitled") {
		t.Errorf("status bar = %q", null.Line(7))
	}
}

func TestRenderSelectionBackground(t *testing.T) {
	r, null := testRenderer(40, 9)
	theme := r.Theme()
	st := &DocState{
		Buf:      buffer.FromString("hello\nworld", 4),
		Selected: true,
		SelBegin: buffer.Position{X: 1, Y: 0},
		SelEnd:   buffer.Position{X: 2, Y: 1},
	}
	r.Render(st)

	// Cell (1,0) "e" is inside the selection; (0,0) "h" is not.
	if got := null.Cell(5, 0).Style.Background; got != theme.BackgroundSelected {
		t.Errorf("selected cell bg = %v", got)
	}
	if got := null.Cell(4, 0).Style.Background; got == theme.BackgroundSelected {
		t.Error("cell before selection must not be highlighted")
	}

	// The virtual cell past "hello" shows the selected line break.
	if got := null.Cell(9, 0).Style.Background; got != theme.BackgroundSelected {
		t.Errorf("virtual newline cell bg = %v", got)
	}

	// On the second row the selection ends before cell 2.
	if got := null.Cell(6, 1).Style.Background; got == theme.BackgroundSelected {
		t.Error("cell at selection end must not be highlighted")
	}
}

func TestRenderCursorPlacement(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{
		Buf:    buffer.FromString("hello", 4),
		Cursor: buffer.Position{X: 3, Y: 0},
	}
	r.Render(st)

	x, y, visible := null.CursorPosition()
	if !visible || x != 7 || y != 0 {
		t.Errorf("cursor = (%d,%d) visible=%v, want (7,0)", x, y, visible)
	}
}

func TestRenderWideGlyphCursor(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{
		Buf:    buffer.FromString("漢字x", 4),
		Cursor: buffer.Position{X: 2, Y: 0},
	}
	r.Render(st)

	// Two wide cells before the cursor: visual column 4, plus sidebar.
	x, _, visible := null.CursorPosition()
	if !visible || x != 8 {
		t.Errorf("cursor x = %d, want 8", x)
	}
}

func TestRenderHorizontalScrollClipsCells(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{
		Buf:     buffer.FromString("abcdefgh", 4),
		Viewbox: buffer.Position{X: 3, Y: 0},
		Cursor:  buffer.Position{X: 8, Y: 0},
	}
	r.Render(st)

	if got := null.Line(0); !strings.HasPrefix(got, "  1 defgh") {
		t.Errorf("line 0 = %q", got)
	}
}

func TestRenderDimUnderlay(t *testing.T) {
	r, null := testRenderer(40, 9)
	st := &DocState{Buf: buffer.FromString("hello", 4), Dim: true}
	r.Render(st)

	dimmed := null.Cell(4, 0).Style.Foreground
	if dimmed == r.Theme().Text {
		t.Error("dim frame must not use the full-intensity text color")
	}
	if _, _, visible := null.CursorPosition(); visible {
		t.Error("dim frame must hide the document cursor")
	}
}

func TestRenderTooSmall(t *testing.T) {
	r, null := testRenderer(30, 7)
	r.RenderTooSmall()

	var found bool
	for y := 0; y < 7; y++ {
		if strings.Contains(null.Line(y), "Window too small") {
			found = true
		}
	}
	if !found {
		t.Error("resize hint not rendered")
	}
}
