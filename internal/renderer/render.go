package renderer

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/renderer/backend"
	"github.com/quill-editor/quill/internal/renderer/core"
	"github.com/quill-editor/quill/internal/syntax"
)

// Minimum usable window size. Below this the document is replaced by
// a resize hint.
const (
	MinWidth  = 40
	MinHeight = 9
)

// dimAmount is how far underlay colors are pulled toward the
// background while a modal dialog is open.
const dimAmount = 0.55

// DocState is everything the renderer needs to paint one frame.
type DocState struct {
	Buf       *buffer.Buffer
	Highlight *syntax.Highlighter

	// Viewbox is the top-left visible position: Y in rows, X in
	// visual columns.
	Viewbox buffer.Position

	// Cursor is in cell coordinates; the renderer converts to
	// visual columns itself.
	Cursor buffer.Position

	// Selected marks an active selection covering [SelBegin, SelEnd).
	Selected         bool
	SelBegin, SelEnd buffer.Position

	Filename string
	Dirty    bool

	// Debug is the bottom diagnostics line.
	Debug string

	// Dim de-emphasizes the whole frame (modal underlay).
	Dim bool
}

// Renderer paints DocState frames onto a Screen.
type Renderer struct {
	screen *backend.Screen
	theme  *Theme
}

// New creates a renderer drawing on the given screen.
func New(screen *backend.Screen, theme *Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Screen exposes the underlying screen for overlay drawing.
func (r *Renderer) Screen() *backend.Screen {
	return r.screen
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// SetTheme replaces the active theme.
func (r *Renderer) SetTheme(t *Theme) {
	r.theme = t
}

// SidebarWidth returns the line-number sidebar width for the current
// scroll position: room for the largest visible line number, at least
// two digits, plus one column of padding on each side.
func SidebarWidth(viewboxY, height, rowCount int) int {
	maxLine := viewboxY + height - 2
	if maxLine > rowCount {
		maxLine = rowCount
	}
	digits := 2
	for n := maxLine; n > 99; n /= 10 {
		digits++
	}
	return digits + 2
}

// Render paints a complete frame and flushes it.
func (r *Renderer) Render(st *DocState) {
	r.Compose(st)
	r.Present()
}

// Compose paints the frame into the screen without flushing, so a
// caller can stack an overlay on top before Present.
func (r *Renderer) Compose(st *DocState) {
	width, height := r.screen.Size()
	sidebar := SidebarWidth(st.Viewbox.Y, height, st.Buf.RowCount())

	r.screen.BeginFrame()
	r.screen.Fill(0, 0, width, height, core.Cell{
		Text:  " ",
		Width: 1,
		Style: core.DefaultStyle().WithBackground(r.color(st, r.theme.Background)),
	})

	r.drawSidebar(st, sidebar, height)
	r.drawRows(st, sidebar, width, height)
	r.drawStatusBar(st, width, height)
	r.drawDebugLine(st, width, height)
	r.placeCursor(st, sidebar, width, height)
}

// Present flushes the composed frame.
func (r *Renderer) Present() {
	r.screen.EndFrame()
}

// color applies the modal dim to a theme color when needed.
func (r *Renderer) color(st *DocState, c core.Color) core.Color {
	if st.Dim {
		return c.Blend(r.theme.Background.Darken(0.5), dimAmount)
	}
	return c
}

func (r *Renderer) drawSidebar(st *DocState, sidebar, height int) {
	bg := r.color(st, r.theme.Background)
	for i := 0; i < height-2; i++ {
		lineIdx := st.Viewbox.Y + i
		var text string
		fg := r.color(st, r.theme.LineNum)
		if lineIdx < st.Buf.RowCount() {
			text = fmt.Sprintf("%*d ", sidebar-1, lineIdx+1)
			if lineIdx == st.Cursor.Y {
				fg = r.color(st, r.theme.LineNumActive)
			}
		} else {
			text = fmt.Sprintf("%*s ", sidebar-1, "~")
		}
		style := core.Style{Foreground: fg, Background: bg}
		r.screen.WriteString(0, i, text, style)
	}
}

func (r *Renderer) drawRows(st *DocState, sidebar, width, height int) {
	end := st.Viewbox.Y + height - 2
	if end > st.Buf.RowCount() {
		end = st.Buf.RowCount()
	}

	for y := st.Viewbox.Y; y < end; y++ {
		cells := st.Buf.Row(y).Cells()
		var tags []syntax.Token
		if st.Highlight != nil {
			tags = st.Highlight.Line(st.Buf, y)
		}

		dx := sidebar - st.Viewbox.X
		// The virtual cell past the row end makes a selected line
		// break visible.
		for i := 0; i <= len(cells); i++ {
			text, w := " ", 1
			if i < len(cells) {
				text, w = cells[i].Text, cells[i].Width
			}
			dx += w
			if dx >= width {
				break
			}
			// Cells straddling the sidebar edge are clipped whole.
			if dx < sidebar+w {
				continue
			}

			fg := r.theme.Text
			if i < len(tags) {
				fg = r.theme.TokenColor(tags[i])
			}
			bg := r.theme.Background
			if st.Selected {
				pos := buffer.Position{X: i, Y: y}
				if !pos.Less(st.SelBegin) && pos.Less(st.SelEnd) {
					bg = r.theme.BackgroundSelected
				}
			}

			style := core.Style{Foreground: r.color(st, fg), Background: r.color(st, bg)}
			r.writeCell(dx-w, y-st.Viewbox.Y, core.Cell{Text: text, Width: w, Style: style})
		}
	}
}

// writeCell places one document cell plus the continuation columns of
// a wide glyph.
func (r *Renderer) writeCell(x, y int, cell core.Cell) {
	r.screen.SetCell(x, y, cell)
	for i := 1; i < cell.Width; i++ {
		r.screen.SetCell(x+i, y, core.ContinuationCell())
	}
}

func (r *Renderer) drawStatusBar(st *DocState, width, height int) {
	y := height - 2
	if y < 0 {
		return
	}

	style := core.Style{
		Foreground: r.color(st, r.theme.TextStatus),
		Background: r.color(st, r.theme.BackgroundStatus),
	}
	r.screen.Fill(0, y, width, 1, core.Cell{Text: " ", Width: 1, Style: style})

	name := st.Filename
	if name == "" {
		name = "Untitled"
	}
	left := " " + name
	if st.Dirty {
		left += " (modified)"
	}
	right := fmt.Sprintf("Ln %d, Col %d ", st.Cursor.Y+1, st.Cursor.X+1)

	r.screen.WriteString(0, y, left, style)
	r.screen.WriteString(width-runewidth.StringWidth(right), y, right, style)
}

func (r *Renderer) drawDebugLine(st *DocState, width, height int) {
	if st.Debug == "" {
		return
	}
	style := core.Style{
		Foreground: r.color(st, r.theme.TextDimmed),
		Background: r.color(st, r.theme.Background),
	}
	r.screen.WriteString(0, height-1, st.Debug, style)
}

func (r *Renderer) placeCursor(st *DocState, sidebar, width, height int) {
	if st.Dim {
		// The modal on top owns the cursor.
		r.screen.HideCursor()
		return
	}
	visualX := st.Buf.Row(st.Cursor.Y).WidthTo(st.Cursor.X)
	x := visualX - st.Viewbox.X + sidebar
	y := st.Cursor.Y - st.Viewbox.Y
	if x >= 0 && x < width && y >= 0 && y < height {
		r.screen.SetCursor(x, y)
	} else {
		r.screen.HideCursor()
	}
}

// RenderTooSmall replaces the frame with a centered resize hint.
func (r *Renderer) RenderTooSmall() {
	width, height := r.screen.Size()
	base := core.DefaultStyle().WithBackground(r.theme.Background)

	r.screen.BeginFrame()
	r.screen.Fill(0, 0, width, height, core.Cell{Text: " ", Width: 1, Style: base})

	center := func(text string, y int, style core.Style) {
		x := (width - runewidth.StringWidth(text)) / 2
		if x < 0 {
			x = 0
		}
		r.screen.WriteString(x, y, text, style)
	}

	hint := fmt.Sprintf("Width = %d, Height = %d", width, height)
	center("Window too small", height/2-1, base.WithForeground(r.theme.Text).Bold())
	style := base.WithForeground(core.ColorGreen)
	if width < MinWidth || height < MinHeight {
		style = base.WithForeground(core.ColorRed)
	}
	center(hint, height/2, style)
	center(fmt.Sprintf("(min width = %d, height = %d)", MinWidth, MinHeight),
		height/2+1, base.WithForeground(r.theme.TextDimmed))

	r.screen.HideCursor()
	r.Present()
}
