// Package tui implements the editor's modal dialogs: confirmations,
// text prompts, and alerts. Each dialog runs its own event loop and
// draws a centered box over the dimmed document.
package tui

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
	"github.com/quill-editor/quill/internal/renderer/core"
)

// Answer is the outcome of a confirmation dialog.
type Answer int

const (
	// AnswerCancel dismisses the dialog without choosing.
	AnswerCancel Answer = iota
	// AnswerNo declines.
	AnswerNo
	// AnswerYes accepts.
	AnswerYes
)

// Confirm shows a yes/no question and blocks until the user answers.
// Y or Enter accepts, N declines, Escape cancels. A closed event
// channel cancels.
func Confirm(r *renderer.Renderer, underlay *renderer.DocState, events <-chan backend.Event, question string) Answer {
	lines := []string{question, "", "(Y)es  (N)o  Esc"}
	draw := func() { drawBox(r, underlay, lines, -1, 0) }
	draw()

	for ev := range events {
		switch ev.Type {
		case backend.EventResize:
			r.Screen().Resize(ev.Width, ev.Height)
			draw()
		case backend.EventKey:
			switch {
			case ev.Key == backend.KeyRune && (ev.Rune == 'y' || ev.Rune == 'Y'):
				return AnswerYes
			case ev.Key == backend.KeyEnter:
				return AnswerYes
			case ev.Key == backend.KeyRune && (ev.Rune == 'n' || ev.Rune == 'N'):
				return AnswerNo
			case ev.Key == backend.KeyEscape:
				return AnswerCancel
			}
		}
	}
	return AnswerCancel
}

// Prompt shows a single-line text input and blocks until the user
// submits or cancels. Returns false on cancel. Enter with empty input
// is ignored.
func Prompt(r *renderer.Renderer, underlay *renderer.DocState, events <-chan backend.Event, title string) (string, bool) {
	input := ""
	draw := func() {
		drawBox(r, underlay, []string{title, "", input}, 2, runewidth.StringWidth(input))
	}
	draw()

	for ev := range events {
		switch ev.Type {
		case backend.EventResize:
			r.Screen().Resize(ev.Width, ev.Height)
		case backend.EventKey:
			switch {
			case ev.Key == backend.KeyRune && ev.Mod&(backend.ModCtrl|backend.ModAlt) == 0:
				input += string(ev.Rune)
			case ev.Key == backend.KeyBackspace:
				input = trimLastCluster(input)
			case ev.Key == backend.KeyEnter:
				if input != "" {
					return input, true
				}
			case ev.Key == backend.KeyEscape:
				return "", false
			}
		case backend.EventPaste:
			input += ev.PasteText
		default:
			continue
		}
		draw()
	}
	return "", false
}

// Alert shows a message and blocks until any key dismisses it.
func Alert(r *renderer.Renderer, underlay *renderer.DocState, events <-chan backend.Event, message string) {
	lines := []string{message, "", "press any key"}
	draw := func() { drawBox(r, underlay, lines, -1, 0) }
	draw()

	for ev := range events {
		switch ev.Type {
		case backend.EventResize:
			r.Screen().Resize(ev.Width, ev.Height)
			draw()
		case backend.EventKey:
			return
		}
	}
}

// drawBox composes the dimmed document, draws a bordered box with the
// given lines centered over it, and presents the frame. cursorLine >= 0
// places the terminal cursor on that line at cursorCol.
func drawBox(r *renderer.Renderer, underlay *renderer.DocState, lines []string, cursorLine, cursorCol int) {
	underlay.Dim = true
	r.Compose(underlay)

	screen := r.Screen()
	theme := r.Theme()
	width, height := screen.Size()

	inner := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > inner {
			inner = w
		}
	}
	boxW := inner + 4
	if boxW > width {
		boxW = width
	}
	boxH := len(lines) + 2
	x0 := (width - boxW) / 2
	y0 := (height - boxH) / 2

	style := core.NewStyle(theme.Text).WithBackground(theme.Background)

	screen.Fill(x0, y0, boxW, boxH, core.NewStyledCell(" ", style))
	drawBorder(screen, x0, y0, boxW, boxH, style)

	for i, line := range lines {
		screen.WriteString(x0+2, y0+1+i, runewidth.Truncate(line, boxW-4, "…"), style)
	}

	if cursorLine >= 0 {
		screen.SetCursor(x0+2+cursorCol, y0+1+cursorLine)
	}
	r.Present()
}

func drawBorder(screen *backend.Screen, x0, y0, w, h int, style core.Style) {
	for x := x0 + 1; x < x0+w-1; x++ {
		screen.WriteString(x, y0, "─", style)
		screen.WriteString(x, y0+h-1, "─", style)
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		screen.WriteString(x0, y, "│", style)
		screen.WriteString(x0+w-1, y, "│", style)
	}
	screen.WriteString(x0, y0, "┌", style)
	screen.WriteString(x0+w-1, y0, "┐", style)
	screen.WriteString(x0, y0+h-1, "└", style)
	screen.WriteString(x0+w-1, y0+h-1, "┘", style)
}

// trimLastCluster drops the final grapheme cluster, so a backspace
// removes a combining sequence in one keystroke.
func trimLastCluster(s string) string {
	prefix := 0
	rest := s
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if len(rest) > 0 {
			prefix += len(cluster)
		}
	}
	return s[:prefix]
}
