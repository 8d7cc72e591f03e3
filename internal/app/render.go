package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/quill-editor/quill/internal/config"
	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
	"github.com/quill-editor/quill/internal/syntax"
)

// renderFallbackWidth is used when stdout is not a terminal.
const (
	renderFallbackWidth  = 80
	renderFallbackHeight = 24
)

// RenderFile paints the file once with syntax highlighting and writes
// the frame to w as ANSI escape sequences. The grid takes the size of
// the attached terminal when there is one.
func RenderFile(filename string, w io.Writer) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("render %s: %w", filename, err)
	}

	width, height := renderFallbackWidth, renderFallbackHeight
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			width, height = tw, th
		}
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		cfg = config.Default()
	}

	stream := backend.NewStream(w, width, height)
	rend := renderer.New(backend.NewScreen(stream), renderer.ThemeFromOverrides(cfg.Theme))

	buf := buffer.FromString(string(data), cfg.TabWidth)
	st := &renderer.DocState{
		Buf:       buf,
		Highlight: syntax.NewHighlighter(syntax.Detect(filename, data)),
		Filename:  filename,
	}
	rend.Render(st)
	return nil
}
