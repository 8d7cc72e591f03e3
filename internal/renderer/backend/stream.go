package backend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quill-editor/quill/internal/renderer/core"
)

// Stream is a Backend that encodes cell updates as ANSI escape
// sequences on a writer. It is used for non-interactive rendering,
// where the output is a pipe or a file rather than a live terminal.
//
// The encoder keeps the byte stream minimal: cursor moves are only
// emitted when a cell does not continue at the position the previous
// one ended, and SGR sequences only when the style differs from the
// one already in effect.
type Stream struct {
	w             *bufio.Writer
	width, height int

	outX, outY int
	style      core.Style
	styleKnown bool

	events chan Event
}

// NewStream creates a stream backend with a fixed logical size.
func NewStream(w io.Writer, width, height int) *Stream {
	return &Stream{
		w:      bufio.NewWriter(w),
		width:  width,
		height: height,
		events: make(chan Event, 1),
	}
}

func (s *Stream) Init() error {
	s.outX, s.outY = 0, 0
	s.styleKnown = false
	return nil
}

func (s *Stream) Shutdown() {
	s.reset()
	_ = s.w.Flush()
}

func (s *Stream) Size() (int, int) {
	return s.width, s.height
}

func (s *Stream) SetCell(x, y int, cell core.Cell) {
	// The columns behind a wide cluster were already advanced over
	// when the cluster itself was written.
	if cell.IsContinuation() {
		return
	}

	s.moveTo(x, y)
	s.setStyle(cell.Style)
	_, _ = s.w.WriteString(cell.Text)
	s.outX += cell.Width
}

// moveTo positions the output cursor, writing nothing when the
// previous cell already left it at the target.
func (s *Stream) moveTo(x, y int) {
	if x == s.outX && y == s.outY {
		return
	}
	if x == 0 && y == s.outY+1 {
		_, _ = s.w.WriteString("\r\n")
	} else {
		_, _ = fmt.Fprintf(s.w, "\x1b[%d;%dH", y+1, x+1)
	}
	s.outX, s.outY = x, y
}

// setStyle emits an SGR sequence when the wanted style is not
// already in effect.
func (s *Stream) setStyle(style core.Style) {
	if s.styleKnown && style == s.style {
		return
	}
	_, _ = s.w.WriteString(encodeSGR(style))
	s.style = style
	s.styleKnown = true
}

func (s *Stream) reset() {
	if s.styleKnown {
		_, _ = s.w.WriteString("\x1b[0m")
		s.styleKnown = false
	}
}

func (s *Stream) SetCursor(x, y int) {
	s.moveTo(x, y)
}

func (s *Stream) HideCursor() {}

// Flush ends the frame: the style is reset so the stream never
// bleeds color past a frame boundary, and buffered bytes go out.
func (s *Stream) Flush() {
	s.reset()
	_ = s.w.Flush()
}

func (s *Stream) PollEvent() Event {
	return <-s.events
}

func (s *Stream) PostEvent(event Event) {
	select {
	case s.events <- event:
	default:
	}
}

func (s *Stream) SetClipboard(string) {}

func (s *Stream) Suspend() error { return nil }
func (s *Stream) Resume() error  { return nil }

// encodeSGR renders a style as a single SGR sequence, starting from
// a reset so stale attributes never survive a transition.
func encodeSGR(style core.Style) string {
	params := []string{"0"}

	if style.Attributes.Has(core.AttrBold) {
		params = append(params, "1")
	}
	if style.Attributes.Has(core.AttrDim) {
		params = append(params, "2")
	}
	if style.Attributes.Has(core.AttrItalic) {
		params = append(params, "3")
	}
	if style.Attributes.Has(core.AttrUnderline) {
		params = append(params, "4")
	}
	if style.Attributes.Has(core.AttrReverse) {
		params = append(params, "7")
	}
	if style.Attributes.Has(core.AttrStrikethrough) {
		params = append(params, "9")
	}

	if !style.Foreground.IsDefault() {
		params = append(params, "38", "2",
			strconv.Itoa(int(style.Foreground.R)),
			strconv.Itoa(int(style.Foreground.G)),
			strconv.Itoa(int(style.Foreground.B)))
	}
	if !style.Background.IsDefault() {
		params = append(params, "48", "2",
			strconv.Itoa(int(style.Background.R)),
			strconv.Itoa(int(style.Background.G)),
			strconv.Itoa(int(style.Background.B)))
	}

	return "\x1b[" + strings.Join(params, ";") + "m"
}
