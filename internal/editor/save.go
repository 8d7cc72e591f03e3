package editor

import (
	"errors"
	"os"
	"syscall"

	"github.com/quill-editor/quill/internal/syntax"
	"github.com/quill-editor/quill/internal/tui"
)

// saveFile writes the document out, prompting for a filename when the
// document is untitled. On failure the dirty flag stays set and the
// reason is shown in an alert.
func (e *Editor) saveFile() {
	e.amendHistory()

	if e.filename == "" {
		name, ok := tui.Prompt(e.rend, e.docState(), e.events, "Save as:")
		if !ok {
			return
		}
		e.filename = name
		e.highlight = syntax.NewHighlighter(syntax.Detect(name, []byte(e.buf.Text())))
	}

	if err := os.WriteFile(e.filename, []byte(e.buf.Text()), 0o644); err != nil {
		e.log.Error("save %s: %v", e.filename, err)
		tui.Alert(e.rend, e.docState(), e.events, "Save failed: "+saveErrorMessage(err))
		return
	}

	e.dirty = false
	e.commitHistory()
	e.log.Info("saved %s (%d rows)", e.filename, e.buf.RowCount())
}

// confirmExit asks whether to save when the document has unsaved
// changes, then quits. Cancelling keeps editing; a failed or aborted
// save also keeps editing.
func (e *Editor) confirmExit() {
	if !e.dirty {
		e.quit = true
		return
	}

	switch tui.Confirm(e.rend, e.docState(), e.events, "Save changes?") {
	case tui.AnswerYes:
		e.saveFile()
		if !e.dirty {
			e.quit = true
		}
	case tui.AnswerNo:
		e.quit = true
	case tui.AnswerCancel:
	}
}

// saveErrorMessage maps a write error to the message shown to the
// user.
func saveErrorMessage(err error) string {
	switch {
	case errors.Is(err, os.ErrPermission):
		return "permission denied"
	case errors.Is(err, os.ErrNotExist):
		return "file not found"
	case errors.Is(err, os.ErrExist):
		return "file already exists"
	case errors.Is(err, syscall.EISDIR):
		return "is a directory"
	case errors.Is(err, syscall.EROFS):
		return "read-only file system"
	case errors.Is(err, syscall.ENOSPC):
		return "storage full"
	case errors.Is(err, syscall.ETIMEDOUT):
		return "timed out"
	case errors.Is(err, syscall.EPIPE):
		return "broken pipe"
	default:
		return "unknown error"
	}
}
