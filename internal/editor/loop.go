package editor

import (
	"time"

	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
)

// tickInterval bounds how long a render waits behind a quiet event
// queue, and paces held-mouse replay.
const tickInterval = 25 * time.Millisecond

// Run drives the editor until the user quits. The backend must be
// initialized; the caller shuts it down afterwards.
func (e *Editor) Run() error {
	go func() {
		for {
			ev := e.term.PollEvent()
			e.events <- ev
			if ev.Type == backend.EventNone {
				// Backend is shutting down.
				return
			}
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for !e.quit {
		e.followCursor = true

		select {
		case ev := <-e.events:
			e.dispatch(ev)
		case cfg, ok := <-e.reload:
			if !ok {
				e.reload = nil
				continue
			}
			e.ApplyConfig(cfg)
		case <-ticker.C:
		}

		e.tick()
	}

	e.recordSession()
	return nil
}

// tick finishes one loop iteration: replay a held mouse button,
// refresh diagnostics, recompute the viewport, and paint.
func (e *Editor) tick() {
	if e.heldActive {
		e.applyHeld()
	}

	e.updateDebugLine()

	width, height := e.rend.Screen().Size()
	if width < renderer.MinWidth || height < renderer.MinHeight {
		e.rend.RenderTooSmall()
		return
	}

	if e.followCursor {
		e.updateViewbox()
	}
	e.rend.Render(e.docState())
}

func (e *Editor) dispatch(ev backend.Event) {
	switch ev.Type {
	case backend.EventKey:
		e.handleKey(ev)
	case backend.EventMouse:
		e.handleMouse(ev)
	case backend.EventResize:
		e.rend.Screen().Resize(ev.Width, ev.Height)
	case backend.EventPaste:
		e.paste(ev.PasteText)
	}
}
