// Package app wires the editor together: configuration, logging,
// session state, the terminal backend, and the interactive loop. It
// owns startup and shutdown, including panic recovery that restores
// the terminal before the report reaches the user.
package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quill-editor/quill/internal/clipboard"
	"github.com/quill-editor/quill/internal/config"
	"github.com/quill-editor/quill/internal/editor"
	"github.com/quill-editor/quill/internal/logging"
	"github.com/quill-editor/quill/internal/renderer"
	"github.com/quill-editor/quill/internal/renderer/backend"
	"github.com/quill-editor/quill/internal/session"
)

// Options configures one editor run.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string

	// LogFile and LogLevel override the config file's log settings.
	LogFile  string
	LogLevel string

	// Filename is the file to open. Empty starts untitled.
	Filename string
}

// Run starts the interactive editor and blocks until it exits.
func Run(opts Options) (err error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := openLogger(cfg, opts)
	if err != nil {
		return err
	}
	defer log.Close()
	log.Info("starting session %s", uuid.NewString())

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	// The terminal must be restored before a panic report hits
	// stderr, or the trace lands inside the raw-mode screen.
	defer func() {
		if r := recover(); r != nil {
			term.Shutdown()
			log.Error("panic: %v", r)
			panic(r)
		}
		term.Shutdown()
	}()

	reload, stopWatch, watchErr := config.Watch(configPath)
	if watchErr != nil {
		log.Warn("config watch disabled: %v", watchErr)
	} else {
		defer stopWatch()
	}

	rend := renderer.New(backend.NewScreen(term), renderer.ThemeFromOverrides(cfg.Theme))

	ed, err := editor.New(editor.Options{
		Backend:   term,
		Renderer:  rend,
		Clipboard: clipboard.New(term),
		Logger:    log.WithComponent("editor"),
		Sessions:  session.Open(session.DefaultPath()),
		Config:    cfg,
		Filename:  opts.Filename,
		Reload:    reload,
	})
	if err != nil {
		return err
	}

	return ed.Run()
}

func openLogger(cfg *config.Config, opts Options) (*logging.Logger, error) {
	path := cfg.LogFile
	if opts.LogFile != "" {
		path = opts.LogFile
	}
	if path == "" {
		return logging.Nop(), nil
	}

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	log, err := logging.OpenFile(path, logging.ParseLevel(level), "quill")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return log, nil
}
