// Package main is the entry point for the quill editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quill-editor/quill/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		opts        app.Options
		renderMode  bool
		showVersion bool
	)

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.LogFile, "log-file", "", "Append logs to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&renderMode, "render", false, "Render the file to stdout once and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - a terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                 Open an untitled buffer\n")
		fmt.Fprintf(os.Stderr, "  quill file.go         Open a file\n")
		fmt.Fprintf(os.Stderr, "  quill -render file.go Print a highlighted frame\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s (%s, built %s)\n", version, commit, date)
		return 0
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return 1
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		flag.Usage()
		return 1
	}
	opts.Filename = flag.Arg(0)

	if renderMode {
		if opts.Filename == "" {
			fmt.Fprintln(os.Stderr, "Error: -render needs a file")
			return 1
		}
		if err := app.RenderFile(opts.Filename, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
