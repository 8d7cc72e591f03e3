// Package session persists per-file editor state between runs: the
// cursor position and the viewport offset, keyed by absolute path.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Position is the saved state for one file.
type Position struct {
	CursorX int `json:"cursor_x"`
	CursorY int `json:"cursor_y"`
	ViewX   int `json:"view_x"`
	ViewY   int `json:"view_y"`
}

// Store reads and writes the session file. The file is a single JSON
// document mapping absolute paths to positions.
type Store struct {
	path string
	doc  string
}

// DefaultPath returns the conventional session file location for the
// current user.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "session.json")
}

// Open loads the session file at path. A missing or unreadable file
// yields an empty store; session state is never worth failing startup
// over.
func Open(path string) *Store {
	s := &Store{path: path, doc: "{}"}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil || !gjson.ValidBytes(data) {
		return s
	}
	s.doc = string(data)
	return s
}

// Lookup returns the saved position for the named file.
func (s *Store) Lookup(filename string) (Position, bool) {
	key, err := pathKey(filename)
	if err != nil {
		return Position{}, false
	}
	entry := gjson.Get(s.doc, key)
	if !entry.Exists() {
		return Position{}, false
	}
	return Position{
		CursorX: int(entry.Get("cursor_x").Int()),
		CursorY: int(entry.Get("cursor_y").Int()),
		ViewX:   int(entry.Get("view_x").Int()),
		ViewY:   int(entry.Get("view_y").Int()),
	}, true
}

// Record stores the position for the named file in memory. Save writes
// it out.
func (s *Store) Record(filename string, pos Position) error {
	key, err := pathKey(filename)
	if err != nil {
		return err
	}
	doc := s.doc
	for field, value := range map[string]int{
		"cursor_x": pos.CursorX,
		"cursor_y": pos.CursorY,
		"view_x":   pos.ViewX,
		"view_y":   pos.ViewY,
	} {
		doc, err = sjson.Set(doc, key+"."+field, value)
		if err != nil {
			return fmt.Errorf("record session: %w", err)
		}
	}
	s.doc = doc
	return nil
}

// Save writes the session document to disk, creating the parent
// directory if needed.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(s.doc), 0o644); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// pathKey builds the gjson path for a file, escaping the separators in
// the absolute path so it stays a single map key.
func pathKey(filename string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("session key: %w", err)
	}
	escaped := ""
	for _, r := range abs {
		if r == '.' || r == '*' || r == '?' || r == '\\' || r == '|' || r == '#' || r == '@' {
			escaped += "\\"
		}
		escaped += string(r)
	}
	return "files." + escaped, nil
}
