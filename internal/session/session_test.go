package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRecordAndLookup(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "session.json"))

	pos := Position{CursorX: 7, CursorY: 12, ViewX: 0, ViewY: 5}
	if err := s.Record("/home/user/notes.txt", pos); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, ok := s.Lookup("/home/user/notes.txt")
	if !ok {
		t.Fatal("expected a saved position")
	}
	if got != pos {
		t.Errorf("got %+v, want %+v", got, pos)
	}
}

func TestLookupUnknownFile(t *testing.T) {
	s := Open("")
	if _, ok := s.Lookup("/no/such/file"); ok {
		t.Error("unknown file should not have a position")
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "session.json")

	s := Open(path)
	want := Position{CursorX: 3, CursorY: 1, ViewY: 9}
	if err := s.Record("/tmp/a.go", want); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened := Open(path)
	got, ok := reopened.Lookup("/tmp/a.go")
	if !ok {
		t.Fatal("position lost across reopen")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestOpenCorruptFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if _, ok := s.Lookup("/tmp/a.go"); ok {
		t.Error("corrupt store should be empty")
	}
	// Must still be usable for new records.
	if err := s.Record("/tmp/a.go", Position{CursorY: 2}); err != nil {
		t.Fatalf("Record after corrupt open: %v", err)
	}
}

func TestPathsWithDotsStaySeparate(t *testing.T) {
	s := Open("")
	if err := s.Record("/src/main.go", Position{CursorY: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Record("/src/main_test.go", Position{CursorY: 2}); err != nil {
		t.Fatal(err)
	}

	a, _ := s.Lookup("/src/main.go")
	b, _ := s.Lookup("/src/main_test.go")
	if a.CursorY != 1 || b.CursorY != 2 {
		t.Errorf("entries collided: %+v %+v", a, b)
	}
}
