package buffer

import (
	"testing"

	"github.com/quill-editor/quill/internal/engine/row"
)

func TestNewBufferInvariant(t *testing.T) {
	b := New()

	if b.RowCount() != 1 {
		t.Errorf("new buffer must hold exactly one row, got %d", b.RowCount())
	}

	if b.Row(0).Len() != 0 {
		t.Error("the initial row must be empty")
	}
}

func TestFromStringLF(t *testing.T) {
	b := FromString("one\ntwo\nthree", 4)

	if b.RowCount() != 3 {
		t.Fatalf("expected 3 rows, got %d", b.RowCount())
	}

	if b.LineEnding() != LineEndingLF {
		t.Errorf("expected LF convention, got %v", b.LineEnding())
	}

	if b.Text() != "one\ntwo\nthree" {
		t.Errorf("round trip mismatch: %q", b.Text())
	}
}

func TestFromStringCRLFDetection(t *testing.T) {
	b := FromString("one\r\ntwo\r\nthree", 4)

	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("expected CRLF convention, got %v", b.LineEnding())
	}

	if b.Row(0).Text() != "one" {
		t.Errorf("carriage return not stripped: %q", b.Row(0).Text())
	}

	if b.Text() != "one\r\ntwo\r\nthree" {
		t.Errorf("save must reconstruct CRLF: %q", b.Text())
	}
}

func TestRemoveLastRowKeepsInvariant(t *testing.T) {
	b := New()
	b.RemoveRow(0)

	if b.RowCount() != 1 {
		t.Errorf("buffer must never be empty, got %d rows", b.RowCount())
	}
}

func TestInsertRemoveSwapRows(t *testing.T) {
	b := FromString("a\nb\nc", 4)

	b.InsertRow(1, row.FromString("x", 4))
	if b.Row(1).Text() != "x" || b.RowCount() != 4 {
		t.Fatalf("insert failed: %q rows=%d", b.Row(1).Text(), b.RowCount())
	}

	b.SwapRows(0, 1)
	if b.Row(0).Text() != "x" || b.Row(1).Text() != "a" {
		t.Errorf("swap failed: %q %q", b.Row(0).Text(), b.Row(1).Text())
	}

	b.RemoveRow(0)
	if b.Row(0).Text() != "a" || b.RowCount() != 3 {
		t.Errorf("remove failed: %q rows=%d", b.Row(0).Text(), b.RowCount())
	}
}

func TestDuplicateRange(t *testing.T) {
	b := FromString("a\nb\nc", 4)
	b.DuplicateRange(0, 1)

	want := []string{"a", "b", "a", "b", "c"}
	if b.RowCount() != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), b.RowCount())
	}
	for i, w := range want {
		if b.Row(i).Text() != w {
			t.Errorf("row %d: expected %q, got %q", i, w, b.Row(i).Text())
		}
	}
}

func TestCloneRowsIsolation(t *testing.T) {
	b := FromString("abc", 4)
	snapshot := b.CloneRows()

	r := b.Row(0)
	r.Insert(0, row.NewCell("x"))
	b.SetRow(0, r)

	if snapshot[0].Text() != "abc" {
		t.Errorf("clone changed by later edit: %q", snapshot[0].Text())
	}
}

func TestRevisionChangesOnMutation(t *testing.T) {
	b := FromString("abc", 4)
	rev := b.Revision()

	b.InsertRow(0, row.New())
	if b.Revision() == rev {
		t.Error("revision should change after mutation")
	}
}
