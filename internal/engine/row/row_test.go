package row

import "testing"

func TestFromStringGraphemes(t *testing.T) {
	r := FromString("héllo", 4)

	if r.Len() != 5 {
		t.Errorf("expected 5 cells, got %d", r.Len())
	}

	if r.Text() != "héllo" {
		t.Errorf("round trip mismatch: %q", r.Text())
	}
}

func TestFromStringCombiningMark(t *testing.T) {
	// e + combining acute accent is one grapheme cluster.
	r := FromString("éx", 4)

	if r.Len() != 2 {
		t.Fatalf("expected 2 cells, got %d", r.Len())
	}

	if r.Cell(0).Text != "é" {
		t.Errorf("expected combined cluster, got %q", r.Cell(0).Text)
	}
}

func TestFromStringWideCells(t *testing.T) {
	r := FromString("a漢b", 4)

	if r.Len() != 3 {
		t.Fatalf("expected 3 cells, got %d", r.Len())
	}

	if r.Cell(1).Width != 2 {
		t.Errorf("expected width 2 for CJK cell, got %d", r.Cell(1).Width)
	}

	if r.Width() != 4 {
		t.Errorf("expected total width 4, got %d", r.Width())
	}
}

func TestFromStringTabExpansion(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cells int
	}{
		{"leading tab", "\tx", 5},
		{"tab at odd column", "ab\tx", 7},
		{"tab at stop", "abcd\tx", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromString(tt.text, 4)
			if r.Len() != tt.cells {
				t.Errorf("expected %d cells, got %d", tt.cells, r.Len())
			}
			for i := 0; i < r.Len(); i++ {
				if r.Cell(i).Text == "\t" {
					t.Error("stored row must not contain a tab cell")
				}
			}
		})
	}
}

func TestInsertRemove(t *testing.T) {
	r := FromString("ac", 4)
	r.Insert(1, NewCell("b"))

	if r.Text() != "abc" {
		t.Errorf("expected abc, got %q", r.Text())
	}

	r.Remove(0)
	if r.Text() != "bc" {
		t.Errorf("expected bc, got %q", r.Text())
	}

	// Out-of-range indices clamp or no-op rather than panic.
	r.Insert(100, NewCell("d"))
	if r.Text() != "bcd" {
		t.Errorf("expected bcd, got %q", r.Text())
	}
	r.Remove(100)
	if r.Text() != "bcd" {
		t.Errorf("remove past end should be ignored, got %q", r.Text())
	}
}

func TestSplitConcatRoundTrip(t *testing.T) {
	texts := []string{"", "a", "hello world", "漢字とカナ", "ééé"}

	for _, text := range texts {
		r := FromString(text, 4)
		for i := 0; i <= r.Len(); i++ {
			prefix, suffix := r.Split(i)
			back := Concat(prefix, suffix)
			if !back.Equal(r) {
				t.Errorf("split(%q, %d) + concat did not reproduce the row", text, i)
			}
		}
	}
}

func TestSplitIsolation(t *testing.T) {
	r := FromString("abcdef", 4)
	prefix, _ := r.Split(3)
	prefix.Insert(0, NewCell("x"))

	if r.Text() != "abcdef" {
		t.Errorf("mutating a split result changed the source row: %q", r.Text())
	}
}

func TestWidthTo(t *testing.T) {
	r := FromString("a漢b", 4)

	if got := r.WidthTo(2); got != 3 {
		t.Errorf("expected width 3 before index 2, got %d", got)
	}

	if got := r.WidthTo(100); got != 4 {
		t.Errorf("expected clamped width 4, got %d", got)
	}
}
