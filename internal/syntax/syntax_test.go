package syntax

import (
	"testing"

	"github.com/quill-editor/quill/internal/engine/buffer"
	"github.com/quill-editor/quill/internal/engine/row"
)

func goRules(t *testing.T) *Ruleset {
	t.Helper()
	rs := Lookup("Go")
	if rs == nil {
		t.Fatal("Go ruleset missing")
	}
	return rs
}

func classifyText(t *testing.T, rules *Ruleset, prev State, text string) ([]Token, State) {
	t.Helper()
	r := row.FromString(text, 4)
	tags, end := Classify(prev, r.Cells(), rules)
	if len(tags) != r.Len() {
		t.Fatalf("classify %q: %d tags for %d cells", text, len(tags), r.Len())
	}
	return tags, end
}

func TestClassifyLineComment(t *testing.T) {
	tags, end := classifyText(t, goRules(t), State{}, "x := 1 // done")
	for i := 7; i < len(tags); i++ {
		if tags[i] != TokenComment {
			t.Errorf("cell %d = %v, want comment", i, tags[i])
		}
	}
	if tags[0] != TokenNormal {
		t.Errorf("cell 0 = %v, want normal", tags[0])
	}
	if end != (State{}) {
		t.Errorf("end state = %+v", end)
	}
}

func TestClassifyKeywordsWholeWord(t *testing.T) {
	rules := goRules(t)

	tags, _ := classifyText(t, rules, State{}, "for range")
	for i := 0; i < 3; i++ {
		if tags[i] != TokenKeyword1 {
			t.Errorf("'for' cell %d = %v", i, tags[i])
		}
	}
	for i := 4; i < 9; i++ {
		if tags[i] != TokenKeyword1 {
			t.Errorf("'range' cell %d = %v", i, tags[i])
		}
	}

	// "format" must not light up its "for" prefix.
	tags, _ = classifyText(t, rules, State{}, "format")
	for i, tag := range tags {
		if tag != TokenNormal {
			t.Errorf("cell %d = %v, want normal", i, tag)
		}
	}
}

func TestClassifyNumbers(t *testing.T) {
	rules := goRules(t)

	tags, _ := classifyText(t, rules, State{}, "x = 1024")
	for i := 4; i < 8; i++ {
		if tags[i] != TokenNumber {
			t.Errorf("digit cell %d = %v", i, tags[i])
		}
	}

	// Digits inside an identifier are not numbers.
	tags, _ = classifyText(t, rules, State{}, "utf8")
	for i, tag := range tags {
		if tag != TokenNormal {
			t.Errorf("cell %d = %v, want normal", i, tag)
		}
	}
}

func TestClassifyString(t *testing.T) {
	tags, end := classifyText(t, goRules(t), State{}, `a := "hi" + b`)
	for i := 5; i < 9; i++ {
		if tags[i] != TokenString {
			t.Errorf("cell %d = %v, want string", i, tags[i])
		}
	}
	if tags[10] != TokenNormal {
		t.Errorf("cell 10 = %v, want normal", tags[10])
	}
	if end != (State{}) {
		t.Errorf("end state = %+v", end)
	}
}

func TestClassifyStringEscape(t *testing.T) {
	// The escaped quote must not terminate the string.
	tags, _ := classifyText(t, goRules(t), State{}, `"a\"b"`)
	for i, tag := range tags {
		if tag != TokenString {
			t.Errorf("cell %d = %v, want string", i, tag)
		}
	}
}

func TestUnterminatedStringDoesNotPropagate(t *testing.T) {
	_, end := classifyText(t, goRules(t), State{}, `"open`)
	if end != (State{}) {
		t.Errorf("string state leaked across row boundary: %+v", end)
	}
}

func TestClassifyMultiLineComment(t *testing.T) {
	rules := goRules(t)

	tags, end := classifyText(t, rules, State{}, "a /* open")
	if end.Kind != StateInMLComment {
		t.Fatalf("end state = %+v", end)
	}
	for i := 2; i < len(tags); i++ {
		if tags[i] != TokenMLComment {
			t.Errorf("cell %d = %v, want ml comment", i, tags[i])
		}
	}

	// The middle row is entirely inside the comment.
	tags, end = classifyText(t, rules, end, "still inside")
	if end.Kind != StateInMLComment {
		t.Fatalf("end state = %+v", end)
	}
	for i, tag := range tags {
		if tag != TokenMLComment {
			t.Errorf("cell %d = %v, want ml comment", i, tag)
		}
	}

	tags, end = classifyText(t, rules, end, "done */ x")
	if end != (State{}) {
		t.Fatalf("end state = %+v", end)
	}
	if tags[5] != TokenMLComment || tags[6] != TokenMLComment {
		t.Error("closing delimiter must be part of the comment")
	}
	if tags[8] != TokenNormal {
		t.Errorf("cell after close = %v, want normal", tags[8])
	}
}

func TestClassifyMultiLineString(t *testing.T) {
	rules := Lookup("Python")
	if rules == nil {
		t.Fatal("Python ruleset missing")
	}

	_, end := classifyText(t, rules, State{}, `doc = """start`)
	if end.Kind != StateInMLString {
		t.Fatalf("end state = %+v", end)
	}
	tags, end := classifyText(t, rules, end, `end"""`)
	if end != (State{}) {
		t.Fatalf("end state = %+v", end)
	}
	for i, tag := range tags {
		if tag != TokenMLString {
			t.Errorf("cell %d = %v, want ml string", i, tag)
		}
	}
}

func TestLookupUnknownLanguage(t *testing.T) {
	if rs := Lookup("Befunge"); rs != nil {
		t.Errorf("expected nil ruleset, got %q", rs.Name)
	}
}

func TestDetectByFilename(t *testing.T) {
	rs := Detect("main.go", []byte("package main\n"))
	if rs == nil || rs.Name != "Go" {
		t.Fatalf("Detect = %+v", rs)
	}
}

func TestHighlighterCarriesStateAcrossRows(t *testing.T) {
	buf := buffer.FromString("/* one\ntwo\nthree */ x", 4)
	h := NewHighlighter(goRules(t))

	tags := h.Line(buf, 1)
	for i, tag := range tags {
		if tag != TokenMLComment {
			t.Errorf("row 1 cell %d = %v, want ml comment", i, tag)
		}
	}

	tags = h.Line(buf, 2)
	if tags[len(tags)-1] != TokenNormal {
		t.Error("text after the comment close must be normal")
	}
}

func TestHighlighterInvalidate(t *testing.T) {
	buf := buffer.FromString("/* one\ntwo", 4)
	h := NewHighlighter(goRules(t))

	if tags := h.Line(buf, 1); tags[0] != TokenMLComment {
		t.Fatal("row 1 must start inside the comment")
	}

	// Closing the comment on row 0 must reclassify row 1.
	buf.SetRow(0, row.FromString("/* one */", 4))
	h.Invalidate(0)
	if tags := h.Line(buf, 1); tags[0] != TokenNormal {
		t.Error("row 1 must be normal after the comment is closed")
	}
}

func TestHighlighterNilRuleset(t *testing.T) {
	buf := buffer.FromString("anything", 4)
	h := NewHighlighter(nil)
	if tags := h.Line(buf, 0); tags != nil {
		t.Errorf("expected nil tags, got %v", tags)
	}
}
