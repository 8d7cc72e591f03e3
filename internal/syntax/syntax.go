// Package syntax classifies document rows into highlight tokens.
// Classification is a pure function of the previous row's end state,
// the row's cells and a language ruleset, so multi-line comments and
// strings carry across row boundaries.
package syntax

import (
	"unicode"
	"unicode/utf8"

	"github.com/quill-editor/quill/internal/engine/row"
)

// Token is the highlight category of a single cell.
type Token int

const (
	TokenNormal Token = iota
	TokenNumber
	TokenMatch
	TokenString
	TokenMLString
	TokenComment
	TokenMLComment
	TokenKeyword1
	TokenKeyword2
	TokenKeyword3
)

// StateKind identifies the classifier state at a row boundary.
type StateKind int

const (
	StateNormal StateKind = iota
	StateInMLComment
	StateInString
	StateInMLString
)

// State is the classifier state carried between rows. Quote holds the
// opening quote while inside a single-line string.
type State struct {
	Kind  StateKind
	Quote string
}

// KeywordSet groups keywords sharing one highlight token.
type KeywordSet struct {
	Token Token
	Words []string
}

// Ruleset describes how one language is highlighted.
type Ruleset struct {
	Name string

	// HighlightNumbers enables numeric literal highlighting.
	HighlightNumbers bool

	// StringQuotes are the single-cell quotes opening a string.
	StringQuotes []string

	// LineCommentStarts open a comment running to end of row.
	LineCommentStarts []string

	// MLCommentStart/End delimit multi-line comments. Both empty
	// means the language has none.
	MLCommentStart string
	MLCommentEnd   string

	// MLStringDelim both opens and closes a multi-line string.
	MLStringDelim string

	Keywords []KeywordSet
}

// Classify tags every cell of a row and returns the state the row
// ends in. A single-line string never propagates: an unterminated
// quote resets to Normal at the row boundary.
func Classify(prev State, cells []row.Cell, rules *Ruleset) ([]Token, State) {
	tags := make([]Token, 0, len(cells))
	state := prev

scan:
	for len(tags) < len(cells) {
		i := len(tags)

		if state.Kind == StateNormal {
			for _, start := range rules.LineCommentStarts {
				if matchAt(cells, i, start) {
					for len(tags) < len(cells) {
						tags = append(tags, TokenComment)
					}
					break scan
				}
			}
		}

		// Multi-line comments and strings share one shape; only the
		// delimiters, state and token differ.
		multi := [2]struct {
			start, end string
			kind       StateKind
			token      Token
		}{
			{rules.MLCommentStart, rules.MLCommentEnd, StateInMLComment, TokenMLComment},
			{rules.MLStringDelim, rules.MLStringDelim, StateInMLString, TokenMLString},
		}
		for _, m := range multi {
			if m.start == "" {
				continue
			}
			if state.Kind == m.kind {
				if matchAt(cells, i, m.end) {
					for range m.end {
						tags = append(tags, m.token)
					}
					state = State{}
				} else {
					tags = append(tags, m.token)
				}
				continue scan
			}
			if state.Kind == StateNormal && matchAt(cells, i, m.start) {
				for range m.start {
					tags = append(tags, m.token)
				}
				state = State{Kind: m.kind}
				continue scan
			}
		}

		c := cells[i].Text

		// At this point the state is Normal or InString.
		if state.Kind == StateInString {
			tags = append(tags, TokenString)
			if c == state.Quote {
				state = State{}
			} else if c == `\` && i != len(cells)-1 {
				// The escaped cell is part of the string.
				tags = append(tags, TokenString)
			}
			continue
		}
		if containsString(rules.StringQuotes, c) {
			state = State{Kind: StateInString, Quote: c}
			tags = append(tags, TokenString)
			continue
		}

		prevSep := i == 0 || isSep(cells[i-1].Text)

		if rules.HighlightNumbers &&
			((isDigit(c) && prevSep) ||
				(i != 0 && tags[i-1] == TokenNumber && !prevSep && !isSep(c))) {
			tags = append(tags, TokenNumber)
			continue
		}

		if prevSep {
			for _, set := range rules.Keywords {
				for _, kw := range set.Words {
					// Whole words only, so "in" does not light up
					// inside "inside".
					if matchAt(cells, i, kw) && sepAfter(cells, i+cellLen(kw)) {
						for range kw {
							tags = append(tags, set.Token)
						}
						continue scan
					}
				}
			}
		}

		tags = append(tags, TokenNormal)
	}

	if state.Kind == StateInString {
		state = State{}
	}
	return tags, state
}

// matchAt reports whether the cells starting at i spell out s.
// Delimiters and keywords are ASCII, one byte per cell.
func matchAt(cells []row.Cell, i int, s string) bool {
	for j := 0; j < len(s); j++ {
		if i+j >= len(cells) || cells[i+j].Text != s[j:j+1] {
			return false
		}
	}
	return true
}

// cellLen returns how many cells an ASCII token occupies.
func cellLen(s string) int {
	return len(s)
}

// sepAfter reports whether position i is past the row end or holds a
// separator cell.
func sepAfter(cells []row.Cell, i int) bool {
	return i >= len(cells) || isSep(cells[i].Text)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// isSep reports whether a cell separates words: whitespace or
// punctuation other than underscore.
func isSep(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return false
	}
	if unicode.IsSpace(r) {
		return true
	}
	return r < utf8.RuneSelf && r != '_' && isASCIIPunct(byte(r))
}

func isASCIIPunct(b byte) bool {
	return (b >= '!' && b <= '/') || (b >= ':' && b <= '@') ||
		(b >= '[' && b <= '`') || (b >= '{' && b <= '~')
}
