// Package renderer composes editor frames: document area with syntax
// and selection styling, line-number sidebar, status bar and debug
// line. It draws into a backend.Screen; damage diffing happens there.
package renderer

import (
	"github.com/quill-editor/quill/internal/renderer/core"
	"github.com/quill-editor/quill/internal/syntax"
)

// Theme holds every color the renderer uses.
type Theme struct {
	Background         core.Color
	BackgroundSelected core.Color
	BackgroundStatus   core.Color
	TextStatus         core.Color
	Text               core.Color
	TextDimmed         core.Color
	LineNum            core.Color
	LineNumActive      core.Color

	tokens [tokenCount]core.Color
}

const tokenCount = int(syntax.TokenKeyword3) + 1

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Background:         core.ColorFromRGB(34, 34, 34),
		BackgroundSelected: core.ColorFromRGB(38, 79, 120),
		BackgroundStatus:   core.ColorFromRGB(166, 226, 46),
		TextStatus:         core.ColorFromRGB(34, 34, 34),
		Text:               core.ColorFromRGB(204, 204, 204),
		TextDimmed:         core.ColorFromRGB(126, 126, 126),
		LineNum:            core.ColorFromRGB(126, 126, 126),
		LineNumActive:      core.ColorFromRGB(204, 204, 204),
	}
	t.tokens[syntax.TokenNormal] = core.ColorFromRGB(240, 240, 240)
	t.tokens[syntax.TokenNumber] = core.ColorFromRGB(181, 206, 168)
	t.tokens[syntax.TokenMatch] = t.Text
	t.tokens[syntax.TokenString] = core.ColorFromRGB(206, 145, 120)
	t.tokens[syntax.TokenMLString] = core.ColorFromRGB(215, 186, 125)
	t.tokens[syntax.TokenComment] = core.ColorFromRGB(106, 153, 85)
	t.tokens[syntax.TokenMLComment] = core.ColorFromRGB(99, 142, 80)
	t.tokens[syntax.TokenKeyword1] = core.ColorFromRGB(86, 156, 214)
	t.tokens[syntax.TokenKeyword2] = core.ColorFromRGB(78, 201, 176)
	t.tokens[syntax.TokenKeyword3] = core.ColorFromRGB(195, 133, 190)
	return t
}

// TokenColor returns the foreground color for a highlight token.
func (t *Theme) TokenColor(tok syntax.Token) core.Color {
	if int(tok) < 0 || int(tok) >= tokenCount {
		return t.Text
	}
	return t.tokens[tok]
}

// SetTokenColor overrides the color of one highlight token.
func (t *Theme) SetTokenColor(tok syntax.Token, c core.Color) {
	if int(tok) >= 0 && int(tok) < tokenCount {
		t.tokens[tok] = c
	}
}

// ThemeFromOverrides returns the default theme with named colors
// replaced by "#rrggbb" values. Unknown names and malformed values are
// ignored.
func ThemeFromOverrides(overrides map[string]string) *Theme {
	t := DefaultTheme()
	for name, hex := range overrides {
		c, err := core.ColorFromHex(hex)
		if err != nil {
			continue
		}
		switch name {
		case "background":
			t.Background = c
		case "background_selected":
			t.BackgroundSelected = c
		case "background_status":
			t.BackgroundStatus = c
		case "text":
			t.Text = c
		case "text_status":
			t.TextStatus = c
		case "text_dimmed":
			t.TextDimmed = c
		case "line_number":
			t.LineNum = c
		case "line_number_active":
			t.LineNumActive = c
		case "token_normal":
			t.SetTokenColor(syntax.TokenNormal, c)
		case "token_number":
			t.SetTokenColor(syntax.TokenNumber, c)
		case "token_string":
			t.SetTokenColor(syntax.TokenString, c)
		case "token_ml_string":
			t.SetTokenColor(syntax.TokenMLString, c)
		case "token_comment":
			t.SetTokenColor(syntax.TokenComment, c)
		case "token_ml_comment":
			t.SetTokenColor(syntax.TokenMLComment, c)
		case "token_keyword_1":
			t.SetTokenColor(syntax.TokenKeyword1, c)
		case "token_keyword_2":
			t.SetTokenColor(syntax.TokenKeyword2, c)
		case "token_keyword_3":
			t.SetTokenColor(syntax.TokenKeyword3, c)
		}
	}
	return t
}
