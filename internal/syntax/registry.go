package syntax

import (
	_ "embed"

	"github.com/go-enry/go-enry/v2"
	"github.com/tidwall/gjson"
)

//go:embed rulesets.json
var rulesetJSON string

// Lookup returns the ruleset for a language name, or nil when the
// language is not bundled.
func Lookup(name string) *Ruleset {
	entry := gjson.Get(rulesetJSON, name)
	if !entry.Exists() {
		return nil
	}

	rs := &Ruleset{
		Name:             name,
		HighlightNumbers: entry.Get("numbers").Bool(),
		StringQuotes:     stringList(entry.Get("string_quotes")),
		LineCommentStarts: stringList(
			entry.Get("line_comments")),
		MLStringDelim: entry.Get("ml_string").String(),
	}

	if delims := entry.Get("ml_comment"); delims.Exists() {
		pair := delims.Array()
		if len(pair) == 2 {
			rs.MLCommentStart = pair[0].String()
			rs.MLCommentEnd = pair[1].String()
		}
	}

	for _, group := range []struct {
		token Token
		key   string
	}{
		{TokenKeyword1, "keywords_1"},
		{TokenKeyword2, "keywords_2"},
		{TokenKeyword3, "keywords_3"},
	} {
		if words := stringList(entry.Get(group.key)); len(words) > 0 {
			rs.Keywords = append(rs.Keywords, KeywordSet{Token: group.token, Words: words})
		}
	}
	return rs
}

func stringList(v gjson.Result) []string {
	arr := v.Array()
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		out = append(out, e.String())
	}
	return out
}

// Detect picks a ruleset for a file from its name and content.
// Returns nil when the language is unknown or not bundled.
func Detect(filename string, content []byte) *Ruleset {
	lang := enry.GetLanguage(filename, content)
	if lang == "" {
		return nil
	}
	return Lookup(lang)
}
