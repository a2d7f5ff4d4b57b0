package parser

import (
	"regexp"
	"strings"
)

// keywordPattern builds the "keyword, optional :/=, rest of line" regex used
// by all keyword extraction.
func keywordPattern(keyword string, caseSensitive bool) *regexp.Regexp {
	// Whitespace stays on the keyword's line so an empty remainder never
	// swallows the following line.
	expr := regexp.QuoteMeta(keyword) + `[ \t]*[:=]?[ \t]*([^\n\r]+)`
	if !caseSensitive {
		expr = `(?i)` + expr
	}
	return regexp.MustCompile(expr)
}

// keywordValue trims a captured remainder. When the remainder is empty the
// optional separator backtracks into the capture, so leading ':'/'=' runs
// are stripped too; a capture that was only separators is empty.
func keywordValue(capture string) string {
	v := strings.TrimSpace(capture)
	v = strings.TrimLeft(v, ":=")
	return strings.TrimSpace(v)
}

// ExtractByKeyword returns the trimmed remainder of the first line containing
// keyword (optionally followed by ':' or '='). ok is false when the keyword
// does not occur or the remainder is empty.
func ExtractByKeyword(text, keyword string, caseSensitive bool) (string, bool) {
	m := keywordPattern(keyword, caseSensitive).FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	v := keywordValue(m[1])
	return v, v != ""
}

// ExtractAllByKeyword applies the same pattern to every occurrence of
// keyword, returning all non-empty trimmed remainders in document order.
func ExtractAllByKeyword(text, keyword string, caseSensitive bool) []string {
	var out []string
	for _, m := range keywordPattern(keyword, caseSensitive).FindAllStringSubmatch(text, -1) {
		if v := keywordValue(m[1]); v != "" {
			out = append(out, v)
		}
	}
	return out
}
