package parser

import (
	"regexp"
	"strings"

	"payadvice/internal/normalize"
)

// fieldPattern pairs one extraction regex with a validity check on the
// captured value. Per-field pattern lists are ordered most specific first
// so precedence stays declarative data rather than control flow.
type fieldPattern struct {
	re       *regexp.Regexp
	validate func(string) bool
}

// firstMatch tries each pattern in order and returns the first captured
// value that passes its validator.
func firstMatch(text string, patterns []fieldPattern) (string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if v == "" {
			continue
		}
		if p.validate != nil && !p.validate(v) {
			continue
		}
		return v, true
	}
	return "", false
}

// allMatches collects every captured value across the pattern list, keeping
// document order and dropping duplicates.
func allMatches(text string, patterns []fieldPattern) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			v := strings.TrimSpace(m[1])
			if v == "" || seen[v] {
				continue
			}
			if p.validate != nil && !p.validate(v) {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// maxAmountByPriority returns the largest amount captured by the first
// pattern in the list that matches at all. Later patterns never override an
// earlier pattern's captures, so a labelled amount beats a stray
// currency-prefixed figure.
func maxAmountByPriority(text string, patterns []fieldPattern) float64 {
	for _, p := range patterns {
		ms := p.re.FindAllStringSubmatch(text, -1)
		if len(ms) == 0 {
			continue
		}
		var best float64
		for _, m := range ms {
			if v := normalize.Amount(m[1]); v > best {
				best = v
			}
		}
		return best
	}
	return 0.0
}

func lengthBetween(min, max int) func(string) bool {
	return func(s string) bool { return len(s) >= min && len(s) <= max }
}

// utrStopWords are short affirmation tokens that keyword-adjacent captures
// sometimes pick up instead of a reference number.
var utrStopWords = map[string]bool{
	"no": true, "yes": true, "na": true, "n/a": true, "not": true,
}

func validUTR(s string) bool {
	if len(s) < 10 || len(s) > 30 {
		return false
	}
	return !utrStopWords[strings.ToLower(s)]
}

// detectCurrency maps currency markers in the text to an ISO code,
// defaulting to INR for Indian bank advices.
func detectCurrency(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(text, "₹") || strings.Contains(upper, "INR"):
		return "INR"
	case strings.Contains(upper, "USD") || strings.Contains(text, "$"):
		return "USD"
	case strings.Contains(upper, "EUR") || strings.Contains(text, "€"):
		return "EUR"
	default:
		return "INR"
	}
}
