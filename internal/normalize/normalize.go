// Package normalize canonicalizes the date and amount strings that appear in
// payment advice documents. Both functions absorb malformed input: they log a
// diagnostic and return a zero value instead of failing the parse.
package normalize

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateFormats are tried strictly, most common layout first.
var dateFormats = []string{
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02",
}

// datePatterns recover day-first dates embedded in longer strings. Single
// digit days and months are accepted; the strict layouts above are not.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),
	regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),
}

var amountJunk = regexp.MustCompile(`[₹$€£,\s]`)

// Date parses a day-first date string (DD.MM.YYYY, DD/MM/YYYY, DD-MM-YYYY)
// or an already-normalized YYYY-MM-DD. When no layout matches exactly it
// scans for a date-shaped substring and validates the triple by calendar
// construction. Returns ok=false for anything unparsable.
func Date(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	for _, re := range datePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes out-of-range components; reject those.
		if t.Day() == day && int(t.Month()) == month && t.Year() == year {
			return t, true
		}
	}

	log.Printf("normalize: could not parse date %q", s)
	return time.Time{}, false
}

// DateString is Date rendered as YYYY-MM-DD, or "" when invalid.
func DateString(s string) string {
	t, ok := Date(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// Amount strips currency glyphs, grouping commas and whitespace, then parses
// the remainder as a decimal number. Returns 0.0 on empty or invalid input.
func Amount(s string) float64 {
	cleaned := amountJunk.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0.0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Printf("normalize: could not parse amount %q", s)
		return 0.0
	}
	f, _ := d.Float64()
	return f
}
