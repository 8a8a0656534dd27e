package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	footnoteRe   = regexp.MustCompile(`\[\d+\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`[^\d]`)
	nonFloatRe   = regexp.MustCompile(`[^\d.]`)
)

// cleanText strips footnote markers like "[3]", collapses interior
// whitespace runs and trims the result.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = footnoteRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// parseOptionalInt parses an integer out of messy cell text by dropping
// every non-digit rune, so "1,234" becomes 1234. Returns nil when no
// digits remain ("—", "", "n/a"). Never fails hard: unknown stays
// distinguishable from zero.
func parseOptionalInt(value string) *int {
	cleaned := nonDigitRe.ReplaceAllString(value, "")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &n
}

// parseOptionalFloat parses a percentage-style number, keeping only
// digits and the decimal point and rounding to 2 decimal places.
// Returns nil on anything unparseable.
func parseOptionalFloat(value string) *float64 {
	cleaned := nonFloatRe.ReplaceAllString(value, "")
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	f = math.Round(f*100) / 100
	return &f
}

// containsAny reports whether text contains at least one of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
