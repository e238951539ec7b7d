// Package textutil provides text normalization helpers for scraped content.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Clean collapses whitespace runs into single spaces and trims the result.
// All-whitespace input yields the empty string.
func Clean(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// CleanPtr cleans s and returns nil when nothing remains.
func CleanPtr(s string) *string {
	cleaned := Clean(s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// Platforms abbreviate large counts with K/M/B suffixes ("1.2K followers").
var (
	suffixedNumberPattern = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*([kmb])`)
	decimalNumberPattern  = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)
	integerPattern        = regexp.MustCompile(`\d+`)
)

var suffixMultipliers = map[string]float64{
	"k": 1_000,
	"m": 1_000_000,
	"b": 1_000_000_000,
}

// ParseApproxCount extracts a count from display text like "1.2K", "2M
// followers", or "1,234". The first suffixed number wins, then the first
// decimal number, then the first bare integer. Returns false when the text
// holds nothing numeric.
func ParseApproxCount(s string) (int, bool) {
	if m := suffixedNumberPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err == nil {
			return int(n * suffixMultipliers[strings.ToLower(m[2])]), true
		}
	}

	if m := decimalNumberPattern.FindString(s); m != "" {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err == nil {
			return int(n), true
		}
	}

	if m := integerPattern.FindString(s); m != "" {
		n, err := strconv.Atoi(m)
		if err == nil {
			return n, true
		}
	}

	return 0, false
}

// ParseApproxCountPtr is ParseApproxCount with pointer absence semantics.
func ParseApproxCountPtr(s string) *int {
	n, ok := ParseApproxCount(s)
	if !ok {
		return nil
	}
	return &n
}
