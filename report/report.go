// Package report renders verification results as Markdown and PDF files.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/crosscheck/verify"
)

// bucket maps a minimum score to its presentation labels.
type bucket struct {
	min        int
	assessment string
	trustLevel string
	glyph      string
}

// scoreBuckets is ordered highest threshold first.
var scoreBuckets = []bucket{
	{80, "Excellent", "High", "\U0001F7E2"}, // green circle
	{60, "Good", "Moderate", "\U0001F7E1"},  // yellow circle
	{40, "Fair", "Low", "\U0001F7E0"},       // orange circle
	{0, "Poor", "Very Low", "\U0001F534"},   // red circle
}

func bucketFor(score int) bucket {
	for _, b := range scoreBuckets {
		if score >= b.min {
			return b
		}
	}
	return scoreBuckets[len(scoreBuckets)-1]
}

// Assessment returns the qualitative label for a component score.
func Assessment(score int) string { return bucketFor(score).assessment }

// TrustLevel returns the trust label for an overall score.
func TrustLevel(score int) string { return bucketFor(score).trustLevel }

// TrustGlyph returns the colored indicator for an overall score.
func TrustGlyph(score int) string { return bucketFor(score).glyph }

// severityGlyphs decorate discrepancy rows.
var severityGlyphs = map[string]string{
	verify.SeverityLow:    "⚠️", // warning sign
	verify.SeverityMedium: "\U0001F536",   // orange diamond
	verify.SeverityHigh:   "\U0001F534",   // red circle
}

func severityGlyph(severity string) string {
	if g, ok := severityGlyphs[severity]; ok {
		return g
	}
	return severityGlyphs[verify.SeverityLow]
}

// formatValues renders a discrepancy's per-platform values as
// "platform: value" pairs. The Platforms slice fixes the order; platforms
// present only in the map follow, sorted.
func formatValues(d verify.Discrepancy) string {
	var parts []string
	seen := make(map[string]bool, len(d.Platforms))
	for _, p := range d.Platforms {
		if v, ok := d.Values[p]; ok {
			parts = append(parts, p+": "+v)
			seen[p] = true
		}
	}
	var rest []string
	for p := range d.Values {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	for _, p := range rest {
		parts = append(parts, p+": "+d.Values[p])
	}
	return strings.Join(parts, " / ")
}

// Filename builds the report file name for a format extension ("md" or
// "pdf"): verification_report[_<user_id>]_<YYYYMMDD_HHMMSS>.<ext>.
func Filename(userID, ext string, now time.Time) string {
	if userID != "" {
		return fmt.Sprintf("verification_report_%s_%s.%s", userID, now.Format("20060102_150405"), ext)
	}
	return fmt.Sprintf("verification_report_%s.%s", now.Format("20060102_150405"), ext)
}
