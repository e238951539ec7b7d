package report

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/verify"
)

// Markdown renders a verification result as a Markdown document.
func Markdown(result *verify.Result) string {
	var b strings.Builder
	rep := result.Report

	b.WriteString("# Profile Verification Report")
	if result.UserID != "" {
		b.WriteString(": " + result.UserID)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%s **Trust Level: %s** (%d/100)\n\n",
		TrustGlyph(rep.TrustScore.Overall), TrustLevel(rep.TrustScore.Overall), rep.TrustScore.Overall)

	writeTrustTable(&b, rep.TrustScore)
	writeConsistencyScore(&b, rep.ConsistencyScore)
	writeProfileTable(&b, result.Profiles)
	writeAnalysisSummary(&b, rep)
	writeDiscrepancies(&b, rep.Discrepancies)
	writeList(&b, "Red Flags", "\U0001F6A9", rep.RedFlags)
	writeList(&b, "Strengths", "✅", rep.Strengths)
	writeCitations(&b, rep.Citations)
	writeFooter(&b)

	return b.String()
}

func writeTrustTable(b *strings.Builder, ts verify.TrustScore) {
	b.WriteString("## Trust Score\n\n")
	b.WriteString("| Component | Score | Assessment |\n")
	b.WriteString("|-----------|-------|------------|\n")
	fmt.Fprintf(b, "| Overall | %d | %s |\n", ts.Overall, Assessment(ts.Overall))
	fmt.Fprintf(b, "| Reputation | %d | %s |\n", ts.Reputation, Assessment(ts.Reputation))
	fmt.Fprintf(b, "| Consistency | %d | %s |\n", ts.Consistency, Assessment(ts.Consistency))
	fmt.Fprintf(b, "| Content Quality | %d | %s |\n\n", ts.ContentQuality, Assessment(ts.ContentQuality))
}

func writeConsistencyScore(b *strings.Builder, score int) {
	fmt.Fprintf(b, "**Cross-platform consistency:** %d/100 (%s)\n\n", score, Assessment(score))
}

func writeProfileTable(b *strings.Builder, profiles []*profile.Profile) {
	b.WriteString("## Profile Summary\n\n")
	b.WriteString("| Platform | Username | Name | Followers | Verified |\n")
	b.WriteString("|----------|----------|------|-----------|----------|\n")
	for _, p := range profiles {
		name := "-"
		if p.Name != nil {
			name = *p.Name
		}
		followers := "-"
		if p.Followers != nil {
			followers = fmt.Sprintf("%d", *p.Followers)
		}
		verified := "unknown"
		if p.Verified != nil {
			if *p.Verified {
				verified = "yes"
			} else {
				verified = "no"
			}
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n", p.Platform, p.Username, name, followers, verified)
	}
	b.WriteString("\n")
}

func writeAnalysisSummary(b *strings.Builder, rep *verify.Report) {
	b.WriteString("## Analysis Summary\n\n")
	fmt.Fprintf(b, "**Same-person confidence:** %d%%\n\n", rep.SamePersonConfidence)
	if rep.Summary != "" {
		b.WriteString(rep.Summary + "\n\n")
	}
}

func writeDiscrepancies(b *strings.Builder, discrepancies []verify.Discrepancy) {
	if len(discrepancies) == 0 {
		return
	}
	b.WriteString("## Discrepancies\n\n")
	b.WriteString("| | Field | Platforms | Values | Severity |\n")
	b.WriteString("|-|-------|-----------|--------|----------|\n")
	for _, d := range discrepancies {
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			severityGlyph(d.Severity), d.Field,
			strings.Join(d.Platforms, ", "), formatValues(d), d.Severity)
	}
	b.WriteString("\n")
}

func writeList(b *strings.Builder, heading, glyph string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s %s\n", glyph, item)
	}
	b.WriteString("\n")
}

func writeCitations(b *strings.Builder, citations []string) {
	if len(citations) == 0 {
		return
	}
	b.WriteString("## Citations\n\n")
	for i, c := range citations {
		fmt.Fprintf(b, "%d. %s\n", i+1, c)
	}
	b.WriteString("\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(`---

## How to Interpret

- **80-100 (Excellent / High trust):** strong cross-platform identity signals.
- **60-79 (Good / Moderate trust):** mostly consistent, minor gaps.
- **40-59 (Fair / Low trust):** notable gaps or conflicts; verify manually.
- **0-39 (Poor / Very Low trust):** weak or contradictory identity signals.

Scores are generated from public profile data and automated analysis.
They are advisory and not a substitute for manual review.
`)
}
