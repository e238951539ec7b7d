package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/verify"
)

func TestBuckets(t *testing.T) {
	tests := []struct {
		score      int
		assessment string
		trustLevel string
	}{
		{100, "Excellent", "High"},
		{80, "Excellent", "High"},
		{79, "Good", "Moderate"},
		{60, "Good", "Moderate"},
		{59, "Fair", "Low"},
		{40, "Fair", "Low"},
		{39, "Poor", "Very Low"},
		{0, "Poor", "Very Low"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			if got := Assessment(tt.score); got != tt.assessment {
				t.Errorf("Assessment(%d) = %q, want %q", tt.score, got, tt.assessment)
			}
			if got := TrustLevel(tt.score); got != tt.trustLevel {
				t.Errorf("TrustLevel(%d) = %q, want %q", tt.score, got, tt.trustLevel)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	if got := Filename("", "md", now); got != "verification_report_20250314_150926.md" {
		t.Errorf("Filename without user id = %q", got)
	}
	if got := Filename("jane", "pdf", now); got != "verification_report_jane_20250314_150926.pdf" {
		t.Errorf("Filename with user id = %q", got)
	}
}

func sampleResult() *verify.Result {
	return &verify.Result{
		Profiles: []*profile.Profile{
			{
				Platform:  "github",
				URL:       "https://github.com/jane",
				Username:  "jane",
				Name:      profile.String("Jane Doe"),
				Followers: profile.Int(4000),
			},
			{
				Platform: "twitter",
				URL:      "https://x.com/jane",
				Username: "@jane",
				Name:     profile.String("Jane Doe"),
				Verified: profile.Bool(true),
			},
		},
		Report: &verify.Report{
			TrustScore:           verify.TrustScore{Overall: 85, Reputation: 72, Consistency: 90, ContentQuality: 61},
			ConsistencyScore:     88,
			SamePersonConfidence: 95,
			Summary:              "Profiles almost certainly belong to the same person.",
			Discrepancies: []verify.Discrepancy{
				{
					Field:     "location",
					Platforms: []string{"github", "twitter"},
					Values:    map[string]string{"github": "Berlin", "twitter": "Munich"},
					Severity:  verify.SeverityLow,
				},
			},
			RedFlags:  []string{"None observed"},
			Strengths: []string{"Names agree on every platform"},
			Citations: []string{"github.name", "twitter.name"},
		},
		GeneratedAt: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		UserID:      "jane",
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	result := sampleResult()
	md := Markdown(result)

	// Every trust score integer must survive into the rendered table.
	rows := []string{
		"| Overall | 85 | Excellent |",
		"| Reputation | 72 | Good |",
		"| Consistency | 90 | Excellent |",
		"| Content Quality | 61 | Good |",
	}
	for _, row := range rows {
		if !strings.Contains(md, row) {
			t.Errorf("markdown missing trust row %q", row)
		}
	}

	for _, want := range []string{
		"# Profile Verification Report: jane",
		"**Trust Level: High** (85/100)",
		"**Cross-platform consistency:** 88/100 (Excellent)",
		"**Same-person confidence:** 95%",
		"| github | jane | Jane Doe | 4000 | unknown |",
		"| twitter | @jane | Jane Doe | - | yes |",
		"location",
		"github: Berlin / twitter: Munich",
		"## How to Interpret",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	result := sampleResult()
	result.Report.Discrepancies = nil
	result.Report.RedFlags = nil
	result.UserID = ""

	md := Markdown(result)
	if strings.Contains(md, "## Discrepancies") {
		t.Error("empty discrepancies section should be omitted")
	}
	if strings.Contains(md, "## Red Flags") {
		t.Error("empty red flags section should be omitted")
	}
	if strings.Contains(md, "Report:") {
		t.Error("title must not carry a user id suffix when unset")
	}
}

func TestFormatValues(t *testing.T) {
	d := verify.Discrepancy{
		Platforms: []string{"twitter", "github"},
		Values: map[string]string{
			"github":    "Berlin",
			"twitter":   "Munich",
			"instagram": "Hamburg",
		},
	}
	got := formatValues(d)
	want := "twitter: Munich / github: Berlin / instagram: Hamburg"
	if got != want {
		t.Errorf("formatValues() = %q, want %q", got, want)
	}
}

func TestPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := PDF(sampleResult(), path); err != nil {
		t.Fatalf("PDF() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("output is not a PDF document")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain ascii", "plain ascii"},
		{"curly ‘quotes’ and “doubles”", `curly 'quotes' and "doubles"`},
		{"dash – and — end", "dash - and - end"},
		{"ellipsis…", "ellipsis..."},
		{"café", "caf?"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeText(tt.in); got != tt.want {
				t.Errorf("sanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
