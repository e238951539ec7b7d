// Package verify defines the analysis result types shared by the pipeline.
package verify

import (
	"time"

	"github.com/codeGROOVE-dev/crosscheck/profile"
)

// Discrepancy severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// TrustScore holds the 0-100 component scores for a verified identity.
type TrustScore struct {
	Overall        int `json:"overall"`
	Reputation     int `json:"reputation"`
	Consistency    int `json:"consistency"`
	ContentQuality int `json:"content_quality"`
}

// Discrepancy records a field that disagrees across platforms. Values maps
// each involved platform to the value it reported.
type Discrepancy struct {
	Field     string            `json:"field"`
	Platforms []string          `json:"platforms"`
	Values    map[string]string `json:"values"`
	Severity  string            `json:"severity"`
}

// Report is the analysis verdict for a set of profiles. ConsistencyScore is
// produced independently of TrustScore.Consistency; the analysis step owns
// both.
type Report struct {
	TrustScore           TrustScore    `json:"trust_score"`
	ConsistencyScore     int           `json:"consistency_score"`
	SamePersonConfidence int           `json:"same_person_confidence"`
	Summary              string        `json:"summary"`
	Discrepancies        []Discrepancy `json:"discrepancies"`
	RedFlags             []string      `json:"red_flags"`
	Strengths            []string      `json:"strengths"`
	Citations            []string      `json:"citations"`
}

// Result bundles fetched profiles with their analysis for rendering.
type Result struct {
	Profiles    []*profile.Profile `json:"profiles"`
	Report      *Report            `json:"report"`
	GeneratedAt time.Time          `json:"generated_at"`
	UserID      string             `json:"user_id,omitempty"`
}
