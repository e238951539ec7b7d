// Package analyze submits fetched profiles to Gemini for identity and
// trust analysis, with a deterministic fallback when the API is unusable.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/textutil"
	"github.com/codeGROOVE-dev/crosscheck/verify"
)

const defaultModel = "gemini-2.0-flash"

// Generator produces a text reply for a prompt. The production
// implementation wraps the Gemini SDK; tests inject fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client runs profile analysis.
type Client struct {
	gen    Generator
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	gen    Generator
	logger *slog.Logger
	model  string
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithModel overrides the Gemini model name.
func WithModel(model string) Option {
	return func(c *config) { c.model = model }
}

// WithGenerator injects a text generator, bypassing the Gemini SDK.
func WithGenerator(gen Generator) Option {
	return func(c *config) { c.gen = gen }
}

// New creates an analysis client. The API key is required unless a
// custom Generator is injected.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), model: defaultModel}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	gen := cfg.gen
	if gen == nil {
		if apiKey == "" {
			return nil, errors.New("API key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		gen = &geminiGenerator{client: client, model: cfg.model}
	}

	return &Client{gen: gen, logger: logger}, nil
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Analyze produces a verification report for the given profiles. It never
// fails: any API or parse problem yields the deterministic fallback report.
func (c *Client) Analyze(ctx context.Context, profiles []*profile.Profile) *verify.Report {
	prompt, err := buildPrompt(profiles)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to build analysis prompt, using fallback", "error", err)
		return fallbackReport(profiles)
	}

	reply, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.logger.WarnContext(ctx, "analysis request failed, using fallback", "error", err)
		return fallbackReport(profiles)
	}

	report, err := parseReply(reply)
	if err != nil {
		c.logger.WarnContext(ctx, "could not parse analysis reply, using fallback", "error", err)
		return fallbackReport(profiles)
	}

	c.logger.InfoContext(ctx, "analysis complete",
		"overall", report.TrustScore.Overall,
		"confidence", report.SamePersonConfidence)
	return report
}

func buildPrompt(profiles []*profile.Profile) (string, error) {
	records, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing profiles: %w", err)
	}

	var b strings.Builder
	b.WriteString(`You are an identity verification analyst. Analyze the following social media profiles that are claimed to belong to the same person.

ANALYSIS GOALS:
1. Determine whether all profiles belong to the same person.
2. Check name, bio, location, employer, and website consistency across platforms.
3. Identify discrepancies between profiles and rate their severity.
4. Assess the overall reputation signal of each profile (followers, activity, verification).
5. Assess the quality of posted content samples.
6. Flag anything suspicious (impersonation signs, inconsistent identities, spam patterns).
7. Note strengths that support authenticity.

PROFILE DATA:
`)
	b.WriteString("```json\n")
	b.Write(records)
	b.WriteString("\n```\n\n")
	b.WriteString(`Respond with ONLY a JSON object in exactly this format, no other text:
{
  "trust_score": {"overall": 0-100, "reputation": 0-100, "consistency": 0-100, "content_quality": 0-100},
  "consistency_score": 0-100,
  "same_person_confidence": 0-100,
  "summary": "two or three sentence overall assessment",
  "discrepancies": [{"field": "...", "platforms": ["..."], "values": {"platform": "value reported there"}, "severity": "low|medium|high"}],
  "red_flags": ["..."],
  "strengths": ["..."],
  "citations": ["..."]
}

ANALYSIS GUIDELINES:
- Score conservatively; absence of data lowers confidence but is not itself a red flag.
- A missing field on one platform is not a discrepancy; conflicting values are.
- Cite the specific profile fields that drove each conclusion in citations.`)

	return b.String(), nil
}

// replyPayload mirrors the model's JSON reply. Numeric fields are pointers
// so missing values can fall back to a neutral 50.
type replyPayload struct {
	TrustScore struct {
		Overall        *int `json:"overall"`
		Reputation     *int `json:"reputation"`
		Consistency    *int `json:"consistency"`
		ContentQuality *int `json:"content_quality"`
	} `json:"trust_score"`
	ConsistencyScore     *int                 `json:"consistency_score"`
	SamePersonConfidence *int                 `json:"same_person_confidence"`
	Summary              string               `json:"summary"`
	Discrepancies        []verify.Discrepancy `json:"discrepancies"`
	RedFlags             []string             `json:"red_flags"`
	Strengths            []string             `json:"strengths"`
	Citations            []string             `json:"citations"`
}

// parseReply extracts the JSON object from a model reply. Models often wrap
// JSON in prose or markdown fences, so the parse spans the first opening
// brace through the last closing brace.
func parseReply(reply string) (*verify.Report, error) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end < start {
		return nil, errors.New("no JSON object in reply")
	}

	var payload replyPayload
	if err := json.Unmarshal([]byte(reply[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("parsing reply JSON: %w", err)
	}

	report := &verify.Report{
		TrustScore: verify.TrustScore{
			Overall:        scoreOrDefault(payload.TrustScore.Overall),
			Reputation:     scoreOrDefault(payload.TrustScore.Reputation),
			Consistency:    scoreOrDefault(payload.TrustScore.Consistency),
			ContentQuality: scoreOrDefault(payload.TrustScore.ContentQuality),
		},
		ConsistencyScore:     scoreOrDefault(payload.ConsistencyScore),
		SamePersonConfidence: scoreOrDefault(payload.SamePersonConfidence),
		Summary:              payload.Summary,
		Discrepancies:        payload.Discrepancies,
		RedFlags:             payload.RedFlags,
		Strengths:            payload.Strengths,
		Citations:            payload.Citations,
	}
	return report, nil
}

// scoreOrDefault clamps a score to [0,100], treating absent values as a
// neutral 50.
func scoreOrDefault(v *int) int {
	if v == nil {
		return 50
	}
	switch {
	case *v < 0:
		return 0
	case *v > 100:
		return 100
	default:
		return *v
	}
}

// fallbackReport is the deterministic assessment used when analysis is
// unavailable. All trust subscores sit at a neutral 50; name agreement
// across platforms is the one signal cheap enough to compute locally, and
// it feeds the standalone consistency score.
func fallbackReport(profiles []*profile.Profile) *verify.Report {
	report := &verify.Report{
		TrustScore: verify.TrustScore{
			Overall:        50,
			Reputation:     50,
			Consistency:    50,
			ContentQuality: 50,
		},
		ConsistencyScore:     nameConsistencyScore(profiles),
		SamePersonConfidence: 50,
		Summary:              "Fallback analysis due to API error. Manual review recommended.",
		RedFlags:             []string{"Analysis unavailable - using fallback assessment"},
	}
	if len(profiles) >= 2 {
		report.Strengths = []string{"Multiple platforms present"}
	}
	return report
}

// nameConsistencyScore returns 80 when every profile that carries a name
// agrees (case-insensitive), 30 otherwise.
func nameConsistencyScore(profiles []*profile.Profile) int {
	var names []string
	for _, p := range profiles {
		if p.Name != nil {
			if name := strings.ToLower(textutil.Clean(*p.Name)); name != "" {
				names = append(names, name)
			}
		}
	}
	for _, name := range names {
		if name != names[0] {
			return 30
		}
	}
	return 80
}
