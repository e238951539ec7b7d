// Package profile defines the common types for social media profile extraction.
package profile

import "errors"

// Supported platform names.
const (
	PlatformGitHub    = "github"
	PlatformLinkedIn  = "linkedin"
	PlatformTwitter   = "twitter"
	PlatformInstagram = "instagram"
)

// Common errors returned by platform packages.
var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrProfileNotFound = errors.New("profile not found")
	ErrRateLimited     = errors.New("rate limited")
)

// MaxPostsSample caps how many recent post snippets a profile carries.
const MaxPostsSample = 10

// Profile represents extracted data from a social media profile.
// Optional fields are pointers: nil means the platform never exposed the
// value, which is distinct from an empty or zero value.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Profile struct {
	// Metadata
	Platform      string `json:"platform"`
	URL           string `json:"url"`
	Authenticated bool   `json:"authenticated,omitempty"` // Whether login cookies were used

	// Core profile data
	Username   string  `json:"username"`
	Name       *string `json:"name,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	Location   *string `json:"location,omitempty"`
	Website    *string `json:"website,omitempty"`
	JobTitle   *string `json:"job_title,omitempty"`
	Company    *string `json:"company,omitempty"`
	Email      *string `json:"email,omitempty"`
	ImageURL   *string `json:"profile_image_url,omitempty"`
	JoinedDate *string `json:"joined_date,omitempty"`

	// Audience stats
	Followers  *int  `json:"followers,omitempty"`
	Following  *int  `json:"following,omitempty"`
	PostsCount *int  `json:"posts_count,omitempty"`
	Verified   *bool `json:"verified,omitempty"` // nil when the platform gave no signal

	// Recent activity snippets, at most MaxPostsSample entries.
	PostsSample []string `json:"posts_sample,omitempty"`

	// Platform-specific extras (public_repos, hireable, account type, etc.)
	Fields map[string]string `json:"additional_data,omitempty"`
}

// AddPost appends a post snippet unless the sample is already full.
func (p *Profile) AddPost(snippet string) {
	if snippet == "" || len(p.PostsSample) >= MaxPostsSample {
		return
	}
	p.PostsSample = append(p.PostsSample, snippet)
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// DisplayName returns the profile name, falling back to the username.
func (p *Profile) DisplayName() string {
	if p.Name != nil && *p.Name != "" {
		return *p.Name
	}
	return p.Username
}
