package twitter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/profile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://twitter.com/jack", true},
		{"https://x.com/jack", true},
		{"https://X.COM/Jack", true},
		{"twitter.com/jack", true},
		{"https://twitter.com/jack/status/123", false},
		{"https://twitter.com/search", false},
		{"https://x.com/", false},
		{"https://notx.com/jack", false},
		{"https://example.com/jack", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Match(tt.url); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://twitter.com/jack", "jack"},
		{"https://x.com/jack?lang=en", "jack"},
		{"https://twitter.com/search", ""},
		{"https://example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := extractUsername(tt.url); got != tt.want {
				t.Errorf("extractUsername(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseProfile(t *testing.T) {
	html := `<html><head>
<title>Jane Doe (@jane) / X</title>
<meta name="description" content="1.2K Followers, 340 Following, 5,678 Posts - Building things on the internet">
</head><body></body></html>`

	prof := parseProfile(html, "https://x.com/jane", "jane")

	if prof.Username != "@jane" {
		t.Errorf("Username = %q, want @jane", prof.Username)
	}
	if prof.Name == nil || *prof.Name != "Jane Doe" {
		t.Errorf("Name = %v, want Jane Doe", prof.Name)
	}
	if prof.Followers == nil || *prof.Followers != 1200 {
		t.Errorf("Followers = %v, want 1200", prof.Followers)
	}
	if prof.Following == nil || *prof.Following != 340 {
		t.Errorf("Following = %v, want 340", prof.Following)
	}
	if prof.PostsCount == nil || *prof.PostsCount != 5678 {
		t.Errorf("PostsCount = %v, want 5678", prof.PostsCount)
	}
	if prof.Bio == nil || *prof.Bio != "Building things on the internet" {
		t.Errorf("Bio = %v, want counter-free bio", prof.Bio)
	}
	if prof.Verified != nil {
		t.Errorf("Verified = %v, want nil (unknown)", *prof.Verified)
	}
}

func TestParseProfileVerified(t *testing.T) {
	html := `<html><head><title>Big Co (@bigco) / X</title></head>
<script>{"is_blue_verified":true}</script></html>`

	prof := parseProfile(html, "https://x.com/bigco", "bigco")
	if prof.Verified == nil || !*prof.Verified {
		t.Error("Verified = nil/false, want true")
	}
}

func TestParseProfileSparsePage(t *testing.T) {
	prof := parseProfile("<html></html>", "https://x.com/ghost", "ghost")
	if prof.Name != nil || prof.Bio != nil || prof.Followers != nil {
		t.Error("sparse page must leave optional fields nil")
	}
	if prof.Username != "@ghost" {
		t.Errorf("Username = %q, want @ghost", prof.Username)
	}
}

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, profile.ErrRateLimited},
		{"not found", http.StatusNotFound, profile.ErrProfileNotFound},
		{"server error passes through", http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &httpcache.HTTPError{URL: "https://x.com/jack", StatusCode: tt.status}
			got := classifyFetchError(in, "jack")
			if tt.want == nil {
				if !errors.Is(got, in) {
					t.Errorf("classifyFetchError() = %v, want the original error", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyFetchError() = %v, want %v", got, tt.want)
			}
		})
	}
}
