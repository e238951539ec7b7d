package linkedin

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
		{"https://www.linkedin.com/in/janedoe", true},
		{"https://LINKEDIN.com/in/JaneDoe/", true},
		{"linkedin.com/pub/jane-doe", true},
		{"https://linkedin.com/company/acme", false},
		{"https://linkedin.com/jobs", false},
		{"https://example.com/in/jane", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Match(tt.url); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/in/janedoe", "janedoe"},
		{"https://linkedin.com/in/jane-doe-123/?originalSubdomain=de", "jane-doe-123"},
		{"https://linkedin.com/company/acme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := extractPublicID(tt.url); got != tt.want {
				t.Errorf("extractPublicID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseProfileJSONLD(t *testing.T) {
	html := `<html><head>
<title>Jane Doe - Staff Engineer at Acme | LinkedIn</title>
<script type="application/ld+json">
{"@graph":[{"@type":"Person","name":"Jane Doe","jobTitle":["Staff Engineer"],
"worksFor":[{"name":"Acme Corp"}],
"address":{"addressLocality":"Berlin","addressCountry":"DE"},
"description":"Distributed systems person."}]}
</script>
</head></html>`

	prof := parseProfile(html, "https://linkedin.com/in/janedoe", "janedoe")

	if prof.Name == nil || *prof.Name != "Jane Doe" {
		t.Errorf("Name = %v, want Jane Doe", prof.Name)
	}
	if prof.JobTitle == nil || *prof.JobTitle != "Staff Engineer" {
		t.Errorf("JobTitle = %v, want Staff Engineer", prof.JobTitle)
	}
	if prof.Company == nil || *prof.Company != "Acme Corp" {
		t.Errorf("Company = %v, want Acme Corp", prof.Company)
	}
	if prof.Location == nil || *prof.Location != "Berlin, DE" {
		t.Errorf("Location = %v, want Berlin, DE", prof.Location)
	}
	if prof.Bio == nil || *prof.Bio != "Distributed systems person." {
		t.Errorf("Bio = %v, want JSON-LD description", prof.Bio)
	}
}

func TestParseProfileTitleFallback(t *testing.T) {
	html := `<html><head>
<title>Jane Doe - Staff Engineer at Acme | LinkedIn</title>
<meta name="description" content="View Jane Doe's profile on LinkedIn.">
</head></html>`

	prof := parseProfile(html, "https://linkedin.com/in/janedoe", "janedoe")

	if prof.Name == nil || *prof.Name != "Jane Doe" {
		t.Errorf("Name = %v, want Jane Doe", prof.Name)
	}
	if prof.JobTitle == nil || *prof.JobTitle != "Staff Engineer" {
		t.Errorf("JobTitle = %v, want Staff Engineer", prof.JobTitle)
	}
	if prof.Company == nil || *prof.Company != "Acme" {
		t.Errorf("Company = %v, want Acme", prof.Company)
	}
	if prof.Bio == nil || *prof.Bio != "View Jane Doe's profile on LinkedIn." {
		t.Errorf("Bio = %v, want meta description", prof.Bio)
	}
}

func TestParseProfileHeadlineWithoutCompany(t *testing.T) {
	html := `<title>Jane Doe - Engineering Leader | LinkedIn</title>`
	prof := parseProfile(html, "https://linkedin.com/in/janedoe", "janedoe")

	if prof.JobTitle == nil || *prof.JobTitle != "Engineering Leader" {
		t.Errorf("JobTitle = %v, want Engineering Leader", prof.JobTitle)
	}
	if prof.Company != nil {
		t.Errorf("Company = %v, want nil", *prof.Company)
	}
}

func TestParseProfileSparsePage(t *testing.T) {
	prof := parseProfile("<html></html>", "https://linkedin.com/in/ghost", "ghost")
	if prof.Name != nil || prof.JobTitle != nil || prof.Company != nil || prof.Bio != nil {
		t.Error("sparse page must leave optional fields nil")
	}
}

func TestClassifyFetchError(t *testing.T) {
	anon := &Client{}
	authed := &Client{cookies: map[string]string{"li_at": "tok"}}

	tests := []struct {
		name   string
		client *Client
		status int
		want   error
	}{
		{"rate limited", anon, http.StatusTooManyRequests, profile.ErrRateLimited},
		{"auth wall 999 without cookies", anon, 999, profile.ErrAuthRequired},
		{"forbidden without cookies", anon, http.StatusForbidden, profile.ErrAuthRequired},
		{"forbidden with cookies passes through", authed, http.StatusForbidden, nil},
		{"not found", anon, http.StatusNotFound, profile.ErrProfileNotFound},
		{"server error passes through", anon, http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &httpcache.HTTPError{URL: "https://linkedin.com/in/janedoe", StatusCode: tt.status}
			got := tt.client.classifyFetchError(in, "janedoe")
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

func TestClassifyFetchErrorNonHTTP(t *testing.T) {
	client := &Client{}
	in := errors.New("dial tcp: connection refused")
	if got := client.classifyFetchError(in, "janedoe"); !errors.Is(got, in) {
		t.Errorf("classifyFetchError() = %v, want the original error", got)
	}
}
