package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/crosscheck/profile"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/torvalds", true},
		{"https://GITHUB.COM/Torvalds", true},
		{"github.com/octocat", true},
		{"https://github.com/torvalds/linux", false},
		{"https://github.com/features", false},
		{"https://github.com/", false},
		{"https://gitlab.com/someone", false},
		{"https://example.com", false},
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
		{"https://github.com/torvalds", "torvalds"},
		{"http://www.github.com/octocat/", "octocat"},
		{"github.com/octocat?tab=repositories", "octocat"},
		{"https://example.com/nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := extractUsername(tt.url); got != tt.want {
				t.Errorf("extractUsername(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseUser(t *testing.T) {
	data := []byte(`{
		"login": "octocat",
		"name": "The Octocat",
		"bio": "  Mascot  of GitHub ",
		"location": "San Francisco",
		"blog": "octocat.dev",
		"company": "@github",
		"email": "octo@github.com",
		"avatar_url": "https://avatars.example/octocat.png",
		"created_at": "2011-01-25T18:44:36Z",
		"hireable": true,
		"public_repos": 8,
		"public_gists": 2,
		"followers": 4000,
		"following": 9
	}`)

	prof, err := parseUser(data, "https://github.com/octocat", "octocat")
	if err != nil {
		t.Fatalf("parseUser() error: %v", err)
	}

	if prof.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", prof.Username)
	}
	if prof.Name == nil || *prof.Name != "The Octocat" {
		t.Errorf("Name = %v, want The Octocat", prof.Name)
	}
	if prof.Bio == nil || *prof.Bio != "Mascot of GitHub" {
		t.Errorf("Bio = %v, want cleaned bio", prof.Bio)
	}
	if prof.Website == nil || *prof.Website != "https://octocat.dev" {
		t.Errorf("Website = %v, want https://octocat.dev", prof.Website)
	}
	if prof.Company == nil || *prof.Company != "github" {
		t.Errorf("Company = %v, want github (@ stripped)", prof.Company)
	}
	if prof.Followers == nil || *prof.Followers != 4000 {
		t.Errorf("Followers = %v, want 4000", prof.Followers)
	}
	if prof.PostsCount == nil || *prof.PostsCount != 8 {
		t.Errorf("PostsCount = %v, want 8 (public repos)", prof.PostsCount)
	}
	if prof.Email == nil || *prof.Email != "octo@github.com" {
		t.Errorf("Email = %v, want octo@github.com", prof.Email)
	}
	if prof.ImageURL == nil || *prof.ImageURL != "https://avatars.example/octocat.png" {
		t.Errorf("ImageURL = %v, want avatar URL", prof.ImageURL)
	}
	if prof.JoinedDate == nil || *prof.JoinedDate != "2011-01-25T18:44:36Z" {
		t.Errorf("JoinedDate = %v, want created_at timestamp", prof.JoinedDate)
	}
	if prof.Fields["hireable"] != "true" {
		t.Errorf("Fields[hireable] = %q, want true", prof.Fields["hireable"])
	}
	if prof.Verified != nil {
		t.Errorf("Verified = %v, want nil (no signal)", *prof.Verified)
	}
}

func TestParseUserAbsentFields(t *testing.T) {
	prof, err := parseUser([]byte(`{"login":"ghost"}`), "https://github.com/ghost", "ghost")
	if err != nil {
		t.Fatalf("parseUser() error: %v", err)
	}
	if prof.Name != nil || prof.Bio != nil || prof.Location != nil || prof.Website != nil || prof.Company != nil {
		t.Error("absent optional fields must stay nil")
	}
	if prof.Email != nil || prof.ImageURL != nil || prof.JoinedDate != nil {
		t.Error("absent email/image/joined fields must stay nil")
	}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","public_repos":1,"followers":10,"following":2}`)
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"name":"hello-world","description":"My first repo"}]`)
	})
	mux.HandleFunc("/repos/octocat/hello-world/commits", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"commit":{"message":"initial commit\n\nlong body"}}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := New(context.Background(), WithBaseURL(srv.URL), WithToken("test-token"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	prof, err := client.Fetch(context.Background(), "https://github.com/octocat")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	wantPosts := []string{
		"Repo: hello-world - My first repo",
		"Commit: initial commit",
	}
	if diff := cmp.Diff(wantPosts, prof.PostsSample); diff != "" {
		t.Errorf("PostsSample mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := New(context.Background(), WithBaseURL(srv.URL), WithToken("test-token"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = client.Fetch(context.Background(), "https://github.com/nobody-here")
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("Fetch() error = %v, want ErrProfileNotFound", err)
	}
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := New(context.Background(), WithBaseURL(srv.URL), WithToken("test-token"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	_, err = client.Fetch(context.Background(), "https://github.com/busybee")
	if !errors.Is(err, profile.ErrRateLimited) {
		t.Errorf("Fetch() error = %v, want ErrRateLimited", err)
	}
}
