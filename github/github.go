// Package github fetches GitHub profile data via the REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/textutil"
)

const (
	platform   = "github"
	apiBase    = "https://api.github.com"
	maxRepos   = 5
	maxCommits = 3
)

// Match returns true if the URL is a GitHub profile URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	if !strings.Contains(lower, "github.com/") {
		return false
	}
	idx := strings.Index(lower, "github.com/")
	path := lower[idx+len("github.com/"):]
	path = strings.TrimSuffix(path, "/")
	if qIdx := strings.Index(path, "?"); qIdx >= 0 {
		path = path[:qIdx]
	}
	// Must be just username (no slashes)
	if strings.Contains(path, "/") {
		return false
	}
	// Skip known non-profile paths
	nonProfiles := map[string]bool{
		"features": true, "security": true, "enterprise": true, "team": true,
		"marketplace": true, "sponsors": true, "topics": true, "trending": true,
		"collections": true, "orgs": true, "login": true, "join": true,
		"pricing": true, "about": true, "explore": true, "new": true,
		"settings": true, "notifications": true, "issues": true, "pulls": true,
		"search": true, "site": true, "apps": true,
	}
	return path != "" && !nonProfiles[path]
}

// AuthRequired returns false because GitHub profiles are public.
func AuthRequired() bool { return false }

// Client handles GitHub API requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	token      string
	baseURL    string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache   httpcache.Cacher
	logger  *slog.Logger
	token   string
	baseURL string
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithToken sets the GitHub API token.
func WithToken(token string) Option {
	return func(c *config) { c.token = token }
}

// WithBaseURL overrides the API base URL (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// New creates a GitHub client.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default(), baseURL: apiBase}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	token := cfg.token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		logger.WarnContext(ctx, "GITHUB_TOKEN not set - GitHub API requests will be rate-limited to 60/hour")
	}

	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cfg.cache,
		logger:     logger,
		token:      token,
		baseURL:    strings.TrimSuffix(cfg.baseURL, "/"),
	}, nil
}

// Fetch retrieves a GitHub profile with recent repository and commit activity.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.Profile, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}

	c.logger.InfoContext(ctx, "fetching github profile", "url", urlStr, "username", username)

	body, err := c.apiGet(ctx, c.baseURL+"/users/"+username)
	if err != nil {
		var httpErr *httpcache.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
			case http.StatusTooManyRequests:
				return nil, fmt.Errorf("%w: %s", profile.ErrRateLimited, username)
			}
		}
		return nil, err
	}

	prof, err := parseUser(body, urlStr, username)
	if err != nil {
		return nil, err
	}

	// Recent activity is best-effort; only the user fetch is fatal.
	c.fetchActivity(ctx, prof, username)

	return prof, nil
}

func (c *Client) apiGet(ctx context.Context, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "crosscheck/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
}

func parseUser(data []byte, urlStr, username string) (*profile.Profile, error) {
	var ghUser struct {
		Login       string `json:"login"`
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		Location    string `json:"location"`
		Blog        string `json:"blog"`
		Company     string `json:"company"`
		Email       string `json:"email"`
		AvatarURL   string `json:"avatar_url"`
		Type        string `json:"type"`
		CreatedAt   string `json:"created_at"`
		Hireable    *bool  `json:"hireable"`
		PublicRepos int    `json:"public_repos"`
		PublicGists int    `json:"public_gists"`
		Followers   int    `json:"followers"`
		Following   int    `json:"following"`
	}

	if err := json.Unmarshal(data, &ghUser); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	if ghUser.Login == "" {
		ghUser.Login = username
	}

	prof := &profile.Profile{
		Platform:   platform,
		URL:        urlStr,
		Username:   ghUser.Login,
		Name:       textutil.CleanPtr(ghUser.Name),
		Bio:        textutil.CleanPtr(ghUser.Bio),
		Location:   textutil.CleanPtr(ghUser.Location),
		Email:      profile.String(ghUser.Email),
		ImageURL:   profile.String(ghUser.AvatarURL),
		JoinedDate: profile.String(ghUser.CreatedAt),
		Followers:  profile.Int(ghUser.Followers),
		Following:  profile.Int(ghUser.Following),
		PostsCount: profile.Int(ghUser.PublicRepos),
		Fields:     make(map[string]string),
	}

	if ghUser.Blog != "" {
		website := ghUser.Blog
		if !strings.HasPrefix(website, "http") {
			website = "https://" + website
		}
		prof.Website = &website
	}
	if ghUser.Company != "" {
		prof.Company = profile.String(strings.TrimSpace(strings.TrimPrefix(ghUser.Company, "@")))
	}

	prof.Fields["public_repos"] = fmt.Sprintf("%d", ghUser.PublicRepos)
	prof.Fields["public_gists"] = fmt.Sprintf("%d", ghUser.PublicGists)
	if ghUser.Hireable != nil && *ghUser.Hireable {
		prof.Fields["hireable"] = "true"
	}
	if ghUser.Type != "" {
		prof.Fields["type"] = ghUser.Type
	}

	return prof, nil
}

// fetchActivity samples recently updated repositories and their latest commits.
func (c *Client) fetchActivity(ctx context.Context, prof *profile.Profile, username string) {
	reposURL := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", c.baseURL, username, maxRepos)
	body, err := c.apiGet(ctx, reposURL)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to fetch repos", "username", username, "error", err)
		return
	}

	var repos []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &repos); err != nil {
		c.logger.WarnContext(ctx, "failed to parse repos", "username", username, "error", err)
		return
	}

	for _, repo := range repos {
		entry := "Repo: " + repo.Name
		if desc := textutil.Clean(repo.Description); desc != "" {
			entry += " - " + desc
		}
		prof.AddPost(entry)
		c.fetchCommits(ctx, prof, username, repo.Name)
	}
}

func (c *Client) fetchCommits(ctx context.Context, prof *profile.Profile, username, repo string) {
	commitsURL := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d", c.baseURL, username, repo, maxCommits)
	body, err := c.apiGet(ctx, commitsURL)
	if err != nil {
		// Empty repos return 409, blocked repos 403. Skip quietly.
		c.logger.DebugContext(ctx, "failed to fetch commits", "repo", repo, "error", err)
		return
	}

	var commits []struct {
		Commit struct {
			Message string `json:"message"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(body, &commits); err != nil {
		return
	}

	for _, commit := range commits {
		msg, _, _ := strings.Cut(commit.Commit.Message, "\n")
		if msg = textutil.Clean(msg); msg != "" {
			prof.AddPost("Commit: " + msg)
		}
	}
}

var usernamePattern = regexp.MustCompile(`github\.com/([^/?]+)`)

func extractUsername(urlStr string) string {
	urlStr = strings.TrimPrefix(urlStr, "https://")
	urlStr = strings.TrimPrefix(urlStr, "http://")
	urlStr = strings.TrimPrefix(urlStr, "www.")

	if matches := usernamePattern.FindStringSubmatch(urlStr); len(matches) > 1 {
		return strings.TrimSuffix(matches[1], "/")
	}
	return ""
}
