// Package instagram fetches Instagram profile data from public profile pages.
package instagram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/crosscheck/htmlutil"
	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/textutil"
)

const platform = "instagram"

// nonProfiles are instagram.com paths that are never usernames.
var nonProfiles = map[string]bool{
	"p": true, "reel": true, "reels": true, "stories": true, "explore": true,
	"accounts": true, "direct": true, "about": true, "legal": true,
	"directory": true, "developer": true,
}

// Match returns true if the URL is an Instagram profile URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	idx := strings.Index(lower, "instagram.com/")
	if idx < 0 {
		return false
	}
	path := lower[idx+len("instagram.com/"):]
	path = strings.TrimSuffix(path, "/")
	if qIdx := strings.IndexAny(path, "?#"); qIdx >= 0 {
		path = path[:qIdx]
	}
	if path == "" || strings.Contains(path, "/") {
		return false
	}
	return !nonProfiles[path]
}

// AuthRequired returns false; profile metadata is public.
func AuthRequired() bool { return false }

// Client handles Instagram profile requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache  httpcache.Cacher
	logger *slog.Logger
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// New creates an Instagram client.
func New(_ context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cfg.cache,
		logger:     logger,
	}, nil
}

// Fetch retrieves an Instagram profile.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.Profile, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}

	if !strings.HasPrefix(urlStr, "http") {
		urlStr = "https://" + urlStr
	}

	c.logger.InfoContext(ctx, "fetching instagram profile", "url", urlStr, "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, classifyFetchError(err, username)
	}

	return parseProfile(string(body), urlStr, username), nil
}

// classifyFetchError maps HTTP failures onto the shared sentinel errors.
func classifyFetchError(err error, username string) error {
	var httpErr *httpcache.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", profile.ErrRateLimited, username)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}
	return err
}

// sharedDataUser mirrors the slice of window._sharedData we care about.
type sharedDataUser struct {
	Biography      string `json:"biography"`
	FullName       string `json:"full_name"`
	ExternalURL    string `json:"external_url"`
	ProfilePicURL  string `json:"profile_pic_url_hd"`
	IsVerified     bool   `json:"is_verified"`
	EdgeFollowedBy struct {
		Count int `json:"count"`
	} `json:"edge_followed_by"`
	EdgeFollow struct {
		Count int `json:"count"`
	} `json:"edge_follow"`
	EdgeOwnerToTimelineMedia struct {
		Count int `json:"count"`
	} `json:"edge_owner_to_timeline_media"`
}

func parseProfile(html, urlStr, username string) *profile.Profile {
	prof := &profile.Profile{
		Platform: platform,
		URL:      urlStr,
		Username: username,
		Fields:   make(map[string]string),
	}

	prof.ImageURL = profile.String(htmlutil.MetaProperty(html, "og:image"))

	if user, ok := parseSharedData(html); ok {
		prof.Name = textutil.CleanPtr(user.FullName)
		prof.Bio = textutil.CleanPtr(user.Biography)
		prof.Website = textutil.CleanPtr(user.ExternalURL)
		if user.ProfilePicURL != "" {
			prof.ImageURL = profile.String(user.ProfilePicURL)
		}
		prof.Followers = profile.Int(user.EdgeFollowedBy.Count)
		prof.Following = profile.Int(user.EdgeFollow.Count)
		prof.PostsCount = profile.Int(user.EdgeOwnerToTimelineMedia.Count)
		prof.Verified = profile.Bool(user.IsVerified)
		return prof
	}

	// Fallback: meta description carries "X Followers, Y Following, Z Posts".
	parseMetaFallback(html, prof)
	return prof
}

// parseSharedData extracts the profile user object from the embedded
// window._sharedData assignment.
func parseSharedData(html string) (*sharedDataUser, bool) {
	marker := "window._sharedData"
	idx := strings.Index(html, marker)
	if idx < 0 {
		return nil, false
	}

	blob := extractBalancedJSON(html[idx:])
	if blob == "" {
		return nil, false
	}

	var shared struct {
		EntryData struct {
			ProfilePage []struct {
				GraphQL struct {
					User sharedDataUser `json:"user"`
				} `json:"graphql"`
			} `json:"ProfilePage"`
		} `json:"entry_data"`
	}
	if err := json.Unmarshal([]byte(blob), &shared); err != nil {
		return nil, false
	}
	if len(shared.EntryData.ProfilePage) == 0 {
		return nil, false
	}
	return &shared.EntryData.ProfilePage[0].GraphQL.User, true
}

// extractBalancedJSON returns the first brace-balanced JSON object in s,
// tracking string literals so braces inside values don't break the count.
func extractBalancedJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

var (
	followersPattern = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Followers`)
	followingPattern = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Following`)
	postsPattern     = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Posts`)
)

func parseMetaFallback(html string, prof *profile.Profile) {
	desc := htmlutil.Description(html)
	if desc == "" {
		return
	}

	if m := followersPattern.FindStringSubmatch(desc); m != nil {
		prof.Followers = textutil.ParseApproxCountPtr(m[1])
	}
	if m := followingPattern.FindStringSubmatch(desc); m != nil {
		prof.Following = textutil.ParseApproxCountPtr(m[1])
	}
	if m := postsPattern.FindStringSubmatch(desc); m != nil {
		prof.PostsCount = textutil.ParseApproxCountPtr(m[1])
	}

	// Title looks like "Jane Doe (@jane) • Instagram photos and videos"
	if title := htmlutil.Title(html); title != "" {
		if name, _, found := strings.Cut(title, " (@"); found {
			prof.Name = textutil.CleanPtr(name)
		}
	}

	// Bio follows the counters after a dash or colon separator.
	if _, after, found := strings.Cut(desc, " - "); found {
		bio := after
		if _, quoted, ok := strings.Cut(after, ": "); ok {
			bio = strings.Trim(quoted, `"`)
		}
		prof.Bio = textutil.CleanPtr(bio)
	}
}

var usernamePattern = regexp.MustCompile(`(?i)instagram\.com/([^/?#]+)`)

func extractUsername(urlStr string) string {
	matches := usernamePattern.FindStringSubmatch(urlStr)
	if len(matches) < 2 {
		return ""
	}
	username := strings.TrimSuffix(matches[1], "/")
	if nonProfiles[strings.ToLower(username)] {
		return ""
	}
	return username
}
