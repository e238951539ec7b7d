// Package twitter fetches Twitter/X profile data from public profile pages.
package twitter

import (
	"context"
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

const platform = "twitter"

// nonProfiles are twitter.com paths that are never usernames.
var nonProfiles = map[string]bool{
	"home": true, "explore": true, "search": true, "notifications": true,
	"messages": true, "settings": true, "login": true, "signup": true,
	"i": true, "intent": true, "hashtag": true, "share": true,
	"privacy": true, "tos": true, "about": true,
}

// Match returns true if the URL is a Twitter/X profile URL.
func Match(urlStr string) bool {
	path, ok := pathAfterDomain(strings.ToLower(urlStr))
	if !ok {
		return false
	}
	path = strings.TrimSuffix(path, "/")
	if qIdx := strings.IndexAny(path, "?#"); qIdx >= 0 {
		path = path[:qIdx]
	}
	if path == "" || strings.Contains(path, "/") {
		return false
	}
	return !nonProfiles[path]
}

func pathAfterDomain(lower string) (string, bool) {
	for _, domain := range []string{"twitter.com/", "x.com/"} {
		idx := strings.Index(lower, domain)
		if idx < 0 {
			continue
		}
		// Reject lookalike hosts such as notx.com.
		if idx > 0 {
			if prev := lower[idx-1]; prev != '/' && prev != '.' {
				continue
			}
		}
		return lower[idx+len(domain):], true
	}
	return "", false
}

// AuthRequired returns false; public profiles expose metadata without login.
func AuthRequired() bool { return false }

// Client handles Twitter profile requests.
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

// New creates a Twitter client.
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

// Fetch retrieves a Twitter profile.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.Profile, error) {
	username := extractUsername(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from: %s", urlStr)
	}

	if !strings.HasPrefix(urlStr, "http") {
		urlStr = "https://" + urlStr
	}

	c.logger.InfoContext(ctx, "fetching twitter profile", "url", urlStr, "username", username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

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

var (
	followersPattern = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Followers`)
	followingPattern = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+Following`)
	postsPattern     = regexp.MustCompile(`(?i)([\d.,]+[KMB]?)\s+(?:Posts|Tweets)`)
)

// parseProfile extracts profile data from a Twitter page.
// The handle is stored with its @ prefix, matching how Twitter displays it.
func parseProfile(html, urlStr, username string) *profile.Profile {
	prof := &profile.Profile{
		Platform: platform,
		URL:      urlStr,
		Username: "@" + username,
		Fields:   make(map[string]string),
	}

	// Title looks like "Jane Doe (@jane) / X"
	if title := htmlutil.Title(html); title != "" {
		name, _, found := strings.Cut(title, " (@")
		if found {
			prof.Name = textutil.CleanPtr(name)
		}
	}

	desc := htmlutil.Description(html)
	if desc == "" {
		desc = htmlutil.MetaProperty(html, "og:description")
	}

	// The description often carries counters ("1.2K Followers, 340 Following").
	if m := followersPattern.FindStringSubmatch(desc); m != nil {
		prof.Followers = textutil.ParseApproxCountPtr(m[1])
	}
	if m := followingPattern.FindStringSubmatch(desc); m != nil {
		prof.Following = textutil.ParseApproxCountPtr(m[1])
	}
	if m := postsPattern.FindStringSubmatch(desc); m != nil {
		prof.PostsCount = textutil.ParseApproxCountPtr(m[1])
	}

	// Bio is the description with any counter prefix stripped.
	bio := desc
	if prof.Followers != nil || prof.Following != nil || prof.PostsCount != nil {
		for _, p := range []*regexp.Regexp{followersPattern, followingPattern, postsPattern} {
			bio = p.ReplaceAllString(bio, "")
		}
		bio = strings.Trim(bio, " ,.-·")
	}
	prof.Bio = textutil.CleanPtr(bio)
	prof.ImageURL = profile.String(htmlutil.MetaProperty(html, "og:image"))

	// Verification badge only shows up in embedded state for logged-out pages.
	if strings.Contains(html, `"is_blue_verified":true`) || strings.Contains(html, `"verified":true`) {
		prof.Verified = profile.Bool(true)
	}

	return prof
}

var usernamePattern = regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/([^/?#]+)`)

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
