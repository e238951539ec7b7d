// Package crosscheck fetches social media profiles for one person across
// platforms and coordinates their verification.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/codeGROOVE-dev/crosscheck/github"
	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/instagram"
	"github.com/codeGROOVE-dev/crosscheck/linkedin"
	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/twitter"
)

// ErrUnsupportedURL means no platform adapter recognizes the URL.
var ErrUnsupportedURL = errors.New("no adapter matches URL")

// Option configures fetching.
type Option func(*config)

type config struct {
	logger         *slog.Logger
	cache          httpcache.Cacher
	cookies        map[string]map[string]string
	githubToken    string
	browserCookies bool
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHTTPCache sets the HTTP cache shared by all adapters.
func WithHTTPCache(cache httpcache.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithCookies sets explicit session cookies for a platform.
func WithCookies(platform string, cookies map[string]string) Option {
	return func(c *config) {
		if c.cookies == nil {
			c.cookies = make(map[string]map[string]string)
		}
		c.cookies[platform] = cookies
	}
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// WithGitHubToken sets the GitHub API token.
func WithGitHubToken(token string) Option {
	return func(c *config) { c.githubToken = token }
}

func newConfig(opts []Option) *config {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// Platform returns the name of the platform whose adapter matches the URL,
// or "" when none does. Adapters are consulted in priority order.
func Platform(urlStr string) string {
	switch {
	case github.Match(urlStr):
		return profile.PlatformGitHub
	case linkedin.Match(urlStr):
		return profile.PlatformLinkedIn
	case twitter.Match(urlStr):
		return profile.PlatformTwitter
	case instagram.Match(urlStr):
		return profile.PlatformInstagram
	default:
		return ""
	}
}

// Fetch retrieves the profile behind a single URL using the first matching
// adapter.
func Fetch(ctx context.Context, urlStr string, opts ...Option) (*profile.Profile, error) {
	cfg := newConfig(opts)

	switch {
	case github.Match(urlStr):
		return fetchGitHub(ctx, urlStr, cfg)
	case linkedin.Match(urlStr):
		return fetchLinkedIn(ctx, urlStr, cfg)
	case twitter.Match(urlStr):
		return fetchTwitter(ctx, urlStr, cfg)
	case instagram.Match(urlStr):
		return fetchInstagram(ctx, urlStr, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, urlStr)
	}
}

// FetchAll retrieves profiles for all URLs sequentially. Failures are
// logged and skipped; the returned slice holds the successes in input
// order and is empty (not nil) when everything failed.
func FetchAll(ctx context.Context, urls []string, opts ...Option) []*profile.Profile {
	cfg := newConfig(opts)

	profiles := make([]*profile.Profile, 0, len(urls))
	for _, urlStr := range urls {
		prof, err := Fetch(ctx, urlStr, opts...)
		if err != nil {
			cfg.logger.WarnContext(ctx, "skipping profile", "url", urlStr, "error", err)
			continue
		}
		cfg.logger.InfoContext(ctx, "fetched profile", "url", urlStr, "platform", prof.Platform)
		profiles = append(profiles, prof)
	}
	return profiles
}

func fetchGitHub(ctx context.Context, urlStr string, cfg *config) (*profile.Profile, error) {
	opts := []github.Option{github.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		opts = append(opts, github.WithHTTPCache(cfg.cache))
	}
	if cfg.githubToken != "" {
		opts = append(opts, github.WithToken(cfg.githubToken))
	}
	client, err := github.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client.Fetch(ctx, urlStr)
}

func fetchLinkedIn(ctx context.Context, urlStr string, cfg *config) (*profile.Profile, error) {
	opts := []linkedin.Option{linkedin.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		opts = append(opts, linkedin.WithHTTPCache(cfg.cache))
	}
	if cookies := cfg.cookies[profile.PlatformLinkedIn]; len(cookies) > 0 {
		opts = append(opts, linkedin.WithCookies(cookies))
	}
	if cfg.browserCookies {
		opts = append(opts, linkedin.WithBrowserCookies())
	}
	client, err := linkedin.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client.Fetch(ctx, urlStr)
}

func fetchTwitter(ctx context.Context, urlStr string, cfg *config) (*profile.Profile, error) {
	opts := []twitter.Option{twitter.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		opts = append(opts, twitter.WithHTTPCache(cfg.cache))
	}
	client, err := twitter.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client.Fetch(ctx, urlStr)
}

func fetchInstagram(ctx context.Context, urlStr string, cfg *config) (*profile.Profile, error) {
	opts := []instagram.Option{instagram.WithLogger(cfg.logger)}
	if cfg.cache != nil {
		opts = append(opts, instagram.WithHTTPCache(cfg.cache))
	}
	client, err := instagram.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return client.Fetch(ctx, urlStr)
}
