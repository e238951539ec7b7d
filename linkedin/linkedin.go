// Package linkedin fetches LinkedIn profile data from public profile pages.
package linkedin

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

	"github.com/codeGROOVE-dev/crosscheck/auth"
	"github.com/codeGROOVE-dev/crosscheck/htmlutil"
	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/textutil"
)

const platform = "linkedin"

// Match returns true if the URL is a LinkedIn profile URL.
func Match(urlStr string) bool {
	lower := strings.ToLower(urlStr)
	return strings.Contains(lower, "linkedin.com/in/") ||
		strings.Contains(lower, "linkedin.com/pub/")
}

// AuthRequired returns true; LinkedIn serves richer pages with cookies,
// though public profile metadata is still reachable without them.
func AuthRequired() bool { return true }

// Client handles LinkedIn profile requests.
type Client struct {
	httpClient *http.Client
	cache      httpcache.Cacher
	logger     *slog.Logger
	cookies    map[string]string
}

// Option configures a Client.
type Option func(*config)

type config struct {
	cache          httpcache.Cacher
	logger         *slog.Logger
	cookies        map[string]string
	browserCookies bool
}

// WithHTTPCache sets the HTTP cache.
func WithHTTPCache(httpCache httpcache.Cacher) Option {
	return func(c *config) { c.cache = httpCache }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCookies sets explicit session cookies.
func WithCookies(cookies map[string]string) Option {
	return func(c *config) { c.cookies = cookies }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// New creates a LinkedIn client. Cookie sources are consulted in order:
// explicit cookies, environment variables, then browser stores when enabled.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	sources := []auth.Source{auth.NewStaticSource(cfg.cookies), auth.EnvSource{}}
	if cfg.browserCookies {
		sources = append(sources, auth.NewBrowserSource(logger))
	}
	cookies, err := auth.ChainSources(ctx, platform, sources...)
	if err != nil {
		return nil, fmt.Errorf("resolving cookies: %w", err)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	if len(cookies) > 0 {
		jar, err := auth.NewCookieJar("linkedin.com", cookies)
		if err != nil {
			return nil, fmt.Errorf("building cookie jar: %w", err)
		}
		httpClient.Jar = jar
		logger.DebugContext(ctx, "linkedin cookies loaded", "count", len(cookies))
	}

	return &Client{
		httpClient: httpClient,
		cache:      cfg.cache,
		logger:     logger,
		cookies:    cookies,
	}, nil
}

// Fetch retrieves a LinkedIn profile.
func (c *Client) Fetch(ctx context.Context, urlStr string) (*profile.Profile, error) {
	username := extractPublicID(urlStr)
	if username == "" {
		return nil, fmt.Errorf("could not extract public id from: %s", urlStr)
	}

	if !strings.HasPrefix(urlStr, "http") {
		urlStr = "https://" + urlStr
	}

	c.logger.InfoContext(ctx, "fetching linkedin profile",
		"url", urlStr, "username", username, "authenticated", len(c.cookies) > 0)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", httpcache.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	body, err := httpcache.FetchURL(ctx, c.cache, c.httpClient, req, c.logger)
	if err != nil {
		return nil, c.classifyFetchError(err, username)
	}

	prof := parseProfile(string(body), urlStr, username)
	prof.Authenticated = len(c.cookies) > 0
	return prof, nil
}

// classifyFetchError maps HTTP failures onto the shared sentinel errors.
// LinkedIn answers 999 (and sometimes 403) to anonymous scrapers it wants
// logged in.
func (c *Client) classifyFetchError(err error, username string) error {
	var httpErr *httpcache.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}
	switch httpErr.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", profile.ErrRateLimited, username)
	case http.StatusForbidden, 999:
		if len(c.cookies) == 0 {
			return fmt.Errorf("%w: %s", profile.ErrAuthRequired, username)
		}
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", profile.ErrProfileNotFound, username)
	}
	return err
}

func parseProfile(html, urlStr, username string) *profile.Profile {
	prof := &profile.Profile{
		Platform: platform,
		URL:      urlStr,
		Username: username,
		Fields:   make(map[string]string),
	}

	// JSON-LD Person blocks are the most reliable public source.
	if person, ok := parsePersonJSONLD(html); ok {
		prof.Name = textutil.CleanPtr(person.Name)
		prof.JobTitle = textutil.CleanPtr(person.jobTitle())
		prof.Company = textutil.CleanPtr(person.company())
		prof.Location = textutil.CleanPtr(person.location())
		if desc := textutil.Clean(person.Description); desc != "" {
			prof.Bio = &desc
		}
	}

	// Title looks like "Jane Doe | LinkedIn" or "Jane Doe - Staff Engineer at Acme | LinkedIn".
	if title := htmlutil.Title(html); title != "" && prof.Name == nil {
		name, _, _ := strings.Cut(title, " | ")
		if n, headline, found := strings.Cut(name, " - "); found {
			prof.Name = textutil.CleanPtr(n)
			applyHeadline(prof, headline)
		} else {
			prof.Name = textutil.CleanPtr(name)
		}
	}

	if prof.Bio == nil {
		prof.Bio = textutil.CleanPtr(htmlutil.Description(html))
	}
	prof.ImageURL = profile.String(htmlutil.MetaProperty(html, "og:image"))

	return prof
}

// applyHeadline splits "Staff Engineer at Acme" into job title and company.
func applyHeadline(prof *profile.Profile, headline string) {
	for _, sep := range []string{" at ", " @ "} {
		if title, company, found := strings.Cut(headline, sep); found {
			if prof.JobTitle == nil {
				prof.JobTitle = textutil.CleanPtr(title)
			}
			if prof.Company == nil {
				prof.Company = textutil.CleanPtr(company)
			}
			return
		}
	}
	if prof.JobTitle == nil {
		prof.JobTitle = textutil.CleanPtr(headline)
	}
}

// personLD mirrors the schema.org Person fields LinkedIn publishes.
type personLD struct {
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	JobTitle    json.RawMessage `json:"jobTitle"`
	WorksFor    []struct {
		Name string `json:"name"`
	} `json:"worksFor"`
	Address struct {
		AddressLocality string `json:"addressLocality"`
		AddressCountry  string `json:"addressCountry"`
	} `json:"address"`
}

// jobTitle handles both string and string-array forms of the field.
func (p *personLD) jobTitle() string {
	if len(p.JobTitle) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.JobTitle, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(p.JobTitle, &many); err == nil && len(many) > 0 {
		return many[0]
	}
	return ""
}

func (p *personLD) company() string {
	if len(p.WorksFor) == 0 {
		return ""
	}
	return p.WorksFor[0].Name
}

func (p *personLD) location() string {
	loc := p.Address.AddressLocality
	if loc == "" {
		return p.Address.AddressCountry
	}
	if p.Address.AddressCountry != "" {
		loc += ", " + p.Address.AddressCountry
	}
	return loc
}

// parsePersonJSONLD finds the first Person entity in the page's ld+json
// blocks, looking through @graph wrappers too.
func parsePersonJSONLD(html string) (*personLD, bool) {
	for _, block := range htmlutil.JSONLDBlocks(html) {
		var direct personLD
		if err := json.Unmarshal([]byte(block), &direct); err == nil && direct.Type == "Person" {
			return &direct, true
		}

		var graph struct {
			Graph []json.RawMessage `json:"@graph"`
		}
		if err := json.Unmarshal([]byte(block), &graph); err != nil {
			continue
		}
		for _, raw := range graph.Graph {
			var person personLD
			if err := json.Unmarshal(raw, &person); err == nil && person.Type == "Person" {
				return &person, true
			}
		}
	}
	return nil, false
}

var publicIDPattern = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/([^/?#]+)`)

func extractPublicID(urlStr string) string {
	matches := publicIDPattern.FindStringSubmatch(urlStr)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSuffix(matches[1], "/")
}
