// Command crosscheck fetches social media profiles, analyzes whether they
// belong to the same person, and writes verification reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeGROOVE-dev/crosscheck"
	"github.com/codeGROOVE-dev/crosscheck/analyze"
	"github.com/codeGROOVE-dev/crosscheck/httpcache"
	"github.com/codeGROOVE-dev/crosscheck/profile"
	"github.com/codeGROOVE-dev/crosscheck/report"
	"github.com/codeGROOVE-dev/crosscheck/verify"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	profilesArg := flag.String("profiles", "", "profile URLs: inline JSON {\"profiles\": [...]}, a JSON file path, or a single URL")
	outputDir := flag.String("output-dir", "reports", "directory for generated reports")
	format := flag.String("format", "both", "report format: markdown, pdf, or both")
	userID := flag.String("user-id", "", "optional label included in report filenames and title")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "HTTP cache TTL")
	noCache := flag.Bool("no-cache", false, "disable the HTTP cache")
	browserCookies := flag.Bool("browser-cookies", false, "read platform cookies from browser stores")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// A missing .env file is fine; explicit environment always wins.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	if *format != "markdown" && *format != "pdf" && *format != "both" {
		return fmt.Errorf("invalid format %q: want markdown, pdf, or both", *format)
	}

	urls, err := parseProfilesArg(*profilesArg)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return errors.New("no profile URLs provided")
	}

	// Fail fast before any network work.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return errors.New("GEMINI_API_KEY is not set")
	}

	opts := []crosscheck.Option{crosscheck.WithLogger(logger)}
	if *noCache {
		// Null store keeps the fetch path identical, it just never persists.
		opts = append(opts, crosscheck.WithHTTPCache(httpcache.NewNull()))
	} else if cache, err := httpcache.New(*cacheTTL); err != nil {
		logger.Warn("cache unavailable, fetching without it", "error", err)
	} else {
		opts = append(opts, crosscheck.WithHTTPCache(cache))
	}
	if *browserCookies {
		opts = append(opts, crosscheck.WithBrowserCookies())
	}

	analyzer, err := analyze.New(ctx, apiKey, analyze.WithLogger(logger))
	if err != nil {
		return err
	}

	fetch := func(ctx context.Context, urls []string) []*profile.Profile {
		return crosscheck.FetchAll(ctx, urls, opts...)
	}
	return pipeline(ctx, logger, urls, fetch, analyzer, reportConfig{
		outputDir: *outputDir,
		format:    *format,
		userID:    *userID,
		verbose:   *verbose,
	})
}

type reportConfig struct {
	outputDir string
	format    string
	userID    string
	verbose   bool
}

// pipeline runs fetch, analysis, and rendering. The fetch function is
// injected so the coordinator can be faked in tests.
func pipeline(ctx context.Context, logger *slog.Logger, urls []string, fetch func(context.Context, []string) []*profile.Profile, analyzer *analyze.Client, cfg reportConfig) error {
	profiles := fetch(ctx, urls)
	if len(profiles) == 0 {
		return errors.New("no profiles could be fetched")
	}
	logger.Info("fetch complete", "requested", len(urls), "fetched", len(profiles))
	if cfg.verbose {
		stats := httpcache.CacheStats()
		logger.Debug("cache statistics", "hits", stats.Hits, "misses", stats.Misses)
	}

	result := &verify.Result{
		Profiles:    profiles,
		Report:      analyzer.Analyze(ctx, profiles),
		GeneratedAt: time.Now(),
		UserID:      cfg.userID,
	}

	written, err := writeReports(result, cfg.outputDir, cfg.format)
	if err != nil {
		return err
	}

	printSummary(result, written)
	return nil
}

// parseProfilesArg accepts inline JSON, a JSON file path, or a bare URL.
// Both JSON forms carry {"profiles": ["url", ...]}.
func parseProfilesArg(arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}

	var data []byte
	switch {
	case strings.HasPrefix(arg, "{"):
		data = []byte(arg)
	default:
		if _, err := os.Stat(arg); err == nil {
			content, err := os.ReadFile(arg)
			if err != nil {
				return nil, fmt.Errorf("reading profiles file: %w", err)
			}
			data = content
		} else {
			// Bare URL
			return []string{arg}, nil
		}
	}

	var payload struct {
		Profiles []string `json:"profiles"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parsing profiles JSON: %w", err)
	}

	var urls []string
	for _, u := range payload.Profiles {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func writeReports(result *verify.Result, outputDir, format string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string

	if format == "markdown" || format == "both" {
		path := filepath.Join(outputDir, report.Filename(result.UserID, "md", result.GeneratedAt))
		if err := os.WriteFile(path, []byte(report.Markdown(result)), 0o600); err != nil {
			return nil, fmt.Errorf("write markdown report: %w", err)
		}
		written = append(written, path)
	}

	if format == "pdf" || format == "both" {
		path := filepath.Join(outputDir, report.Filename(result.UserID, "pdf", result.GeneratedAt))
		if err := report.PDF(result, path); err != nil {
			return nil, fmt.Errorf("write PDF report: %w", err)
		}
		written = append(written, path)
	}

	return written, nil
}

func printSummary(result *verify.Result, written []string) {
	rep := result.Report

	fmt.Println()
	fmt.Println("Profile Verification Summary")
	fmt.Println("============================")
	fmt.Printf("Profiles analyzed:      %d\n", len(result.Profiles))
	for _, p := range result.Profiles {
		fmt.Printf("  - %-10s %s\n", p.Platform+":", p.Username)
	}
	fmt.Printf("Trust level:            %s (%d/100)\n", report.TrustLevel(rep.TrustScore.Overall), rep.TrustScore.Overall)
	fmt.Printf("Same-person confidence: %d%%\n", rep.SamePersonConfidence)
	if len(rep.RedFlags) > 0 {
		fmt.Printf("Red flags:              %d\n", len(rep.RedFlags))
	}
	fmt.Println()
	for _, path := range written {
		fmt.Println("Report written:", path)
	}
}
