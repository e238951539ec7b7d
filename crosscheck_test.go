package crosscheck

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/codeGROOVE-dev/crosscheck/profile"
)

func TestPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/torvalds", profile.PlatformGitHub},
		{"https://www.linkedin.com/in/janedoe", profile.PlatformLinkedIn},
		{"https://twitter.com/jack", profile.PlatformTwitter},
		{"https://x.com/jack", profile.PlatformTwitter},
		{"https://instagram.com/jane", profile.PlatformInstagram},
		{"https://example.com/jane", ""},
		{"https://github.com/torvalds/linux", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Platform(tt.url); got != tt.want {
				t.Errorf("Platform(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFetchUnsupportedURL(t *testing.T) {
	_, err := Fetch(context.Background(), "https://example.com/someone")
	if !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("Fetch() error = %v, want ErrUnsupportedURL", err)
	}
}

func TestFetchAllSkipsUnrecognized(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	profiles := FetchAll(context.Background(),
		[]string{"https://example.com/a", "https://nowhere.invalid/b"},
		WithLogger(logger))

	if profiles == nil {
		t.Fatal("FetchAll() = nil, want empty slice")
	}
	if len(profiles) != 0 {
		t.Errorf("FetchAll() returned %d profiles, want 0", len(profiles))
	}
}

func TestFetchAllEmptyInput(t *testing.T) {
	profiles := FetchAll(context.Background(), nil)
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("FetchAll(nil) = %v, want empty slice", profiles)
	}
}
