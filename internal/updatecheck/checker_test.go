package updatecheck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func stubFetcher(t *testing.T, fn func(ctx context.Context) (string, bool, error)) {
	t.Helper()
	original := latestVersionFetcher
	latestVersionFetcher = fn
	t.Cleanup(func() { latestVersionFetcher = original })
}

func TestCheckUsesCacheWhenFresh(t *testing.T) {
	t.Setenv(cacheEnv, t.TempDir())

	calls := 0
	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		calls++
		return "v1.2.3", true, nil
	})

	result, err := Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !result.Outdated || result.FromCache || result.LatestVersion != "v1.2.3" {
		t.Fatalf("unexpected first result: %+v", result)
	}
	if calls != 1 {
		t.Fatalf("expected fetcher to be called once, got %d", calls)
	}

	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		t.Fatal("fetcher should not be called when cache is fresh")
		return "", false, nil
	})

	cached, err := Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !cached.FromCache {
		t.Fatal("expected result to come from cache")
	}
	if !cached.Outdated {
		t.Fatal("expected cached result to be outdated")
	}
}

func TestCheckRefetchesStaleCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(cacheEnv, dir)

	openCache().save(cacheEntry{CheckedAt: time.Now().Add(-48 * time.Hour), LatestVersion: "0.9.0"})

	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		return "1.0.0", true, nil
	})

	res, err := Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FromCache {
		t.Fatal("stale cache should not be used")
	}
	if res.Outdated {
		t.Fatal("equal versions should not be outdated")
	}
}

func TestCheckSkipsDevelopmentBuilds(t *testing.T) {
	t.Setenv(cacheEnv, t.TempDir())
	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		t.Fatal("fetcher should not be called for development builds")
		return "", false, nil
	})

	for _, v := range []string{"dev", "", "not-a-version"} {
		res, err := Check(context.Background(), v)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
		if !res.Skipped {
			t.Fatalf("expected %q to skip the check", v)
		}
	}
}

func TestCheckPropagatesFetchError(t *testing.T) {
	t.Setenv(cacheEnv, t.TempDir())
	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		return "", false, errors.New("network down")
	})

	_, err := Check(context.Background(), "1.0.0")
	if err == nil || !strings.Contains(err.Error(), "network down") {
		t.Fatalf("expected error containing 'network down', got %v", err)
	}
}

func TestIsOutdatedComparison(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.2.3", true},
		{"1.2.3", "1.0.0", false},
		{"1.0.0", "v1.0.0", false},
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "", false},
		{"1.0.0", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+" vs "+tt.latest, func(t *testing.T) {
			current, err := parseVersion(tt.current)
			if err != nil {
				t.Fatalf("parseVersion(%q) failed: %v", tt.current, err)
			}
			if got := isOutdated(current, tt.latest); got != tt.want {
				t.Errorf("isOutdated(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestCacheHonorsOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv(cacheEnv, dir)

	c := openCache()
	if filepath.Dir(c.path) != dir {
		t.Fatalf("cache path = %q, expected it under %q", c.path, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("override directory should exist: %v", err)
	}
}

func TestCorruptCacheIsRefetched(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(cacheEnv, dir)
	if err := os.WriteFile(filepath.Join(dir, "latest.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write cache: %v", err)
	}

	calls := 0
	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		calls++
		return "2.0.0", true, nil
	})

	res, err := Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || res.FromCache || !res.Outdated {
		t.Fatalf("expected a fresh outdated result, got %+v after %d calls", res, calls)
	}
	if hit, ok := openCache().load(); !ok || hit.LatestVersion != "2.0.0" {
		t.Fatalf("expected the cache to be rewritten, got %+v", hit)
	}
}

func TestMissingReleaseIsNotCached(t *testing.T) {
	t.Setenv(cacheEnv, t.TempDir())
	stubFetcher(t, func(ctx context.Context) (string, bool, error) {
		return "", false, nil
	})

	res, err := Check(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outdated || res.LatestVersion != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok := openCache().load(); ok {
		t.Fatal("nothing should be cached when no release is found")
	}
}
