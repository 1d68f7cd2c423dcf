// Package updatecheck tells the user when a newer launcher release exists.
// It never updates anything itself; see the self-update command for that.
package updatecheck

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/fbtool/launcher/internal/version"
)

const tokenEnv = "FBTOOL_GITHUB_TOKEN"

var cacheTTL = 24 * time.Hour

// latestVersionFetcher is swapped out in tests.
var latestVersionFetcher = func(ctx context.Context) (string, bool, error) {
	rel, found, err := Latest(ctx)
	if err != nil || !found {
		return "", found, err
	}
	return rel.Version(), true, nil
}

// Result describes the outcome of an update check.
type Result struct {
	CurrentVersion string
	LatestVersion  string
	CheckedAt      time.Time
	Outdated       bool
	FromCache      bool
	Skipped        bool
	Reason         string
}

// Latest finds the newest release that ships an asset for this platform.
// FBTOOL_GITHUB_TOKEN, when set, lifts the anonymous API rate limit.
func Latest(ctx context.Context) (*selfupdate.Release, bool, error) {
	src, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{
		APIToken: strings.TrimSpace(os.Getenv(tokenEnv)),
	})
	if err != nil {
		return nil, false, fmt.Errorf("create release source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: src})
	if err != nil {
		return nil, false, fmt.Errorf("create updater: %w", err)
	}
	return updater.DetectLatest(ctx, selfupdate.ParseSlug(version.ReleaseSlug))
}

// Check reports whether a release newer than current is published. A fresh
// answer is cached for a day so most launches stay offline.
func Check(ctx context.Context, current string) (Result, error) {
	res := Result{CurrentVersion: strings.TrimSpace(current)}

	if res.CurrentVersion == "" || strings.EqualFold(res.CurrentVersion, "dev") {
		res.Skipped, res.Reason = true, "development-build"
		return res, nil
	}
	running, err := parseVersion(res.CurrentVersion)
	if err != nil {
		res.Skipped, res.Reason = true, "invalid-current-version"
		return res, nil
	}

	store := openCache()
	if hit, ok := store.load(); ok && time.Since(hit.CheckedAt) < cacheTTL {
		res.LatestVersion, res.CheckedAt, res.FromCache = hit.LatestVersion, hit.CheckedAt, true
		res.Outdated = isOutdated(running, hit.LatestVersion)
		return res, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	latest, found, err := latestVersionFetcher(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch latest release: %w", err)
	}
	if !found {
		return res, nil
	}

	res.LatestVersion, res.CheckedAt = latest, time.Now()
	res.Outdated = isOutdated(running, latest)
	store.save(cacheEntry{CheckedAt: res.CheckedAt, LatestVersion: latest})
	return res, nil
}

func isOutdated(running *semver.Version, latest string) bool {
	v, err := parseVersion(latest)
	if err != nil {
		return false
	}
	return running.LessThan(v)
}

func parseVersion(v string) (*semver.Version, error) {
	v = strings.TrimLeft(strings.TrimSpace(v), "vV")
	if v == "" {
		return nil, fmt.Errorf("empty version")
	}
	return semver.NewVersion(v)
}
