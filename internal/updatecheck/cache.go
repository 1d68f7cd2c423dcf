package updatecheck

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cacheEnv = "FBTOOL_UPDATE_CACHE_DIR"

type cacheEntry struct {
	CheckedAt     time.Time `json:"checked_at"`
	LatestVersion string    `json:"latest_version"`
}

// cache is the on-disk memo of the last release lookup. An empty path
// disables it.
type cache struct {
	path string
}

func openCache() cache {
	dir := cacheDir()
	if dir == "" || os.MkdirAll(dir, 0o755) != nil {
		return cache{}
	}
	return cache{path: filepath.Join(dir, "latest.json")}
}

func cacheDir() string {
	if dir := os.Getenv(cacheEnv); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "fbtool")
}

func (c cache) load() (cacheEntry, bool) {
	var e cacheEntry
	if c.path == "" {
		return e, false
	}
	data, err := os.ReadFile(c.path)
	if err != nil || json.Unmarshal(data, &e) != nil {
		return cacheEntry{}, false
	}
	return e, true
}

// save is best effort; a read-only cache dir only costs a refetch next run.
func (c cache) save(e cacheEntry) {
	if c.path == "" {
		return
	}
	if data, err := json.Marshal(e); err == nil {
		_ = os.WriteFile(c.path, data, 0o644)
	}
}
