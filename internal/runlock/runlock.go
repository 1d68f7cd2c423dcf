// Package runlock keeps two launchers from preparing the same working
// directory at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// StaleAfter is how old a lock may get before it is ignored even if its
// owner still appears alive.
const StaleAfter = 30 * time.Minute

// writeGrace is how long an unreadable lock file counts as held; its owner
// may have created it and not yet written the pid.
const writeGrace = 5 * time.Second

const lockDirEnv = "FBTOOL_LOCK_DIR"

var ErrLocked = errors.New("another fbtool launcher is already preparing this directory")

type Lock struct {
	path string
}

// Dir returns the directory lock files live in.
func Dir() string {
	if dir := os.Getenv(lockDirEnv); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "fbtool", "locks")
}

// PathFor returns the lock file for a working directory.
func PathFor(workDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(workDir)))
	return filepath.Join(Dir(), "run-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for workDir. Locks left by dead processes or older
// than StaleAfter are removed first.
func Acquire(workDir string) (*Lock, error) {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create locks directory: %w", err)
	}

	path := PathFor(workDir)
	switch inspect(path) {
	case lockHeld:
		return nil, ErrLocked
	case lockStale:
		_ = os.Remove(path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "%d\n%d\n%s\n", os.Getpid(), time.Now().Unix(), workDir); err != nil {
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	err := os.Remove(l.path)
	l.path = ""
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

type lockState int

const (
	lockFree lockState = iota
	lockHeld
	lockStale
)

// inspect classifies the lock file at path. Only a file whose owner is
// provably gone, or that is too old to matter, is stale.
func inspect(path string) lockState {
	info, err := os.Stat(path)
	if err != nil {
		return lockFree
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return lockHeld
	}

	pid, ts, ok := parse(data)
	if !ok {
		if time.Since(info.ModTime()) < writeGrace {
			return lockHeld
		}
		return lockStale
	}
	if time.Since(time.Unix(ts, 0)) < StaleAfter && processAlive(pid) {
		return lockHeld
	}
	return lockStale
}

func parse(data []byte) (pid int, ts int64, ok bool) {
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return 0, 0, false
	}
	pid, err := strconv.Atoi(lines[0])
	if err != nil {
		return 0, 0, false
	}
	ts, err = strconv.ParseInt(lines[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return pid, ts, true
}
