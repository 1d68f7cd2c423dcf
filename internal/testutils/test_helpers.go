package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

type TestWorkspace struct {
	Dir      string
	Artifact string
	Marker   string
}

// WorkspaceOption tweaks SetupWorkspace.
type WorkspaceOption func(t *testing.T, ws *TestWorkspace)

// WithGitDir creates an empty .git directory.
func WithGitDir() WorkspaceOption {
	return func(t *testing.T, ws *TestWorkspace) {
		if err := os.MkdirAll(filepath.Join(ws.Dir, ".git"), 0o755); err != nil {
			t.Fatalf("Failed to create .git directory: %v", err)
		}
	}
}

// WithArtifact writes the compiled artifact.
func WithArtifact() WorkspaceOption {
	return func(t *testing.T, ws *TestWorkspace) {
		WriteFile(t, ws.Artifact, "mock plugin content")
	}
}

// WithMarker writes the marker file.
func WithMarker() WorkspaceOption {
	return func(t *testing.T, ws *TestWorkspace) {
		WriteFile(t, ws.Marker, "ok")
	}
}

// SetupWorkspace creates a temp working directory laid out like a launcher
// checkout. Files are only created when the matching option is passed.
func SetupWorkspace(t *testing.T, opts ...WorkspaceOption) *TestWorkspace {
	t.Helper()
	dir := t.TempDir()
	ws := &TestWorkspace{
		Dir:      dir,
		Artifact: filepath.Join(dir, "main.so"),
		Marker:   filepath.Join(dir, "checker.txt"),
	}
	for _, opt := range opts {
		opt(t, ws)
	}
	return ws
}

func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
