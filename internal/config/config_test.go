package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"main.so"}, cfg.Required())
	assert.Equal(t, "checker.txt", cfg.MarkerFile)
	require.Len(t, cfg.Packages, 3)
	assert.Equal(t, "yt_dlp", cfg.Packages[0].ImportName())
	assert.Equal(t, "requests", cfg.Packages[1].ImportName())
	assert.Equal(t, "colorama", cfg.Packages[2].ImportName())
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestRequiredFollowsArtifact(t *testing.T) {
	cfg := Default()
	cfg.Artifact = "tool.so"
	assert.Equal(t, []string{"tool.so"}, cfg.Required())
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	data := `
artifact: tool.so
required_files: [tool.so, extra.bin]
python: /usr/bin/python3.12
ytdlp_fallback: true
timeouts:
  install: 90s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(data), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "tool.so", cfg.Artifact)
	assert.Equal(t, []string{"tool.so", "extra.bin"}, cfg.Required())
	assert.Equal(t, "/usr/bin/python3.12", cfg.Python)
	assert.True(t, cfg.YtdlpFallback)
	assert.Equal(t, 90*time.Second, cfg.Timeouts.Install)
	// untouched fields keep their defaults
	assert.Equal(t, "checker.txt", cfg.MarkerFile)
	assert.Equal(t, 2*time.Minute, cfg.Timeouts.Git)
	assert.Len(t, cfg.Packages, 3)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("packages:\n  - import: foo\n"), 0o644))

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dist must not be empty")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artifact: [unterminated"), 0o644))

	_, err := Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
