// Package config holds launcher settings. Every field has a default, so the
// launcher runs without any config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config is given.
const DefaultFileName = "fbtool.yaml"

// Package is a Python distribution and the module name it is imported under.
type Package struct {
	Dist   string `yaml:"dist"`
	Import string `yaml:"import,omitempty"`
}

// ImportName returns Import, falling back to Dist.
func (p Package) ImportName() string {
	if p.Import != "" {
		return p.Import
	}
	return p.Dist
}

type Timeouts struct {
	Git     time.Duration `yaml:"git"`
	Install time.Duration `yaml:"install"`
	Check   time.Duration `yaml:"check"`
}

type Config struct {
	// Artifact is the compiled plugin loaded by the final step.
	Artifact      string    `yaml:"artifact"`
	RequiredFiles []string  `yaml:"required_files"`
	MarkerFile    string    `yaml:"marker_file"`
	Packages      []Package `yaml:"packages"`

	Git    string `yaml:"git"`
	Python string `yaml:"python"`
	// PythonConstraint is a semver constraint checked against `python --version`.
	PythonConstraint string `yaml:"python_constraint"`
	YtdlpFallback    bool   `yaml:"ytdlp_fallback"`

	Timeouts Timeouts `yaml:"timeouts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Artifact:   "main.so",
		MarkerFile: "checker.txt",
		Packages: []Package{
			{Dist: "yt-dlp", Import: "yt_dlp"},
			{Dist: "requests"},
			{Dist: "colorama"},
		},
		Git:              "git",
		Python:           defaultPython(),
		PythonConstraint: "~3.12",
		Timeouts: Timeouts{
			Git:     2 * time.Minute,
			Install: 5 * time.Minute,
			Check:   30 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFileName in
// dir and silently falls back to the defaults when it does not exist.
func Load(path, dir string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Required returns the files that must exist before launch. When
// RequiredFiles is unset the artifact alone is required.
func (c *Config) Required() []string {
	if len(c.RequiredFiles) > 0 {
		return c.RequiredFiles
	}
	return []string{c.Artifact}
}

func (c *Config) Validate() error {
	if c.Artifact == "" {
		return errors.New("artifact must not be empty")
	}
	if c.Git == "" {
		return errors.New("git must not be empty")
	}
	if c.Python == "" {
		return errors.New("python must not be empty")
	}
	for i, p := range c.Packages {
		if p.Dist == "" {
			return fmt.Errorf("packages[%d]: dist must not be empty", i)
		}
	}
	if c.Timeouts.Git < 0 || c.Timeouts.Install < 0 || c.Timeouts.Check < 0 {
		return errors.New("timeouts must not be negative")
	}
	return nil
}
