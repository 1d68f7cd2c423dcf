// Package gitupdate keeps the launcher's working copy in sync with its remote.
// Every failure here is non-fatal: an out of date checkout still launches.
package gitupdate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fbtool/launcher/internal/execx"
	"github.com/fbtool/launcher/tui"
	"go.uber.org/zap"
)

const behindMarker = "Your branch is behind"

// Checker runs the git update step.
type Checker struct {
	Runner  execx.Runner
	Git     string
	Dir     string
	Timeout time.Duration
	Out     io.Writer
	Logger  *zap.Logger
	// Busy wraps long running commands, e.g. with a spinner.
	Busy func(text string, fn func())
}

// Check synchronizes the working copy. It returns false only when a pull was
// attempted and failed.
func (c *Checker) Check(ctx context.Context) bool {
	log := c.logger()

	if _, err := os.Stat(filepath.Join(c.Dir, ".git")); err != nil {
		c.println(tui.RenderWarningSimple("Not a git repository, skipping update check"))
		return true
	}

	version, err := c.git(ctx, "--version")
	if err != nil {
		if errors.Is(err, execx.ErrNotFound) {
			c.println(tui.RenderWarningSimple("Git not installed, skipping update check"))
			return true
		}
		return c.unexpected(ctx, err)
	}
	if !version.Success() {
		return c.unexpected(ctx, fmt.Errorf("git --version exited with status %d", version.ExitCode))
	}

	c.println(tui.RenderInfo("Fetching updates..."))
	fetch, err := c.busyGit(ctx, "Fetching updates...", "fetch")
	if err != nil {
		return c.unexpected(ctx, err)
	}
	if !fetch.Success() {
		log.Warn("git fetch failed", zap.Int("exit_code", fetch.ExitCode), zap.String("stderr", fetch.Stderr))
		c.println(tui.RenderWarningSimple("Failed to fetch updates"))
		return true
	}

	status, err := c.git(ctx, "status", "-uno")
	if err != nil {
		return c.unexpected(ctx, err)
	}

	if !strings.Contains(status.Stdout, behindMarker) {
		c.println(tui.RenderSuccessSimple("Already up to date!"))
		return true
	}

	c.println(tui.RenderSuccessSimple("Updates available! Pulling latest changes..."))
	pull, err := c.busyGit(ctx, "Pulling latest changes...", "pull")
	if err != nil {
		return c.unexpected(ctx, err)
	}
	if !pull.Success() {
		log.Warn("git pull failed", zap.Int("exit_code", pull.ExitCode), zap.String("stderr", pull.Stderr))
		c.println(tui.RenderFailure("Failed to update: " + strings.TrimSpace(pull.Stderr)))
		return false
	}

	log.Info("working copy updated", zap.Duration("duration", pull.Duration))
	c.println(tui.RenderSuccessSimple("Successfully updated to latest version!"))
	return true
}

func (c *Checker) git(ctx context.Context, args ...string) (execx.Result, error) {
	name := c.Git
	if name == "" {
		name = "git"
	}
	return c.Runner.Run(ctx, execx.Command{
		Name: name,
		Args: args,
		Dir:  c.Dir,
		// status text is matched literally
		Env:     []string{"LC_ALL=C"},
		Timeout: c.Timeout,
	})
}

func (c *Checker) busyGit(ctx context.Context, text string, args ...string) (res execx.Result, err error) {
	run := func() { res, err = c.git(ctx, args...) }
	if c.Busy == nil {
		run()
		return res, err
	}
	c.Busy(text, run)
	return res, err
}

// unexpected reports err and lets the run continue. A cancelled context is
// left for the caller to report.
func (c *Checker) unexpected(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		c.logger().Info("update check interrupted", zap.Error(err))
		return true
	}
	c.logger().Warn("update check failed", zap.Error(err))
	c.println(tui.RenderFailure(fmt.Sprintf("Error checking updates: %v", err)))
	return true
}

func (c *Checker) println(s string) {
	if c.Out == nil {
		return
	}
	fmt.Fprintln(c.Out, s)
}

func (c *Checker) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
