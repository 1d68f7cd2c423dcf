// Package deps makes sure the Python packages used by the tool are importable.
package deps

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/fbtool/launcher/internal/config"
	"github.com/fbtool/launcher/internal/execx"
	"github.com/fbtool/launcher/tui"
	"go.uber.org/zap"
)

// Fallback installs a package some other way after pip failed.
type Fallback func(ctx context.Context) error

type Installer struct {
	Runner   execx.Runner
	Python   string
	Packages []config.Package
	// Constraint is checked against the interpreter version; a mismatch only warns.
	Constraint string
	Fallbacks  map[string]Fallback

	CheckTimeout   time.Duration
	InstallTimeout time.Duration

	Out    io.Writer
	Logger *zap.Logger
	Busy   func(text string, fn func())
}

// Ensure checks each package in order and installs the missing ones. It stops
// and returns false at the first package that cannot be installed. Once ctx is
// cancelled it returns false without starting pip or printing failures.
func (i *Installer) Ensure(ctx context.Context) bool {
	i.checkInterpreter(ctx)

	for _, pkg := range i.Packages {
		if ctx.Err() != nil {
			return false
		}
		importable := i.importable(ctx, pkg)
		if ctx.Err() != nil {
			return false
		}
		if importable {
			i.println(tui.RenderSuccessSimple(pkg.Dist + " already installed"))
			continue
		}

		i.println(tui.RenderWarningSimple("Installing " + pkg.Dist + "..."))
		if err := i.install(ctx, pkg); err != nil {
			if ctx.Err() != nil {
				i.logger().Info("package install interrupted", zap.String("package", pkg.Dist))
				return false
			}
			i.logger().Warn("package install failed", zap.String("package", pkg.Dist), zap.Error(err))
			if !i.tryFallback(ctx, pkg) {
				i.println(tui.RenderFailure("Failed to install " + pkg.Dist))
				return false
			}
			continue
		}
		i.println(tui.RenderSuccessSimple(pkg.Dist + " installed successfully"))
	}
	return true
}

func (i *Installer) importable(ctx context.Context, pkg config.Package) bool {
	res, err := i.Runner.Run(ctx, execx.Command{
		Name:    i.Python,
		Args:    []string{"-c", "import " + pkg.ImportName()},
		Timeout: i.CheckTimeout,
	})
	return err == nil && res.Success()
}

func (i *Installer) install(ctx context.Context, pkg config.Package) error {
	var (
		res execx.Result
		err error
	)
	run := func() {
		res, err = i.Runner.Run(ctx, execx.Command{
			Name:    i.Python,
			Args:    []string{"-m", "pip", "install", pkg.Dist, "-q"},
			Timeout: i.InstallTimeout,
		})
	}
	if i.Busy != nil {
		i.Busy("Installing "+pkg.Dist+"...", run)
	} else {
		run()
	}

	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("pip exited with status %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

func (i *Installer) tryFallback(ctx context.Context, pkg config.Package) bool {
	fb, ok := i.Fallbacks[pkg.Dist]
	if !ok {
		return false
	}
	i.println(tui.RenderWarningSimple("pip failed, trying standalone " + pkg.Dist + "..."))
	if err := fb(ctx); err != nil {
		i.logger().Warn("fallback install failed", zap.String("package", pkg.Dist), zap.Error(err))
		return false
	}
	// The Python module is still missing; only the command line binary exists.
	i.println(tui.RenderWarningSimple("Installed standalone " + pkg.Dist + " binary; the Python module is still unavailable"))
	return true
}

// checkInterpreter warns when the interpreter is missing or outside Constraint.
func (i *Installer) checkInterpreter(ctx context.Context) {
	if i.Constraint == "" {
		return
	}
	res, err := i.Runner.Run(ctx, execx.Command{
		Name:    i.Python,
		Args:    []string{"--version"},
		Timeout: i.CheckTimeout,
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil || !res.Success() {
		i.println(tui.RenderWarningSimple(fmt.Sprintf("Could not run %s --version", i.Python)))
		return
	}

	// Python 2 and early 3.x print the version on stderr.
	raw := strings.TrimSpace(res.Stdout)
	if raw == "" {
		raw = strings.TrimSpace(res.Stderr)
	}
	ok, v, err := MatchesConstraint(raw, i.Constraint)
	if err != nil {
		i.logger().Debug("unparseable python version", zap.String("output", raw), zap.Error(err))
		return
	}
	i.println(tui.RenderInfo("Python version: " + v))
	if !ok {
		i.println(tui.RenderWarningSimple(fmt.Sprintf("Python %s does not satisfy %s; the tool may fail to start", v, i.Constraint)))
	}
}

// MatchesConstraint parses output such as "Python 3.12.1" and checks it
// against a semver constraint.
func MatchesConstraint(output, constraint string) (bool, string, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(output), "Python"))
	v, err := semver.NewVersion(raw)
	if err != nil {
		return false, raw, fmt.Errorf("parse python version %q: %w", raw, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, v.String(), fmt.Errorf("parse constraint %q: %w", constraint, err)
	}
	return c.Check(v), v.String(), nil
}

func (i *Installer) println(s string) {
	if i.Out == nil {
		return
	}
	fmt.Fprintln(i.Out, s)
}

func (i *Installer) logger() *zap.Logger {
	if i.Logger == nil {
		return zap.NewNop()
	}
	return i.Logger
}
