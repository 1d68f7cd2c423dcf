package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fbtool/launcher/internal/arch"
	"github.com/fbtool/launcher/internal/config"
	"github.com/fbtool/launcher/internal/deps"
	"github.com/fbtool/launcher/internal/execx"
	"github.com/fbtool/launcher/internal/gitupdate"
	"github.com/fbtool/launcher/internal/launcher"
	"github.com/fbtool/launcher/internal/logging"
	"github.com/fbtool/launcher/internal/requirements"
	"github.com/fbtool/launcher/internal/runlock"
	"github.com/fbtool/launcher/internal/toolload"
	"github.com/fbtool/launcher/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const toolName = "Facebook Tool"

// Loader and pause are replaced in tests.
var (
	newToolLoader = toolload.NewHostLoader
	waitForEnter  = tui.WaitForEnter
)

func runLauncher(cmd *cobra.Command, o rootOptions) error {
	dir, err := filepath.Abs(o.dir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("working directory %s does not exist", dir)
	}

	cfg, err := config.Load(o.configPath, dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(o.logFile, o.debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}
	defer func() { _ = lock.Release() }()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	p := newPipeline(cfg, dir, o, logger, cmd, cancel)
	// The tool runs in-process and owns Ctrl+C from here on. Preparation is
	// over, so another launcher may start in this directory.
	p.BeforeLaunch = func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock", zap.Error(err))
		}
		stop()
	}

	logger.Info("launcher starting",
		zap.String("dir", dir),
		zap.String("artifact", cfg.Artifact),
		zap.Bool("no_update", o.noUpdate))

	out := p.Run(ctx)

	logger.Info("launcher finished",
		zap.Stringer("stage", out.Stage),
		zap.Bool("launched", out.Launched),
		zap.Bool("aborted", out.Aborted),
		zap.Bool("interrupted", out.Interrupted))
	return nil
}

func newPipeline(cfg *config.Config, dir string, o rootOptions, logger *zap.Logger, cmd *cobra.Command, cancel func()) *launcher.Pipeline {
	out := cmd.OutOrStdout()
	runner := execx.NewRunner()
	busy := func(text string, fn func()) { tui.RunBusy(text, cancel, fn) }

	var updater launcher.UpdateChecker
	if !o.noUpdate {
		updater = &gitupdate.Checker{
			Runner:  runner,
			Git:     cfg.Git,
			Dir:     dir,
			Timeout: cfg.Timeouts.Git,
			Out:     out,
			Logger:  logger.Named("git"),
			Busy:    busy,
		}
	}

	installer := &deps.Installer{
		Runner:         runner,
		Python:         cfg.Python,
		Packages:       cfg.Packages,
		Constraint:     cfg.PythonConstraint,
		CheckTimeout:   cfg.Timeouts.Check,
		InstallTimeout: cfg.Timeouts.Install,
		Out:            out,
		Logger:         logger.Named("deps"),
		Busy:           busy,
	}
	if cfg.YtdlpFallback {
		installer.Fallbacks = map[string]deps.Fallback{
			"yt-dlp": deps.StandaloneYtdlp(logger.Named("ytdlp")),
		}
	}

	packages := make([]string, 0, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		packages = append(packages, pkg.Dist)
	}

	pause := waitForEnter
	if o.noPause {
		pause = func() {}
	}

	return &launcher.Pipeline{
		Updater: updater,
		Arch:    arch.NewHostValidator(),
		Verify: func() requirements.Report {
			return requirements.Verify(dir, cfg.Required(), cfg.MarkerFile)
		},
		Installer: installer,
		Tool: &toolload.Launcher{
			Loader:  newToolLoader(),
			Path:    filepath.Join(dir, cfg.Artifact),
			Out:     out,
			Logger:  logger.Named("tool"),
			OnError: func(err error) { captureLaunchError(cmd, err) },
		},
		ToolName: toolName,
		Artifact: cfg.Artifact,
		Packages: packages,
		Out:      out,
		Logger:   logger,
		Pause:    pause,
		OnPanic: func(recovered any) {
			capturePanic(cmd, recovered)
		},
		OnStage: recordStage,
	}
}
