package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/fbtool/launcher/internal/updatecheck"
	"github.com/fbtool/launcher/internal/version"
	"github.com/fbtool/launcher/tui"
	"github.com/spf13/cobra"
)

var errManagedInstall = errors.New("cannot self-update: installation is managed by a package manager")

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update fbtool to the latest version",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		"skipUpdateCheck": "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSelfUpdate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(selfUpdateCmd)
}

func releaseSlug() string {
	return version.ReleaseSlug
}

func runSelfUpdate(parent context.Context) error {
	if selfUpdateDisabled() {
		return fmt.Errorf("self-update is disabled (%s=1)", noSelfUpdateEnv)
	}

	binPath, err := getCurrentBinaryPath()
	if err != nil {
		return err
	}

	if pm := detectPackageManager(binPath); pm != "" {
		fmt.Println(tui.RenderPMInstructions(pm))
		return errManagedInstall
	}

	if !userWritable(binPath) {
		return errors.New("install path is not writable by current user; re-install under your home directory or use your package manager")
	}

	currentVersion := version.BuildVersion
	if currentVersion == "dev" || currentVersion == "" {
		PrintWarning(fmt.Sprintf("Development build detected. Download the latest version from https://github.com/%s/releases", releaseSlug()))
		return nil
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 5*time.Minute)
	defer cancel()

	latest, found, err := updatecheck.Latest(ctx)
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(currentVersion) {
		fmt.Println(tui.RenderUpToDate(displayVersion(currentVersion)))
		return nil
	}

	fmt.Println(tui.RenderUpdating(displayVersion(currentVersion), displayVersion(latest.Version())))

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		fmt.Println(tui.RenderUpdateFailed(err, releaseURL(latest.Version())))
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Println(tui.RenderUpdateSuccess(displayVersion(latest.Version())))
	return nil
}
