package cmd

import (
	"context"
	"fmt"

	"github.com/fbtool/launcher/internal/updatecheck"
	"github.com/fbtool/launcher/internal/version"
	"github.com/fbtool/launcher/tui"
	"github.com/spf13/cobra"
)

// checkLatest is replaced in tests.
var checkLatest = updatecheck.Check

// checkForLauncherUpdate prints a one-line notice when a newer launcher
// release exists. Failures are silent.
func checkForLauncherUpdate(cmd *cobra.Command) {
	if shouldSkipUpdateCheck(cmd) || selfUpdateDisabled() {
		return
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := checkLatest(ctx, version.BuildVersion)
	if err != nil || res.Skipped || !res.Outdated {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderUpdateAvailable(
		displayVersion(res.CurrentVersion), displayVersion(res.LatestVersion)))
	fmt.Fprintln(cmd.OutOrStdout())
}

func shouldSkipUpdateCheck(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	for current := cmd; current != nil; current = current.Parent() {
		switch current.Name() {
		case "help", "completion", "version":
			return true
		}

		if current.Annotations != nil && current.Annotations["skipUpdateCheck"] == "true" {
			return true
		}
	}

	if helpFlag := cmd.Flags().Lookup("help"); helpFlag != nil && helpFlag.Changed {
		return true
	}
	if noUpdate := cmd.Flags().Lookup("no-update"); noUpdate != nil && noUpdate.Changed && noUpdate.Value.String() == "true" {
		return true
	}

	return false
}
