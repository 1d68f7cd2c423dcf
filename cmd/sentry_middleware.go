package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/fbtool/launcher/internal/launcher"
	"github.com/fbtool/launcher/internal/toolload"
	"github.com/fbtool/launcher/internal/version"
	"github.com/fbtool/launcher/sentry"
	"github.com/spf13/cobra"
)

func commandTags(cmd *cobra.Command) *sentry.Tags {
	return sentry.NewTags().
		Set("command", cmd.Name()).
		Set("version", version.BuildVersion).
		Set("goarch", runtime.GOARCH)
}

// captureLaunchError reports a tool that failed to start or run. A missing
// plugin loader on this platform is expected and not reported.
func captureLaunchError(cmd *cobra.Command, err error) {
	if err == nil || errors.Is(err, toolload.ErrUnsupported) {
		return
	}

	eventID := sentry.CaptureError(err, &sentry.EventOptions{
		Tags:  commandTags(cmd).Set("error_type", getErrorType(err)),
		Extra: sentry.NewExtra().Set("args", cmd.Flags().Args()),
		Level: ptr(getLogLevelForError(err)),
	})

	if eventID != nil {
		// os.Exit in Execute skips deferred flushes.
		sentry.Flush(2 * time.Second)
	}
}

// capturePanic reports a panic recovered by the pipeline.
func capturePanic(cmd *cobra.Command, recovered any) {
	sentry.CaptureRecovered(recovered, &sentry.EventOptions{
		Tags:        commandTags(cmd).Set("error_type", "launcher_panic"),
		Fingerprint: []string{"launcher-panic", fmt.Sprintf("%T", recovered)},
	})
}

// recordStage leaves a breadcrumb so a later report shows how far the run got.
func recordStage(stage launcher.Stage) {
	sentry.AddBreadcrumb("launcher", "entered "+stage.String(), nil, sentry.LevelInfo)
}

func ptr[T any](v T) *T {
	return &v
}

// getLogLevelForError determines the Sentry level for a launch error.
func getLogLevelForError(err error) sentry.Level {
	switch getErrorType(err) {
	case "tool_panic", "abi_mismatch":
		return sentry.LevelFatal
	case "network_error", "permission_error":
		return sentry.LevelWarning
	default:
		return sentry.LevelError
	}
}
