package cmd

import (
	"errors"
	"strings"

	"github.com/fbtool/launcher/internal/toolload"
)

// getErrorType categorizes errors for better Sentry grouping
func getErrorType(err error) string {
	switch {
	case errors.Is(err, toolload.ErrUnsupported):
		return "unsupported_platform"
	case errors.Is(err, toolload.ErrMissingCapability):
		return "missing_capability"
	case errors.Is(err, toolload.ErrNotConformant):
		return "bad_entry_point"
	case errors.Is(err, toolload.ErrPanic):
		return "tool_panic"
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "different version of package") ||
		strings.Contains(errStr, "wrong elf class") ||
		strings.Contains(errStr, "exec format"):
		return "abi_mismatch"

	case errors.Is(err, toolload.ErrImport):
		return "import_error"

	case strings.Contains(errStr, "permission denied"):
		return "permission_error"

	case strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "dial") ||
		strings.Contains(errStr, "no route to host"):
		return "network_error"

	case strings.Contains(errStr, "config") ||
		strings.Contains(errStr, "yaml"):
		return "config_error"

	case strings.Contains(errStr, "tool exited"):
		return "tool_error"

	default:
		return "unknown_error"
	}
}
