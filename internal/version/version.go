// Package version holds values injected at build time with -ldflags "-X".
package version

var (
	BuildVersion = "dev"
	BuildCommit  = "none"
	// SentryDSN enables crash reporting when non-empty.
	SentryDSN = ""
)

// ReleaseSlug is the GitHub repository that publishes launcher releases.
const ReleaseSlug = "fbtool/launcher"
