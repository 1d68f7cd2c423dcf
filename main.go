package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/fbtool/launcher/cmd"
	"github.com/fbtool/launcher/internal/console"
	"github.com/fbtool/launcher/internal/version"
	"github.com/fbtool/launcher/sentry"
	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	console.Init()

	_ = initSentry()
	defer sentry.Flush(5 * time.Second)

	// Wrap execution with panic recovery
	defer func() {
		if r := recover(); r != nil {
			sentry.CaptureRecovered(r, nil)
			panic(r)
		}
	}()

	cmd.Execute()
}

func initSentry() error {
	// DSN is injected at build time - if empty, Sentry is disabled
	if version.SentryDSN == "" {
		return nil
	}

	err := sentry.Init(sentry.Config{
		DSN:              version.SentryDSN,
		Environment:      sentry.GetEnvironment(version.BuildVersion),
		Release:          fmt.Sprintf("fbtool@%s", version.BuildVersion),
		SampleRate:       1.0,
		TracesSampleRate: 0,
		FilteredErrors:   []string{"context canceled"},
		ServiceName:      "fbtool",
		InstanceID:       sentry.GetInstanceID(),
	})
	if err != nil {
		return err
	}

	sentrygo.ConfigureScope(func(scope *sentrygo.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("build_commit", version.BuildCommit)
	})
	return nil
}
