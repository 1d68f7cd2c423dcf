package sentry

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config holds Sentry configuration options
type Config struct {
	DSN              string
	Environment      string // "dev" or "production"
	Release          string // e.g., "fbtool@1.4.0"
	Debug            bool
	SampleRate       float64
	TracesSampleRate float64
	FilteredErrors   []string // Error messages to filter out

	ServiceName string
	InstanceID  string
}

var enabled bool

// Init initializes Sentry. An empty DSN leaves reporting disabled.
func Init(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
		SampleRate:       cfg.SampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		EnableTracing:    cfg.TracesSampleRate > 0,
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			if shouldDrop(event, cfg.FilteredErrors) {
				return nil
			}
			if event.Extra == nil {
				event.Extra = make(map[string]interface{})
			}
			event.Extra["service_name"] = cfg.ServiceName
			event.Extra["instance_id"] = cfg.InstanceID
			return event
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	enabled = true

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", cfg.ServiceName)
		scope.SetTag("environment", cfg.Environment)
		if cfg.InstanceID != "" {
			scope.SetTag("instance_id", cfg.InstanceID)
		}
	})
	return nil
}

func shouldDrop(event *sentry.Event, filtered []string) bool {
	for _, f := range filtered {
		if event.Message != "" && strings.Contains(event.Message, f) {
			return true
		}
		for _, exception := range event.Exception {
			if strings.Contains(exception.Value, f) {
				return true
			}
		}
	}
	return false
}

// Enabled reports whether Init configured a client.
func Enabled() bool {
	return enabled
}

// Flush flushes buffered events with timeout
func Flush(timeout time.Duration) bool {
	if !enabled {
		return true
	}
	return sentry.Flush(timeout)
}

// CaptureError captures an error with typed options
func CaptureError(err error, opts *EventOptions) *sentry.EventID {
	if err == nil || !enabled {
		return nil
	}

	var eventID *sentry.EventID
	sentry.WithScope(func(scope *sentry.Scope) {
		opts.apply(scope)
		eventID = sentry.CaptureException(err)
	})
	return eventID
}

// CaptureRecovered reports a value already recovered from a panic.
func CaptureRecovered(recovered any, opts *EventOptions) {
	if recovered == nil || !enabled {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelFatal)
		opts.apply(scope)
		sentry.CurrentHub().Recover(recovered)
	})
	sentry.Flush(5 * time.Second)
}

// AddBreadcrumb adds a breadcrumb for context tracking
func AddBreadcrumb(category string, message string, data map[string]interface{}, level Level) {
	if !enabled {
		return
	}
	sentry.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "default",
		Category:  category,
		Message:   message,
		Data:      data,
		Level:     sentry.Level(level),
		Timestamp: time.Now(),
	})
}

// Level is a Sentry severity level (re-exported for convenience)
type Level = sentry.Level

const (
	LevelDebug   = sentry.LevelDebug
	LevelInfo    = sentry.LevelInfo
	LevelWarning = sentry.LevelWarning
	LevelError   = sentry.LevelError
	LevelFatal   = sentry.LevelFatal
)

// GetEnvironment maps a build version to a Sentry environment.
func GetEnvironment(buildVersion string) string {
	if buildVersion == "" || buildVersion == "dev" {
		return "dev"
	}
	if env := os.Getenv("FBTOOL_ENVIRONMENT"); env != "" {
		return env
	}
	return "production"
}

// GetInstanceID returns an instance identifier
func GetInstanceID() string {
	if id := os.Getenv("HOSTNAME"); id != "" {
		return id
	}
	if id := os.Getenv("COMPUTERNAME"); id != "" {
		return id
	}
	return "unknown"
}
