// Package sentryreport wraps getsentry/sentry-go as a minimal error capture
// point, fired on job failure when SENTRY_DSN is configured. Absent a DSN it
// is a no-op, matching the source's optional Sentry integration.
package sentryreport

import (
	"sync"

	"github.com/getsentry/sentry-go"
)

var (
	mu      sync.Mutex
	enabled bool
)

// Init configures the global Sentry client. Call once at startup with the
// configured DSN; an empty dsn leaves reporting disabled.
func Init(dsn string) error {
	mu.Lock()
	defer mu.Unlock()
	if dsn == "" {
		enabled = false
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return err
	}
	enabled = true
	return nil
}

// CaptureMessage reports msg to Sentry if enabled.
func CaptureMessage(msg string) {
	mu.Lock()
	on := enabled
	mu.Unlock()
	if !on {
		return
	}
	sentry.CaptureMessage(msg)
}
