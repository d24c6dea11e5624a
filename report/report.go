// Package report reports errors from processing payloads: to the log, and to Sentry if it's set up.
package report

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/starshine-sys/discache/common/log"
)

type Reporter struct {
	hub *sentry.Hub
}

// New returns a reporter. If dsn is empty, errors are only logged.
func New(dsn, release string) (*Reporter, error) {
	if dsn == "" {
		log.Debugf("sentry DSN was not provided, not setting it up")
		return &Reporter{}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: release,
	})
	if err != nil {
		return nil, err
	}
	return &Reporter{hub: sentry.CurrentHub()}, nil
}

// Report logs err, captures it in Sentry if enabled, and returns an error code for it.
// The code is the Sentry event ID, or a random UUID if Sentry is disabled.
func (r *Reporter) Report(event string, err error) string {
	if r.hub == nil {
		code := uuid.New().String()
		log.Errorf("Error processing %v (code %v): %v", event, code, err)
		return code
	}

	hub := r.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("event", event)
	})

	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Data: map[string]any{
			"event": event,
		},
		Level:     sentry.LevelError,
		Timestamp: time.Now().UTC(),
	}, nil)

	id := hub.CaptureException(err)
	if id == nil {
		uid := uuid.New().String()
		id = (*sentry.EventID)(&uid)
	}

	log.Errorf("Error processing %v (code %v): %v", event, string(*id), err)
	return string(*id)
}

// Flush waits for queued Sentry events to be sent.
func (r *Reporter) Flush(timeout time.Duration) {
	if r.hub != nil {
		r.hub.Flush(timeout)
	}
}
