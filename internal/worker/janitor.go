// Package worker holds the background loops that run alongside the HTTP
// server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"tracker.app/api-server/internal/store"
)

// SessionJanitor periodically removes expired sessions. Reads already treat
// expired sessions as absent; this loop only keeps the collection from
// growing without bound.
type SessionJanitor struct {
	sessions store.SessionStore
	interval time.Duration
}

func NewSessionJanitor(sessions store.SessionStore, interval time.Duration) *SessionJanitor {
	return &SessionJanitor{sessions: sessions, interval: interval}
}

// Run blocks until ctx is cancelled.
func (j *SessionJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "session janitor started", "interval", j.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.sessions.DeleteExpired(ctx); err != nil {
				slog.ErrorContext(ctx, "failed to delete expired sessions", "error", err)
			}
		}
	}
}
