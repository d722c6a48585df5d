package services

import (
	"context"

	"github.com/SscSPs/posync/internal/core/domain"
)

// SessionSvcFacade manages working sessions.
type SessionSvcFacade interface {
	// CreateSession starts a session with an empty record store.
	CreateSession(ctx context.Context) domain.Session

	// TouchSession confirms the session exists and marks it active.
	TouchSession(ctx context.Context, sessionID string) error

	// EndSession discards the session and every record it holds.
	EndSession(ctx context.Context, sessionID string) error

	// ResetSession clears every record of the session but keeps its id (new working day).
	ResetSession(ctx context.Context, sessionID string) error

	// ActiveSessions returns the number of live sessions.
	ActiveSessions(ctx context.Context) int
}
