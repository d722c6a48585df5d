package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	"github.com/google/uuid"
)

type sessionEntry struct {
	session domain.Session
	store   *RecordStore
}

// SessionRegistry keeps one RecordStore per working session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

var _ portsrepo.SessionRepository = (*SessionRegistry)(nil)

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*sessionEntry)}
}

// Create starts a session with a fresh store.
func (r *SessionRegistry) Create(now time.Time) domain.Session {
	session := domain.Session{
		SessionID:  uuid.NewString(),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	r.mu.Lock()
	r.sessions[session.SessionID] = &sessionEntry{session: session, store: NewRecordStore()}
	r.mu.Unlock()
	return session
}

// Get returns the session's store and bumps its last-seen time.
func (r *SessionRegistry) Get(sessionID string, now time.Time) (domain.Session, portsrepo.RecordStoreFacade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sessionID]
	if !ok {
		return domain.Session{}, nil, fmt.Errorf("%w: %s", apperrors.ErrSessionNotFound, sessionID)
	}
	if now.After(entry.session.LastSeenAt) {
		entry.session.LastSeenAt = now
	}
	return entry.session, entry.store, nil
}

// End removes the session.
func (r *SessionRegistry) End(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrSessionNotFound, sessionID)
	}
	delete(r.sessions, sessionID)
	return nil
}

// Sweep ends sessions last seen before cutoff.
func (r *SessionRegistry) Sweep(cutoff time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []string
	for id, entry := range r.sessions {
		if entry.session.LastSeenAt.Before(cutoff) {
			delete(r.sessions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// RunSweeper ends idle sessions every interval until ctx is cancelled.
func (r *SessionRegistry) RunSweeper(ctx context.Context, logger *slog.Logger, interval, idleTimeout time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			expired := r.Sweep(now.UTC().Add(-idleTimeout))
			if len(expired) > 0 {
				logger.Info("Expired idle sessions", slog.Int("count", len(expired)), slog.Int("remaining", r.Len()))
			}
		}
	}
}
