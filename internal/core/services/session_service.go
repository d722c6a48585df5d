package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/middleware"
)

type sessionService struct {
	BaseService
}

// SessionServiceOption configures the session service
type SessionServiceOption func(*sessionService)

// WithSessionClock overrides the clock used to stamp session activity.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.Now = now
	}
}

// NewSessionService creates a new session service backed by the given registry.
func NewSessionService(sessions portsrepo.SessionRepository, options ...SessionServiceOption) portssvc.SessionSvcFacade {
	svc := &sessionService{BaseService: newBaseService(sessions)}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var (
	_ portssvc.SessionSvcFacade = (*sessionService)(nil)
	_ middleware.SessionResolver = (*sessionService)(nil)
)

func (s *sessionService) CreateSession(ctx context.Context) domain.Session {
	session := s.Sessions.Create(s.Now())
	s.LogInfo(ctx, "Session created", slog.String("session_id", session.SessionID))
	return session
}

func (s *sessionService) TouchSession(ctx context.Context, sessionID string) error {
	_, err := s.Store(ctx, sessionID)
	return err
}

func (s *sessionService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.Sessions.End(sessionID); err != nil {
		s.LogError(ctx, err, "Failed to end session", slog.String("session_id", sessionID))
		return err
	}
	s.LogInfo(ctx, "Session ended", slog.String("session_id", sessionID))
	return nil
}

func (s *sessionService) ResetSession(ctx context.Context, sessionID string) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	store.Reset()
	s.LogInfo(ctx, "Session records cleared", slog.String("session_id", sessionID))
	return nil
}

func (s *sessionService) ActiveSessions(ctx context.Context) int {
	return s.Sessions.Len()
}
