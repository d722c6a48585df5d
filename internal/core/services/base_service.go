package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	"github.com/SscSPs/posync/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Sessions portsrepo.SessionRepository
	Now      func() time.Time
}

func newBaseService(sessions portsrepo.SessionRepository) BaseService {
	return BaseService{Sessions: sessions, Now: time.Now}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// Store resolves the record store owned by a session and marks the session as seen.
func (s *BaseService) Store(ctx context.Context, sessionID string) (portsrepo.RecordStoreFacade, error) {
	_, store, err := s.Sessions.Get(sessionID, s.Now())
	if err != nil {
		s.LogDebug(ctx, "Session lookup failed", slog.String("session_id", sessionID))
		return nil, err
	}
	return store, nil
}
