package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// SessionHeader names the header that selects the working session.
const SessionHeader = "X-Session-ID"

// SessionResolver confirms that a session exists and marks it as active.
type SessionResolver interface {
	TouchSession(ctx context.Context, sessionID string) error
}

// RequireSession creates a Gin middleware that resolves the X-Session-ID header
// and stores the session id and an enriched logger in the request context.
func RequireSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			logger.Warn("Session header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": SessionHeader + " header required"})
			return
		}

		if err := sessions.TouchSession(c.Request.Context(), sessionID); err != nil {
			if errors.Is(err, apperrors.ErrSessionNotFound) {
				logger.Warn("Unknown session", slog.String("session_id", sessionID))
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
				return
			}
			logger.Error("Failed to resolve session", slog.String("session_id", sessionID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			return
		}

		enrichedLogger := logger.With(slog.String("session_id", sessionID))
		ctx := WithSessionID(c.Request.Context(), sessionID)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}
