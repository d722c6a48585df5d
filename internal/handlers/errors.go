package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto a status code and a {"error": ...} body.
// Server errors hide the cause behind "Failed to <action>".
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSessionNotFound):
		logger.Warn("Session not found", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Record not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMalformedImportData):
		logger.Warn("Malformed upload", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Request failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// sessionFromContext returns the session id resolved by middleware.RequireSession.
func sessionFromContext(c *gin.Context, logger *slog.Logger) (string, bool) {
	sessionID, ok := middleware.GetSessionIDFromContext(c)
	if !ok {
		logger.Error("Session ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": middleware.SessionHeader + " header required"})
		return "", false
	}
	return sessionID, true
}

// indexParam parses the :index path segment. -1 addresses the slot above the first record.
func indexParam(c *gin.Context, logger *slog.Logger) (int, bool) {
	raw := c.Param("index")
	index, err := strconv.Atoi(raw)
	if err != nil || index < -1 {
		logger.Warn("Invalid index in path", slog.String("index", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index: " + raw})
		return 0, false
	}
	return index, true
}
