package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// sessionIDKey is the key used to store the working session id in the request context.
const sessionIDKey = contextKey("sessionID")

// WithSessionID returns a copy of ctx carrying the session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionIDFromContext retrieves the working session id resolved by RequireSession.
// It returns the id and a boolean indicating if it was found.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, ok := c.Request.Context().Value(sessionIDKey).(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
