package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// sessionHandler handles HTTP requests related to working sessions.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newSessionHandler(ss portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss}
}

// registerSessionRoutes registers the session lifecycle routes. Creating a session is the only
// route that does not need an X-Session-ID header.
func registerSessionRoutes(public *gin.RouterGroup, scoped *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	public.POST("/sessions", h.createSession)

	current := scoped.Group("/sessions/current")
	{
		current.DELETE("", h.endSession)
		current.POST("/reset", h.resetSession)
	}
}

// createSession godoc
// @Summary Start a working session
// @Description Creates a session with an empty record store. Send the returned id as X-Session-ID on every other request.
// @Tags sessions
// @Produce json
// @Success 201 {object} dto.SessionResponse
// @Router /sessions [post]
func (h *sessionHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	session := h.sessionService.CreateSession(c.Request.Context())

	logger.Info("Session started", slog.String("session_id", session.SessionID))
	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// endSession godoc
// @Summary End the current session
// @Description Discards the session and every record it holds
// @Tags sessions
// @Param X-Session-ID header string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Session not found or expired"
// @Router /sessions/current [delete]
func (h *sessionHandler) endSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.sessionService.EndSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, logger, err, "end session")
		return
	}
	c.Status(http.StatusNoContent)
}

// resetSession godoc
// @Summary Clear the current session
// @Description Empties every record collection and zeroes both balances, keeping the session id
// @Tags sessions
// @Param X-Session-ID header string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Session not found or expired"
// @Router /sessions/current/reset [post]
func (h *sessionHandler) resetSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.sessionService.ResetSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, logger, err, "reset session")
		return
	}
	c.Status(http.StatusNoContent)
}
