package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// positionalRoutes serves one position-addressed record list: list, submit, edit, remove and
// insert-below. Deposits, withdrawals and POS balances share it.
type positionalRoutes[Req any, Rec any] struct {
	category domain.Category
	list     func(ctx context.Context, sessionID string) ([]Rec, error)
	submit   func(ctx context.Context, sessionID string, req Req) (domain.Positioned[Rec], error)
	edit     func(ctx context.Context, sessionID string, index int, req Req) (domain.Positioned[Rec], error)
	remove   func(ctx context.Context, sessionID string, index int) (Rec, error)
	insert   func(ctx context.Context, sessionID string, index int) (int, error)
}

func (p positionalRoutes[Req, Rec]) register(rg *gin.RouterGroup, path string) {
	g := rg.Group(path)
	{
		g.GET("", p.handleList)
		g.POST("", p.handleSubmit)
		g.PUT("/:index", p.handleEdit)
		g.DELETE("/:index", p.handleRemove)
		g.POST("/:index/insert-below", p.handleInsertBelow)
	}
}

func (p positionalRoutes[Req, Rec]) label() string {
	return strings.ToLower(p.category.Title())
}

func (p positionalRoutes[Req, Rec]) scope(c *gin.Context) (*slog.Logger, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("category", string(p.category)))
	sessionID, ok := sessionFromContext(c, logger)
	return logger, sessionID, ok
}

func (p positionalRoutes[Req, Rec]) handleList(c *gin.Context) {
	logger, sessionID, ok := p.scope(c)
	if !ok {
		return
	}
	records, err := p.list(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, logger, err, "list "+p.label())
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(p.category, records))
}

func (p positionalRoutes[Req, Rec]) handleSubmit(c *gin.Context) {
	logger, sessionID, ok := p.scope(c)
	if !ok {
		return
	}
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for submit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	record, err := p.submit(c.Request.Context(), sessionID, req)
	if err != nil {
		respondError(c, logger, err, "record "+p.label())
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (p positionalRoutes[Req, Rec]) handleEdit(c *gin.Context) {
	logger, sessionID, ok := p.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for edit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	record, err := p.edit(c.Request.Context(), sessionID, index, req)
	if err != nil {
		respondError(c, logger, err, "update "+p.label())
		return
	}
	c.JSON(http.StatusOK, record)
}

func (p positionalRoutes[Req, Rec]) handleRemove(c *gin.Context) {
	logger, sessionID, ok := p.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}
	removed, err := p.remove(c.Request.Context(), sessionID, index)
	if err != nil {
		respondError(c, logger, err, "remove "+p.label())
		return
	}
	c.JSON(http.StatusOK, removed)
}

func (p positionalRoutes[Req, Rec]) handleInsertBelow(c *gin.Context) {
	logger, sessionID, ok := p.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}
	inserted, err := p.insert(c.Request.Context(), sessionID, index)
	if err != nil {
		respondError(c, logger, err, "insert "+p.label())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"index": inserted})
}
