package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/posync/internal/core/domain"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lineItemHandler handles the six (amount, description) categories.
type lineItemHandler struct {
	recordService portssvc.LineItemSvc
}

func newLineItemHandler(rs portssvc.LineItemSvc) *lineItemHandler {
	return &lineItemHandler{recordService: rs}
}

func registerLineItemRoutes(rg *gin.RouterGroup, recordService portssvc.LineItemSvc) {
	h := newLineItemHandler(recordService)

	items := rg.Group("/line-items/:category")
	{
		items.GET("", h.listLineItems)
		items.POST("", h.submitLineItem)
		items.PUT("/:index", h.editLineItem)
		items.DELETE("/:index", h.removeLineItem)
		items.POST("/:index/insert-below", h.insertLineItemBelow)
	}
}

// scope resolves the session and category shared by every line item route.
func (h *lineItemHandler) scope(c *gin.Context) (*slog.Logger, string, domain.Category, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return nil, "", "", false
	}
	category, err := domain.ParseLineItemCategory(c.Param("category"))
	if err != nil {
		respondError(c, logger, err, "resolve category")
		return nil, "", "", false
	}
	return logger.With(slog.String("category", string(category))), sessionID, category, true
}

// listLineItems godoc
// @Summary List line items of a category
// @Description Categories: additional_cash, expenses, branch_transfers, external_cash, capital_inflows, capital_outflows
// @Tags line-items
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param category path string true "Line item category"
// @Success 200 {object} dto.ListResponse[domain.CashLineItem]
// @Failure 400 {object} map[string]string "Unknown category"
// @Router /line-items/{category} [get]
func (h *lineItemHandler) listLineItems(c *gin.Context) {
	logger, sessionID, category, ok := h.scope(c)
	if !ok {
		return
	}

	items, err := h.recordService.ListCashLineItems(c.Request.Context(), sessionID, category)
	if err != nil {
		respondError(c, logger, err, "list line items")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(category, items))
}

// submitLineItem godoc
// @Summary Record a line item
// @Tags line-items
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param category path string true "Line item category"
// @Param item body dto.CashLineItemRequest true "Amount and description"
// @Success 201 {object} domain.Positioned[domain.CashLineItem]
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /line-items/{category} [post]
func (h *lineItemHandler) submitLineItem(c *gin.Context) {
	logger, sessionID, category, ok := h.scope(c)
	if !ok {
		return
	}
	var req dto.CashLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitCashLineItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.recordService.SubmitCashLineItem(c.Request.Context(), sessionID, category, req)
	if err != nil {
		respondError(c, logger, err, "record line item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// editLineItem godoc
// @Summary Replace the line item at a position
// @Tags line-items
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param category path string true "Line item category"
// @Param index path int true "Position"
// @Param item body dto.CashLineItemRequest true "Amount and description"
// @Success 200 {object} domain.Positioned[domain.CashLineItem]
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Index out of range"
// @Router /line-items/{category}/{index} [put]
func (h *lineItemHandler) editLineItem(c *gin.Context) {
	logger, sessionID, category, ok := h.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}
	var req dto.CashLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditCashLineItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.recordService.EditCashLineItem(c.Request.Context(), sessionID, category, index, req)
	if err != nil {
		respondError(c, logger, err, "update line item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// removeLineItem godoc
// @Summary Remove the line item at a position
// @Description Later items shift up by one
// @Tags line-items
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param category path string true "Line item category"
// @Param index path int true "Position"
// @Success 200 {object} domain.CashLineItem
// @Failure 404 {object} map[string]string "Index out of range"
// @Router /line-items/{category}/{index} [delete]
func (h *lineItemHandler) removeLineItem(c *gin.Context) {
	logger, sessionID, category, ok := h.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}

	removed, err := h.recordService.RemoveCashLineItem(c.Request.Context(), sessionID, category, index)
	if err != nil {
		respondError(c, logger, err, "remove line item")
		return
	}
	c.JSON(http.StatusOK, removed)
}

// insertLineItemBelow godoc
// @Summary Insert a blank line item below a position
// @Description Use index -1 to insert at the top. The placeholder is not validated until edited.
// @Tags line-items
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param category path string true "Line item category"
// @Param index path int true "Position"
// @Success 201 {object} map[string]int "index of the new row"
// @Failure 404 {object} map[string]string "Index out of range"
// @Router /line-items/{category}/{index}/insert-below [post]
func (h *lineItemHandler) insertLineItemBelow(c *gin.Context) {
	logger, sessionID, category, ok := h.scope(c)
	if !ok {
		return
	}
	index, ok := indexParam(c, logger)
	if !ok {
		return
	}

	inserted, err := h.recordService.InsertCashLineItemBelow(c.Request.Context(), sessionID, category, index)
	if err != nil {
		respondError(c, logger, err, "insert line item")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"index": inserted})
}
