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

// capitalHandler handles other-POS totals. POS balances use positionalRoutes.
type capitalHandler struct {
	capitalService portssvc.CapitalSvc
}

func newCapitalHandler(cs portssvc.CapitalSvc) *capitalHandler {
	return &capitalHandler{capitalService: cs}
}

func registerCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvc) {
	h := newCapitalHandler(capitalService)

	otherPOS := rg.Group("/other-pos")
	{
		otherPOS.GET("", h.listPosEntries)
		otherPOS.PUT("", h.upsertPosEntry)
		otherPOS.DELETE("/:name", h.deletePosEntry)
	}

	positionalRoutes[dto.PosBalanceRequest, domain.PosBalancePair]{
		category: domain.PosBalances,
		list:     capitalService.ListPosBalances,
		submit:   capitalService.SubmitPosBalance,
		edit:     capitalService.EditPosBalance,
		remove:   capitalService.RemovePosBalance,
		insert:   capitalService.InsertPosBalanceBelow,
	}.register(rg, "/pos-balances")
}

// listPosEntries godoc
// @Summary List other POS terminal totals
// @Tags capital
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} dto.ListResponse[domain.PosTerminalEntry]
// @Router /other-pos [get]
func (h *capitalHandler) listPosEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	entries, err := h.capitalService.ListPosEntries(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, logger, err, "list other POS totals")
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(domain.OtherPOS, entries))
}

// upsertPosEntry godoc
// @Summary Store a terminal's totals
// @Description Creates the entry or overwrites the totals of an existing name
// @Tags capital
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param entry body dto.OtherPOSRequest true "Terminal totals"
// @Success 200 {object} dto.UpsertOtherPOSResponse "Existing entry overwritten"
// @Success 201 {object} dto.UpsertOtherPOSResponse "New entry"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /other-pos [put]
func (h *capitalHandler) upsertPosEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}
	var req dto.OtherPOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitPosEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.capitalService.SubmitPosEntry(c.Request.Context(), sessionID, req)
	if err != nil {
		respondError(c, logger, err, "store other POS totals")
		return
	}
	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// deletePosEntry godoc
// @Summary Remove a terminal by name
// @Tags capital
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param name path string true "Terminal name"
// @Success 200 {object} domain.PosTerminalEntry
// @Failure 404 {object} map[string]string "Terminal not found"
// @Router /other-pos/{name} [delete]
func (h *capitalHandler) deletePosEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	removed, err := h.capitalService.DeletePosEntry(c.Request.Context(), sessionID, c.Param("name"))
	if err != nil {
		respondError(c, logger, err, "remove other POS terminal")
		return
	}
	c.JSON(http.StatusOK, removed)
}
