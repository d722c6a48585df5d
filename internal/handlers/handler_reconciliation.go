package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for the reconciliation reports
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvc
	currencySymbol        string
}

// newReconciliationHandler creates a new reconciliationHandler
func newReconciliationHandler(rs portssvc.ReconciliationSvc, currencySymbol string) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
		currencySymbol:        currencySymbol,
	}
}

// registerReconciliationRoutes registers the report and dashboard routes
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvc, currencySymbol string) {
	h := newReconciliationHandler(reconciliationService, currencySymbol)

	reports := rg.Group("/reconciliation")
	{
		reports.GET("/cash", h.getCashSummary)
		reports.GET("/capital", h.getCapitalSummary)
	}
	rg.GET("/dashboard", h.getDashboard)
}

// getCashSummary godoc
// @Summary Cash summary
// @Description Reconciles physical cash: credit (opening cash, additional cash, deposits, deposit charges, other POS deposits) minus debit (expenses, branch transfers, withdrawals paid out, other POS withdrawals)
// @Tags reconciliation
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} dto.CashSummaryResponse
// @Failure 404 {object} map[string]string "Session not found or expired"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reconciliation/cash [get]
func (h *reconciliationHandler) getCashSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.GetCashSummary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, logger, err, "generate cash summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashSummaryResponse(summary, h.currencySymbol))
}

// getCapitalSummary godoc
// @Summary Capital summary
// @Description Reconciles POS capital: opening balances, external cash and capital inflows minus closing balances and capital outflows. System cash is reported alongside but not reconciled.
// @Tags reconciliation
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} dto.CapitalSummaryResponse
// @Failure 404 {object} map[string]string "Session not found or expired"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reconciliation/capital [get]
func (h *reconciliationHandler) getCapitalSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	summary, err := h.reconciliationService.GetCapitalSummary(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, logger, err, "generate capital summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToCapitalSummaryResponse(summary, h.currencySymbol))
}

// getDashboard godoc
// @Summary Landing page totals
// @Tags reconciliation
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} dto.DashboardResponse
// @Router /dashboard [get]
func (h *reconciliationHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID, ok := sessionFromContext(c, logger)
	if !ok {
		return
	}

	totals, err := h.reconciliationService.GetDashboard(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, logger, err, "load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(totals, h.currencySymbol))
}
