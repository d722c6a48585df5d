package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/posync/internal/core/domain"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/gin-gonic/gin"
)

// registerCashBalanceRoutes registers the two overwritten opening/closing scalars.
func registerCashBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.CashBalanceSvc) {
	rg.GET("/cash-balance", getBalance(balanceService.GetScalarCash))
	rg.PUT("/cash-balance", setBalance(balanceService.SetScalarCash))
	rg.GET("/system-cash", getBalance(balanceService.GetSystemCash))
	rg.PUT("/system-cash", setBalance(balanceService.SetSystemCash))
}

// getBalance godoc
// @Summary Read a balance
// @Description /cash-balance is the physical opening/closing cash; /system-cash is the figure reported by the POS system
// @Tags balances
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} domain.ScalarCashBalance
// @Router /cash-balance [get]
// @Router /system-cash [get]
func getBalance(read func(context.Context, string) (domain.ScalarCashBalance, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		sessionID, ok := sessionFromContext(c, logger)
		if !ok {
			return
		}
		balance, err := read(c.Request.Context(), sessionID)
		if err != nil {
			respondError(c, logger, err, "read balance")
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}

// setBalance godoc
// @Summary Overwrite a balance
// @Tags balances
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param balance body dto.CashBalanceRequest true "Opening and closing values"
// @Success 200 {object} domain.ScalarCashBalance
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /cash-balance [put]
// @Router /system-cash [put]
func setBalance(write func(context.Context, string, dto.CashBalanceRequest) (domain.ScalarCashBalance, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		sessionID, ok := sessionFromContext(c, logger)
		if !ok {
			return
		}
		var req dto.CashBalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for balance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
		balance, err := write(c.Request.Context(), sessionID, req)
		if err != nil {
			respondError(c, logger, err, "set balance")
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}
