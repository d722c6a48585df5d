package services

import (
	"context"

	"github.com/SscSPs/posync/internal/core/domain"
)

// ReconciliationSvc computes the reports of a session from a consistent snapshot.
type ReconciliationSvc interface {
	// GetCashSummary reconciles physical cash inflows against outflows.
	GetCashSummary(ctx context.Context, sessionID string) (domain.CashSummary, error)

	// GetCapitalSummary reconciles POS balances and capital flows.
	GetCapitalSummary(ctx context.Context, sessionID string) (domain.CapitalSummary, error)

	// GetDashboard returns the headline totals for the landing page.
	GetDashboard(ctx context.Context, sessionID string) (domain.DashboardTotals, error)
}
