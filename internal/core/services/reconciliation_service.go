package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/utils/accounting"
)

// reconciliationService implements the ReconciliationSvc interface
type reconciliationService struct {
	BaseService
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(sessions portsrepo.SessionRepository) portssvc.ReconciliationSvc {
	return &reconciliationService{BaseService: newBaseService(sessions)}
}

// Ensure reconciliationService implements the ReconciliationSvc interface
var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) snapshot(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return store.Snapshot(), nil
}

// GetCashSummary reconciles physical cash for the session
func (s *reconciliationService) GetCashSummary(ctx context.Context, sessionID string) (domain.CashSummary, error) {
	snap, err := s.snapshot(ctx, sessionID)
	if err != nil {
		return domain.CashSummary{}, err
	}
	summary := accounting.BuildCashSummary(snap)
	s.LogDebug(ctx, "Cash summary computed",
		slog.String("result", summary.Result.StringFixed(domain.AmountPrecision)),
		slog.String("outcome", string(summary.Outcome())))
	return summary, nil
}

// GetCapitalSummary reconciles POS capital for the session
func (s *reconciliationService) GetCapitalSummary(ctx context.Context, sessionID string) (domain.CapitalSummary, error) {
	snap, err := s.snapshot(ctx, sessionID)
	if err != nil {
		return domain.CapitalSummary{}, err
	}
	summary := accounting.BuildCapitalSummary(snap)
	s.LogDebug(ctx, "Capital summary computed",
		slog.String("result", summary.Result.StringFixed(domain.AmountPrecision)),
		slog.String("outcome", string(summary.Outcome())))
	return summary, nil
}

func (s *reconciliationService) GetDashboard(ctx context.Context, sessionID string) (domain.DashboardTotals, error) {
	snap, err := s.snapshot(ctx, sessionID)
	if err != nil {
		return domain.DashboardTotals{}, err
	}
	return accounting.BuildDashboard(snap), nil
}
