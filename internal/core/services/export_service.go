package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/export"
	"github.com/SscSPs/posync/internal/utils"
	"github.com/SscSPs/posync/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// exportService implements the ExportSvc interface
type exportService struct {
	BaseService
	document         export.DocumentOptions
	depositSurcharge decimal.Decimal
}

// ExportServiceOption is a functional option for configuring the export service
type ExportServiceOption func(*exportService)

// WithCurrencySymbol sets the symbol amounts are rendered with in documents.
func WithCurrencySymbol(symbol string) ExportServiceOption {
	return func(s *exportService) {
		s.document.CurrencySymbol = symbol
	}
}

// WithPDFFont sets a UTF-8 TrueType font for documents.
func WithPDFFont(path string) ExportServiceOption {
	return func(s *exportService) {
		s.document.FontPath = path
	}
}

// WithImportSurcharge sets the surcharge every imported deposit must carry.
func WithImportSurcharge(surcharge decimal.Decimal) ExportServiceOption {
	return func(s *exportService) {
		s.depositSurcharge = surcharge
	}
}

// WithExportClock overrides the clock used for document timestamps.
func WithExportClock(now func() time.Time) ExportServiceOption {
	return func(s *exportService) {
		s.Now = now
	}
}

// NewExportService creates a new export service with the provided options
func NewExportService(sessions portsrepo.SessionRepository, options ...ExportServiceOption) portssvc.ExportSvc {
	svc := &exportService{
		BaseService:      newBaseService(sessions),
		document:         export.DocumentOptions{CurrencySymbol: utils.DefaultCurrencySymbol},
		depositSurcharge: DefaultDepositSurcharge,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure exportService implements the ExportSvc interface
var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) ExportRecords(ctx context.Context, sessionID string, w io.Writer) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := export.WriteWorkbook(w, store.Snapshot()); err != nil {
		s.LogError(ctx, err, "Failed to export records")
		return fmt.Errorf("failed to export records: %w", err)
	}
	return nil
}

func (s *exportService) ExportCategory(ctx context.Context, sessionID string, category domain.Category, w io.Writer) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := export.WriteCategoryWorkbook(w, store.Snapshot(), category); err != nil {
		s.LogError(ctx, err, "Failed to export category", slog.String("category", string(category)))
		return fmt.Errorf("failed to export %s: %w", category, err)
	}
	return nil
}

func (s *exportService) ExportReconciliationPDF(ctx context.Context, sessionID string, w io.Writer) error {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	cash := accounting.BuildCashSummary(snap)
	capital := accounting.BuildCapitalSummary(snap)
	if err := export.WriteReconciliationPDF(w, cash, capital, s.Now(), s.document); err != nil {
		s.LogError(ctx, err, "Failed to render reconciliation document")
		return fmt.Errorf("failed to export reconciliation: %w", err)
	}
	s.LogInfo(ctx, "Reconciliation document rendered",
		slog.String("cash_outcome", string(cash.Outcome())),
		slog.String("capital_outcome", string(capital.Outcome())))
	return nil
}

// ImportRecords parses and checks the workbook fully before touching the store, so a bad upload
// leaves the session unchanged. Rows that could not have been entered through the forms, such as
// a deposit without the configured surcharge, make the workbook malformed.
func (s *exportService) ImportRecords(ctx context.Context, sessionID string, r io.Reader) (domain.Snapshot, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap, err := export.ReadWorkbook(r)
	if err != nil {
		s.LogDebug(ctx, "Workbook rejected", slog.String("reason", err.Error()))
		return domain.Snapshot{}, err
	}
	if err := s.checkImported(snap); err != nil {
		s.LogDebug(ctx, "Workbook rejected", slog.String("reason", err.Error()))
		return domain.Snapshot{}, err
	}
	if err := store.Restore(snap); err != nil {
		return domain.Snapshot{}, err
	}
	s.LogInfo(ctx, "Records imported",
		slog.Int("deposits", len(snap.Deposits)),
		slog.Int("withdrawals", len(snap.Withdrawals)))
	return snap, nil
}

func (s *exportService) checkImported(snap domain.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedImportData, err)
	}
	if err := snap.CheckDepositSurcharge(s.depositSurcharge); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedImportData, err)
	}
	return nil
}
