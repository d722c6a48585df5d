package services

import (
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, sessions portsrepo.SessionRepository) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Session = NewSessionService(sessions)
	container.Records = NewRecordService(sessions, WithDepositSurcharge(cfg.DepositSurcharge))
	container.Reconciliation = NewReconciliationService(sessions)
	container.Export = NewExportService(sessions,
		WithCurrencySymbol(cfg.CurrencySymbol),
		WithPDFFont(cfg.PDFFontPath),
		WithImportSurcharge(cfg.DepositSurcharge),
	)
	container.Comparison = NewComparisonService()

	return container
}
