package services

import (
	"context"
	"io"

	"github.com/SscSPs/posync/internal/core/domain"
)

// ExportSvc renders session records as spreadsheets and documents and restores them from a workbook.
type ExportSvc interface {
	// ExportRecords writes every category of the session as one workbook.
	ExportRecords(ctx context.Context, sessionID string, w io.Writer) error

	// ExportCategory writes a single category as its own workbook.
	ExportCategory(ctx context.Context, sessionID string, category domain.Category, w io.Writer) error

	// ExportReconciliationPDF writes the two-page cash and capital report.
	ExportReconciliationPDF(ctx context.Context, sessionID string, w io.Writer) error

	// ImportRecords replaces the session's records with the contents of a workbook.
	ImportRecords(ctx context.Context, sessionID string, r io.Reader) (domain.Snapshot, error)
}
