package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/posync/internal/comparison"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
)

type comparisonService struct {
	BaseService
}

// NewComparisonService creates the stateless spreadsheet comparison service.
func NewComparisonService() portssvc.ComparisonSvc {
	return &comparisonService{}
}

var _ portssvc.ComparisonSvc = (*comparisonService)(nil)

func (s *comparisonService) load(ctx context.Context, file portssvc.ComparisonFile) (*comparison.Table, error) {
	table, err := comparison.LoadTable(file.Name, file.Reader)
	if err != nil {
		s.LogDebug(ctx, "Comparison file rejected", slog.String("file", file.Name), slog.String("reason", err.Error()))
		return nil, fmt.Errorf("failed to load %s: %w", file.Name, err)
	}
	return table, nil
}

func (s *comparisonService) CompareFiles(ctx context.Context, left, right portssvc.ComparisonFile, opts comparison.Options) (*comparison.Result, error) {
	leftTable, err := s.load(ctx, left)
	if err != nil {
		return nil, err
	}
	rightTable, err := s.load(ctx, right)
	if err != nil {
		return nil, err
	}
	result, err := comparison.Compare(leftTable, rightTable, opts)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Files compared",
		slog.String("left_file", left.Name),
		slog.String("right_file", right.Name),
		slog.Int("only_in_left", len(result.OnlyInLeft)),
		slog.Int("only_in_right", len(result.OnlyInRight)))
	return result, nil
}

func (s *comparisonService) DescribeFile(ctx context.Context, file portssvc.ComparisonFile) ([]string, error) {
	table, err := s.load(ctx, file)
	if err != nil {
		return nil, err
	}
	return table.Columns, nil
}
