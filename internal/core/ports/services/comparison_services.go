package services

import (
	"context"
	"io"

	"github.com/SscSPs/posync/internal/comparison"
)

// ComparisonFile is one uploaded spreadsheet. Name selects the parser by extension.
type ComparisonFile struct {
	Name   string
	Reader io.Reader
}

// ComparisonSvc diffs one column of two uploaded spreadsheets. It holds no session state.
type ComparisonSvc interface {
	// CompareFiles loads both files and reports the values missing from each side.
	CompareFiles(ctx context.Context, left, right ComparisonFile, opts comparison.Options) (*comparison.Result, error)

	// DescribeFile loads a file and returns its column names.
	DescribeFile(ctx context.Context, file ComparisonFile) ([]string, error)
}
