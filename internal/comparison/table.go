package comparison

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows read from an uploaded file. Every row has exactly
// len(Columns) cells.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// LoadTable reads a .csv or .xlsx upload. The first row is the header; the first sheet is used
// for workbooks. Anything else is reported as ErrMalformedImportData.
func LoadTable(filename string, r io.Reader) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx":
		records, err = readWorkbook(r)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported file type, expected .csv or .xlsx", apperrors.ErrMalformedImportData, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrMalformedImportData, filename, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: file has no header row", apperrors.ErrMalformedImportData, filename)
	}
	return newTable(filename, records), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func newTable(name string, records [][]string) *Table {
	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		columns[i] = h
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make([]string, len(columns))
		copy(row, rec)
		rows = append(rows, row)
	}
	return &Table{Name: name, Columns: columns, Rows: rows}
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ColumnIndex returns the position of a column by header name.
func (t *Table) ColumnIndex(column string) (int, error) {
	for i, c := range t.Columns {
		if c == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: column %q not found in %s", apperrors.ErrValidation, column, t.Name)
}

// Values returns the column's cells in row order.
func (t *Table) Values(column string) ([]string, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// DistinctValues returns the sorted non-empty distinct values of a column, the choices offered
// for filtering.
func (t *Table) DistinctValues(column string) ([]string, error) {
	values, err := t.Values(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Filter keeps the rows whose column value is one of values. An empty values list keeps every row.
func (t *Table) Filter(column string, values []string) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return t, nil
	}
	allowed := toSet(values)
	return t.selectRows(func(row []string) bool {
		_, ok := allowed[row[idx]]
		return ok
	}), nil
}

func (t *Table) selectRows(keep func(row []string) bool) *Table {
	out := &Table{Name: t.Name, Columns: t.Columns, Rows: make([][]string, 0)}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
