package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// TimestampLayout is how record timestamps are written to and read from spreadsheets (UTC).
const TimestampLayout = "2006-01-02 15:04:05"

// BalancesSheet holds the two scalar balances in a full workbook.
const BalancesSheet = "Cash Balances"

const (
	cashRowLabel       = "Cash"
	systemCashRowLabel = "System Cash"
)

var (
	lineItemHeader   = []string{"Amount", "Description"}
	depositHeader    = []string{"Date", "Account Number", "Account Name", "Amount", "Actual Amount", "Charge"}
	withdrawalHeader = []string{"Date", "Card Last 4 Digits", "Amount Withdrawn", "Amount Paid Out", "Charge"}
	otherPOSHeader   = []string{"POS Name", "Withdrawal", "Deposit"}
	posBalanceHeader = []string{"POS Name", "Opening Balance", "Closing Balance"}
	balancesHeader   = []string{"Balance", "Opening", "Closing"}
)

// Header returns the column names written for a category.
func Header(category domain.Category) []string {
	switch category {
	case domain.Deposits:
		return depositHeader
	case domain.Withdrawals:
		return withdrawalHeader
	case domain.OtherPOS:
		return otherPOSHeader
	case domain.PosBalances:
		return posBalanceHeader
	default:
		return lineItemHeader
	}
}

// WriteWorkbook writes every category of the snapshot, one sheet each, plus the balances sheet.
func WriteWorkbook(w io.Writer, snap domain.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, c := range domain.AllCategories() {
		if err := writeCategorySheet(f, snap, c); err != nil {
			return err
		}
	}
	balances := [][]any{
		{cashRowLabel, amountCell(snap.CashBalance.Opening), amountCell(snap.CashBalance.Closing)},
		{systemCashRowLabel, amountCell(snap.SystemCash.Opening), amountCell(snap.SystemCash.Closing)},
	}
	if err := writeSheet(f, BalancesSheet, balancesHeader, balances); err != nil {
		return err
	}
	return finish(f, w)
}

// WriteCategoryWorkbook writes a single category as a one-sheet workbook.
func WriteCategoryWorkbook(w io.Writer, snap domain.Snapshot, category domain.Category) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeCategorySheet(f, snap, category); err != nil {
		return err
	}
	return finish(f, w)
}

func finish(f *excelize.File, w io.Writer) error {
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeCategorySheet(f *excelize.File, snap domain.Snapshot, c domain.Category) error {
	var rows [][]any
	switch c {
	case domain.Deposits:
		for _, d := range snap.Deposits {
			rows = append(rows, []any{timestampCell(d.Timestamp), d.AccountNumber, d.AccountName,
				amountCell(d.RecordedAmount), amountCell(d.ActualAmount), amountCell(d.Charge)})
		}
	case domain.Withdrawals:
		for _, wd := range snap.Withdrawals {
			rows = append(rows, []any{timestampCell(wd.Timestamp), wd.CardLast4,
				amountCell(wd.AmountWithdrawn), amountCell(wd.AmountPaidOut), amountCell(wd.Charge)})
		}
	case domain.OtherPOS:
		for _, e := range snap.OtherPOS {
			rows = append(rows, []any{e.Name, amountCell(e.WithdrawalTotal), amountCell(e.DepositTotal)})
		}
	case domain.PosBalances:
		for _, p := range snap.PosBalances {
			rows = append(rows, []any{p.Name, amountCell(p.OpeningBalance), amountCell(p.ClosingBalance)})
		}
	default:
		if !c.IsLineItem() {
			return fmt.Errorf("%w: %q", apperrors.ErrUnknownCategory, c)
		}
		for _, item := range snap.LineItems(c) {
			rows = append(rows, []any{amountCell(item.Amount), item.Description})
		}
	}
	return writeSheet(f, c.Title(), Header(c), rows)
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", name, err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := writeCell(f, name, cell, value, amountStyle); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", i+1, name, err)
			}
		}
	}
	return nil
}

// amountNumFmt is the built-in "0.00" number format.
const amountNumFmt = 2

// exactAmount marks a cell that is stored as a number holding the decimal's exact text, so no
// amount passes through float64 on its way into the workbook.
type exactAmount decimal.Decimal

func amountCell(d decimal.Decimal) exactAmount {
	return exactAmount(d)
}

func writeCell(f *excelize.File, sheet, cell string, value any, amountStyle int) error {
	a, ok := value.(exactAmount)
	if !ok {
		return f.SetCellValue(sheet, cell, value)
	}
	if err := f.SetCellDefault(sheet, cell, decimal.Decimal(a).StringFixed(domain.AmountPrecision)); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, cell, amountStyle)
}

func timestampCell(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(TimestampLayout)
}

// ReadWorkbook parses a workbook produced by WriteWorkbook or WriteCategoryWorkbook back into
// a snapshot. Missing sheets yield empty collections; a workbook with no recognised sheet, a
// wrong header or an unparseable cell is ErrMalformedImportData.
func ReadWorkbook(r io.Reader) (domain.Snapshot, error) {
	var snap domain.Snapshot

	f, err := excelize.OpenReader(r)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", apperrors.ErrMalformedImportData, err)
	}
	defer f.Close()

	known := 0
	sheets := make(map[string]bool)
	for _, s := range f.GetSheetList() {
		sheets[s] = true
	}

	for _, c := range domain.AllCategories() {
		if !sheets[c.Title()] {
			continue
		}
		known++
		rows, err := sheetRows(f, c.Title(), Header(c))
		if err != nil {
			return snap, err
		}
		if err := readCategory(&snap, c, rows); err != nil {
			return snap, err
		}
	}

	if sheets[BalancesSheet] {
		known++
		rows, err := sheetRows(f, BalancesSheet, balancesHeader)
		if err != nil {
			return snap, err
		}
		if err := readBalances(&snap, rows); err != nil {
			return snap, err
		}
	}

	if known == 0 {
		return snap, fmt.Errorf("%w: workbook contains no record sheets", apperrors.ErrMalformedImportData)
	}
	return snap, nil
}

// sheetRows returns the data rows of a sheet after checking its header.
func sheetRows(f *excelize.File, sheet string, header []string) ([][]string, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", apperrors.ErrMalformedImportData, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	for i, h := range header {
		if strings.TrimSpace(cellAt(rows[0], i)) != h {
			return nil, fmt.Errorf("%w: sheet %s: expected column %d to be %q", apperrors.ErrMalformedImportData, sheet, i+1, h)
		}
	}
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		data = append(data, row)
	}
	return data, nil
}

func readCategory(snap *domain.Snapshot, c domain.Category, rows [][]string) error {
	for i, row := range rows {
		p := cellParser{sheet: c.Title(), row: i + 2, cells: row}
		switch c {
		case domain.Deposits:
			snap.Deposits = append(snap.Deposits, domain.DepositRecord{
				Timestamp:      p.timestamp(0),
				AccountNumber:  p.text(1),
				AccountName:    p.text(2),
				RecordedAmount: p.amount(3),
				ActualAmount:   p.amount(4),
				Charge:         p.amount(5),
			})
		case domain.Withdrawals:
			snap.Withdrawals = append(snap.Withdrawals, domain.WithdrawalRecord{
				Timestamp:       p.timestamp(0),
				CardLast4:       p.text(1),
				AmountWithdrawn: p.amount(2),
				AmountPaidOut:   p.amount(3),
				Charge:          p.amount(4),
			})
		case domain.OtherPOS:
			snap.OtherPOS = append(snap.OtherPOS, domain.NewPosTerminalEntry(p.text(0), p.amount(1), p.amount(2)))
		case domain.PosBalances:
			snap.PosBalances = append(snap.PosBalances, domain.NewPosBalancePair(p.text(0), p.amount(1), p.amount(2)))
		default:
			items := append(snap.LineItems(c), domain.NewCashLineItem(p.amount(0), p.text(1)))
			if err := snap.SetLineItems(c, items); err != nil {
				return err
			}
		}
		if p.err != nil {
			return p.err
		}
	}
	return nil
}

func readBalances(snap *domain.Snapshot, rows [][]string) error {
	for i, row := range rows {
		p := cellParser{sheet: BalancesSheet, row: i + 2, cells: row}
		balance := domain.NewScalarCashBalance(p.amount(1), p.amount(2))
		if p.err != nil {
			return p.err
		}
		switch p.text(0) {
		case cashRowLabel:
			snap.CashBalance = balance
		case systemCashRowLabel:
			snap.SystemCash = balance
		default:
			return fmt.Errorf("%w: sheet %s row %d: unknown balance %q", apperrors.ErrMalformedImportData, BalancesSheet, i+2, p.text(0))
		}
	}
	return nil
}

// cellParser reads typed cells from one row and keeps the first error.
type cellParser struct {
	sheet string
	row   int
	cells []string
	err   error
}

func (p *cellParser) text(col int) string {
	return strings.TrimSpace(cellAt(p.cells, col))
}

func (p *cellParser) amount(col int) decimal.Decimal {
	raw := p.text(col)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		p.fail(col, fmt.Errorf("invalid amount %q", raw))
		return decimal.Zero
	}
	return domain.RoundAmount(d)
}

func (p *cellParser) timestamp(col int) time.Time {
	raw := p.text(col)
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.ParseInLocation(TimestampLayout, raw, time.UTC)
	if err != nil {
		p.fail(col, fmt.Errorf("invalid date %q", raw))
		return time.Time{}
	}
	return ts
}

func (p *cellParser) fail(col int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: sheet %s row %d column %d: %v", apperrors.ErrMalformedImportData, p.sheet, p.row, col+1, err)
	}
}

// GetRows drops trailing empty cells, so short rows are padded here.
func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
