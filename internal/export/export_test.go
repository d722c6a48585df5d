package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/SscSPs/posync/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSnapshot() domain.Snapshot {
	ts := time.Date(2025, 3, 1, 9, 30, 15, 0, time.UTC)
	return domain.Snapshot{
		CashBalance:     domain.NewScalarCashBalance(dec("1000"), dec("1300.25")),
		SystemCash:      domain.NewScalarCashBalance(dec("950.5"), decimal.Zero),
		AdditionalCash:  []domain.CashLineItem{domain.NewCashLineItem(dec("500"), "float top-up")},
		Expenses:        []domain.CashLineItem{domain.NewCashLineItem(dec("200.75"), "fuel"), {}},
		BranchTransfers: []domain.CashLineItem{domain.NewCashLineItem(dec("1500"), "Branch 2")},
		CapitalInflows:  []domain.CashLineItem{domain.NewCashLineItem(dec("300"), "")},
		CapitalOutflows: []domain.CashLineItem{domain.NewCashLineItem(dec("100"), "loan repayment")},
		Deposits: []domain.DepositRecord{
			domain.NewDepositRecord(ts, "0123456789", "Ada Obi", dec("1000"), dec("50"), dec("50")),
		},
		Withdrawals: []domain.WithdrawalRecord{
			domain.NewWithdrawalRecord(ts, "4321", dec("5000"), dec("4900"), dec("100")),
		},
		OtherPOS: []domain.PosTerminalEntry{
			domain.NewPosTerminalEntry("Baxi", dec("12000"), dec("8000")),
		},
		PosBalances: []domain.PosBalancePair{
			domain.NewPosBalancePair("Moniepoint", dec("2000"), dec("1500")),
			domain.NewPosBalancePair("Opay", dec("300.1"), dec("0")),
		},
	}
}

func assertSameAmounts(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestWorkbookRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, snap))

	got, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assertSameAmounts(t, snap.CashBalance.Closing, got.CashBalance.Closing)
	assertSameAmounts(t, snap.SystemCash.Opening, got.SystemCash.Opening)

	for _, c := range domain.LineItemCategories() {
		want, have := snap.LineItems(c), got.LineItems(c)
		require.Len(t, have, len(want), "category %s", c)
		for i := range want {
			assertSameAmounts(t, want[i].Amount, have[i].Amount)
			assert.Equal(t, want[i].Description, have[i].Description)
		}
	}

	require.Len(t, got.Deposits, 1)
	assert.True(t, snap.Deposits[0].Timestamp.Equal(got.Deposits[0].Timestamp))
	assert.Equal(t, "0123456789", got.Deposits[0].AccountNumber, "account numbers keep leading zeros")
	assertSameAmounts(t, dec("1050"), got.Deposits[0].RecordedAmount)
	assertSameAmounts(t, dec("1000"), got.Deposits[0].ActualAmount)

	require.Len(t, got.Withdrawals, 1)
	assert.Equal(t, "4321", got.Withdrawals[0].CardLast4)
	assertSameAmounts(t, dec("4900"), got.Withdrawals[0].AmountPaidOut)

	require.Len(t, got.OtherPOS, 1)
	assertSameAmounts(t, dec("8000"), got.OtherPOS[0].DepositTotal)

	require.Len(t, got.PosBalances, 2)
	assert.Equal(t, "Opay", got.PosBalances[1].Name)
	assertSameAmounts(t, dec("300.1"), got.PosBalances[1].OpeningBalance)

	assert.NoError(t, got.Validate())
	assert.True(t, accounting.BuildCashSummary(snap).Result.Equal(accounting.BuildCashSummary(got).Result))
}

func TestWriteWorkbook_SheetLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, sampleSnapshot()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Sheet1")
	assert.Contains(t, f.GetSheetList(), "Deposits")
	assert.Contains(t, f.GetSheetList(), BalancesSheet)

	rows, err := f.GetRows("Deposits")
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Account Number", "Account Name", "Amount", "Actual Amount", "Charge"}, rows[0])
	assert.Equal(t, "2025-03-01 09:30:15", rows[1][0])

	rows, err = f.GetRows("Other POS")
	require.NoError(t, err)
	assert.Equal(t, []string{"POS Name", "Withdrawal", "Deposit"}, rows[0])
}

func TestWriteWorkbook_AmountsAreExact(t *testing.T) {
	big := dec("12345678901234567.89")
	snap := domain.Snapshot{
		Expenses: []domain.CashLineItem{
			domain.NewCashLineItem(big, "vault"),
			domain.NewCashLineItem(dec("0.1"), "coin"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, snap))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	raw, err := f.GetCellValue("Expenses", "A2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567.89", raw)
	cellType, err := f.GetCellType("Expenses", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "amounts stay numeric")
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType, "amounts stay numeric")
	shown, err := f.GetCellValue("Expenses", "A3")
	require.NoError(t, err)
	assert.Equal(t, "0.10", shown)

	got, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, got.Expenses, 2)
	assertSameAmounts(t, big, got.Expenses[0].Amount)
	assertSameAmounts(t, dec("0.1"), got.Expenses[1].Amount)
}

func TestWriteCategoryWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCategoryWorkbook(&buf, sampleSnapshot(), domain.Withdrawals))

	got, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, got.Withdrawals, 1)
	assert.Empty(t, got.Deposits)

	assert.ErrorIs(t, WriteCategoryWorkbook(&bytes.Buffer{}, sampleSnapshot(), "loans"), apperrors.ErrUnknownCategory)
}

func TestReadWorkbook_Malformed(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	unrelated := excelize.NewFile()
	require.NoError(t, unrelated.SetSheetRow("Sheet1", "A1", &[]any{"foo"}))
	b, err := unrelated.WriteToBuffer()
	require.NoError(t, err)
	_, err = ReadWorkbook(bytes.NewReader(b.Bytes()))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	badHeader := excelize.NewFile()
	_, err = badHeader.NewSheet("Expenses")
	require.NoError(t, err)
	require.NoError(t, badHeader.SetSheetRow("Expenses", "A1", &[]any{"Cost", "Description"}))
	b, err = badHeader.WriteToBuffer()
	require.NoError(t, err)
	_, err = ReadWorkbook(bytes.NewReader(b.Bytes()))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	badAmount := excelize.NewFile()
	_, err = badAmount.NewSheet("Expenses")
	require.NoError(t, err)
	require.NoError(t, badAmount.SetSheetRow("Expenses", "A1", &[]any{"Amount", "Description"}))
	require.NoError(t, badAmount.SetSheetRow("Expenses", "A2", &[]any{"lots", "fuel"}))
	b, err = badAmount.WriteToBuffer()
	require.NoError(t, err)
	_, err = ReadWorkbook(bytes.NewReader(b.Bytes()))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)
	assert.Contains(t, err.Error(), "row 2")
}

func TestBuildReconciliationLayout(t *testing.T) {
	snap := sampleSnapshot()
	cash := accounting.BuildCashSummary(snap)
	capital := accounting.BuildCapitalSummary(snap)
	generated := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

	pages := BuildReconciliationLayout(cash, capital, generated, "₦")
	require.Len(t, pages, 2)

	first := pages[0].Lines
	assert.Equal(t, "Date: 2025-03-01 18:00:00", first[1].Text)
	last := first[len(first)-1]
	assert.Equal(t, StyleResult, last.Style)
	assert.Equal(t, "FINAL CASH BALANCE: -₦8,000.75 (DEFICIT)", last.Text)
	assert.Contains(t, texts(first), "- ₦200.75  fuel")
	assert.Contains(t, texts(first), "Cash to Branches: ₦1,500.00")

	second := pages[1].Lines
	assert.Equal(t, "FINAL CAPITAL BALANCE: ₦1,000.10 (SURPLUS)", second[len(second)-1].Text)
	assert.Contains(t, texts(second), "- ₦2,000.00  Moniepoint")
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestWriteReconciliationPDF(t *testing.T) {
	snap := sampleSnapshot()
	cash := accounting.BuildCashSummary(snap)
	capital := accounting.BuildCapitalSummary(snap)

	var buf bytes.Buffer
	err := WriteReconciliationPDF(&buf, cash, capital, time.Now(), DocumentOptions{CurrencySymbol: "₦"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	pdf, err := newDocument(DocumentOptions{})
	require.NoError(t, err)
	renderPages(pdf, BuildReconciliationLayout(cash, capital, time.Now(), DefaultFallbackSymbol), false)
	assert.Equal(t, 2, pdf.PageCount())
}

func TestWriteReconciliationPDF_MissingFont(t *testing.T) {
	err := WriteReconciliationPDF(&bytes.Buffer{}, domain.CashSummary{}, domain.CapitalSummary{}, time.Now(),
		DocumentOptions{FontPath: "/nonexistent/font.ttf"})
	assert.Error(t, err)
}

func TestDocumentOptions_Symbol(t *testing.T) {
	assert.Equal(t, DefaultFallbackSymbol, DocumentOptions{CurrencySymbol: "₦"}.symbol())
	assert.Equal(t, "₦", DocumentOptions{CurrencySymbol: "₦", FontPath: "/fonts/DejaVuSans.ttf"}.symbol())
	assert.Equal(t, "$", DocumentOptions{CurrencySymbol: "$"}.symbol())
	assert.Equal(t, "N", DocumentOptions{FallbackSymbol: "N"}.symbol())
}
