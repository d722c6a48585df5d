package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, dec(want).String(), got.String(), msgAndArgs...)
}

func TestBuildCashSummary_LineItemsOnly(t *testing.T) {
	snap := domain.Snapshot{
		CashBalance:    domain.NewScalarCashBalance(dec("1000"), decimal.Zero),
		AdditionalCash: []domain.CashLineItem{domain.NewCashLineItem(dec("500"), "float top-up")},
		Expenses:       []domain.CashLineItem{domain.NewCashLineItem(dec("200"), "fuel")},
	}

	s := BuildCashSummary(snap)

	assertDecimal(t, "1500", s.Credit)
	assertDecimal(t, "200", s.Debit)
	assertDecimal(t, "1300", s.Result)
	assert.Equal(t, domain.Surplus, s.Outcome())
}

func TestBuildCashSummary_DepositContribution(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{
		Deposits: []domain.DepositRecord{
			domain.NewDepositRecord(ts, "0123", "Ada", dec("1000"), dec("50"), dec("50")),
		},
	}

	s := BuildCashSummary(snap)

	assertDecimal(t, "1050", s.DepositTotal)
	assertDecimal(t, "50", s.DepositChargeTotal)
	assertDecimal(t, "1100", s.Credit)
}

func TestBuildCashSummary_AllSources(t *testing.T) {
	ts := time.Now().UTC()
	snap := domain.Snapshot{
		CashBalance:     domain.NewScalarCashBalance(dec("100"), decimal.Zero),
		AdditionalCash:  []domain.CashLineItem{domain.NewCashLineItem(dec("10"), "a")},
		Deposits:        []domain.DepositRecord{domain.NewDepositRecord(ts, "1", "A", dec("200"), dec("5"), dec("50"))},
		OtherPOS:        []domain.PosTerminalEntry{domain.NewPosTerminalEntry("Baxi", dec("70"), dec("30"))},
		Expenses:        []domain.CashLineItem{domain.NewCashLineItem(dec("20"), "e")},
		BranchTransfers: []domain.CashLineItem{domain.NewCashLineItem(dec("400"), "branch 2")},
		Withdrawals:     []domain.WithdrawalRecord{domain.NewWithdrawalRecord(ts, "4321", dec("100"), dec("95"), dec("5"))},
	}

	s := BuildCashSummary(snap)

	// 100 + 10 + 250 + 5 + 30
	assertDecimal(t, "395", s.Credit)
	// 20 + 400 + 95 + 70
	assertDecimal(t, "585", s.Debit)
	assertDecimal(t, "-190", s.Result)
	assert.Equal(t, domain.Deficit, s.Outcome())

	credit := decimal.Zero
	for _, line := range s.CreditLines() {
		credit = credit.Add(line.Total)
	}
	assertDecimal(t, s.Credit.String(), credit, "credit lines should add up to the credit total")
}

func TestBuildCashSummary_EmptySnapshot(t *testing.T) {
	s := BuildCashSummary(domain.Snapshot{})
	assert.True(t, s.Result.IsZero())
	assert.Equal(t, domain.Surplus, s.Outcome())
	assert.NotNil(t, s.Expenses)
	require.Len(t, s.DebitLines(), 4)
	assert.Equal(t, "Cash to Branches", s.DebitLines()[1].Label)
}

func TestBuildCashSummary_IsAdditive(t *testing.T) {
	base := domain.Snapshot{
		CashBalance: domain.NewScalarCashBalance(dec("1000"), decimal.Zero),
		Expenses:    []domain.CashLineItem{domain.NewCashLineItem(dec("200"), "fuel")},
	}
	before := BuildCashSummary(base)

	base.AdditionalCash = append(base.AdditionalCash, domain.NewCashLineItem(dec("12.34"), "coins"))
	after := BuildCashSummary(base)

	assertDecimal(t, "12.34", after.Result.Sub(before.Result))
	assert.True(t, BuildCashSummary(base).Result.Equal(after.Result), "summaries must be idempotent")
}

func TestBuildCapitalSummary(t *testing.T) {
	snap := domain.Snapshot{
		PosBalances:     []domain.PosBalancePair{domain.NewPosBalancePair("Moniepoint", dec("2000"), dec("1500"))},
		CapitalInflows:  []domain.CashLineItem{domain.NewCashLineItem(dec("300"), "")},
		CapitalOutflows: []domain.CashLineItem{domain.NewCashLineItem(dec("100"), "withdrawal")},
		SystemCash:      domain.NewScalarCashBalance(dec("9999"), dec("9999")),
	}

	s := BuildCapitalSummary(snap)

	assertDecimal(t, "2300", s.OpeningSide)
	assertDecimal(t, "1600", s.ClosingSide)
	assertDecimal(t, "700", s.Result)
	assert.Equal(t, domain.Surplus, s.Outcome())
	assertDecimal(t, "9999", s.SystemCash.Opening, "system cash is reported")
	require.Len(t, s.OpeningLines(), 3)
	require.Len(t, s.OpeningLines()[0].Entries, 1)
	assert.Equal(t, "Moniepoint", s.OpeningLines()[0].Entries[0].Label)
}

func TestBuildCapitalSummary_Deficit(t *testing.T) {
	snap := domain.Snapshot{
		PosBalances:  []domain.PosBalancePair{domain.NewPosBalancePair("Opay", dec("100"), dec("250"))},
		ExternalCash: []domain.CashLineItem{domain.NewCashLineItem(dec("50"), "loan")},
	}
	s := BuildCapitalSummary(snap)
	assertDecimal(t, "-100", s.Result)
	assert.Equal(t, domain.Deficit, s.Outcome())
}

func TestBuildDashboard(t *testing.T) {
	ts := time.Now().UTC()
	snap := domain.Snapshot{
		Deposits: []domain.DepositRecord{
			domain.NewDepositRecord(ts, "1", "A", dec("100"), decimal.Zero, dec("50")),
			domain.NewDepositRecord(ts, "2", "B", dec("200"), decimal.Zero, dec("50")),
		},
		Withdrawals:     []domain.WithdrawalRecord{domain.NewWithdrawalRecord(ts, "1111", dec("500"), dec("480"), dec("20"))},
		BranchTransfers: []domain.CashLineItem{domain.NewCashLineItem(dec("75.5"), "branch 3")},
	}

	d := BuildDashboard(snap)
	assertDecimal(t, "400", d.TotalDeposits)
	assertDecimal(t, "480", d.TotalWithdrawals)
	assertDecimal(t, "75.5", d.OutstandingTransfers)
}

func TestSum_Empty(t *testing.T) {
	got := Sum([]domain.CashLineItem(nil), lineItemAmount)
	assert.True(t, got.IsZero())
}
