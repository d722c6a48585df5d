package accounting

import (
	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sum adds up amount(item) over items. An empty slice sums to zero.
func Sum[T any](items []T, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(amount(item))
	}
	return total
}

func lineItemAmount(i domain.CashLineItem) decimal.Decimal { return i.Amount }

func balanceAmount(b domain.PosBalance) decimal.Decimal { return b.Balance }

// BuildCashSummary reconciles physical cash for a snapshot.
//
//	CREDIT = opening cash + additional cash + deposits (recorded) + deposit charges + other POS deposits
//	DEBIT  = expenses + branch transfers + withdrawals paid out + other POS withdrawals
//	RESULT = CREDIT - DEBIT
func BuildCashSummary(snap domain.Snapshot) domain.CashSummary {
	s := domain.CashSummary{
		OpeningCash:     snap.CashBalance.Opening,
		AdditionalCash:  nonNil(snap.AdditionalCash),
		Expenses:        nonNil(snap.Expenses),
		BranchTransfers: nonNil(snap.BranchTransfers),
	}

	s.AdditionalCashTotal = Sum(snap.AdditionalCash, lineItemAmount)
	s.DepositTotal = Sum(snap.Deposits, func(d domain.DepositRecord) decimal.Decimal { return d.RecordedAmount })
	s.DepositChargeTotal = Sum(snap.Deposits, func(d domain.DepositRecord) decimal.Decimal { return d.Charge })
	s.OtherPOSDepositTotal = Sum(snap.OtherPOS, func(e domain.PosTerminalEntry) decimal.Decimal { return e.DepositTotal })

	s.ExpenseTotal = Sum(snap.Expenses, lineItemAmount)
	s.BranchTransferTotal = Sum(snap.BranchTransfers, lineItemAmount)
	s.WithdrawalPayoutTotal = Sum(snap.Withdrawals, func(w domain.WithdrawalRecord) decimal.Decimal { return w.AmountPaidOut })
	s.OtherPOSWithdrawalTotal = Sum(snap.OtherPOS, func(e domain.PosTerminalEntry) decimal.Decimal { return e.WithdrawalTotal })

	s.Credit = s.OpeningCash.
		Add(s.AdditionalCashTotal).
		Add(s.DepositTotal).
		Add(s.DepositChargeTotal).
		Add(s.OtherPOSDepositTotal)
	s.Debit = s.ExpenseTotal.
		Add(s.BranchTransferTotal).
		Add(s.WithdrawalPayoutTotal).
		Add(s.OtherPOSWithdrawalTotal)
	s.Result = s.Credit.Sub(s.Debit)
	return s
}

// BuildCapitalSummary reconciles POS capital for a snapshot. System cash is carried along but
// takes no part in either side.
//
//	OPENING = opening balances + external additional cash + capital inflows
//	CLOSING = closing balances + capital outflows
//	RESULT  = OPENING - CLOSING
func BuildCapitalSummary(snap domain.Snapshot) domain.CapitalSummary {
	s := domain.CapitalSummary{
		OpeningBalances: snap.OpeningBalances(),
		ClosingBalances: snap.ClosingBalances(),
		ExternalCash:    nonNil(snap.ExternalCash),
		CapitalInflows:  nonNil(snap.CapitalInflows),
		CapitalOutflows: nonNil(snap.CapitalOutflows),
		SystemCash:      snap.SystemCash,
	}

	s.OpeningBalanceTotal = Sum(s.OpeningBalances, balanceAmount)
	s.ExternalCashTotal = Sum(snap.ExternalCash, lineItemAmount)
	s.InflowTotal = Sum(snap.CapitalInflows, lineItemAmount)
	s.ClosingBalanceTotal = Sum(s.ClosingBalances, balanceAmount)
	s.OutflowTotal = Sum(snap.CapitalOutflows, lineItemAmount)

	s.OpeningSide = s.OpeningBalanceTotal.Add(s.ExternalCashTotal).Add(s.InflowTotal)
	s.ClosingSide = s.ClosingBalanceTotal.Add(s.OutflowTotal)
	s.Result = s.OpeningSide.Sub(s.ClosingSide)
	return s
}

// BuildDashboard computes the landing page cards.
func BuildDashboard(snap domain.Snapshot) domain.DashboardTotals {
	return domain.DashboardTotals{
		TotalDeposits:        Sum(snap.Deposits, func(d domain.DepositRecord) decimal.Decimal { return d.RecordedAmount }),
		TotalWithdrawals:     Sum(snap.Withdrawals, func(w domain.WithdrawalRecord) decimal.Decimal { return w.AmountPaidOut }),
		OutstandingTransfers: Sum(snap.BranchTransfers, lineItemAmount),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
