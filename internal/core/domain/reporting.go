package domain

import (
	"github.com/shopspring/decimal"
)

// Outcome labels the sign of a reconciliation result.
type Outcome string

const (
	Surplus Outcome = "SURPLUS"
	Deficit Outcome = "DEFICIT"
)

// OutcomeOf returns SURPLUS for a zero or positive result and DEFICIT otherwise.
func OutcomeOf(result decimal.Decimal) Outcome {
	if result.IsNegative() {
		return Deficit
	}
	return Surplus
}

// ReportEntry is one itemized contribution underneath a report line.
type ReportEntry struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ReportLine is one subtotal on a side of a reconciliation report.
type ReportLine struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Total   decimal.Decimal `json:"total"`
	Entries []ReportEntry   `json:"entries,omitempty"`
}

// CashSummary reconciles physical cash inflows (credit) against outflows (debit).
type CashSummary struct {
	OpeningCash             decimal.Decimal `json:"openingCash"`
	AdditionalCashTotal     decimal.Decimal `json:"additionalCashTotal"`
	DepositTotal            decimal.Decimal `json:"depositTotal"`
	DepositChargeTotal      decimal.Decimal `json:"depositChargeTotal"`
	OtherPOSDepositTotal    decimal.Decimal `json:"otherPOSDepositTotal"`
	ExpenseTotal            decimal.Decimal `json:"expenseTotal"`
	BranchTransferTotal     decimal.Decimal `json:"branchTransferTotal"`
	WithdrawalPayoutTotal   decimal.Decimal `json:"withdrawalPayoutTotal"`
	OtherPOSWithdrawalTotal decimal.Decimal `json:"otherPOSWithdrawalTotal"`

	AdditionalCash  []CashLineItem `json:"additionalCash"`
	Expenses        []CashLineItem `json:"expenses"`
	BranchTransfers []CashLineItem `json:"branchTransfers"`

	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Result decimal.Decimal `json:"result"`
}

// Outcome labels the cash result.
func (s CashSummary) Outcome() Outcome {
	return OutcomeOf(s.Result)
}

// CreditLines itemizes the credit side in report order.
func (s CashSummary) CreditLines() []ReportLine {
	return []ReportLine{
		{Key: "opening_cash", Label: "Opening Cash", Total: s.OpeningCash},
		{Key: "additional_cash", Label: "Additional Cash", Total: s.AdditionalCashTotal, Entries: describedEntries(s.AdditionalCash)},
		{Key: "deposits", Label: "Paga Deposits", Total: s.DepositTotal},
		{Key: "deposit_charges", Label: "Deposit Charges", Total: s.DepositChargeTotal},
		{Key: "other_pos_deposits", Label: "Other POS Deposits", Total: s.OtherPOSDepositTotal},
	}
}

// DebitLines itemizes the debit side in report order.
func (s CashSummary) DebitLines() []ReportLine {
	return []ReportLine{
		{Key: "expenses", Label: "Expenses", Total: s.ExpenseTotal, Entries: describedEntries(s.Expenses)},
		{Key: "branch_transfers", Label: "Cash to Branches", Total: s.BranchTransferTotal, Entries: describedEntries(s.BranchTransfers)},
		{Key: "withdrawals", Label: "Paga Withdrawals", Total: s.WithdrawalPayoutTotal},
		{Key: "other_pos_withdrawals", Label: "Other POS Withdrawals", Total: s.OtherPOSWithdrawalTotal},
	}
}

// CapitalSummary reconciles POS-system balances and capital flows, independent of physical cash.
type CapitalSummary struct {
	OpeningBalances []PosBalance   `json:"openingBalances"`
	ClosingBalances []PosBalance   `json:"closingBalances"`
	ExternalCash    []CashLineItem `json:"externalCash"`
	CapitalInflows  []CashLineItem `json:"capitalInflows"`
	CapitalOutflows []CashLineItem `json:"capitalOutflows"`

	OpeningBalanceTotal decimal.Decimal `json:"openingBalanceTotal"`
	ExternalCashTotal   decimal.Decimal `json:"externalCashTotal"`
	InflowTotal         decimal.Decimal `json:"inflowTotal"`
	ClosingBalanceTotal decimal.Decimal `json:"closingBalanceTotal"`
	OutflowTotal        decimal.Decimal `json:"outflowTotal"`

	OpeningSide decimal.Decimal `json:"openingSide"`
	ClosingSide decimal.Decimal `json:"closingSide"`
	Result      decimal.Decimal `json:"result"`

	// SystemCash is captured on the capital page but deliberately not part of either side.
	SystemCash ScalarCashBalance `json:"systemCash"`
}

// Outcome labels the capital result.
func (s CapitalSummary) Outcome() Outcome {
	return OutcomeOf(s.Result)
}

// OpeningLines itemizes the opening side in report order.
func (s CapitalSummary) OpeningLines() []ReportLine {
	return []ReportLine{
		{Key: "opening_balances", Label: "POS Opening Balances", Total: s.OpeningBalanceTotal, Entries: balanceEntries(s.OpeningBalances)},
		{Key: "external_cash", Label: "External Additional Cash", Total: s.ExternalCashTotal, Entries: describedEntries(s.ExternalCash)},
		{Key: "capital_inflows", Label: "Capital Inflows", Total: s.InflowTotal, Entries: describedEntries(s.CapitalInflows)},
	}
}

// ClosingLines itemizes the closing side in report order.
func (s CapitalSummary) ClosingLines() []ReportLine {
	return []ReportLine{
		{Key: "closing_balances", Label: "POS Closing Balances", Total: s.ClosingBalanceTotal, Entries: balanceEntries(s.ClosingBalances)},
		{Key: "capital_outflows", Label: "Capital Outflows", Total: s.OutflowTotal, Entries: describedEntries(s.CapitalOutflows)},
	}
}

// DashboardTotals are the headline figures shown on the landing page.
type DashboardTotals struct {
	TotalDeposits        decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals     decimal.Decimal `json:"totalWithdrawals"`
	OutstandingTransfers decimal.Decimal `json:"outstandingTransfers"`
}

func describedEntries(items []CashLineItem) []ReportEntry {
	out := make([]ReportEntry, len(items))
	for i, item := range items {
		out[i] = ReportEntry{Label: item.Description, Amount: item.Amount}
	}
	return out
}

func balanceEntries(balances []PosBalance) []ReportEntry {
	out := make([]ReportEntry, len(balances))
	for i, b := range balances {
		out[i] = ReportEntry{Label: b.Name, Amount: b.Balance}
	}
	return out
}
