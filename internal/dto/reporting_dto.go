package dto

import (
	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/SscSPs/posync/internal/utils"
	"github.com/shopspring/decimal"
)

// ReportEntryResponse is one itemized contribution under a report line.
type ReportEntryResponse struct {
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

// ReportLineResponse is one subtotal of a reconciliation report.
type ReportLineResponse struct {
	Key       string                `json:"key"`
	Label     string                `json:"label"`
	Total     decimal.Decimal       `json:"total"`
	Formatted string                `json:"formatted"`
	Entries   []ReportEntryResponse `json:"entries"`
}

// CashSummaryResponse represents the cash summary report response
type CashSummaryResponse struct {
	CreditLines     []ReportLineResponse `json:"creditLines"`
	DebitLines      []ReportLineResponse `json:"debitLines"`
	Credit          decimal.Decimal      `json:"credit"`
	Debit           decimal.Decimal      `json:"debit"`
	Result          decimal.Decimal      `json:"result"`
	Outcome         domain.Outcome       `json:"outcome"`
	FormattedResult string               `json:"formattedResult"`
}

// CapitalSummaryResponse represents the capital summary report response
type CapitalSummaryResponse struct {
	OpeningLines    []ReportLineResponse     `json:"openingLines"`
	ClosingLines    []ReportLineResponse     `json:"closingLines"`
	OpeningSide     decimal.Decimal          `json:"openingSide"`
	ClosingSide     decimal.Decimal          `json:"closingSide"`
	Result          decimal.Decimal          `json:"result"`
	Outcome         domain.Outcome           `json:"outcome"`
	FormattedResult string                   `json:"formattedResult"`
	SystemCash      domain.ScalarCashBalance `json:"systemCash"`
}

// DashboardResponse carries the landing page cards.
type DashboardResponse struct {
	TotalDeposits        string `json:"totalDeposits"`
	TotalWithdrawals     string `json:"totalWithdrawals"`
	OutstandingTransfers string `json:"outstandingTransfers"`
}

// ToCashSummaryResponse converts a domain.CashSummary, formatting amounts with symbol.
func ToCashSummaryResponse(s domain.CashSummary, symbol string) CashSummaryResponse {
	return CashSummaryResponse{
		CreditLines:     toReportLines(s.CreditLines(), symbol),
		DebitLines:      toReportLines(s.DebitLines(), symbol),
		Credit:          s.Credit,
		Debit:           s.Debit,
		Result:          s.Result,
		Outcome:         s.Outcome(),
		FormattedResult: utils.FormatMoney(s.Result, symbol),
	}
}

// ToCapitalSummaryResponse converts a domain.CapitalSummary, formatting amounts with symbol.
func ToCapitalSummaryResponse(s domain.CapitalSummary, symbol string) CapitalSummaryResponse {
	return CapitalSummaryResponse{
		OpeningLines:    toReportLines(s.OpeningLines(), symbol),
		ClosingLines:    toReportLines(s.ClosingLines(), symbol),
		OpeningSide:     s.OpeningSide,
		ClosingSide:     s.ClosingSide,
		Result:          s.Result,
		Outcome:         s.Outcome(),
		FormattedResult: utils.FormatMoney(s.Result, symbol),
		SystemCash:      s.SystemCash,
	}
}

// ToDashboardResponse formats the dashboard cards.
func ToDashboardResponse(d domain.DashboardTotals, symbol string) DashboardResponse {
	return DashboardResponse{
		TotalDeposits:        utils.FormatMoney(d.TotalDeposits, symbol),
		TotalWithdrawals:     utils.FormatMoney(d.TotalWithdrawals, symbol),
		OutstandingTransfers: utils.FormatMoney(d.OutstandingTransfers, symbol),
	}
}

func toReportLines(lines []domain.ReportLine, symbol string) []ReportLineResponse {
	res := make([]ReportLineResponse, len(lines))
	for i, line := range lines {
		entries := make([]ReportEntryResponse, len(line.Entries))
		for j, e := range line.Entries {
			entries[j] = ReportEntryResponse{Label: e.Label, Amount: e.Amount, Formatted: utils.FormatMoney(e.Amount, symbol)}
		}
		res[i] = ReportLineResponse{
			Key:       line.Key,
			Label:     line.Label,
			Total:     line.Total,
			Formatted: utils.FormatMoney(line.Total, symbol),
			Entries:   entries,
		}
	}
	return res
}
