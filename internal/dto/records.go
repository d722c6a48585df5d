package dto

import (
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashLineItemRequest submits or edits an (amount, description) entry.
type CashLineItemRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"gt=0" swaggertype:"string" example:"500.00"`
	Description string          `json:"description"`
}

// CashBalanceRequest overwrites a scalar opening/closing balance.
type CashBalanceRequest struct {
	Opening decimal.Decimal `json:"opening" binding:"gte=0" swaggertype:"string" example:"1000.00"`
	Closing decimal.Decimal `json:"closing" binding:"gte=0" swaggertype:"string" example:"0"`
}

// DepositRequest submits or edits a deposit. Amount is what the customer handed over;
// the configured surcharge is added when the record is stored.
type DepositRequest struct {
	AccountNumber string          `json:"accountNumber" binding:"required"`
	AccountName   string          `json:"accountName" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"gt=0" swaggertype:"string" example:"1000.00"`
	Charge        decimal.Decimal `json:"charge" binding:"gte=0" swaggertype:"string" example:"50.00"`
}

// WithdrawalRequest submits or edits a card withdrawal.
type WithdrawalRequest struct {
	CardLast4       string          `json:"cardLast4" binding:"required"`
	AmountWithdrawn decimal.Decimal `json:"amountWithdrawn" binding:"gt=0" swaggertype:"string" example:"5000.00"`
	AmountPaidOut   decimal.Decimal `json:"amountPaidOut" binding:"gte=0" swaggertype:"string" example:"4900.00"`
	Charge          decimal.Decimal `json:"charge" binding:"gte=0" swaggertype:"string" example:"100.00"`
}

// OtherPOSRequest upserts a third-party terminal's totals by name.
type OtherPOSRequest struct {
	Name            string          `json:"name" binding:"required"`
	WithdrawalTotal decimal.Decimal `json:"withdrawalTotal" binding:"gte=0" swaggertype:"string" example:"12000.00"`
	DepositTotal    decimal.Decimal `json:"depositTotal" binding:"gte=0" swaggertype:"string" example:"8000.00"`
}

// PosBalanceRequest submits or edits a terminal's opening and closing capital balance.
type PosBalanceRequest struct {
	Name           string          `json:"name" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"gte=0" swaggertype:"string" example:"2000.00"`
	ClosingBalance decimal.Decimal `json:"closingBalance" binding:"gte=0" swaggertype:"string" example:"1500.00"`
}

// ListResponse wraps a category listing. Positions are the slice indexes.
type ListResponse[T any] struct {
	Category domain.Category `json:"category"`
	Count    int             `json:"count"`
	Records  []T             `json:"records"`
}

// NewListResponse builds a listing; records is never rendered as null.
func NewListResponse[T any](category domain.Category, records []T) ListResponse[T] {
	if records == nil {
		records = []T{}
	}
	return ListResponse[T]{Category: category, Count: len(records), Records: records}
}

// UpsertOtherPOSResponse reports the stored entry and whether it was new.
type UpsertOtherPOSResponse struct {
	Created bool                    `json:"created"`
	Entry   domain.PosTerminalEntry `json:"entry"`
}

// SessionResponse describes a working session.
type SessionResponse struct {
	SessionID  string    `json:"sessionID"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// ToSessionResponse converts a domain.Session to SessionResponse DTO
func ToSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{
		SessionID:  s.SessionID,
		CreatedAt:  s.CreatedAt,
		LastSeenAt: s.LastSeenAt,
	}
}

// ImportResponse reports how many records of each category were restored from a workbook.
type ImportResponse struct {
	Counts map[domain.Category]int `json:"counts"`
}

// ToImportResponse counts the records of a restored snapshot.
func ToImportResponse(snap domain.Snapshot) ImportResponse {
	counts := make(map[domain.Category]int, len(domain.AllCategories()))
	for _, c := range domain.LineItemCategories() {
		counts[c] = len(snap.LineItems(c))
	}
	counts[domain.Deposits] = len(snap.Deposits)
	counts[domain.Withdrawals] = len(snap.Withdrawals)
	counts[domain.OtherPOS] = len(snap.OtherPOS)
	counts[domain.PosBalances] = len(snap.PosBalances)
	return ImportResponse{Counts: counts}
}
