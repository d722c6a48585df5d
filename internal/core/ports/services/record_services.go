package services

import (
	"context"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/SscSPs/posync/internal/dto"
)

// LineItemSvc covers the six (amount, description) categories.
type LineItemSvc interface {
	ListCashLineItems(ctx context.Context, sessionID string, category domain.Category) ([]domain.CashLineItem, error)
	SubmitCashLineItem(ctx context.Context, sessionID string, category domain.Category, req dto.CashLineItemRequest) (domain.Positioned[domain.CashLineItem], error)
	EditCashLineItem(ctx context.Context, sessionID string, category domain.Category, index int, req dto.CashLineItemRequest) (domain.Positioned[domain.CashLineItem], error)
	RemoveCashLineItem(ctx context.Context, sessionID string, category domain.Category, index int) (domain.CashLineItem, error)
	InsertCashLineItemBelow(ctx context.Context, sessionID string, category domain.Category, index int) (int, error)
}

// CashBalanceSvc covers the physical cash and system cash scalars.
type CashBalanceSvc interface {
	GetScalarCash(ctx context.Context, sessionID string) (domain.ScalarCashBalance, error)
	SetScalarCash(ctx context.Context, sessionID string, req dto.CashBalanceRequest) (domain.ScalarCashBalance, error)
	GetSystemCash(ctx context.Context, sessionID string) (domain.ScalarCashBalance, error)
	SetSystemCash(ctx context.Context, sessionID string, req dto.CashBalanceRequest) (domain.ScalarCashBalance, error)
}

// TransactionSvc covers deposits and withdrawals taken on the agent's own terminal.
type TransactionSvc interface {
	ListDeposits(ctx context.Context, sessionID string) ([]domain.DepositRecord, error)
	// SubmitDeposit stamps the deposit with the current time and adds the configured surcharge.
	SubmitDeposit(ctx context.Context, sessionID string, req dto.DepositRequest) (domain.Positioned[domain.DepositRecord], error)
	// EditDeposit keeps the original timestamp of the record it replaces.
	EditDeposit(ctx context.Context, sessionID string, index int, req dto.DepositRequest) (domain.Positioned[domain.DepositRecord], error)
	RemoveDeposit(ctx context.Context, sessionID string, index int) (domain.DepositRecord, error)
	InsertDepositBelow(ctx context.Context, sessionID string, index int) (int, error)

	ListWithdrawals(ctx context.Context, sessionID string) ([]domain.WithdrawalRecord, error)
	SubmitWithdrawal(ctx context.Context, sessionID string, req dto.WithdrawalRequest) (domain.Positioned[domain.WithdrawalRecord], error)
	EditWithdrawal(ctx context.Context, sessionID string, index int, req dto.WithdrawalRequest) (domain.Positioned[domain.WithdrawalRecord], error)
	RemoveWithdrawal(ctx context.Context, sessionID string, index int) (domain.WithdrawalRecord, error)
	InsertWithdrawalBelow(ctx context.Context, sessionID string, index int) (int, error)
}

// CapitalSvc covers other-POS totals and paired POS capital balances.
type CapitalSvc interface {
	ListPosEntries(ctx context.Context, sessionID string) ([]domain.PosTerminalEntry, error)
	// SubmitPosEntry creates or overwrites the entry with the request's name.
	SubmitPosEntry(ctx context.Context, sessionID string, req dto.OtherPOSRequest) (dto.UpsertOtherPOSResponse, error)
	DeletePosEntry(ctx context.Context, sessionID string, name string) (domain.PosTerminalEntry, error)

	ListPosBalances(ctx context.Context, sessionID string) ([]domain.PosBalancePair, error)
	SubmitPosBalance(ctx context.Context, sessionID string, req dto.PosBalanceRequest) (domain.Positioned[domain.PosBalancePair], error)
	EditPosBalance(ctx context.Context, sessionID string, index int, req dto.PosBalanceRequest) (domain.Positioned[domain.PosBalancePair], error)
	// RemovePosBalance removes the opening and closing balance at index together.
	RemovePosBalance(ctx context.Context, sessionID string, index int) (domain.PosBalancePair, error)
	InsertPosBalanceBelow(ctx context.Context, sessionID string, index int) (int, error)
}

// RecordSvcFacade combines all record-keeping service interfaces
type RecordSvcFacade interface {
	LineItemSvc
	CashBalanceSvc
	TransactionSvc
	CapitalSvc
}
