package repositories

import (
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
)

// LineItemStore defines operations on the six (amount, description) categories.
type LineItemStore interface {
	// LineItems returns the current items of a line item category in order.
	LineItems(category domain.Category) ([]domain.CashLineItem, error)

	// AddLineItem validates and appends an item, returning its index.
	AddLineItem(category domain.Category, item domain.CashLineItem) (int, error)

	// EditLineItem validates and replaces the item at index.
	EditLineItem(category domain.Category, index int, item domain.CashLineItem) error

	// DeleteLineItem removes the item at index.
	DeleteLineItem(category domain.Category, index int) (domain.CashLineItem, error)

	// InsertLineItemBelow inserts a blank placeholder after index (-1 for the top).
	InsertLineItemBelow(category domain.Category, index int) (int, error)
}

// CashBalanceStore defines operations on the two scalar balances.
type CashBalanceStore interface {
	CashBalance() domain.ScalarCashBalance
	SetCashBalance(balance domain.ScalarCashBalance) error
	SystemCash() domain.ScalarCashBalance
	SetSystemCash(balance domain.ScalarCashBalance) error
}

// TransactionStore defines operations on deposits and withdrawals taken on the agent's own terminal.
type TransactionStore interface {
	Deposits() []domain.DepositRecord
	AddDeposit(deposit domain.DepositRecord) (int, error)
	// EditDeposit keeps the replaced record's timestamp and returns what was stored.
	EditDeposit(index int, deposit domain.DepositRecord) (domain.DepositRecord, error)
	DeleteDeposit(index int) (domain.DepositRecord, error)
	InsertDepositBelow(index int, placeholder domain.DepositRecord) (int, error)

	Withdrawals() []domain.WithdrawalRecord
	AddWithdrawal(withdrawal domain.WithdrawalRecord) (int, error)
	EditWithdrawal(index int, withdrawal domain.WithdrawalRecord) (domain.WithdrawalRecord, error)
	DeleteWithdrawal(index int) (domain.WithdrawalRecord, error)
	InsertWithdrawalBelow(index int, placeholder domain.WithdrawalRecord) (int, error)
}

// CapitalStore defines operations on other-POS totals and paired POS balances.
type CapitalStore interface {
	OtherPOS() []domain.PosTerminalEntry
	// UpsertOtherPOS stores an entry under its name and reports whether the name was new.
	UpsertOtherPOS(entry domain.PosTerminalEntry) (bool, error)
	DeleteOtherPOS(name string) (domain.PosTerminalEntry, error)

	PosBalances() []domain.PosBalancePair
	AddPosBalance(pair domain.PosBalancePair) (int, error)
	EditPosBalance(index int, pair domain.PosBalancePair) error
	// DeletePosBalance removes the opening and closing balance at index together.
	DeletePosBalance(index int) (domain.PosBalancePair, error)
	InsertPosBalanceBelow(index int) (int, error)
}

// RecordStoreFacade combines every record operation of one session plus whole-store operations.
type RecordStoreFacade interface {
	LineItemStore
	CashBalanceStore
	TransactionStore
	CapitalStore

	// Snapshot returns a deep copy of every collection taken under a single lock.
	Snapshot() domain.Snapshot

	// Restore validates a snapshot and replaces the whole store with it.
	Restore(snapshot domain.Snapshot) error

	// Reset empties every collection and zeroes both balances.
	Reset()
}

// SessionRepository tracks working sessions and the record store each one owns.
type SessionRepository interface {
	// Create starts a new session with an empty store.
	Create(now time.Time) domain.Session

	// Get returns a session's store and marks the session as seen at now.
	Get(sessionID string, now time.Time) (domain.Session, RecordStoreFacade, error)

	// End discards a session and its store.
	End(sessionID string) error

	// Sweep ends every session idle since before cutoff and returns their ids.
	Sweep(cutoff time.Time) []string

	// Len returns the number of live sessions.
	Len() int
}
