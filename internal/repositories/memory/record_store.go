package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
)

// RecordStore holds every record collection of one working session.
// A single RWMutex serializes mutations so snapshots always see a consistent state.
type RecordStore struct {
	mu sync.RWMutex

	cashBalance domain.ScalarCashBalance
	systemCash  domain.ScalarCashBalance
	lineItems   map[domain.Category]*RecordList[domain.CashLineItem]
	deposits    *RecordList[domain.DepositRecord]
	withdrawals *RecordList[domain.WithdrawalRecord]
	otherPOS    *KeyedRecords[domain.PosTerminalEntry]
	posBalances *RecordList[domain.PosBalancePair]
}

var _ portsrepo.RecordStoreFacade = (*RecordStore)(nil)

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	s := &RecordStore{
		lineItems:   make(map[domain.Category]*RecordList[domain.CashLineItem]),
		deposits:    NewRecordList(domain.DepositRecord.Validate),
		withdrawals: NewRecordList(domain.WithdrawalRecord.Validate),
		otherPOS:    NewKeyedRecords(domain.PosTerminalEntry.Validate),
		posBalances: NewRecordList(domain.PosBalancePair.Validate),
	}
	for _, c := range domain.LineItemCategories() {
		s.lineItems[c] = NewRecordList(domain.LineItemValidator(c))
	}
	return s
}

func (s *RecordStore) lineItemList(category domain.Category) (*RecordList[domain.CashLineItem], error) {
	list, ok := s.lineItems[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q does not hold line items", apperrors.ErrUnknownCategory, category)
	}
	return list, nil
}

// LineItems returns the items of a line item category.
func (s *RecordStore) LineItems(category domain.Category) ([]domain.CashLineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, err := s.lineItemList(category)
	if err != nil {
		return nil, err
	}
	return list.All(), nil
}

// AddLineItem appends a validated item.
func (s *RecordStore) AddLineItem(category domain.Category, item domain.CashLineItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.lineItemList(category)
	if err != nil {
		return -1, err
	}
	return list.Add(item)
}

// EditLineItem replaces the item at index.
func (s *RecordStore) EditLineItem(category domain.Category, index int, item domain.CashLineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.lineItemList(category)
	if err != nil {
		return err
	}
	return list.Edit(index, item)
}

// DeleteLineItem removes the item at index.
func (s *RecordStore) DeleteLineItem(category domain.Category, index int) (domain.CashLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.lineItemList(category)
	if err != nil {
		return domain.CashLineItem{}, err
	}
	return list.Remove(index)
}

// InsertLineItemBelow inserts a blank item after index.
func (s *RecordStore) InsertLineItemBelow(category domain.Category, index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.lineItemList(category)
	if err != nil {
		return -1, err
	}
	return list.InsertBelow(index, domain.CashLineItem{})
}

// CashBalance returns the physical opening and closing cash.
func (s *RecordStore) CashBalance() domain.ScalarCashBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cashBalance
}

// SetCashBalance overwrites the physical cash balance.
func (s *RecordStore) SetCashBalance(balance domain.ScalarCashBalance) error {
	if err := balance.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.cashBalance = balance
	s.mu.Unlock()
	return nil
}

// SystemCash returns the cash figure reported by the POS system.
func (s *RecordStore) SystemCash() domain.ScalarCashBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemCash
}

// SetSystemCash overwrites the system cash figure.
func (s *RecordStore) SetSystemCash(balance domain.ScalarCashBalance) error {
	if err := balance.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.systemCash = balance
	s.mu.Unlock()
	return nil
}

func (s *RecordStore) Deposits() []domain.DepositRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deposits.All()
}

func (s *RecordStore) AddDeposit(deposit domain.DepositRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deposits.Add(deposit)
}

// EditDeposit replaces the deposit at index. The replaced record's timestamp survives the edit
// unless it was never set.
func (s *RecordStore) EditDeposit(index int, deposit domain.DepositRecord) (domain.DepositRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.deposits.At(index)
	if err != nil {
		return domain.DepositRecord{}, err
	}
	if !existing.Timestamp.IsZero() {
		deposit.Timestamp = existing.Timestamp
	}
	if err := s.deposits.Edit(index, deposit); err != nil {
		return domain.DepositRecord{}, err
	}
	return deposit, nil
}

func (s *RecordStore) DeleteDeposit(index int) (domain.DepositRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deposits.Remove(index)
}

func (s *RecordStore) InsertDepositBelow(index int, placeholder domain.DepositRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deposits.InsertBelow(index, placeholder)
}

func (s *RecordStore) Withdrawals() []domain.WithdrawalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.withdrawals.All()
}

func (s *RecordStore) AddWithdrawal(withdrawal domain.WithdrawalRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdrawals.Add(withdrawal)
}

// EditWithdrawal is EditDeposit for withdrawals.
func (s *RecordStore) EditWithdrawal(index int, withdrawal domain.WithdrawalRecord) (domain.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.withdrawals.At(index)
	if err != nil {
		return domain.WithdrawalRecord{}, err
	}
	if !existing.Timestamp.IsZero() {
		withdrawal.Timestamp = existing.Timestamp
	}
	if err := s.withdrawals.Edit(index, withdrawal); err != nil {
		return domain.WithdrawalRecord{}, err
	}
	return withdrawal, nil
}

func (s *RecordStore) DeleteWithdrawal(index int) (domain.WithdrawalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdrawals.Remove(index)
}

func (s *RecordStore) InsertWithdrawalBelow(index int, placeholder domain.WithdrawalRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withdrawals.InsertBelow(index, placeholder)
}

// OtherPOS returns terminal totals in first-submission order.
func (s *RecordStore) OtherPOS() []domain.PosTerminalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.otherPOS.All()
}

// UpsertOtherPOS stores the entry under its trimmed name.
func (s *RecordStore) UpsertOtherPOS(entry domain.PosTerminalEntry) (bool, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otherPOS.Upsert(entry.Name, entry)
}

// DeleteOtherPOS removes the named terminal.
func (s *RecordStore) DeleteOtherPOS(name string) (domain.PosTerminalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otherPOS.Delete(strings.TrimSpace(name))
}

// PosBalances returns the opening/closing pairs in order.
func (s *RecordStore) PosBalances() []domain.PosBalancePair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posBalances.All()
}

func (s *RecordStore) AddPosBalance(pair domain.PosBalancePair) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posBalances.Add(pair)
}

func (s *RecordStore) EditPosBalance(index int, pair domain.PosBalancePair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posBalances.Edit(index, pair)
}

func (s *RecordStore) DeletePosBalance(index int) (domain.PosBalancePair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posBalances.Remove(index)
}

func (s *RecordStore) InsertPosBalanceBelow(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posBalances.InsertBelow(index, domain.PosBalancePair{})
}

// Snapshot copies every collection under the read lock.
func (s *RecordStore) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		CashBalance:     s.cashBalance,
		SystemCash:      s.systemCash,
		AdditionalCash:  s.lineItems[domain.AdditionalCash].All(),
		Expenses:        s.lineItems[domain.Expenses].All(),
		BranchTransfers: s.lineItems[domain.BranchTransfers].All(),
		ExternalCash:    s.lineItems[domain.ExternalCash].All(),
		CapitalInflows:  s.lineItems[domain.CapitalInflows].All(),
		CapitalOutflows: s.lineItems[domain.CapitalOutflows].All(),
		Deposits:        s.deposits.All(),
		Withdrawals:     s.withdrawals.All(),
		OtherPOS:        s.otherPOS.All(),
		PosBalances:     s.posBalances.All(),
	}
}

// Restore replaces the whole store. Nothing changes when the snapshot is invalid.
func (s *RecordStore) Restore(snapshot domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashBalance = snapshot.CashBalance
	s.systemCash = snapshot.SystemCash
	for c, list := range s.lineItems {
		list.Replace(snapshot.LineItems(c))
	}
	s.deposits.Replace(snapshot.Deposits)
	s.withdrawals.Replace(snapshot.Withdrawals)
	s.otherPOS.Clear()
	for _, e := range snapshot.OtherPOS {
		e.Name = strings.TrimSpace(e.Name)
		if _, err := s.otherPOS.Upsert(e.Name, e); err != nil {
			// Unreachable after snapshot.Validate.
			return err
		}
	}
	s.posBalances.Replace(snapshot.PosBalances)
	return nil
}

// Reset empties the store.
func (s *RecordStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashBalance = domain.ScalarCashBalance{}
	s.systemCash = domain.ScalarCashBalance{}
	for _, list := range s.lineItems {
		list.Clear()
	}
	s.deposits.Clear()
	s.withdrawals.Clear()
	s.otherPOS.Clear()
	s.posBalances.Clear()
}
