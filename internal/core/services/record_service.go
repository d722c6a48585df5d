package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
	portsrepo "github.com/SscSPs/posync/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/shopspring/decimal"
)

// DefaultDepositSurcharge is added to every deposit's actual amount unless overridden.
var DefaultDepositSurcharge = decimal.NewFromInt(50)

// recordService implements the RecordSvcFacade interface
type recordService struct {
	BaseService
	depositSurcharge decimal.Decimal
}

// RecordServiceOption is a functional option for configuring the record service
type RecordServiceOption func(*recordService)

// WithDepositSurcharge sets the fixed amount added on top of each deposit.
func WithDepositSurcharge(surcharge decimal.Decimal) RecordServiceOption {
	return func(s *recordService) {
		s.depositSurcharge = surcharge
	}
}

// WithRecordClock overrides the clock used to timestamp deposits and withdrawals.
func WithRecordClock(now func() time.Time) RecordServiceOption {
	return func(s *recordService) {
		s.Now = now
	}
}

// NewRecordService creates a new record service with the provided options
func NewRecordService(sessions portsrepo.SessionRepository, options ...RecordServiceOption) portssvc.RecordSvcFacade {
	svc := &recordService{
		BaseService:      newBaseService(sessions),
		depositSurcharge: DefaultDepositSurcharge,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure recordService implements the RecordSvcFacade interface
var _ portssvc.RecordSvcFacade = (*recordService)(nil)

func (s *recordService) timestamp() time.Time {
	return s.Now().UTC().Truncate(time.Second)
}

// --- line items ---

func (s *recordService) ListCashLineItems(ctx context.Context, sessionID string, category domain.Category) ([]domain.CashLineItem, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.LineItems(category)
}

func (s *recordService) SubmitCashLineItem(ctx context.Context, sessionID string, category domain.Category, req dto.CashLineItemRequest) (domain.Positioned[domain.CashLineItem], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.CashLineItem]{}, err
	}
	item := domain.NewCashLineItem(req.Amount, req.Description)
	index, err := store.AddLineItem(category, item)
	if err != nil {
		s.LogDebug(ctx, "Line item rejected", slog.String("category", string(category)), slog.String("reason", err.Error()))
		return domain.Positioned[domain.CashLineItem]{}, err
	}
	s.LogInfo(ctx, "Line item recorded",
		slog.String("category", string(category)),
		slog.Int("index", index),
		slog.String("amount", item.Amount.StringFixed(domain.AmountPrecision)))
	return domain.Positioned[domain.CashLineItem]{Index: index, Record: item}, nil
}

func (s *recordService) EditCashLineItem(ctx context.Context, sessionID string, category domain.Category, index int, req dto.CashLineItemRequest) (domain.Positioned[domain.CashLineItem], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.CashLineItem]{}, err
	}
	item := domain.NewCashLineItem(req.Amount, req.Description)
	if err := store.EditLineItem(category, index, item); err != nil {
		return domain.Positioned[domain.CashLineItem]{}, err
	}
	s.LogInfo(ctx, "Line item updated", slog.String("category", string(category)), slog.Int("index", index))
	return domain.Positioned[domain.CashLineItem]{Index: index, Record: item}, nil
}

func (s *recordService) RemoveCashLineItem(ctx context.Context, sessionID string, category domain.Category, index int) (domain.CashLineItem, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.CashLineItem{}, err
	}
	removed, err := store.DeleteLineItem(category, index)
	if err != nil {
		return domain.CashLineItem{}, err
	}
	s.LogInfo(ctx, "Line item removed", slog.String("category", string(category)), slog.Int("index", index))
	return removed, nil
}

func (s *recordService) InsertCashLineItemBelow(ctx context.Context, sessionID string, category domain.Category, index int) (int, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return -1, err
	}
	return store.InsertLineItemBelow(category, index)
}

// --- scalar balances ---

func (s *recordService) GetScalarCash(ctx context.Context, sessionID string) (domain.ScalarCashBalance, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.ScalarCashBalance{}, err
	}
	return store.CashBalance(), nil
}

func (s *recordService) SetScalarCash(ctx context.Context, sessionID string, req dto.CashBalanceRequest) (domain.ScalarCashBalance, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.ScalarCashBalance{}, err
	}
	balance := domain.NewScalarCashBalance(req.Opening, req.Closing)
	if err := store.SetCashBalance(balance); err != nil {
		return domain.ScalarCashBalance{}, err
	}
	s.LogInfo(ctx, "Cash balance set",
		slog.String("opening", balance.Opening.StringFixed(domain.AmountPrecision)),
		slog.String("closing", balance.Closing.StringFixed(domain.AmountPrecision)))
	return balance, nil
}

func (s *recordService) GetSystemCash(ctx context.Context, sessionID string) (domain.ScalarCashBalance, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.ScalarCashBalance{}, err
	}
	return store.SystemCash(), nil
}

func (s *recordService) SetSystemCash(ctx context.Context, sessionID string, req dto.CashBalanceRequest) (domain.ScalarCashBalance, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.ScalarCashBalance{}, err
	}
	balance := domain.NewScalarCashBalance(req.Opening, req.Closing)
	if err := store.SetSystemCash(balance); err != nil {
		return domain.ScalarCashBalance{}, err
	}
	s.LogInfo(ctx, "System cash set")
	return balance, nil
}

// --- deposits ---

func (s *recordService) ListDeposits(ctx context.Context, sessionID string) ([]domain.DepositRecord, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Deposits(), nil
}

func (s *recordService) newDeposit(ts time.Time, req dto.DepositRequest) domain.DepositRecord {
	return domain.NewDepositRecord(ts, req.AccountNumber, req.AccountName, req.Amount, req.Charge, s.depositSurcharge)
}

func (s *recordService) SubmitDeposit(ctx context.Context, sessionID string, req dto.DepositRequest) (domain.Positioned[domain.DepositRecord], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.DepositRecord]{}, err
	}
	deposit := s.newDeposit(s.timestamp(), req)
	index, err := store.AddDeposit(deposit)
	if err != nil {
		s.LogDebug(ctx, "Deposit rejected", slog.String("reason", err.Error()))
		return domain.Positioned[domain.DepositRecord]{}, err
	}
	s.LogInfo(ctx, "Deposit recorded",
		slog.Int("index", index),
		slog.String("recorded_amount", deposit.RecordedAmount.StringFixed(domain.AmountPrecision)))
	return domain.Positioned[domain.DepositRecord]{Index: index, Record: deposit}, nil
}

func (s *recordService) EditDeposit(ctx context.Context, sessionID string, index int, req dto.DepositRequest) (domain.Positioned[domain.DepositRecord], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.DepositRecord]{}, err
	}
	deposit, err := store.EditDeposit(index, s.newDeposit(s.timestamp(), req))
	if err != nil {
		return domain.Positioned[domain.DepositRecord]{}, err
	}
	s.LogInfo(ctx, "Deposit updated", slog.Int("index", index))
	return domain.Positioned[domain.DepositRecord]{Index: index, Record: deposit}, nil
}

func (s *recordService) RemoveDeposit(ctx context.Context, sessionID string, index int) (domain.DepositRecord, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.DepositRecord{}, err
	}
	removed, err := store.DeleteDeposit(index)
	if err != nil {
		return domain.DepositRecord{}, err
	}
	s.LogInfo(ctx, "Deposit removed", slog.Int("index", index))
	return removed, nil
}

func (s *recordService) InsertDepositBelow(ctx context.Context, sessionID string, index int) (int, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return -1, err
	}
	return store.InsertDepositBelow(index, domain.NewDepositPlaceholder(s.timestamp(), s.depositSurcharge))
}

// --- withdrawals ---

func (s *recordService) ListWithdrawals(ctx context.Context, sessionID string) ([]domain.WithdrawalRecord, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.Withdrawals(), nil
}

func newWithdrawal(ts time.Time, req dto.WithdrawalRequest) domain.WithdrawalRecord {
	return domain.NewWithdrawalRecord(ts, req.CardLast4, req.AmountWithdrawn, req.AmountPaidOut, req.Charge)
}

func (s *recordService) SubmitWithdrawal(ctx context.Context, sessionID string, req dto.WithdrawalRequest) (domain.Positioned[domain.WithdrawalRecord], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.WithdrawalRecord]{}, err
	}
	withdrawal := newWithdrawal(s.timestamp(), req)
	index, err := store.AddWithdrawal(withdrawal)
	if err != nil {
		s.LogDebug(ctx, "Withdrawal rejected", slog.String("reason", err.Error()))
		return domain.Positioned[domain.WithdrawalRecord]{}, err
	}
	s.LogInfo(ctx, "Withdrawal recorded",
		slog.Int("index", index),
		slog.String("amount_paid_out", withdrawal.AmountPaidOut.StringFixed(domain.AmountPrecision)))
	return domain.Positioned[domain.WithdrawalRecord]{Index: index, Record: withdrawal}, nil
}

func (s *recordService) EditWithdrawal(ctx context.Context, sessionID string, index int, req dto.WithdrawalRequest) (domain.Positioned[domain.WithdrawalRecord], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.WithdrawalRecord]{}, err
	}
	withdrawal, err := store.EditWithdrawal(index, newWithdrawal(s.timestamp(), req))
	if err != nil {
		return domain.Positioned[domain.WithdrawalRecord]{}, err
	}
	s.LogInfo(ctx, "Withdrawal updated", slog.Int("index", index))
	return domain.Positioned[domain.WithdrawalRecord]{Index: index, Record: withdrawal}, nil
}

func (s *recordService) RemoveWithdrawal(ctx context.Context, sessionID string, index int) (domain.WithdrawalRecord, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.WithdrawalRecord{}, err
	}
	removed, err := store.DeleteWithdrawal(index)
	if err != nil {
		return domain.WithdrawalRecord{}, err
	}
	s.LogInfo(ctx, "Withdrawal removed", slog.Int("index", index))
	return removed, nil
}

func (s *recordService) InsertWithdrawalBelow(ctx context.Context, sessionID string, index int) (int, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return -1, err
	}
	return store.InsertWithdrawalBelow(index, domain.WithdrawalRecord{Timestamp: s.timestamp()})
}

// --- capital ---

func (s *recordService) ListPosEntries(ctx context.Context, sessionID string) ([]domain.PosTerminalEntry, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.OtherPOS(), nil
}

func (s *recordService) SubmitPosEntry(ctx context.Context, sessionID string, req dto.OtherPOSRequest) (dto.UpsertOtherPOSResponse, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return dto.UpsertOtherPOSResponse{}, err
	}
	entry := domain.NewPosTerminalEntry(req.Name, req.WithdrawalTotal, req.DepositTotal)
	created, err := store.UpsertOtherPOS(entry)
	if err != nil {
		return dto.UpsertOtherPOSResponse{}, err
	}
	s.LogInfo(ctx, "Other POS totals stored", slog.String("pos_name", entry.Name), slog.Bool("created", created))
	return dto.UpsertOtherPOSResponse{Created: created, Entry: entry}, nil
}

func (s *recordService) DeletePosEntry(ctx context.Context, sessionID string, name string) (domain.PosTerminalEntry, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.PosTerminalEntry{}, err
	}
	removed, err := store.DeleteOtherPOS(name)
	if err != nil {
		return domain.PosTerminalEntry{}, err
	}
	s.LogInfo(ctx, "Other POS removed", slog.String("pos_name", removed.Name))
	return removed, nil
}

func (s *recordService) ListPosBalances(ctx context.Context, sessionID string) ([]domain.PosBalancePair, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return store.PosBalances(), nil
}

func (s *recordService) SubmitPosBalance(ctx context.Context, sessionID string, req dto.PosBalanceRequest) (domain.Positioned[domain.PosBalancePair], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.PosBalancePair]{}, err
	}
	pair := domain.NewPosBalancePair(req.Name, req.OpeningBalance, req.ClosingBalance)
	index, err := store.AddPosBalance(pair)
	if err != nil {
		return domain.Positioned[domain.PosBalancePair]{}, err
	}
	s.LogInfo(ctx, "POS balance recorded", slog.String("pos_name", pair.Name), slog.Int("index", index))
	return domain.Positioned[domain.PosBalancePair]{Index: index, Record: pair}, nil
}

func (s *recordService) EditPosBalance(ctx context.Context, sessionID string, index int, req dto.PosBalanceRequest) (domain.Positioned[domain.PosBalancePair], error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.Positioned[domain.PosBalancePair]{}, err
	}
	pair := domain.NewPosBalancePair(req.Name, req.OpeningBalance, req.ClosingBalance)
	if err := store.EditPosBalance(index, pair); err != nil {
		return domain.Positioned[domain.PosBalancePair]{}, err
	}
	s.LogInfo(ctx, "POS balance updated", slog.Int("index", index))
	return domain.Positioned[domain.PosBalancePair]{Index: index, Record: pair}, nil
}

func (s *recordService) RemovePosBalance(ctx context.Context, sessionID string, index int) (domain.PosBalancePair, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return domain.PosBalancePair{}, err
	}
	removed, err := store.DeletePosBalance(index)
	if err != nil {
		return domain.PosBalancePair{}, err
	}
	s.LogInfo(ctx, "POS balance removed", slog.String("pos_name", removed.Name), slog.Int("index", index))
	return removed, nil
}

func (s *recordService) InsertPosBalanceBelow(ctx context.Context, sessionID string, index int) (int, error) {
	store, err := s.Store(ctx, sessionID)
	if err != nil {
		return -1, err
	}
	return store.InsertPosBalanceBelow(index)
}
