package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimal places every stored amount is rounded to.
const AmountPrecision = 2

// RoundAmount normalizes a monetary value to AmountPrecision places.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPrecision)
}

// CashLineItem is a plain (amount, description) entry. It backs additional cash, expenses,
// branch transfers, external additional cash, capital inflows and capital outflows.
type CashLineItem struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// NewCashLineItem builds a line item with a normalized amount and trimmed description.
func NewCashLineItem(amount decimal.Decimal, description string) CashLineItem {
	return CashLineItem{
		Amount:      RoundAmount(amount),
		Description: strings.TrimSpace(description),
	}
}

// Validate checks the rule shared by every line item category.
func (i CashLineItem) Validate() error {
	return requirePositive("amount", i.Amount)
}

// ValidateIn checks that the line item can be stored under category.
func (i CashLineItem) ValidateIn(category Category) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if category.RequiresDescription() {
		return requireText("description", i.Description)
	}
	return nil
}

// IsBlank reports whether the item is an untouched inserted row.
func (i CashLineItem) IsBlank() bool {
	return i.Amount.IsZero() && strings.TrimSpace(i.Description) == ""
}

// LineItemValidator returns the store-time validator for category.
func LineItemValidator(category Category) func(CashLineItem) error {
	return func(i CashLineItem) error {
		return i.ValidateIn(category)
	}
}

// DepositRecord is a single deposit taken on the agent's own terminal.
// RecordedAmount carries the fixed surcharge on top of ActualAmount and is what exports and
// the cash summary use; ActualAmount is what the customer handed over.
type DepositRecord struct {
	Timestamp      time.Time       `json:"timestamp"`
	AccountNumber  string          `json:"accountNumber"`
	AccountName    string          `json:"accountName"`
	RecordedAmount decimal.Decimal `json:"recordedAmount"`
	ActualAmount   decimal.Decimal `json:"actualAmount"`
	Charge         decimal.Decimal `json:"charge"`
}

// NewDepositRecord builds a deposit, deriving RecordedAmount as actual + surcharge.
func NewDepositRecord(ts time.Time, accountNumber, accountName string, actual, charge, surcharge decimal.Decimal) DepositRecord {
	actual = RoundAmount(actual)
	return DepositRecord{
		Timestamp:      ts,
		AccountNumber:  strings.TrimSpace(accountNumber),
		AccountName:    strings.TrimSpace(accountName),
		RecordedAmount: RoundAmount(actual.Add(surcharge)),
		ActualAmount:   actual,
		Charge:         RoundAmount(charge),
	}
}

// NewDepositPlaceholder builds the blank row inserted by the table editor. It carries the
// surcharge like any other deposit so recorded and actual totals stay surcharge-aligned.
func NewDepositPlaceholder(ts time.Time, surcharge decimal.Decimal) DepositRecord {
	return NewDepositRecord(ts, "", "", decimal.Zero, decimal.Zero, surcharge)
}

// IsPlaceholder reports whether the deposit is a blank inserted row.
func (d DepositRecord) IsPlaceholder() bool {
	return d.AccountNumber == "" && d.AccountName == "" && d.ActualAmount.IsZero() && d.Charge.IsZero()
}

// Surcharge returns the amount added on top of the actual deposit.
func (d DepositRecord) Surcharge() decimal.Decimal {
	return d.RecordedAmount.Sub(d.ActualAmount)
}

// Validate checks that the deposit can be stored.
func (d DepositRecord) Validate() error {
	if err := requireText("account number", d.AccountNumber); err != nil {
		return err
	}
	if err := requireText("account name", d.AccountName); err != nil {
		return err
	}
	if err := requirePositive("amount", d.ActualAmount); err != nil {
		return err
	}
	if d.RecordedAmount.LessThan(d.ActualAmount) {
		return fmt.Errorf("%w: recorded amount must not be below the actual amount", apperrors.ErrValidation)
	}
	return requireNonNegative("charge", d.Charge)
}

// WithdrawalRecord is a single card withdrawal paid out in cash.
type WithdrawalRecord struct {
	Timestamp       time.Time       `json:"timestamp"`
	CardLast4       string          `json:"cardLast4"`
	AmountWithdrawn decimal.Decimal `json:"amountWithdrawn"`
	AmountPaidOut   decimal.Decimal `json:"amountPaidOut"`
	Charge          decimal.Decimal `json:"charge"`
}

// NewWithdrawalRecord builds a withdrawal with normalized amounts.
func NewWithdrawalRecord(ts time.Time, cardLast4 string, withdrawn, paidOut, charge decimal.Decimal) WithdrawalRecord {
	return WithdrawalRecord{
		Timestamp:       ts,
		CardLast4:       strings.TrimSpace(cardLast4),
		AmountWithdrawn: RoundAmount(withdrawn),
		AmountPaidOut:   RoundAmount(paidOut),
		Charge:          RoundAmount(charge),
	}
}

// IsPlaceholder reports whether the withdrawal is a blank inserted row.
func (w WithdrawalRecord) IsPlaceholder() bool {
	return w.CardLast4 == "" && w.AmountWithdrawn.IsZero() && w.AmountPaidOut.IsZero() && w.Charge.IsZero()
}

// Validate checks that the withdrawal can be stored.
func (w WithdrawalRecord) Validate() error {
	if err := requireText("card digits", w.CardLast4); err != nil {
		return err
	}
	if err := requirePositive("amount withdrawn", w.AmountWithdrawn); err != nil {
		return err
	}
	if err := requireNonNegative("amount paid out", w.AmountPaidOut); err != nil {
		return err
	}
	return requireNonNegative("charge", w.Charge)
}

// PosTerminalEntry holds the day's aggregate totals for a third-party POS terminal.
// Entries are keyed by Name; submitting the same name again replaces the totals.
type PosTerminalEntry struct {
	Name            string          `json:"name"`
	WithdrawalTotal decimal.Decimal `json:"withdrawalTotal"`
	DepositTotal    decimal.Decimal `json:"depositTotal"`
}

// NewPosTerminalEntry builds an entry with normalized totals.
func NewPosTerminalEntry(name string, withdrawal, deposit decimal.Decimal) PosTerminalEntry {
	return PosTerminalEntry{
		Name:            strings.TrimSpace(name),
		WithdrawalTotal: RoundAmount(withdrawal),
		DepositTotal:    RoundAmount(deposit),
	}
}

// Validate checks that the entry can be stored.
func (e PosTerminalEntry) Validate() error {
	if err := requireText("terminal name", e.Name); err != nil {
		return err
	}
	if err := requireNonNegative("withdrawal total", e.WithdrawalTotal); err != nil {
		return err
	}
	return requireNonNegative("deposit total", e.DepositTotal)
}

// PosBalancePair is a terminal's opening and closing capital balance. The opening and closing
// balance lists are projections of one ordered list of pairs, which keeps them aligned.
type PosBalancePair struct {
	Name           string          `json:"name"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// NewPosBalancePair builds a pair with normalized balances.
func NewPosBalancePair(name string, opening, closing decimal.Decimal) PosBalancePair {
	return PosBalancePair{
		Name:           strings.TrimSpace(name),
		OpeningBalance: RoundAmount(opening),
		ClosingBalance: RoundAmount(closing),
	}
}

// Validate checks that the pair can be stored.
func (p PosBalancePair) Validate() error {
	if err := requireText("terminal name", p.Name); err != nil {
		return err
	}
	if err := requireNonNegative("opening balance", p.OpeningBalance); err != nil {
		return err
	}
	return requireNonNegative("closing balance", p.ClosingBalance)
}

// PosBalance is one side of a PosBalancePair.
type PosBalance struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// ScalarCashBalance is a single overwritten opening/closing value pair.
type ScalarCashBalance struct {
	Opening decimal.Decimal `json:"opening"`
	Closing decimal.Decimal `json:"closing"`
}

// NewScalarCashBalance builds a balance with normalized values.
func NewScalarCashBalance(opening, closing decimal.Decimal) ScalarCashBalance {
	return ScalarCashBalance{Opening: RoundAmount(opening), Closing: RoundAmount(closing)}
}

// Validate checks that the balance can be stored.
func (b ScalarCashBalance) Validate() error {
	if err := requireNonNegative("opening cash", b.Opening); err != nil {
		return err
	}
	return requireNonNegative("closing cash", b.Closing)
}

// Positioned pairs a record with its current position in its list.
type Positioned[T any] struct {
	Index  int `json:"index"`
	Record T   `json:"record"`
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, field)
	}
	return nil
}

func requireText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	return nil
}
