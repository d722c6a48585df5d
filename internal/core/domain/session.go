package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Session is one working period. Every session owns an independent record store.
type Session struct {
	SessionID  string    `json:"sessionID"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}

// Snapshot is a point-in-time copy of every collection in a session's record store.
// Reports and exports are computed from a snapshot so they never observe a half-applied mutation.
type Snapshot struct {
	CashBalance     ScalarCashBalance  `json:"cashBalance"`
	SystemCash      ScalarCashBalance  `json:"systemCash"`
	AdditionalCash  []CashLineItem     `json:"additionalCash"`
	Expenses        []CashLineItem     `json:"expenses"`
	BranchTransfers []CashLineItem     `json:"branchTransfers"`
	ExternalCash    []CashLineItem     `json:"externalCash"`
	CapitalInflows  []CashLineItem     `json:"capitalInflows"`
	CapitalOutflows []CashLineItem     `json:"capitalOutflows"`
	Deposits        []DepositRecord    `json:"deposits"`
	Withdrawals     []WithdrawalRecord `json:"withdrawals"`
	OtherPOS        []PosTerminalEntry `json:"otherPOS"`
	PosBalances     []PosBalancePair   `json:"posBalances"`
}

// LineItems returns the line items of a line item category, or nil for any other category.
func (s Snapshot) LineItems(c Category) []CashLineItem {
	switch c {
	case AdditionalCash:
		return s.AdditionalCash
	case Expenses:
		return s.Expenses
	case BranchTransfers:
		return s.BranchTransfers
	case ExternalCash:
		return s.ExternalCash
	case CapitalInflows:
		return s.CapitalInflows
	case CapitalOutflows:
		return s.CapitalOutflows
	default:
		return nil
	}
}

// SetLineItems replaces the line items of a line item category.
func (s *Snapshot) SetLineItems(c Category, items []CashLineItem) error {
	switch c {
	case AdditionalCash:
		s.AdditionalCash = items
	case Expenses:
		s.Expenses = items
	case BranchTransfers:
		s.BranchTransfers = items
	case ExternalCash:
		s.ExternalCash = items
	case CapitalInflows:
		s.CapitalInflows = items
	case CapitalOutflows:
		s.CapitalOutflows = items
	default:
		return fmt.Errorf("%w: %q does not hold line items", apperrors.ErrUnknownCategory, c)
	}
	return nil
}

// OpeningBalances projects the opening side of the POS balance pairs.
func (s Snapshot) OpeningBalances() []PosBalance {
	out := make([]PosBalance, len(s.PosBalances))
	for i, p := range s.PosBalances {
		out[i] = PosBalance{Name: p.Name, Balance: p.OpeningBalance}
	}
	return out
}

// ClosingBalances projects the closing side of the POS balance pairs.
func (s Snapshot) ClosingBalances() []PosBalance {
	out := make([]PosBalance, len(s.PosBalances))
	for i, p := range s.PosBalances {
		out[i] = PosBalance{Name: p.Name, Balance: p.ClosingBalance}
	}
	return out
}

// Validate checks the store-wide invariants a restored snapshot must hold. Every row is either
// a blank placeholder, as created by the table editor, or a record that would pass the same
// validation as a submitted one. Other-POS names must be unique.
func (s Snapshot) Validate() error {
	if err := s.CashBalance.Validate(); err != nil {
		return err
	}
	if err := s.SystemCash.Validate(); err != nil {
		return err
	}
	for _, c := range LineItemCategories() {
		for i, item := range s.LineItems(c) {
			if item.IsBlank() {
				continue
			}
			if err := item.ValidateIn(c); err != nil {
				return fmt.Errorf("%s[%d]: %w", c, i, err)
			}
		}
	}
	for i, d := range s.Deposits {
		if d.IsPlaceholder() {
			continue
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("deposits[%d]: %w", i, err)
		}
	}
	for i, w := range s.Withdrawals {
		if w.IsPlaceholder() {
			continue
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("withdrawals[%d]: %w", i, err)
		}
	}
	seen := make(map[string]struct{}, len(s.OtherPOS))
	for _, e := range s.OtherPOS {
		if err := e.Validate(); err != nil {
			return err
		}
		key := strings.TrimSpace(e.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate other POS terminal %q", apperrors.ErrValidation, key)
		}
		seen[key] = struct{}{}
	}
	for i, p := range s.PosBalances {
		if err := nonNegativeFields(fmt.Sprintf("pos_balances[%d]", i),
			namedAmount{"opening balance", p.OpeningBalance},
			namedAmount{"closing balance", p.ClosingBalance},
		); err != nil {
			return err
		}
	}
	return nil
}

// CheckDepositSurcharge verifies that every deposit records exactly surcharge on top of its
// actual amount, placeholders included.
func (s Snapshot) CheckDepositSurcharge(surcharge decimal.Decimal) error {
	for i, d := range s.Deposits {
		if !d.RecordedAmount.Equal(d.ActualAmount.Add(surcharge)) {
			return fmt.Errorf("%w: deposits[%d]: recorded amount %s is not actual amount %s plus surcharge %s",
				apperrors.ErrValidation, i, d.RecordedAmount.StringFixed(AmountPrecision),
				d.ActualAmount.StringFixed(AmountPrecision), surcharge.StringFixed(AmountPrecision))
		}
	}
	return nil
}

type namedAmount struct {
	name   string
	amount decimal.Decimal
}

func nonNegativeFields(prefix string, fields ...namedAmount) error {
	for _, f := range fields {
		if err := requireNonNegative(prefix+" "+f.name, f.amount); err != nil {
			return err
		}
	}
	return nil
}
