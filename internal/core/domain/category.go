package domain

import (
	"fmt"

	"github.com/SscSPs/posync/internal/apperrors"
)

// Category names a record collection held by a session's record store.
type Category string

const (
	// Line item categories (amount + description).
	AdditionalCash  Category = "additional_cash"
	Expenses        Category = "expenses"
	BranchTransfers Category = "branch_transfers"
	ExternalCash    Category = "external_cash"
	CapitalInflows  Category = "capital_inflows"
	CapitalOutflows Category = "capital_outflows"

	// Typed record categories.
	Deposits    Category = "deposits"
	Withdrawals Category = "withdrawals"
	OtherPOS    Category = "other_pos"
	PosBalances Category = "pos_balances"
)

var lineItemCategories = []Category{
	AdditionalCash,
	Expenses,
	BranchTransfers,
	ExternalCash,
	CapitalInflows,
	CapitalOutflows,
}

// LineItemCategories returns every category backed by CashLineItem records, in display order.
func LineItemCategories() []Category {
	out := make([]Category, len(lineItemCategories))
	copy(out, lineItemCategories)
	return out
}

// AllCategories returns every record category in display order.
func AllCategories() []Category {
	return append(LineItemCategories(), Deposits, Withdrawals, OtherPOS, PosBalances)
}

// IsLineItem reports whether the category holds CashLineItem records.
func (c Category) IsLineItem() bool {
	for _, lc := range lineItemCategories {
		if c == lc {
			return true
		}
	}
	return false
}

// RequiresDescription reports whether line items of the category must carry a description.
// External cash and capital flows are amount-only entries.
func (c Category) RequiresDescription() bool {
	switch c {
	case AdditionalCash, Expenses, BranchTransfers:
		return true
	}
	return false
}

// Title is the human readable name used for sheet names and report headings.
func (c Category) Title() string {
	switch c {
	case AdditionalCash:
		return "Additional Cash"
	case Expenses:
		return "Expenses"
	case BranchTransfers:
		return "Branch Transfers"
	case ExternalCash:
		return "External Cash"
	case CapitalInflows:
		return "Capital Inflows"
	case CapitalOutflows:
		return "Capital Outflows"
	case Deposits:
		return "Deposits"
	case Withdrawals:
		return "Withdrawals"
	case OtherPOS:
		return "Other POS"
	case PosBalances:
		return "POS Balances"
	default:
		return string(c)
	}
}

// ParseCategory converts a path segment into a known Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownCategory, s)
}

// ParseLineItemCategory is ParseCategory restricted to line item categories.
func ParseLineItemCategory(s string) (Category, error) {
	c, err := ParseCategory(s)
	if err != nil {
		return "", err
	}
	if !c.IsLineItem() {
		return "", fmt.Errorf("%w: %q does not hold line items", apperrors.ErrUnknownCategory, s)
	}
	return c, nil
}
