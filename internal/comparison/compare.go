package comparison

import (
	"sort"
)

// RowFilter optionally narrows a table before comparing.
type RowFilter struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// Options selects the columns to compare and the optional per-file filters.
type Options struct {
	LeftColumn  string
	RightColumn string
	LeftFilter  *RowFilter
	RightFilter *RowFilter
}

// ColumnReport lists every value of the compared column of one file.
type ColumnReport struct {
	File   string   `json:"file"`
	Column string   `json:"column"`
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

// Result is the outcome of comparing one column of each file as sets of strings.
type Result struct {
	Left  ColumnReport `json:"left"`
	Right ColumnReport `json:"right"`

	// OnlyInLeft and OnlyInRight are the sorted distinct values missing from the other file.
	OnlyInLeft  []string `json:"onlyInLeft"`
	OnlyInRight []string `json:"onlyInRight"`

	// LeftMismatches and RightMismatches are the full rows carrying those values.
	LeftMismatches  *Table `json:"leftMismatches"`
	RightMismatches *Table `json:"rightMismatches"`
}

// Matched reports whether both columns hold the same set of values.
func (r *Result) Matched() bool {
	return len(r.OnlyInLeft) == 0 && len(r.OnlyInRight) == 0
}

// Compare applies the filters and diffs the selected columns of left and right.
func Compare(left, right *Table, opts Options) (*Result, error) {
	var err error
	if left, err = applyFilter(left, opts.LeftFilter); err != nil {
		return nil, err
	}
	if right, err = applyFilter(right, opts.RightFilter); err != nil {
		return nil, err
	}

	leftValues, err := left.Values(opts.LeftColumn)
	if err != nil {
		return nil, err
	}
	rightValues, err := right.Values(opts.RightColumn)
	if err != nil {
		return nil, err
	}

	leftSet, rightSet := toSet(leftValues), toSet(rightValues)
	onlyLeft := difference(leftSet, rightSet)
	onlyRight := difference(rightSet, leftSet)

	leftIdx, _ := left.ColumnIndex(opts.LeftColumn)
	rightIdx, _ := right.ColumnIndex(opts.RightColumn)

	return &Result{
		Left:            ColumnReport{File: left.Name, Column: opts.LeftColumn, Count: len(leftValues), Values: leftValues},
		Right:           ColumnReport{File: right.Name, Column: opts.RightColumn, Count: len(rightValues), Values: rightValues},
		OnlyInLeft:      onlyLeft,
		OnlyInRight:     onlyRight,
		LeftMismatches:  left.selectRows(missingFrom(rightSet, leftIdx)),
		RightMismatches: right.selectRows(missingFrom(leftSet, rightIdx)),
	}, nil
}

func applyFilter(t *Table, f *RowFilter) (*Table, error) {
	if f == nil || f.Column == "" {
		return t, nil
	}
	return t.Filter(f.Column, f.Values)
}

func difference(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for v := range a {
		if _, ok := b[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func missingFrom(other map[string]struct{}, idx int) func(row []string) bool {
	return func(row []string) bool {
		_, ok := other[row[idx]]
		return !ok
	}
}
