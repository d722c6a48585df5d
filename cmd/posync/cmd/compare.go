package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/posync/internal/comparison"
	"github.com/spf13/cobra"
)

var compareOpts struct {
	column1, column2             string
	filterColumn1, filterColumn2 string
	filterValues1, filterValues2 []string
	asJSON                       bool
}

var compareCmd = &cobra.Command{
	Use:   "compare FILE1 FILE2",
	Short: "Compare a column of two spreadsheets",
	Long: `Compare one column of two .csv or .xlsx files as sets of values and list
the values, and the full rows, missing from the other file.

Example:
  posync compare bank.csv ledger.xlsx --column1 Reference --column2 Ref
  posync compare bank.csv ledger.csv --column1 Reference --column2 Ref \
    --filter-column1 Branch --filter-values1 Ikeja,Yaba`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareOpts.column1, "column1", "", "column of FILE1 to compare")
	f.StringVar(&compareOpts.column2, "column2", "", "column of FILE2 to compare")
	f.StringVar(&compareOpts.filterColumn1, "filter-column1", "", "only keep FILE1 rows whose value in this column is listed in --filter-values1")
	f.StringSliceVar(&compareOpts.filterValues1, "filter-values1", nil, "allowed values for --filter-column1")
	f.StringVar(&compareOpts.filterColumn2, "filter-column2", "", "only keep FILE2 rows whose value in this column is listed in --filter-values2")
	f.StringSliceVar(&compareOpts.filterValues2, "filter-values2", nil, "allowed values for --filter-column2")
	f.BoolVar(&compareOpts.asJSON, "json", false, "print the result as JSON")
	_ = compareCmd.MarkFlagRequired("column1")
	_ = compareCmd.MarkFlagRequired("column2")
}

func runCompare(cmd *cobra.Command, args []string) error {
	left, err := loadTable(args[0])
	if err != nil {
		return err
	}
	right, err := loadTable(args[1])
	if err != nil {
		return err
	}

	res, err := comparison.Compare(left, right, comparison.Options{
		LeftColumn:  compareOpts.column1,
		RightColumn: compareOpts.column2,
		LeftFilter:  rowFilter(compareOpts.filterColumn1, compareOpts.filterValues1),
		RightFilter: rowFilter(compareOpts.filterColumn2, compareOpts.filterValues2),
	})
	if err != nil {
		return err
	}
	slog.Debug("Comparison finished",
		slog.Int("only_in_left", len(res.OnlyInLeft)),
		slog.Int("only_in_right", len(res.OnlyInRight)))

	out := cmd.OutOrStdout()
	if compareOpts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printComparison(out, res)
	return nil
}

func loadTable(path string) (*comparison.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return comparison.LoadTable(filepath.Base(path), f)
}

func rowFilter(column string, values []string) *comparison.RowFilter {
	if column == "" {
		return nil
	}
	return &comparison.RowFilter{Column: column, Values: values}
}

func printComparison(w io.Writer, res *comparison.Result) {
	fmt.Fprintf(w, "%s [%s]: %d values\n", res.Left.File, res.Left.Column, res.Left.Count)
	fmt.Fprintf(w, "%s [%s]: %d values\n\n", res.Right.File, res.Right.Column, res.Right.Count)

	if res.Matched() {
		fmt.Fprintln(w, "Both columns hold the same values.")
		return
	}
	printMissing(w, res.Left.File, res.Right.File, res.OnlyInLeft, res.LeftMismatches)
	printMissing(w, res.Right.File, res.Left.File, res.OnlyInRight, res.RightMismatches)
}

func printMissing(w io.Writer, from, to string, values []string, rows *comparison.Table) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "In %s but not in %s (%d):\n", from, to, len(values))
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
	if rows != nil && len(rows.Rows) > 0 {
		fmt.Fprintf(w, "Rows:\n  %s\n", strings.Join(rows.Columns, " | "))
		for _, row := range rows.Rows {
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " | "))
		}
	}
	fmt.Fprintln(w)
}
