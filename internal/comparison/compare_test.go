package comparison

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const bankCSV = `Reference,Amount,Branch
TX1,100,Ikeja
TX2,250,Yaba
TX3,75,Ikeja
,,
TX4,10,Yaba
`

const ledgerCSV = `Ref,Value
TX1,100
TX2,250
TX9,5
TX9,5
`

func loadCSV(t *testing.T, name, body string) *Table {
	t.Helper()
	table, err := LoadTable(name, strings.NewReader(body))
	require.NoError(t, err)
	return table
}

func TestLoadTable_CSV(t *testing.T) {
	table := loadCSV(t, "bank.csv", bankCSV)

	assert.Equal(t, []string{"Reference", "Amount", "Branch"}, table.Columns)
	assert.Len(t, table.Rows, 4, "blank rows are skipped")

	values, err := table.Values("Branch")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ikeja", "Yaba", "Ikeja", "Yaba"}, values)
}

func TestLoadTable_RaggedAndUnnamedColumns(t *testing.T) {
	table := loadCSV(t, "ragged.CSV", "A,,C\n1\n2,3,4,5\n")

	assert.Equal(t, []string{"A", "Unnamed: 1", "C"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
	assert.Equal(t, []string{"2", "3", "4"}, table.Rows[1])
}

func TestLoadTable_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Ref", "Value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"TX1", 100}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"TX2", 250}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := LoadTable("ledger.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ref", "Value"}, table.Columns)
	assert.Equal(t, [][]string{{"TX1", "100"}, {"TX2", "250"}}, table.Rows)
}

func TestLoadTable_Rejections(t *testing.T) {
	_, err := LoadTable("legacy.xls", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	_, err = LoadTable("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	_, err = LoadTable("broken.xlsx", strings.NewReader("not a zip"))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)

	_, err = LoadTable("quotes.csv", strings.NewReader("a,b\n\"unterminated,1\n"))
	assert.ErrorIs(t, err, apperrors.ErrMalformedImportData)
}

func TestCompare(t *testing.T) {
	left := loadCSV(t, "bank.csv", bankCSV)
	right := loadCSV(t, "ledger.csv", ledgerCSV)

	res, err := Compare(left, right, Options{LeftColumn: "Reference", RightColumn: "Ref"})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Left.Count)
	assert.Equal(t, 4, res.Right.Count)
	assert.Equal(t, []string{"TX3", "TX4"}, res.OnlyInLeft)
	assert.Equal(t, []string{"TX9"}, res.OnlyInRight)
	assert.Len(t, res.LeftMismatches.Rows, 2)
	assert.Len(t, res.RightMismatches.Rows, 2, "every row carrying a missing value is listed")
	assert.False(t, res.Matched())
}

func TestCompare_WithFilter(t *testing.T) {
	left := loadCSV(t, "bank.csv", bankCSV)
	right := loadCSV(t, "ledger.csv", ledgerCSV)

	res, err := Compare(left, right, Options{
		LeftColumn:  "Reference",
		RightColumn: "Ref",
		LeftFilter:  &RowFilter{Column: "Branch", Values: []string{"Yaba"}},
		RightFilter: &RowFilter{Column: "Value", Values: []string{"250"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"TX2", "TX4"}, res.Left.Values)
	assert.Equal(t, []string{"TX4"}, res.OnlyInLeft)
	assert.Empty(t, res.OnlyInRight)
	assert.NotNil(t, res.OnlyInRight)
}

func TestCompare_IdenticalColumnsMatch(t *testing.T) {
	left := loadCSV(t, "a.csv", "id\n1\n2\n")
	right := loadCSV(t, "b.csv", "key\n2\n1\n1\n")

	res, err := Compare(left, right, Options{LeftColumn: "id", RightColumn: "key"})
	require.NoError(t, err)
	assert.True(t, res.Matched())
	assert.Empty(t, res.LeftMismatches.Rows)
}

func TestCompare_UnknownColumn(t *testing.T) {
	left := loadCSV(t, "a.csv", "id\n1\n")
	right := loadCSV(t, "b.csv", "key\n1\n")

	_, err := Compare(left, right, Options{LeftColumn: "nope", RightColumn: "key"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = Compare(left, right, Options{LeftColumn: "id", RightColumn: "key", RightFilter: &RowFilter{Column: "nope"}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDistinctValues(t *testing.T) {
	table := loadCSV(t, "bank.csv", bankCSV)
	values, err := table.DistinctValues("Branch")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ikeja", "Yaba"}, values)
}
