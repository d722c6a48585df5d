package export

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/SscSPs/posync/internal/utils"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// LineStyle selects how a document line is rendered.
type LineStyle int

const (
	StyleTitle LineStyle = iota
	StyleMeta
	StyleHeading
	StyleItem
	StyleEntry
	StyleResult
	StyleSpacer
)

// Line is one rendered row of the reconciliation document.
type Line struct {
	Style LineStyle
	Text  string
}

// Page is the ordered lines of one document page.
type Page struct {
	Lines []Line
}

// DocumentOptions controls fonts and currency rendering.
type DocumentOptions struct {
	// FontPath is a UTF-8 TrueType font. Without one the PDF core font is used, which
	// cannot draw symbols outside cp1252, so CurrencySymbol falls back to FallbackSymbol.
	FontPath       string
	CurrencySymbol string
	FallbackSymbol string
}

// DefaultFallbackSymbol replaces the Naira sign when only core fonts are available.
const DefaultFallbackSymbol = "NGN "

func (o DocumentOptions) symbol() string {
	sym := o.CurrencySymbol
	if sym == "" {
		sym = utils.DefaultCurrencySymbol
	}
	if o.FontPath != "" || cp1252Safe(sym) {
		return sym
	}
	if o.FallbackSymbol != "" {
		return o.FallbackSymbol
	}
	return DefaultFallbackSymbol
}

func cp1252Safe(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}

// BuildReconciliationLayout lays out the two-page report: the cash summary on page one and the
// capital summary on page two, each ending with its signed result and outcome.
func BuildReconciliationLayout(cash domain.CashSummary, capital domain.CapitalSummary, generatedAt time.Time, symbol string) []Page {
	money := func(d decimal.Decimal) string { return utils.FormatMoney(d, symbol) }

	first := Page{Lines: []Line{
		{StyleTitle, "Reconciliation Summary"},
		{StyleMeta, "Date: " + generatedAt.Format(TimestampLayout)},
		{StyleSpacer, ""},
		{StyleHeading, "CASH SUMMARY - CREDIT"},
	}}
	first.Lines = append(first.Lines, reportLines(cash.CreditLines(), money)...)
	first.Lines = append(first.Lines,
		Line{StyleSpacer, ""},
		Line{StyleHeading, "CASH SUMMARY - DEBIT"},
	)
	first.Lines = append(first.Lines, reportLines(cash.DebitLines(), money)...)
	first.Lines = append(first.Lines,
		Line{StyleSpacer, ""},
		Line{StyleResult, fmt.Sprintf("FINAL CASH BALANCE: %s (%s)", money(cash.Result), cash.Outcome())},
	)

	second := Page{Lines: []Line{
		{StyleTitle, "CAPITAL SUMMARY"},
		{StyleSpacer, ""},
		{StyleHeading, "OPENING SIDE"},
	}}
	second.Lines = append(second.Lines, reportLines(capital.OpeningLines(), money)...)
	second.Lines = append(second.Lines,
		Line{StyleSpacer, ""},
		Line{StyleHeading, "CLOSING SIDE"},
	)
	second.Lines = append(second.Lines, reportLines(capital.ClosingLines(), money)...)
	second.Lines = append(second.Lines,
		Line{StyleItem, "System Cash (not reconciled): opening " + money(capital.SystemCash.Opening) +
			", closing " + money(capital.SystemCash.Closing)},
		Line{StyleSpacer, ""},
		Line{StyleResult, fmt.Sprintf("FINAL CAPITAL BALANCE: %s (%s)", money(capital.Result), capital.Outcome())},
	)

	return []Page{first, second}
}

func reportLines(lines []domain.ReportLine, money func(decimal.Decimal) string) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{StyleItem, l.Label + ": " + money(l.Total)})
		for _, e := range l.Entries {
			out = append(out, Line{StyleEntry, "- " + money(e.Amount) + "  " + e.Label})
		}
	}
	return out
}

// WriteReconciliationPDF renders the report as an A4 PDF.
func WriteReconciliationPDF(w io.Writer, cash domain.CashSummary, capital domain.CapitalSummary, generatedAt time.Time, opts DocumentOptions) error {
	pages := BuildReconciliationLayout(cash, capital, generatedAt, opts.symbol())
	pdf, err := newDocument(opts)
	if err != nil {
		return err
	}
	renderPages(pdf, pages, opts.FontPath != "")
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render reconciliation PDF: %w", err)
	}
	return nil
}

const fontFamily = "Body"

func newDocument(opts DocumentOptions) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Reconciliation Summary", true)
	pdf.SetAutoPageBreak(true, 15)
	if opts.FontPath != "" {
		pdf.AddUTF8Font(fontFamily, "", opts.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", opts.FontPath)
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to load PDF font %s: %w", opts.FontPath, err)
		}
	}
	return pdf, nil
}

func renderPages(pdf *fpdf.Fpdf, pages []Page, utf8Font bool) {
	family, translate := fontFamily, func(s string) string { return s }
	if !utf8Font {
		family, translate = "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	}

	for _, page := range pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			switch line.Style {
			case StyleTitle:
				pdf.SetFont(family, "B", 14)
				pdf.CellFormat(0, 10, translate(line.Text), "", 1, "C", false, 0, "")
				pdf.Ln(4)
			case StyleHeading:
				pdf.SetFont(family, "B", 12)
				pdf.CellFormat(0, 8, translate(line.Text), "", 1, "L", false, 0, "")
			case StyleResult:
				pdf.SetFont(family, "B", 12)
				pdf.CellFormat(0, 10, translate(line.Text), "", 1, "C", false, 0, "")
			case StyleEntry:
				pdf.SetFont(family, "", 11)
				pdf.SetX(pdf.GetX() + 8)
				pdf.CellFormat(0, 7, translate(line.Text), "", 1, "L", false, 0, "")
			case StyleSpacer:
				pdf.Ln(5)
			default:
				pdf.SetFont(family, "", 12)
				pdf.CellFormat(0, 8, translate(line.Text), "", 1, "L", false, 0, "")
			}
		}
	}
}
