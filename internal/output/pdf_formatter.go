package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/glidepath/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders an A4 report: summary table, break-evens and one glide path page per strategy.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

// pdfText converts the UTF-8 pound sign to the Latin-1 byte the core fonts expect.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "£", "\xa3")
	return strings.ReplaceAll(s, "•", "-")
}

func (p PDFFormatter) Format(results *domain.StrategyComparison) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	if !results.GeneratedAt.IsZero() {
		pdf.SetCreationDate(results.GeneratedAt)
	}
	pdf.SetTitle("Mortgage Glide Path Report", true)

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Mortgage Glide Path Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(80, 80, 80)
	if !results.GeneratedAt.IsZero() {
		pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", results.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdfHeading(pdf, "Key Assumptions")
	pdf.SetFont("Arial", "", 9)
	for _, a := range assumptionsFor(results) {
		pdf.MultiCell(pdfContentWidth, 4.5, pdfText("- "+a), "", "L", false)
	}
	pdf.Ln(3)

	pdfHeading(pdf, "Strategy Comparison")
	cols := []float64{56, 22, 26, 30, 22, 24}
	pdfRow(pdf, cols, true, "Strategy", "Payment", "Interest", "Net Wealth", "Debt-free", "Vs Baseline")
	for _, s := range results.Strategies {
		name := s.Name
		if s.Baseline {
			name += " *"
		}
		pdfRow(pdf, cols, false,
			name,
			FormatCurrency(s.InitialMonthlyPayment),
			FormatCurrency(s.TotalInterestPaid),
			FormatCurrency(s.FinalNetWealth),
			FormatAge(s.DebtFreeAge),
			FormatSignedCurrency(s.WealthVsBaseline),
		)
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(pdfContentWidth, 5, "* baseline strategy", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if len(results.BreakEvens) > 0 {
		pdfHeading(pdf, "Wealth Break-Even")
		pdf.SetFont("Arial", "", 9)
		for _, be := range results.BreakEvens {
			line := fmt.Sprintf("%s: never overtakes the baseline", be.StrategyName)
			if be.Found {
				line = fmt.Sprintf("%s: overtakes the baseline at age %.2f (month %d), net position %s",
					be.StrategyName, be.FractionalAge, be.Month, FormatCurrency(be.NetPosition))
			}
			pdf.MultiCell(pdfContentWidth, 4.5, pdfText(line), "", "L", false)
		}
		pdf.Ln(3)
	}

	if rec := results.Recommendation; rec.StrategyName != "" {
		pdfHeading(pdf, "Recommendation")
		pdf.SetFont("Arial", "B", 10)
		pdf.MultiCell(pdfContentWidth, 5, pdfText(fmt.Sprintf("%s: final net wealth %s (%s vs baseline)",
			rec.StrategyName, FormatCurrency(rec.FinalNetWealth), FormatSignedCurrency(rec.WealthVsBaseline))), "", "L", false)
		pdf.SetFont("Arial", "", 9)
		for _, k := range rec.KeyConsiderations {
			pdf.MultiCell(pdfContentWidth, 4.5, pdfText("- "+k), "", "L", false)
		}
	}

	glideCols := []float64{12, 26, 20, 20, 24, 26, 26, 26}
	for _, s := range results.Strategies {
		pdf.AddPage()
		pdfHeading(pdf, s.Name)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(pdfContentWidth, 5, pdfText(fmt.Sprintf("Term %d years, sacrifice %s, initial payment %s/month",
			s.TermYears, FormatRate(s.SacrificeRate), FormatCurrency(s.InitialMonthlyPayment))), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdfRow(pdf, glideCols, true, "Age", "Balance", "Payment", "Interest", "Overpayment", "Pension Pot", "Vault", "Disposable")
		for _, ys := range s.Result.Snapshots {
			pdfRow(pdf, glideCols, false,
				fmt.Sprintf("%d", ys.Age),
				FormatCurrency(ys.MortgageBalance),
				FormatCurrency(ys.MonthlyPayment),
				FormatCurrency(ys.InterestPaid),
				FormatCurrency(ys.Overpayment),
				FormatCurrency(ys.PensionPot),
				FormatCurrency(ys.VaultBalance),
				FormatCurrency(ys.DisposableMonthlyIncome),
			)
		}
		st := s.Result.Settlement
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(pdfContentWidth, 5, pdfText(fmt.Sprintf("Settlement: outstanding %s, exit fee %s, final net wealth %s",
			FormatCurrency(st.OutstandingBalance), FormatCurrency(st.ExitFee), FormatCurrency(st.FinalNetWealth))), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 7, pdfText(title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(50, 50, 50)
}

// pdfRow writes one bordered table row; the first column is left aligned.
func pdfRow(pdf *fpdf.Fpdf, widths []float64, header bool, cells ...string) {
	if header {
		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(230, 236, 245)
	} else {
		pdf.SetFont("Arial", "", 8)
	}
	for i, c := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 5.5, pdfText(c), "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}
