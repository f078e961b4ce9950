package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

type sensitivityRow struct {
	Parameter         string `csv:"Parameter"`
	Value             string `csv:"Value"`
	MonthlyPayment    string `csv:"MonthlyPayment"`
	TotalInterestPaid string `csv:"TotalInterestPaid"`
	FinalNetWealth    string `csv:"FinalNetWealth"`
	DebtFreeAge       int    `csv:"DebtFreeAge"`
}

// SensitivityFormats lists the formats FormatSensitivity accepts.
var SensitivityFormats = []string{"console", "csv", "json"}

// FormatSensitivity renders a parameter sweep as a console table, CSV or JSON.
func FormatSensitivity(a *domain.SensitivityAnalysis, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "console-lite":
		return sensitivityConsole(a), nil
	case "csv":
		rows := make([]sensitivityRow, 0, len(a.Points))
		for _, p := range a.Points {
			rows = append(rows, sensitivityRow{
				Parameter:         a.Parameter.Name,
				Value:             p.Value.String(),
				MonthlyPayment:    pence(p.MonthlyPayment),
				TotalInterestPaid: pence(p.TotalInterestPaid),
				FinalNetWealth:    pence(p.FinalNetWealth),
				DebtFreeAge:       p.DebtFreeAge,
			})
		}
		return gocsv.MarshalBytes(&rows)
	case "json":
		return json.MarshalIndent(a, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(SensitivityFormats, ", "))
	}
}

func sensitivityConsole(a *domain.SensitivityAnalysis) []byte {
	var buf bytes.Buffer
	title := fmt.Sprintf("SENSITIVITY: %s (%s)", a.Parameter.Name, a.StrategyName)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	if a.Parameter.Description != "" {
		fmt.Fprintln(&buf, a.Parameter.Description)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "%10s %12s %14s %16s %9s\n", "VALUE", "PAYMENT", "INTEREST", "NET WEALTH", "DEBT-FREE")
	fmt.Fprintln(&buf, strings.Repeat("-", 65))
	for _, p := range a.Points {
		fmt.Fprintf(&buf, "%10s %12s %14s %16s %9s\n",
			formatParamValue(a.Parameter, p.Value),
			FormatCurrency(p.MonthlyPayment),
			FormatCurrency(p.TotalInterestPaid),
			FormatCurrency(p.FinalNetWealth),
			FormatAge(p.DebtFreeAge),
		)
	}
	s := a.Summary
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "FINAL NET WEALTH SPREAD:")
	fmt.Fprintf(&buf, "  Min:     %s\n", FormatCurrency(s.Min))
	fmt.Fprintf(&buf, "  P10:     %s\n", FormatCurrency(s.P10))
	fmt.Fprintf(&buf, "  Median:  %s\n", FormatCurrency(s.Median))
	fmt.Fprintf(&buf, "  P90:     %s\n", FormatCurrency(s.P90))
	fmt.Fprintf(&buf, "  Max:     %s\n", FormatCurrency(s.Max))
	fmt.Fprintf(&buf, "  Range:   %s\n", FormatCurrency(s.Range))
	fmt.Fprintf(&buf, "  Std Dev: %s\n", FormatCurrency(s.StandardDeviation))
	return buf.Bytes()
}

func formatParamValue(p domain.SensitivityParameter, v decimal.Decimal) string {
	if p.Unit == "percent" {
		return FormatRate(v)
	}
	return FormatCurrency(v)
}
