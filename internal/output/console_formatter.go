package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/glidepath/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.StrategyComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MORTGAGE GLIDE PATH SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.BaselineName != "" {
		fmt.Fprintf(&buf, "Baseline: %s\n", results.BaselineName)
	}
	fmt.Fprintln(&buf)
	for _, s := range RankStrategies(results) {
		fmt.Fprintf(&buf, "%s: Payment=%s Interest=%s Wealth=%s DebtFree=%s\n",
			s.Name,
			FormatCurrency(s.InitialMonthlyPayment),
			FormatCurrency(s.TotalInterestPaid),
			FormatCurrency(s.FinalNetWealth),
			FormatAge(s.DebtFreeAge),
		)
		fmt.Fprintf(&buf, "  VsBaseline=%s TakeHomeDelta=%s/month\n", FormatSignedCurrency(s.WealthVsBaseline), FormatSignedCurrency(s.FirstYearTakeHomeDelta))
	}
	if rec := results.Recommendation; rec.StrategyName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (wealth %s, %s vs baseline)\n", rec.StrategyName, FormatCurrency(rec.FinalNetWealth), FormatSignedCurrency(rec.WealthVsBaseline))
	}
	return buf.Bytes(), nil
}
