package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.StrategyComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "DETAILED MORTGAGE GLIDE PATH & PENSION STRATEGY ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeStrategyTable(&buf, results)

	for i, s := range results.Strategies {
		title := fmt.Sprintf("STRATEGY %d: %s", i+1, s.Name)
		if s.Baseline {
			title += " (baseline)"
		}
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		cfg := s.Result.Config
		fmt.Fprintf(&buf, "  Term: %d years   Sacrifice: %s   Recalculate after overpayment: %t\n",
			s.TermYears, FormatRate(s.SacrificeRate), cfg.RecalculateAfterOverpayment)
		fmt.Fprintf(&buf, "  Initial payment: %s/month   First-year take-home: %s/month (%s vs baseline)\n",
			FormatCurrency(s.InitialMonthlyPayment), FormatCurrency(s.FirstYearNetMonthly), FormatSignedCurrency(s.FirstYearTakeHomeDelta))
		fmt.Fprintf(&buf, "  Approximate take-home (flat multiplier): %s/month\n", FormatCurrency(s.ApproxNetMonthly))
		fmt.Fprintln(&buf)
		writeGlidePath(&buf, s.Result)
		st := s.Result.Settlement
		fmt.Fprintln(&buf, "SETTLEMENT AT FINAL PAYOFF AGE:")
		fmt.Fprintf(&buf, "  Outstanding Balance:  %s\n", FormatCurrency(st.OutstandingBalance))
		fmt.Fprintf(&buf, "  Exit Fee:             %s\n", FormatCurrency(st.ExitFee))
		fmt.Fprintf(&buf, "  Pension Pot:          %s\n", FormatCurrency(st.PensionPot))
		fmt.Fprintf(&buf, "  Vault Balance:        %s\n", FormatCurrency(st.VaultBalance))
		fmt.Fprintf(&buf, "  FINAL NET WEALTH:     %s\n", FormatCurrency(st.FinalNetWealth))
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf)
	}

	if len(results.BreakEvens) > 0 {
		fmt.Fprintln(&buf, "WEALTH BREAK-EVEN VS BASELINE")
		fmt.Fprintln(&buf, "=============================")
		for _, be := range results.BreakEvens {
			if !be.Found {
				fmt.Fprintf(&buf, "%s: never overtakes the baseline\n", be.StrategyName)
				continue
			}
			fmt.Fprintf(&buf, "%s: overtakes at age %.2f (between %d and %d, month %d), net position %s\n",
				be.StrategyName, be.FractionalAge, be.PrevAge, be.NextAge, be.Month, FormatCurrency(be.NetPosition))
		}
		fmt.Fprintln(&buf)
	}

	rec := results.Recommendation
	if rec.StrategyName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best strategy: %s\n", rec.StrategyName)
		fmt.Fprintf(&buf, "Final Net Wealth: %s (%s vs baseline)\n", FormatCurrency(rec.FinalNetWealth), FormatSignedCurrency(rec.WealthVsBaseline))
		fmt.Fprintf(&buf, "Monthly Take-Home Change: %s\n", FormatSignedCurrency(rec.MonthlyTakeHomeDelta))
		for _, k := range rec.KeyConsiderations {
			fmt.Fprintf(&buf, "• %s\n", k)
		}
		if base, best, ok := baselineAndBest(results); ok && base.Name != best.Name {
			fmt.Fprintln(&buf)
			fmt.Fprintf(&buf, "%-35s %15s %15s %15s\n", "METRIC", "BASELINE", "RECOMMENDED", "DIFFERENCE")
			fmt.Fprintln(&buf, strings.Repeat("-", 83))
			cmpLine(&buf, "Initial monthly payment", base.InitialMonthlyPayment, best.InitialMonthlyPayment)
			cmpLine(&buf, "Total interest paid", base.TotalInterestPaid, best.TotalInterestPaid)
			cmpLine(&buf, "Tax-free lump sum", base.LumpSum, best.LumpSum)
			cmpLine(&buf, "Final pension pot", base.FinalPensionPot, best.FinalPensionPot)
			cmpLine(&buf, "Final net wealth", base.FinalNetWealth, best.FinalNetWealth)
		}
	}

	return buf.Bytes(), nil
}

// writeStrategyTable prints one row per strategy with the headline metrics.
func writeStrategyTable(buf *bytes.Buffer, results *domain.StrategyComparison) {
	fmt.Fprintln(buf, "STRATEGY COMPARISON")
	fmt.Fprintln(buf, strings.Repeat("=", 19))
	fmt.Fprintf(buf, "%-30s %12s %14s %16s %9s %16s\n", "STRATEGY", "PAYMENT", "INTEREST", "NET WEALTH", "DEBT-FREE", "VS BASELINE")
	fmt.Fprintln(buf, strings.Repeat("-", 102))
	for _, s := range results.Strategies {
		fmt.Fprintf(buf, "%-30s %12s %14s %16s %9s %16s\n",
			truncateName(s.Name, 30),
			FormatCurrency(s.InitialMonthlyPayment),
			FormatCurrency(s.TotalInterestPaid),
			FormatCurrency(s.FinalNetWealth),
			FormatAge(s.DebtFreeAge),
			FormatSignedCurrency(s.WealthVsBaseline),
		)
	}
	fmt.Fprintln(buf)
}

// writeGlidePath prints the year-by-year snapshot table for one strategy.
func writeGlidePath(buf *bytes.Buffer, res domain.SimulationResult) {
	fmt.Fprintln(buf, "GLIDE PATH:")
	fmt.Fprintf(buf, "%4s %14s %11s %11s %12s %14s %12s %12s\n", "AGE", "BALANCE", "PAYMENT", "INTEREST", "OVERPAYMENT", "PENSION POT", "VAULT", "DISPOSABLE")
	fmt.Fprintln(buf, strings.Repeat("-", 97))
	for _, ys := range res.Snapshots {
		fmt.Fprintf(buf, "%4d %14s %11s %11s %12s %14s %12s %12s\n",
			ys.Age,
			FormatCurrency(ys.MortgageBalance),
			FormatCurrency(ys.MonthlyPayment),
			FormatCurrency(ys.InterestPaid),
			FormatCurrency(ys.Overpayment),
			FormatCurrency(ys.PensionPot),
			FormatCurrency(ys.VaultBalance),
			FormatCurrency(ys.DisposableMonthlyIncome),
		)
	}
	fmt.Fprintln(buf)
}

func baselineAndBest(results *domain.StrategyComparison) (domain.StrategySummary, domain.StrategySummary, bool) {
	best, ok := recommended(results)
	if !ok {
		return domain.StrategySummary{}, domain.StrategySummary{}, false
	}
	for _, s := range results.Strategies {
		if s.Name == results.BaselineName {
			return s, best, true
		}
	}
	return domain.StrategySummary{}, domain.StrategySummary{}, false
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func cmpLine(buf *bytes.Buffer, label string, baseline, alternative decimal.Decimal) {
	diff := alternative.Sub(baseline)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, FormatCurrency(baseline), FormatCurrency(alternative), FormatSignedCurrency(diff))
}
