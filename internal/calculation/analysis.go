package calculation

import (
	"fmt"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// generateRecommendation picks the strategy with the highest final net wealth
func (ce *CalculationEngine) generateRecommendation(summaries []domain.StrategySummary, breakEvens []domain.WealthBreakEven) domain.Recommendation {
	if len(summaries) == 0 {
		return domain.Recommendation{}
	}

	best := 0
	for i := range summaries {
		if summaries[i].FinalNetWealth.GreaterThan(summaries[best].FinalNetWealth) {
			best = i
		}
	}
	s := summaries[best]

	rec := domain.Recommendation{
		StrategyName:         s.Name,
		FinalNetWealth:       s.FinalNetWealth,
		WealthVsBaseline:     s.WealthVsBaseline,
		MonthlyTakeHomeDelta: s.FirstYearTakeHomeDelta,
	}

	if s.Baseline {
		rec.KeyConsiderations = append(rec.KeyConsiderations, "The baseline strategy already produces the highest projected wealth")
	} else {
		rec.KeyConsiderations = append(rec.KeyConsiderations,
			fmt.Sprintf("Projected £%s more than the baseline at the final payoff age", s.WealthVsBaseline.StringFixed(0)))
	}
	if s.FirstYearTakeHomeDelta.IsNegative() {
		rec.KeyConsiderations = append(rec.KeyConsiderations,
			fmt.Sprintf("Reduces monthly take-home pay by £%s in the first year", s.FirstYearTakeHomeDelta.Abs().StringFixed(2)))
	}
	if s.DebtFreeAge == 0 {
		rec.KeyConsiderations = append(rec.KeyConsiderations,
			fmt.Sprintf("Mortgage is still outstanding at the final payoff age; exit fee of £%s applies", s.ExitFee.StringFixed(2)))
	} else {
		rec.KeyConsiderations = append(rec.KeyConsiderations, fmt.Sprintf("Mortgage cleared by age %d", s.DebtFreeAge))
	}
	for _, be := range breakEvens {
		if be.StrategyName == s.Name && be.Found {
			rec.KeyConsiderations = append(rec.KeyConsiderations,
				fmt.Sprintf("Net position overtakes the baseline at age %.1f", be.FractionalAge))
		}
	}
	if s.InitialMonthlyPayment.GreaterThan(s.FirstYearNetMonthly.Mul(decimal.NewFromFloat(0.5))) {
		rec.KeyConsiderations = append(rec.KeyConsiderations, "Mortgage payment exceeds half of first-year take-home pay")
	}
	return rec
}
