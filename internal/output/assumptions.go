package output

import "github.com/rpgo/glidepath/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs
// when a comparison carries none of its own.
var DefaultAssumptions = []string{
	"Mortgage interest compounded monthly on a fixed annual rate",
	"Pension contributions and growth applied once per year",
	"Tax-free lump sum taken once at the pension access age and held in a cash vault",
	"Overpayments capped at 10% of the outstanding balance per year",
	"Remaining balance settled at the final payoff age with a 2% exit fee",
	"Income tax 20%/40% and NI 8%/2% on 2024/25 thresholds, held constant",
}

// assumptionsFor returns the comparison's assumptions or the defaults.
func assumptionsFor(results *domain.StrategyComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
