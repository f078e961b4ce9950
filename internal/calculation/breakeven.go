package calculation

import (
	"fmt"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateWealthBreakEven finds the first age at which the alternative's net
// position (pension pot plus vault less outstanding balance) overtakes the
// baseline's. Snapshots must be aligned by age. The crossover is interpolated
// linearly within the year in which the difference changes sign. When the
// alternative never overtakes, Found is false.
func CalculateWealthBreakEven(baseline, alternative *domain.SimulationResult) (*domain.WealthBreakEven, error) {
	if baseline == nil || alternative == nil || len(baseline.Snapshots) == 0 || len(alternative.Snapshots) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}
	if baseline.Snapshots[0].Age != alternative.Snapshots[0].Age {
		return nil, fmt.Errorf("projections start at different ages (%d vs %d)", baseline.Snapshots[0].Age, alternative.Snapshots[0].Age)
	}

	// Align to the minimum length
	n := len(baseline.Snapshots)
	if len(alternative.Snapshots) < n {
		n = len(alternative.Snapshots)
	}

	res := &domain.WealthBreakEven{StrategyName: alternative.Name}

	// Position before the first simulated year: identical principal, different pots
	prevDiff := alternative.Config.StartingPensionPot.Sub(alternative.Config.Principal).
		Sub(baseline.Config.StartingPensionPot.Sub(baseline.Config.Principal))
	if prevDiff.IsPositive() {
		// Ahead from the outset; the crossover is the first age
		return fill(res, alternative.Snapshots[0], decimal.Zero, alternative.Snapshots[0].NetPosition()), nil
	}

	for i := 0; i < n; i++ {
		alt := alternative.Snapshots[i]
		currDiff := alt.NetPosition().Sub(baseline.Snapshots[i].NetPosition())
		if !currDiff.IsPositive() {
			prevDiff = currDiff
			continue
		}

		// diff(t) = prevDiff + t*(currDiff - prevDiff), solve for diff(t) = 0
		t := decimal.NewFromFloat(0.5)
		if denom := currDiff.Sub(prevDiff); !denom.IsZero() {
			t = prevDiff.Neg().Div(denom)
		}
		if t.LessThan(decimal.Zero) {
			t = decimal.Zero
		} else if t.GreaterThan(one) {
			t = one
		}

		startNet := alt.NetPosition()
		if i > 0 {
			startNet = alternative.Snapshots[i-1].NetPosition()
		}
		netAt := startNet.Add(alt.NetPosition().Sub(startNet).Mul(t))
		return fill(res, alt, t, netAt), nil
	}

	return res, nil
}

func fill(res *domain.WealthBreakEven, snap domain.YearSnapshot, t, net decimal.Decimal) *domain.WealthBreakEven {
	month := int(t.InexactFloat64() * 12)
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	res.Found = true
	res.Age = snap.Age
	res.FractionalAge = float64(snap.Age) + t.InexactFloat64()
	res.Fraction = t
	res.Month = month
	res.NetPosition = net
	res.PrevAge = snap.Age
	res.NextAge = snap.Age + 1
	return res
}
