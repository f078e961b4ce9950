package calculation

import (
	"testing"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeResult builds a projection whose net position per year is pot - balance.
func makeResult(name string, startAge int, pots, balances []float64) *domain.SimulationResult {
	res := &domain.SimulationResult{
		Name: name,
		Config: domain.StrategyConfig{
			Principal:          decimal.NewFromFloat(balances[0]),
			StartingPensionPot: decimal.Zero,
		},
	}
	for i := range pots {
		res.Snapshots = append(res.Snapshots, domain.YearSnapshot{
			Age:              startAge + i,
			PensionPot:       decimal.NewFromFloat(pots[i]),
			EndOfYearBalance: decimal.NewFromFloat(balances[i]),
		})
	}
	return res
}

// Test mid-year interpolation crossover
func TestCalculateWealthBreakEven_Interpolation(t *testing.T) {
	// Net positions: baseline 0, 100; alternative -20, 120
	// Year 2 diff goes from -20 to +20, so t = 0.5
	baseline := makeResult("baseline", 50, []float64{100, 200}, []float64{100, 100})
	alternative := makeResult("alt", 50, []float64{80, 220}, []float64{100, 100})

	res, err := CalculateWealthBreakEven(baseline, alternative)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, "alt", res.StrategyName)
	assert.Equal(t, 51, res.Age)
	assert.InDelta(t, 0.5, res.Fraction.InexactFloat64(), 0.001)
	assert.InDelta(t, 51.5, res.FractionalAge, 0.001)
	assert.Equal(t, 6, res.Month)
	assert.Equal(t, 51, res.PrevAge)
	assert.Equal(t, 52, res.NextAge)
	// Alternative net position interpolated between -20 and 120
	assert.InDelta(t, 50, res.NetPosition.InexactFloat64(), 0.001)
}

func TestCalculateWealthBreakEven_NeverCrosses(t *testing.T) {
	baseline := makeResult("baseline", 50, []float64{100, 200, 300}, []float64{100, 50, 0})
	alternative := makeResult("alt", 50, []float64{90, 180, 270}, []float64{100, 60, 10})

	res, err := CalculateWealthBreakEven(baseline, alternative)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "alt", res.StrategyName)
}

func TestCalculateWealthBreakEven_Errors(t *testing.T) {
	_, err := CalculateWealthBreakEven(&domain.SimulationResult{}, makeResult("alt", 50, []float64{1}, []float64{1}))
	assert.Error(t, err)

	_, err = CalculateWealthBreakEven(
		makeResult("a", 50, []float64{1}, []float64{1}),
		makeResult("b", 51, []float64{1}, []float64{1}),
	)
	assert.Error(t, err)
}

func TestCalculateWealthBreakEven_ExampleStrategies(t *testing.T) {
	baseline := simulate(t, exampleStrategy(17, 0.07, false))

	tests := []struct {
		cfg      domain.StrategyConfig
		age      int
		fraction float64
		month    int
	}{
		{exampleStrategy(25, 0.10, true), 64, 0.444, 5},
		{exampleStrategy(30, 0.10, true), 68, 0.824, 9},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Name, func(t *testing.T) {
			res, err := CalculateWealthBreakEven(baseline, simulate(t, tt.cfg))
			require.NoError(t, err)
			require.True(t, res.Found)
			assert.Equal(t, tt.age, res.Age)
			assert.InDelta(t, tt.fraction, res.Fraction.InexactFloat64(), 0.01)
			assert.Equal(t, tt.month, res.Month)
		})
	}
}
