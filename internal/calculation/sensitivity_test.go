package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/glidepath/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSensitivity_InterestRate(t *testing.T) {
	ce := NewCalculationEngine()
	analysis, err := ce.RunSensitivity(context.Background(), exampleStrategy(25, 0.10, true), domain.AnnualInterestRateParam)
	require.NoError(t, err)

	require.Len(t, analysis.Points, 10)
	assert.InDelta(t, 0.01, analysis.Points[0].Value.InexactFloat64(), 1e-9)
	assert.InDelta(t, 0.10, analysis.Points[9].Value.InexactFloat64(), 1e-9)

	// Dearer borrowing means higher payments, more interest and less wealth
	for i := 1; i < len(analysis.Points); i++ {
		prev, curr := analysis.Points[i-1], analysis.Points[i]
		assert.True(t, curr.MonthlyPayment.GreaterThan(prev.MonthlyPayment))
		assert.True(t, curr.TotalInterestPaid.GreaterThan(prev.TotalInterestPaid))
		assert.True(t, curr.FinalNetWealth.LessThan(prev.FinalNetWealth))
	}

	s := analysis.Summary
	assert.True(t, s.Min.LessThanOrEqual(s.P10))
	assert.True(t, s.P10.LessThanOrEqual(s.Median))
	assert.True(t, s.Median.LessThanOrEqual(s.P90))
	assert.True(t, s.P90.LessThanOrEqual(s.Max))
	assert.True(t, s.StandardDeviation.IsPositive())
	assert.InDelta(t, s.Max.Sub(s.Min).InexactFloat64(), s.Range.InexactFloat64(), 0.01)
}

func TestRunSensitivity_PensionGrowth(t *testing.T) {
	analysis, err := NewCalculationEngine().RunSensitivity(context.Background(), exampleStrategy(17, 0.07, false), domain.PensionGrowthRateParam)
	require.NoError(t, err)
	require.Len(t, analysis.Points, 12)

	for i := 1; i < len(analysis.Points); i++ {
		assert.True(t, analysis.Points[i].FinalNetWealth.GreaterThan(analysis.Points[i-1].FinalNetWealth))
		// The mortgage does not depend on pension growth
		assert.True(t, analysis.Points[i].MonthlyPayment.Equal(analysis.Points[0].MonthlyPayment))
	}
}

func TestRunSensitivity_SinglePoint(t *testing.T) {
	param := domain.SacrificeRateParam
	param.Steps = 1

	analysis, err := NewCalculationEngine().RunSensitivity(context.Background(), exampleStrategy(25, 0.10, true), param)
	require.NoError(t, err)
	require.Len(t, analysis.Points, 1)
	assert.True(t, analysis.Summary.Range.IsZero())
}

func TestRunSensitivity_Errors(t *testing.T) {
	ce := NewCalculationEngine()
	base := exampleStrategy(25, 0.10, true)

	_, err := ce.RunSensitivity(context.Background(), base, domain.SensitivityParameter{Name: "unknown", Steps: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := domain.AnnualInterestRateParam
	bad.Steps = 0
	_, err = ce.RunSensitivity(context.Background(), base, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	inverted := domain.AnnualInterestRateParam
	inverted.MinValue, inverted.MaxValue = inverted.MaxValue, inverted.MinValue
	_, err = ce.RunSensitivity(context.Background(), base, inverted)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Sacrifice above 100% fails validation
	tooHigh := domain.SacrificeRateParam
	tooHigh.MaxValue = d(1.5)
	_, err = ce.RunSensitivity(context.Background(), base, tooHigh)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
