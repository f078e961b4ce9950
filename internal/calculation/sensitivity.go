package calculation

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// RunSensitivity sweeps one parameter across its range for a single strategy.
// Every point is a full simulation; the summary describes how final net
// wealth spreads across the sweep.
func (ce *CalculationEngine) RunSensitivity(ctx context.Context, base domain.StrategyConfig, param domain.SensitivityParameter) (*domain.SensitivityAnalysis, error) {
	if param.Steps < 1 {
		return nil, fmt.Errorf("%w: sensitivity steps must be at least 1, got %d", ErrInvalidInput, param.Steps)
	}
	if param.MaxValue.LessThan(param.MinValue) {
		return nil, fmt.Errorf("%w: sensitivity range %s..%s is inverted", ErrInvalidInput, param.MinValue, param.MaxValue)
	}

	values := param.Values()
	configs := make([]domain.StrategyConfig, len(values))
	for i, v := range values {
		cfg, ok := param.Apply(base, v)
		if !ok {
			return nil, fmt.Errorf("%w: unknown sensitivity parameter %q", ErrInvalidInput, param.Name)
		}
		configs[i] = cfg
	}

	results, err := ce.RunStrategies(ctx, configs)
	if err != nil {
		return nil, fmt.Errorf("sensitivity sweep of %s: %w", param.Name, err)
	}

	analysis := &domain.SensitivityAnalysis{
		StrategyName: base.Label(),
		Parameter:    param,
		Points:       make([]domain.SensitivityPoint, len(results)),
	}
	wealth := make([]float64, len(results))
	for i, res := range results {
		analysis.Points[i] = domain.SensitivityPoint{
			Value:             values[i],
			MonthlyPayment:    res.InitialPayment,
			TotalInterestPaid: res.TotalInterestPaid,
			FinalNetWealth:    res.FinalNetWealth,
			DebtFreeAge:       res.DebtFreeAge(),
		}
		wealth[i] = res.FinalNetWealth.InexactFloat64()
	}

	summary, err := summarizeWealth(wealth)
	if err != nil {
		return nil, fmt.Errorf("sensitivity summary: %w", err)
	}
	analysis.Summary = summary
	ce.Logger.Infof("sensitivity of %s to %s: wealth %s..%s", analysis.StrategyName, param.Name,
		summary.Min.StringFixed(0), summary.Max.StringFixed(0))
	return analysis, nil
}

func summarizeWealth(data []float64) (domain.SensitivitySummary, error) {
	minV, err := stats.Min(data)
	if err != nil {
		return domain.SensitivitySummary{}, err
	}
	maxV, err := stats.Max(data)
	if err != nil {
		return domain.SensitivitySummary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.SensitivitySummary{}, err
	}
	p10, err := stats.Percentile(data, 10)
	if err != nil {
		// A single point has no spread
		p10 = minV
	}
	p90, err := stats.Percentile(data, 90)
	if err != nil {
		p90 = maxV
	}
	stdev, err := stats.StandardDeviation(data)
	if err != nil {
		return domain.SensitivitySummary{}, err
	}

	return domain.SensitivitySummary{
		Min:               decimal.NewFromFloat(minV),
		Max:               decimal.NewFromFloat(maxV),
		Median:            decimal.NewFromFloat(median),
		P10:               decimal.NewFromFloat(p10),
		P90:               decimal.NewFromFloat(p90),
		StandardDeviation: decimal.NewFromFloat(stdev),
		Range:             decimal.NewFromFloat(maxV - minV),
	}, nil
}
