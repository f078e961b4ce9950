package output

import (
	"sort"

	"github.com/gocarina/gocsv"
	"github.com/rpgo/glidepath/internal/domain"
)

// summaryRow is one CSV line of the strategy summary export.
type summaryRow struct {
	Strategy              string `csv:"Strategy"`
	Baseline              bool   `csv:"Baseline"`
	TermYears             int    `csv:"TermYears"`
	SacrificeRate         string `csv:"SacrificeRate"`
	InitialMonthlyPayment string `csv:"InitialMonthlyPayment"`
	TotalInterestPaid     string `csv:"TotalInterestPaid"`
	LumpSum               string `csv:"LumpSum"`
	FinalPensionPot       string `csv:"FinalPensionPot"`
	ExitFee               string `csv:"ExitFee"`
	FinalNetWealth        string `csv:"FinalNetWealth"`
	WealthVsBaseline      string `csv:"WealthVsBaseline"`
	DebtFreeAge           int    `csv:"DebtFreeAge"`
	FirstYearNetMonthly   string `csv:"FirstYearNetMonthly"`
	TakeHomeDelta         string `csv:"FirstYearTakeHomeDelta"`
	ApproxNetMonthly      string `csv:"ApproxNetMonthly"`
}

// CSVSummarizer implements the simple summary CSV output (one row per strategy).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.StrategyComparison) ([]byte, error) {
	strategies := append([]domain.StrategySummary(nil), results.Strategies...)
	sort.Slice(strategies, func(i, j int) bool { return strategies[i].Name < strategies[j].Name })
	rows := make([]summaryRow, 0, len(strategies))
	for _, s := range strategies {
		rows = append(rows, summaryRow{
			Strategy:              s.Name,
			Baseline:              s.Baseline,
			TermYears:             s.TermYears,
			SacrificeRate:         s.SacrificeRate.StringFixed(4),
			InitialMonthlyPayment: pence(s.InitialMonthlyPayment),
			TotalInterestPaid:     pence(s.TotalInterestPaid),
			LumpSum:               pence(s.LumpSum),
			FinalPensionPot:       pence(s.FinalPensionPot),
			ExitFee:               pence(s.ExitFee),
			FinalNetWealth:        pence(s.FinalNetWealth),
			WealthVsBaseline:      pence(s.WealthVsBaseline),
			DebtFreeAge:           s.DebtFreeAge,
			FirstYearNetMonthly:   pence(s.FirstYearNetMonthly),
			TakeHomeDelta:         pence(s.FirstYearTakeHomeDelta),
			ApproxNetMonthly:      pence(s.ApproxNetMonthly),
		})
	}
	return gocsv.MarshalBytes(&rows)
}
