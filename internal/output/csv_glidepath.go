package output

import (
	"github.com/gocarina/gocsv"
	"github.com/rpgo/glidepath/internal/domain"
)

// glideRow is one simulated age of one strategy.
type glideRow struct {
	Strategy                string `csv:"Strategy"`
	Age                     int    `csv:"Age"`
	MortgageBalance         string `csv:"MortgageBalance"`
	EndOfYearBalance        string `csv:"EndOfYearBalance"`
	MonthlyPayment          string `csv:"MonthlyPayment"`
	InterestPaid            string `csv:"InterestPaid"`
	CumulativeInterest      string `csv:"CumulativeInterest"`
	Overpayment             string `csv:"Overpayment"`
	Salary                  string `csv:"Salary"`
	NetMonthlyIncome        string `csv:"NetMonthlyIncome"`
	TakeHomeDelta           string `csv:"TakeHomeDelta"`
	DisposableMonthlyIncome string `csv:"DisposableMonthlyIncome"`
	PensionContribution     string `csv:"PensionContribution"`
	PensionPot              string `csv:"PensionPot"`
	LumpSumTaken            string `csv:"LumpSumTaken"`
	VaultBalance            string `csv:"VaultBalance"`
	NetPosition             string `csv:"NetPosition"`
	DebtFree                bool   `csv:"DebtFree"`
}

// GlidePathCSVExporter writes every year snapshot of every strategy, in configuration order.
type GlidePathCSVExporter struct{}

func (c GlidePathCSVExporter) Name() string { return "glide-csv" }

func (c GlidePathCSVExporter) Format(results *domain.StrategyComparison) ([]byte, error) {
	rows := []glideRow{}
	for _, s := range results.Strategies {
		for i := range s.Result.Snapshots {
			ys := &s.Result.Snapshots[i]
			rows = append(rows, glideRow{
				Strategy:                s.Name,
				Age:                     ys.Age,
				MortgageBalance:         pence(ys.MortgageBalance),
				EndOfYearBalance:        pence(ys.EndOfYearBalance),
				MonthlyPayment:          pence(ys.MonthlyPayment),
				InterestPaid:            pence(ys.InterestPaid),
				CumulativeInterest:      pence(ys.CumulativeInterest),
				Overpayment:             pence(ys.Overpayment),
				Salary:                  pence(ys.Salary),
				NetMonthlyIncome:        pence(ys.NetMonthlyIncome),
				TakeHomeDelta:           pence(ys.TakeHomeDelta),
				DisposableMonthlyIncome: pence(ys.DisposableMonthlyIncome),
				PensionContribution:     pence(ys.PensionContribution),
				PensionPot:              pence(ys.PensionPot),
				LumpSumTaken:            pence(ys.LumpSumTaken),
				VaultBalance:            pence(ys.VaultBalance),
				NetPosition:             pence(ys.NetPosition()),
				DebtFree:                ys.IsDebtFree(),
			})
		}
	}
	return gocsv.MarshalBytes(&rows)
}
