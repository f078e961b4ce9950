package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/glidepath/internal/calculation"
	"github.com/rpgo/glidepath/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngineWithAssumptions(cfg.Assumptions)
	results, err := engine.RunStrategies(context.Background(), cfg.StrategyConfigs())
	if err != nil {
		panic(err)
	}
	if len(results) < 1 {
		fmt.Println("no strategies")
		return
	}

	// Header
	header := "Age"
	for i := range results {
		header += fmt.Sprintf(",S%d_Balance,S%d_Pot,S%d_Vault,S%d_Net", i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)

	// Every strategy shares the household ages, so snapshots line up by index
	for idx := range results[0].Snapshots {
		row := fmt.Sprintf("%d", results[0].Snapshots[idx].Age)
		for _, r := range results {
			s := r.Snapshots[idx]
			row += fmt.Sprintf(",%s,%s,%s,%s", s.EndOfYearBalance.StringFixed(0), s.PensionPot.StringFixed(0), s.VaultBalance.StringFixed(0), s.NetPosition().StringFixed(0))
		}
		fmt.Println(row)
	}

	baseline := results[cfg.BaselineIndex()]
	for i, r := range results {
		if i == cfg.BaselineIndex() {
			continue
		}
		for _, s := range r.Snapshots {
			b, _ := baseline.SnapshotAt(s.Age)
			fmt.Printf("%s age %d: diff=%s\n", r.Name, s.Age, s.NetPosition().Sub(b.NetPosition()).StringFixed(0))
		}
		be, err := calc.CalculateWealthBreakEven(baseline, r)
		fmt.Printf("\nBreakEven %s: %+v, err=%v\n\n", r.Name, be, err)
	}
}
