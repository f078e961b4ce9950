package main

import (
	"flag"
	"fmt"

	"github.com/rpgo/glidepath/internal/calculation"
	"github.com/shopspring/decimal"
)

func main() {
	principal := flag.Float64("principal", 260000, "loan principal")
	rate := flag.Float64("rate", 0.05, "annual interest rate as a fraction")
	years := flag.Int("years", 25, "term in years")
	flag.Parse()

	monthlyRate := calculation.MonthlyRate(decimal.NewFromFloat(*rate))
	months := *years * 12
	payment, err := calculation.ComputeMonthlyPayment(decimal.NewFromFloat(*principal), monthlyRate, months)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Monthly payment: %s over %d months\n", payment.StringFixed(2), months)

	// Year-end balances from the month loop next to the closed form
	fmt.Println("Year,LoopBalance,ClosedFormBalance,InterestPaid")
	balance := decimal.NewFromFloat(*principal)
	for y := 1; y <= *years; y++ {
		acc := calculation.AccrueMonths(balance, monthlyRate, payment, 12)
		balance = acc.Balance
		closed, err := calculation.ProjectBalanceAfterMonths(decimal.NewFromFloat(*principal), monthlyRate, payment, y*12)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%d,%s,%s,%s\n", y, balance.StringFixed(2), closed.StringFixed(2), acc.InterestPaid.StringFixed(2))
	}
}
