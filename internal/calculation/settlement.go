package calculation

import (
	"github.com/rpgo/glidepath/internal/domain"
	"github.com/shopspring/decimal"
)

// Settle closes out the position at the final payoff age. Any balance still
// owed is repaid from the pension assets together with the exit fee. A
// negative residual balance is treated as fully repaid. Settle is pure.
func Settle(balance, pensionPot, vault, exitFeeFraction decimal.Decimal) domain.Settlement {
	outstanding := decimal.Max(balance, decimal.Zero)
	exitFee := outstanding.Mul(exitFeeFraction)
	return domain.Settlement{
		OutstandingBalance: outstanding,
		ExitFee:            exitFee,
		PensionPot:         pensionPot,
		VaultBalance:       vault,
		FinalNetWealth:     pensionPot.Add(vault).Sub(outstanding.Add(exitFee)),
	}
}
