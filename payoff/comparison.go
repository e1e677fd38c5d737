/*
comparison.go - Side-by-side avalanche vs snowball runs

PURPOSE:
  Runs the simulator twice against independent ledger clones of the same
  input, once per built-in strategy, and derives the interest saved by
  choosing avalanche. The two runs share nothing mutable; either could run
  on its own goroutine, but nothing here requires it.

SEE ALSO:
  - simulator.go: The per-strategy loop
  - api/handlers.go: The HTTP entry point that invokes Compare
*/
package payoff

import (
	"github.com/shopspring/decimal"
)

// Compare runs both strategies on independent ledgers built from the same
// input and the same extra monthly payment.
//
// InterestSaved is floored at zero: avalanche never pays more interest than
// snowball for identical inputs, but decimal artifacts or degenerate inputs
// (a single debt, where the strategies coincide) must not surface a
// negative savings figure.
func Compare(debts []DebtInput, extraMonthly float64) Comparison {
	extra := decimal.NewFromFloat(extraMonthly)

	avalanche := NewSimulator().Run(NewLedger(debts), AvalancheStrategy{}, extra)
	snowball := NewSimulator().Run(NewLedger(debts), SnowballStrategy{}, extra)

	saved := snowball.TotalInterest.Sub(avalanche.TotalInterest)
	if saved.IsNegative() {
		saved = decimal.Zero
	}

	return Comparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: saved,
	}
}
