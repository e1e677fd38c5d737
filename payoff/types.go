/*
Package payoff implements the debt payoff simulation engine.

PURPOSE:
  Given a set of debts and a fixed extra monthly payment, the engine runs a
  month-by-month amortization under a pluggable prioritization strategy and
  reports how long freedom takes, how much interest accrues, and the order
  in which debts are retired. The Compare entry point runs the two built-in
  strategies (avalanche and snowball) side by side and reports the interest
  saved by choosing avalanche.

KEY CONCEPTS IN THIS FILE (types.go):
  - DebtInput: A raw debt descriptor as supplied by the caller
  - Debt: A ledger entry with exact decimal balance and rate
  - Result: The outcome of one simulation run
  - Comparison: Both strategy results plus the derived savings figure

DESIGN PRINCIPLES:
  1. Precision: All loop arithmetic uses decimal.Decimal; totals are rounded
     to 2 places only when a Result is assembled
  2. Isolation: A Ledger belongs to exactly one simulation run; comparison
     runs never share entries
  3. Pluggability: Strategies are stateless selectors the loop knows nothing
     about beyond SelectTarget

USAGE:
  cmp := payoff.Compare(debts, 200)
  fmt.Println(cmp.Avalanche.Months, cmp.InterestSaved)

SEE ALSO:
  - ledger.go: Ledger construction and cloning
  - simulator.go: The monthly state-transition loop
  - strategy.go: Avalanche and snowball selectors
*/
package payoff

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// TUNABLE CONSTANTS
// =============================================================================

const (
	// DefaultMaxMonths is the hard safety ceiling on simulated months
	// (100 years). Guards against inputs whose minimum payments can never
	// amortize their balances.
	DefaultMaxMonths = 1200

	// monthsPerYearPercent converts an annual percentage rate to a monthly
	// fraction: rate / 100 / 12.
	monthsPerYearPercent = 1200
)

// DefaultPayoffEpsilon is the balance threshold below which a debt counts as
// paid. Absorbs residual decimal noise from accrual and payment steps; not
// semantically load-bearing beyond that.
var DefaultPayoffEpsilon = decimal.NewFromFloat(0.005)

// =============================================================================
// DEBT - Input descriptor and ledger entry
// =============================================================================

// DebtInput is a raw debt descriptor as supplied by the caller.
// Rate is an annual percentage: 19.99 means 19.99% APR.
type DebtInput struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	Rate           float64 `json:"rate"`
	MinimumPayment float64 `json:"minimumPayment"`
}

// Debt is a single ledger entry for one simulation run.
//
// INVARIANT: once Paid is true, Balance is exactly zero and the entry is
// never touched by accrual or payment steps again.
type Debt struct {
	Name           string
	Balance        decimal.Decimal
	MonthlyRate    decimal.Decimal
	MinimumPayment decimal.Decimal
	Paid           bool
}

// =============================================================================
// RESULTS
// =============================================================================

// Result summarizes one simulation run. TotalInterest and TotalPaid are
// rounded to 2 decimal places at assembly; everything upstream stays at full
// precision.
type Result struct {
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	Months        int
	PayoffOrder   []string

	// Schedule holds the per-month breakdown when the simulator was run
	// with CaptureSchedule set. Nil otherwise.
	Schedule []MonthSnapshot
}

// Complete reports whether every debt reached payoff before the month
// ceiling. A false value is the only signal of ceiling cutoff: the simulator
// does not treat the cutoff as an error.
func (r Result) Complete(debtCount int) bool {
	return len(r.PayoffOrder) == debtCount
}

// MonthSnapshot records the state of one simulated month.
type MonthSnapshot struct {
	Month    int
	Interest decimal.Decimal
	Paid     decimal.Decimal
	Balances map[string]decimal.Decimal
}

// Comparison holds the results of running both strategies on independent
// clones of the same input.
type Comparison struct {
	Avalanche     Result
	Snowball      Result
	InterestSaved decimal.Decimal
}
