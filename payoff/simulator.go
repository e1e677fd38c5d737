/*
simulator.go - The month-by-month payoff state machine

PURPOSE:
  Runs the amortization loop for one ledger under one strategy. Each month:

    1. Accrue interest on every unpaid debt (simultaneous, from pre-accrual
       balances)
    2. Apply minimum payments, capped at the remaining balance
    3. Hand the extra-payment pool to the strategy-selected target, capped
       at the target's balance
    4. Detect payoffs (balance within Epsilon of zero), snap balances to
       exactly zero, and cascade freed minimum payments into the pool

  The pool is a fixed monthly contribution level, not a depleting resource:
  it is never decremented, only grown by the cascade. What is "spent" shows
  up only as target balance reduction and TotalPaid.

PRECISION:
  All arithmetic inside the loop is exact decimal. TotalInterest and
  TotalPaid are rounded to 2 places once, when the Result is assembled;
  rounding mid-loop would compound error across up to 1200 iterations.

TERMINATION:
  Normal: every debt paid. Abnormal: MaxMonths reached (e.g. a minimum
  payment smaller than first-month interest can never amortize). The cutoff
  is not an error; the caller detects it via Result.Complete.

SEE ALSO:
  - ledger.go: The working set this loop mutates
  - strategy.go: Target selection (step 3)
  - comparison.go: Runs this twice, once per strategy
*/
package payoff

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SIMULATOR
// =============================================================================

// Simulator holds the loop's tunables. The zero value is not usable; use
// NewSimulator for the standard configuration.
type Simulator struct {
	// Epsilon is the payoff detection threshold: an unpaid balance at or
	// below it counts as retired.
	Epsilon decimal.Decimal

	// MaxMonths is the iteration ceiling.
	MaxMonths int

	// CaptureSchedule records a MonthSnapshot per iteration. Off by default;
	// the comparison path doesn't need it.
	CaptureSchedule bool
}

// NewSimulator returns a simulator with the default epsilon and ceiling.
func NewSimulator() *Simulator {
	return &Simulator{
		Epsilon:   DefaultPayoffEpsilon,
		MaxMonths: DefaultMaxMonths,
	}
}

// Run simulates the ledger to payoff (or the month ceiling) under the given
// strategy. The ledger is consumed: entries are mutated in place and should
// not be reused for another run. extraMonthly seeds the extra-payment pool.
func (s *Simulator) Run(ledger *Ledger, strategy Strategy, extraMonthly decimal.Decimal) Result {
	var (
		months        int
		extraPool     = extraMonthly
		totalInterest = decimal.Zero
		totalPaid     = decimal.Zero
		payoffOrder   = make([]string, 0, ledger.Len())
		schedule      []MonthSnapshot
	)

	for !ledger.AllPaid() && months < s.MaxMonths {
		months++

		var monthInterest, monthPaid decimal.Decimal

		// 1) Accrue interest. No debt's accrual depends on another's, so a
		// single pass over pre-accrual balances is simultaneous accrual.
		for _, d := range ledger.Unpaid() {
			interest := d.Balance.Mul(d.MonthlyRate)
			d.Balance = d.Balance.Add(interest)
			monthInterest = monthInterest.Add(interest)
		}
		totalInterest = totalInterest.Add(monthInterest)

		// 2) Minimum payments, capped so no balance goes negative.
		for _, d := range ledger.Unpaid() {
			payment := decimal.Min(d.MinimumPayment, d.Balance)
			d.Balance = d.Balance.Sub(payment)
			monthPaid = monthPaid.Add(payment)
		}

		// 3) Extra pool to the strategy's target. Re-filter first: a debt
		// can hit zero from its minimum alone.
		if target := strategy.SelectTarget(ledger.Unpaid()); target != nil {
			extra := decimal.Min(extraPool, target.Balance)
			target.Balance = target.Balance.Sub(extra)
			monthPaid = monthPaid.Add(extra)
		}
		totalPaid = totalPaid.Add(monthPaid)

		// 4) Payoff detection and cascade. The freed minimum joins the pool
		// permanently. Same-month ties resolve in ledger iteration order.
		for _, d := range ledger.Unpaid() {
			if d.Balance.LessThanOrEqual(s.Epsilon) {
				d.Balance = decimal.Zero
				d.Paid = true
				payoffOrder = append(payoffOrder, d.Name)
				extraPool = extraPool.Add(d.MinimumPayment)
			}
		}

		if s.CaptureSchedule {
			schedule = append(schedule, s.snapshot(months, monthInterest, monthPaid, ledger))
		}
	}

	return Result{
		TotalInterest: totalInterest.Round(2),
		TotalPaid:     totalPaid.Round(2),
		Months:        months,
		PayoffOrder:   payoffOrder,
		Schedule:      schedule,
	}
}

func (s *Simulator) snapshot(month int, interest, paid decimal.Decimal, ledger *Ledger) MonthSnapshot {
	balances := make(map[string]decimal.Decimal, ledger.Len())
	for _, d := range ledger.Debts() {
		balances[d.Name] = d.Balance.Round(2)
	}
	return MonthSnapshot{
		Month:    month,
		Interest: interest.Round(2),
		Paid:     paid.Round(2),
		Balances: balances,
	}
}
