/*
ledger.go - The mutable working set of debts for one simulation run

PURPOSE:
  A Ledger owns the debt entries a single simulation mutates. It is created
  fresh per strategy run and discarded with the run's Result; comparison
  runs each get their own ledger built from the same input so mutation in
  one can never leak into the other.

CONSTRUCTION:
  Decimal values are built with decimal.NewFromFloat, which round-trips the
  caller's number through its shortest decimal representation. The monthly
  rate is derived once here (annual percent / 1200) and never recomputed.

SEE ALSO:
  - simulator.go: The loop that mutates ledger entries
  - comparison.go: Builds two ledgers from one input
*/
package payoff

import (
	"github.com/shopspring/decimal"
)

// Ledger is the working set of debt entries for one simulation run.
// Iteration order is input order; same-month payoff ties resolve in this
// order (implementation-defined, not financially significant).
type Ledger struct {
	debts []*Debt
}

// NewLedger converts raw descriptors into ledger entries. Validation of the
// descriptors is the caller's job (see api.ValidateDebts); the ledger trusts
// its input.
func NewLedger(inputs []DebtInput) *Ledger {
	debts := make([]*Debt, len(inputs))
	for i, in := range inputs {
		debts[i] = &Debt{
			Name:           in.Name,
			Balance:        decimal.NewFromFloat(in.Balance),
			MonthlyRate:    decimal.NewFromFloat(in.Rate).Div(decimal.NewFromInt(monthsPerYearPercent)),
			MinimumPayment: decimal.NewFromFloat(in.MinimumPayment),
			Paid:           false,
		}
	}
	return &Ledger{debts: debts}
}

// Clone deep-copies the ledger. Entries are never aliased between the
// original and the clone.
func (l *Ledger) Clone() *Ledger {
	debts := make([]*Debt, len(l.debts))
	for i, d := range l.debts {
		cp := *d
		debts[i] = &cp
	}
	return &Ledger{debts: debts}
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.debts)
}

// Debts returns all entries in iteration order.
func (l *Ledger) Debts() []*Debt {
	return l.debts
}

// Unpaid returns the currently unpaid entries in iteration order.
func (l *Ledger) Unpaid() []*Debt {
	unpaid := make([]*Debt, 0, len(l.debts))
	for _, d := range l.debts {
		if !d.Paid {
			unpaid = append(unpaid, d)
		}
	}
	return unpaid
}

// AllPaid reports whether every entry has reached payoff.
func (l *Ledger) AllPaid() bool {
	for _, d := range l.debts {
		if !d.Paid {
			return false
		}
	}
	return true
}
