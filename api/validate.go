/*
validate.go - Request validation for debt descriptors

PURPOSE:
  Fail-fast validation of raw debt descriptors before any simulation
  begins. The engine trusts its input (see payoff.NewLedger); this is the
  external caller's side of that contract. Every rejection names the
  offending field and debt index so clients can fix the exact record.

ERROR CATEGORIES:
  1. Sentinel errors - empty/absent debt list
  2. FieldError - a specific field on a specific debt is out of range

USAGE:
  if err := ValidateDebts(debts); err != nil {
      // 400, err.Error() identifies the field
  }

SEE ALSO:
  - handlers.go: Calls ValidateDebts before invoking the engine
  - payoff/ledger.go: Construction that relies on validated input
*/
package api

import (
	"errors"
	"fmt"
	"math"

	"github.com/finsim/payoff-engine/payoff"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoDebts is returned when the debt list is empty or absent.
	ErrNoDebts = errors.New("debts list is empty or missing")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError identifies an invalid field on a specific debt descriptor.
type FieldError struct {
	Index int
	Name  string // debt name, if one was supplied
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("debt %q (index %d): field %q %s", e.Name, e.Index, e.Field, e.Msg)
	}
	return fmt.Sprintf("debt at index %d: field %q %s", e.Index, e.Field, e.Msg)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidateDebts checks the raw descriptors against the input contract:
// non-empty list, non-empty names, and finite non-negative balance, rate,
// and minimumPayment on every debt.
func ValidateDebts(debts []payoff.DebtInput) error {
	if len(debts) == 0 {
		return ErrNoDebts
	}
	for i, d := range debts {
		if d.Name == "" {
			return &FieldError{Index: i, Field: "name", Msg: "must not be empty"}
		}
		if err := checkAmount(i, d.Name, "balance", d.Balance); err != nil {
			return err
		}
		if err := checkAmount(i, d.Name, "rate", d.Rate); err != nil {
			return err
		}
		if err := checkAmount(i, d.Name, "minimumPayment", d.MinimumPayment); err != nil {
			return err
		}
	}
	return nil
}

func checkAmount(index int, name, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &FieldError{Index: index, Name: name, Field: field, Msg: "must be a finite number"}
	}
	if v < 0 {
		return &FieldError{Index: index, Name: name, Field: field, Msg: "must not be negative"}
	}
	return nil
}

// validateExtraPayment checks the shared extra-payment amount.
func validateExtraPayment(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("extraMonthlyPayment must be a finite number")
	}
	if v < 0 {
		return fmt.Errorf("extraMonthlyPayment must not be negative")
	}
	return nil
}
