/*
strategy.go - Extra-payment target selection

PURPOSE:
  Each simulated month, the whole extra-payment pool goes to exactly one
  debt. A Strategy picks which. The two built-ins are the classic payoff
  heuristics:

    Avalanche: highest interest rate first (minimizes total interest)
    Snowball:  lowest balance first (maximizes early payoff events)

  Both are stateless and re-evaluated every month, since the best target
  shifts as balances shrink and debts retire. Ties break on first entry in
  ledger iteration order; with equal rates or balances the choice is
  financially immaterial.

EXTENDING:
  New strategies (e.g. highest balance first) only need SelectTarget; the
  simulator loop is untouched. Register them in strategies below to make
  them reachable by name from the API layer.

SEE ALSO:
  - simulator.go: Invokes SelectTarget once per month (step 3)
*/
package payoff

// Strategy picks the debt that receives the extra-payment pool this month.
type Strategy interface {
	// Name returns the strategy's wire identifier.
	Name() string

	// SelectTarget returns one debt from the unpaid set, or nil if the set
	// is empty. Must not mutate the debts.
	SelectTarget(unpaid []*Debt) *Debt
}

// =============================================================================
// BUILT-IN STRATEGIES
// =============================================================================

// AvalancheStrategy targets the debt with the highest monthly rate.
type AvalancheStrategy struct{}

func (AvalancheStrategy) Name() string { return "avalanche" }

func (AvalancheStrategy) SelectTarget(unpaid []*Debt) *Debt {
	var target *Debt
	for _, d := range unpaid {
		if target == nil || d.MonthlyRate.GreaterThan(target.MonthlyRate) {
			target = d
		}
	}
	return target
}

// SnowballStrategy targets the debt with the lowest balance.
type SnowballStrategy struct{}

func (SnowballStrategy) Name() string { return "snowball" }

func (SnowballStrategy) SelectTarget(unpaid []*Debt) *Debt {
	var target *Debt
	for _, d := range unpaid {
		if target == nil || d.Balance.LessThan(target.Balance) {
			target = d
		}
	}
	return target
}

// =============================================================================
// REGISTRY
// =============================================================================

var strategies = map[string]Strategy{
	AvalancheStrategy{}.Name(): AvalancheStrategy{},
	SnowballStrategy{}.Name():  SnowballStrategy{},
}

// StrategyByName looks up a registered strategy by its wire identifier.
func StrategyByName(name string) (Strategy, bool) {
	s, ok := strategies[name]
	return s, ok
}

// StrategyNames returns the wire identifiers of all registered strategies.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	return names
}
