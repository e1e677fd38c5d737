package payoff_test

import (
	"testing"

	"github.com/finsim/payoff-engine/payoff"
)

// =============================================================================
// TARGET SELECTION TESTS
// =============================================================================

func TestAvalanche_PicksHighestRate(t *testing.T) {
	ledger := payoff.NewLedger([]payoff.DebtInput{
		debt("Low", 1000, 5.0, 25),
		debt("High", 9000, 21.0, 180),
		debt("Mid", 4000, 12.0, 80),
	})

	target := payoff.AvalancheStrategy{}.SelectTarget(ledger.Unpaid())
	if target == nil || target.Name != "High" {
		t.Fatalf("expected High, got %v", target)
	}
}

func TestSnowball_PicksLowestBalance(t *testing.T) {
	ledger := payoff.NewLedger([]payoff.DebtInput{
		debt("Big", 9000, 21.0, 180),
		debt("Small", 1000, 5.0, 25),
		debt("Mid", 4000, 12.0, 80),
	})

	target := payoff.SnowballStrategy{}.SelectTarget(ledger.Unpaid())
	if target == nil || target.Name != "Small" {
		t.Fatalf("expected Small, got %v", target)
	}
}

func TestStrategies_TieBreakOnIterationOrder(t *testing.T) {
	// Equal rates and equal balances: the first entry wins. The choice is
	// financially immaterial; the tie-break just has to be stable.
	ledger := payoff.NewLedger([]payoff.DebtInput{
		debt("First", 2000, 10.0, 50),
		debt("Second", 2000, 10.0, 50),
	})

	if target := (payoff.AvalancheStrategy{}).SelectTarget(ledger.Unpaid()); target.Name != "First" {
		t.Errorf("avalanche tie-break: expected First, got %s", target.Name)
	}
	if target := (payoff.SnowballStrategy{}).SelectTarget(ledger.Unpaid()); target.Name != "First" {
		t.Errorf("snowball tie-break: expected First, got %s", target.Name)
	}
}

func TestStrategies_EmptySetReturnsNil(t *testing.T) {
	if target := (payoff.AvalancheStrategy{}).SelectTarget(nil); target != nil {
		t.Errorf("avalanche: expected nil for empty set, got %v", target)
	}
	if target := (payoff.SnowballStrategy{}).SelectTarget(nil); target != nil {
		t.Errorf("snowball: expected nil for empty set, got %v", target)
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestStrategyByName(t *testing.T) {
	for _, name := range []string{"avalanche", "snowball"} {
		s, ok := payoff.StrategyByName(name)
		if !ok {
			t.Fatalf("strategy %q not registered", name)
		}
		if s.Name() != name {
			t.Errorf("expected name %q, got %q", name, s.Name())
		}
	}

	if _, ok := payoff.StrategyByName("highest-balance"); ok {
		t.Error("unregistered strategy should not resolve")
	}
}
