/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal-based domain model from the external contract, which
  speaks plain JSON numbers rounded to 2 places.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *DTO / *Response: Types returned to clients

THE debts FIELD:
  CompareRequest.Debts is a json.RawMessage because the contract accepts
  either a JSON array of debt descriptors or a string containing a JSON
  array. decodeDebts handles both shapes.

SEE ALSO:
  - handlers.go: Uses these types
  - validate.go: Field-level validation of decoded debts
*/
package api

import (
	"encoding/json"

	"github.com/finsim/payoff-engine/payoff"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CompareRequest is the request to compare both payoff strategies.
type CompareRequest struct {
	Debts               json.RawMessage `json:"debts"`
	ExtraMonthlyPayment float64         `json:"extraMonthlyPayment"`
}

// PlanRequest is the request for a single-strategy run with a month-by-month
// schedule.
type PlanRequest struct {
	Debts               json.RawMessage `json:"debts"`
	ExtraMonthlyPayment float64         `json:"extraMonthlyPayment"`
	Strategy            string          `json:"strategy"`
}

// decodeDebts accepts the debts field either as a JSON array or as a string
// containing a JSON array.
func decodeDebts(raw json.RawMessage) ([]payoff.DebtInput, error) {
	if len(raw) == 0 {
		return nil, ErrNoDebts
	}

	// String form: unwrap, then decode the embedded array.
	var embedded string
	if err := json.Unmarshal(raw, &embedded); err == nil {
		raw = json.RawMessage(embedded)
	}

	var debts []payoff.DebtInput
	if err := json.Unmarshal(raw, &debts); err != nil {
		return nil, err
	}
	return debts, nil
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// StrategyResultDTO represents one strategy's simulation outcome.
type StrategyResultDTO struct {
	TotalInterest float64  `json:"totalInterest"`
	TotalPaid     float64  `json:"totalPaid"`
	Months        int      `json:"months"`
	PayoffOrder   []string `json:"payoffOrder"`
}

// CompareResponse is the comparison result contract.
type CompareResponse struct {
	Avalanche     StrategyResultDTO `json:"avalanche"`
	Snowball      StrategyResultDTO `json:"snowball"`
	InterestSaved float64           `json:"interestSaved"`
}

// MonthDTO represents one simulated month in a plan schedule.
type MonthDTO struct {
	Month    int                `json:"month"`
	Interest float64            `json:"interest"`
	Paid     float64            `json:"paid"`
	Balances map[string]float64 `json:"balances"`
}

// PlanResponse is a single-strategy result plus its schedule.
type PlanResponse struct {
	Strategy string            `json:"strategy"`
	Result   StrategyResultDTO `json:"result"`
	Complete bool              `json:"complete"`
	Schedule []MonthDTO        `json:"schedule"`
}

// RunDTO represents a stored comparison run.
type RunDTO struct {
	ID            string  `json:"id"`
	CreatedAt     string  `json:"created_at"`
	DebtCount     int     `json:"debt_count"`
	ExtraPayment  float64 `json:"extra_payment"`
	InterestSaved float64 `json:"interest_saved"`
	HitCeiling    bool    `json:"hit_ceiling"`
}

// RunDetailDTO is a stored run with its full request and result payloads.
type RunDetailDTO struct {
	RunDTO
	Request json.RawMessage `json:"request"`
	Result  json.RawMessage `json:"result"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStrategyResultDTO(r payoff.Result) StrategyResultDTO {
	interest, _ := r.TotalInterest.Float64()
	paid, _ := r.TotalPaid.Float64()
	return StrategyResultDTO{
		TotalInterest: interest,
		TotalPaid:     paid,
		Months:        r.Months,
		PayoffOrder:   r.PayoffOrder,
	}
}

func toCompareResponse(cmp payoff.Comparison) CompareResponse {
	saved, _ := cmp.InterestSaved.Float64()
	return CompareResponse{
		Avalanche:     toStrategyResultDTO(cmp.Avalanche),
		Snowball:      toStrategyResultDTO(cmp.Snowball),
		InterestSaved: saved,
	}
}

func toMonthDTOs(schedule []payoff.MonthSnapshot) []MonthDTO {
	dtos := make([]MonthDTO, len(schedule))
	for i, m := range schedule {
		balances := make(map[string]float64, len(m.Balances))
		for name, b := range m.Balances {
			balances[name], _ = b.Float64()
		}
		interest, _ := m.Interest.Float64()
		paid, _ := m.Paid.Float64()
		dtos[i] = MonthDTO{
			Month:    m.Month,
			Interest: interest,
			Paid:     paid,
			Balances: balances,
		}
	}
	return dtos
}
