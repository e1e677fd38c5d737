/*
handlers.go - HTTP API handlers for the payoff engine

PURPOSE:
  Exposes the payoff simulation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Payoff:
    POST   /api/payoff/compare   Compare avalanche vs snowball
    POST   /api/payoff/plan      Single-strategy run with monthly schedule

  History:
    GET    /api/runs             List stored comparison runs
    GET    /api/runs/{id}        Full request/result of one run

  Health:
    GET    /api/health           Liveness probe

REQUEST FLOW:
  1. Decode request body (debts accepted as array or JSON-array string)
  2. Validate input - no simulation starts on invalid input
  3. Run the engine
  4. Persist the run (compare only), serialize the response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Malformed body, validation errors
  - 404: Run not found
  - 500: Store failures

CEILING DEGRADATION:
  A run that hits the month ceiling is not an error: the engine returns
  the state it reached, the response carries it unchanged, and the stored
  row is flagged hit_ceiling so it can be found later.

SEE ALSO:
  - dto.go: Request/response data structures
  - validate.go: Input validation
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finsim/payoff-engine/payoff"
	"github.com/finsim/payoff-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// PAYOFF HANDLERS
// =============================================================================

// Compare runs both strategies and reports comparative totals.
// POST /api/payoff/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	debts, err := decodeDebts(req.Debts)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debts payload", err)
		return
	}
	if err := ValidateDebts(debts); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt descriptor", err)
		return
	}
	if err := validateExtraPayment(req.ExtraMonthlyPayment); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid extra payment", err)
		return
	}

	cmp := payoff.Compare(debts, req.ExtraMonthlyPayment)
	resp := toCompareResponse(cmp)

	// Best-effort history write. The comparison result stands on its own;
	// a failed insert is logged, not surfaced.
	if run, err := h.saveRun(r, debts, req, cmp, resp); err != nil {
		log.Printf("Failed to save comparison run: %v", err)
	} else {
		w.Header().Set("X-Run-ID", run.ID)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) saveRun(r *http.Request, debts []payoff.DebtInput, req CompareRequest, cmp payoff.Comparison, resp CompareResponse) (sqlite.Run, error) {
	requestJSON, err := json.Marshal(map[string]any{
		"debts":               debts,
		"extraMonthlyPayment": req.ExtraMonthlyPayment,
	})
	if err != nil {
		return sqlite.Run{}, err
	}
	resultJSON, err := json.Marshal(resp)
	if err != nil {
		return sqlite.Run{}, err
	}

	return h.Store.SaveRun(r.Context(), sqlite.Run{
		DebtCount:     len(debts),
		ExtraPayment:  req.ExtraMonthlyPayment,
		InterestSaved: resp.InterestSaved,
		HitCeiling:    !cmp.Avalanche.Complete(len(debts)) || !cmp.Snowball.Complete(len(debts)),
		RequestJSON:   string(requestJSON),
		ResultJSON:    string(resultJSON),
	})
}

// Plan runs a single strategy and returns its month-by-month schedule.
// POST /api/payoff/plan
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	debts, err := decodeDebts(req.Debts)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debts payload", err)
		return
	}
	if err := ValidateDebts(debts); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid debt descriptor", err)
		return
	}
	if err := validateExtraPayment(req.ExtraMonthlyPayment); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid extra payment", err)
		return
	}

	name := req.Strategy
	if name == "" {
		name = payoff.AvalancheStrategy{}.Name()
	}
	strategy, ok := payoff.StrategyByName(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown strategy", nil)
		return
	}

	sim := payoff.NewSimulator()
	sim.CaptureSchedule = true
	result := sim.Run(payoff.NewLedger(debts), strategy, decimal.NewFromFloat(req.ExtraMonthlyPayment))

	writeJSON(w, http.StatusOK, PlanResponse{
		Strategy: strategy.Name(),
		Result:   toStrategyResultDTO(result),
		Complete: result.Complete(len(debts)),
		Schedule: toMonthDTOs(result.Schedule),
	})
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListRuns returns stored comparison runs, newest first.
// GET /api/runs?limit=N
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	runs, err := h.Store.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": dtos})
}

// GetRun returns one stored run with its full payloads.
// GET /api/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.Store.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Run not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, RunDetailDTO{
		RunDTO:  toRunDTO(*run),
		Request: json.RawMessage(run.RequestJSON),
		Result:  json.RawMessage(run.ResultJSON),
	})
}

// Health is a liveness probe.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func toRunDTO(run sqlite.Run) RunDTO {
	return RunDTO{
		ID:            run.ID,
		CreatedAt:     run.CreatedAt.Format(time.RFC3339),
		DebtCount:     run.DebtCount,
		ExtraPayment:  run.ExtraPayment,
		InterestSaved: run.InterestSaved,
		HitCeiling:    run.HitCeiling,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
