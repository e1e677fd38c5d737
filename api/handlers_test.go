package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsim/payoff-engine/api"
	"github.com/finsim/payoff-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	router := api.NewRouter(api.NewHandler(store))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sampleDebts() []map[string]any {
	return []map[string]any{
		{"name": "CC", "balance": 5000, "rate": 19.99, "minimumPayment": 100},
		{"name": "Car", "balance": 12000, "rate": 5.5, "minimumPayment": 250},
	}
}

// =============================================================================
// COMPARE ENDPOINT
// =============================================================================

func TestCompare_HappyPath(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts":               sampleDebts(),
		"extraMonthlyPayment": 200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Run-ID"), "run should be persisted")

	body := decodeBody[api.CompareResponse](t, resp)
	assert.Equal(t, []string{"CC", "Car"}, body.Avalanche.PayoffOrder)
	assert.Len(t, body.Snowball.PayoffOrder, 2)
	assert.GreaterOrEqual(t, body.InterestSaved, 0.0)
	assert.LessOrEqual(t, body.Avalanche.TotalInterest, body.Snowball.TotalInterest)
	assert.Greater(t, body.Avalanche.Months, 0)
}

func TestCompare_DebtsAsJSONString(t *testing.T) {
	// The contract also accepts debts as a string containing a JSON array.
	server := newTestServer(t)

	raw, err := json.Marshal(sampleDebts())
	require.NoError(t, err)

	resp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts":               string(raw),
		"extraMonthlyPayment": 200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.CompareResponse](t, resp)
	assert.Equal(t, []string{"CC", "Car"}, body.Avalanche.PayoffOrder)
}

func TestCompare_DefaultsExtraPaymentToZero(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts": sampleDebts(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.CompareResponse](t, resp)
	// With no pool to allocate, strategy choice is irrelevant.
	assert.Equal(t, body.Avalanche.Months, body.Snowball.Months)
	assert.Equal(t, body.Avalanche.TotalInterest, body.Snowball.TotalInterest)
	assert.Equal(t, 0.0, body.InterestSaved)
}

func TestCompare_ValidationFailures(t *testing.T) {
	server := newTestServer(t)

	cases := map[string]map[string]any{
		"missing debts": {"extraMonthlyPayment": 100},
		"empty debts":   {"debts": []map[string]any{}},
		"empty name": {"debts": []map[string]any{
			{"name": "", "balance": 100, "rate": 5, "minimumPayment": 10},
		}},
		"negative balance": {"debts": []map[string]any{
			{"name": "X", "balance": -100, "rate": 5, "minimumPayment": 10},
		}},
		"negative rate": {"debts": []map[string]any{
			{"name": "X", "balance": 100, "rate": -5, "minimumPayment": 10},
		}},
		"negative minimum": {"debts": []map[string]any{
			{"name": "X", "balance": 100, "rate": 5, "minimumPayment": -10},
		}},
		"negative extra": {
			"debts":               sampleDebts(),
			"extraMonthlyPayment": -50,
		},
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			resp := postJSON(t, server, "/api/payoff/compare", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody[api.ErrorResponse](t, resp)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestCompare_FieldErrorNamesOffendingField(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts": []map[string]any{
			{"name": "CC", "balance": 100, "rate": 5, "minimumPayment": 10},
			{"name": "Bad", "balance": 100, "rate": -1, "minimumPayment": 10},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[api.ErrorResponse](t, resp)
	details, ok := body.Details.(string)
	require.True(t, ok)
	assert.Contains(t, details, "rate")
	assert.Contains(t, details, "Bad")
}

func TestCompare_MalformedBody(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/payoff/compare", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// PLAN ENDPOINT
// =============================================================================

func TestPlan_DefaultsToAvalanche(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/plan", map[string]any{
		"debts":               sampleDebts(),
		"extraMonthlyPayment": 200,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.PlanResponse](t, resp)
	assert.Equal(t, "avalanche", body.Strategy)
	assert.True(t, body.Complete)
	assert.Len(t, body.Schedule, body.Result.Months)

	final := body.Schedule[len(body.Schedule)-1]
	for name, balance := range final.Balances {
		assert.Zero(t, balance, "final balance for %s", name)
	}
}

func TestPlan_SnowballByName(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/plan", map[string]any{
		"debts":    sampleDebts(),
		"strategy": "snowball",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.PlanResponse](t, resp)
	assert.Equal(t, "snowball", body.Strategy)
}

func TestPlan_UnknownStrategyRejected(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/plan", map[string]any{
		"debts":    sampleDebts(),
		"strategy": "roulette",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// RUN HISTORY
// =============================================================================

func TestRuns_CompareWritesHistory(t *testing.T) {
	server := newTestServer(t)

	compareResp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts":               sampleDebts(),
		"extraMonthlyPayment": 200,
	})
	require.Equal(t, http.StatusOK, compareResp.StatusCode)
	runID := compareResp.Header.Get("X-Run-ID")
	require.NotEmpty(t, runID)

	// List includes the run.
	listResp, err := http.Get(server.URL + "/api/runs")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	list := decodeBody[struct {
		Runs []api.RunDTO `json:"runs"`
	}](t, listResp)
	require.Len(t, list.Runs, 1)
	assert.Equal(t, runID, list.Runs[0].ID)
	assert.Equal(t, 2, list.Runs[0].DebtCount)
	assert.Equal(t, 200.0, list.Runs[0].ExtraPayment)
	assert.False(t, list.Runs[0].HitCeiling)

	// Detail carries the payloads back.
	detailResp, err := http.Get(server.URL + "/api/runs/" + runID)
	require.NoError(t, err)
	defer detailResp.Body.Close()
	require.Equal(t, http.StatusOK, detailResp.StatusCode)

	detail := decodeBody[api.RunDetailDTO](t, detailResp)
	assert.Equal(t, runID, detail.ID)

	var stored api.CompareResponse
	require.NoError(t, json.Unmarshal(detail.Result, &stored))
	assert.Equal(t, []string{"CC", "Car"}, stored.Avalanche.PayoffOrder)
}

func TestRuns_CeilingRunFlagged(t *testing.T) {
	// A minimum below first-month interest never amortizes; the run should
	// succeed (silent degradation) and the stored row be flagged.
	server := newTestServer(t)

	resp := postJSON(t, server, "/api/payoff/compare", map[string]any{
		"debts": []map[string]any{
			{"name": "Underwater", "balance": 10000, "rate": 24, "minimumPayment": 50},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[api.CompareResponse](t, resp)
	assert.Empty(t, body.Avalanche.PayoffOrder, "debt should remain unpaid at ceiling")

	listResp, err := http.Get(server.URL + "/api/runs")
	require.NoError(t, err)
	defer listResp.Body.Close()

	list := decodeBody[struct {
		Runs []api.RunDTO `json:"runs"`
	}](t, listResp)
	require.Len(t, list.Runs, 1)
	assert.True(t, list.Runs[0].HitCeiling)
}

func TestRuns_UnknownIDReturns404(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/runs/run-doesnotexist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
