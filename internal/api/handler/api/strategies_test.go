package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newthinker/stratdeck/internal/api/response"
	"github.com/newthinker/stratdeck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	records []core.StrategyRecord
	err     error
}

func (s stubLoader) Load(ctx context.Context) ([]core.StrategyRecord, error) {
	return s.records, s.err
}

func testRecords() []core.StrategyRecord {
	return []core.StrategyRecord{
		{
			Name: "EURUSD", Category: core.CategoryTrendlineScalper, Filename: "TrendlineReport_EURUSD.html",
			Stats: core.Stats{NetProfit: "$100.00", FinalBalance: "$10,100.00", WinRate: "55%",
				MaxDrawdown: "-$25.00", TotalTrades: "40"},
			EquityCurve: []float64{10000, 10050.5, 10100},
		},
		{
			Name: "GBPUSD", Category: core.CategoryTrendContinuation, Filename: "SafeReport_GBPUSD.html",
			Stats: core.Stats{NetProfit: "n/a", FinalBalance: "$10,050.00", MaxDrawdown: "-$5.00"},
		},
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp response.SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data should be an object")
	return data
}

func TestStrategiesHandler_List(t *testing.T) {
	h := NewStrategiesHandler(stubLoader{records: testRecords()}, nil, nil)

	req := httptest.NewRequest("GET", "/api/strategies?type=Trendline+Scalper", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)

	assert.Equal(t, "Trendline Scalper", data["header"])
	assert.Equal(t, false, data["empty"])

	cards := data["cards"].([]any)
	require.Len(t, cards, 1)
	card := cards[0].(map[string]any)
	assert.Equal(t, "EURUSD", card["name"])
	assert.Equal(t, "Balanced", card["risk"])
	assert.Equal(t, "chart-0", card["chart_id"])
	assert.Equal(t, "reports/TrendlineReport_EURUSD.html", card["report_url"])
	assert.Equal(t, []any{"$10000.00", "$10050.50", "$10100.00"}, card["point_labels"])
	assert.NotContains(t, card, "chart")

	totals := data["totals"].(map[string]any)
	assert.Equal(t, "$10100.00", totals["balance"])
	assert.Equal(t, "+$100.00", totals["net_profit"])
}

func TestStrategiesHandler_ListNaNTotals(t *testing.T) {
	h := NewStrategiesHandler(stubLoader{records: testRecords()}, nil, nil)

	req := httptest.NewRequest("GET", "/api/strategies?type=Trend+Continuation", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)

	card := data["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, false, card["net_profit_positive"])
	assert.Equal(t, "+$NaN", data["totals"].(map[string]any)["net_profit"])
}

func TestStrategiesHandler_ListEmpty(t *testing.T) {
	h := NewStrategiesHandler(stubLoader{records: testRecords()}, nil, nil)

	req := httptest.NewRequest("GET", "/api/strategies?type=Spike+Detector", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)
	assert.Equal(t, true, data["empty"])
	assert.NotContains(t, data, "totals")
}

func TestStrategiesHandler_ListErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		loader stubLoader
		status int
		code   string
	}{
		{"missing type", "/api/strategies", stubLoader{}, http.StatusBadRequest, "CATEGORY_MISSING"},
		{
			"unavailable", "/api/strategies?type=Spike+Detector",
			stubLoader{err: core.WrapError(core.ErrDataUnavailable, errors.New("gone"))},
			http.StatusServiceUnavailable, "DATA_UNAVAILABLE",
		},
		{
			"malformed", "/api/strategies?type=Spike+Detector",
			stubLoader{err: core.WrapError(core.ErrDataMalformed, errors.New("bad json"))},
			http.StatusServiceUnavailable, "DATA_MALFORMED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewStrategiesHandler(tt.loader, nil, nil)

			req := httptest.NewRequest("GET", tt.target, nil)
			w := httptest.NewRecorder()
			h.List(w, req)

			assert.Equal(t, tt.status, w.Code)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestStrategiesHandler_Categories(t *testing.T) {
	h := NewStrategiesHandler(stubLoader{records: testRecords()}, nil, nil)

	req := httptest.NewRequest("GET", "/api/categories", nil)
	w := httptest.NewRecorder()
	h.Categories(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)
	assert.Equal(t, float64(2), data["count"])

	categories := data["categories"].([]any)
	first := categories[0].(map[string]any)
	assert.Equal(t, core.CategoryTrendContinuation, first["name"])
	assert.Equal(t, float64(1), first["strategies"])
}
