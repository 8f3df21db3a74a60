package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/db"
	"github.com/rasyidf/hustleflow/internal/estimates"
	"github.com/rasyidf/hustleflow/internal/migrations"
	"github.com/rasyidf/hustleflow/internal/parameter"
	"github.com/rasyidf/hustleflow/internal/settings"
)

func f(v float64) *float64 { return &v }

func newTestServer(t *testing.T) *server {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Up(ctx, database))

	one := catalog.Metadata{TimeWeight: 1, ComplexityWeight: 1}
	items, err := catalog.New([]catalog.Item{
		{ID: "landing", Name: "Landing", Category: catalog.CategoryModule, BasePrice: 500, Metadata: one},
		{ID: "shop", Name: "Shop", Category: catalog.CategoryModule, BasePrice: 800, Dependencies: []string{"landing"}, Subcomponents: []string{"cart"}, Metadata: one},
		{ID: "cart", Name: "Cart", Category: catalog.CategoryModule, BasePrice: 1000, Metadata: one},
	})
	require.NoError(t, err)

	params := parameter.Catalog{
		{ID: parameter.BaseRateID, Name: "Base Rate", Kind: parameter.KindNumber, DefaultValue: parameter.Number(50)},
		{ID: parameter.DurationID, Name: "Duration", Kind: parameter.KindNumber, Min: f(1), Max: f(180), DefaultValue: parameter.Number(5), Unit: "days"},
		{ID: parameter.DiscountID, Name: "Discount", Kind: parameter.KindNumber, Min: f(0), Max: f(100), DefaultValue: parameter.Number(0)},
		{ID: "rush", Name: "Rush", Kind: parameter.KindToggle, DefaultValue: parameter.Bool(false), Bias: 0.5},
	}

	store, err := settings.Open(ctx, &settings.MemoryPersister{}, nil)
	require.NoError(t, err)

	return &server{
		logger:     zap.NewNop(),
		settings:   store,
		parameters: params,
		items:      items,
		estimates:  estimates.NewRepository(database),
	}
}

func do(t *testing.T, srv *server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestQuote_ModulesConvertedAndDiscounted(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/quote",
		`{"items":[{"id":"landing"},{"id":"shop"}],"discount":10,"currency":"eur"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[quoteResponse](t, rec)
	nearlyEqual(t, "total", resp.Total, 2876.4)
	assert.Equal(t, 2876.0, resp.Rounded)
	assert.Equal(t, "EUR", resp.Currency)
	assert.Contains(t, resp.Formatted, "€")
	assert.Empty(t, resp.MissingDependencies)

	sum := 0.0
	for _, line := range resp.Breakdown {
		sum += line.Amount
	}
	assert.InDelta(t, resp.Total, sum, 1e-9)
}

func TestQuote_ReportsMissingDependencies(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/quote", `{"items":[{"id":"shop","subcomponents":["cart"]}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[quoteResponse](t, rec)
	assert.Equal(t, map[string][]string{"shop": {"landing"}}, resp.MissingDependencies)
	// base 2000 plus the cart sub-item, which outprices the shop itself
	nearlyEqual(t, "total", resp.Total, 3000)
}

func TestQuote_ToggleParameterAppliesBias(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/quote", `{"values":{"rush":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[quoteResponse](t, rec)
	nearlyEqual(t, "total", resp.Total, 3000)
	assert.Equal(t, "USD", resp.Currency)
}

func TestQuote_RejectsInvalidRequests(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"unknown item":          `{"items":[{"id":"nope"}]}`,
		"unknown subcomponent":  `{"items":[{"id":"landing","subcomponents":["cart"]}]}`,
		"sub-item at top level": `{"items":[{"id":"cart"}]}`,
		"unknown parameter":     `{"values":{"vibes":1}}`,
		"wrong value type":      `{"values":{"duration":"long"}}`,
		"unknown currency":      `{"currency":"XYZ"}`,
		"unknown unit":          `{"durationUnit":"fortnights"}`,
		"unknown field":         `{"colour":"red"}`,
		"empty body":            ``,
	}
	for name, body := range cases {
		rec := do(t, srv, http.MethodPost, "/api/quote", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "invalid_request", name)
	}
}

func TestQuoteSummary_IsPlainText(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/quote/summary", `{"items":[{"id":"landing"}],"discount":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))

	body := rec.Body.String()
	assert.Contains(t, body, "Project estimate")
	assert.Contains(t, body, "Total: $2,250.00")
	assert.Contains(t, body, "Landing")
	assert.Contains(t, body, "Discount: 10%")
}

func TestParametersAndItems(t *testing.T) {
	srv := newTestServer(t)
	require.NoError(t, srv.settings.SetDefaultBaseRate(context.Background(), 80))

	rec := do(t, srv, http.MethodGet, "/api/parameters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var params struct {
		Parameters []struct {
			ID           string `json:"id"`
			DefaultValue any    `json:"defaultValue"`
		} `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &params))
	require.NotEmpty(t, params.Parameters)
	assert.Equal(t, parameter.BaseRateID, params.Parameters[0].ID)
	assert.Equal(t, 80.0, params.Parameters[0].DefaultValue)

	rec = do(t, srv, http.MethodGet, "/api/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items struct {
		Items []itemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items.Items, 2)
	assert.Equal(t, "shop", items.Items[1].ID)
	require.Len(t, items.Items[1].Subcomponents, 1)
	assert.Equal(t, "cart", items.Items[1].Subcomponents[0].ID)
}

func TestSettingsPatch(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPatch, "/api/settings",
		`{"exchangeRates":{"USD":1,"CHF":0.9},"currency":"chf","complexityBias":5,"display":{"darkMode":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[settings.Settings](t, rec)
	assert.Equal(t, "CHF", got.Currency)
	assert.Equal(t, 1.0, got.ComplexityBias)
	assert.True(t, got.Display.DarkMode)

	rec = do(t, srv, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CHF", decode[settings.Settings](t, rec).Currency)
}

func TestSettingsPatch_RejectsInvalidValues(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"unit":               `{"defaultUnit":"fortnights"}`,
		"rates":              `{"exchangeRates":{"USD":0}}`,
		"currency":           `{"currency":"XYZ"}`,
		"unknown parameter":  `{"parameterBiases":{"vibes":0.3}}`,
		"wrong default type": `{"parameterDefaults":{"rush":"maybe"}}`,
	}
	for name, body := range cases {
		rec := do(t, srv, http.MethodPatch, "/api/settings", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	assert.Equal(t, settings.Defaults(), srv.settings.Snapshot())
}

func TestSettingsPatch_FeedsQuotes(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPatch, "/api/settings", `{"defaultBaseRate":100,"defaultUnit":"hours","parameterDefaults":{"rush":true}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/quote", `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	// 100/h x 5h, raised by the rush toggle
	nearlyEqual(t, "total", decode[quoteResponse](t, rec).Total, 750)
}

func TestEstimates_CreateGetAndList(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/estimates",
		`{"title":"Shop <i>rebuild</i>","notes":"first pass","quote":{"items":[{"id":"landing"}]}}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[estimates.Estimate](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Shop rebuild", created.Title)
	nearlyEqual(t, "total", created.Total, 2500)

	// later settings changes never touch stored snapshots
	require.NoError(t, srv.settings.SetDefaultBaseRate(context.Background(), 500))

	rec = do(t, srv, http.MethodGet, "/api/estimates/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	loaded := decode[estimates.Estimate](t, rec)
	nearlyEqual(t, "total", loaded.Total, 2500)
	assert.Equal(t, created.Result, loaded.Result)

	rec = do(t, srv, http.MethodGet, "/api/estimates?q=rebuild", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Estimates []estimates.Summary `json:"estimates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Estimates, 1)
	assert.Equal(t, created.ID, list.Estimates[0].ID)

	rec = do(t, srv, http.MethodGet, "/api/estimates?q=nothing-matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Estimates)
}

func TestEstimates_NotFound(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/estimates/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}
