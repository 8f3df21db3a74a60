package main

import (
	"net/http"
	"strings"

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
	"github.com/rasyidf/hustleflow/internal/pricing"
	"github.com/rasyidf/hustleflow/internal/settings"
)

type quoteItem struct {
	ID            string   `json:"id"`
	Subcomponents []string `json:"subcomponents,omitempty"`
}

type quoteRequest struct {
	Values       parameter.Values `json:"values,omitempty"`
	Items        []quoteItem      `json:"items,omitempty"`
	Discount     *float64         `json:"discount,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	DurationUnit string           `json:"durationUnit,omitempty"`
	FloorAtBase  bool             `json:"floorAtBase,omitempty"`
}

type quoteResponse struct {
	Total               float64             `json:"total"`
	Rounded             float64             `json:"rounded"`
	Currency            string              `json:"currency"`
	Formatted           string              `json:"formatted"`
	Breakdown           []pricing.Line      `json:"breakdown"`
	Details             pricing.Breakdown   `json:"details"`
	MissingDependencies map[string][]string `json:"missingDependencies"`
}

type quote struct {
	input   pricing.Input
	result  pricing.Result
	missing map[string][]string
}

// buildQuote resolves a request against the current settings and runs the engine.
func (s *server) buildQuote(req quoteRequest, st settings.Settings) (quote, error) {
	params := parameter.Resolve(s.parameters, st.Overrides())

	for id, v := range req.Values {
		p, ok := params.Lookup(id)
		if !ok {
			return quote{}, badRequest("unknown parameter %q", id)
		}
		if !v.IsZero() && !p.Accepts(v) {
			return quote{}, badRequest("parameter %q does not accept %s", id, v)
		}
	}

	code := st.Currency
	if req.Currency != "" {
		code = strings.ToUpper(strings.TrimSpace(req.Currency))
		if !st.ExchangeRates.Has(code) {
			return quote{}, badRequest("no exchange rate for currency %q", code)
		}
	}

	unit := st.DefaultUnit
	if req.DurationUnit != "" {
		parsed, err := parameter.ParseUnit(req.DurationUnit)
		if err != nil {
			return quote{}, badRequest("unknown duration unit %q", req.DurationUnit)
		}
		unit = parsed
	}

	selection := catalog.NewSelection(s.items)
	for _, item := range req.Items {
		it, ok := s.items.Lookup(item.ID)
		if !ok {
			return quote{}, badRequest("unknown item %q", item.ID)
		}
		if s.items.IsSubcomponent(item.ID) {
			return quote{}, badRequest("item %q is a sub-item and must be chosen through its parent", item.ID)
		}
		selection.Select(item.ID)
		for _, sub := range item.Subcomponents {
			if !it.HasSubcomponent(sub) {
				return quote{}, badRequest("item %q has no subcomponent %q", item.ID, sub)
			}
			selection.SetSubcomponent(item.ID, sub, true)
		}
	}

	values := req.Values.Merge(params)
	discount := values.Number(parameter.DiscountID)
	if req.Discount != nil {
		discount = *req.Discount
	}

	in := pricing.Input{
		Parameters:   params,
		Values:       values,
		DurationUnit: unit,
		Items:        selection.Items(),
		ItemCurrency: currency.Base,
		Currency:     code,
		Rates:        st.ExchangeRates,
		Discount:     discount,
		FloorAtBase:  req.FloorAtBase,
	}

	return quote{
		input:   in,
		result:  pricing.Calculate(in),
		missing: selection.MissingDependencies(),
	}, nil
}

func (q quote) response() quoteResponse {
	return quoteResponse{
		Total:               q.result.Totals.Total,
		Rounded:             q.result.Totals.Rounded,
		Currency:            q.result.Totals.Currency,
		Formatted:           currency.Format(q.result.Totals.Rounded, q.result.Totals.Currency),
		Breakdown:           q.result.Breakdown.Lines,
		Details:             q.result.Breakdown,
		MissingDependencies: q.missing,
	}
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	q, err := s.buildQuote(req, s.settings.Snapshot())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, q.response())
}

func (s *server) handleQuoteSummary(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	q, err := s.buildQuote(req, s.settings.Snapshot())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(pricing.Summary(q.input, q.result)))
}
