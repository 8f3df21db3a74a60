package main

import (
	"context"
	"net/http"

	"github.com/rasyidf/hustleflow/internal/parameter"
)

type displayPatch struct {
	DarkMode     *bool `json:"darkMode,omitempty"`
	HighContrast *bool `json:"highContrast,omitempty"`
}

// settingsPatch is a partial update. Exchange rates apply before the currency so a
// request can add a rate and switch to it at once.
type settingsPatch struct {
	ExchangeRates     map[string]float64 `json:"exchangeRates,omitempty"`
	Currency          *string            `json:"currency,omitempty"`
	ComplexityBias    *float64           `json:"complexityBias,omitempty"`
	UrgencyBias       *float64           `json:"urgencyBias,omitempty"`
	ParameterBiases   map[string]float64 `json:"parameterBiases,omitempty"`
	ParameterDefaults parameter.Values   `json:"parameterDefaults,omitempty"`
	DefaultBaseRate   *float64           `json:"defaultBaseRate,omitempty"`
	DefaultDuration   *float64           `json:"defaultDuration,omitempty"`
	DefaultUnit       *string            `json:"defaultUnit,omitempty"`
	Display           *displayPatch      `json:"display,omitempty"`
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Snapshot())
}

func (s *server) handleSettingsPatch(w http.ResponseWriter, r *http.Request) {
	var patch settingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.validatePatch(patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.applyPatch(r.Context(), patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.settings.Snapshot())
}

func (s *server) validatePatch(patch settingsPatch) error {
	for id := range patch.ParameterBiases {
		if _, ok := s.parameters.Lookup(id); !ok {
			return badRequest("unknown parameter %q", id)
		}
	}
	for id, v := range patch.ParameterDefaults {
		p, ok := s.parameters.Lookup(id)
		if !ok {
			return badRequest("unknown parameter %q", id)
		}
		if !v.IsZero() && !p.Accepts(v) {
			return badRequest("parameter %q does not accept %s", id, v)
		}
	}
	return nil
}

// applyPatch runs the setters in a fixed order and stops at the first failure.
// Fields applied before the failure stay applied.
func (s *server) applyPatch(ctx context.Context, patch settingsPatch) error {
	st := s.settings
	var steps []func() error
	if patch.ExchangeRates != nil {
		steps = append(steps, func() error { return st.SetExchangeRates(ctx, patch.ExchangeRates) })
	}
	if patch.Currency != nil {
		steps = append(steps, func() error { return st.SetCurrency(ctx, *patch.Currency) })
	}
	if patch.ComplexityBias != nil {
		steps = append(steps, func() error { return st.SetComplexityBias(ctx, *patch.ComplexityBias) })
	}
	if patch.UrgencyBias != nil {
		steps = append(steps, func() error { return st.SetUrgencyBias(ctx, *patch.UrgencyBias) })
	}
	for id, bias := range patch.ParameterBiases {
		steps = append(steps, func() error { return st.SetParameterBias(ctx, id, bias) })
	}
	for id, v := range patch.ParameterDefaults {
		steps = append(steps, func() error { return st.SetParameterDefault(ctx, id, v) })
	}
	if patch.DefaultBaseRate != nil {
		steps = append(steps, func() error { return st.SetDefaultBaseRate(ctx, *patch.DefaultBaseRate) })
	}
	if patch.DefaultDuration != nil {
		steps = append(steps, func() error { return st.SetDefaultDuration(ctx, *patch.DefaultDuration) })
	}
	if patch.DefaultUnit != nil {
		steps = append(steps, func() error { return st.SetDefaultUnit(ctx, *patch.DefaultUnit) })
	}
	if d := patch.Display; d != nil {
		if d.DarkMode != nil {
			steps = append(steps, func() error { return st.SetDarkMode(ctx, *d.DarkMode) })
		}
		if d.HighContrast != nil {
			steps = append(steps, func() error { return st.SetHighContrast(ctx, *d.HighContrast) })
		}
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
