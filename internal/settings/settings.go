package settings

import (
	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
)

// Namespace is the key the settings document is stored under.
const Namespace = "hustleflow-settings"

// Display holds presentation preferences.
type Display struct {
	DarkMode     bool `json:"darkMode"`
	HighContrast bool `json:"highContrast"`
}

// Settings is the persisted user configuration read by the pricing engine.
type Settings struct {
	Currency          string             `json:"currency"`
	ExchangeRates     currency.Rates     `json:"exchangeRates"`
	ParameterBiases   map[string]float64 `json:"parameterBiases"`
	ParameterDefaults parameter.Values   `json:"parameterDefaults"`
	ComplexityBias    float64            `json:"complexityBias"`
	UrgencyBias       float64            `json:"urgencyBias"`
	DefaultBaseRate   float64            `json:"defaultBaseRate"`
	DefaultDuration   float64            `json:"defaultDuration"`
	DefaultUnit       parameter.Unit     `json:"defaultUnit"`
	Display           Display            `json:"display"`
}

// Defaults returns the settings of a fresh installation.
func Defaults() Settings {
	return Settings{
		Currency:          currency.Base,
		ExchangeRates:     currency.DefaultRates(),
		ParameterBiases:   map[string]float64{},
		ParameterDefaults: parameter.Values{},
		ComplexityBias:    0.1,
		UrgencyBias:       0.2,
		DefaultBaseRate:   50,
		DefaultDuration:   5,
		DefaultUnit:       parameter.Days,
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.ExchangeRates = s.ExchangeRates.Clone()
	out.ParameterBiases = make(map[string]float64, len(s.ParameterBiases))
	for k, v := range s.ParameterBiases {
		out.ParameterBiases[k] = v
	}
	out.ParameterDefaults = make(parameter.Values, len(s.ParameterDefaults))
	for k, v := range s.ParameterDefaults {
		out.ParameterDefaults[k] = v
	}
	return out
}

// Overrides converts the settings into catalog overrides. The dedicated complexity and
// urgency biases apply first; per-parameter biases win over them.
func (s Settings) Overrides() parameter.Overrides {
	biases := map[string]float64{
		parameter.ComplexityID: s.ComplexityBias,
		parameter.UrgencyID:    s.UrgencyBias,
	}
	for id, bias := range s.ParameterBiases {
		biases[id] = bias
	}

	rate, duration := s.DefaultBaseRate, s.DefaultDuration
	return parameter.Overrides{
		Biases:       biases,
		Defaults:     s.ParameterDefaults,
		BaseRate:     &rate,
		Duration:     &duration,
		DurationUnit: s.DefaultUnit,
	}
}

// normalize fills fields a stored document may have dropped.
func (s *Settings) normalize() {
	def := Defaults()
	if s.Currency == "" {
		s.Currency = def.Currency
	}
	if len(s.ExchangeRates) == 0 || s.ExchangeRates.Validate() != nil {
		s.ExchangeRates = def.ExchangeRates
	}
	if s.ParameterBiases == nil {
		s.ParameterBiases = map[string]float64{}
	}
	if s.ParameterDefaults == nil {
		s.ParameterDefaults = parameter.Values{}
	}
	if _, err := parameter.ParseUnit(string(s.DefaultUnit)); err != nil {
		s.DefaultUnit = def.DefaultUnit
	}
	if s.DefaultDuration < 1 {
		s.DefaultDuration = def.DefaultDuration
	}
	s.DefaultBaseRate = max(0, s.DefaultBaseRate)
	s.ComplexityBias = clampUnit(s.ComplexityBias)
	s.UrgencyBias = clampUnit(s.UrgencyBias)
}

func clampUnit(v float64) float64 {
	return max(0, min(1, v))
}
