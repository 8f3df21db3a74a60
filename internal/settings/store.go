package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rasyidf/hustleflow/internal/logging"
	"github.com/rasyidf/hustleflow/internal/parameter"
)

var (
	ErrInvalidRate     = errors.New("invalid exchange rate")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownUnit     = errors.New("unknown duration unit")
	ErrInvalidValue    = errors.New("invalid parameter value")
)

// Persister reads and writes the serialized settings document.
type Persister interface {
	Load(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, s Settings) error
}

// Store owns the process-wide settings. Every setter validates, persists and swaps the
// state under one lock, so readers never observe a partially applied update.
type Store struct {
	mu        sync.RWMutex
	state     Settings
	persister Persister
	logger    *zap.Logger
}

// Open loads the persisted settings, falling back to defaults when none are stored.
func Open(ctx context.Context, p Persister, logger *zap.Logger) (*Store, error) {
	logger = logging.OrNop(logger)
	state, found, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !found {
		logger.Info("no stored settings, using defaults")
		state = Defaults()
	}
	state.normalize()

	return &Store{state: state, persister: p, logger: logger}, nil
}

// Snapshot returns a deep copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) update(ctx context.Context, field string, mutate func(*Settings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	if err := s.persister.Save(ctx, next); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.state = next
	s.logger.Debug("settings updated", zap.String("field", field))
	return nil
}

// SetCurrency switches the display currency. The code must have an exchange rate.
func (s *Store) SetCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return s.update(ctx, "currency", func(st *Settings) error {
		if !st.ExchangeRates.Has(code) {
			return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
		st.Currency = code
		return nil
	})
}

// SetExchangeRates replaces the rate table. All rates must be strictly positive and
// the current display currency must stay convertible.
func (s *Store) SetExchangeRates(ctx context.Context, rates map[string]float64) error {
	normalized := make(map[string]float64, len(rates))
	for code, rate := range rates {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return s.update(ctx, "exchangeRates", func(st *Settings) error {
		if len(normalized) == 0 {
			return fmt.Errorf("%w: rate table is empty", ErrInvalidRate)
		}
		for code, rate := range normalized {
			if code == "" || rate <= 0 {
				return fmt.Errorf("%w: %q=%v", ErrInvalidRate, code, rate)
			}
		}
		if _, ok := normalized[st.Currency]; !ok {
			return fmt.Errorf("%w: missing rate for display currency %s", ErrInvalidRate, st.Currency)
		}
		st.ExchangeRates = normalized
		return nil
	})
}

// SetComplexityBias stores the complexity bias clamped to [0, 1].
func (s *Store) SetComplexityBias(ctx context.Context, bias float64) error {
	return s.update(ctx, "complexityBias", func(st *Settings) error {
		st.ComplexityBias = clampUnit(bias)
		return nil
	})
}

// SetUrgencyBias stores the urgency bias clamped to [0, 1].
func (s *Store) SetUrgencyBias(ctx context.Context, bias float64) error {
	return s.update(ctx, "urgencyBias", func(st *Settings) error {
		st.UrgencyBias = clampUnit(bias)
		return nil
	})
}

// SetParameterBias overrides one parameter's bias, clamped to [0, 1].
func (s *Store) SetParameterBias(ctx context.Context, id string, bias float64) error {
	return s.update(ctx, "parameterBiases", func(st *Settings) error {
		if id == "" {
			return fmt.Errorf("%w: parameter id is required", ErrInvalidValue)
		}
		st.ParameterBiases[id] = clampUnit(bias)
		return nil
	})
}

// SetParameterDefault overrides one parameter's default value. A zero Value removes
// the override.
func (s *Store) SetParameterDefault(ctx context.Context, id string, v parameter.Value) error {
	return s.update(ctx, "parameterDefaults", func(st *Settings) error {
		if id == "" {
			return fmt.Errorf("%w: parameter id is required", ErrInvalidValue)
		}
		if v.IsZero() {
			delete(st.ParameterDefaults, id)
			return nil
		}
		st.ParameterDefaults[id] = v
		return nil
	})
}

// SetDefaultBaseRate stores the default hourly rate, floored at 0.
func (s *Store) SetDefaultBaseRate(ctx context.Context, rate float64) error {
	return s.update(ctx, "defaultBaseRate", func(st *Settings) error {
		st.DefaultBaseRate = max(0, rate)
		return nil
	})
}

// SetDefaultDuration stores the default duration, floored at 1.
func (s *Store) SetDefaultDuration(ctx context.Context, duration float64) error {
	return s.update(ctx, "defaultDuration", func(st *Settings) error {
		st.DefaultDuration = max(1, duration)
		return nil
	})
}

// SetDefaultUnit stores the default duration unit.
func (s *Store) SetDefaultUnit(ctx context.Context, unit string) error {
	u, err := parameter.ParseUnit(unit)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return s.update(ctx, "defaultUnit", func(st *Settings) error {
		st.DefaultUnit = u
		return nil
	})
}

// SetDarkMode toggles the dark theme preference.
func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	return s.update(ctx, "display.darkMode", func(st *Settings) error {
		st.Display.DarkMode = on
		return nil
	})
}

// SetHighContrast toggles the high-contrast preference.
func (s *Store) SetHighContrast(ctx context.Context, on bool) error {
	return s.update(ctx, "display.highContrast", func(st *Settings) error {
		st.Display.HighContrast = on
		return nil
	})
}
