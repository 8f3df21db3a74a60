package currency

import (
	"fmt"
	"strings"
)

// Base is the currency catalog prices are declared in.
const Base = "USD"

// Rates maps a currency code to its rate relative to Base (Base itself is 1).
type Rates map[string]float64

// DefaultRates returns the rate table a fresh installation starts with.
func DefaultRates() Rates {
	return Rates{
		"USD": 1,
		"EUR": 0.92,
		"GBP": 0.79,
		"IDR": 15600,
	}
}

// Rate returns the rate for code, falling back to 1 when the code is unknown.
func (r Rates) Rate(code string) float64 {
	if rate, ok := r[strings.ToUpper(code)]; ok {
		return rate
	}
	return 1
}

// Has reports whether the table holds a rate for code.
func (r Rates) Has(code string) bool {
	_, ok := r[strings.ToUpper(code)]
	return ok
}

// Clone returns an independent copy of the table.
func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Validate reports the first non-positive rate in the table.
func (r Rates) Validate() error {
	for code, rate := range r {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("currency code is required")
		}
		if rate <= 0 {
			return fmt.Errorf("rate for %s must be greater than 0", code)
		}
	}
	return nil
}

// Convert converts amount between currencies through the base currency.
// A currency missing from rates is treated as having a rate of 1; rates must be
// strictly positive.
func Convert(amount float64, from, to string, rates Rates) float64 {
	if strings.EqualFold(from, to) {
		return amount
	}
	return (amount / rates.Rate(from)) * rates.Rate(to)
}
