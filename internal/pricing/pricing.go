package pricing

import (
	"math"
	"strings"

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
)

// Breakdown labels for the non-parameter lines.
const (
	LabelBasePrice = "Base Price"
	LabelItems     = "Modules & Services"
	LabelDiscount  = "Discount"
	LabelMinimum   = "Minimum Charge"
)

// Input represents everything a calculation reads. Parameters must already carry the
// settings overrides (see parameter.Resolve).
type Input struct {
	Parameters   parameter.Catalog
	Values       parameter.Values
	DurationUnit parameter.Unit
	Items        []catalog.SelectedItem
	ItemCurrency string
	Currency     string
	Rates        currency.Rates
	Discount     float64
	FloorAtBase  bool
}

// Line is one labeled amount of the breakdown. Discount lines are negative.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Adjustment records how one parameter moved the price.
type Adjustment struct {
	ParameterID    string  `json:"parameterId"`
	Label          string  `json:"label"`
	Normalized     float64 `json:"normalized"`
	CombinedEffect float64 `json:"combinedEffect"`
	Bias           float64 `json:"bias"`
	Factor         float64 `json:"factor"`
	Amount         float64 `json:"amount"`
}

// ItemPrice is a selected item's effective price in the display currency.
type ItemPrice struct {
	ItemID string  `json:"itemId"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Breakdown contains all intermediate values of the calculation.
type Breakdown struct {
	HourlyRate     float64      `json:"hourlyRate"`
	Hours          float64      `json:"hours"`
	BasePrice      float64      `json:"basePrice"`
	EffectsFactor  float64      `json:"effectsFactor"`
	ParameterPrice float64      `json:"parameterPrice"`
	Adjustments    []Adjustment `json:"adjustments"`
	Items          []ItemPrice  `json:"items"`
	ItemsPrice     float64      `json:"itemsPrice"`
	Subtotal       float64      `json:"subtotal"`
	DiscountAmount float64      `json:"discountAmount"`
	FloorApplied   bool         `json:"floorApplied"`
	Lines          []Line       `json:"lines"`
}

// Totals contains roll-up values from the calculation.
type Totals struct {
	Total    float64 `json:"total"`
	Rounded  float64 `json:"rounded"`
	Currency string  `json:"currency"`
}

// Result groups the full pricing output.
type Result struct {
	Breakdown Breakdown `json:"breakdown"`
	Totals    Totals    `json:"totals"`
}

var excluded = map[string]bool{
	parameter.BaseRateID: true,
	parameter.DurationID: true,
	parameter.DiscountID: true,
}

// Calculate computes the project price. It is pure: the same input always yields
// the same result.
func Calculate(in Input) Result {
	values := in.Values.Merge(in.Parameters)
	graph := parameter.NewGraph(in.Parameters)

	hourlyRate := values.Number(parameter.BaseRateID)
	hours := parameter.DurationToHours(values.Number(parameter.DurationID), durationUnit(in))
	basePrice := hourlyRate * hours

	lines := []Line{{Label: LabelBasePrice, Amount: basePrice}}
	effectsFactor := 1.0
	running := basePrice
	adjustments := make([]Adjustment, 0, len(in.Parameters))
	for _, p := range in.Parameters {
		if excluded[p.ID] {
			continue
		}
		normalized := parameter.Normalize(p, values[p.ID])
		combined := graph.Effect(in.Parameters, values, p.ID)
		factor := 1 + (normalized+combined)*p.Bias
		effectsFactor *= factor

		amount := running * (factor - 1)
		running += amount
		adjustments = append(adjustments, Adjustment{
			ParameterID:    p.ID,
			Label:          p.Name,
			Normalized:     normalized,
			CombinedEffect: combined,
			Bias:           p.Bias,
			Factor:         factor,
			Amount:         amount,
		})
		if amount != 0 {
			lines = append(lines, Line{Label: p.Name, Amount: amount})
		}
	}
	parameterPrice := basePrice * effectsFactor

	itemCurrency := in.ItemCurrency
	if itemCurrency == "" {
		itemCurrency = currency.Base
	}
	items := make([]ItemPrice, 0, len(in.Items))
	itemsPrice := 0.0
	for _, sel := range in.Items {
		amount := currency.Convert(sel.EffectivePrice, itemCurrency, in.Currency, in.Rates)
		items = append(items, ItemPrice{ItemID: sel.Item.ID, Label: sel.Item.Name, Amount: amount})
		itemsPrice += amount
	}
	if itemsPrice != 0 {
		lines = append(lines, Line{Label: LabelItems, Amount: itemsPrice})
	}

	subtotal := parameterPrice + itemsPrice
	discount := clampPercent(in.Discount)
	total := subtotal * (1 - discount/100)
	discountAmount := subtotal - total
	if discountAmount != 0 {
		lines = append(lines, Line{Label: LabelDiscount, Amount: -discountAmount})
	}

	floorApplied := false
	if in.FloorAtBase && total < basePrice {
		lines = append(lines, Line{Label: LabelMinimum, Amount: basePrice - total})
		total = basePrice
		floorApplied = true
	}

	return Result{
		Breakdown: Breakdown{
			HourlyRate:     hourlyRate,
			Hours:          hours,
			BasePrice:      basePrice,
			EffectsFactor:  effectsFactor,
			ParameterPrice: parameterPrice,
			Adjustments:    adjustments,
			Items:          items,
			ItemsPrice:     itemsPrice,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			FloorApplied:   floorApplied,
			Lines:          lines,
		},
		Totals: Totals{
			Total:    total,
			Rounded:  math.Round(total),
			Currency: strings.ToUpper(in.Currency),
		},
	}
}

func durationUnit(in Input) parameter.Unit {
	if in.DurationUnit != "" {
		return in.DurationUnit
	}
	if p, ok := in.Parameters.Lookup(parameter.DurationID); ok {
		if u, err := parameter.ParseUnit(p.Unit); err == nil {
			return u
		}
	}
	return parameter.Days
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
