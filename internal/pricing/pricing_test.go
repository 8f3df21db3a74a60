package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func f(v float64) *float64 { return &v }

func basicCatalog() parameter.Catalog {
	return parameter.Catalog{
		{ID: parameter.BaseRateID, Name: "Base Rate", Kind: parameter.KindNumber, DefaultValue: parameter.Number(50)},
		{ID: parameter.DurationID, Name: "Duration", Kind: parameter.KindNumber, Min: f(1), Max: f(180), DefaultValue: parameter.Number(5), Unit: "days"},
		{ID: parameter.DiscountID, Name: "Discount", Kind: parameter.KindNumber, Min: f(0), Max: f(100), DefaultValue: parameter.Number(0), Bias: -0.5},
	}
}

func itemCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	one := catalog.Metadata{TimeWeight: 1, ComplexityWeight: 1}
	c, err := catalog.New([]catalog.Item{
		{ID: "landing", Name: "Landing", Category: catalog.CategoryModule, BasePrice: 500, Metadata: one},
		{ID: "shop", Name: "Shop", Category: catalog.CategoryModule, BasePrice: 800, Subcomponents: []string{"cart", "pay"}, Metadata: one},
		{ID: "cart", Name: "Cart", Category: catalog.CategoryModule, BasePrice: 600, Metadata: one},
		{ID: "pay", Name: "Payments", Category: catalog.CategoryModule, BasePrice: 700, Metadata: one},
	})
	require.NoError(t, err)
	return c
}

func TestCalculate_BasePriceFromRateAndDuration(t *testing.T) {
	result := Calculate(Input{Parameters: basicCatalog(), Currency: "USD", Rates: currency.DefaultRates()})

	nearlyEqual(t, "hours", result.Breakdown.Hours, 40)
	nearlyEqual(t, "basePrice", result.Breakdown.BasePrice, 2000)
	nearlyEqual(t, "effectsFactor", result.Breakdown.EffectsFactor, 1)
	nearlyEqual(t, "total", result.Totals.Total, 2000)
	assert.Equal(t, []Line{{Label: LabelBasePrice, Amount: 2000}}, result.Breakdown.Lines)
}

func TestCalculate_DefaultCatalogScenario(t *testing.T) {
	rate, duration := 50.0, 5.0
	params := parameter.Resolve(parameter.DefaultCatalog(), parameter.Overrides{
		Biases:       map[string]float64{parameter.ComplexityID: 0.1},
		BaseRate:     &rate,
		Duration:     &duration,
		DurationUnit: parameter.Days,
	})

	result := Calculate(Input{Parameters: params, Currency: "USD", Rates: currency.DefaultRates()})

	d := 4.0 / 179
	complexity := 1 + (1+0.6+0.2*d)*0.1
	urgency := 1 + (1-0.5*d)*0.4
	team := 1 + (0+0.3*d+0.6+0.7+0.4)*0.2
	quality := 1 + (1+0.4)*0.4
	want := 2000 * complexity * urgency * team * quality

	nearlyEqual(t, "basePrice", result.Breakdown.BasePrice, 2000)
	nearlyEqual(t, "effectsFactor", result.Breakdown.EffectsFactor, complexity*urgency*team*quality)
	nearlyEqual(t, "total", result.Totals.Total, want)
	assert.Equal(t, math.Round(want), result.Totals.Rounded)
	assert.Len(t, result.Breakdown.Adjustments, 6)
}

func TestCalculate_ModulesConvertedAndDiscounted(t *testing.T) {
	sel := catalog.NewSelection(itemCatalog(t))
	sel.Select("landing")
	sel.Select("shop")

	result := Calculate(Input{
		Parameters: basicCatalog(),
		Items:      sel.Items(),
		Currency:   "EUR",
		Rates:      currency.Rates{"USD": 1, "EUR": 0.92},
		Discount:   10,
	})

	nearlyEqual(t, "itemsPrice", result.Breakdown.ItemsPrice, 1196)
	nearlyEqual(t, "subtotal", result.Breakdown.Subtotal, 3196)
	nearlyEqual(t, "discountAmount", result.Breakdown.DiscountAmount, 319.6)
	nearlyEqual(t, "total", result.Totals.Total, 2876.4)
	assert.Equal(t, 2876.0, result.Totals.Rounded)
	assert.Equal(t, "EUR", result.Totals.Currency)

	last := result.Breakdown.Lines[len(result.Breakdown.Lines)-1]
	assert.Equal(t, LabelDiscount, last.Label)
	assert.Less(t, last.Amount, 0.0)
}

func TestCalculate_SubcomponentSumOverridesItemPrice(t *testing.T) {
	sel := catalog.NewSelection(itemCatalog(t))
	sel.Select("shop")
	sel.SetSubcomponent("shop", "cart", true)
	sel.SetSubcomponent("shop", "pay", true)

	result := Calculate(Input{Parameters: basicCatalog(), Items: sel.Items(), Currency: "USD", Rates: currency.DefaultRates()})

	require.Len(t, result.Breakdown.Items, 1)
	nearlyEqual(t, "shop", result.Breakdown.Items[0].Amount, 1300)
	nearlyEqual(t, "total", result.Totals.Total, 3300)
}

func TestCalculate_DiscountIsStrictlyMonotonic(t *testing.T) {
	in := Input{Parameters: parameter.DefaultCatalog(), Currency: "USD", Rates: currency.DefaultRates()}

	previous := math.Inf(1)
	for discount := 0.0; discount < 100; discount += 0.5 {
		in.Discount = discount
		total := Calculate(in).Totals.Total
		require.Less(t, total, previous, "discount %v", discount)
		previous = total
	}
}

func TestCalculate_SelectThenDeselectLeavesTotalUnchanged(t *testing.T) {
	sel := catalog.NewSelection(itemCatalog(t))
	in := Input{Parameters: parameter.DefaultCatalog(), Currency: "GBP", Rates: currency.DefaultRates(), Discount: 15}

	in.Items = sel.Items()
	before := Calculate(in).Totals.Total

	sel.Select("shop")
	sel.SetSubcomponent("shop", "cart", true)
	in.Items = sel.Items()
	with := Calculate(in).Totals.Total
	sel.Deselect("shop")
	in.Items = sel.Items()
	after := Calculate(in).Totals.Total

	assert.Greater(t, with, before)
	assert.Equal(t, before, after)
}

func TestCalculate_MissingParametersContributeZero(t *testing.T) {
	params := parameter.Catalog{
		{ID: "complexity", Name: "Complexity", Kind: parameter.KindSelect, DefaultValue: parameter.String("high"), Bias: 0.2},
	}

	result := Calculate(Input{Parameters: params, Currency: "USD", Rates: currency.DefaultRates()})

	nearlyEqual(t, "basePrice", result.Breakdown.BasePrice, 0)
	nearlyEqual(t, "effectsFactor", result.Breakdown.EffectsFactor, 1.3)
	nearlyEqual(t, "total", result.Totals.Total, 0)
}

func TestCalculate_FloorAtBasePrice(t *testing.T) {
	in := Input{Parameters: basicCatalog(), Currency: "USD", Rates: currency.DefaultRates(), Discount: 25}

	plain := Calculate(in)
	nearlyEqual(t, "plain total", plain.Totals.Total, 1500)
	assert.False(t, plain.Breakdown.FloorApplied)

	in.FloorAtBase = true
	floored := Calculate(in)
	nearlyEqual(t, "floored total", floored.Totals.Total, 2000)
	assert.True(t, floored.Breakdown.FloorApplied)
	assert.Equal(t, Line{Label: LabelMinimum, Amount: 500}, floored.Breakdown.Lines[len(floored.Breakdown.Lines)-1])
}

func TestCalculate_DiscountIsClamped(t *testing.T) {
	in := Input{Parameters: basicCatalog(), Currency: "USD", Rates: currency.DefaultRates(), Discount: 150}
	nearlyEqual(t, "over 100", Calculate(in).Totals.Total, 0)

	in.Discount = -20
	nearlyEqual(t, "negative", Calculate(in).Totals.Total, 2000)
}

func TestCalculate_LinesSumToTotal(t *testing.T) {
	sel := catalog.NewSelection(itemCatalog(t))
	sel.Select("landing")
	values := parameter.Values{
		parameter.UrgencyID: parameter.String("urgent"),
		"needsTesting":      parameter.Bool(true),
		"teamSize":          parameter.Number(4),
	}
	in := Input{
		Parameters: parameter.DefaultCatalog(),
		Values:     values,
		Items:      sel.Items(),
		Currency:   "IDR",
		Rates:      currency.DefaultRates(),
		Discount:   12.5,
	}

	result := Calculate(in)
	sum := 0.0
	for _, line := range result.Breakdown.Lines {
		sum += line.Amount
	}
	assert.InDelta(t, result.Totals.Total, sum, 1e-6)
	assert.Equal(t, result, Calculate(in))
}

func TestCalculate_DurationUnitFromInputOverridesCatalog(t *testing.T) {
	in := Input{Parameters: basicCatalog(), DurationUnit: parameter.Weeks, Currency: "USD", Rates: currency.DefaultRates()}

	nearlyEqual(t, "basePrice", Calculate(in).Breakdown.BasePrice, 50*5*40)
}
