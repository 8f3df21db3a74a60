package pricing

import (
	"fmt"
	"strings"

	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
)

// Summary renders a plain-text quote for printing or PDF conversion.
func Summary(in Input, res Result) string {
	code := res.Totals.Currency
	values := in.Values.Merge(in.Parameters)

	var b strings.Builder
	b.WriteString("Project estimate\n")
	fmt.Fprintf(&b, "Total: %s\n", currency.Format(res.Totals.Rounded, code))
	fmt.Fprintf(&b, "Base: %s/h x %g h = %s\n",
		currency.Format(res.Breakdown.HourlyRate, code),
		res.Breakdown.Hours,
		currency.Format(res.Breakdown.BasePrice, code))

	b.WriteString("\nParameters:\n")
	for _, p := range in.Parameters {
		if p.ID == parameter.BaseRateID || p.ID == parameter.DiscountID {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.Name, FormatValue(p, values[p.ID]))
	}

	if len(res.Breakdown.Items) > 0 {
		b.WriteString("\nModules & Services:\n")
		for _, it := range res.Breakdown.Items {
			fmt.Fprintf(&b, "- %s: %s\n", it.Label, currency.Format(it.Amount, code))
		}
	}

	b.WriteString("\nBreakdown:\n")
	for _, line := range res.Breakdown.Lines {
		fmt.Fprintf(&b, "- %s: %s\n", line.Label, currency.Format(line.Amount, code))
	}
	if res.Breakdown.DiscountAmount != 0 {
		fmt.Fprintf(&b, "\nDiscount: %g%%\n", clampPercent(in.Discount))
	}

	return b.String()
}

// FormatValue renders a parameter value for display.
func FormatValue(p parameter.Parameter, v parameter.Value) string {
	switch p.Kind {
	case parameter.KindToggle:
		if on, _ := v.Bool(); on {
			return "Yes"
		}
		return "No"
	case parameter.KindSelect, parameter.KindOptions:
		if list, ok := v.Strings(); ok {
			labels := make([]string, 0, len(list))
			for _, item := range list {
				labels = append(labels, p.OptionLabel(item))
			}
			return strings.Join(labels, ", ")
		}
		s, _ := v.Str()
		return p.OptionLabel(s)
	}
	if p.Unit != "" {
		return v.String() + " " + p.Unit
	}
	return v.String()
}
