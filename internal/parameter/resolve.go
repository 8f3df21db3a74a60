package parameter

// Overrides are the user-configured adjustments applied on top of the catalog.
type Overrides struct {
	Biases       map[string]float64
	Defaults     Values
	BaseRate     *float64
	Duration     *float64
	DurationUnit Unit
}

// Resolve returns a copy of c with bias and default overrides applied. The base rate
// and duration defaults come from their dedicated settings when present.
func Resolve(c Catalog, o Overrides) Catalog {
	out := c.Clone()
	for i := range out {
		p := &out[i]
		if bias, ok := o.Biases[p.ID]; ok {
			p.Bias = bias
		}
		if v, ok := o.Defaults[p.ID]; ok && !v.IsZero() {
			p.DefaultValue = v
		}
		switch p.ID {
		case BaseRateID:
			if o.BaseRate != nil {
				p.DefaultValue = Number(*o.BaseRate)
			}
		case DurationID:
			if o.Duration != nil {
				p.DefaultValue = Number(*o.Duration)
			}
			if o.DurationUnit != "" {
				p.Unit = string(o.DurationUnit)
			}
		}
	}
	return out
}
