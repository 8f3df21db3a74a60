package parameter

import (
	"encoding/json"
	"fmt"
)

// Kind is the input type of a project parameter.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindSelect
	KindToggle
	KindOptions
	KindCustom
)

var kindNames = map[Kind]string{
	KindNumber:  "number",
	KindSelect:  "select",
	KindToggle:  "toggle",
	KindOptions: "options",
	KindCustom:  "custom",
}

// String returns the kind name used in JSON documents.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter kind %q", name)
}

// Well-known parameter ids the pricing engine treats specially.
const (
	BaseRateID   = "baseRate"
	DurationID   = "duration"
	DiscountID   = "discount"
	ComplexityID = "complexity"
	UrgencyID    = "urgency"
)

// Option is one choice of a select or options parameter.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Affect declares that a parameter influences Target with Weight in [-1, 1].
type Affect struct {
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Parameter is one entry of the project parameter catalog.
type Parameter struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Kind         Kind     `json:"kind"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Step         *float64 `json:"step,omitempty"`
	DefaultValue Value    `json:"defaultValue"`
	Bias         float64  `json:"bias"`
	Unit         string   `json:"unit,omitempty"`
	Options      []Option `json:"options,omitempty"`
	Affects      []Affect `json:"affects,omitempty"`
}

// Weight returns the weight p declares on target, if any.
func (p Parameter) Weight(target string) (float64, bool) {
	for _, a := range p.Affects {
		if a.Target == target {
			return a.Weight, true
		}
	}
	return 0, false
}

// OptionLabel returns the display label for an option value.
func (p Parameter) OptionLabel(value string) string {
	for _, o := range p.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Catalog is an ordered parameter collection. Order drives evaluation order.
type Catalog []Parameter

// Lookup finds a parameter by id.
func (c Catalog) Lookup(id string) (Parameter, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Parameter{}, false
}

// Clone returns a copy that shares no slices with c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for i, p := range c {
		p.Options = append([]Option(nil), p.Options...)
		p.Affects = append([]Affect(nil), p.Affects...)
		out[i] = p
	}
	return out
}

// Defaults returns each parameter's default value keyed by id.
func (c Catalog) Defaults() Values {
	out := make(Values, len(c))
	for _, p := range c {
		out[p.ID] = p.DefaultValue
	}
	return out
}

// Values holds current parameter values keyed by parameter id.
type Values map[string]Value

// Merge returns the defaults of c overlaid with v. Ids unknown to c are dropped.
func (v Values) Merge(c Catalog) Values {
	out := c.Defaults()
	for id, val := range v {
		if _, ok := out[id]; ok && !val.IsZero() {
			out[id] = val
		}
	}
	return out
}

// Number returns the numeric value stored under id, or 0.
func (v Values) Number(id string) float64 {
	n, _ := v[id].Float()
	return n
}

func ptr(f float64) *float64 { return &f }
