package parameter

import (
	"errors"
	"fmt"
)

var valueTypes = map[Kind][]ValueType{
	KindNumber:  {NumberValue},
	KindSelect:  {StringValue},
	KindToggle:  {BoolValue},
	KindOptions: {StringValue, ListValue},
	KindCustom:  {NumberValue, StringValue, BoolValue, ListValue},
}

// Validate reports every structural problem in the catalog.
func (c Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c))
	for _, p := range c {
		if p.ID == "" {
			errs = append(errs, errors.New("parameter id is required"))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate parameter id %q", p.ID))
		}
		seen[p.ID] = true
	}

	for _, p := range c {
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			errs = append(errs, fmt.Errorf("%s: min %v is greater than max %v", p.ID, *p.Min, *p.Max))
		}
		if !accepts(p.Kind, p.DefaultValue.Type()) {
			errs = append(errs, fmt.Errorf("%s: default value does not match kind %s", p.ID, p.Kind))
		}
		targets := make(map[string]bool, len(p.Affects))
		for _, a := range p.Affects {
			if targets[a.Target] {
				errs = append(errs, fmt.Errorf("%s: affects %s more than once", p.ID, a.Target))
			}
			targets[a.Target] = true
			if a.Weight < -1 || a.Weight > 1 {
				errs = append(errs, fmt.Errorf("%s: weight on %s out of range [-1, 1]", p.ID, a.Target))
			}
			if !seen[a.Target] {
				errs = append(errs, fmt.Errorf("%s: affects unknown parameter %q", p.ID, a.Target))
			}
		}
	}

	return errors.Join(errs...)
}

// Accepts reports whether v is a valid value for p.
func (p Parameter) Accepts(v Value) bool {
	return accepts(p.Kind, v.Type())
}

func accepts(k Kind, t ValueType) bool {
	for _, allowed := range valueTypes[k] {
		if allowed == t {
			return true
		}
	}
	return false
}
