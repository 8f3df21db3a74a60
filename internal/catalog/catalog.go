package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed items.yaml
var defaultItems string

// Catalog is an immutable, ordered set of items indexed by id.
type Catalog struct {
	items []Item
	index map[string]int
	parts map[string]bool
}

type document struct {
	Items []rawItem `yaml:"items"`
}

type rawItem struct {
	Item     `yaml:",inline"`
	Metadata struct {
		TimeWeight       *float64 `yaml:"timeWeight"`
		ComplexityWeight *float64 `yaml:"complexityWeight"`
		EstimatedHours   *float64 `yaml:"estimatedHours"`
	} `yaml:"metadata"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Load(strings.NewReader(defaultItems))
}

// Load parses a YAML catalog document and validates it.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make([]Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		it := raw.Item
		it.Metadata = Metadata{
			TimeWeight:       valueOr(raw.Metadata.TimeWeight, 1),
			ComplexityWeight: valueOr(raw.Metadata.ComplexityWeight, 1),
			EstimatedHours:   raw.Metadata.EstimatedHours,
		}
		items = append(items, it)
	}

	return New(items)
}

// New builds a catalog from items after validating them.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, len(items)),
		index: make(map[string]int, len(items)),
		parts: make(map[string]bool),
	}
	copy(c.items, items)

	var errs []error
	for i, it := range c.items {
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("item %d: id is required", i))
			continue
		}
		if _, dup := c.index[it.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate item id %q", it.ID))
			continue
		}
		if it.Category != CategoryModule && it.Category != CategoryService {
			errs = append(errs, fmt.Errorf("%s: unknown category %q", it.ID, it.Category))
		}
		if it.BasePrice < 0 {
			errs = append(errs, fmt.Errorf("%s: base price must be >= 0", it.ID))
		}
		if it.Metadata.TimeWeight < 0 || it.Metadata.ComplexityWeight < 0 {
			errs = append(errs, fmt.Errorf("%s: weights must be >= 0", it.ID))
		}
		c.index[it.ID] = i
	}
	for _, it := range c.items {
		for _, dep := range it.Dependencies {
			if _, ok := c.index[dep]; !ok {
				errs = append(errs, fmt.Errorf("%s: unknown dependency %q", it.ID, dep))
			}
		}
		for _, sub := range it.Subcomponents {
			if _, ok := c.index[sub]; !ok {
				errs = append(errs, fmt.Errorf("%s: unknown subcomponent %q", it.ID, sub))
			}
			c.parts[sub] = true
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return c, nil
}

// Lookup returns the item with id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns every item, sub-items included, in declaration order.
func (c *Catalog) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Selectable returns the items offered for selection: modules and services that are
// not sub-items of another module.
func (c *Catalog) Selectable() []Item {
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if !c.IsSubcomponent(it.ID) {
			out = append(out, it)
		}
	}
	return out
}

// IsSubcomponent reports whether id is declared as a sub-item of some other item.
func (c *Catalog) IsSubcomponent(id string) bool {
	return c.parts[id]
}

// Subcomponents resolves the declared sub-items of it, skipping unknown ids.
func (c *Catalog) Subcomponents(it Item) []Item {
	out := make([]Item, 0, len(it.Subcomponents))
	for _, id := range it.Subcomponents {
		if sub, ok := c.Lookup(id); ok {
			out = append(out, sub)
		}
	}
	return out
}

// EffectivePrice is the larger of the item's adjusted price and the summed adjusted
// prices of the selected sub-items. Sub-item ids not declared on the item are ignored.
func (c *Catalog) EffectivePrice(it Item, selectedSubs []string) float64 {
	adjusted := it.AdjustedPrice()
	subTotal := 0.0
	for _, id := range selectedSubs {
		if !it.HasSubcomponent(id) {
			continue
		}
		if sub, ok := c.Lookup(id); ok {
			subTotal += sub.AdjustedPrice()
		}
	}
	if subTotal > adjusted {
		return subTotal
	}
	return adjusted
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
