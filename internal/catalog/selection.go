package catalog

// Selection is the per-session set of chosen items, kept in selection order, with the
// sub-items included for each.
type Selection struct {
	catalog *Catalog
	order   []string
	subs    map[string][]string
}

// SelectedItem pairs a selected item with its included sub-items and effective price.
type SelectedItem struct {
	Item           Item
	Subcomponents  []string
	EffectivePrice float64
}

// NewSelection starts an empty selection over c.
func NewSelection(c *Catalog) *Selection {
	return &Selection{catalog: c, subs: make(map[string][]string)}
}

// Select adds id to the selection. Unknown or already selected ids are ignored.
func (s *Selection) Select(id string) bool {
	if s.IsSelected(id) {
		return false
	}
	if _, ok := s.catalog.Lookup(id); !ok {
		return false
	}
	s.order = append(s.order, id)
	return true
}

// Deselect removes id and forgets its sub-item choices.
func (s *Selection) Deselect(id string) bool {
	for i, sel := range s.order {
		if sel == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			delete(s.subs, id)
			return true
		}
	}
	return false
}

// IsSelected reports whether id is in the selection.
func (s *Selection) IsSelected(id string) bool {
	for _, sel := range s.order {
		if sel == id {
			return true
		}
	}
	return false
}

// SetSubcomponent includes or excludes subID from the price of the selected item id.
// It is a no-op when id is not selected or does not declare subID.
func (s *Selection) SetSubcomponent(id, subID string, included bool) bool {
	if !s.IsSelected(id) {
		return false
	}
	it, _ := s.catalog.Lookup(id)
	if !it.HasSubcomponent(subID) {
		return false
	}

	current := s.subs[id]
	for i, sub := range current {
		if sub != subID {
			continue
		}
		if included {
			return false
		}
		s.subs[id] = append(current[:i:i], current[i+1:]...)
		return true
	}
	if !included {
		return false
	}
	s.subs[id] = append(current, subID)
	return true
}

// Subcomponents returns the sub-items included for id.
func (s *Selection) Subcomponents(id string) []string {
	return append([]string(nil), s.subs[id]...)
}

// IDs returns the selected item ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.order...)
}

// Items resolves the selection with each item's effective price.
func (s *Selection) Items() []SelectedItem {
	out := make([]SelectedItem, 0, len(s.order))
	for _, id := range s.order {
		it, ok := s.catalog.Lookup(id)
		if !ok {
			continue
		}
		subs := s.Subcomponents(id)
		out = append(out, SelectedItem{
			Item:           it,
			Subcomponents:  subs,
			EffectivePrice: s.catalog.EffectivePrice(it, subs),
		})
	}
	return out
}

// Total sums the effective prices of the selected items.
func (s *Selection) Total() float64 {
	total := 0.0
	for _, it := range s.Items() {
		total += it.EffectivePrice
	}
	return total
}

// MissingDependencies lists, per selected item, the declared dependencies that are
// not selected. It never blocks a selection.
func (s *Selection) MissingDependencies() map[string][]string {
	out := make(map[string][]string)
	for _, id := range s.order {
		it, _ := s.catalog.Lookup(id)
		for _, dep := range it.Dependencies {
			if !s.IsSelected(dep) {
				out[id] = append(out[id], dep)
			}
		}
	}
	return out
}
