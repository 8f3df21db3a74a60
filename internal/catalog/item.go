package catalog

// Category separates buildable modules from billable services.
type Category string

const (
	CategoryModule  Category = "module"
	CategoryService Category = "service"
)

// Metadata carries the weights that scale an item's base price.
type Metadata struct {
	TimeWeight       float64  `json:"timeWeight"`
	ComplexityWeight float64  `json:"complexityWeight"`
	EstimatedHours   *float64 `json:"estimatedHours,omitempty"`
}

// Item is a priced catalog line: a module, a service, or a sub-item of a module.
type Item struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	BasePrice     float64  `json:"basePrice" yaml:"basePrice"`
	Category      Category `json:"category" yaml:"category"`
	Dependencies  []string `json:"dependencies,omitempty" yaml:"dependencies"`
	Subcomponents []string `json:"subcomponents,omitempty" yaml:"subcomponents"`
	Metadata      Metadata `json:"metadata" yaml:"-"`
}

// TotalWeight is the product of the time and complexity weights.
func (it Item) TotalWeight() float64 {
	return it.Metadata.TimeWeight * it.Metadata.ComplexityWeight
}

// AdjustedPrice is the base price scaled by the item's weights.
func (it Item) AdjustedPrice() float64 {
	return it.BasePrice * it.TotalWeight()
}

// HasSubcomponent reports whether id is declared as a sub-item of it.
func (it Item) HasSubcomponent(id string) bool {
	for _, sub := range it.Subcomponents {
		if sub == id {
			return true
		}
	}
	return false
}
