package parameter

// Edge is one declared influence of Source on Target.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is the affects adjacency list of a catalog. It may contain cycles.
type Graph struct {
	edges []Edge
}

// NewGraph collects the affects declarations of c in catalog order.
func NewGraph(c Catalog) Graph {
	var g Graph
	for _, p := range c {
		for _, a := range p.Affects {
			g.edges = append(g.edges, Edge{Source: p.ID, Target: a.Target, Weight: a.Weight})
		}
	}
	return g
}

// Edges returns the edges in catalog order.
func (g Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// WeightedEffect is the contribution of src (holding value) to target.
func WeightedEffect(src Parameter, value Value, target string) float64 {
	w, ok := src.Weight(target)
	if !ok {
		return 0
	}
	return Normalize(src, value) * w
}

// Effect sums the contributions of every other parameter on target, reading each
// source's raw value once. Cycles are evaluated in this single pass.
func (g Graph) Effect(c Catalog, values Values, target string) float64 {
	total := 0.0
	for _, e := range g.edges {
		if e.Target != target || e.Source == target {
			continue
		}
		src, ok := c.Lookup(e.Source)
		if !ok {
			continue
		}
		total += Normalize(src, values[e.Source]) * e.Weight
	}
	return total
}

// CombinedEffect sums the weighted effects of every other parameter on target.
func CombinedEffect(c Catalog, values Values, target string) float64 {
	return NewGraph(c).Effect(c, values, target)
}
