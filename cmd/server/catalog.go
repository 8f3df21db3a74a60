package main

import (
	"net/http"

	"github.com/rasyidf/hustleflow/internal/catalog"
	"github.com/rasyidf/hustleflow/internal/currency"
	"github.com/rasyidf/hustleflow/internal/parameter"
	"github.com/rasyidf/hustleflow/internal/settings"
)

type itemView struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Category      catalog.Category `json:"category"`
	Price         float64          `json:"price"`
	Formatted     string           `json:"formatted"`
	Dependencies  []string         `json:"dependencies,omitempty"`
	Subcomponents []itemView       `json:"subcomponents,omitempty"`
}

type parametersResponse struct {
	Currency   string            `json:"currency"`
	Parameters parameter.Catalog `json:"parameters"`
	Edges      []parameter.Edge  `json:"edges"`
}

func (s *server) handleParameters(w http.ResponseWriter, r *http.Request) {
	st := s.settings.Snapshot()
	params := parameter.Resolve(s.parameters, st.Overrides())
	writeJSON(w, http.StatusOK, parametersResponse{
		Currency:   st.Currency,
		Parameters: params,
		Edges:      parameter.NewGraph(params).Edges(),
	})
}

func (s *server) handleItems(w http.ResponseWriter, r *http.Request) {
	st := s.settings.Snapshot()
	selectable := s.items.Selectable()
	out := make([]itemView, 0, len(selectable))
	for _, it := range selectable {
		view := s.itemView(it, st)
		for _, sub := range s.items.Subcomponents(it) {
			view.Subcomponents = append(view.Subcomponents, s.itemView(sub, st))
		}
		out = append(out, view)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"currency": st.Currency,
		"items":    out,
	})
}

func (s *server) itemView(it catalog.Item, st settings.Settings) itemView {
	price := currency.Convert(it.AdjustedPrice(), currency.Base, st.Currency, st.ExchangeRates)
	return itemView{
		ID:           it.ID,
		Name:         it.Name,
		Description:  it.Description,
		Category:     it.Category,
		Price:        price,
		Formatted:    currency.Format(price, st.Currency),
		Dependencies: it.Dependencies,
	}
}
