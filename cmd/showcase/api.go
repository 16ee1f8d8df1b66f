package main

import (
	"net/http"

	"finitefield.org/showcase-web/internal/httpx"
	mw "finitefield.org/showcase-web/internal/middleware"
	"finitefield.org/showcase-web/internal/view"
)

type apiProduct struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Image    string   `json:"image,omitempty"`
	Price    string   `json:"price,omitempty"`
	Category string   `json:"category,omitempty"`
	URL      string   `json:"url"`
	Keywords []string `json:"keywords"`
}

type apiProductsResponse struct {
	Products   []apiProduct `json:"products"`
	Categories []string     `json:"categories"`
	Query      string       `json:"q,omitempty"`
	Category   string       `json:"category"`
	Tag        string       `json:"tag"`
	Total      int          `json:"total"`
}

// handleAPIProducts returns the visible set as JSON.
func (s *server) handleAPIProducts(w http.ResponseWriter, r *http.Request) {
	snap := s.catalog.Snapshot()
	switch {
	case snap.Loading():
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_loading", "catalog is still loading", http.StatusServiceUnavailable))
		return
	case snap.Failed():
		msg := view.LoadErrorMessage(snap.Err, viewTexts(s.bundle, mw.Lang(r)))
		httpx.WriteError(r.Context(), w, httpx.NewError("catalog_unavailable", msg, http.StatusServiceUnavailable))
		return
	}

	search, category := filterParams(r)
	products := visible(snap, search, category)
	resp := apiProductsResponse{
		Products:   make([]apiProduct, 0, len(products)),
		Categories: snap.State.Categories,
		Query:      search,
		Category:   category,
		Tag:        snap.State.ResolveCategory(category),
		Total:      len(products),
	}
	for _, p := range products {
		keywords := p.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		resp.Products = append(resp.Products, apiProduct{
			ID:       p.ID,
			Title:    p.Title,
			Image:    p.Image,
			Price:    p.Price,
			Category: p.Category(),
			URL:      p.AffiliateURL,
			Keywords: keywords,
		})
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
