package view

import (
	"net/url"
	"strings"

	"finitefield.org/showcase-web/internal/actions"
	"finitefield.org/showcase-web/internal/catalog"
)

// Texts carries the localized labels the projections need. The zero value is usable
// but renders empty labels.
type Texts struct {
	AllLabel      string
	NoResults     string
	PriceFallback string
	OpenLabel     string
	CopyLabel     string
	ShareLabel    string
	ShareText     string
	ErrorFormat   string
	ManifestError string
	GenericError  string
}

// Card is the projection of a product painted into the grid.
type Card struct {
	ID             string
	Title          string
	Image          string
	Price          string
	HasPrice       bool
	Category       string
	FilterTitle    string
	FilterKeywords string

	// LinkURL is the validated affiliate link the browser copies or shares. It is
	// empty when the product has no usable link.
	LinkURL   string
	ShareText string

	OpenURL  string
	CopyURL  string
	ShareURL string

	OpenLabel  string
	CopyLabel  string
	ShareLabel string
}

// Grid is the display area model: either cards or the "no results" placeholder.
type Grid struct {
	Cards       []Card
	Empty       bool
	Placeholder string
}

// Count returns the number of painted cards.
func (g Grid) Count() int { return len(g.Cards) }

// BuildGrid projects products into a fresh grid. The result depends only on its
// inputs so repeated calls yield identical grids.
func BuildGrid(products []catalog.Product, texts Texts) Grid {
	cards := BuildCards(products, texts)
	if len(cards) == 0 {
		return Grid{Cards: []Card{}, Empty: true, Placeholder: texts.NoResults}
	}
	return Grid{Cards: cards}
}

// BuildCards maps products to cards preserving order.
func BuildCards(products []catalog.Product, texts Texts) []Card {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, BuildCard(p, texts))
	}
	return cards
}

// BuildCard projects a single product.
func BuildCard(p catalog.Product, texts Texts) Card {
	price := strings.TrimSpace(p.Price)
	hasPrice := price != ""
	if !hasPrice {
		price = texts.PriceFallback
	}
	id := url.PathEscape(p.ID)
	link, _ := actions.OpenTarget(p)
	return Card{
		ID:             p.ID,
		Title:          p.Title,
		Image:          p.Image,
		Price:          price,
		HasPrice:       hasPrice,
		Category:       p.CategoryKey(),
		FilterTitle:    p.SearchTitle(),
		FilterKeywords: p.SearchKeywords(),
		LinkURL:        link,
		ShareText:      strings.ReplaceAll(texts.ShareText, "{title}", p.Title),
		OpenURL:        "/go/" + id,
		CopyURL:        "/products/" + id + "/copy",
		ShareURL:       "/products/" + id + "/share",
		OpenLabel:      texts.OpenLabel,
		CopyLabel:      texts.CopyLabel,
		ShareLabel:     texts.ShareLabel,
	}
}
