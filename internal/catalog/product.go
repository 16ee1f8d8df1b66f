package catalog

import "strings"

// AllCategories is the sentinel category that disables the category predicate.
const AllCategories = "all"

// Product is an enriched product record. Products are immutable once loaded.
type Product struct {
	ID           string
	Title        string
	Image        string
	Price        string
	AffiliateURL string
	Keywords     []string
	CustomTags   []string
}

// Category derives the single category used for tag matching: the first keyword,
// else the first custom tag, else the empty string.
func (p Product) Category() string {
	if len(p.Keywords) > 0 {
		return p.Keywords[0]
	}
	if len(p.CustomTags) > 0 {
		return p.CustomTags[0]
	}
	return ""
}

// CategoryKey is the lower-cased derived category.
func (p Product) CategoryKey() string {
	return strings.ToLower(p.Category())
}

// SearchTitle is the lower-cased title compared against search terms.
func (p Product) SearchTitle() string {
	return strings.ToLower(p.Title)
}

// SearchKeywords joins custom tags followed by keywords, lower-cased and comma separated.
func (p Product) SearchKeywords() string {
	parts := make([]string, 0, len(p.CustomTags)+len(p.Keywords))
	for _, tag := range p.CustomTags {
		parts = append(parts, strings.ToLower(tag))
	}
	for _, kw := range p.Keywords {
		parts = append(parts, strings.ToLower(kw))
	}
	return strings.Join(parts, ",")
}

// State is the application state populated once by the loader.
type State struct {
	Products   []Product
	Categories []string
}

// Lookup returns the product with the given id.
func (s State) Lookup(id string) (Product, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, false
	}
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ResolveCategory maps a requested category onto a known tag value. Unknown or empty
// values fall back to AllCategories.
func (s State) ResolveCategory(requested string) string {
	key := strings.ToLower(strings.TrimSpace(requested))
	if key == "" || key == AllCategories {
		return AllCategories
	}
	for _, c := range s.Categories {
		if strings.ToLower(c) == key {
			return key
		}
	}
	return AllCategories
}
