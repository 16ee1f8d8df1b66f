package catalog

import "strings"

// Filter returns the products matching both the search term and the active category,
// preserving their original order. The search term is trimmed and compared
// case-insensitively as a substring of the title or the joined keyword string; an
// empty term matches everything. AllCategories disables the category predicate.
func Filter(products []Product, searchTerm, activeCategory string) []Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	category := strings.ToLower(activeCategory)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !MatchesSearch(p, term) {
			continue
		}
		if category != AllCategories && p.CategoryKey() != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesSearch reports whether the already lower-cased term occurs in the product
// title or keyword string.
func MatchesSearch(p Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(p.SearchTitle(), term) || strings.Contains(p.SearchKeywords(), term)
}
