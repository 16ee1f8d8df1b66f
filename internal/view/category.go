package view

import (
	"net/url"
	"strings"

	"finitefield.org/showcase-web/internal/catalog"
)

// CategoryTag is one selectable filter tag.
type CategoryTag struct {
	Label    string
	Value    string
	Selected bool
}

// BuildCategoryTags returns the implicit "all" tag followed by one tag per category in
// server order. Exactly one tag is selected: the one matching active, or "all" when
// active is empty or unknown.
func BuildCategoryTags(categories []string, active, allLabel string) []CategoryTag {
	active = strings.ToLower(strings.TrimSpace(active))
	tags := make([]CategoryTag, 0, len(categories)+1)
	tags = append(tags, CategoryTag{Label: allLabel, Value: catalog.AllCategories})

	selected := 0
	for _, c := range categories {
		value := strings.ToLower(c)
		tags = append(tags, CategoryTag{Label: c, Value: value})
		if selected == 0 && active != catalog.AllCategories && value == active {
			selected = len(tags) - 1
		}
	}
	tags[selected].Selected = true
	return tags
}

// FilterQuery encodes the search term and category for fragment URLs. Defaults are
// omitted so the bare path stays canonical.
func FilterQuery(searchTerm, category string) string {
	q := url.Values{}
	if s := strings.TrimSpace(searchTerm); s != "" {
		q.Set("q", s)
	}
	if c := strings.ToLower(strings.TrimSpace(category)); c != "" && c != catalog.AllCategories {
		q.Set("category", c)
	}
	return q.Encode()
}
