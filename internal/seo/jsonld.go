package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// ListedProduct is the subset of a product exposed through structured data.
type ListedProduct struct {
	Name     string
	URL      string
	ImageURL string
	Category string
}

// ItemList builds a schema.org ItemList of products in display order.
func ItemList(name string, products []ListedProduct) map[string]any {
	el := make([]map[string]any, 0, len(products))
	for i, p := range products {
		item := map[string]any{
			"@type": "Product",
			"name":  p.Name,
		}
		if p.URL != "" {
			item["url"] = p.URL
		}
		if p.ImageURL != "" {
			item["image"] = p.ImageURL
		}
		if p.Category != "" {
			item["category"] = p.Category
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"numberOfItems":   len(el),
		"itemListElement": el,
	}
}

// Article returns a minimal Article schema payload.
func Article(headline, url, datePublished string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Article",
		"headline": headline,
	}
	if url != "" {
		m["url"] = url
	}
	if datePublished != "" {
		m["dateModified"] = datePublished
	}
	return m
}
