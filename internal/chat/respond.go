package chat

import (
	"strings"

	"finitefield.org/showcase-web/internal/view"
)

// Texts holds the localized bot phrases. Reply may reference {query} and {title}.
type Texts struct {
	Reply     string
	Fallback  string
	Analyzing string
}

// Respond matches text against the visible cards in render order. The first card whose
// lower-cased title or keyword string contains the lower-cased text is acknowledged;
// otherwise the fixed fallback is returned. No model or network is involved.
func Respond(text string, cards []view.Card, texts Texts) string {
	query := strings.TrimSpace(text)
	needle := strings.ToLower(query)
	for _, card := range cards {
		if strings.Contains(card.FilterTitle, needle) || strings.Contains(card.FilterKeywords, needle) {
			return strings.NewReplacer("{query}", query, "{title}", card.Title).Replace(texts.Reply)
		}
	}
	return texts.Fallback
}
