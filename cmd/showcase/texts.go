package main

import (
	"finitefield.org/showcase-web/internal/actions"
	"finitefield.org/showcase-web/internal/chat"
	"finitefield.org/showcase-web/internal/i18n"
	"finitefield.org/showcase-web/internal/view"
)

func viewTexts(b *i18n.Bundle, lang string) view.Texts {
	return view.Texts{
		AllLabel:      b.T(lang, "grid.all"),
		NoResults:     b.T(lang, "grid.no_results"),
		PriceFallback: b.T(lang, "grid.price_fallback"),
		OpenLabel:     b.T(lang, "card.open"),
		CopyLabel:     b.T(lang, "card.copy"),
		ShareLabel:    b.T(lang, "card.share"),
		ShareText:     b.T(lang, "actions.share_text"),
		ErrorFormat:   b.T(lang, "error.format"),
		ManifestError: b.T(lang, "error.manifest"),
		GenericError:  b.T(lang, "error.generic"),
	}
}

func chatTexts(b *i18n.Bundle, lang string) chat.Texts {
	return chat.Texts{
		Reply:     b.T(lang, "chat.reply"),
		Fallback:  b.T(lang, "chat.fallback"),
		Analyzing: b.T(lang, "chat.analyzing"),
	}
}

func actionTexts(b *i18n.Bundle, lang string) actions.Texts {
	return actions.Texts{
		Copied:           b.T(lang, "actions.copied"),
		ShareTitle:       b.T(lang, "actions.share_title"),
		ShareText:        b.T(lang, "actions.share_text"),
		ShareUnsupported: b.T(lang, "actions.share_unsupported"),
	}
}
