package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/content"
	mw "finitefield.org/showcase-web/internal/middleware"
	"finitefield.org/showcase-web/internal/observability"
	"finitefield.org/showcase-web/internal/seo"
)

// handlePage renders a markdown content page such as the affiliate disclosure.
func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	page, err := s.pages.Get(chi.URLParam(r, "slug"), lang)
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			observability.FromContext(r.Context()).Error("content page failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		http.Error(w, s.bundle.T(lang, "error.page_not_found"), http.StatusNotFound)
		return
	}

	vm := s.basePage(r, page.Title, page.Summary)
	vm.SEO.OG.Type = "article"
	published := ""
	if !page.UpdatedAt.IsZero() {
		published = page.UpdatedAt.Format("2006-01-02")
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.Article(page.Title, vm.SEO.Canonical, published)))
	vm.Page = &page
	s.renderPage(w, r, vm)
}
