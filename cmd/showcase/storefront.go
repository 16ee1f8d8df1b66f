package main

import (
	"net/http"
	"strings"

	"finitefield.org/showcase-web/internal/catalog"
	"finitefield.org/showcase-web/internal/content"
	mw "finitefield.org/showcase-web/internal/middleware"
	"finitefield.org/showcase-web/internal/seo"
	"finitefield.org/showcase-web/internal/view"
)

// pageData is the view model of the base layout.
type pageData struct {
	Lang       string
	Path       string
	SiteName   string
	CSRFToken  string
	Locales    []string
	SEO        seo.Meta
	Storefront *storefrontView
	Page       *content.Page
	Chat       chatView
}

// storefrontView is everything the grid, tags and search box paint from.
type storefrontView struct {
	Lang     string
	Search   string
	Category string
	Tags     []view.CategoryTag
	Grid     view.Grid
	Status   view.Status
	PollURL  string
	OOB      bool
}

// filterParams reads the search term and category shared by the grid, the chat and the
// JSON view. A missing category means "all".
func filterParams(r *http.Request) (string, string) {
	search := strings.TrimSpace(r.FormValue("q"))
	category := strings.ToLower(strings.TrimSpace(r.FormValue("category")))
	if category == "" {
		category = catalog.AllCategories
	}
	return search, category
}

// visible returns the filtered products of the current snapshot.
func visible(snap catalog.Snapshot, search, category string) []catalog.Product {
	return catalog.Filter(snap.State.Products, search, category)
}

func (s *server) buildStorefront(lang, search, category string) *storefrontView {
	snap := s.catalog.Snapshot()
	texts := viewTexts(s.bundle, lang)
	sv := &storefrontView{
		Lang:     lang,
		Search:   search,
		Category: category,
		Tags:     view.BuildCategoryTags(snap.State.Categories, category, texts.AllLabel),
		Status:   view.BuildStatus(snap, texts),
	}
	if sv.Status.Loading {
		sv.PollURL = "/products"
		if q := view.FilterQuery(search, category); q != "" {
			sv.PollURL += "?" + q
		}
		return sv
	}
	if !sv.Status.Failed {
		sv.Grid = view.BuildGrid(visible(snap, search, category), texts)
	}
	return sv
}

func (s *server) basePage(r *http.Request, title, description string) pageData {
	lang := mw.Lang(r)
	brand := s.bundle.T(lang, "brand.name")
	vm := pageData{
		Lang:      lang,
		Path:      r.URL.Path,
		SiteName:  brand,
		CSRFToken: mw.CSRFToken(r),
		Locales:   s.bundle.Supported(),
	}
	vm.SEO.Title = title
	if title != brand {
		vm.SEO.Title = title + " | " + brand
	}
	vm.SEO.Description = description
	vm.SEO.Canonical = s.absoluteURL(r)
	vm.SEO.OG = seo.OpenGraph{
		Title:       vm.SEO.Title,
		Description: description,
		Type:        "website",
		URL:         vm.SEO.Canonical,
		SiteName:    brand,
	}
	vm.SEO.Alternates = s.alternates(r)
	vm.Chat = s.chatView(r, lang)
	return vm
}

// handleHome renders the storefront page.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	search, category := filterParams(r)
	vm := s.basePage(r, s.bundle.T(lang, "site.title"), s.bundle.T(lang, "site.description"))
	vm.Storefront = s.buildStorefront(lang, search, category)

	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.WebSite(s.cfg.Site.Name, s.siteURL(r), s.siteURL(r)+"/?q=")))
	if cards := vm.Storefront.Grid.Cards; len(cards) > 0 {
		listed := make([]seo.ListedProduct, 0, len(cards))
		for _, c := range cards {
			listed = append(listed, seo.ListedProduct{
				Name:     c.Title,
				URL:      s.siteURL(r) + c.OpenURL,
				ImageURL: c.Image,
				Category: c.Category,
			})
		}
		vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.ItemList(vm.SEO.Title, listed)))
	}
	s.renderPage(w, r, vm)
}

// handleProductsFrag re-filters the grid. The category tags ride along as an
// out-of-band swap so the selection always matches the grid.
func (s *server) handleProductsFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	search, category := filterParams(r)
	sv := s.buildStorefront(lang, search, category)
	sv.OOB = true

	push := "/"
	if q := view.FilterQuery(search, category); q != "" {
		push += "?" + q
	}
	w.Header().Set("HX-Push-Url", push)
	s.renderTemplate(w, r, "frag_products", sv)
}

// handleCategoriesFrag renders only the category tags.
func (s *server) handleCategoriesFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	search, category := filterParams(r)
	s.renderTemplate(w, r, "frag_category_tags", s.buildStorefront(lang, search, category))
}

func (s *server) chatView(r *http.Request, lang string) chatView {
	sess := mw.GetSession(r)
	return newChatView(lang, sess.ChatPanel, s.chats.Get(sess.ID), s.cfg.Chat.ReplyDelay, s.bundle.T(lang, "chat.greeting"))
}

func (s *server) siteURL(r *http.Request) string {
	if base := strings.TrimRight(s.cfg.Site.BaseURL, "/"); base != "" {
		return base
	}
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func (s *server) absoluteURL(r *http.Request) string {
	return s.siteURL(r) + r.URL.Path
}

func (s *server) alternates(r *http.Request) []seo.Alternate {
	base := s.absoluteURL(r)
	out := make([]seo.Alternate, 0, len(s.bundle.Supported()))
	for _, l := range s.bundle.Supported() {
		out = append(out, seo.Alternate{Href: base + "?hl=" + l, Hreflang: l})
	}
	return out
}
