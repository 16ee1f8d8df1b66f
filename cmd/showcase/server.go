package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/catalog"
	"finitefield.org/showcase-web/internal/chat"
	"finitefield.org/showcase-web/internal/config"
	"finitefield.org/showcase-web/internal/content"
	"finitefield.org/showcase-web/internal/i18n"
	"finitefield.org/showcase-web/internal/loader"
	mw "finitefield.org/showcase-web/internal/middleware"
)

// server holds the storefront dependencies shared by every handler.
type server struct {
	cfg       config.Config
	logger    *zap.Logger
	catalog   *catalog.Store
	bundle    *i18n.Bundle
	pages     *content.Repository
	chats     *chat.Store
	sessions  *mw.Sessions
	templates *templateSet
}

func newServer(cfg config.Config, logger *zap.Logger, store *catalog.Store) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bundle, err := i18n.Load(cfg.Site.LocalesDir, cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}
	templates, err := newTemplateSet(cfg.Site.TemplatesDir, cfg.Site.DevMode, bundle)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	pages := content.NewRepository(cfg.Site.ContentDir, bundle.Fallback())
	if cfg.Site.DevMode {
		pages.SetCacheDuration(0)
	}
	return &server{
		cfg:       cfg,
		logger:    logger,
		catalog:   store,
		bundle:    bundle,
		pages:     pages,
		chats:     chat.NewStore(chat.DefaultTranscriptTTL),
		sessions:  mw.NewSessions(cfg.Session.SigningKey, cfg.Session.Secure, logger),
		templates: templates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; deploy behind a proxy that overwrites it.
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.RequestLogger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(s.cfg.Site.PublicDir, "assets")))

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Use(mw.Locale(s.bundle))
		r.Use(mw.CSRF(s.cfg.Session.Secure))

		r.Get("/", s.handleHome)
		r.Get("/products", s.handleProductsFrag)
		r.Get("/categories", s.handleCategoriesFrag)
		r.Get("/go/{id}", s.handleOpen)
		r.Post("/products/{id}/copy", s.handleCopy)
		r.Post("/products/{id}/share", s.handleShare)
		r.Post("/diagnostics/clipboard", s.handleClipboardFailure)

		r.Post("/chat/toggle", s.handleChatToggle)
		r.Post("/chat/close", s.handleChatClose)
		r.Post("/chat/messages", s.handleChatSend)
		// GET so the placeholder's htmx load trigger can fetch it. Resolving is idempotent.
		r.Get("/chat/messages/{id}/reply", s.handleChatReply)

		r.Get("/api/products", s.handleAPIProducts)
		r.Get("/pages/{slug}", s.handlePage)
	})
	return r
}

// loadCatalog runs the loader once and records the outcome in the store.
func loadCatalog(ctx context.Context, ldr *loader.Loader, store *catalog.Store, logger *zap.Logger) {
	state, err := ldr.Load(ctx)
	if err != nil {
		logger.Error("catalog load failed", zap.Error(err))
	}
	store.Complete(state, err)
}

func newLoader(cfg config.Config, store *catalog.Store, logger *zap.Logger) *loader.Loader {
	return loader.New(loader.Config{
		Manifest:      cfg.Catalog.Manifest,
		EnrichmentURL: cfg.Catalog.EnrichmentURL,
		Timeout:       cfg.Catalog.Timeout,
	}, loader.WithIndicator(store), loader.WithLogger(logger.Named("loader")))
}
