package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/i18n"
	"finitefield.org/showcase-web/internal/observability"
)

// templateSet parses every .tmpl under dir. In dev mode templates are reparsed on
// each render.
type templateSet struct {
	dir   string
	dev   bool
	funcs template.FuncMap

	mu     sync.RWMutex
	cached *template.Template
}

func newTemplateSet(dir string, dev bool, bundle *i18n.Bundle) (*templateSet, error) {
	ts := &templateSet{
		dir: dir,
		dev: dev,
		funcs: template.FuncMap{
			"now":   time.Now,
			"t":     bundle.T,
			"query": url.QueryEscape,
			// JSON-LD documents are marshalled by package seo with HTML escaping on.
			"jsonld": func(s string) template.JS { return template.JS(s) },
		},
	}
	tc, err := ts.parse()
	if err != nil {
		return nil, err
	}
	ts.cached = tc
	return ts, nil
}

func (ts *templateSet) parse() (*template.Template, error) {
	// ParseGlob doesn't support **, so walk the tree.
	var files []string
	if err := filepath.WalkDir(ts.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", ts.dir)
	}
	return template.New("_root").Funcs(ts.funcs).ParseFiles(files...)
}

func (ts *templateSet) current() (*template.Template, error) {
	if ts.dev {
		return ts.parse()
	}
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.cached, nil
}

// execute renders the named template into a buffer so a failed render never leaves a
// partial response behind.
func (ts *templateSet) execute(name string, data any) ([]byte, error) {
	t, err := ts.current()
	if err != nil {
		return nil, fmt.Errorf("template parse error: %w", err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("template exec error: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPage executes the base layout.
func (s *server) renderPage(w http.ResponseWriter, r *http.Request, data pageData) {
	s.renderTemplate(w, r, "base", data)
}

// renderTemplate executes a named template, typically an htmx fragment.
func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	body, err := s.templates.execute(name, data)
	if err != nil {
		observability.FromContext(r.Context()).Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
