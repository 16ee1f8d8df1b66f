package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for the slug in any candidate locale.
var ErrNotFound = errors.New("content: page not found")

const defaultCacheTTL = 5 * time.Minute

// Page is a localized static page rendered from markdown.
type Page struct {
	Slug      string
	Lang      string
	Title     string
	Summary   string
	HTML      template.HTML
	UpdatedAt time.Time
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Lang      string `yaml:"lang"`
	UpdatedAt string `yaml:"updated_at"`
}

// Repository reads pages from <dir>/<lang>/<slug>.md with optional YAML front matter
// and caches the rendered result.
type Repository struct {
	dir      string
	fallback string
	ttl      time.Duration
	md       goldmark.Markdown
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// NewRepository creates a repository rooted at dir. fallback is the locale tried when
// the requested one has no page.
func NewRepository(dir, fallback string) *Repository {
	if strings.TrimSpace(dir) == "" {
		dir = "content"
	}
	return &Repository{
		dir:      dir,
		fallback: strings.ToLower(strings.TrimSpace(fallback)),
		ttl:      defaultCacheTTL,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Typographer)),
		policy:   newPagePolicy(),
		items:    map[string]cacheEntry{},
	}
}

// SetCacheDuration overrides the cache duration. Non-positive values disable caching.
func (r *Repository) SetCacheDuration(d time.Duration) {
	r.mu.Lock()
	r.ttl = d
	r.items = map[string]cacheEntry{}
	r.mu.Unlock()
}

// Get returns the page for slug in lang, falling back to the default locale.
func (r *Repository) Get(slug, lang string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	key := lang + "|" + slug
	if page, ok := r.cached(key); ok {
		return page, nil
	}

	candidates := []string{lang}
	if r.fallback != "" && r.fallback != lang {
		candidates = append(candidates, r.fallback)
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		page, err := r.read(slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return Page{}, err
		}
		r.store(key, page)
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (r *Repository) read(slug, lang string) (Page, error) {
	file := filepath.Join(r.dir, lang, slug+".md")
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("content: parse front matter %s: %w", file, err)
		}
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", file, err)
	}

	page := Page{
		Slug:    slug,
		Lang:    firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		// sanitized markup is safe to embed
		HTML:      template.HTML(r.policy.SanitizeBytes(buf.Bytes())),
		UpdatedAt: parseDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(slug)
	}
	return page, nil
}

func (r *Repository) cached(key string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.items[key]
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (r *Repository) store(key string, page Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ttl <= 0 {
		return
	}
	r.items[key] = cacheEntry{page: page, expires: time.Now().Add(r.ttl)}
}

func newPagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "div")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
