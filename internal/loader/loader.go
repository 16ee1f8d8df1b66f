package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/catalog"
)

const defaultTimeout = 20 * time.Second

// productNamespace seeds the deterministic product identifiers.
var productNamespace = uuid.MustParse("6f1c2d0e-9a4b-5c7d-8e2f-3a4b5c6d7e8f")

// Indicator is toggled around a load: shown before, hidden after, whatever the outcome.
type Indicator interface {
	Show()
	Hide()
}

type noopIndicator struct{}

func (noopIndicator) Show() {}
func (noopIndicator) Hide() {}

// Config locates the manifest and the enrichment endpoint.
type Config struct {
	Manifest      string
	EnrichmentURL string
	Timeout       time.Duration
}

// Option customises a Loader.
type Option func(*Loader)

// WithIndicator wires the loading indicator toggled during Load.
func WithIndicator(ind Indicator) Option {
	return func(l *Loader) {
		if ind != nil {
			l.indicator = ind
		}
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHTTPClient replaces the resty client (primarily for tests).
func WithHTTPClient(client *resty.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// Loader fetches the manifest and expands it through the enrichment endpoint.
type Loader struct {
	manifest  string
	endpoint  string
	http      *resty.Client
	indicator Indicator
	logger    *zap.Logger
	sanitizer *bluemonday.Policy
}

// New constructs a Loader. Requests are never retried.
func New(cfg Config, opts ...Option) *Loader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	l := &Loader{
		manifest:  strings.TrimSpace(cfg.Manifest),
		endpoint:  strings.TrimSpace(cfg.EnrichmentURL),
		http:      resty.New().SetTimeout(timeout).SetRetryCount(0),
		indicator: noopIndicator{},
		logger:    zap.NewNop(),
		sanitizer: bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load retrieves the manifest, posts it to the enrichment endpoint and returns the
// resulting application state. Entries flagged with an error are dropped.
func (l *Loader) Load(ctx context.Context) (catalog.State, error) {
	l.indicator.Show()
	defer l.indicator.Hide()

	start := time.Now()
	links, err := fetchManifest(ctx, l.http, l.manifest)
	if err != nil {
		l.logger.Error("catalog manifest fetch failed", zap.String("manifest", l.manifest), zap.Error(err))
		return catalog.State{}, err
	}

	payload, err := l.enrich(ctx, links)
	if err != nil {
		l.logger.Error("catalog enrichment failed", zap.String("endpoint", l.endpoint), zap.Error(err))
		return catalog.State{}, err
	}

	state := l.toState(payload)
	l.logger.Info("catalog loaded",
		zap.Int("manifest_entries", len(links)),
		zap.Int("products", len(state.Products)),
		zap.Int("categories", len(state.Categories)),
		zap.Duration("duration", time.Since(start)),
	)
	return state, nil
}

type enrichmentRequest struct {
	Products []json.RawMessage `json:"products"`
}

type enrichmentResponse struct {
	Products   []enrichedProduct `json:"products"`
	Categories []string          `json:"categories"`
}

type enrichedProduct struct {
	Title        flexString `json:"title"`
	Image        string     `json:"image"`
	Price        flexString `json:"price"`
	AffiliateURL string     `json:"affiliateUrl"`
	Keywords     []string   `json:"keywords"`
	CustomTags   []string   `json:"customTags"`
	Error        any        `json:"error"`
}

type enrichmentFailure struct {
	Error string `json:"error"`
}

func (l *Loader) enrich(ctx context.Context, links []json.RawMessage) (enrichmentResponse, error) {
	if l.endpoint == "" {
		return enrichmentResponse{}, &EnrichmentError{Endpoint: l.endpoint, Err: fmt.Errorf("enrichment endpoint not configured")}
	}
	resp, err := l.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(enrichmentRequest{Products: links}).
		Post(l.endpoint)
	if err != nil {
		return enrichmentResponse{}, &EnrichmentError{Endpoint: l.endpoint, Err: err}
	}
	if !resp.IsSuccess() {
		var failure enrichmentFailure
		_ = json.Unmarshal(resp.Body(), &failure)
		return enrichmentResponse{}, &EnrichmentError{
			Endpoint: l.endpoint,
			Status:   resp.StatusCode(),
			Message:  strings.TrimSpace(failure.Error),
		}
	}

	var payload enrichmentResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return enrichmentResponse{}, &EnrichmentError{Endpoint: l.endpoint, Status: resp.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload, nil
}

func (l *Loader) toState(payload enrichmentResponse) catalog.State {
	products := make([]catalog.Product, 0, len(payload.Products))
	for i, p := range payload.Products {
		if truthy(p.Error) {
			l.logger.Debug("dropping product flagged with error", zap.Int("position", i), zap.Any("error", p.Error))
			continue
		}
		products = append(products, catalog.Product{
			ID:           productID(i, p.AffiliateURL),
			Title:        l.clean(string(p.Title)),
			Image:        strings.TrimSpace(p.Image),
			Price:        l.clean(string(p.Price)),
			AffiliateURL: strings.TrimSpace(p.AffiliateURL),
			Keywords:     l.cleanAll(p.Keywords),
			CustomTags:   l.cleanAll(p.CustomTags),
		})
	}
	categories := payload.Categories
	if categories == nil {
		categories = []string{}
	}
	return catalog.State{Products: products, Categories: l.cleanAll(categories)}
}

// clean strips markup from server-provided text. The strict policy escapes entities,
// so they are decoded again before html/template re-escapes on paint.
func (l *Loader) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(l.sanitizer.Sanitize(s)))
}

func (l *Loader) cleanAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, l.clean(v))
	}
	return out
}

func productID(position int, affiliateURL string) string {
	return uuid.NewSHA1(productNamespace, []byte(strconv.Itoa(position)+"|"+affiliateURL)).String()
}

// truthy follows the enrichment contract: any non-empty, non-false, non-zero error
// marker flags the entry.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default:
		return true
	}
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", raw)
	}
	*f = flexString(n.String())
	return nil
}
