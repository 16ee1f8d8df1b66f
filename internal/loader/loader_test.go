package loader

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingIndicator struct {
	calls []string
}

func (r *recordingIndicator) Show() { r.calls = append(r.calls, "show") }
func (r *recordingIndicator) Hide() { r.calls = append(r.calls, "hide") }

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newEnrichmentServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadForwardsManifestAndBuildsState(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[{"id":1}]`)
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.Header.Get("Content-Type"), "application/json")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"products":[{"id":1}]}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"products":[{"title":"Red Shoe","keywords":["shoes"],"affiliateUrl":"http://x"}],"categories":["shoes"]}`)
	})

	ind := &recordingIndicator{}
	l := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL + "/api/fetch-products"}, WithIndicator(ind))
	state, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"show", "hide"}, ind.calls)
	require.Len(t, state.Products, 1)
	p := state.Products[0]
	require.Equal(t, "Red Shoe", p.Title)
	require.Equal(t, "http://x", p.AffiliateURL)
	require.Equal(t, "shoes", p.Category())
	require.NotEmpty(t, p.ID)
	require.Equal(t, []string{"shoes"}, state.Categories)
}

func TestLoadEnrichmentFailureCarriesServerMessage(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[{"id":1}]`)
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"bad request"}`)
	})

	ind := &recordingIndicator{}
	l := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL}, WithIndicator(ind))
	_, err := l.Load(context.Background())
	require.Error(t, err)

	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	require.Equal(t, http.StatusInternalServerError, enrichErr.Status)
	require.Equal(t, "bad request", enrichErr.Message)
	require.Contains(t, err.Error(), "bad request")
	require.Equal(t, []string{"show", "hide"}, ind.calls, "indicator hidden regardless of outcome")
}

func TestLoadEnrichmentFailureWithoutMessage(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[]`)
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down")
	})

	_, err := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL}).Load(context.Background())
	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	require.Equal(t, http.StatusBadGateway, enrichErr.Status)
	require.Empty(t, enrichErr.Message)
}

func TestLoadMissingManifestSkipsEnrichment(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	ind := &recordingIndicator{}
	l := New(Config{Manifest: filepath.Join(t.TempDir(), "missing.json"), EnrichmentURL: enrich.URL}, WithIndicator(ind))
	_, err := l.Load(context.Background())

	var manifestErr *ManifestFetchError
	require.ErrorAs(t, err, &manifestErr)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Zero(t, calls.Load())
	require.Equal(t, []string{"show", "hide"}, ind.calls)
}

func TestLoadRemoteManifest(t *testing.T) {
	t.Parallel()

	static := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products.json":
			_, _ = io.WriteString(w, `["https://shopee.example/p/1","https://shopee.example/p/2"]`)
		default:
			http.NotFound(w, r)
		}
	})
	var received enrichmentRequest
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, `{"products":[]}`)
	})

	state, err := New(Config{Manifest: static.URL + "/products.json", EnrichmentURL: enrich.URL}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, received.Products, 2)
	require.JSONEq(t, `"https://shopee.example/p/1"`, string(received.Products[0]))
	require.Empty(t, state.Products)
	require.NotNil(t, state.Categories, "categories default to an empty sequence")

	_, err = New(Config{Manifest: static.URL + "/missing.json", EnrichmentURL: enrich.URL}).Load(context.Background())
	var manifestErr *ManifestFetchError
	require.ErrorAs(t, err, &manifestErr)
	require.Equal(t, http.StatusNotFound, manifestErr.Status)
}

func TestLoadRejectsMalformedManifest(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"object.json": `{"products":[]}`,
		"broken.json": `[{"id":1}`,
		"scalar.yaml": `just text`,
	} {
		manifest := writeManifest(t, name, content)
		_, err := New(Config{Manifest: manifest, EnrichmentURL: "http://127.0.0.1:1"}).Load(context.Background())
		var manifestErr *ManifestFetchError
		require.ErrorAs(t, err, &manifestErr, name)
	}
}

func TestLoadYAMLManifest(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.yaml", "- id: 1\n  url: https://shopee.example/p/1\n- id: 2\n")
	var received enrichmentRequest
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = io.WriteString(w, `{"products":[]}`)
	})

	_, err := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, received.Products, 2)
	require.JSONEq(t, `{"id":1,"url":"https://shopee.example/p/1"}`, string(received.Products[0]))
}

func TestLoadDropsErroredEntriesAndCleansText(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[1,2,3,4]`)
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[
			{"title":"<b>Red</b> &amp; Shoe","price":"R$ 10,00","affiliateUrl":"http://x/1","keywords":["<i>shoes</i>"]},
			{"title":"Broken","error":"scrape failed"},
			{"title":"Mug","price":19.9,"affiliateUrl":"http://x/2","customTags":["kitchen"],"error":false},
			{"title":"Flagged","error":true}
		]}`)
	})

	state, err := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL}).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Products, 2)
	require.Equal(t, "Red & Shoe", state.Products[0].Title)
	require.Equal(t, []string{"shoes"}, state.Products[0].Keywords)
	require.Equal(t, "R$ 10,00", state.Products[0].Price)
	require.Equal(t, "Mug", state.Products[1].Title)
	require.Equal(t, "19.9", state.Products[1].Price)
	require.Equal(t, "kitchen", state.Products[1].Category())
	require.Empty(t, state.Categories)
}

func TestLoadAssignsStableIDs(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[1,2]`)
	enrich := newEnrichmentServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[{"title":"A","affiliateUrl":"http://x"},{"title":"B","affiliateUrl":"http://x"}]}`)
	})

	l := New(Config{Manifest: manifest, EnrichmentURL: enrich.URL})
	first, err := l.Load(context.Background())
	require.NoError(t, err)
	second, err := l.Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Products[0].ID, second.Products[0].ID)
	require.NotEqual(t, first.Products[0].ID, first.Products[1].ID, "same URL at different positions gets distinct ids")
}

func TestLoadWithoutEndpoint(t *testing.T) {
	t.Parallel()

	manifest := writeManifest(t, "products.json", `[]`)
	_, err := New(Config{Manifest: manifest}).Load(context.Background())
	var enrichErr *EnrichmentError
	require.ErrorAs(t, err, &enrichErr)
	require.Zero(t, enrichErr.Status)
}
