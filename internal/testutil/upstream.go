package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// Enrichment is a fake enrichment endpoint answering every POST with a fixed status
// and body.
type Enrichment struct {
	*httptest.Server
	calls    atomic.Int32
	lastBody atomic.Value
}

// NewEnrichment starts a fake endpoint that responds with status and the JSON encoding
// of payload. It is closed when the test ends.
func NewEnrichment(t testing.TB, status int, payload any) *Enrichment {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal enrichment payload: %v", err)
	}
	e := &Enrichment{}
	e.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		e.lastBody.Store(string(raw))
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(e.Close)
	return e
}

// Calls returns how many requests the endpoint received.
func (e *Enrichment) Calls() int { return int(e.calls.Load()) }

// LastBody returns the body of the most recent request.
func (e *Enrichment) LastBody() string {
	v, _ := e.lastBody.Load().(string)
	return v
}

// WriteManifest writes a manifest file into a temporary directory and returns its path.
func WriteManifest(t testing.TB, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}
