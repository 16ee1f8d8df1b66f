package loader

import "fmt"

// ManifestFetchError is returned when the product manifest is unreachable or malformed.
type ManifestFetchError struct {
	Source string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *ManifestFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("loader: manifest %s: status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("loader: manifest %s: %v", e.Source, e.Err)
}

// Unwrap exposes the underlying error.
func (e *ManifestFetchError) Unwrap() error { return e.Err }

// EnrichmentError is returned when the enrichment endpoint cannot be reached or answers
// with a non-success status. Message carries the server-provided error text, if any.
type EnrichmentError struct {
	Endpoint string
	Status   int
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *EnrichmentError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("loader: enrichment status %d: %s", e.Status, e.Message)
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("loader: enrichment status %d: %v", e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("loader: enrichment status %d", e.Status)
	default:
		return fmt.Sprintf("loader: enrichment %s: %v", e.Endpoint, e.Err)
	}
}

// Unwrap exposes the underlying error.
func (e *EnrichmentError) Unwrap() error { return e.Err }
