package view

import (
	"errors"
	"strings"

	"finitefield.org/showcase-web/internal/catalog"
	"finitefield.org/showcase-web/internal/loader"
)

// Status describes what replaces the grid while the catalog is not ready.
type Status struct {
	Loading bool
	Failed  bool
	Message string
}

// BuildStatus projects the store snapshot into the grid status.
func BuildStatus(snap catalog.Snapshot, texts Texts) Status {
	switch {
	case snap.Failed():
		return Status{Failed: true, Message: LoadErrorMessage(snap.Err, texts)}
	case snap.Loading():
		return Status{Loading: true}
	default:
		return Status{}
	}
}

// LoadErrorMessage renders the inline failure text for a load error. Server-provided
// enrichment messages are used verbatim.
func LoadErrorMessage(err error, texts Texts) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var manifestErr *loader.ManifestFetchError
	var enrichErr *loader.EnrichmentError
	switch {
	case errors.As(err, &manifestErr):
		if texts.ManifestError != "" {
			msg = texts.ManifestError
		}
	case errors.As(err, &enrichErr):
		switch {
		case enrichErr.Message != "":
			msg = enrichErr.Message
		case texts.GenericError != "":
			msg = texts.GenericError
		}
	}
	format := texts.ErrorFormat
	if format == "" {
		format = "Oops! {message}. Check the logs for more details."
	}
	return strings.ReplaceAll(format, "{message}", msg)
}
