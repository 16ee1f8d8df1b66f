package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"
)

var errManifestNotArray = errors.New("manifest is not an array of product links")

// fetchManifest reads the manifest from a local path or an http(s) URL and returns the
// product link descriptors untouched so they can be forwarded verbatim.
func fetchManifest(ctx context.Context, client *resty.Client, source string) ([]json.RawMessage, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &ManifestFetchError{Source: source, Err: errors.New("manifest location not configured")}
	}

	var (
		raw []byte
		ext string
	)
	if isRemote(source) {
		resp, err := client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/json").
			Get(source)
		if err != nil {
			return nil, &ManifestFetchError{Source: source, Err: err}
		}
		if !resp.IsSuccess() {
			return nil, &ManifestFetchError{Source: source, Status: resp.StatusCode()}
		}
		raw = resp.Body()
		if u, err := url.Parse(source); err == nil {
			ext = path.Ext(u.Path)
		}
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, &ManifestFetchError{Source: source, Err: err}
		}
		raw = data
		ext = filepath.Ext(source)
	}

	links, err := decodeManifest(raw, strings.ToLower(ext))
	if err != nil {
		return nil, &ManifestFetchError{Source: source, Err: err}
	}
	return links, nil
}

func decodeManifest(raw []byte, ext string) ([]json.RawMessage, error) {
	if ext == ".yaml" || ext == ".yml" {
		var items []any
		if err := yaml.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse yaml manifest: %w", err)
		}
		if items == nil {
			return nil, errManifestNotArray
		}
		out := make([]json.RawMessage, 0, len(items))
		for i, item := range items {
			b, err := json.Marshal(item)
			if err != nil {
				return nil, fmt.Errorf("manifest entry %d: %w", i, err)
			}
			out = append(out, b)
		}
		return out, nil
	}

	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, errManifestNotArray
	}
	var links []json.RawMessage
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if links == nil {
		links = []json.RawMessage{}
	}
	return links, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
