// Package actions implements the per-card open, copy and share actions. Failures are
// scoped to the single action that raised them.
package actions

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"finitefield.org/showcase-web/internal/catalog"
)

// Client-side event names carried in HX-Trigger headers.
const (
	EventCopy  = "storefront:copy"
	EventShare = "storefront:share"
)

var (
	// ErrShareUnsupported matches any ShareUnsupportedError.
	ErrShareUnsupported = errors.New("actions: share not supported")
	// ErrInvalidTarget is returned when a product has no usable affiliate link.
	ErrInvalidTarget = errors.New("actions: invalid affiliate link")
)

// ShareUnsupportedError reports that the visitor's browser cannot share natively.
// It is informational: Message tells the visitor to copy the link instead.
type ShareUnsupportedError struct {
	ProductID string
	Message   string
}

func (e *ShareUnsupportedError) Error() string {
	return fmt.Sprintf("actions: share unsupported for product %s", e.ProductID)
}

// Is lets errors.Is match ErrShareUnsupported.
func (e *ShareUnsupportedError) Is(target error) bool { return target == ErrShareUnsupported }

// ClipboardError describes a failed copy reported back by the browser. It is only
// logged.
type ClipboardError struct {
	ProductID string
	Reason    string
}

func (e *ClipboardError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unknown reason"
	}
	return fmt.Sprintf("actions: copy failed for product %s: %s", e.ProductID, reason)
}

// Texts are the localized strings used by the actions.
type Texts struct {
	Copied           string
	ShareTitle       string
	ShareText        string
	ShareUnsupported string
}

// CopyPayload is sent to the browser to place the link on the clipboard.
type CopyPayload struct {
	ProductID string `json:"id"`
	URL       string `json:"url"`
	Message   string `json:"message"`
}

// SharePayload mirrors the browser share data.
type SharePayload struct {
	ProductID string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	URL       string `json:"url"`
}

// OpenTarget returns the affiliate link to redirect to. Only absolute http(s) links are
// accepted.
func OpenTarget(p catalog.Product) (string, error) {
	raw := strings.TrimSpace(p.AffiliateURL)
	u, err := url.Parse(raw)
	if err != nil || raw == "" {
		return "", fmt.Errorf("%w: product %s", ErrInvalidTarget, p.ID)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("%w: product %s", ErrInvalidTarget, p.ID)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: product %s", ErrInvalidTarget, p.ID)
	}
	return u.String(), nil
}

// Copy builds the clipboard payload for the product's affiliate link.
func Copy(p catalog.Product, texts Texts) (CopyPayload, error) {
	target, err := OpenTarget(p)
	if err != nil {
		return CopyPayload{}, err
	}
	return CopyPayload{ProductID: p.ID, URL: target, Message: texts.Copied}, nil
}

// Share builds the share payload. When the browser cannot share, a
// *ShareUnsupportedError carrying the instructional message is returned instead.
func Share(p catalog.Product, texts Texts, capable bool) (SharePayload, error) {
	target, err := OpenTarget(p)
	if err != nil {
		return SharePayload{}, err
	}
	if !capable {
		return SharePayload{}, &ShareUnsupportedError{ProductID: p.ID, Message: texts.ShareUnsupported}
	}
	return SharePayload{
		ProductID: p.ID,
		Title:     texts.ShareTitle,
		Text:      strings.ReplaceAll(texts.ShareText, "{title}", p.Title),
		URL:       target,
	}, nil
}

// Trigger wraps a payload as the HX-Trigger event map for name.
func Trigger(name string, payload any) map[string]any {
	return map[string]any{name: payload}
}
