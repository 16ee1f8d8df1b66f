package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/actions"
	"finitefield.org/showcase-web/internal/catalog"
	mw "finitefield.org/showcase-web/internal/middleware"
	"finitefield.org/showcase-web/internal/observability"
)

// alertView is painted into #alerts.
type alertView struct {
	Tone    string
	Message string
}

func (s *server) lookupProduct(r *http.Request) (catalog.Product, bool) {
	return s.catalog.Snapshot().State.Lookup(chi.URLParam(r, "id"))
}

func (s *server) renderAlert(w http.ResponseWriter, r *http.Request, status int, tone, message string) {
	s.renderStatus(w, r, status, "frag_alert", alertView{Tone: tone, Message: message})
}

func setTrigger(w http.ResponseWriter, name string, payload any) {
	if raw, err := json.Marshal(actions.Trigger(name, payload)); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}

// handleOpen redirects to the product's affiliate link.
func (s *server) handleOpen(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	p, ok := s.lookupProduct(r)
	if !ok {
		http.Error(w, s.bundle.T(lang, "error.not_found"), http.StatusNotFound)
		return
	}
	target, err := actions.OpenTarget(p)
	if err != nil {
		observability.FromContext(r.Context()).Warn("open rejected", zap.String("product_id", p.ID), zap.Error(err))
		http.Error(w, s.bundle.T(lang, "actions.invalid_link"), http.StatusUnprocessableEntity)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// handleCopy hands the affiliate link to the browser, which writes it to the clipboard.
func (s *server) handleCopy(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	p, ok := s.lookupProduct(r)
	if !ok {
		s.renderAlert(w, r, http.StatusNotFound, "error", s.bundle.T(lang, "error.not_found"))
		return
	}
	payload, err := actions.Copy(p, actionTexts(s.bundle, lang))
	if err != nil {
		s.renderAlert(w, r, http.StatusUnprocessableEntity, "error", s.bundle.T(lang, "actions.invalid_link"))
		return
	}
	setTrigger(w, actions.EventCopy, payload)
	w.WriteHeader(http.StatusNoContent)
}

// handleShare hands the share payload to the browser. Browsers without native share
// get the informational message instead.
func (s *server) handleShare(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	p, ok := s.lookupProduct(r)
	if !ok {
		s.renderAlert(w, r, http.StatusNotFound, "error", s.bundle.T(lang, "error.not_found"))
		return
	}
	capable := strings.EqualFold(r.PostFormValue("share_capable"), "true")
	payload, err := actions.Share(p, actionTexts(s.bundle, lang), capable)
	var unsupported *actions.ShareUnsupportedError
	switch {
	case errors.As(err, &unsupported):
		s.renderAlert(w, r, http.StatusOK, "info", unsupported.Message)
		return
	case err != nil:
		s.renderAlert(w, r, http.StatusUnprocessableEntity, "error", s.bundle.T(lang, "actions.invalid_link"))
		return
	}
	setTrigger(w, actions.EventShare, payload)
	w.WriteHeader(http.StatusNoContent)
}

// handleClipboardFailure records a copy the browser could not complete.
func (s *server) handleClipboardFailure(w http.ResponseWriter, r *http.Request) {
	cerr := &actions.ClipboardError{
		ProductID: strings.TrimSpace(r.PostFormValue("id")),
		Reason:    strings.TrimSpace(r.PostFormValue("reason")),
	}
	observability.FromContext(r.Context()).Warn("clipboard write failed", zap.String("product_id", cerr.ProductID), zap.Error(cerr))
	w.WriteHeader(http.StatusNoContent)
}
