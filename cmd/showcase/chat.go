package main

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/chat"
	mw "finitefield.org/showcase-web/internal/middleware"
	"finitefield.org/showcase-web/internal/observability"
	"finitefield.org/showcase-web/internal/view"
)

// chatView is the panel model: visibility plus the visitor transcript.
type chatView struct {
	Lang     string
	Visible  bool
	Greeting string
	Messages []chatMessageView
}

type chatMessageView struct {
	chat.Message
	Lang     string
	ReplyURL string
	DelayMS  int64
}

func newChatView(lang string, panel chat.PanelState, t chat.Transcript, delay time.Duration, greeting string) chatView {
	cv := chatView{Lang: lang, Visible: panel.IsVisible(), Greeting: greeting}
	for _, m := range t.Messages {
		cv.Messages = append(cv.Messages, newChatMessageView(lang, m, delay))
	}
	return cv
}

func newChatMessageView(lang string, m chat.Message, delay time.Duration) chatMessageView {
	mv := chatMessageView{Message: m, Lang: lang, DelayMS: delay.Milliseconds()}
	if m.Pending {
		mv.ReplyURL = "/chat/messages/" + url.PathEscape(m.ID) + "/reply"
	}
	return mv
}

// handleChatToggle flips the panel between hidden and visible.
func (s *server) handleChatToggle(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	sess.ChatPanel = sess.ChatPanel.Toggle()
	sess.MarkDirty()
	s.renderTemplate(w, r, "frag_chat_panel", s.chatView(r, mw.Lang(r)))
}

// handleChatClose collapses the panel.
func (s *server) handleChatClose(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	sess.ChatPanel = sess.ChatPanel.Close()
	sess.MarkDirty()
	s.renderTemplate(w, r, "frag_chat_panel", s.chatView(r, mw.Lang(r)))
}

// handleChatSend appends the visitor message and the analyzing placeholder. The
// placeholder fragment fetches its own reply after the configured delay.
func (s *server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	texts := chatTexts(s.bundle, lang)

	var (
		placeholder chat.Message
		ok          bool
	)
	t := s.chats.Update(sess.ID, func(t *chat.Transcript) {
		placeholder, ok = t.Send(r.PostFormValue("message"), texts.Analyzing)
	})
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	exchange := make([]chatMessageView, 0, 2)
	for _, m := range t.Messages[len(t.Messages)-2:] {
		exchange = append(exchange, newChatMessageView(lang, m, s.cfg.Chat.ReplyDelay))
	}
	observability.FromContext(r.Context()).Debug("chat message queued", zap.String("placeholder", placeholder.ID))
	s.renderTemplate(w, r, "frag_chat_exchange", exchange)
}

// handleChatReply resolves a placeholder against the cards visible for the current
// filters. Already-resolved messages are re-rendered unchanged.
func (s *server) handleChatReply(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	id := chi.URLParam(r, "id")
	search, category := filterParams(r)

	snap := s.catalog.Snapshot()
	cards := view.BuildCards(visible(snap, search, category), viewTexts(s.bundle, lang))
	texts := chatTexts(s.bundle, lang)

	var (
		msg   chat.Message
		found bool
	)
	s.chats.Update(sess.ID, func(t *chat.Transcript) {
		if pending, ok := t.Pending(id); ok {
			msg, found = t.Resolve(id, chat.Respond(pending.Query, cards, texts))
			return
		}
		for _, m := range t.Messages {
			if m.ID == id {
				msg, found = m, true
				return
			}
		}
	})
	if !found {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, r, "frag_chat_message", newChatMessageView(lang, msg, s.cfg.Chat.ReplyDelay))
}
