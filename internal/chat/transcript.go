package chat

import (
	"strings"

	"github.com/google/uuid"
)

// MaxMessages bounds the transcript kept in the visitor session.
const MaxMessages = 20

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single transcript entry. A pending bot message is the transient
// "analyzing" placeholder; Query keeps the user text it answers.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Text    string `json:"text"`
	Query   string `json:"q,omitempty"`
	Pending bool   `json:"pending,omitempty"`
}

// Transcript is the ordered conversation of one visitor.
type Transcript struct {
	Messages []Message `json:"messages,omitempty"`
}

// Send appends the trimmed user text and an analyzing placeholder, returning the
// placeholder. Blank input is ignored and reported with ok=false.
func (t *Transcript) Send(text, analyzing string) (placeholder Message, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}
	placeholder = Message{ID: uuid.NewString(), Role: RoleBot, Text: analyzing, Query: text, Pending: true}
	t.Messages = append(t.Messages,
		Message{ID: uuid.NewString(), Role: RoleUser, Text: text},
		placeholder,
	)
	t.trim()
	return placeholder, true
}

// trim drops the oldest entries beyond MaxMessages. Placeholders still waiting for a
// reply are kept while settled entries remain, and the exchange just sent is never
// dropped.
func (t *Transcript) trim() {
	over := len(t.Messages) - MaxMessages
	if over <= 0 {
		return
	}
	older := t.Messages[:len(t.Messages)-2]
	kept := make([]Message, 0, MaxMessages)
	for _, m := range older {
		if over > 0 && !m.Pending {
			over--
			continue
		}
		kept = append(kept, m)
	}
	if over > 0 {
		kept = kept[over:]
	}
	t.Messages = append(kept, t.Messages[len(t.Messages)-2:]...)
}

// Pending returns the unresolved placeholder with the given id.
func (t *Transcript) Pending(id string) (Message, bool) {
	for _, m := range t.Messages {
		if m.ID == id && m.Pending {
			return m, true
		}
	}
	return Message{}, false
}

// Resolve replaces exactly the placeholder identified by id with reply.
func (t *Transcript) Resolve(id, reply string) (Message, bool) {
	for i := range t.Messages {
		m := &t.Messages[i]
		if m.ID != id || !m.Pending {
			continue
		}
		m.Text = reply
		m.Pending = false
		m.Query = ""
		return *m, true
	}
	return Message{}, false
}

// Len returns the number of entries.
func (t Transcript) Len() int { return len(t.Messages) }
