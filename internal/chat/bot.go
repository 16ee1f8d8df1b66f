package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"finitefield.org/showcase-web/internal/view"
)

// ReplyDelay is the fixed pause before the placeholder is replaced by the answer.
const ReplyDelay = 1500 * time.Millisecond

// Bot answers chat input after ReplyDelay. It wraps Respond for callers that are not
// driven by the htmx delayed trigger.
type Bot struct {
	texts  Texts
	delay  time.Duration
	logger *zap.Logger
}

// BotOption customises a Bot.
type BotOption func(*Bot)

// WithDelay overrides the reply delay. Non-positive values disable the pause.
func WithDelay(d time.Duration) BotOption {
	return func(b *Bot) { b.delay = d }
}

// WithBotLogger sets the logger used for reply diagnostics.
func WithBotLogger(logger *zap.Logger) BotOption {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBot constructs a Bot with the default delay.
func NewBot(texts Texts, opts ...BotOption) *Bot {
	b := &Bot{texts: texts, delay: ReplyDelay, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Texts returns the phrases the bot answers with.
func (b *Bot) Texts() Texts { return b.texts }

// Delay returns the configured reply delay.
func (b *Bot) Delay() time.Duration { return b.delay }

// Reply waits for the reply delay, then answers text over the visible cards. It
// returns ctx.Err() if the context ends first.
func (b *Bot) Reply(ctx context.Context, text string, cards []view.Card) (string, error) {
	if b.delay > 0 {
		timer := time.NewTimer(b.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	reply := Respond(text, cards, b.texts)
	b.logger.Debug("chat reply", zap.String("query", text), zap.Int("visible_cards", len(cards)))
	return reply, nil
}

// Converse runs one full exchange on the transcript: the user entry and placeholder
// are appended, and the placeholder is resolved once the reply is ready. Blank input
// leaves the transcript untouched.
func (b *Bot) Converse(ctx context.Context, t *Transcript, text string, cards []view.Card) (Message, error) {
	placeholder, ok := t.Send(text, b.texts.Analyzing)
	if !ok {
		return Message{}, nil
	}
	reply, err := b.Reply(ctx, placeholder.Query, cards)
	if err != nil {
		return placeholder, err
	}
	msg, _ := t.Resolve(placeholder.ID, reply)
	return msg, nil
}
