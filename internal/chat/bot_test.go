package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBotReplyWaitsForDelay(t *testing.T) {
	t.Parallel()

	bot := NewBot(testTexts, WithDelay(20*time.Millisecond))
	start := time.Now()
	reply, err := bot.Reply(context.Background(), "shoe", visibleCards(""))
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.Contains(t, reply, "Red Shoe")
}

func TestBotReplyHonoursCancellation(t *testing.T) {
	t.Parallel()

	bot := NewBot(testTexts)
	require.Equal(t, ReplyDelay, bot.Delay())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := bot.Reply(ctx, "shoe", visibleCards(""))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBotConverse(t *testing.T) {
	t.Parallel()

	bot := NewBot(testTexts, WithDelay(0))
	var tr Transcript

	msg, err := bot.Converse(context.Background(), &tr, "zzz", visibleCards(""))
	require.NoError(t, err)
	require.Equal(t, testTexts.Fallback, msg.Text)
	require.Equal(t, 2, tr.Len())
	require.False(t, tr.Messages[1].Pending)

	msg, err = bot.Converse(context.Background(), &tr, "", visibleCards(""))
	require.NoError(t, err)
	require.Empty(t, msg.ID)
	require.Equal(t, 2, tr.Len())
}

func TestBotConverseCancelledLeavesPlaceholder(t *testing.T) {
	t.Parallel()

	bot := NewBot(testTexts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	var tr Transcript
	ph, err := bot.Converse(ctx, &tr, "shoe", visibleCards(""))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, ok := tr.Pending(ph.ID)
	require.True(t, ok)
}
