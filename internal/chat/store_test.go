package chat

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStoreIsolatesVisitors(t *testing.T) {
	t.Parallel()

	s := NewStore(0)
	s.Update("a", func(tr *Transcript) { tr.Send("hello", "...") })
	require.Equal(t, 2, s.Get("a").Len())
	require.Zero(t, s.Get("b").Len())

	snapshot := s.Get("a")
	snapshot.Messages[0].Text = "mutated"
	require.Equal(t, "hello", s.Get("a").Messages[0].Text, "callers receive copies")
}

func TestStoreExpiresIdleTranscripts(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(time.Minute)
	s.now = func() time.Time { return now }

	s.Update("a", func(tr *Transcript) { tr.Send("hello", "...") })
	now = now.Add(2 * time.Minute)
	require.Zero(t, s.Get("a").Len())
	require.Zero(t, s.Len())
}

func TestStoreConcurrentUpdates(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Hour)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("a", func(tr *Transcript) { tr.Send("hi", "...") })
		}()
	}
	wg.Wait()
	require.Equal(t, 10, s.Get("a").Len())
}
