package chat

import (
	"sync"
	"time"
)

// DefaultTranscriptTTL is how long an idle visitor transcript is retained.
const DefaultTranscriptTTL = 2 * time.Hour

// Store keeps one transcript per visitor session in process memory. Idle transcripts
// expire after the TTL.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]*storedTranscript
}

type storedTranscript struct {
	transcript Transcript
	touched    time.Time
}

// NewStore returns an empty store. Non-positive ttl selects DefaultTranscriptTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTranscriptTTL
	}
	return &Store{ttl: ttl, now: time.Now, items: map[string]*storedTranscript{}}
}

// Get returns a copy of the visitor's transcript.
func (s *Store) Get(sessionID string) Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[sessionID]
	if !ok || s.expired(item) {
		return Transcript{}
	}
	return item.transcript.clone()
}

// Update applies fn to the visitor's transcript under the store lock and returns a
// copy of the result.
func (s *Store) Update(sessionID string, fn func(*Transcript)) Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	item, ok := s.items[sessionID]
	if !ok {
		item = &storedTranscript{}
		s.items[sessionID] = item
	}
	fn(&item.transcript)
	item.touched = s.now()
	return item.transcript.clone()
}

// Len returns the number of live transcripts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.items)
}

func (s *Store) expired(item *storedTranscript) bool {
	return s.now().Sub(item.touched) > s.ttl
}

func (s *Store) sweep() {
	for id, item := range s.items {
		if s.expired(item) {
			delete(s.items, id)
		}
	}
}

func (t Transcript) clone() Transcript {
	if t.Messages == nil {
		return Transcript{}
	}
	return Transcript{Messages: append([]Message(nil), t.Messages...)}
}
