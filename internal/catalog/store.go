package catalog

import "sync"

// Snapshot is a read-only view of the store at a point in time.
type Snapshot struct {
	// Indicator mirrors the loading indicator toggled by the loader.
	Indicator bool
	Done      bool
	State     State
	Err       error
}

// Loading reports whether the grid should still show the loading indicator.
func (s Snapshot) Loading() bool {
	return s.Indicator || !s.Done
}

// Failed reports whether the single load attempt ended in error.
func (s Snapshot) Failed() bool {
	return s.Done && s.Err != nil
}

// Store owns the application state for the lifetime of the process. It is written
// once by the loader and read concurrently by request handlers.
type Store struct {
	mu        sync.RWMutex
	indicator bool
	done      bool
	state     State
	err       error
}

// NewStore returns an empty store waiting for its first load.
func NewStore() *Store {
	return &Store{state: State{Products: []Product{}, Categories: []string{}}}
}

// Show turns the loading indicator on.
func (s *Store) Show() {
	s.mu.Lock()
	s.indicator = true
	s.mu.Unlock()
}

// Hide turns the loading indicator off.
func (s *Store) Hide() {
	s.mu.Lock()
	s.indicator = false
	s.mu.Unlock()
}

// Complete records the load outcome. Only the first call has an effect; the state
// is never mutated afterwards.
func (s *Store) Complete(state State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	if err != nil {
		s.err = err
		return
	}
	if state.Products == nil {
		state.Products = []Product{}
	}
	if state.Categories == nil {
		state.Categories = []string{}
	}
	s.state = state
}

// Snapshot returns the current indicator, state and load error.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Indicator: s.indicator, Done: s.done, State: s.state, Err: s.err}
}
