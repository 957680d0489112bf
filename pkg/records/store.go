package records

import (
	"sync"
)

// RequestToken identifies one fetch into a Store. Only the most recent token
// may commit.
type RequestToken uint64

// Store holds the raw collection fetched for one dashboard session and the
// filtered view derived from it. Every mutation recomputes the view.
type Store[R Record] struct {
	mu       sync.RWMutex
	raw      []R
	view     []R
	filter   FilterState
	latest   RequestToken
	closed   bool
	onChange func(view []R)

	// version counts recomputes; notifyMu orders callbacks by it.
	version   uint64
	notifyMu  sync.Mutex
	delivered uint64
}

// NewStore builds an empty store with the initial filter state.
func NewStore[R Record](filter FilterState) *Store[R] {
	return &Store[R]{filter: filter, view: []R{}}
}

// OnChange registers a callback invoked with the new view after every
// recompute. Callbacks never run concurrently and never see a view older
// than one already delivered; a superseded view may be skipped. fn may
// read the store but must not mutate it.
func (s *Store[R]) OnChange(fn func(view []R)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Begin starts a fetch and supersedes every earlier token.
func (s *Store[R]) Begin() RequestToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Commit replaces the raw collection if token is still current. Stale or
// post-Close commits are dropped and reported as false.
func (s *Store[R]) Commit(token RequestToken, rows []R) bool {
	s.mu.Lock()
	if s.closed || token != s.latest {
		s.mu.Unlock()
		return false
	}
	s.raw = append([]R(nil), rows...)
	view, cb, version := s.recomputeLocked()
	s.mu.Unlock()
	s.notify(cb, view, version)
	return true
}

// Current reports whether token is still the latest outstanding fetch.
func (s *Store[R]) Current(token RequestToken) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed && token == s.latest
}

// SetFilter replaces the filter state and recomputes the view.
func (s *Store[R]) SetFilter(filter FilterState) {
	s.mu.Lock()
	s.filter = filter
	view, cb, version := s.recomputeLocked()
	s.mu.Unlock()
	s.notify(cb, view, version)
}

// UpdateFilter mutates the filter state in place and recomputes the view.
func (s *Store[R]) UpdateFilter(fn func(*FilterState)) {
	s.mu.Lock()
	fn(&s.filter)
	view, cb, version := s.recomputeLocked()
	s.mu.Unlock()
	s.notify(cb, view, version)
}

// ClearFilters resets the filter state to unconstrained.
func (s *Store[R]) ClearFilters() {
	s.UpdateFilter(func(f *FilterState) { f.Reset() })
}

// Filter returns a copy of the active filter state.
func (s *Store[R]) Filter() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// View returns a copy of the filtered view.
func (s *Store[R]) View() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]R(nil), s.view...)
}

// Raw returns a copy of the fetched collection.
func (s *Store[R]) Raw() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]R(nil), s.raw...)
}

// Len returns the size of the filtered view.
func (s *Store[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.view)
}

// Close invalidates every outstanding token. Later commits are discarded.
func (s *Store[R]) Close() {
	s.mu.Lock()
	s.closed = true
	s.latest++
	s.mu.Unlock()
}

func (s *Store[R]) recomputeLocked() ([]R, func([]R), uint64) {
	s.view = Apply(s.raw, s.filter)
	s.version++
	if s.onChange == nil {
		return nil, nil, s.version
	}
	return append([]R(nil), s.view...), s.onChange, s.version
}

func (s *Store[R]) notify(cb func([]R), view []R, version uint64) {
	if cb == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version
	cb(view)
}
