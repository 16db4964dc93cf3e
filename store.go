package tokenmart

import (
	"errors"
	"sync"
)

// ErrNotInStore is returned by [Store.Select] when the requested id is not
// present in the store's current list.
var ErrNotInStore = errors.New("record not in store")

// Record is implemented by every entity the client caches locally.
type Record interface {
	// Key returns the record's unique identifier, stable for its lifetime.
	Key() string
	// ConcurrencyToken returns the opaque row version last returned by the
	// server. It must be echoed back unmodified on every mutating call.
	ConcurrencyToken() string
}

// Store holds the authoritative local copy of one entity list for one
// screen, plus an optional selected record. It is pure state: all I/O is
// performed by the coordinators that reconcile into it.
//
// A Store is safe for concurrent use.
type Store[T Record] struct {
	mu       sync.RWMutex
	items    []T
	index    map[string]int
	selected string
	hasSel   bool
}

// NewStore returns an empty store.
func NewStore[T Record]() *Store[T] {
	return &Store[T]{index: map[string]int{}}
}

// ReplaceAll discards the store's contents and installs records in order.
// If the previously selected id is absent from the new list, the selection
// is cleared.
func (s *Store[T]) ReplaceAll(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]T, 0, len(records))
	s.index = make(map[string]int, len(records))
	for _, r := range records {
		if _, dup := s.index[r.Key()]; dup {
			continue
		}
		s.index[r.Key()] = len(s.items)
		s.items = append(s.items, r)
	}
	if s.hasSel {
		if _, ok := s.index[s.selected]; !ok {
			s.selected = ""
			s.hasSel = false
		}
	}
}

// Upsert replaces the record with the same id in place, preserving its
// position, or prepends the record when the id is new.
func (s *Store[T]) Upsert(record T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[record.Key()]; ok {
		s.items[i] = record
		return
	}
	s.items = append([]T{record}, s.items...)
	s.index = make(map[string]int, len(s.items))
	for i, r := range s.items {
		s.index[r.Key()] = i
	}
}

// Remove drops the record with the given id, clearing the selection if it
// referenced that id. Removing an absent id is a no-op.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].Key()] = j
	}
	if s.hasSel && s.selected == id {
		s.selected = ""
		s.hasSel = false
	}
}

// Select marks the record with the given id as selected. Selecting an id
// that is not in the store returns [ErrNotInStore] and leaves the current
// selection untouched.
func (s *Store[T]) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrNotInStore
	}
	s.selected = id
	s.hasSel = true
	return nil
}

// ClearSelection drops the selected reference, if any.
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.hasSel = false
}

// Selected returns the currently selected record, if any.
func (s *Store[T]) Selected() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	if !s.hasSel {
		return zero, false
	}
	i, ok := s.index[s.selected]
	if !ok {
		return zero, false
	}
	return s.items[i], true
}

// Get returns the record with the given id, if present.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	i, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.items[i], true
}

// All returns a copy of the store's list in order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of records held.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
