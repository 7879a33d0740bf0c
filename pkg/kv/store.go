// Package kv provides a generic thread-safe key-value store.
package kv

import "sync"

// Store is a thread-safe generic key-value store.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new key-value store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Upsert replaces the value for key with the result of fn. fn receives the
// previous value (if any) and runs while the store lock is held, so it must
// not call back into the store.
func (s *Store[K, V]) Upsert(key K, fn func(old V, exists bool) V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.data[key]
	val := fn(old, ok)
	s.data[key] = val
	return val
}

// DeleteFunc removes key only if match returns true for its current value.
// Reports whether the key was removed.
func (s *Store[K, V]) DeleteFunc(key K, match func(V) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok || !match(val) {
		return false
	}
	delete(s.data, key)
	return true
}

// Drain removes every entry and returns them.
func (s *Store[K, V]) Drain() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.data
	s.data = make(map[K]V)
	return out
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
