// Package kv provides a generic thread-safe key-value store.
package kv

import (
	"cmp"
	"slices"
	"sync"
)

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

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// SetIfAbsent stores value only when key is unused. It reports whether the
// value was stored.
func (s *Store[K, V]) SetIfAbsent(key K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false
	}
	s.data[key] = value
	return true
}

// Replace stores value under to and removes from, atomically. It fails when
// from is missing or when to differs from from and is already taken.
func (s *Store[K, V]) Replace(from, to K, value V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[from]; !ok {
		return false
	}
	if from != to {
		if _, taken := s.data[to]; taken {
			return false
		}
		delete(s.data, from)
	}
	s.data[to] = value
	return true
}

// Delete removes a key from the store. It reports whether the key existed.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	delete(s.data, key)
	return ok
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Keys returns all keys in the store.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]K, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// SortedValues returns every value ordered by key. Keys removed while it runs
// are skipped.
func SortedValues[K cmp.Ordered, V any](s *Store[K, V]) []V {
	keys := s.Keys()
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		if v, ok := s.Get(k); ok {
			out = append(out, v)
		}
	}
	return out
}
