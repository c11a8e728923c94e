// Package credential holds the provider API key for the lifetime of a session.
//
// The key lives in exactly one Slot. It is never written to disk, config, or
// logs, and Clear zeroes the stored bytes instead of waiting for the garbage
// collector.
package credential

import (
	"strings"
	"sync"
)

// Slot is a single writable cell for an API key.
type Slot struct {
	mu  sync.Mutex
	key []byte
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Set replaces the stored key. Surrounding whitespace is trimmed and an
// empty value leaves the slot unchanged. It reports whether the key was stored.
func (s *Slot) Set(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zero()
	s.key = []byte(key)
	return true
}

// Get returns the stored key, or "" when the slot is empty.
func (s *Slot) Get() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.key)
}

// IsSet reports whether a key is stored.
func (s *Slot) IsSet() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.key) > 0
}

// Clear zeroes and drops the stored key.
func (s *Slot) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zero()
	s.key = nil
}

func (s *Slot) zero() {
	for i := range s.key {
		s.key[i] = 0
	}
}
