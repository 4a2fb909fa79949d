// Package store persists viewer preferences in a small string key-value
// store, the terminal equivalent of the browser's origin-scoped
// localStorage.
package store

import (
	"errors"
	"sync"
)

// ErrStoreClosed is returned when writing to a closed store.
var ErrStoreClosed = errors.New("store is closed")

// KV is a string key-value store. Each Set is an independent overwrite.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)

	// Set stores value under key.
	Set(key, value string) error
}

// ChangeSource tells subscribers who changed the store.
type ChangeSource int

const (
	// ChangeSourceLocal is a Set through this store instance.
	ChangeSourceLocal ChangeSource = iota
	// ChangeSourceExternal is a change picked up from disk, made by another
	// process.
	ChangeSourceExternal
)

// ChangeEvent signals that stored values changed.
type ChangeEvent struct {
	Source ChangeSource
	Keys   []string
}

// MemoryKV is an in-memory KV. The zero value is ready to use.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemoryKV creates a MemoryKV seeded with values.
func NewMemoryKV(values map[string]string) *MemoryKV {
	m := &MemoryKV{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get returns the stored value.
func (m *MemoryKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores a value.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Writes returns how many times Set has been called.
func (m *MemoryKV) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Snapshot returns a copy of all values.
func (m *MemoryKV) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
