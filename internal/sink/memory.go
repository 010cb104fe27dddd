// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Parham Hoseyni

package sink

import "sync"

// Memory is an in-memory [Sink] used by tests and by embedders that want to
// observe applied entries without touching the real process environment.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Set implements [Sink].
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Get returns the value stored under key and whether it was present.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Snapshot returns a copy of all stored entries.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
