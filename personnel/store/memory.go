// Package store provides KeyValueStore implementations.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/warp/asn-monitor/personnel"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte

	fail bool // every call returns a storage error
	puts int
}

func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.fail {
		return nil, false, fmt.Errorf("memory get %q: %w", key, personnel.ErrStorage)
	}
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Put stores a copy of value.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return fmt.Errorf("memory put %q: %w", key, personnel.ErrStorage)
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	m.puts++
	return nil
}

// Puts returns the number of successful writes.
func (m *Memory) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// SetFail toggles failure injection.
func (m *Memory) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = fail
}
