package storage

import (
	"errors"
	"sort"
	"sync"
)

// ErrUnavailable simulates a disabled or quota-exhausted backing store.
var ErrUnavailable = errors.New("storage unavailable")

// Memory is a map-backed Store. It exists for tests and for running the
// engine in a degraded, non-persistent mode when sqlite cannot be opened.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites makes every Set/Delete/Reset return ErrUnavailable.
	FailWrites bool
	// FailReads makes every Get report absence.
	FailReads bool
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return "", false
	}
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.data = make(map[string]string)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
