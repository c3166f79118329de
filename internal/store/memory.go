package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps records in process memory. Used by tests and the
// default development setup.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = clone(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryStore) MGet(_ context.Context, keys ...string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := m.data[k]; ok {
			out[i] = clone(v)
		}
	}
	return out, nil
}

func (m *MemoryStore) ScanPrefix(_ context.Context, prefix string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for k, v := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Record{Key: k, Value: clone(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.data[key]
	if !ok {
		cur = nil
	}
	next, err := fn(clone(cur))
	if err != nil {
		if errors.Is(err, ErrSkip) {
			return nil
		}
		return err
	}
	if next == nil {
		delete(m.data, key)
		return nil
	}
	m.data[key] = clone(next)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
