package store

import (
	"context"
	"sync"
)

// Memory keeps every profile's keys in process memory.  It is the default
// driver for development and the backing store of most tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string // profile -> key -> value
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

// Scoped returns the store of a single profile.
func (m *Memory) Scoped(profileID string) Store {
	return &memoryScope{m: m, profile: profileID}
}

// Factory adapts Scoped to the Factory signature.
func (m *Memory) Factory() Factory { return m.Scoped }

type memoryScope struct {
	m       *Memory
	profile string
}

func (s *memoryScope) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	v, ok := s.m.data[s.profile][key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memoryScope) Apply(ctx context.Context, b Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.Empty() {
		return nil
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	kv, ok := s.m.data[s.profile]
	if !ok {
		kv = make(map[string]string)
		s.m.data[s.profile] = kv
	}
	for _, k := range b.Remove {
		delete(kv, k)
	}
	for k, v := range b.Set {
		kv[k] = v
	}
	return nil
}
