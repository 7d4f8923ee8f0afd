package store

import (
	"context"
	"sync"
)

// MemoryStore keeps namespaces in memory. The zero value is not usable;
// call NewMemoryStore.
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[Namespace]map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{namespaces: make(map[Namespace]map[string]string)}
}

func (s *MemoryStore) Enumerate(ctx context.Context, ns Namespace) ([]Entry, error) {
	if err := ns.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.namespaces[ns]
	if !ok {
		m = make(map[string]string)
		s.namespaces[ns] = m
	}
	return entriesFromMap(m), nil
}

// Exists reports whether ns has been created.
func (s *MemoryStore) Exists(ns Namespace) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.namespaces[ns]
	return ok
}

func (s *MemoryStore) Get(ctx context.Context, ns Namespace, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.namespaces[ns][name]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, ns Namespace, name, value string) error {
	if err := ns.Validate(); err != nil {
		return err
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.namespaces[ns]
	if !ok {
		m = make(map[string]string)
		s.namespaces[ns] = m
	}
	m[name] = value
	return nil
}

func (s *MemoryStore) Unset(ctx context.Context, ns Namespace, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.namespaces[ns]
	if _, ok := m[name]; !ok {
		return false, nil
	}
	delete(m, name)
	return true, nil
}

// NoopStore stands in on platforms without a persistent store. It is
// always empty and never fails.
type NoopStore struct{}

func (NoopStore) Enumerate(context.Context, Namespace) ([]Entry, error) {
	return nil, nil
}

func (NoopStore) Get(context.Context, Namespace, string) (string, bool, error) {
	return "", false, nil
}

func (NoopStore) Set(context.Context, Namespace, string, string) error {
	return ErrReadOnly
}

func (NoopStore) Unset(context.Context, Namespace, string) (bool, error) {
	return false, ErrReadOnly
}
