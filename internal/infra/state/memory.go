package state

import (
	"context"
	"sync"
)

type cacheKey struct {
	workspace string
	kind      string
}

// Memory is the Store used when no database is configured. Contents are lost
// on restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]Credentials
	cache    map[cacheKey][]byte
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]Credentials),
		cache:    make(map[cacheKey][]byte),
	}
}

func (m *Memory) LoadSession(_ context.Context, workspaceID string) (Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.sessions[workspaceID]
	if !ok {
		return Credentials{}, ErrNotFound
	}
	return Credentials{Token: c.Token, User: clone(c.User)}, nil
}

func (m *Memory) SaveSession(_ context.Context, workspaceID string, c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[workspaceID] = Credentials{Token: c.Token, User: clone(c.User)}
	return nil
}

func (m *Memory) ClearSession(_ context.Context, workspaceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, workspaceID)
	for k := range m.cache {
		if k.workspace == workspaceID {
			delete(m.cache, k)
		}
	}
	return nil
}

func (m *Memory) LoadCache(_ context.Context, workspaceID, kind string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.cache[cacheKey{workspaceID, kind}]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(b), nil
}

func (m *Memory) SaveCache(_ context.Context, workspaceID, kind string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[cacheKey{workspaceID, kind}] = clone(payload)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
