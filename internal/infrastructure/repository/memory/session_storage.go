package memory

import (
	"context"
	"sync"
)

// SessionStorage keeps session key-value items in process memory.
// Contents are lost on restart.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{sessions: make(map[string]map[string]string)}
}

func (s *SessionStorage) GetItem(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.sessions[sessionID][key]
	return value, ok, nil
}

func (s *SessionStorage) SetItem(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.sessions[sessionID]
	if !ok {
		items = make(map[string]string)
		s.sessions[sessionID] = items
	}
	items[key] = value
	return nil
}

func (s *SessionStorage) RemoveItem(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(items, key)
	if len(items) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}
