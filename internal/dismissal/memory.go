package dismissal

import (
	"context"
	"sync"

	"github.com/patrickwarner/openinapp/internal/banner"
)

// MemoryBackend keeps client state in process memory.
type MemoryBackend struct {
	mu      sync.RWMutex
	clients map[string]map[string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{clients: make(map[string]map[string]string)}
}

// For returns the store for clientID.
func (b *MemoryBackend) For(clientID string) banner.KeyValueStore {
	return &memoryStore{backend: b, clientID: clientID}
}

type memoryStore struct {
	backend  *MemoryBackend
	clientID string
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.backend.mu.RLock()
	defer s.backend.mu.RUnlock()
	v, ok := s.backend.clients[s.clientID][key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	values, ok := s.backend.clients[s.clientID]
	if !ok {
		values = make(map[string]string)
		s.backend.clients[s.clientID] = values
	}
	values[key] = value
	return nil
}
