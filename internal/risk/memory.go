package risk

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, used in tests and by the CLI when it
// runs without a database-backed state.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]BalanceState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]BalanceState)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (BalanceState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[key]
	return state, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, state BalanceState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = state
	return nil
}
