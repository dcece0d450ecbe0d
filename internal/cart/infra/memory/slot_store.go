package memory

import (
	"context"
	"sync"

	"github.com/dwikikusuma/storefront/internal/cart/app"
)

// SlotStore keeps slots in process memory. Nothing survives a restart.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string]string)}
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return "", app.ErrSlotNotFound
	}
	return v, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}
