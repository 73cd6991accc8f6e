package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rcalhoun/summit-backend/internal/app/model"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryCartStore is an in-memory CartStore used in tests and as a local
// development fallback when Redis is not configured. Entries go through
// the same JSON round trip as the Redis store so both implementations
// share serialization behavior.
type MemoryCartStore struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
}

// NewMemoryCartStore creates an in-memory cart store.
func NewMemoryCartStore(defaultTTL time.Duration) *MemoryCartStore {
	return &MemoryCartStore{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
	}
}

func (s *MemoryCartStore) Get(ctx context.Context, key string) (*model.Cart, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}

	var cart model.Cart
	if err := json.Unmarshal(entry.data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MemoryCartStore) Set(ctx context.Context, key string, cart *model.Cart, ttl time.Duration) error {
	if ttl < 0 {
		ttl = s.defaultTTL
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryCartStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
