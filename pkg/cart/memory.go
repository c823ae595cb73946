package cart

import (
	"context"
	"encoding/json"
	"sync"

	"storefront.dev/shop/pkg/models"
)

// MemoryStore keeps carts in process memory. Carts are stored serialized so
// callers never share state with the store.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.carts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	var c models.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *MemoryStore) Save(_ context.Context, c *models.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[c.SessionID] = raw
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
