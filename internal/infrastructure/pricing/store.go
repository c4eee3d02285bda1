package pricing

import (
	"context"
	"fmt"
	"sync"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
)

// Store is the in-memory pricelist snapshot the engine reads from.
// Replaced wholesale on every refresh.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]entity.PriceEntry
	keyPrice value.Currency
}

func NewStore() *Store {
	return &Store{entries: map[string]entity.PriceEntry{}}
}

// Load fetches the pricelist through the client and swaps it in.
func (s *Store) Load(ctx context.Context, client *Client) error {
	entries, keyPrice, err := client.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("client.FetchAll: %w", err)
	}

	s.Replace(entries, keyPrice)

	return nil
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(entries []entity.PriceEntry, keyPrice value.Currency) {
	bySKU := make(map[string]entity.PriceEntry, len(entries))
	for _, entry := range entries {
		bySKU[entry.SKU] = entry
	}

	s.mu.Lock()
	s.entries = bySKU
	s.keyPrice = keyPrice
	s.mu.Unlock()
}

// GetPrice returns the entry for the SKU, or nil. enforceExisting is
// accepted for interface compatibility; the snapshot holds only
// existing entries.
func (s *Store) GetPrice(sku string, _ bool) *entity.PriceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[sku]
	if !ok {
		return nil
	}

	return &entry
}

func (s *Store) GetKeyPrice() value.Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.keyPrice
}

// Len returns the number of priced SKUs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
