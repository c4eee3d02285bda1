package platform

import (
	"context"
	"fmt"
	"sync"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
)

// unlimitedCapacity is returned for entries without a stock ceiling.
const unlimitedCapacity = 1 << 20

type trackerPricelist interface {
	GetPrice(sku string, enforceExisting bool) *entity.PriceEntry
}

// InventoryTracker is the locally cached view of our inventory,
// refreshed from the platform after every accepted trade.
type InventoryTracker struct {
	client    *Client
	pricelist trackerPricelist

	mu     sync.RWMutex
	counts map[string]int
	total  int
}

func NewInventoryTracker(client *Client, pricelist trackerPricelist) *InventoryTracker {
	return &InventoryTracker{
		client:    client,
		pricelist: pricelist,
		counts:    map[string]int{},
	}
}

// Refresh replaces the cached view with the platform's current state.
func (t *InventoryTracker) Refresh(ctx context.Context) error {
	items, err := t.client.FetchInventory(ctx)
	if err != nil {
		return fmt.Errorf("client.FetchInventory: %w", err)
	}

	counts := make(map[string]int, len(items))
	for _, item := range items {
		counts[item.SKU]++
	}

	t.mu.Lock()
	t.counts = counts
	t.total = len(items)
	t.mu.Unlock()

	return nil
}

// CapacityFor returns how many more of the SKU we can take in (buying)
// or give out (selling) within the entry's stock bounds.
func (t *InventoryTracker) CapacityFor(sku string, buying bool) int {
	entry := t.pricelist.GetPrice(sku, false)
	if entry == nil {
		return 0
	}

	have := t.CountOf(sku)

	if buying {
		if entry.MaxStock < 0 {
			return unlimitedCapacity
		}

		return entry.MaxStock - have
	}

	return have - entry.MinStock
}

func (t *InventoryTracker) CountOf(sku string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.counts[sku]
}

func (t *InventoryTracker) TotalItemCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.total
}

// CurrencyCounts returns the pure currency holdings.
func (t *InventoryTracker) CurrencyCounts() entity.CurrencyCounts {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return entity.CurrencyCounts{
		Keys:      t.counts[value.SKUKey],
		Refined:   t.counts[value.SKURef],
		Reclaimed: t.counts[value.SKURec],
		Scrap:     t.counts[value.SKUScrap],
	}
}
