package engine_test

import (
	"context"
	"errors"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/service/engine"
	"tradebot/internal/domain/value"
)

type fakePricelist struct {
	prices   map[string]*entity.PriceEntry
	keyPrice value.Currency
}

func (f *fakePricelist) GetPrice(sku string, _ bool) *entity.PriceEntry {
	return f.prices[sku]
}

func (f *fakePricelist) GetKeyPrice() value.Currency {
	return f.keyPrice
}

type fakeLivePricer struct {
	entries map[string]*entity.PriceEntry
	err     error
	calls   int
}

func (f *fakeLivePricer) GetLivePrice(_ context.Context, sku string) (*entity.PriceEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries[sku], nil
}

type fakeInventory struct {
	capacity map[string]int
	counts   entity.CurrencyCounts
	total    int
}

func (f *fakeInventory) CapacityFor(sku string, _ bool) int {
	if limit, ok := f.capacity[sku]; ok {
		return limit
	}
	return 1000
}

func (f *fakeInventory) CurrencyCounts() entity.CurrencyCounts { return f.counts }
func (f *fakeInventory) TotalItemCount() int                   { return f.total }

type fakeReputation struct {
	escrow    bool
	escrowErr error
	banned    bool
	bannedErr error
	duped     map[string]*bool
	dupeErr   map[string]error
}

func (f *fakeReputation) WouldEscrow(_ context.Context, _, _ string) (bool, error) {
	return f.escrow, f.escrowErr
}

func (f *fakeReputation) IsBanned(_ context.Context, _ string) (bool, error) {
	return f.banned, f.bannedErr
}

func (f *fakeReputation) IsDuplicated(_ context.Context, assetID string) (*bool, error) {
	if err, ok := f.dupeErr[assetID]; ok {
		return nil, err
	}
	if result, ok := f.duped[assetID]; ok {
		return result, nil
	}
	return nil, errors.New("unknown asset")
}

type fakeListings struct {
	refreshed  []string
	refreshAll int
}

func (f *fakeListings) Refresh(_ context.Context, sku string) error {
	f.refreshed = append(f.refreshed, sku)
	return nil
}

func (f *fakeListings) RefreshAll(_ context.Context) error {
	f.refreshAll++
	return nil
}

type fixture struct {
	cfg        config.Engine
	pricelist  *fakePricelist
	livePricer *fakeLivePricer
	inventory  *fakeInventory
	reputation *fakeReputation
	listings   *fakeListings
}

func defaultFixture() *fixture {
	return &fixture{
		cfg: config.Engine{
			ManualReview:              true,
			CraftWeaponAsCurrency:     true,
			AllowOverpay:              true,
			AcceptInvalidItemsOverpay: true,
			AcceptOverstockedOverpay:  true,
			AutoDeclineInvalidValue:   true,
			DupeCheckEnabled:          true,
			MinimumKeysDupeCheck:      10,
			DeclineDupes:              true,
			CheckUsesDueling:          true,
			CheckUsesNoiseMaker:       true,
			ShowOnlyMetal:             true,
		},
		pricelist: &fakePricelist{
			prices:   map[string]*entity.PriceEntry{},
			keyPrice: value.Currency{Metal: 50},
		},
		livePricer: &fakeLivePricer{entries: map[string]*entity.PriceEntry{}},
		inventory:  &fakeInventory{capacity: map[string]int{}},
		reputation: &fakeReputation{duped: map[string]*bool{}, dupeErr: map[string]error{}},
		listings:   &fakeListings{},
	}
}

func (f *fixture) engine() *engine.Engine {
	return engine.New(f.cfg, f.pricelist, f.livePricer, f.inventory, f.reputation, f.listings)
}

func newOffer(id, partnerID, message string, give, receive []entity.Item) *entity.Offer {
	return &entity.Offer{
		ID:             id,
		PartnerID:      partnerID,
		Message:        message,
		ItemsToGive:    give,
		ItemsToReceive: receive,
		State:          entity.StateActive,
		Data:           &entity.OfferData{HandledByUs: true, NotifyPartner: true},
	}
}

func items(skus ...string) []entity.Item {
	result := make([]entity.Item, 0, len(skus))
	for i, sku := range skus {
		result = append(result, entity.Item{
			AssetID: "asset-" + sku + "-" + string(rune('a'+i)),
			SKU:     sku,
			Name:    sku,
		})
	}
	return result
}

func boolPtr(b bool) *bool { return &b }
