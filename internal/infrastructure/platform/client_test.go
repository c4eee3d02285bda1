package platform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/internal/infrastructure/platform"
)

func newClient(t *testing.T, handler http.Handler) *platform.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return platform.NewClient(config.Platform{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	}, []string{"103582791464712345"})
}

func TestClient_GetOffers(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/offers", r.URL.Path)
		rq.Equal("Bearer test-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"offers": [{
				"id": "100",
				"partner_id": "76561198000000001",
				"message": "hi",
				"state": 2,
				"created_at": 1700000000,
				"items_to_receive": [
					{"asset_id": "a1", "sku": "5000;6", "name": "Scrap Metal"}
				]
			}]
		}`))
	}))

	offers, err := client.GetOffers(context.Background(), time.Unix(0, 0))
	rq.NoError(err)
	rq.Len(offers, 1)
	rq.Equal("100", offers[0].ID)
	rq.Equal(entity.StateActive, offers[0].State)
	rq.Len(offers[0].ItemsToReceive, 1)
	rq.Equal("5000;6", offers[0].ItemsToReceive[0].SKU)
}

func TestClient_GatekeeperResultsCached(t *testing.T) {
	rq := require.New(t)

	var hits int
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`{"escrow": true, "banned": true}`))
	}))

	ctx := context.Background()

	for range 3 {
		escrow, err := client.WouldEscrow(ctx, "100", "76561198000000001")
		rq.NoError(err)
		rq.True(escrow)
	}
	rq.Equal(1, hits)

	for range 3 {
		banned, err := client.IsBanned(ctx, "76561198000000001")
		rq.NoError(err)
		rq.True(banned)
	}
	rq.Equal(2, hits)
}

func TestClient_IsDuplicated(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected *bool
	}{
		{name: "duped", status: "duped", expected: boolPtr(true)},
		{name: "clean", status: "clean", expected: boolPtr(false)},
		{name: "inconclusive", status: "unknown", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"status": "` + tc.status + `"}`))
			}))

			duped, err := client.IsDuplicated(context.Background(), "asset-1")
			rq.NoError(err)
			rq.Equal(tc.expected, duped)
		})
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.IsBanned(context.Background(), "76561198000000001")
	rq.Error(err)
}

type stubPricelist struct {
	entries map[string]*entity.PriceEntry
}

func (p stubPricelist) GetPrice(sku string, _ bool) *entity.PriceEntry {
	return p.entries[sku]
}

func TestInventoryTracker(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/inventory", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"items": [
				{"asset_id": "k1", "sku": "5021;6", "name": "Mann Co. Supply Crate Key"},
				{"asset_id": "r1", "sku": "5002;6", "name": "Refined Metal"},
				{"asset_id": "r2", "sku": "5002;6", "name": "Refined Metal"},
				{"asset_id": "h1", "sku": "378;6", "name": "The Team Captain"}
			]
		}`))
	}))

	tracker := platform.NewInventoryTracker(client, stubPricelist{entries: map[string]*entity.PriceEntry{
		"378;6":  {SKU: "378;6", MinStock: 0, MaxStock: 3},
		"5021;6": {SKU: "5021;6", MinStock: 0, MaxStock: -1},
	}})

	rq.NoError(tracker.Refresh(context.Background()))

	rq.Equal(4, tracker.TotalItemCount())
	rq.Equal(2, tracker.CountOf(value.SKURef))

	counts := tracker.CurrencyCounts()
	rq.Equal(1, counts.Keys)
	rq.Equal(2, counts.Refined)

	rq.Equal(2, tracker.CapacityFor("378;6", true))
	rq.Equal(1, tracker.CapacityFor("378;6", false))
	rq.Positive(tracker.CapacityFor("5021;6", true))
	rq.Zero(tracker.CapacityFor("999;6", true))
}

func boolPtr(v bool) *bool { return &v }
