package pricing_test

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
	"tradebot/internal/infrastructure/pricing"
)

func newClient(t *testing.T, delay time.Duration, handler http.Handler) *pricing.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return pricing.NewClient(config.Pricing{
		BaseURL:      srv.URL,
		Timeout:      time.Second,
		RequestDelay: delay,
	})
}

func TestClient_GetLivePriceMemoized(t *testing.T) {
	rq := require.New(t)

	var hits int
	client := newClient(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		rq.Equal("/prices/999;6", r.URL.Path)
		_, _ = w.Write([]byte(`{"name": "Unusual Thing", "buy": {"metal": 5}, "sell": {"metal": 5.33}}`))
	}))

	ctx := context.Background()

	for range 3 {
		entry, err := client.GetLivePrice(ctx, "999;6")
		rq.NoError(err)
		rq.Equal("999;6", entry.SKU)
		rq.Equal(value.Currency{Metal: 5.33}, entry.Sell)
	}

	rq.Equal(1, hits)
}

func TestClient_GetLivePriceDelayRespectsContext(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, time.Minute, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.GetLivePrice(ctx, "999;6")
	rq.ErrorIs(err, context.DeadlineExceeded)
}

func TestClient_FetchAll(t *testing.T) {
	rq := require.New(t)

	client := newClient(t, 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rq.Equal("/prices", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"key_price": {"metal": 50},
			"prices": [
				{"sku": "5021;6", "name": "Mann Co. Supply Crate Key", "buy": {"metal": 49.88}, "sell": {"metal": 50}, "intent": 2, "max_stock": -1},
				{"sku": "378;6", "name": "The Team Captain", "buy": {"metal": 1}, "sell": {"metal": 1.22}, "max_stock": 2},
				{"sku": "", "name": "broken row"}
			]
		}`))
	}))

	entries, keyPrice, err := client.FetchAll(context.Background())
	rq.NoError(err)
	rq.Equal(value.Currency{Metal: 50}, keyPrice)
	rq.Len(entries, 2)

	store := pricing.NewStore()
	store.Replace(entries, keyPrice)

	rq.Equal(2, store.Len())
	rq.Equal(value.Currency{Metal: 50}, store.GetKeyPrice())

	key := store.GetPrice("5021;6", false)
	rq.NotNil(key)
	rq.Equal(entity.IntentBank, key.Intent)
	rq.Equal(-1, key.MaxStock)

	rq.Nil(store.GetPrice("404;6", false))
}
