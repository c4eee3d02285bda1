package pricing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"tradebot/internal/config"
	"tradebot/internal/domain"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/errcodes"
	"tradebot/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	lookupTTL     = 10 * time.Minute
	lookupJanitor = time.Minute
)

// Client is the price-suggestion HTTP API. Live lookups are rate
// limited by a fixed pre-request delay and memoized for a short while.
type Client struct {
	cfg  config.Pricing
	http *http.Client

	lookups *cache.Cache
}

func NewClient(cfg config.Pricing) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
		},
		lookups: cache.New(lookupTTL, lookupJanitor),
	}
}

// GetLivePrice fetches the suggested price for a SKU absent from the
// pricelist. Sleeps the configured delay before each network hit.
func (c *Client) GetLivePrice(ctx context.Context, sku string) (*entity.PriceEntry, error) {
	if cached, ok := c.lookups.Get(sku); ok {
		return cached.(*entity.PriceEntry), nil
	}

	if err := c.waitDelay(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/prices/%s", c.cfg.BaseURL, url.PathEscape(sku))

	var response priceSchema
	if err := c.get(ctx, reqURL, &response); err != nil {
		return nil, domain.WrapError(err, errcodes.PricingServiceDown, "live price lookup failed")
	}

	entry := response.toDomain(sku)
	c.lookups.SetDefault(sku, entry)

	return entry, nil
}

// FetchAll downloads the full pricelist.
func (c *Client) FetchAll(ctx context.Context) ([]entity.PriceEntry, value.Currency, error) {
	var response pricelistSchema
	if err := c.get(ctx, c.cfg.BaseURL+"/prices", &response); err != nil {
		return nil, value.Currency{}, domain.WrapError(err, errcodes.PricingServiceDown, "pricelist fetch failed")
	}

	entries := make([]entity.PriceEntry, 0, len(response.Prices))
	for _, schema := range response.Prices {
		if entry := schema.toDomain(schema.SKU); entry != nil {
			entries = append(entries, *entry)
		}
	}

	return entries, response.KeyPrice.toDomain(), nil
}

func (c *Client) waitDelay(ctx context.Context) error {
	if c.cfg.RequestDelay <= 0 {
		return nil
	}

	select {
	case <-time.After(c.cfg.RequestDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}

func (c *Client) get(ctx context.Context, reqURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}

type pricelistSchema struct {
	Prices   []priceSchema  `json:"prices"`
	KeyPrice currencySchema `json:"key_price"`
}

type priceSchema struct {
	SKU       string         `json:"sku"`
	Name      string         `json:"name"`
	Buy       currencySchema `json:"buy"`
	Sell      currencySchema `json:"sell"`
	Intent    int            `json:"intent"`
	Autoprice bool           `json:"autoprice"`
	MinStock  int            `json:"min_stock"`
	MaxStock  int            `json:"max_stock"`
}

type currencySchema struct {
	Keys  int     `json:"keys"`
	Metal float64 `json:"metal"`
}

func (s currencySchema) toDomain() value.Currency {
	return value.Currency{Keys: s.Keys, Metal: s.Metal}
}

func (s priceSchema) toDomain(sku string) *entity.PriceEntry {
	if sku == "" {
		return nil
	}

	return &entity.PriceEntry{
		SKU:       sku,
		Name:      s.Name,
		Buy:       s.Buy.toDomain(),
		Sell:      s.Sell.toDomain(),
		Intent:    entity.Intent(s.Intent),
		Autoprice: s.Autoprice,
		MinStock:  s.MinStock,
		MaxStock:  s.MaxStock,
	}
}
