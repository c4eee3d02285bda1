package entity

import "tradebot/internal/domain/value"

// Intent is the trading direction configured for a price entry.
type Intent int

const (
	IntentBuy  Intent = 0
	IntentSell Intent = 1
	IntentBank Intent = 2
)

func (i Intent) CanBuy() bool {
	return i == IntentBuy || i == IntentBank
}

func (i Intent) CanSell() bool {
	return i == IntentSell || i == IntentBank
}

// PriceEntry is one pricelist row. Owned by the pricelist collaborator;
// the engine only reads it.
type PriceEntry struct {
	SKU       string         `json:"sku" db:"sku"`
	Name      string         `json:"name" db:"name"`
	Buy       value.Currency `json:"buy" db:"buy"`
	Sell      value.Currency `json:"sell" db:"sell"`
	Intent    Intent         `json:"intent" db:"intent"`
	Autoprice bool           `json:"autoprice" db:"autoprice"`
	// MinStock/MaxStock bound how many we hold; MaxStock -1 means
	// unlimited.
	MinStock int `json:"min_stock" db:"min_stock"`
	MaxStock int `json:"max_stock" db:"max_stock"`
}
