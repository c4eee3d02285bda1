package entity

import (
	"time"

	"tradebot/internal/domain/value"
)

// OfferState mirrors the platform's trade-offer states we react to.
type OfferState int

const (
	StateInvalid                  OfferState = 1
	StateActive                   OfferState = 2
	StateAccepted                 OfferState = 3
	StateCountered                OfferState = 4
	StateExpired                  OfferState = 5
	StateCanceled                 OfferState = 6
	StateDeclined                 OfferState = 7
	StateInvalidItems             OfferState = 8
	StateCreatedNeedsConfirmation OfferState = 9
	StateCanceledBySecondFactor   OfferState = 10
	StateInEscrow                 OfferState = 11
)

func (s OfferState) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateActive:
		return "active"
	case StateAccepted:
		return "accepted"
	case StateCountered:
		return "countered"
	case StateExpired:
		return "expired"
	case StateCanceled:
		return "canceled"
	case StateDeclined:
		return "declined"
	case StateInvalidItems:
		return "invalid_items"
	case StateCreatedNeedsConfirmation:
		return "created_needs_confirmation"
	case StateCanceledBySecondFactor:
		return "canceled_by_second_factor"
	case StateInEscrow:
		return "in_escrow"
	default:
		return "unknown"
	}
}

// Action is the engine's verdict on an offer.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionSkip    Action = "skip"
)

type Description struct {
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

type Item struct {
	AssetID      string        `json:"asset_id"`
	SKU          string        `json:"sku"`
	Name         string        `json:"name"`
	Descriptions []Description `json:"descriptions,omitempty"`
}

// Offer is one incoming or outgoing trade offer under evaluation.
type Offer struct {
	ID             string
	PartnerID      string
	Message        string
	ItemsToGive    []Item
	ItemsToReceive []Item
	State          OfferState
	CreatedAt      time.Time

	Data *OfferData
}

// ItemsDict is the per-SKU count of each side of an offer.
type ItemsDict struct {
	Our   map[string]int `json:"our"`
	Their map[string]int `json:"their"`
}

// ValueSnapshot records the totals an offer was evaluated at, in
// scrap-equivalents. KeyRate is the key's metal price in refined.
type ValueSnapshot struct {
	Our     float64 `json:"our"`
	Their   float64 `json:"their"`
	KeyRate float64 `json:"key_rate"`
}

// OfferData is the mutable side-band of computed attributes attached
// to an offer for its lifetime.
type OfferData struct {
	HandledByUs    bool           `json:"handled_by_us"`
	NotifyPartner  bool           `json:"notify_partner"`
	Dict           *ItemsDict     `json:"dict,omitempty"`
	Value          *ValueSnapshot `json:"value,omitempty"`
	Prices         []PriceUsed    `json:"prices,omitempty"`
	Accepted       bool           `json:"accepted"`
	CanceledByUser bool           `json:"canceled_by_user"`
	Action         Action         `json:"action,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	// LastState keeps lifecycle reactions idempotent across repeated
	// notifications of the same state.
	LastState OfferState `json:"last_state,omitempty"`
}

// PriceUsed is the price snapshot applied to one SKU during valuation.
type PriceUsed struct {
	SKU  string         `json:"sku"`
	Buy  value.Currency `json:"buy"`
	Sell value.Currency `json:"sell"`
}

// Dicts builds the per-SKU count maps for both sides.
func (o *Offer) Dicts() ItemsDict {
	our := make(map[string]int, len(o.ItemsToGive))
	for _, item := range o.ItemsToGive {
		our[item.SKU]++
	}

	their := make(map[string]int, len(o.ItemsToReceive))
	for _, item := range o.ItemsToReceive {
		their[item.SKU]++
	}

	return ItemsDict{Our: our, Their: their}
}

// AssetsOf returns the received assets carrying the given SKU.
func (o *Offer) AssetsOf(sku string) []Item {
	var assets []Item
	for _, item := range o.ItemsToReceive {
		if item.SKU == sku {
			assets = append(assets, item)
		}
	}

	return assets
}
