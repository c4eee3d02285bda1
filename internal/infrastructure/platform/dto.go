package platform

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	provenanceDuped = "duped"
	provenanceClean = "clean"
)

type offersResponse struct {
	Offers []offerSchema `json:"offers"`
}

type offerSchema struct {
	ID             string       `json:"id"`
	PartnerID      string       `json:"partner_id"`
	Message        string       `json:"message"`
	State          int          `json:"state"`
	CreatedAt      int64        `json:"created_at"`
	ItemsToGive    []itemSchema `json:"items_to_give"`
	ItemsToReceive []itemSchema `json:"items_to_receive"`
}

type itemSchema struct {
	AssetID      string              `json:"asset_id"`
	SKU          string              `json:"sku"`
	Name         string              `json:"name"`
	Descriptions []descriptionSchema `json:"descriptions,omitempty"`
}

type descriptionSchema struct {
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

type messageRequest struct {
	PartnerID string `json:"partner_id"`
	Message   string `json:"message,omitempty"`
}

type escrowResponse struct {
	Escrow bool `json:"escrow"`
}

type reputationResponse struct {
	Banned bool `json:"banned"`
}

type provenanceResponse struct {
	Status string `json:"status"`
}

type inventoryResponse struct {
	Items []itemSchema `json:"items"`
}

func (s offerSchema) toDomain() entity.Offer {
	return entity.Offer{
		ID:             s.ID,
		PartnerID:      s.PartnerID,
		Message:        s.Message,
		State:          entity.OfferState(s.State),
		CreatedAt:      time.Unix(s.CreatedAt, 0),
		ItemsToGive:    toDomainItems(s.ItemsToGive),
		ItemsToReceive: toDomainItems(s.ItemsToReceive),
	}
}

func (s itemSchema) toDomain() entity.Item {
	descriptions := make([]entity.Description, 0, len(s.Descriptions))
	for _, d := range s.Descriptions {
		descriptions = append(descriptions, entity.Description{Value: d.Value, Color: d.Color})
	}

	return entity.Item{
		AssetID:      s.AssetID,
		SKU:          s.SKU,
		Name:         s.Name,
		Descriptions: descriptions,
	}
}

func toDomainItems(schemas []itemSchema) []entity.Item {
	items := make([]entity.Item, 0, len(schemas))
	for _, schema := range schemas {
		items = append(items, schema.toDomain())
	}

	return items
}
