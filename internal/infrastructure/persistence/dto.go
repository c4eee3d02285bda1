package persistence

import (
	"time"

	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// offerSchema maps one row of the offers table.
type offerSchema struct {
	ID         string    `db:"id"`
	PartnerID  string    `db:"partner_id"`
	State      int       `db:"state"`
	Action     string    `db:"action"`
	Reason     string    `db:"reason"`
	OurValue   float64   `db:"our_value"`
	TheirValue float64   `db:"their_value"`
	KeyRate    float64   `db:"key_rate"`
	Data       []byte    `db:"data"`
	CreatedAt  time.Time `db:"created_at"`
	ArchivedAt time.Time `db:"archived_at"`
}

func fromOffer(offer *entity.Offer) (*offerSchema, error) {
	schema := &offerSchema{
		ID:         offer.ID,
		PartnerID:  offer.PartnerID,
		State:      int(offer.State),
		CreatedAt:  offer.CreatedAt,
		ArchivedAt: time.Now(),
	}

	if offer.Data == nil {
		return schema, nil
	}

	schema.Action = string(offer.Data.Action)
	schema.Reason = offer.Data.Reason

	if snapshot := offer.Data.Value; snapshot != nil {
		schema.OurValue = snapshot.Our
		schema.TheirValue = snapshot.Their
		schema.KeyRate = snapshot.KeyRate
	}

	data, err := json.Marshal(offer.Data)
	if err != nil {
		return nil, err
	}
	schema.Data = data

	return schema, nil
}

func (s *offerSchema) toDomain() (*entity.Offer, error) {
	offer := &entity.Offer{
		ID:        s.ID,
		PartnerID: s.PartnerID,
		State:     entity.OfferState(s.State),
		CreatedAt: s.CreatedAt,
	}

	if len(s.Data) > 0 {
		var data entity.OfferData
		if err := json.Unmarshal(s.Data, &data); err != nil {
			return nil, err
		}

		offer.Data = &data
	}

	return offer, nil
}
