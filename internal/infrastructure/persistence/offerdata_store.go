package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tradebot/internal/domain/entity"
)

const offerDataTTL = 14 * 24 * time.Hour

// OfferDataStore keeps the mutable offer side-band in Redis so
// handled/notify flags, dicts, and value snapshots survive restarts
// while an offer is still in flight.
type OfferDataStore struct {
	client *redis.Client
}

func NewOfferDataStore(client *redis.Client) *OfferDataStore {
	return &OfferDataStore{client: client}
}

func (s *OfferDataStore) key(offerID string) string {
	return "offer:data:" + offerID
}

// Save persists the side-band of one offer.
func (s *OfferDataStore) Save(ctx context.Context, offerID string, data *entity.OfferData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.client.Set(ctx, s.key(offerID), payload, offerDataTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Load returns the stored side-band, or nil when the offer was never
// seen.
func (s *OfferDataStore) Load(ctx context.Context, offerID string) (*entity.OfferData, error) {
	payload, err := s.client.Get(ctx, s.key(offerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("redis get: %w", err)
	}

	var data entity.OfferData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return &data, nil
}

// Delete drops the side-band once the offer reached a terminal state
// and was archived.
func (s *OfferDataStore) Delete(ctx context.Context, offerID string) error {
	if err := s.client.Del(ctx, s.key(offerID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}
