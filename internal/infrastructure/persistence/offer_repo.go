package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tradebot/internal/domain"
	"tradebot/internal/domain/entity"
	"tradebot/pkg/errcodes"
	"tradebot/pkg/lox"
)

// OfferRepository archives terminal offers and serves trade stats.
type OfferRepository struct {
	db *sqlx.DB
}

func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Archive upserts a terminal offer with its decision and side-band
// data. Re-archiving the same offer overwrites the previous row.
func (r *OfferRepository) Archive(ctx context.Context, offer *entity.Offer) error {
	schema, err := fromOffer(offer)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to convert offer")
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO offers (id, partner_id, state, action, reason, our_value, their_value, key_rate, data, created_at, archived_at)
			VALUES (:id, :partner_id, :state, :action, :reason, :our_value, :their_value, :key_rate, :data, :created_at, :archived_at)
			ON CONFLICT (id) DO UPDATE SET
				state = EXCLUDED.state,
				action = EXCLUDED.action,
				reason = EXCLUDED.reason,
				data = EXCLUDED.data,
				archived_at = EXCLUDED.archived_at`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to archive offer")
		}

		return nil
	})
}

// GetByID returns one archived offer.
func (r *OfferRepository) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	query := `
		SELECT id, partner_id, state, action, reason, our_value, their_value, key_rate, data, created_at, archived_at
		FROM offers
		WHERE id = $1`

	var schema offerSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.OfferNotFound, "offer not found")
		}

		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get offer")
	}

	return schema.toDomain()
}

// ListByPartner returns a partner's archived offers, newest first.
func (r *OfferRepository) ListByPartner(ctx context.Context, partnerID string, limit int) ([]*entity.Offer, error) {
	query := `
		SELECT id, partner_id, state, action, reason, our_value, their_value, key_rate, data, created_at, archived_at
		FROM offers
		WHERE partner_id = $1
		ORDER BY archived_at DESC
		LIMIT $2`

	var schemas []offerSchema
	if err := r.db.SelectContext(ctx, &schemas, query, partnerID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list offers")
	}

	offers, err := lox.MapErr(schemas, func(s offerSchema) (*entity.Offer, error) {
		return s.toDomain()
	})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to convert offers")
	}

	return offers, nil
}

// TradeStats are counts of accepted trades over standard windows.
type TradeStats struct {
	Total         int `db:"total" json:"total"`
	Last24h       int `db:"last_24h" json:"last_24h"`
	SinceMidnight int `db:"since_midnight" json:"since_midnight"`
}

// Stats counts accepted trades: all time, the trailing 24 hours, and
// since local midnight.
func (r *OfferRepository) Stats(ctx context.Context, now time.Time) (TradeStats, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE archived_at >= $1) AS last_24h,
			COUNT(*) FILTER (WHERE archived_at >= $2) AS since_midnight
		FROM offers
		WHERE state = $3`

	var stats TradeStats
	err := r.db.GetContext(ctx, &stats, query, now.Add(-24*time.Hour), midnight, int(entity.StateAccepted))
	if err != nil {
		return TradeStats{}, domain.WrapError(err, errcodes.InternalServerError, "failed to count trades")
	}

	return stats, nil
}
