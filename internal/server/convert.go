package server

import (
	"time"

	"tradebot/internal/domain/entity"
	"tradebot/internal/worker"
	"tradebot/pkg/lox"
)

type restReviewList struct {
	Reviews []restReview `json:"reviews"`
}

type restReview struct {
	OfferID         string                `json:"offer_id"`
	PartnerID       string                `json:"partner_id"`
	Reasons         []string              `json:"reasons"`
	InvalidItems    []string              `json:"invalid_items,omitempty"`
	Overstocked     []string              `json:"overstocked,omitempty"`
	DupedItems      []string              `json:"duped_items,omitempty"`
	DupeFailedItems []string              `json:"dupe_failed_items,omitempty"`
	Value           *entity.ValueSnapshot `json:"value,omitempty"`
	QueuedAt        time.Time             `json:"queued_at"`
}

type restResolveRequest struct {
	Action string `json:"action" validate:"required,oneof=accept decline"`
}

type restStock struct {
	Keys       int     `json:"keys"`
	Refined    float64 `json:"refined"`
	KeyPrice   string  `json:"key_price"`
	TotalItems int     `json:"total_items"`
}

func newRESTReview(item worker.ReviewItem) restReview {
	names := lox.Map(entity.Reasons(item.Decision.Findings), func(reason entity.FindingKind) string {
		return string(reason)
	})

	review := restReview{
		OfferID:         item.Offer.ID,
		PartnerID:       item.Offer.PartnerID,
		Reasons:         names,
		InvalidItems:    item.Scratch.InvalidItems,
		Overstocked:     item.Scratch.Overstocked,
		DupedItems:      item.Scratch.DupedItems,
		DupeFailedItems: item.Scratch.DupeFailedItems,
		QueuedAt:        item.QueuedAt,
	}

	if item.Offer.Data != nil {
		review.Value = item.Offer.Data.Value
	}

	return review
}
