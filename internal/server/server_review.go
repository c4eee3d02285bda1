package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"git.appkode.ru/pub/go/failure"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/internal/infrastructure/persistence"
	"tradebot/internal/worker"
	"tradebot/pkg/errcodes"
	"tradebot/pkg/httpx/reply"
	"tradebot/pkg/httpx/req"
)

type offerResolver interface {
	Accept(ctx context.Context, offerID string) error
	Decline(ctx context.Context, offerID string) error
}

type stockView interface {
	CurrencyCounts() entity.CurrencyCounts
	TotalItemCount() int
}

type keyPricer interface {
	GetKeyPrice() value.Currency
}

type statsSource interface {
	Stats(ctx context.Context, now time.Time) (persistence.TradeStats, error)
}

// ReviewServer exposes the manual-review workflow: list held offers,
// resolve one, and show the current stock.
type ReviewServer struct {
	reviews   *worker.ReviewQueue
	resolver  offerResolver
	inventory stockView
	pricelist keyPricer
	stats     statsSource
}

func NewReviewServer(
	reviews *worker.ReviewQueue,
	resolver offerResolver,
	inventory stockView,
	pricelist keyPricer,
	stats statsSource,
) ReviewServer {
	return ReviewServer{
		reviews:   reviews,
		resolver:  resolver,
		inventory: inventory,
		pricelist: pricelist,
		stats:     stats,
	}
}

func (s ReviewServer) getV1Reviews(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items := s.reviews.List()
	reviews := make([]restReview, 0, len(items))
	for _, item := range items {
		reviews = append(reviews, newRESTReview(item))
	}

	reply.JSON(ctx, w, http.StatusOK, restReviewList{Reviews: reviews})

	return nil
}

func (s ReviewServer) postV1Review(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	offerID := r.PathValue("id")

	item, ok := s.reviews.Get(offerID)
	if !ok {
		return failure.NewNotFoundError(
			"offer is not under review",
			failure.WithCode(errcodes.OfferNotUnderReview),
		)
	}

	var request restResolveRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	switch entity.Action(request.Action) {
	case entity.ActionAccept:
		if err := s.resolver.Accept(ctx, offerID); err != nil {
			return fmt.Errorf("resolver.Accept: %w", err)
		}
	case entity.ActionDecline:
		if err := s.resolver.Decline(ctx, offerID); err != nil {
			return fmt.Errorf("resolver.Decline: %w", err)
		}
	default:
		return failure.NewInvalidArgumentError(
			"unknown review action",
			failure.WithCode(errcodes.InvalidReviewAction),
			failure.WithDescription("action must be accept or decline"),
		)
	}

	item.Offer.Data.Action = entity.Action(request.Action)
	s.reviews.Remove(offerID)

	reply.OK(w)

	return nil
}

func (s ReviewServer) getV1Stock(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	counts := s.inventory.CurrencyCounts()

	reply.JSON(ctx, w, http.StatusOK, restStock{
		Keys:       counts.Keys,
		Refined:    value.ToRefined(counts.MetalScrap()),
		KeyPrice:   s.pricelist.GetKeyPrice().String(),
		TotalItems: s.inventory.TotalItemCount(),
	})

	return nil
}

func (s ReviewServer) getV1Stats(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	stats, err := s.stats.Stats(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("stats.Stats: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, stats)

	return nil
}
