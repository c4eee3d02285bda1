package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/service/engine"
	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Platform interface {
	GetOffers(ctx context.Context, since time.Time) ([]entity.Offer, error)
	Accept(ctx context.Context, offerID string) error
	Decline(ctx context.Context, offerID string) error
}

// OfferDataStore persists the mutable offer side-band between polls.
type OfferDataStore interface {
	Load(ctx context.Context, offerID string) (*entity.OfferData, error)
	Save(ctx context.Context, offerID string, data *entity.OfferData) error
	Delete(ctx context.Context, offerID string) error
}

type Engine interface {
	Evaluate(ctx context.Context, offer *entity.Offer, keyState entity.KeyTradeState) engine.Result
}

type Reactor interface {
	OnStateChanged(ctx context.Context, offer *entity.Offer, oldState entity.OfferState)
	OnSkip(ctx context.Context, offer *entity.Offer, decision entity.Decision, scratch entity.ReviewScratch)
}

type Inventory interface {
	Refresh(ctx context.Context) error
}

// Poller drives the decision loop: fetch changed offers, evaluate new
// active ones, apply the verdict, and feed state transitions to the
// reactor.
type Poller struct {
	cfg       config.Engine
	interval  time.Duration
	platform  Platform
	store     OfferDataStore
	engine    Engine
	reactor   Reactor
	inventory Inventory
	reviews   *ReviewQueue

	mu       sync.Mutex
	keyState entity.KeyTradeState
	since    time.Time
}

func NewPoller(
	cfg config.Engine,
	interval time.Duration,
	platform Platform,
	store OfferDataStore,
	eng Engine,
	reactor Reactor,
	inventory Inventory,
	reviews *ReviewQueue,
) *Poller {
	return &Poller{
		cfg:       cfg,
		interval:  interval,
		platform:  platform,
		store:     store,
		engine:    eng,
		reactor:   reactor,
		inventory: inventory,
		reviews:   reviews,
	}
}

func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs one fetch-and-process cycle.
func (p *Poller) Poll(ctx context.Context) {
	since := p.since
	now := time.Now()

	offers, err := p.platform.GetOffers(ctx, since)
	if err != nil {
		logger(ctx).Error("offer poll failed", logx.Error(err))

		return
	}

	p.since = now

	for i := range offers {
		p.process(ctx, &offers[i])
	}
}

func (p *Poller) process(ctx context.Context, offer *entity.Offer) {
	ctx = contextx.WithPartnerID(ctx, contextx.PartnerID(offer.PartnerID))

	data, err := p.store.Load(ctx, offer.ID)
	if err != nil {
		logger(ctx).Error(
			"offer data load failed",
			slog.String(logx.FieldOfferID, offer.ID),
			logx.Error(err),
		)

		return
	}

	if data == nil {
		data = &entity.OfferData{
			NotifyPartner: !p.cfg.IsAdmin(offer.PartnerID),
		}
	}
	offer.Data = data

	oldState := data.LastState

	switch {
	case offer.State == entity.StateActive && !data.HandledByUs:
		p.decide(ctx, offer)
	case offer.State != oldState:
		p.reactor.OnStateChanged(ctx, offer, oldState)

		if offer.State == entity.StateAccepted {
			if err := p.inventory.Refresh(ctx); err != nil {
				logger(ctx).Error("inventory refresh failed", logx.Error(err))
			}
		}

		if isTerminal(offer.State) {
			p.reviews.Remove(offer.ID)

			if err := p.store.Delete(ctx, offer.ID); err != nil {
				logger(ctx).Error("offer data delete failed", logx.Error(err))
			}

			return
		}
	default:
		return
	}

	if err := p.store.Save(ctx, offer.ID, offer.Data); err != nil {
		logger(ctx).Error(
			"offer data save failed",
			slog.String(logx.FieldOfferID, offer.ID),
			logx.Error(err),
		)
	}
}

func (p *Poller) decide(ctx context.Context, offer *entity.Offer) {
	offer.Data.HandledByUs = true

	result := p.engine.Evaluate(ctx, offer, p.loadKeyState())
	p.storeKeyState(result.KeyState)

	switch result.Decision.Action {
	case entity.ActionAccept:
		if err := p.platform.Accept(ctx, offer.ID); err != nil {
			logger(ctx).Error(
				"offer accept failed",
				slog.String(logx.FieldOfferID, offer.ID),
				logx.Error(err),
			)
		}
	case entity.ActionDecline:
		if err := p.platform.Decline(ctx, offer.ID); err != nil {
			logger(ctx).Error(
				"offer decline failed",
				slog.String(logx.FieldOfferID, offer.ID),
				logx.Error(err),
			)
		}
	case entity.ActionSkip:
		p.reviews.Add(offer, result.Decision, result.Scratch)
		p.reactor.OnSkip(ctx, offer, result.Decision, result.Scratch)
	}
}

func (p *Poller) loadKeyState() entity.KeyTradeState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.keyState
}

func (p *Poller) storeKeyState(state entity.KeyTradeState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keyState = state
}

func isTerminal(state entity.OfferState) bool {
	switch state {
	case entity.StateAccepted,
		entity.StateDeclined,
		entity.StateCanceled,
		entity.StateCanceledBySecondFactor,
		entity.StateExpired,
		entity.StateInvalidItems:
		return true
	default:
		return false
	}
}
