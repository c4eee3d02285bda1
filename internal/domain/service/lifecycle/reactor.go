package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	dedupeTTL     = time.Minute
	dedupeJanitor = time.Second
)

// Messenger delivers a direct message to a trade partner.
type Messenger interface {
	SendMessage(ctx context.Context, partnerID, message string) error
}

// Operator broadcasts to the operator notification channel.
type Operator interface {
	Broadcast(ctx context.Context, text string) error
}

// Webhook delivers the structured trade summary.
type Webhook interface {
	SendTradeSummary(ctx context.Context, offer *entity.Offer) error
}

type Listings interface {
	Refresh(ctx context.Context, sku string) error
}

type Groups interface {
	InviteToGroups(ctx context.Context, partnerID string) error
}

// Maintenance is the post-accept housekeeping, satisfied by the metal
// maintainer.
type Maintenance interface {
	Rebalance(ctx context.Context) error
	CraftDuplicateWeapons(ctx context.Context) error
	SortInventory(ctx context.Context) error
}

type Inventory interface {
	CurrencyCounts() entity.CurrencyCounts
	TotalItemCount() int
}

type Pricelist interface {
	GetKeyPrice() value.Currency
}

// Archiver stores terminal offers.
type Archiver interface {
	Archive(ctx context.Context, offer *entity.Offer) error
}

// Reactor reacts to offer state transitions and SKIP decisions with
// partner/operator notifications and post-accept maintenance.
type Reactor struct {
	cfg         config.Engine
	messenger   Messenger
	operator    Operator
	webhook     Webhook
	listings    Listings
	groups      Groups
	maintenance Maintenance
	inventory   Inventory
	pricelist   Pricelist
	archiver    Archiver

	// Suppresses rapid repeated notifications for the same offer and
	// state; entries are swept once per second.
	sent *cache.Cache
}

func New(
	cfg config.Engine,
	messenger Messenger,
	operator Operator,
	webhook Webhook,
	listings Listings,
	groups Groups,
	maintenance Maintenance,
	inventory Inventory,
	pricelist Pricelist,
	archiver Archiver,
) *Reactor {
	return &Reactor{
		cfg:         cfg,
		messenger:   messenger,
		operator:    operator,
		webhook:     webhook,
		listings:    listings,
		groups:      groups,
		maintenance: maintenance,
		inventory:   inventory,
		pricelist:   pricelist,
		archiver:    archiver,
		sent:        cache.New(dedupeTTL, dedupeJanitor),
	}
}

// OnStateChanged fires on every observed state transition. Reactions
// run only when this engine handled the offer and the state differs
// from the last one reacted to.
func (r *Reactor) OnStateChanged(ctx context.Context, offer *entity.Offer, oldState entity.OfferState) {
	if !offer.Data.HandledByUs || offer.Data.LastState == offer.State {
		return
	}
	offer.Data.LastState = offer.State

	dedupeKey := offer.ID + ":" + offer.State.String()
	if _, dup := r.sent.Get(dedupeKey); dup {
		return
	}
	r.sent.SetDefault(dedupeKey, struct{}{})

	logger(ctx).Info(
		"offer state changed",
		slog.String(logx.FieldOfferID, offer.ID),
		slog.String(logx.FieldState, offer.State.String()),
		slog.String("old-state", oldState.String()),
	)

	if offer.Data.NotifyPartner {
		r.notifyPartner(ctx, offer, oldState)
	}

	switch offer.State {
	case entity.StateAccepted:
		offer.Data.Accepted = true
		r.postAccept(ctx, offer)
		r.archive(ctx, offer)
	case entity.StateDeclined, entity.StateCanceled, entity.StateInvalidItems, entity.StateExpired:
		r.archive(ctx, offer)
	default:
	}
}

func (r *Reactor) notifyPartner(ctx context.Context, offer *entity.Offer, oldState entity.OfferState) {
	var message string

	switch offer.State {
	case entity.StateAccepted:
		message = successMessage(r.cfg.CustomSuccessMessage)
	case entity.StateInEscrow:
		message = escrowDelayMessage
	case entity.StateDeclined:
		message = declinedMessage(r.cfg.CustomDeclinedMessage, offer.Data.Reason, r.missingPure(offer))
	case entity.StateCanceled:
		message = canceledMessage(offer.Data.CanceledByUser, oldState == entity.StateCreatedNeedsConfirmation)
	case entity.StateInvalidItems:
		message = tradedAwayMessage
	default:
		return
	}

	if err := r.messenger.SendMessage(ctx, offer.PartnerID, message); err != nil {
		logger(ctx).Error(
			"partner notification failed",
			slog.String(logx.FieldOfferID, offer.ID),
			logx.Error(err),
		)
	}
}

// postAccept runs the maintenance chain: metal rebalancing, duplicate
// weapon crafting, inventory sort, listing refresh for every traded
// SKU, group invites, and operator summaries.
func (r *Reactor) postAccept(ctx context.Context, offer *entity.Offer) {
	if err := r.maintenance.Rebalance(ctx); err != nil {
		logger(ctx).Error("metal rebalance failed", logx.Error(err))
	}

	if err := r.maintenance.CraftDuplicateWeapons(ctx); err != nil {
		logger(ctx).Error("duplicate weapon crafting failed", logx.Error(err))
	}

	if err := r.maintenance.SortInventory(ctx); err != nil {
		logger(ctx).Error("inventory sort failed", logx.Error(err))
	}

	if offer.Data.Dict != nil {
		for sku := range tradedSKUs(*offer.Data.Dict) {
			if err := r.listings.Refresh(ctx, sku); err != nil {
				logger(ctx).Error(
					"listing refresh failed",
					slog.String(logx.FieldSKU, sku),
					logx.Error(err),
				)
			}
		}
	}

	if len(r.cfg.Groups) > 0 {
		if err := r.groups.InviteToGroups(ctx, offer.PartnerID); err != nil {
			logger(ctx).Error("group invite failed", logx.Error(err))
		}
	}

	if err := r.operator.Broadcast(ctx, r.tradeSummary(offer)); err != nil {
		logger(ctx).Error("operator broadcast failed", logx.Error(err))
	}

	if r.webhook != nil {
		if err := r.webhook.SendTradeSummary(ctx, offer); err != nil {
			logger(ctx).Error("webhook summary failed", logx.Error(err))
		}
	}
}

// OnSkip handles the review signal: the partner learns the offer is
// held, operators get the full finding breakdown with profile links
// and current pure stock.
func (r *Reactor) OnSkip(ctx context.Context, offer *entity.Offer, decision entity.Decision, scratch entity.ReviewScratch) {
	reasons := entity.Reasons(decision.Findings)

	if offer.Data.NotifyPartner {
		message := reviewPartnerMessage(reasons, scratch, r.missingPure(offer))
		if err := r.messenger.SendMessage(ctx, offer.PartnerID, message); err != nil {
			logger(ctx).Error(
				"partner review notification failed",
				slog.String(logx.FieldOfferID, offer.ID),
				logx.Error(err),
			)
		}
	}

	operatorText := r.reviewOperatorMessage(offer, reasons, scratch)
	if err := r.operator.Broadcast(ctx, operatorText); err != nil {
		logger(ctx).Error("operator review broadcast failed", logx.Error(err))
	}
}

func (r *Reactor) archive(ctx context.Context, offer *entity.Offer) {
	if r.archiver == nil {
		return
	}

	if err := r.archiver.Archive(ctx, offer); err != nil {
		logger(ctx).Error(
			"offer archive failed",
			slog.String(logx.FieldOfferID, offer.ID),
			logx.Error(err),
		)
	}
}

// tradedSKUs is the union of both sides' SKUs.
func tradedSKUs(dict entity.ItemsDict) map[string]struct{} {
	skus := make(map[string]struct{}, len(dict.Our)+len(dict.Their))
	for sku := range dict.Our {
		skus[sku] = struct{}{}
	}
	for sku := range dict.Their {
		skus[sku] = struct{}{}
	}

	return skus
}
