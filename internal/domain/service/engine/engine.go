package engine

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Decision reasons that are not finding kinds.
const (
	ReasonAdmin            = "ADMIN"
	ReasonValid            = "VALID"
	ReasonGift             = "GIFT"
	ReasonGiftNoNote       = "GIFT_NO_NOTE"
	ReasonNonGameItems     = "CONTAINS_NON_GAME_ITEMS"
	ReasonDuelingUses      = "DUELING_NOT_5_USES"
	ReasonNoiseMakerUses   = "NOISE_MAKER_NOT_25_USES"
	ReasonOnlyMetal        = "ONLY_METAL"
	ReasonNotTradingKeys   = "NOT_TRADING_KEYS"
	ReasonOverpay          = "OVERPAY"
	ReasonEscrow           = "ESCROW"
	ReasonBanned           = "BANNED"
	ReasonOnlyInvalidValue = "ONLY_INVALID_VALUE"
	ReasonReview           = "REVIEW"
)

// Services reported in SERVICE_DOWN findings.
const (
	ServicePlatform   = "platform"
	ServiceReputation = "reputation"
)

// Pricelist is a read-only price snapshot. Nil means no entry.
type Pricelist interface {
	GetPrice(sku string, enforceExisting bool) *entity.PriceEntry
	GetKeyPrice() value.Currency
}

// LivePricer fetches a suggested price for an item absent from the
// pricelist. Network-backed, rate limited by the implementation.
type LivePricer interface {
	GetLivePrice(ctx context.Context, sku string) (*entity.PriceEntry, error)
}

// Inventory is the capacity and stock view, immutable for the
// duration of one evaluation.
type Inventory interface {
	CapacityFor(sku string, buying bool) int
	CurrencyCounts() entity.CurrencyCounts
	TotalItemCount() int
}

// Reputation wraps the external escrow / ban / provenance service.
// IsDuplicated returns nil when the check is inconclusive.
type Reputation interface {
	WouldEscrow(ctx context.Context, offerID, partnerID string) (bool, error)
	IsBanned(ctx context.Context, partnerID string) (bool, error)
	IsDuplicated(ctx context.Context, assetID string) (*bool, error)
}

// Listings triggers re-publication of our buy/sell listings.
type Listings interface {
	Refresh(ctx context.Context, sku string) error
	RefreshAll(ctx context.Context) error
}

// Result is everything one evaluation produced: the verdict, the
// per-offer review scratch for notification rendering, and the key
// drift state to carry into the next evaluation.
type Result struct {
	Decision entity.Decision
	Scratch  entity.ReviewScratch
	KeyState entity.KeyTradeState
}

type Engine struct {
	cfg        config.Engine
	pricelist  Pricelist
	livePricer LivePricer
	inventory  Inventory
	reputation Reputation
	listings   Listings

	exceptionScrap float64

	decisions *prometheus.CounterVec
}

func New(
	cfg config.Engine,
	pricelist Pricelist,
	livePricer LivePricer,
	inventory Inventory,
	reputation Reputation,
	listings Listings,
) *Engine {
	return &Engine{
		cfg:            cfg,
		pricelist:      pricelist,
		livePricer:     livePricer,
		inventory:      inventory,
		reputation:     reputation,
		listings:       listings,
		exceptionScrap: float64(value.ToScrap(cfg.ExceptionValueRef)),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tradebot",
			Subsystem: "engine",
			Name:      "decisions_total",
			Help:      "Offer decisions by action and reason.",
		}, []string{"action", "reason"}),
	}
}

// Collector exposes the decision counters for registration by the
// application.
func (e *Engine) Collector() prometheus.Collector {
	return e.decisions
}

// Evaluate runs the full decision pipeline over one offer. The offer's
// side-band dict and value snapshot are filled in as byproducts.
func (e *Engine) Evaluate(
	ctx context.Context,
	offer *entity.Offer,
	keyState entity.KeyTradeState,
) Result {
	result := e.evaluate(ctx, offer, keyState)

	offer.Data.Action = result.Decision.Action
	offer.Data.Reason = result.Decision.Reason

	e.decisions.WithLabelValues(string(result.Decision.Action), result.Decision.Reason).Inc()

	logger(ctx).Info(
		"offer evaluated",
		slog.String(logx.FieldOfferID, offer.ID),
		slog.String(logx.FieldPartnerID, offer.PartnerID),
		slog.String(logx.FieldAction, string(result.Decision.Action)),
		slog.String(logx.FieldReason, result.Decision.Reason),
	)

	return result
}

func (e *Engine) evaluate(
	ctx context.Context,
	offer *entity.Offer,
	keyState entity.KeyTradeState,
) Result {
	scratch := &entity.ReviewScratch{}

	dict := offer.Dicts()
	offer.Data.Dict = &dict

	summary, hasNonGame := scan(dict)

	// Short-circuiting policies that need no valuation.
	if decision, done := e.runPolicies(offer, hasNonGame); done {
		return Result{Decision: decision, Scratch: *scratch, KeyState: keyState}
	}

	val := e.valuate(ctx, offer, dict, summary, scratch)

	// Only-currency policy, updates the key drift counters.
	decision, keyState, done := e.checkCurrencyOnly(ctx, &val, dict, keyState)
	if done {
		return Result{Decision: decision, Scratch: *scratch, KeyState: keyState}
	}

	decision = e.resolve(ctx, offer, &val, scratch)

	return Result{Decision: decision, Scratch: *scratch, KeyState: keyState}
}

// diffFor is the net unit count of a SKU moving to our side.
func diffFor(dict entity.ItemsDict, sku string) int {
	return dict.Their[sku] - dict.Our[sku]
}
