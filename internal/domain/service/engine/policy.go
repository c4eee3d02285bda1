package engine

import (
	"context"
	"strings"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/logx"
)

// descriptionUsesColor marks a printed remaining-uses line.
const descriptionUsesColor = "00a000"

// runPolicies applies the pre-valuation short circuits: admin bypass,
// non-game items, gift rule and printed-uses validation.
func (e *Engine) runPolicies(offer *entity.Offer, hasNonGame bool) (entity.Decision, bool) {
	if e.cfg.IsAdmin(offer.PartnerID) {
		return entity.Decision{Action: entity.ActionAccept, Reason: ReasonAdmin}, true
	}

	if hasNonGame {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonNonGameItems}, true
	}

	if len(offer.ItemsToGive) == 0 && value.HasGiftWord(offer.Message) {
		return entity.Decision{Action: entity.ActionAccept, Reason: ReasonGift}, true
	}

	if len(offer.ItemsToGive) == 0 || len(offer.ItemsToReceive) == 0 {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonGiftNoNote}, true
	}

	if decision, done := e.checkDuelingUses(offer); done {
		return decision, true
	}

	if decision, done := e.checkNoiseMakerUses(offer); done {
		return decision, true
	}

	return entity.Decision{}, false
}

func (e *Engine) checkDuelingUses(offer *entity.Offer) (entity.Decision, bool) {
	if !e.cfg.CheckUsesDueling {
		return entity.Decision{}, false
	}

	wrongUses := false
	for _, item := range offer.ItemsToReceive {
		if item.Name == value.DuelingMiniGame && hasWrongUses(item, value.DuelingUsesText) {
			wrongUses = true
			break
		}
	}

	// Only decline when we actually trade the item.
	if wrongUses && e.pricelist.GetPrice(value.SKUDueling, true) != nil {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonDuelingUses}, true
	}

	return entity.Decision{}, false
}

func (e *Engine) checkNoiseMakerUses(offer *entity.Offer) (entity.Decision, bool) {
	if !e.cfg.CheckUsesNoiseMaker {
		return entity.Decision{}, false
	}

	wrongUses := false
	for _, item := range offer.ItemsToReceive {
		if isNoiseMaker(item.Name) && hasWrongUses(item, value.NoiseMakerUsesText) {
			wrongUses = true
			break
		}
	}

	if !wrongUses {
		return entity.Decision{}, false
	}

	for _, sku := range value.NoiseMakerSKUs {
		if e.pricelist.GetPrice(sku, true) != nil {
			return entity.Decision{Action: entity.ActionDecline, Reason: ReasonNoiseMakerUses}, true
		}
	}

	return entity.Decision{}, false
}

func isNoiseMaker(name string) bool {
	for _, prefix := range value.NoiseMakerNames {
		if strings.Contains(name, prefix) {
			return true
		}
	}

	return false
}

func hasWrongUses(item entity.Item, usesText string) bool {
	for _, d := range item.Descriptions {
		if d.Color == descriptionUsesColor && !strings.Contains(d.Value, usesText) {
			return true
		}
	}

	return false
}

// checkCurrencyOnly handles offers carrying no non-currency items:
// metal-only offers are declined outright, key-only offers are
// validated against our key-trading intent with drift tracking.
func (e *Engine) checkCurrencyOnly(
	ctx context.Context,
	val *valuation,
	dict entity.ItemsDict,
	keyState entity.KeyTradeState,
) (entity.Decision, entity.KeyTradeState, bool) {
	containsMetal := val.summary.Our.HasMetal || val.summary.Their.HasMetal
	containsKeys := val.summary.Our.HasKeys || val.summary.Their.HasKeys
	containsItems := val.summary.ContainsItems()

	if containsMetal && !containsKeys && !containsItems {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonOnlyMetal}, keyState, true
	}

	if !containsKeys || containsItems {
		return entity.Decision{}, keyState, false
	}

	entry := e.pricelist.GetPrice(value.SKUKey, true)

	switch {
	case entry == nil:
		keyState = keyState.RecordNotTrading()
		keyState = e.maybeResync(ctx, keyState)
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonNotTradingKeys}, keyState, true

	case val.summary.Our.HasKeys && !entry.Intent.CanSell():
		keyState = keyState.RecordNotSelling()
		keyState = e.maybeResync(ctx, keyState)
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonNotTradingKeys}, keyState, true

	case val.summary.Their.HasKeys && !entry.Intent.CanBuy():
		keyState = keyState.RecordNotBuying()
		keyState = e.maybeResync(ctx, keyState)
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonNotTradingKeys}, keyState, true
	}

	keyState.IsTrading = true

	// Stock bounds apply to keys like to any other priced SKU.
	diff := diffFor(dict, value.SKUKey)
	buying := diff > 0
	capacity := e.inventory.CapacityFor(value.SKUKey, buying)

	if diff != 0 && capacity < diff {
		val.findings = append(val.findings, entity.Overstocked{
			SKU:      value.SKUKey,
			Buying:   buying,
			Delta:    diff,
			Capacity: capacity,
		})
	}

	return entity.Decision{}, keyState, false
}

func (e *Engine) maybeResync(ctx context.Context, keyState entity.KeyTradeState) entity.KeyTradeState {
	if !e.cfg.Autokeys {
		return keyState.Reset()
	}

	if !keyState.NeedsResync() {
		return keyState
	}

	logger(ctx).Info("key listings drifted from our intent, re-syncing all listings")

	if err := e.listings.RefreshAll(ctx); err != nil {
		logger(ctx).Error("listings.RefreshAll", logx.Error(err))
		return keyState
	}

	return keyState.Reset()
}
