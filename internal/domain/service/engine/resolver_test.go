package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/service/engine"
	"tradebot/internal/domain/value"
)

func TestEvaluate_AdminBypass(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.cfg.Admins = []string{"76561198000000001"}

	// Even non-game items do not stop an admin offer.
	offer := newOffer("1", "76561198000000001", "", items(""), nil)

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionAccept, result.Decision.Action)
	rq.Equal(engine.ReasonAdmin, result.Decision.Reason)
}

func TestEvaluate_NonGameItems(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	offer := newOffer("1", "2", "", items(value.SKURef), items(""))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(engine.ReasonNonGameItems, result.Decision.Reason)
}

func TestEvaluate_Gift(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		give       []entity.Item
		receive    []entity.Item
		wantAction entity.Action
		wantReason string
	}{
		{
			name:       "gift word accepts",
			message:    "a little gift for you",
			receive:    items(value.SKURef),
			wantAction: entity.ActionAccept,
			wantReason: engine.ReasonGift,
		},
		{
			name:       "empty give without note declines",
			message:    "hello",
			receive:    items(value.SKURef),
			wantAction: entity.ActionDecline,
			wantReason: engine.ReasonGiftNoNote,
		},
		{
			name:       "empty receive declines",
			message:    "",
			give:       items(value.SKURef),
			wantAction: entity.ActionDecline,
			wantReason: engine.ReasonGiftNoNote,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			f := defaultFixture()
			offer := newOffer("1", "2", tt.message, tt.give, tt.receive)

			result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

			rq.Equal(tt.wantAction, result.Decision.Action)
			rq.Equal(tt.wantReason, result.Decision.Reason)
		})
	}
}

func TestEvaluate_OnlyMetal(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	offer := newOffer("1", "2", "", items(value.SKUScrap, value.SKUScrap, value.SKUScrap), items(value.SKURef))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(engine.ReasonOnlyMetal, result.Decision.Reason)
}

func TestEvaluate_KeyOnly_NotTradingKeys(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	// No key price entry at all.
	offer := newOffer("1", "2", "", items(value.SKURef), items(value.SKUKey))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(engine.ReasonNotTradingKeys, result.Decision.Reason)
	rq.Equal(1, result.KeyState.NotSelling)
	rq.Equal(1, result.KeyState.NotBuying)
}

func TestEvaluate_KeyOnly_DriftTriggersResync(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.cfg.Autokeys = true
	eng := f.engine()

	state := entity.KeyTradeState{}
	for i := 0; i < 3; i++ {
		offer := newOffer("1", "2", "", items(value.SKURef), items(value.SKUKey))
		result := eng.Evaluate(context.Background(), offer, state)
		state = result.KeyState
	}

	rq.Equal(1, f.listings.refreshAll)
	rq.Equal(0, state.NotSelling)
	rq.Equal(0, state.NotBuying)
}

func TestEvaluate_KeyOnly_ValidTrade(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.pricelist.prices[value.SKUKey] = &entity.PriceEntry{
		SKU:    value.SKUKey,
		Buy:    value.Currency{Metal: 49},
		Sell:   value.Currency{Metal: 50},
		Intent: entity.IntentBank,
	}

	// They give a key, we give its buy price in metal.
	offer := newOffer("1", "2", "",
		items(value.SKURef, value.SKURef, value.SKURef),
		items(value.SKUKey))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.True(result.KeyState.IsTrading)
	// 27 scrap given vs a 441-scrap key received: overpaid for us,
	// accepted.
	rq.Equal(entity.ActionAccept, result.Decision.Action)
}

func TestEvaluate_ManualReviewDisabled_Overstock(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.cfg.ManualReview = false
	f.pricelist.prices["100;6"] = &entity.PriceEntry{
		SKU:    "100;6",
		Buy:    value.Currency{Metal: 1},
		Sell:   value.Currency{Metal: 2},
		Intent: entity.IntentBank,
	}
	f.inventory.capacity["100;6"] = 0

	offer := newOffer("1", "2", "", items(value.SKURef), items("100;6"))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(string(entity.KindOverstocked), result.Decision.Reason)
	rq.True(entity.HasKind(result.Decision.Findings, entity.KindOverstocked))
}

func TestEvaluate_ValueException(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.cfg.ExceptionSKUs = []string{"300;"}
	f.cfg.ExceptionValueRef = 0.33 // 3 scrap
	f.pricelist.prices["300;6"] = &entity.PriceEntry{
		SKU:    "300;6",
		Buy:    value.Currency{Metal: 0.88}, // 8 scrap
		Sell:   value.Currency{Metal: 1},
		Intent: entity.IntentBank,
	}

	// We give 10 scrap of metal for an item bought at 8 scrap:
	// shortfall 2 < exception 3, must not auto-decline on value.
	offer := newOffer("1", "2", "",
		items(value.SKURef, value.SKUScrap),
		items("300;6"))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionAccept, result.Decision.Action)
	rq.False(entity.HasKind(result.Decision.Findings, entity.KindInvalidValue))
}

func TestEvaluate_AutoDeclineInvalidValue(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.pricelist.prices["300;6"] = &entity.PriceEntry{
		SKU:    "300;6",
		Buy:    value.Currency{Metal: 0.88},
		Sell:   value.Currency{Metal: 1},
		Intent: entity.IntentBank,
	}

	// Shortfall 10-8=2 scrap with no exception configured.
	offer := newOffer("1", "2", "",
		items(value.SKURef, value.SKUScrap),
		items("300;6"))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(engine.ReasonOnlyInvalidValue, result.Decision.Reason)
}

func TestEvaluate_Overpay_Disallowed(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	f.cfg.AllowOverpay = false
	f.pricelist.prices["300;6"] = &entity.PriceEntry{
		SKU:    "300;6",
		Buy:    value.Currency{Metal: 2}, // 18 scrap
		Sell:   value.Currency{Metal: 3},
		Intent: entity.IntentBank,
	}

	// We give 9 scrap for an item we buy at 18: partner overpays us.
	offer := newOffer("1", "2", "", items(value.SKURef), items("300;6"))

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionDecline, result.Decision.Action)
	rq.Equal(engine.ReasonOverpay, result.Decision.Reason)
}

func TestEvaluate_EscrowGate(t *testing.T) {
	t.Run("escrow declines", func(t *testing.T) {
		rq := require.New(t)

		f := defaultFixture()
		f.reputation.escrow = true
		offer := balancedOffer(f)

		result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

		rq.Equal(entity.ActionDecline, result.Decision.Action)
		rq.Equal(engine.ReasonEscrow, result.Decision.Reason)
	})

	t.Run("outage fails open to skip", func(t *testing.T) {
		rq := require.New(t)

		f := defaultFixture()
		f.reputation.escrowErr = errors.New("timeout")
		offer := balancedOffer(f)

		result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

		rq.Equal(entity.ActionSkip, result.Decision.Action)
		rq.Equal(engine.ReasonPlatformDown, result.Decision.Reason)
		rq.True(entity.HasKind(result.Decision.Findings, entity.KindServiceDown))
	})
}

func TestEvaluate_BanGate(t *testing.T) {
	t.Run("banned declines", func(t *testing.T) {
		rq := require.New(t)

		f := defaultFixture()
		f.reputation.banned = true
		offer := balancedOffer(f)

		result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

		rq.Equal(entity.ActionDecline, result.Decision.Action)
		rq.Equal(engine.ReasonBanned, result.Decision.Reason)
	})

	t.Run("outage fails open to skip", func(t *testing.T) {
		rq := require.New(t)

		f := defaultFixture()
		f.reputation.bannedErr = errors.New("503")
		offer := balancedOffer(f)

		result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

		rq.Equal(entity.ActionSkip, result.Decision.Action)
		rq.Equal(engine.ReasonReputationDown, result.Decision.Reason)
	})
}

func TestEvaluate_CleanOfferAccepts(t *testing.T) {
	rq := require.New(t)

	f := defaultFixture()
	offer := balancedOffer(f)

	result := f.engine().Evaluate(context.Background(), offer, entity.KeyTradeState{})

	rq.Equal(entity.ActionAccept, result.Decision.Action)
	rq.Equal(engine.ReasonValid, result.Decision.Reason)
	rq.Empty(result.Decision.Findings)
}

// balancedOffer prices one item and trades it at exactly its buy
// price.
func balancedOffer(f *fixture) *entity.Offer {
	f.pricelist.prices["400;6"] = &entity.PriceEntry{
		SKU:    "400;6",
		Buy:    value.Currency{Metal: 1}, // 9 scrap
		Sell:   value.Currency{Metal: 1.22},
		Intent: entity.IntentBank,
	}

	return newOffer("1", "2", "", items(value.SKURef), items("400;6"))
}
