package engine

import (
	"context"
	"log/slog"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/logx"
)

// valuation is everything the exchange valuator produced for one offer.
type valuation struct {
	summary    entity.ExchangeSummary
	findings   []entity.Finding
	prices     []entity.PriceUsed
	dupeAssets []entity.Item
}

// scan is the cheap first pass: per-side content flags and detection
// of items outside the game's item universe (empty SKU).
func scan(dict entity.ItemsDict) (entity.ExchangeSummary, bool) {
	var summary entity.ExchangeSummary
	hasNonGame := false

	for sku := range dict.Our {
		scanSKU(&summary.Our, sku, &hasNonGame)
	}
	for sku := range dict.Their {
		scanSKU(&summary.Their, sku, &hasNonGame)
	}

	return summary, hasNonGame
}

func scanSKU(side *entity.SideSummary, sku string, hasNonGame *bool) {
	switch {
	case sku == "":
		*hasNonGame = true
	case value.IsPureMetal(sku):
		side.HasMetal = true
	case sku == value.SKUKey:
		side.HasKeys = true
	default:
		side.HasItems = true
	}
}

// valuate runs the per-SKU pricing pass over both sides, filling in
// totals, findings, price snapshots and the dupe-check queue. Totals
// are sums over map entries, so they do not depend on enumeration
// order.
func (e *Engine) valuate(
	ctx context.Context,
	offer *entity.Offer,
	dict entity.ItemsDict,
	summary entity.ExchangeSummary,
	scratch *entity.ReviewScratch,
) valuation {
	val := valuation{summary: summary}

	keyPrice := e.pricelist.GetKeyPrice()
	keyScrap := value.ToScrap(keyPrice.Metal)

	// Threshold above which a received item's provenance is verified.
	dupeThreshold := float64(e.cfg.MinimumKeysDupeCheck * keyScrap)

	containsItems := val.summary.ContainsItems()

	for _, buying := range []bool{false, true} {
		counts := dict.Our
		side := &val.summary.Our
		if buying {
			counts = dict.Their
			side = &val.summary.Their
		}

		for sku, amount := range counts {
			e.valuateSKU(ctx, valuateArgs{
				offer:         offer,
				dict:          dict,
				sku:           sku,
				amount:        amount,
				buying:        buying,
				side:          side,
				keyScrap:      keyScrap,
				dupeThreshold: dupeThreshold,
				containsItems: containsItems,
				val:           &val,
				scratch:       scratch,
			})
		}
	}

	if e.cfg.ShowOnlyMetal {
		collapseKeys(&val.summary.Our, keyScrap)
		collapseKeys(&val.summary.Their, keyScrap)
	}

	offer.Data.Value = &entity.ValueSnapshot{
		Our:     val.summary.Our.Total,
		Their:   val.summary.Their.Total,
		KeyRate: keyPrice.Metal,
	}
	offer.Data.Prices = val.prices

	return val
}

type valuateArgs struct {
	offer         *entity.Offer
	dict          entity.ItemsDict
	sku           string
	amount        int
	buying        bool
	side          *entity.SideSummary
	keyScrap      int
	dupeThreshold float64
	containsItems bool
	val           *valuation
	scratch       *entity.ReviewScratch
}

func (e *Engine) valuateSKU(ctx context.Context, a valuateArgs) {
	if a.sku == "" {
		return // non-game item, already declined upstream
	}

	if scrap, ok := value.PureScrap(a.sku); ok {
		total := float64(scrap * a.amount)
		a.side.Total += total
		a.side.ScrapValue += total
		return
	}

	craftWeaponCurrency := e.cfg.CraftWeaponAsCurrency && value.IsCraftWeapon(a.sku)

	if craftWeaponCurrency && e.pricelist.GetPrice(a.sku, true) == nil {
		total := value.CraftWeaponScrap * float64(a.amount)
		a.side.Total += total
		a.side.ScrapValue += total
		return
	}

	match := e.pricelist.GetPrice(a.sku, true)

	if a.sku == value.SKUKey && a.containsItems {
		// Keys paid as part of a mixed trade keep their fixed value
		// instead of floating with the transaction side.
		a.side.Total += float64(a.keyScrap * a.amount)
		a.side.KeyCount += a.amount
		return
	}

	intentAllows := match != nil && (a.buying && match.Intent.CanBuy() ||
		!a.buying && match.Intent.CanSell())

	if match != nil && intentAllows {
		e.valuatePriced(a, match, craftWeaponCurrency)
		return
	}

	e.valuateInvalid(ctx, a)
}

func (e *Engine) valuatePriced(a valuateArgs, match *entity.PriceEntry, craftWeaponCurrency bool) {
	price := match.Sell
	if a.buying {
		price = match.Buy
	}

	a.side.Total += float64(price.ToValue(a.keyScrap) * a.amount)
	a.side.KeyCount += price.Keys * a.amount
	a.side.ScrapValue += float64(value.ToScrap(price.Metal) * a.amount)

	a.val.prices = append(a.val.prices, entity.PriceUsed{
		SKU:  match.SKU,
		Buy:  match.Buy,
		Sell: match.Sell,
	})

	// Stock capacity, skipped for craft weapons used as currency.
	diff := diffFor(a.dict, a.sku)
	overstockBuying := diff > 0
	capacity := e.inventory.CapacityFor(a.sku, overstockBuying)

	if diff != 0 && capacity < diff && !craftWeaponCurrency {
		a.scratch.AddOverstocked(a.sku)
		a.val.findings = append(a.val.findings, entity.Overstocked{
			SKU:      a.sku,
			Buying:   overstockBuying,
			Delta:    diff,
			Capacity: capacity,
		})
	}

	if a.buying &&
		(float64(match.Buy.ToValue(a.keyScrap)) > a.dupeThreshold ||
			float64(match.Sell.ToValue(a.keyScrap)) > a.dupeThreshold) {
		a.val.dupeAssets = append(a.val.dupeAssets, a.offer.AssetsOf(a.sku)...)
	}
}

func (e *Engine) valuateInvalid(ctx context.Context, a valuateArgs) {
	note := a.sku + " - No price"

	live, err := e.livePricer.GetLivePrice(ctx, a.sku)
	if err != nil {
		logger(ctx).Warn(
			"live price lookup failed",
			slog.String(logx.FieldSKU, a.sku),
			logx.Error(err),
		)
	}

	if live != nil {
		price := live.Sell
		if a.buying {
			price = live.Buy
		}

		if e.cfg.GivePriceToInvalidItems {
			a.side.Total += float64(price.ToValue(a.keyScrap) * a.amount)
			a.side.KeyCount += price.Keys * a.amount
			a.side.ScrapValue += float64(value.ToScrap(price.Metal) * a.amount)
		}

		suggested := value.FromValue(price.ToValue(a.keyScrap), a.keyScrap)
		note = a.sku + " - " + suggested.String()
	}

	a.scratch.AddInvalid(note)
	a.val.findings = append(a.val.findings, entity.InvalidItem{
		SKU:    a.sku,
		Buying: a.buying,
		Amount: a.amount,
	})
}

func collapseKeys(side *entity.SideSummary, keyScrap int) {
	side.ScrapValue += float64(side.KeyCount * keyScrap)
	side.KeyCount = 0
}
