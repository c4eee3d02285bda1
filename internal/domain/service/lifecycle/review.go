package lifecycle

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/lox"
)

// missingPure renders the pure shortfall of the partner's side, or ""
// when the offer is balanced or was never valuated.
func (r *Reactor) missingPure(offer *entity.Offer) string {
	snapshot := offer.Data.Value
	if snapshot == nil {
		return ""
	}

	diff := snapshot.Our - snapshot.Their
	if diff <= 0 {
		return ""
	}

	keyScrap := value.ToScrap(snapshot.KeyRate)
	missing := value.FromValue(int(math.Ceil(diff)), keyScrap)

	return missing.String()
}

// pureStock renders the current currency holdings, keys first.
func pureStock(counts entity.CurrencyCounts, keyPrice value.Currency) []string {
	stock := make([]string, 0, 2)
	if counts.Keys > 0 {
		stock = append(stock, value.Currency{Keys: counts.Keys}.String())
	}

	metal := value.ToRefined(counts.MetalScrap())
	stock = append(stock, value.Currency{Metal: metal}.String())

	if !keyPrice.IsZero() {
		stock = append(stock, fmt.Sprintf("(key rate: %s)", keyPrice.String()))
	}

	return stock
}

// partnerLinks builds the operator lookup links for a trade partner.
func partnerLinks(partnerID string) string {
	return strings.Join([]string{
		"Steam: https://steamcommunity.com/profiles/" + partnerID,
		"Backpack.tf: https://backpack.tf/profiles/" + partnerID,
		"SteamREP: https://steamrep.com/profiles/" + partnerID,
	}, "\n")
}

// tradeSummary is the operator broadcast sent after an accepted trade.
func (r *Reactor) tradeSummary(offer *entity.Offer) string {
	var b strings.Builder

	b.WriteString("✅ Trade #" + offer.ID + " with " + offer.PartnerID + " accepted.\n")
	b.WriteString("Summary:\n")
	b.WriteString(summarizeExchange(offer))

	if len(r.cfg.ExceptionSKUs) > 0 && offer.Data.Value != nil && offer.Data.Value.Our > offer.Data.Value.Their {
		b.WriteString("Value exception applied.\n")
	}

	b.WriteString("\n" + partnerLinks(offer.PartnerID) + "\n")

	stock := pureStock(r.inventory.CurrencyCounts(), r.pricelist.GetKeyPrice())
	b.WriteString("\nPure stock: " + strings.Join(stock, ", "))
	b.WriteString(fmt.Sprintf("\nTotal items: %d", r.inventory.TotalItemCount()))

	return b.String()
}

// reviewOperatorMessage is the operator broadcast sent when an offer is
// held for manual review.
func (r *Reactor) reviewOperatorMessage(offer *entity.Offer, reasons []entity.FindingKind, scratch entity.ReviewScratch) string {
	var b strings.Builder

	b.WriteString("⚠️ Offer #" + offer.ID + " from " + offer.PartnerID + " is pending review.\n")
	b.WriteString("Reasons: " + joinKinds(reasons) + "\n")

	if len(scratch.InvalidItems) > 0 {
		b.WriteString("Invalid items: " + strings.Join(scratch.InvalidItems, ", ") + "\n")
	}
	if len(scratch.Overstocked) > 0 {
		b.WriteString("Overstocked: " + strings.Join(scratch.Overstocked, ", ") + "\n")
	}
	if len(scratch.DupedItems) > 0 {
		b.WriteString("Duped: " + strings.Join(scratch.DupedItems, ", ") + "\n")
	}
	if len(scratch.DupeFailedItems) > 0 {
		b.WriteString("Dupe check failed: " + strings.Join(scratch.DupeFailedItems, ", ") + "\n")
	}

	b.WriteString("Summary:\n")
	b.WriteString(summarizeExchange(offer))

	b.WriteString("\n" + partnerLinks(offer.PartnerID) + "\n")

	stock := pureStock(r.inventory.CurrencyCounts(), r.pricelist.GetKeyPrice())
	b.WriteString("\nPure stock: " + strings.Join(stock, ", "))

	return b.String()
}

// summarizeExchange renders the per-SKU item lists and totals of both
// sides of an offer from its valuation snapshot.
func summarizeExchange(offer *entity.Offer) string {
	var b strings.Builder

	if offer.Data.Dict != nil {
		b.WriteString("Offered: " + itemList(offer.Data.Dict.Their) + "\n")
		b.WriteString("Asked: " + itemList(offer.Data.Dict.Our) + "\n")
	}

	if snapshot := offer.Data.Value; snapshot != nil {
		keyScrap := value.ToScrap(snapshot.KeyRate)
		b.WriteString(fmt.Sprintf(
			"Value: we give %s, we receive %s\n",
			renderTotal(snapshot.Our, keyScrap),
			renderTotal(snapshot.Their, keyScrap),
		))
	}

	return b.String()
}

func itemList(side map[string]int) string {
	if len(side) == 0 {
		return "nothing"
	}

	parts := make([]string, 0, len(side))
	for _, sku := range slices.Sorted(maps.Keys(side)) {
		parts = append(parts, fmt.Sprintf("%s x%d", sku, side[sku]))
	}

	return strings.Join(parts, ", ")
}

func renderTotal(scrap float64, keyScrap int) string {
	return value.FromValue(int(math.Round(scrap)), keyScrap).String()
}

func joinKinds(kinds []entity.FindingKind) string {
	return strings.Join(lox.Map(kinds, func(kind entity.FindingKind) string {
		return string(kind)
	}), ", ")
}
