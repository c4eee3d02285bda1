package metal

import (
	"context"
	"fmt"
	"log/slog"

	"tradebot/internal/config"
	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Denomination string

const (
	Scrap     Denomination = "scrap"
	Reclaimed Denomination = "reclaimed"
	Refined   Denomination = "refined"
)

// Crafter issues discrete craft actions against the game client.
type Crafter interface {
	// Combine turns three units of the denomination into one of the
	// next higher one.
	Combine(ctx context.Context, d Denomination) error
	// Smelt turns one unit of the denomination into three of the next
	// lower one.
	Smelt(ctx context.Context, d Denomination) error
	CombineWeapon(ctx context.Context, sku string) error
	SortInventory(ctx context.Context) error
}

type Inventory interface {
	CurrencyCounts() entity.CurrencyCounts
	CountOf(sku string) int
}

type Pricelist interface {
	GetPrice(sku string, enforceExisting bool) *entity.PriceEntry
}

// Maintainer keeps scrap and reclaimed stock inside the configured
// bands and combines duplicate craft weapons into metal.
type Maintainer struct {
	bands     config.Bands
	engine    config.Engine
	crafter   Crafter
	inventory Inventory
	pricelist Pricelist
}

func New(
	bands config.Bands,
	engine config.Engine,
	crafter Crafter,
	inventory Inventory,
	pricelist Pricelist,
) *Maintainer {
	return &Maintainer{
		bands:     bands,
		engine:    engine,
		crafter:   crafter,
		inventory: inventory,
		pricelist: pricelist,
	}
}

// plan is the number of craft actions each band correction needs.
// Zero value means stock is already inside both bands.
type plan struct {
	CombineScrap     int
	CombineReclaimed int
	SmeltRefined     int
	SmeltReclaimed   int
}

func (p plan) isNoop() bool {
	return p == plan{}
}

// rebalancePlan works in unit counts per denomination. Each band is
// corrected independently with ceiling division, so a re-run on
// in-band stock plans nothing.
func rebalancePlan(counts entity.CurrencyCounts, bands config.Bands) plan {
	var p plan

	reclaimed := counts.Reclaimed
	scrap := counts.Scrap

	maxReclaimed := bands.MinReclaimed + bands.CombineHold
	maxScrap := bands.MinScrap + bands.CombineHold

	if reclaimed > maxReclaimed {
		p.CombineReclaimed = ceilDiv(reclaimed-maxReclaimed, value.ScrapPerReclaimed)
		reclaimed -= p.CombineReclaimed * value.ScrapPerReclaimed
	} else if reclaimed < bands.MinReclaimed {
		p.SmeltRefined = ceilDiv(bands.MinReclaimed-reclaimed, value.ScrapPerReclaimed)
		reclaimed += p.SmeltRefined * value.ScrapPerReclaimed
	}

	if scrap > maxScrap {
		p.CombineScrap = ceilDiv(scrap-maxScrap, value.ScrapPerReclaimed)
		scrap -= p.CombineScrap * value.ScrapPerReclaimed
		reclaimed += p.CombineScrap
	} else if scrap < bands.MinScrap {
		p.SmeltReclaimed = ceilDiv(bands.MinScrap-scrap, value.ScrapPerReclaimed)
		scrap += p.SmeltReclaimed * value.ScrapPerReclaimed
		reclaimed -= p.SmeltReclaimed
	}

	return p
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Rebalance is invoked after every accepted trade and at startup.
func (m *Maintainer) Rebalance(ctx context.Context) error {
	if !m.engine.CraftMetal {
		return nil
	}

	p := rebalancePlan(m.inventory.CurrencyCounts(), m.bands)
	if p.isNoop() {
		return nil
	}

	logger(ctx).Info(
		"rebalancing metal supply",
		slog.Int("combine-scrap", p.CombineScrap),
		slog.Int("combine-reclaimed", p.CombineReclaimed),
		slog.Int("smelt-refined", p.SmeltRefined),
		slog.Int("smelt-reclaimed", p.SmeltReclaimed),
	)

	for i := 0; i < p.CombineScrap; i++ {
		if err := m.crafter.Combine(ctx, Scrap); err != nil {
			return fmt.Errorf("crafter.Combine(scrap): %w", err)
		}
	}

	for i := 0; i < p.CombineReclaimed; i++ {
		if err := m.crafter.Combine(ctx, Reclaimed); err != nil {
			return fmt.Errorf("crafter.Combine(reclaimed): %w", err)
		}
	}

	for i := 0; i < p.SmeltRefined; i++ {
		if err := m.crafter.Smelt(ctx, Refined); err != nil {
			return fmt.Errorf("crafter.Smelt(refined): %w", err)
		}
	}

	for i := 0; i < p.SmeltReclaimed; i++ {
		if err := m.crafter.Smelt(ctx, Reclaimed); err != nil {
			return fmt.Errorf("crafter.Smelt(reclaimed): %w", err)
		}
	}

	return nil
}

// CraftDuplicateWeapons combines pairs of identical unpriced craft
// weapons into metal.
func (m *Maintainer) CraftDuplicateWeapons(ctx context.Context) error {
	if !m.engine.CraftDuplicateWeapons {
		return nil
	}

	for _, sku := range value.CraftWeapons {
		count := m.inventory.CountOf(sku)

		if count < 2 || m.pricelist.GetPrice(sku, true) != nil {
			continue
		}

		pairs := count / 2
		for i := 0; i < pairs; i++ {
			if err := m.crafter.CombineWeapon(ctx, sku); err != nil {
				return fmt.Errorf("crafter.CombineWeapon(%s): %w", sku, err)
			}
		}
	}

	return nil
}

// SortInventory asks the game client to re-sort the backpack.
func (m *Maintainer) SortInventory(ctx context.Context) error {
	if !m.engine.SortInventory {
		return nil
	}

	if err := m.crafter.SortInventory(ctx); err != nil {
		return fmt.Errorf("crafter.SortInventory: %w", err)
	}

	return nil
}
