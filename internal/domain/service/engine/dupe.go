package engine

import (
	"context"
	"log/slog"

	"tradebot/internal/domain/entity"
	"tradebot/pkg/logx"
)

// checkDupes verifies the queued high-value received assets against
// the provenance service, one asset at a time. A confirmed duplicate
// declines (when configured); inconclusive results and call failures
// become review findings and never abort the remaining queue.
func (e *Engine) checkDupes(
	ctx context.Context,
	val *valuation,
	scratch *entity.ReviewScratch,
) (entity.Decision, bool) {
	if !e.cfg.DupeCheckEnabled || len(val.dupeAssets) == 0 {
		return entity.Decision{}, false
	}

	logger(ctx).Info("checking assets for duplication", slog.Int("count", len(val.dupeAssets)))

	for _, asset := range val.dupeAssets {
		duped, err := e.reputation.IsDuplicated(ctx, asset.AssetID)
		if err != nil {
			logger(ctx).Warn(
				"dupe check failed",
				slog.String(logx.FieldAssetID, asset.AssetID),
				logx.Error(err),
			)

			scratch.AddDupeFailed(asset.SKU)
			val.findings = append(val.findings, entity.DupeCheckFailed{
				AssetID: asset.AssetID,
				Err:     err.Error(),
			})

			continue
		}

		if duped == nil {
			scratch.AddDupeFailed(asset.SKU)
			val.findings = append(val.findings, entity.DupeCheckFailed{AssetID: asset.AssetID})

			continue
		}

		if !*duped {
			continue
		}

		if e.cfg.DeclineDupes {
			return entity.Decision{
				Action:   entity.ActionDecline,
				Reason:   string(entity.KindDupedItem),
				Findings: append(val.findings, entity.DupedItem{AssetID: asset.AssetID}),
			}, true
		}

		scratch.AddDuped(asset.SKU)
		val.findings = append(val.findings, entity.DupedItem{AssetID: asset.AssetID})
	}

	return entity.Decision{}, false
}
