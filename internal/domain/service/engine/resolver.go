package engine

import (
	"context"
	"log/slog"
	"strings"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/value"
	"tradebot/pkg/logx"
)

// Skip reasons for external-service outages.
const (
	ReasonPlatformDown   = "PLATFORM_DOWN"
	ReasonReputationDown = "REPUTATION_DOWN"
)

// resolve runs the back half of the pipeline: value exception, fast
// declines when manual review is off, the overpay rule, both external
// gatekeepers, duplicate verification, and the final resolution over
// the accumulated finding set.
func (e *Engine) resolve(
	ctx context.Context,
	offer *entity.Offer,
	val *valuation,
	scratch *entity.ReviewScratch,
) entity.Decision {
	our := val.summary.Our.Total
	their := val.summary.Their.Total

	exceptionApplied := e.applyValueException(ctx, offer, val, our, their)

	if !e.cfg.ManualReview {
		if entity.HasKind(val.findings, entity.KindOverstocked) {
			return entity.Decision{
				Action:   entity.ActionDecline,
				Reason:   string(entity.KindOverstocked),
				Findings: val.findings,
			}
		}

		if entity.HasKind(val.findings, entity.KindInvalidValue) {
			return entity.Decision{
				Action:   entity.ActionDecline,
				Reason:   string(entity.KindInvalidValue),
				Findings: val.findings,
			}
		}
	}

	if our < their && !e.cfg.AllowOverpay {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonOverpay}
	}

	if decision, done := e.checkEscrow(ctx, offer, val); done {
		return decision
	}

	if decision, done := e.checkBanned(ctx, offer, val); done {
		return decision
	}

	if decision, done := e.checkDupes(ctx, val, scratch); done {
		return decision
	}

	if len(val.findings) == 0 {
		return entity.Decision{Action: entity.ActionAccept, Reason: ReasonValid}
	}

	return e.resolveFindings(ctx, val, our, their, exceptionApplied)
}

// applyValueException records INVALID_VALUE when we give more than we
// receive, unless an allowlisted SKU is present and the shortfall is
// under the configured tolerance.
func (e *Engine) applyValueException(
	ctx context.Context,
	offer *entity.Offer,
	val *valuation,
	our, their float64,
) bool {
	if our <= their {
		return false
	}

	shortfall := our - their

	if e.matchesException(offer) && shortfall < e.exceptionScrap {
		logger(ctx).Info(
			"value shortfall forgiven by exception",
			slog.Float64("shortfall-ref", value.ToRefined(int(shortfall))),
		)

		return true
	}

	val.findings = append(val.findings, entity.InvalidValue{OurTotal: our, TheirTotal: their})

	return false
}

// matchesException substring-matches the configured exception SKUs
// against every SKU on either side.
func (e *Engine) matchesException(offer *entity.Offer) bool {
	if offer.Data.Dict == nil {
		return false
	}

	for _, counts := range []map[string]int{offer.Data.Dict.Our, offer.Data.Dict.Their} {
		for sku := range counts {
			for _, exception := range e.cfg.ExceptionSKUs {
				if exception != "" && strings.Contains(sku, exception) {
					return true
				}
			}
		}
	}

	return false
}

func (e *Engine) checkEscrow(
	ctx context.Context,
	offer *entity.Offer,
	val *valuation,
) (entity.Decision, bool) {
	held, err := e.reputation.WouldEscrow(ctx, offer.ID, offer.PartnerID)
	if err != nil {
		logger(ctx).Warn("escrow check failed", logx.Error(err))

		val.findings = append(val.findings, entity.ServiceDown{
			Service: ServicePlatform,
			Err:     err.Error(),
		})

		// Outage never declines, the offer waits for review.
		return entity.Decision{
			Action:   entity.ActionSkip,
			Reason:   ReasonPlatformDown,
			Findings: val.findings,
		}, true
	}

	if held {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonEscrow}, true
	}

	return entity.Decision{}, false
}

func (e *Engine) checkBanned(
	ctx context.Context,
	offer *entity.Offer,
	val *valuation,
) (entity.Decision, bool) {
	banned, err := e.reputation.IsBanned(ctx, offer.PartnerID)
	if err != nil {
		logger(ctx).Warn("ban check failed", logx.Error(err))

		val.findings = append(val.findings, entity.ServiceDown{
			Service: ServiceReputation,
			Err:     err.Error(),
		})

		return entity.Decision{
			Action:   entity.ActionSkip,
			Reason:   ReasonReputationDown,
			Findings: val.findings,
		}, true
	}

	if banned {
		return entity.Decision{Action: entity.ActionDecline, Reason: ReasonBanned}, true
	}

	return entity.Decision{}, false
}

// resolveFindings is the final resolution over a non-empty finding
// set.
func (e *Engine) resolveFindings(
	ctx context.Context,
	val *valuation,
	our, their float64,
	exceptionApplied bool,
) entity.Decision {
	hasInvalidItem := entity.HasKind(val.findings, entity.KindInvalidItem)
	hasOverstock := entity.HasKind(val.findings, entity.KindOverstocked)
	hasInvalidValue := entity.HasKind(val.findings, entity.KindInvalidValue)

	blocked := hasInvalidValue ||
		entity.HasKind(val.findings, entity.KindDupedItem) ||
		entity.HasKind(val.findings, entity.KindDupeCheckFailed)

	overridable := (hasInvalidItem && e.cfg.AcceptInvalidItemsOverpay) ||
		(hasOverstock && e.cfg.AcceptOverstockedOverpay)

	// With folded-in live prices or forgiving overstock the partner
	// must strictly overpay; otherwise breaking even is enough.
	overpaid := our < their
	if !e.cfg.GivePriceToInvalidItems && !e.cfg.AcceptOverstockedOverpay {
		overpaid = our <= their
	}

	if overridable && !blocked && overpaid && our != 0 {
		logger(ctx).Info("flags overridden by overpay, accepting")
		return entity.Decision{Action: entity.ActionAccept, Reason: ReasonValid, Findings: val.findings}
	}

	onlyInvalidValue := hasInvalidValue && len(entity.Reasons(val.findings)) == 1

	if e.cfg.AutoDeclineInvalidValue && onlyInvalidValue && !exceptionApplied {
		return entity.Decision{
			Action:   entity.ActionDecline,
			Reason:   ReasonOnlyInvalidValue,
			Findings: val.findings,
		}
	}

	return entity.Decision{
		Action:   entity.ActionSkip,
		Reason:   ReasonReview,
		Findings: val.findings,
	}
}
