package lifecycle

import (
	"fmt"
	"strings"

	"tradebot/internal/domain/entity"
	"tradebot/internal/domain/service/engine"
)

const (
	defaultSuccessMessage = "/pre ✅ Success! The offer went through successfully."
	escrowDelayMessage = "/pre ✅ Success! The offer went through successfully, but you will " +
		"have to wait a few days before you can receive the items because of your trade hold."
	tradedAwayMessage = "❌ Ohh nooooes! Your offer is no longer available. " +
		"Reason: Items not available (traded away in a different trade)."
	canceledByUserMessage      = "/pre ❌ Ohh nooooes! The offer is no longer available. Reason: Offer was canceled by user."
	canceledConfirmMessage     = "/pre ❌ Ohh nooooes! The offer is no longer available. Reason: Failed to accept mobile confirmation."
	canceledTimeoutMessage     = "/pre ❌ Ohh nooooes! The offer is no longer available. Reason: The offer has been active for a while."
	reviewHoldMessage          = "⚠️ Your offer is pending review."
	reviewServiceDownMessage   = "⚠️ Your offer is pending review, please wait while we manually check it."
	defaultDeclineExplanation  = "the offer does not meet our requirements"
	declineReasonGiftNoNote    = "we don't accept gifts without a gift note. Please include \"gift\" in the trade message"
	declineReasonDuelingUses   = "your offer contains a Dueling Mini-Game that does not have 5 uses left"
	declineReasonNoiseMaker    = "your offer contains a Noise Maker that does not have 25 uses left"
	declineReasonNotTrading    = "we are not trading keys right now"
	declineReasonBanned        = "you are banned from trading with us"
	declineReasonEscrow        = "trades with trade hold are not accepted. Please turn on your mobile authenticator and try again in 7 days"
	declineReasonOnlyMetal     = "metal-only offers are not accepted"
	declineReasonNonGameItems  = "your offer contains items from another game"
	declineReasonOverpay       = "we don't accept overpay"
	declineReasonDupedItems    = "your offer contains duped items"
	declineReasonInvalidValueF = "you've sent a trade with an invalid value (your side and my side do not hold equal value). You're missing: %s"
)

func successMessage(custom string) string {
	if custom != "" {
		return custom
	}

	return defaultSuccessMessage
}

// declinedMessage renders the partner-facing explanation for a declined
// offer. missing is the pure shortfall, already rendered, and is only
// used for value-based declines.
func declinedMessage(custom, reason, missing string) string {
	if custom != "" {
		return custom
	}

	explanation := defaultDeclineExplanation

	switch reason {
	case engine.ReasonGiftNoNote:
		explanation = declineReasonGiftNoNote
	case engine.ReasonDuelingUses:
		explanation = declineReasonDuelingUses
	case engine.ReasonNoiseMakerUses:
		explanation = declineReasonNoiseMaker
	case engine.ReasonNotTradingKeys:
		explanation = declineReasonNotTrading
	case engine.ReasonBanned:
		explanation = declineReasonBanned
	case engine.ReasonEscrow:
		explanation = declineReasonEscrow
	case engine.ReasonOnlyMetal:
		explanation = declineReasonOnlyMetal
	case engine.ReasonNonGameItems:
		explanation = declineReasonNonGameItems
	case engine.ReasonOverpay:
		explanation = declineReasonOverpay
	case string(entity.KindDupedItem):
		explanation = declineReasonDupedItems
	case string(entity.KindOverstocked):
		explanation = "you're offering items we already have too many of"
	case engine.ReasonOnlyInvalidValue, string(entity.KindInvalidValue):
		if missing != "" {
			explanation = fmt.Sprintf(declineReasonInvalidValueF, missing)
		} else {
			explanation = "you've sent a trade with an invalid value (your side and my side do not hold equal value)"
		}
	}

	return "/pre ❌ Ohh nooooes! The offer was declined because " + explanation + "."
}

func canceledMessage(byUser, failedConfirmation bool) string {
	switch {
	case byUser:
		return canceledByUserMessage
	case failedConfirmation:
		return canceledConfirmMessage
	default:
		return canceledTimeoutMessage
	}
}

// reviewPartnerMessage tells the partner why the offer is held. Only
// pure-value shortfalls get a concrete number, everything else is
// summarized by reason.
func reviewPartnerMessage(reasons []entity.FindingKind, scratch entity.ReviewScratch, missing string) string {
	if len(reasons) == 1 && reasons[0] == entity.KindServiceDown {
		return reviewServiceDownMessage
	}

	var notes []string
	for _, reason := range reasons {
		switch reason {
		case entity.KindInvalidValue:
			if missing != "" {
				notes = append(notes, "you're missing: "+missing)
			} else {
				notes = append(notes, "your offer's value does not match ours")
			}
		case entity.KindInvalidItem:
			notes = append(notes, "you've sent items that are not in our pricelist: "+strings.Join(scratch.InvalidItems, ", "))
		case entity.KindOverstocked:
			notes = append(notes, "you're offering items we already have too many of: "+strings.Join(scratch.Overstocked, ", "))
		case entity.KindDupedItem:
			notes = append(notes, "your offer contains duped items: "+strings.Join(scratch.DupedItems, ", "))
		case entity.KindDupeCheckFailed:
			notes = append(notes, "we failed to check some items for duplication: "+strings.Join(scratch.DupeFailedItems, ", "))
		case entity.KindServiceDown:
			notes = append(notes, "one of our backing services is down")
		}
	}

	if len(notes) == 0 {
		return reviewHoldMessage
	}

	return reviewHoldMessage + " Reason: " + strings.Join(notes, "; ") + "."
}
