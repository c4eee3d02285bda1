package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	OfferNotFound        failure.ErrorCode = "OfferNotFound"
	OfferAlreadyResolved failure.ErrorCode = "OfferAlreadyResolved"
	OfferNotUnderReview  failure.ErrorCode = "OfferNotUnderReview"
	InvalidOfferID       failure.ErrorCode = "InvalidOfferID"
	InvalidReviewAction  failure.ErrorCode = "InvalidReviewAction"

	PriceNotFound         failure.ErrorCode = "PriceNotFound"
	InvalidSKU            failure.ErrorCode = "InvalidSKU"
	InvalidPartnerID      failure.ErrorCode = "InvalidPartnerID"
	InvalidGroupID        failure.ErrorCode = "InvalidGroupID"
	InvalidExceptionSKU   failure.ErrorCode = "InvalidExceptionSKU"
	PricingServiceDown    failure.ErrorCode = "PricingServiceDown"
	ReputationServiceDown failure.ErrorCode = "ReputationServiceDown"
	EscrowServiceDown     failure.ErrorCode = "EscrowServiceDown"
)
