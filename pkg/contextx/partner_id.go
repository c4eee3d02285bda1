package contextx

import (
	"context"
	"fmt"
)

// PartnerID is the trade partner identity carried through a request context.
type PartnerID string

type contextKeyPartnerID struct{}

func (p PartnerID) String() string {
	return string(p)
}

func WithPartnerID(ctx context.Context, partnerID PartnerID) context.Context {
	return context.WithValue(ctx, contextKeyPartnerID{}, partnerID)
}

func PartnerIDFromContext(ctx context.Context) (PartnerID, error) {
	partnerID, ok := ctx.Value(contextKeyPartnerID{}).(PartnerID)
	if !ok {
		return "", fmt.Errorf("partner id: %w", ErrNoValue)
	}

	return partnerID, nil
}
