package notifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"tradebot/internal/domain/entity"
	"tradebot/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const webhookTimeout = 10 * time.Second

// Webhook posts structured trade summaries to an external URL.
type Webhook struct {
	url  string
	http *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		url: url,
		http: &http.Client{
			Timeout:   webhookTimeout,
			Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport),
		},
	}
}

type tradeSummaryPayload struct {
	OfferID   string                `json:"offer_id"`
	PartnerID string                `json:"partner_id"`
	State     string                `json:"state"`
	Action    string                `json:"action,omitempty"`
	Reason    string                `json:"reason,omitempty"`
	Value     *entity.ValueSnapshot `json:"value,omitempty"`
	Dict      *entity.ItemsDict     `json:"dict,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

// SendTradeSummary delivers the offer's outcome to the webhook URL.
func (w *Webhook) SendTradeSummary(ctx context.Context, offer *entity.Offer) error {
	payload := tradeSummaryPayload{
		OfferID:   offer.ID,
		PartnerID: offer.PartnerID,
		State:     offer.State.String(),
		Timestamp: time.Now().Unix(),
	}

	if offer.Data != nil {
		payload.Action = string(offer.Data.Action)
		payload.Reason = offer.Data.Reason
		payload.Value = offer.Data.Value
		payload.Dict = offer.Data.Dict
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}
