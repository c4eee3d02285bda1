package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"tradebot/internal/config"
	"tradebot/internal/domain"
	"tradebot/internal/domain/entity"
	"tradebot/pkg/errcodes"
	"tradebot/pkg/httpx"
	"tradebot/pkg/logx"
)

const (
	gatekeeperTTL     = 5 * time.Minute
	gatekeeperJanitor = time.Minute
)

// Client is the trade platform HTTP API: offers, escrow and ban
// checks, asset provenance, partner messages, group invites.
type Client struct {
	baseURL string
	groups  []string
	http    *http.Client

	// Escrow and ban verdicts are stable for minutes; cache them so a
	// burst of offers from one partner costs one lookup.
	gatekeeper *cache.Cache
}

func NewClient(cfg config.Platform, groups []string) *Client {
	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		),
		newStaticAuthenticator(cfg.APIKey),
	)

	return &Client{
		baseURL: cfg.BaseURL,
		groups:  groups,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		gatekeeper: cache.New(gatekeeperTTL, gatekeeperJanitor),
	}
}

// GetOffers returns the active offers created or changed since the
// given moment.
func (c *Client) GetOffers(ctx context.Context, since time.Time) ([]entity.Offer, error) {
	url := fmt.Sprintf("%s/offers?since=%d", c.baseURL, since.Unix())

	var response offersResponse
	if err := c.get(ctx, url, &response); err != nil {
		return nil, fmt.Errorf("get offers: %w", err)
	}

	offers := make([]entity.Offer, 0, len(response.Offers))
	for _, schema := range response.Offers {
		offers = append(offers, schema.toDomain())
	}

	return offers, nil
}

// Accept confirms the offer on the platform.
func (c *Client) Accept(ctx context.Context, offerID string) error {
	url := fmt.Sprintf("%s/offers/%s/accept", c.baseURL, offerID)
	if err := c.post(ctx, url, nil, nil); err != nil {
		return fmt.Errorf("accept offer %s: %w", offerID, err)
	}

	return nil
}

// Decline rejects the offer on the platform.
func (c *Client) Decline(ctx context.Context, offerID string) error {
	url := fmt.Sprintf("%s/offers/%s/decline", c.baseURL, offerID)
	if err := c.post(ctx, url, nil, nil); err != nil {
		return fmt.Errorf("decline offer %s: %w", offerID, err)
	}

	return nil
}

// SendMessage delivers a direct message to the partner.
func (c *Client) SendMessage(ctx context.Context, partnerID, message string) error {
	url := c.baseURL + "/messages"
	body := messageRequest{PartnerID: partnerID, Message: message}

	if err := c.post(ctx, url, body, nil); err != nil {
		return fmt.Errorf("send message to %s: %w", partnerID, err)
	}

	return nil
}

// InviteToGroups invites the partner to every configured group.
func (c *Client) InviteToGroups(ctx context.Context, partnerID string) error {
	for _, group := range c.groups {
		url := fmt.Sprintf("%s/groups/%s/invite", c.baseURL, group)
		body := messageRequest{PartnerID: partnerID}

		if err := c.post(ctx, url, body, nil); err != nil {
			return fmt.Errorf("invite %s to group %s: %w", partnerID, group, err)
		}
	}

	return nil
}

// WouldEscrow reports whether accepting the offer would place the
// items on hold.
func (c *Client) WouldEscrow(ctx context.Context, offerID, partnerID string) (bool, error) {
	cacheKey := "escrow:" + offerID
	if cached, ok := c.gatekeeper.Get(cacheKey); ok {
		return cached.(bool), nil
	}

	url := fmt.Sprintf("%s/offers/%s/escrow?partner_id=%s", c.baseURL, offerID, partnerID)

	var response escrowResponse
	if err := c.get(ctx, url, &response); err != nil {
		return false, domain.WrapError(err, errcodes.EscrowServiceDown, "escrow check failed")
	}

	c.gatekeeper.SetDefault(cacheKey, response.Escrow)

	return response.Escrow, nil
}

// IsBanned reports whether the partner is banned from trading with us.
func (c *Client) IsBanned(ctx context.Context, partnerID string) (bool, error) {
	cacheKey := "ban:" + partnerID
	if cached, ok := c.gatekeeper.Get(cacheKey); ok {
		return cached.(bool), nil
	}

	url := fmt.Sprintf("%s/reputation/%s", c.baseURL, partnerID)

	var response reputationResponse
	if err := c.get(ctx, url, &response); err != nil {
		return false, domain.WrapError(err, errcodes.ReputationServiceDown, "ban check failed")
	}

	c.gatekeeper.SetDefault(cacheKey, response.Banned)

	return response.Banned, nil
}

// IsDuplicated checks the asset's provenance. Nil means the service
// could not tell.
func (c *Client) IsDuplicated(ctx context.Context, assetID string) (*bool, error) {
	url := fmt.Sprintf("%s/assets/%s/provenance", c.baseURL, assetID)

	var response provenanceResponse
	if err := c.get(ctx, url, &response); err != nil {
		return nil, domain.WrapError(err, errcodes.ReputationServiceDown, "provenance check failed")
	}

	switch response.Status {
	case provenanceDuped:
		duped := true

		return &duped, nil
	case provenanceClean:
		duped := false

		return &duped, nil
	default:
		return nil, nil
	}
}

// FetchInventory returns our current inventory.
func (c *Client) FetchInventory(ctx context.Context) ([]entity.Item, error) {
	url := c.baseURL + "/inventory"

	var response inventoryResponse
	if err := c.get(ctx, url, &response); err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	items := make([]entity.Item, 0, len(response.Items))
	for _, schema := range response.Items {
		items = append(items, schema.toDomain())
	}

	return items, nil
}

func (c *Client) get(ctx context.Context, url string, dest any) error {
	return c.do(ctx, http.MethodGet, url, nil, dest)
}

func (c *Client) post(ctx context.Context, url string, body, dest any) error {
	return c.do(ctx, http.MethodPost, url, body, dest)
}

func (c *Client) do(ctx context.Context, method, url string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}
