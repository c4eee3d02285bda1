package platform

import (
	"context"
	"fmt"
	"net/url"
)

// ListingsAPI republishes our buy/sell listings on the platform.
type ListingsAPI struct {
	client *Client
}

func NewListingsAPI(client *Client) *ListingsAPI {
	return &ListingsAPI{client: client}
}

func (l *ListingsAPI) Publish(ctx context.Context, sku string) error {
	reqURL := fmt.Sprintf("%s/listings/%s/refresh", l.client.baseURL, url.PathEscape(sku))
	if err := l.client.post(ctx, reqURL, nil, nil); err != nil {
		return fmt.Errorf("refresh listing %s: %w", sku, err)
	}

	return nil
}

func (l *ListingsAPI) PublishAll(ctx context.Context) error {
	if err := l.client.post(ctx, l.client.baseURL+"/listings/refresh", nil, nil); err != nil {
		return fmt.Errorf("refresh all listings: %w", err)
	}

	return nil
}
