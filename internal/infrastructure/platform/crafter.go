package platform

import (
	"context"
	"fmt"

	"tradebot/internal/domain/service/metal"
)

// Crafter issues craft actions through the platform API. Satisfies the
// metal maintainer's Crafter.
type Crafter struct {
	client *Client
}

func NewCrafter(client *Client) *Crafter {
	return &Crafter{client: client}
}

type craftRequest struct {
	Action       string `json:"action"`
	Denomination string `json:"denomination,omitempty"`
	SKU          string `json:"sku,omitempty"`
}

func (c *Crafter) Combine(ctx context.Context, d metal.Denomination) error {
	return c.craft(ctx, craftRequest{Action: "combine", Denomination: string(d)})
}

func (c *Crafter) Smelt(ctx context.Context, d metal.Denomination) error {
	return c.craft(ctx, craftRequest{Action: "smelt", Denomination: string(d)})
}

func (c *Crafter) CombineWeapon(ctx context.Context, sku string) error {
	return c.craft(ctx, craftRequest{Action: "combine_weapon", SKU: sku})
}

func (c *Crafter) SortInventory(ctx context.Context) error {
	url := c.client.baseURL + "/inventory/sort"
	if err := c.client.post(ctx, url, nil, nil); err != nil {
		return fmt.Errorf("sort inventory: %w", err)
	}

	return nil
}

func (c *Crafter) craft(ctx context.Context, body craftRequest) error {
	url := c.client.baseURL + "/crafts"
	if err := c.client.post(ctx, url, body, nil); err != nil {
		return fmt.Errorf("craft %s: %w", body.Action, err)
	}

	return nil
}
