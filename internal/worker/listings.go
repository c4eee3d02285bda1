package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"tradebot/pkg/application/modules"
	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	TaskListingsRefresh    = "listings:refresh"
	TaskListingsRefreshAll = "listings:refresh_all"

	QueueListings = "listings"
)

type refreshPayload struct {
	SKU string `json:"sku"`
}

// ListingsEnqueuer satisfies the engine's Listings port by deferring
// refresh work to the task queue.
type ListingsEnqueuer struct {
	client *asynq.Client
}

func NewListingsEnqueuer(client *asynq.Client) *ListingsEnqueuer {
	return &ListingsEnqueuer{client: client}
}

func (e *ListingsEnqueuer) Refresh(ctx context.Context, sku string) error {
	payload, err := json.Marshal(refreshPayload{SKU: sku})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(TaskListingsRefresh, payload)
	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue(QueueListings)); err != nil {
		return fmt.Errorf("enqueue refresh %s: %w", sku, err)
	}

	return nil
}

func (e *ListingsEnqueuer) RefreshAll(ctx context.Context) error {
	task := asynq.NewTask(TaskListingsRefreshAll, nil)
	if _, err := e.client.EnqueueContext(ctx, task, asynq.Queue(QueueListings)); err != nil {
		return fmt.Errorf("enqueue refresh all: %w", err)
	}

	return nil
}

// ListingsPublisher republishes buy/sell listings on the platform.
type ListingsPublisher interface {
	Publish(ctx context.Context, sku string) error
	PublishAll(ctx context.Context) error
}

// ListingsHandlers returns the asynq handlers serving the listings
// queue.
func ListingsHandlers(publisher ListingsPublisher) []modules.AsynqHandler {
	logger := contextx.LoggerFromContextOrDefault

	return []modules.AsynqHandler{
		{
			Pattern: TaskListingsRefresh,
			Handle: func(ctx context.Context, task *asynq.Task) error {
				var payload refreshPayload
				if err := json.Unmarshal(task.Payload(), &payload); err != nil {
					return fmt.Errorf("json.Unmarshal: %w", err)
				}

				logger(ctx).Info("refreshing listing", slog.String(logx.FieldSKU, payload.SKU))

				if err := publisher.Publish(ctx, payload.SKU); err != nil {
					return fmt.Errorf("publisher.Publish: %w", err)
				}

				return nil
			},
		},
		{
			Pattern: TaskListingsRefreshAll,
			Handle: func(ctx context.Context, _ *asynq.Task) error {
				logger(ctx).Info("refreshing all listings")

				if err := publisher.PublishAll(ctx); err != nil {
					return fmt.Errorf("publisher.PublishAll: %w", err)
				}

				return nil
			},
		},
	}
}
