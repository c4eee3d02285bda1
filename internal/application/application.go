package application

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"tradebot/internal/config"
	"tradebot/internal/domain/service/engine"
	"tradebot/internal/domain/service/lifecycle"
	"tradebot/internal/domain/service/metal"
	"tradebot/internal/infrastructure/notifier"
	"tradebot/internal/infrastructure/persistence"
	"tradebot/internal/infrastructure/platform"
	"tradebot/internal/infrastructure/pricing"
	"tradebot/internal/server"
	"tradebot/internal/worker"
	"tradebot/pkg/application/connectors"
	"tradebot/pkg/application/modules"
	"tradebot/pkg/contextx"
	"tradebot/pkg/logx"
	"tradebot/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	appName           = "tradebot"
	shutdownTimeout   = 10 * time.Second
	logFieldMaxLen    = 2048
	operatorQueueSize = 16
)

// Version is set at build time.
var Version = "dev" //nolint:gochecknoglobals

func Run(ctx context.Context) error { //nolint:funlen
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Connectors.
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// Persistence.
	offerRepo := persistence.NewOfferRepository(db)
	dataStore := persistence.NewOfferDataStore(redisClient)

	// Pricing.
	pricingClient := pricing.NewClient(cfg.Pricing)
	pricelist := pricing.NewStore()
	if err := pricelist.Load(ctx, pricingClient); err != nil {
		return fmt.Errorf("pricelist.Load: %w", err)
	}
	logger(ctx).Info("pricelist loaded", "entries", pricelist.Len())

	// Platform.
	platformClient := platform.NewClient(cfg.Platform, cfg.Engine.Groups)
	inventory := platform.NewInventoryTracker(platformClient, pricelist)
	if err := inventory.Refresh(ctx); err != nil {
		return fmt.Errorf("inventory.Refresh: %w", err)
	}
	logger(ctx).Info("inventory loaded", "items", inventory.TotalItemCount())

	crafter := platform.NewCrafter(platformClient)
	listingsAPI := platform.NewListingsAPI(platformClient)

	// Deferred listings refresh through the task queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close()

	listings := worker.NewListingsEnqueuer(asynqClient)

	// Decision engine.
	eng := engine.New(cfg.Engine, pricelist, pricingClient, inventory, platformClient, listings)
	prometheus.MustRegister(eng.Collector())

	maintainer := metal.New(cfg.Bands, cfg.Engine, crafter, inventory, pricelist)

	// Operator channel.
	bot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier.NewTelegramBot: %w", err)
	}

	broadcasts := notifier.NewQueue(operatorQueueSize)
	g.Go(func() error {
		if err := bot.Run(ctx, broadcasts.Texts()); err != nil {
			return fmt.Errorf("bot.Run: %w", err)
		}

		return nil
	})

	var webhook lifecycle.Webhook
	if cfg.Bot.WebhookURL != "" {
		webhook = notifier.NewWebhook(cfg.Bot.WebhookURL)
	}

	reactor := lifecycle.New(
		cfg.Engine,
		platformClient,
		broadcasts,
		webhook,
		listings,
		platformClient,
		maintainer,
		inventory,
		pricelist,
		offerRepo,
	)

	// Bring the metal stock into its bands before trading starts.
	if err := maintainer.Rebalance(ctx); err != nil {
		logger(ctx).Error("startup metal rebalance failed", logx.Error(err))
	}

	// Offer decision loop.
	reviews := worker.NewReviewQueue()
	poller := worker.NewPoller(
		cfg.Engine,
		cfg.Platform.PollInterval,
		platformClient,
		dataStore,
		eng,
		reactor,
		inventory,
		reviews,
	)
	g.Go(func() error {
		if err := poller.Run(ctx); err != nil {
			return fmt.Errorf("poller.Run: %w", err)
		}

		return nil
	})

	// Review API.
	srv := server.NewServer(server.NewReviewServer(reviews, platformClient, inventory, pricelist, offerRepo))

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID)
	router.Use(middlewarex.Logger)
	router.Use(middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen))
	router.Use(middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen))
	router.Use(middlewarex.Recovery)
	srv.RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: shutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.Server.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	})

	modules.MetricServer{ListenAddress: cfg.Server.MetricListenAddress}.Run(ctx, g)

	modules.ProbeServer{
		Name:          appName,
		Version:       Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueListings: 1},
		worker.ListingsHandlers(listingsAPI)...,
	)

	logger(ctx).Info("application started", "version", Version)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}
