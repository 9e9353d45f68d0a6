package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/catalyst-itsm/intake-service/internal/api/http"
	"github.com/catalyst-itsm/intake-service/internal/api/http/handlers"
	"github.com/catalyst-itsm/intake-service/internal/billing"
	"github.com/catalyst-itsm/intake-service/internal/config"
	"github.com/catalyst-itsm/intake-service/internal/events"
	"github.com/catalyst-itsm/intake-service/internal/idempotency"
	"github.com/catalyst-itsm/intake-service/internal/observability"
	"github.com/catalyst-itsm/intake-service/internal/persistence"
	"github.com/catalyst-itsm/intake-service/internal/repository"
	"github.com/catalyst-itsm/intake-service/internal/service"
	"github.com/catalyst-itsm/intake-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var ticketRepo repository.TicketRepository
	var tenantRepo repository.TenantRepository
	if pool := pg.PoolHandle(); pool != nil {
		ticketRepo = repository.NewTicketRepository(pool)
		tenantRepo = repository.NewTenantRepository(pool)
	} else {
		logger.Warn("using in-memory ticket and tenant stores")
		ticketRepo = repository.NewMemoryTicketRepository()
		tenantRepo = repository.NewMemoryTenantRepository()
	}

	var ledger idempotency.Ledger
	if redis.Ping(ctx) == nil {
		ledger = idempotency.NewRedisLedger(redis.Client)
	} else {
		logger.Warn("redis unreachable; using in-memory idempotency ledger")
		ledger = idempotency.NewMemoryLedger()
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	intakeService := service.NewIntakeService(ledger, ticketService)

	var subscriptionClient billing.SubscriptionClient
	if cfg.Billing.AccessToken != "" {
		subscriptionClient = billing.NewClient(cfg.Billing)
	} else {
		logger.Warn("billing access token not configured; tenant provisioning will use mock subscriptions")
	}
	tenantService := service.NewTenantService(service.TenantDependencies{
		TenantRepo:         tenantRepo,
		SubscriptionClient: subscriptionClient,
		Dispatcher:         dispatcher,
		Logger:             logger,
	})

	webhookProcessor := billing.NewProcessor(cfg.Webhook.Secret, dispatcher, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:  handlers.NewTicketsHandler(intakeService, ticketService),
		Tenants:  handlers.NewTenantsHandler(tenantService),
		Webhooks: handlers.NewWebhooksHandler(webhookProcessor),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
