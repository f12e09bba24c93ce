package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	notifysmtp "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/adapters/smtp"
	notifyworkflows "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/adapters/workflows"
	notifyapp "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/application"
	notifyports "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
	ordershttp "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/http"
	ordersmemory "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/memory"
	ordersobs "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/AshokAssist/OnlineBanner/internal/domains/orders/application"
	ordersports "github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
	usershttp "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/http"
	usersmemory "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/memory"
	usersobs "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/observability"
	userspostgres "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/AshokAssist/OnlineBanner/internal/domains/users/application"
	usersports "github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
	"github.com/AshokAssist/OnlineBanner/internal/platform/migrations"
	platformobservability "github.com/AshokAssist/OnlineBanner/internal/platform/observability"
	platformpostgres "github.com/AshokAssist/OnlineBanner/internal/platform/postgres"
)

// Run boots the banner shop HTTP API with observability, repositories, and
// the notification channel wired.
func Run(ctx context.Context) error {
	const serviceName = "onlinebanner-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	orderRepo := buildOrderRepository(db, logger)
	userRepo, sessionStore := buildUserStores(db, cfg, logger)

	userService := usersobs.New(
		usersapp.NewService(userRepo, sessionStore),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	orchestrator, cleanupNotify := buildNotifications(cfg, instruments, logger)
	defer cleanupNotify()
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, orchestrator, ordersapp.WithLogger(logger)),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := NewRouter(serviceName, ordershttp.NewAPI(orderService), usershttp.NewAPI(userService), userService)

	addr := ":" + cfg.Port
	logger.Info("banner shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("banner shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) ordersports.Repository {
	if db == nil {
		logger.Warn("using in-memory order repository")
		return ordersmemory.NewRepository()
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db)
}

func buildUserStores(db *gorm.DB, cfg Config, logger *slog.Logger) (usersports.Repository, usersports.SessionStore) {
	if db == nil {
		logger.Warn("using in-memory user repository and session store")
		return usersmemory.NewRepository(), usersmemory.NewSessionStore()
	}
	return userspostgres.NewRepository(db), userspostgres.NewSessionStore(db, cfg.SessionTTL)
}

// buildNotifications prefers Temporal for dispatch so SMTP hiccups retry
// outside the request path, and falls back to inline best-effort delivery.
func buildNotifications(cfg Config, instruments *platformobservability.Instruments, logger *slog.Logger) (notifyports.Orchestrator, func()) {
	if !cfg.MailConfigured() {
		logger.Warn("SMTP relay not configured, order notifications disabled")
		return notifyports.NoopOrchestrator, func() {}
	}
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, dispatching notifications inline", slog.String("error", err.Error()))
	} else {
		logger.Info("Temporal notification workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		return notifyworkflows.NewTemporalOrderNotifications(temporalClient), temporalClient.Close
	}
	mailer := notifysmtp.NewMailer(notifysmtp.Config{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		From:     cfg.BusinessEmail,
		Password: cfg.EmailPassword,
		To:       cfg.BusinessEmail,
		Timeout:  cfg.NotifyTimeout,
	})
	return notifyworkflows.NewInlineOrderNotifications(notifyapp.NewService(mailer, notifyapp.WithLogger(logger))), func() {}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
