package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	notifysmtp "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/adapters/smtp"
	platformobservability "github.com/AshokAssist/OnlineBanner/internal/platform/observability"
	notifyactivities "github.com/AshokAssist/OnlineBanner/internal/platform/temporal/activities/notifications"
	notifyworkflows "github.com/AshokAssist/OnlineBanner/internal/platform/temporal/workflows/notifications"
)

func main() {
	ctx := context.Background()
	const serviceName = "onlinebanner-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	mailer := notifysmtp.NewMailer(mailConfigFromEnv())
	activities := notifyactivities.NewActivities(mailer)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, notifyworkflows.OrderNotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(notifyworkflows.OrderNotificationWorkflow, workflow.RegisterOptions{Name: notifyworkflows.OrderNotificationWorkflowName})
	w.RegisterActivityWithOptions(activities.SendOrderEmail, activity.RegisterOptions{Name: notifyactivities.SendOrderEmailActivityName})

	logger.Info("worker listening", slog.String("taskQueue", notifyworkflows.OrderNotificationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func mailConfigFromEnv() notifysmtp.Config {
	cfg := notifysmtp.Config{
		Host:     strings.TrimSpace(os.Getenv("SMTP_SERVER")),
		Port:     587,
		From:     strings.TrimSpace(os.Getenv("BUSINESS_EMAIL")),
		Password: os.Getenv("EMAIL_PASSWORD"),
		To:       strings.TrimSpace(os.Getenv("BUSINESS_EMAIL")),
		Timeout:  notifysmtp.DefaultSendTimeout,
	}
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if raw := strings.TrimSpace(os.Getenv("NOTIFY_TIMEOUT_SECONDS")); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}
	return cfg
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
