package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"

	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/application"
	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
	notifyworkflows "github.com/AshokAssist/OnlineBanner/internal/platform/temporal/workflows/notifications"
)

var (
	_ ports.Orchestrator = (*TemporalOrderNotifications)(nil)
	_ ports.Orchestrator = (*InlineOrderNotifications)(nil)
)

// TemporalOrderNotifications hands dispatch to a Temporal worker so relay
// outages are retried durably instead of inside the request goroutine.
type TemporalOrderNotifications struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderNotifications wires a Temporal client into the orchestrator.
func NewTemporalOrderNotifications(c client.Client) *TemporalOrderNotifications {
	return &TemporalOrderNotifications{client: c, taskQueue: notifyworkflows.OrderNotificationTaskQueue}
}

// OrderCreated starts the notification workflow and returns without waiting
// for delivery. The order is already committed; the workflow owns retries.
func (o *TemporalOrderNotifications) OrderCreated(ctx context.Context, notification domain.OrderNotification) error {
	if o == nil || o.client == nil {
		return errors.New("temporal order notifications not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        buildWorkflowID(notification, workflowTraceComponent(ctx)),
		TaskQueue: o.taskQueue,
	}
	_, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		notifyworkflows.OrderNotificationWorkflow,
		notifyworkflows.OrderNotificationWorkflowInput{
			Notification: notification,
			TraceID:      workflowTraceComponent(ctx),
		},
	)
	return err
}

// InlineOrderNotifications dispatches synchronously without Temporal,
// useful for tests or dev fallbacks.
type InlineOrderNotifications struct {
	service *application.Service
}

// NewInlineOrderNotifications wraps the notification service for
// synchronous execution.
func NewInlineOrderNotifications(service *application.Service) *InlineOrderNotifications {
	return &InlineOrderNotifications{service: service}
}

// OrderCreated runs the dispatch in the calling goroutine. The service
// records the outcome; a failed send is not an error for the order path.
func (o *InlineOrderNotifications) OrderCreated(ctx context.Context, notification domain.OrderNotification) error {
	if o == nil || o.service == nil {
		return errors.New("inline order notifications not configured")
	}
	o.service.Notify(ctx, notification)
	return nil
}

func buildWorkflowID(notification domain.OrderNotification, traceComponent string) string {
	orderID := notification.Summary.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("unkeyed-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("order-notification-%s-%s", orderID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span != nil {
		spanCtx := span.SpanContext()
		if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
			return spanCtx.TraceID().String()
		}
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
