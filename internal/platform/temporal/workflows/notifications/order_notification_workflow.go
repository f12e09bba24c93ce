package notifications

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	notifydomain "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	notifyactivities "github.com/AshokAssist/OnlineBanner/internal/platform/temporal/activities/notifications"
)

const (
	// OrderNotificationWorkflowName is the public identifier for registering the workflow.
	OrderNotificationWorkflowName = "notifications.workflows.OrderNotification"
	// OrderNotificationTaskQueue is the queue consumed by the notification worker.
	OrderNotificationTaskQueue = "ORDER_NOTIFICATIONS"
)

// OrderNotificationWorkflowInput carries the committed order summary and
// its buffered attachments.
type OrderNotificationWorkflowInput struct {
	Notification notifydomain.OrderNotification
	TraceID      string
}

// OrderNotificationWorkflow retries the summary email a bounded number of
// times. Exhausting the retries completes the workflow with an error; the
// order itself is unaffected either way.
func OrderNotificationWorkflow(ctx workflow.Context, input OrderNotificationWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	orderID := input.Notification.Summary.OrderID
	logger.Info("OrderNotificationWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    5,
		},
	})
	if err := workflow.ExecuteActivity(ctx, notifyactivities.SendOrderEmailActivityName, input.Notification).Get(ctx, nil); err != nil {
		logger.Error("OrderNotificationWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return err
	}
	logger.Info("OrderNotificationWorkflow completed", withTraceID(input.TraceID, "orderId", orderID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
