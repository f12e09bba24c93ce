package notifications

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	notifydomain "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
	notifyports "github.com/AshokAssist/OnlineBanner/internal/domains/notifications/ports"
)

// SendOrderEmailActivityName delivers one order summary to the business mailbox.
const SendOrderEmailActivityName = "notifications.activities.SendOrderEmail"

// Activities groups activities that operate on the notifications bounded context.
type Activities struct {
	dispatcher notifyports.Dispatcher
}

// NewActivities wires the mail dispatcher into the Temporal activities bundle.
func NewActivities(dispatcher notifyports.Dispatcher) *Activities {
	return &Activities{dispatcher: dispatcher}
}

// SendOrderEmail sends the summary message. Errors propagate so the
// workflow retry policy can take another attempt at the relay.
func (a *Activities) SendOrderEmail(ctx context.Context, notification notifydomain.OrderNotification) error {
	logger := activity.GetLogger(ctx)
	orderID := notification.Summary.OrderID
	if a == nil || a.dispatcher == nil {
		logger.Error("notification activity not initialized", "orderId", orderID)
		return errors.New("notification activity not initialized")
	}
	logger.Info("SendOrderEmail activity started", "orderId", orderID, "attachments", len(notification.Attachments))
	if err := a.dispatcher.Dispatch(ctx, notification); err != nil {
		logger.Error("SendOrderEmail activity failed", "orderId", orderID, "error", err)
		return err
	}
	logger.Info("SendOrderEmail activity completed", "orderId", orderID)
	return nil
}
