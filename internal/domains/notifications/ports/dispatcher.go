package ports

import (
	"context"

	"github.com/AshokAssist/OnlineBanner/internal/domains/notifications/domain"
)

// Dispatcher sends one order notification to the business mailbox. It is
// invoked strictly after the order transaction commits; a returned error
// is recorded by the caller and never undoes the commit.
type Dispatcher interface {
	Dispatch(ctx context.Context, notification domain.OrderNotification) error
}

// Orchestrator decides how dispatch runs: inline in the request goroutine
// or durably on a Temporal worker.
type Orchestrator interface {
	OrderCreated(ctx context.Context, notification domain.OrderNotification) error
}

// NoopOrchestrator is a safe default when notification delivery is not
// configured (for example in tests or email-less dev setups).
var NoopOrchestrator Orchestrator = noopOrchestrator{}

type noopOrchestrator struct{}

func (noopOrchestrator) OrderCreated(_ context.Context, _ domain.OrderNotification) error {
	return nil
}
