package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
)

// Customer identifies the authenticated user placing an order. Name and
// email travel with the order only as far as the notification channel.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// Service exposes order use cases to adapters.
type Service interface {
	// CalculatePrice prices one configuration without persisting anything.
	CalculatePrice(config domain.BannerConfig) (decimal.Decimal, error)
	// CreateOrder validates the batch, prices each item, and persists the
	// aggregate atomically. Configs and files are matched by position and
	// must have equal length. Notification dispatch happens after commit
	// and never affects the returned result.
	CreateOrder(ctx context.Context, customer Customer, contactNumber string, configs []domain.BannerConfig, files []domain.Upload) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}
