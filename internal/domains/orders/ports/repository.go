package ports

import (
	"context"
	"errors"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists the order aggregate. CreateOrder and Delete span the
// banner_configs, order_items, and orders tables atomically: all rows for
// one order, or none.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
