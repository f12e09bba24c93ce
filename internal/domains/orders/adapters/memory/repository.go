package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. The write lock
// stands in for the store's transaction: an order and its items either all
// appear or none do.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	clone.CreatedAt = now
	clone.UpdatedAt = now
	for i := range clone.Items {
		if clone.Items[i].ID == "" {
			clone.Items[i].ID = uuid.NewString()
		}
		if clone.Items[i].Config.ID == "" {
			clone.Items[i].Config.ID = uuid.NewString()
		}
		clone.Items[i].OrderID = clone.ID
		clone.Items[i].BannerConfigID = clone.Items[i].Config.ID
		clone.Items[i].CreatedAt = now
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	sortNewestFirst(list)
	return list, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	sortNewestFirst(list)
	return list, nil
}

// sortNewestFirst matches the Postgres adapter's listing order.
func sortNewestFirst(list []*domain.Order) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	order.UpdatedAt = time.Now().UTC()
	return cloneOrder(order), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
