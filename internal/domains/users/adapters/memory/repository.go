package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"
	userports "github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
)

// Repository is an in-memory user store keyed by username. It backs local
// development runs when PostgreSQL is not configured.
type Repository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[clone.Username]; ok {
		clone.ID = existing.ID
	}
	stored := clone
	r.users[stored.Username] = &stored
	result := stored
	return &result, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, userports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return userports.ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

var _ userports.Repository = (*Repository)(nil)
