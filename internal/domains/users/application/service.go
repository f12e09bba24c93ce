package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
}

func NewService(repo ports.Repository, sessions ports.SessionStore) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions}
}

func (s *Service) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return s.repo.Save(ctx, user)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) Delete(ctx context.Context, username string) error {
	_ = s.sessions.Delete(ctx, username)
	return s.repo.Delete(ctx, username)
}

func (s *Service) Update(ctx context.Context, username string, updated *domain.User) (*domain.User, error) {
	if updated == nil {
		return nil, errors.New("user is nil")
	}
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Admin = existing.Admin
	if err := updated.SetUsername(username); err != nil {
		return nil, mapError(err)
	}
	if err := updated.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, updated)
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", mapError(ports.ErrInvalidCredentials)
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", mapError(ports.ErrInvalidCredentials)
	}
	token := uuid.NewString()
	if err := s.sessions.Save(ctx, username, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) Logout(ctx context.Context, username string) {
	if strings.TrimSpace(username) == "" {
		return
	}
	_ = s.sessions.Delete(ctx, username)
}

// Authenticate resolves a session token to the account it belongs to.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, mapError(ports.ErrSessionNotFound)
	}
	username, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrSessionNotFound)
		}
		return nil, err
	}
	return user, nil
}

var _ ports.Service = (*Service)(nil)
