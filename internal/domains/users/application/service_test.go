package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := *user
	f.users[user.Username] = &copy
	return &copy, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var list []*domain.User
	for _, u := range f.users {
		copy := *u
		list = append(list, &copy)
	}
	return list, nil
}

type fakeSessionStore struct {
	byUser  map[string]string
	byToken map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byUser: map[string]string{}, byToken: map[string]string{}}
}

func (f *fakeSessionStore) Save(_ context.Context, username, token string) error {
	f.byUser[username] = token
	f.byToken[token] = username
	return nil
}

func (f *fakeSessionStore) Lookup(_ context.Context, token string) (string, error) {
	if username, ok := f.byToken[token]; ok {
		return username, nil
	}
	return "", ports.ErrSessionNotFound
}

func (f *fakeSessionStore) Delete(_ context.Context, username string) error {
	delete(f.byToken, f.byUser[username])
	delete(f.byUser, username)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser("alice", "secret", "alice@example.com")
	require.NoError(t, err)
	created, err := svc.Register(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, "alice", created.Username)
	require.NotEmpty(t, created.ID)

	token, err := svc.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessions.byUser["alice"])
}

func TestRegister_RejectsMissingEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), newFakeSessionStore())

	_, err := svc.Register(context.Background(), &domain.User{Username: "bob", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeSessionStore())

	_, err := svc.Login(context.Background(), "missing", "secret")
	require.ErrorIs(t, err, ErrAuthentication)

	user, err := domain.NewUser("carol", "secret", "carol@example.com")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "carol", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestAuthenticate_ResolvesTokenToUser(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser("dave", "secret", "dave@example.com")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "dave", "secret")
	require.NoError(t, err)

	resolved, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "dave", resolved.Username)
	require.Equal(t, "dave@example.com", resolved.Email)

	_, err = svc.Authenticate(context.Background(), "unknown-token")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogout_InvalidatesToken(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser("erin", "secret", "erin@example.com")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "erin", "secret")
	require.NoError(t, err)

	svc.Logout(context.Background(), "erin")

	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUpdate_PreservesIdentityAndAdminFlag(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeSessionStore())

	user, err := domain.NewUser("frank", "secret", "frank@example.com")
	require.NoError(t, err)
	user.Admin = true
	created, err := svc.Register(context.Background(), user)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "frank", &domain.User{
		Password: "newpass",
		Email:    "frank@shop.example.com",
		Name:     "Frank F",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.True(t, updated.Admin)
	require.Equal(t, "frank@shop.example.com", updated.Email)
}
