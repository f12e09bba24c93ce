//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
	"github.com/AshokAssist/OnlineBanner/internal/platform/migrations"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("banner_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_SaveAndGetByUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("alice", "secret", "alice@example.com")
	require.NoError(t, err)
	user.UpdateProfile("Alice Doe", "9876543210")

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice", saved.Username)
	assert.Equal(t, "Alice Doe", saved.Name)
	assert.NotEmpty(t, saved.ID)

	fetched, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, saved.Email, fetched.Email)
}

func TestRepository_UpdateKeepsUsernameKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user, err := domain.NewUser("alice", "secret", "alice@example.com")
	require.NoError(t, err)
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)

	saved.Admin = true
	require.NoError(t, saved.SetEmail("alice.smith@example.com"))

	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.True(t, updated.Admin)
	assert.Equal(t, "alice.smith@example.com", updated.Email)
}

func TestRepository_ListAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		username := fmt.Sprintf("user%d", i)
		user, err := domain.NewUser(username, "pw123", username+"@example.com")
		require.NoError(t, err)
		_, err = repo.Save(ctx, user)
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	err = repo.Delete(ctx, "user2")
	require.NoError(t, err)
	_, err = repo.GetByUsername(ctx, "user2")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, "user2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_LookupAndPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "alice", "token-1"))

	username, err := store.Lookup(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = store.Lookup(ctx, "unknown")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	expired := NewSessionStore(db, time.Nanosecond)
	require.NoError(t, expired.Save(ctx, "bob", "token-2"))
	time.Sleep(10 * time.Millisecond)

	_, err = store.Lookup(ctx, "token-2")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.PurgeExpired(ctx))

	var count int64
	require.NoError(t, db.Table("user_sessions").Where("token = ?", "token-2").Count(&count).Error)
	assert.Zero(t, count)

	username, err = store.Lookup(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}
