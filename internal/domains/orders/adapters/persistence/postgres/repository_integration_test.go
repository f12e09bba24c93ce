//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
	"github.com/AshokAssist/OnlineBanner/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("onlinebanner_test"),
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

func pricedOrder(t *testing.T) *domain.Order {
	t.Helper()
	configs := []domain.BannerConfig{
		{WidthCm: 100, HeightCm: 50, Material: domain.MaterialVinyl},
		{WidthCm: 200, HeightCm: 100, Material: domain.MaterialFabric},
	}
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(configs))
	for _, cfg := range configs {
		price, err := domain.Price(cfg)
		require.NoError(t, err)
		cfg.CalculatedPrice = price
		items = append(items, domain.OrderItem{Config: cfg, Price: price})
		total = total.Add(price)
	}
	order, err := domain.NewOrder("user-integration", "+91-9876543210", total, items)
	require.NoError(t, err)
	return order
}

func TestRepository_CreateOrderPersistsAllRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved, err := repo.CreateOrder(context.Background(), pricedOrder(t))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Len(t, saved.Items, 2)
	require.Equal(t, domain.StatusPending, saved.Status)

	sum := saved.Items[0].Price.Add(saved.Items[1].Price)
	require.True(t, saved.TotalPrice.Equal(sum), "total %s != item sum %s", saved.TotalPrice, sum)

	var configCount, itemCount, orderCount int64
	require.NoError(t, db.Model(&bannerConfigRecord{}).Count(&configCount).Error)
	require.NoError(t, db.Model(&orderItemRecord{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&orderRecord{}).Count(&orderCount).Error)
	require.EqualValues(t, 2, configCount)
	require.EqualValues(t, 2, itemCount)
	require.EqualValues(t, 1, orderCount)
}

func TestRepository_GetByIDLoadsItemsAndConfigs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved, err := repo.CreateOrder(context.Background(), pricedOrder(t))
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	materials := []domain.Material{loaded.Items[0].Config.Material, loaded.Items[1].Config.Material}
	require.ElementsMatch(t, []domain.Material{domain.MaterialVinyl, domain.MaterialFabric}, materials)
	require.True(t, loaded.TotalPrice.Equal(saved.TotalPrice))

	_, err = repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ItemsReloadInSubmissionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	// Widths encode the submission order. All rows share one created_at, so
	// only the position column can keep the sequence stable.
	widths := []int{100, 150, 200, 250, 300}
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(widths))
	for _, w := range widths {
		cfg := domain.BannerConfig{WidthCm: w, HeightCm: 50, Material: domain.MaterialVinyl}
		price, err := domain.Price(cfg)
		require.NoError(t, err)
		cfg.CalculatedPrice = price
		items = append(items, domain.OrderItem{Config: cfg, Price: price})
		total = total.Add(price)
	}
	order, err := domain.NewOrder("user-integration", "+91-9876543210", total, items)
	require.NoError(t, err)

	repo := NewRepository(db)
	saved, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, len(widths))
	for i, item := range loaded.Items {
		require.Equal(t, widths[i], item.Config.WidthCm, "item %d out of order", i)
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved, err := repo.CreateOrder(context.Background(), pricedOrder(t))
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(context.Background(), saved.ID, domain.StatusProcessing)
	require.NoError(t, err)
	require.Equal(t, domain.StatusProcessing, updated.Status)

	_, err = repo.UpdateStatus(context.Background(), "missing-id", domain.StatusCancelled)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_DeleteRemovesAllThreeTables(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved, err := repo.CreateOrder(context.Background(), pricedOrder(t))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), saved.ID))

	var configCount, itemCount, orderCount int64
	require.NoError(t, db.Model(&bannerConfigRecord{}).Count(&configCount).Error)
	require.NoError(t, db.Model(&orderItemRecord{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&orderRecord{}).Count(&orderCount).Error)
	require.Zero(t, configCount)
	require.Zero(t, itemCount)
	require.Zero(t, orderCount)

	require.ErrorIs(t, repo.Delete(context.Background(), saved.ID), ports.ErrNotFound)
}
