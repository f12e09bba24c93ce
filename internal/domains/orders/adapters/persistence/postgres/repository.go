package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the order aggregate in PostgreSQL using GORM. The
// three tables are written with explicit statements inside one transaction;
// there is no ORM-managed cascade.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&bannerConfigRecord{}, &orderItemRecord{}, &orderRecord{})
	}
	return repo
}

type bannerConfigRecord struct {
	ID              string          `gorm:"primaryKey;column:id"`
	WidthCm         int             `gorm:"column:width_cm"`
	HeightCm        int             `gorm:"column:height_cm"`
	Material        string          `gorm:"column:material;type:varchar(32)"`
	Grommets        bool            `gorm:"column:grommets"`
	Lamination      bool            `gorm:"column:lamination"`
	CalculatedPrice decimal.Decimal `gorm:"column:calculated_price;type:numeric(10,2)"`
}

func (bannerConfigRecord) TableName() string { return "banner_configs" }

type orderItemRecord struct {
	ID             string          `gorm:"primaryKey;column:id"`
	OrderID        string          `gorm:"column:order_id;index"`
	Position       int             `gorm:"column:position"`
	BannerConfigID string          `gorm:"column:banner_config_id"`
	FileRecordID   *string         `gorm:"column:file_record_id"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type orderRecord struct {
	ID            string          `gorm:"primaryKey;column:id"`
	UserID        string          `gorm:"column:user_id;index"`
	ContactNumber string          `gorm:"column:contact_number"`
	Status        string          `gorm:"column:status;type:varchar(32);index"`
	TotalPrice    decimal.Decimal `gorm:"column:total_price;type:numeric(10,2)"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// CreateOrder writes banner configs, then items, then the order header, all
// inside one transaction. Any failure rolls the whole batch back.
func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderID := order.ID
	if orderID == "" {
		orderID = uuid.NewString()
	}

	configs := make([]bannerConfigRecord, 0, len(order.Items))
	items := make([]orderItemRecord, 0, len(order.Items))
	for i, item := range order.Items {
		configID := item.Config.ID
		if configID == "" {
			configID = uuid.NewString()
		}
		itemID := item.ID
		if itemID == "" {
			itemID = uuid.NewString()
		}
		configs = append(configs, bannerConfigRecord{
			ID:              configID,
			WidthCm:         item.Config.WidthCm,
			HeightCm:        item.Config.HeightCm,
			Material:        string(item.Config.Material),
			Grommets:        item.Config.Grommets,
			Lamination:      item.Config.Lamination,
			CalculatedPrice: item.Config.CalculatedPrice,
		})
		items = append(items, orderItemRecord{
			ID:             itemID,
			OrderID:        orderID,
			Position:       i,
			BannerConfigID: configID,
			FileRecordID:   item.FileRecordID,
			Price:          item.Price,
			CreatedAt:      now,
		})
	}
	header := orderRecord{
		ID:            orderID,
		UserID:        order.UserID,
		ContactNumber: order.ContactNumber,
		Status:        string(order.Status),
		TotalPrice:    order.TotalPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&configs).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Create(&header).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// GetByID fetches an order with its items and their banner configs.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	itemsByOrder, err := r.loadItems(ctx, []string{record.ID})
	if err != nil {
		return nil, err
	}
	return record.toDomain(itemsByOrder[record.ID]), nil
}

// ListByUser returns a user's orders, newest first, with items loaded.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.assemble(ctx, records)
}

// List returns all orders, newest first, with items loaded.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.assemble(ctx, records)
}

// UpdateStatus is the only post-creation mutation on an order.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the order, its items, and their banner configs in one
// transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []orderItemRecord
		if err := tx.Where("order_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		configIDs := make([]string, 0, len(items))
		for _, item := range items {
			configIDs = append(configIDs, item.BannerConfigID)
		}
		if err := tx.Where("order_id = ?", id).Delete(&orderItemRecord{}).Error; err != nil {
			return err
		}
		if len(configIDs) > 0 {
			if err := tx.Where("id IN ?", configIDs).Delete(&bannerConfigRecord{}).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&orderRecord{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) assemble(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(itemsByOrder[records[i].ID]))
	}
	return orders, nil
}

// loadItems batch-loads items and their configs for the given orders. Items
// come back in submission order; creation timestamps are shared across a
// batch so they cannot serve as a sort key.
func (r *Repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	result := make(map[string][]domain.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}
	var items []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	configIDs := make([]string, 0, len(items))
	for _, item := range items {
		configIDs = append(configIDs, item.BannerConfigID)
	}
	configs := make(map[string]bannerConfigRecord, len(configIDs))
	if len(configIDs) > 0 {
		var records []bannerConfigRecord
		if err := r.db.WithContext(ctx).Where("id IN ?", configIDs).Find(&records).Error; err != nil {
			return nil, err
		}
		for _, rec := range records {
			configs[rec.ID] = rec
		}
	}
	for _, item := range items {
		result[item.OrderID] = append(result[item.OrderID], item.toDomain(configs[item.BannerConfigID]))
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain(items []domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		UserID:        r.UserID,
		ContactNumber: r.ContactNumber,
		Status:        domain.Status(r.Status),
		TotalPrice:    r.TotalPrice,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Items:         items,
	}
}

func (r orderItemRecord) toDomain(config bannerConfigRecord) domain.OrderItem {
	return domain.OrderItem{
		ID:             r.ID,
		OrderID:        r.OrderID,
		BannerConfigID: r.BannerConfigID,
		FileRecordID:   r.FileRecordID,
		Price:          r.Price,
		CreatedAt:      r.CreatedAt,
		Config: domain.BannerConfig{
			ID:              config.ID,
			WidthCm:         config.WidthCm,
			HeightCm:        config.HeightCm,
			Material:        domain.Material(config.Material),
			Grommets:        config.Grommets,
			Lamination:      config.Lamination,
			CalculatedPrice: config.CalculatedPrice,
		},
	}
}
