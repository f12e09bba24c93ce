package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&bannerConfigRecord{},
		&orderItemRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Banner config schema mirrors the orders Postgres adapter.
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

// Order item schema mirrors the orders Postgres adapter.
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

// Order header schema mirrors the orders Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Password  string    `gorm:"column:password"`
	Phone     string    `gorm:"column:phone"`
	Admin     bool      `gorm:"column:is_admin"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
