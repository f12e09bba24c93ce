package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Material enumerates the banner substrates the shop prints on.
type Material string

const (
	MaterialVinyl  Material = "vinyl"
	MaterialFlex   Material = "flex"
	MaterialFabric Material = "fabric"
	MaterialMesh   Material = "mesh"
)

const (
	// MinDimensionCm and MaxDimensionCm bound each side of a banner.
	MinDimensionCm = 10
	MaxDimensionCm = 1000
)

var (
	ErrInvalidWidth       = errors.New("width_cm must be between 10 and 1000")
	ErrInvalidHeight      = errors.New("height_cm must be between 10 and 1000")
	ErrUnknownMaterial    = errors.New("material must be one of vinyl, flex, fabric, mesh")
	ErrInvalidStatus      = errors.New("order status is invalid")
	ErrEmptyContactNumber = errors.New("contact number is required")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrTotalMismatch      = errors.New("order total does not equal the sum of item prices")
)

// BannerConfig is one physical banner specification. It is immutable once
// created and owned exclusively by the OrderItem that references it.
type BannerConfig struct {
	ID              string
	WidthCm         int
	HeightCm        int
	Material        Material
	Grommets        bool
	Lamination      bool
	CalculatedPrice decimal.Decimal
}

// Validate enforces dimension bounds and the material enumeration. An
// unrecognized material is rejected here rather than silently priced at a
// 1.0 multiplier.
func (c BannerConfig) Validate() error {
	if c.WidthCm < MinDimensionCm || c.WidthCm > MaxDimensionCm {
		return ErrInvalidWidth
	}
	if c.HeightCm < MinDimensionCm || c.HeightCm > MaxDimensionCm {
		return ErrInvalidHeight
	}
	if !isValidMaterial(c.Material) {
		return ErrUnknownMaterial
	}
	return nil
}

// OrderItem links one BannerConfig to one Order and carries the price
// charged for that item. FileRecordID is optional: the shop can run in
// email-only delivery mode without a stored file reference.
type OrderItem struct {
	ID             string
	OrderID        string
	BannerConfigID string
	FileRecordID   *string
	Price          decimal.Decimal
	CreatedAt      time.Time
	Config         BannerConfig
}

// Order is the aggregate root. It owns its items; the three entities are
// created together inside one transaction and never partially exist.
type Order struct {
	ID            string
	UserID        string
	ContactNumber string
	Status        Status
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []OrderItem
}

// NewOrder assembles a pending order from priced items and checks the
// aggregate invariants, including that the total equals the exact decimal
// sum of the item prices.
func NewOrder(userID, contactNumber string, total decimal.Decimal, items []OrderItem) (*Order, error) {
	order := &Order{
		UserID:        userID,
		ContactNumber: contactNumber,
		Status:        StatusPending,
		TotalPrice:    total,
		Items:         items,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ContactNumber == "" {
		return ErrEmptyContactNumber
	}
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	sum := decimal.Zero
	for _, item := range o.Items {
		if err := item.Config.Validate(); err != nil {
			return err
		}
		sum = sum.Add(item.Price)
	}
	if !sum.Equal(o.TotalPrice) {
		return ErrTotalMismatch
	}
	return nil
}

// UpdateStatus ensures only known states are accepted and defaults to pending.
// No transition matrix is enforced; any of the four states may follow any other.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// Valid reports whether the status is one of the four known states.
func (s Status) Valid() bool {
	return isValidStatus(s)
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidMaterial(material Material) bool {
	switch material {
	case MaterialVinyl, MaterialFlex, MaterialFabric, MaterialMesh:
		return true
	default:
		return false
	}
}
