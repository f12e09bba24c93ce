package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	ordersdomain "github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
)

// BannerConfigPayload is the transport shape for one banner configuration.
// Both snake_case and camelCase dimension keys are accepted, matching what
// the storefront sends.
type BannerConfigPayload struct {
	WidthCm       *int   `json:"width_cm"`
	WidthCmCamel  *int   `json:"widthCm"`
	HeightCm      *int   `json:"height_cm"`
	HeightCmCamel *int   `json:"heightCm"`
	Material      string `json:"material"`
	Grommets      bool   `json:"grommets"`
	Lamination    bool   `json:"lamination"`
}

// ToDomainConfig resolves the dimension aliases and builds the domain
// configuration. Bounds and material membership are checked by the domain.
func ToDomainConfig(payload BannerConfigPayload) ordersdomain.BannerConfig {
	cfg := ordersdomain.BannerConfig{
		Material:   ordersdomain.Material(payload.Material),
		Grommets:   payload.Grommets,
		Lamination: payload.Lamination,
	}
	if payload.WidthCm != nil {
		cfg.WidthCm = *payload.WidthCm
	} else if payload.WidthCmCamel != nil {
		cfg.WidthCm = *payload.WidthCmCamel
	}
	if payload.HeightCm != nil {
		cfg.HeightCm = *payload.HeightCm
	} else if payload.HeightCmCamel != nil {
		cfg.HeightCm = *payload.HeightCmCamel
	}
	return cfg
}

// BannerConfigResponse is the outward representation of a stored config.
type BannerConfigResponse struct {
	ID              string          `json:"id"`
	WidthCm         int             `json:"width_cm"`
	HeightCm        int             `json:"height_cm"`
	Material        string          `json:"material"`
	Grommets        bool            `json:"grommets"`
	Lamination      bool            `json:"lamination"`
	CalculatedPrice decimal.Decimal `json:"calculated_price"`
}

type OrderItemResponse struct {
	ID           string               `json:"id"`
	Price        decimal.Decimal      `json:"price"`
	BannerConfig BannerConfigResponse `json:"banner_config"`
	FileRecordID *string              `json:"file_record_id,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	Status        string              `json:"status"`
	ContactNumber string              `json:"contact_number"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Items         []OrderItemResponse `json:"items"`
}

// FromDomainOrder converts a domain order for transport. withItems=false
// yields the creation response shape: files are not re-exposed, so the
// item list stays empty.
func FromDomainOrder(order *ordersdomain.Order, withItems bool) OrderResponse {
	if order == nil {
		return OrderResponse{}
	}
	resp := OrderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		ContactNumber: order.ContactNumber,
		TotalPrice:    order.TotalPrice,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Items:         []OrderItemResponse{},
	}
	if !withItems {
		return resp
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           item.ID,
			Price:        item.Price,
			FileRecordID: item.FileRecordID,
			CreatedAt:    item.CreatedAt,
			BannerConfig: BannerConfigResponse{
				ID:              item.Config.ID,
				WidthCm:         item.Config.WidthCm,
				HeightCm:        item.Config.HeightCm,
				Material:        string(item.Config.Material),
				Grommets:        item.Config.Grommets,
				Lamination:      item.Config.Lamination,
				CalculatedPrice: item.Config.CalculatedPrice,
			},
		})
	}
	return resp
}

// FromDomainOrders converts a list with full item detail.
func FromDomainOrders(orders []*ordersdomain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order, true))
	}
	return result
}
