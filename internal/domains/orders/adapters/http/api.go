// Package http exposes the order intake surface over gin.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/http/mapper"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/application"
	ordersdomain "github.com/AshokAssist/OnlineBanner/internal/domains/orders/domain"
	ordersports "github.com/AshokAssist/OnlineBanner/internal/domains/orders/ports"
	sharederrors "github.com/AshokAssist/OnlineBanner/internal/shared/errors"
)

// Identity keys set by the auth middleware.
const (
	ContextUserID    = "auth.user_id"
	ContextUserName  = "auth.user_name"
	ContextUserEmail = "auth.user_email"
	ContextIsAdmin   = "auth.is_admin"
)

// API implements the orders HTTP surface.
type API struct {
	service   ordersports.Service
	responder *sharederrors.ChainedResponder
}

// NewAPI wires dependencies.
func NewAPI(service ordersports.Service) API {
	return API{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

// Post /orders/calculate-price
// Pure pricing, no persistence.
func (api API) CalculatePrice(c *gin.Context) {
	var payload mapper.BannerConfigPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	price, err := api.service.CalculatePrice(mapper.ToDomainConfig(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

// Post /orders
// Multipart batch: repeated `configs` JSON strings, repeated `files`, and
// `contact_number`. Requires an authenticated user.
func (api API) CreateOrder(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		api.responder.Respond(c, sharederrors.ErrUnauthorized)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		api.responder.BadRequest(c, "expected multipart form data")
		return
	}

	configs, err := parseConfigs(form.Value["configs"])
	if err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	files, err := bufferFiles(form.File["files"])
	if err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	contactNumber := firstValue(form.Value["contact_number"])

	order, err := api.service.CreateOrder(c.Request.Context(), customer, contactNumber, configs, files)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	// Creation response carries no item detail; the design files were
	// delivered through the notification channel.
	c.JSON(http.StatusCreated, mapper.FromDomainOrder(order, false))
}

// Get /orders/me
func (api API) ListMine(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		api.responder.Respond(c, sharederrors.ErrUnauthorized)
		return
	}
	orders, err := api.service.ListUserOrders(c.Request.Context(), customer.ID)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrders(orders))
}

// Get /orders
// Admin listing with full item detail.
func (api API) ListAll(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrders(orders))
}

// Patch /orders/:id/status
// The only post-creation mutation; admin only.
func (api API) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.UpdateStatus(c.Request.Context(), c.Param("id"), ordersdomain.Status(payload.Status))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainOrder(order, true))
}

// Get /orders/pricing-tiers
// Static rate sheet for the storefront.
func (api API) PricingTiers(c *gin.Context) {
	tiers := make([]gin.H, 0, 4)
	for _, tier := range ordersdomain.Tiers() {
		entry := gin.H{"name": tier.Name, "price_per_sqm": tier.RatePerSqm}
		if tier.MaxAreaSqm != "" {
			entry["max_area_sqm"] = tier.MaxAreaSqm
		}
		tiers = append(tiers, entry)
	}
	materials := gin.H{}
	for material, multiplier := range ordersdomain.MaterialMultipliers() {
		materials[string(material)] = gin.H{"multiplier": multiplier}
	}
	grommets, lamination := ordersdomain.AddonCharges()
	c.JSON(http.StatusOK, gin.H{
		"currency":  "INR",
		"tiers":     tiers,
		"materials": materials,
		"addons": gin.H{
			"grommets":   gin.H{"price": grommets},
			"lamination": gin.H{"price": lamination},
		},
		"minimum_order": ordersdomain.MinimumOrderPrice,
	})
}

func currentCustomer(c *gin.Context) (ordersports.Customer, bool) {
	id, ok := c.Get(ContextUserID)
	userID, isString := id.(string)
	if !ok || !isString || userID == "" {
		return ordersports.Customer{}, false
	}
	customer := ordersports.Customer{ID: userID}
	if name, ok := c.Get(ContextUserName); ok {
		customer.Name, _ = name.(string)
	}
	if email, ok := c.Get(ContextUserEmail); ok {
		customer.Email, _ = email.(string)
	}
	return customer, true
}

func parseConfigs(raw []string) ([]ordersdomain.BannerConfig, error) {
	configs := make([]ordersdomain.BannerConfig, 0, len(raw))
	for _, entry := range raw {
		var payload mapper.BannerConfigPayload
		if err := json.Unmarshal([]byte(entry), &payload); err != nil {
			return nil, errors.New("configs must be JSON objects")
		}
		configs = append(configs, mapper.ToDomainConfig(payload))
	}
	return configs, nil
}

// bufferFiles reads each upload fully into memory so the bytes can be used
// for the notification attachment after order assembly consumed them.
func bufferFiles(headers []*multipart.FileHeader) ([]ordersdomain.Upload, error) {
	uploads := make([]ordersdomain.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, errors.New("failed to read uploaded file " + header.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, errors.New("failed to read uploaded file " + header.Filename)
		}
		uploads = append(uploads, ordersdomain.NewBufferedUpload(header.Filename, header.Header.Get("Content-Type"), data))
	}
	return uploads, nil
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
