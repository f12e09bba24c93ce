package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/memory"
	"github.com/AshokAssist/OnlineBanner/internal/domains/orders/application"
)

func newTestRouter(authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	api := NewAPI(application.NewService(memory.NewRepository(), nil))

	router := gin.New()
	if authed {
		router.Use(func(c *gin.Context) {
			c.Set(ContextUserID, "user-1")
			c.Set(ContextUserName, "Asha")
			c.Set(ContextUserEmail, "asha@example.com")
			c.Next()
		})
	}
	router.POST("/orders/calculate-price", api.CalculatePrice)
	router.POST("/orders", api.CreateOrder)
	router.GET("/orders/me", api.ListMine)
	router.PATCH("/orders/:id/status", api.UpdateStatus)
	router.GET("/orders/pricing-tiers", api.PricingTiers)
	return router
}

func TestCalculatePrice_ReturnsQuote(t *testing.T) {
	router := newTestRouter(false)

	body := `{"width_cm":100,"height_cm":50,"material":"vinyl","grommets":true}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/calculate-price", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Price string `json:"price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "600", payload.Price)
}

func TestCalculatePrice_RejectsBadDimensions(t *testing.T) {
	router := newTestRouter(false)

	body := `{"width_cm":0,"height_cm":50,"material":"vinyl"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/calculate-price", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "/problems/validation-error")
}

func buildOrderForm(t *testing.T, configs []string, files []string, contact string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, cfg := range configs {
		require.NoError(t, writer.WriteField("configs", cfg))
	}
	for _, content := range files {
		part, err := writer.CreateFormFile("files", "design.png")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if contact != "" {
		require.NoError(t, writer.WriteField("contact_number", contact))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateOrder_PersistsBatch(t *testing.T) {
	router := newTestRouter(true)

	configs := []string{
		`{"width_cm":100,"height_cm":50,"material":"vinyl","grommets":true}`,
		`{"width_cm":200,"height_cm":100,"material":"vinyl"}`,
	}
	body, contentType := buildOrderForm(t, configs, []string{"png-a", "png-b"}, "9876543210")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var payload struct {
		ID         string            `json:"id"`
		Status     string            `json:"status"`
		TotalPrice string            `json:"total_price"`
		Items      []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.ID)
	require.Equal(t, "pending", payload.Status)
	require.Equal(t, "1800", payload.TotalPrice)
	require.Empty(t, payload.Items)
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	router := newTestRouter(false)

	body, contentType := buildOrderForm(t, []string{`{"width_cm":100,"height_cm":50,"material":"vinyl"}`}, []string{"png"}, "9876543210")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_RejectsFileMismatch(t *testing.T) {
	router := newTestRouter(true)

	configs := []string{
		`{"width_cm":100,"height_cm":50,"material":"vinyl"}`,
		`{"width_cm":200,"height_cm":100,"material":"vinyl"}`,
	}
	body, contentType := buildOrderForm(t, configs, []string{"only-one"}, "9876543210")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "/problems/validation-error")
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	router := newTestRouter(true)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/missing/status", strings.NewReader(`{"status":"processing"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPricingTiers_PublishesRateSheet(t *testing.T) {
	router := newTestRouter(false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/pricing-tiers", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"currency":"INR"`)
	require.Contains(t, rec.Body.String(), "grommets")
}
