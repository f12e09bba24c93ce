package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordershttp "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/http"
	usershttp "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/http"
	userports "github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
)

// NewRouter assembles the gin engine with all HTTP surfaces mounted.
func NewRouter(serviceName string, orders ordershttp.API, users usershttp.API, userService userports.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(authenticate(userService))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ordersGroup := router.Group("/orders")
	{
		ordersGroup.POST("/calculate-price", orders.CalculatePrice)
		ordersGroup.GET("/pricing-tiers", orders.PricingTiers)
		ordersGroup.POST("", requireUser(), orders.CreateOrder)
		ordersGroup.GET("/me", requireUser(), orders.ListMine)
		ordersGroup.GET("", requireAdmin(), orders.ListAll)
		ordersGroup.PATCH("/:id/status", requireAdmin(), orders.UpdateStatus)
	}

	usersGroup := router.Group("/users")
	{
		usersGroup.POST("", users.Register)
		usersGroup.POST("/login", users.Login)
		usersGroup.POST("/logout", requireUser(), users.Logout)
		usersGroup.GET("/:username", requireUser(), users.Get)
		usersGroup.PUT("/:username", requireUser(), users.Update)
		usersGroup.DELETE("/:username", requireUser(), users.Delete)
	}

	return router
}
