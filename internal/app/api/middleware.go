package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	ordershttp "github.com/AshokAssist/OnlineBanner/internal/domains/orders/adapters/http"
	usershttp "github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/http"
	userports "github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
	sharederrors "github.com/AshokAssist/OnlineBanner/internal/shared/errors"
)

// authenticate resolves the session token and stashes the caller identity in
// the gin context. Unauthenticated requests pass through untouched so public
// routes keep working; handlers that need identity enforce it themselves or
// sit behind requireUser/requireAdmin.
func authenticate(users userports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ordershttp.ContextUserID, user.ID)
		c.Set(ordershttp.ContextUserName, user.DisplayName())
		c.Set(ordershttp.ContextUserEmail, user.Email)
		c.Set(ordershttp.ContextIsAdmin, user.Admin)
		c.Set(usershttp.ContextUsername, user.Username)
		c.Set(usershttp.ContextSessionID, token)
		c.Next()
	}
}

// requireUser aborts with 401 when no identity was resolved.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ordershttp.ContextUserID); !ok {
			sharederrors.Respond(c, sharederrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin aborts with 403 unless the caller carries the admin flag.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(ordershttp.ContextIsAdmin)
		admin, _ := value.(bool)
		if !ok || !admin {
			sharederrors.Respond(c, sharederrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(c.GetHeader("X-Session-Token"))
}
