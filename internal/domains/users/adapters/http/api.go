// Package http exposes customer account management over gin.
package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AshokAssist/OnlineBanner/internal/domains/users/adapters/http/mapper"
	"github.com/AshokAssist/OnlineBanner/internal/domains/users/application"
	userdomain "github.com/AshokAssist/OnlineBanner/internal/domains/users/domain"
	userports "github.com/AshokAssist/OnlineBanner/internal/domains/users/ports"
	sharederrors "github.com/AshokAssist/OnlineBanner/internal/shared/errors"
)

// Identity keys set by the auth middleware.
const (
	ContextUserID    = "auth.user_id"
	ContextUsername  = "auth.username"
	ContextIsAdmin   = "auth.is_admin"
	ContextSessionID = "auth.session_token"
)

// API implements the users HTTP surface.
type API struct {
	service   userports.Service
	responder *sharederrors.ChainedResponder
}

// NewAPI wires dependencies.
func NewAPI(service userports.Service) API {
	return API{
		service:   service,
		responder: sharederrors.NewChainedResponder("", mapUserError),
	}
}

func mapUserError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrAuthentication):
		return sharederrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

// Post /users
func (api API) Register(c *gin.Context) {
	var payload mapper.UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	user, err := mapper.ToDomainUser(payload)
	if err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	created, err := api.service.Register(c.Request.Context(), user)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromDomainUser(created))
}

// Post /users/login
func (api API) Login(c *gin.Context) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	token, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Post /users/logout
// Invalidates the caller's session.
func (api API) Logout(c *gin.Context) {
	username := currentUsername(c)
	if username == "" {
		api.responder.Respond(c, sharederrors.ErrUnauthorized)
		return
	}
	api.service.Logout(c.Request.Context(), username)
	c.Status(http.StatusNoContent)
}

// Get /users/:username
// Visible to the account owner and admins.
func (api API) Get(c *gin.Context) {
	username := c.Param("username")
	if !canAccess(c, username) {
		api.responder.Respond(c, sharederrors.ErrForbidden)
		return
	}
	user, err := api.service.GetByUsername(c.Request.Context(), username)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUser(user))
}

// Put /users/:username
func (api API) Update(c *gin.Context) {
	username := c.Param("username")
	if !canAccess(c, username) {
		api.responder.Respond(c, sharederrors.ErrForbidden)
		return
	}
	var payload mapper.UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	updated := &userdomain.User{
		Username: username,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Phone:    payload.Phone,
	}
	user, err := api.service.Update(c.Request.Context(), username, updated)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromDomainUser(user))
}

// Delete /users/:username
func (api API) Delete(c *gin.Context) {
	username := c.Param("username")
	if !canAccess(c, username) {
		api.responder.Respond(c, sharederrors.ErrForbidden)
		return
	}
	if err := api.service.Delete(c.Request.Context(), username); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func currentUsername(c *gin.Context) string {
	value, ok := c.Get(ContextUsername)
	if !ok {
		return ""
	}
	username, _ := value.(string)
	return username
}

func isAdmin(c *gin.Context) bool {
	value, ok := c.Get(ContextIsAdmin)
	if !ok {
		return false
	}
	admin, _ := value.(bool)
	return admin
}

func canAccess(c *gin.Context, username string) bool {
	current := currentUsername(c)
	if current == "" {
		return false
	}
	return isAdmin(c) || strings.EqualFold(current, username)
}
