package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edulane/enrollment-api/internal/models"
	"github.com/edulane/enrollment-api/internal/service"
	appErrors "github.com/edulane/enrollment-api/pkg/errors"
	"github.com/edulane/enrollment-api/pkg/response"
)

// AuthHandler wires registration and login endpoints to the auth service.
// The same handler serves both account kinds; routes pin the kind.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register godoc
// @Summary Register user
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
			return
		}

		info, err := h.service.Register(c.Request.Context(), kind, req)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Created(c, info)
	}
}

// Login godoc
// @Summary Authenticate account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
			return
		}

		res, err := h.service.Login(c.Request.Context(), kind, req)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.JSON(c, http.StatusOK, res, nil)
	}
}

// Dashboard godoc
// @Summary Echo profile claims
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
func (h *AuthHandler) Dashboard(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"email":     claims.Email,
		"full_name": claims.FullName,
		"kind":      claims.Kind,
	}, nil)
}
