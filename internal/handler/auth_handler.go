package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type authService interface {
	AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*models.Session, error)
	ConsultantLogin(ctx context.Context, req dto.ConsultantLoginRequest) (*models.Session, error)
	Logout(ctx context.Context, claims *models.JWTClaims) error
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// AdminLogin godoc
// @Summary Administrator login
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body dto.AdminLoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid login payload"))
		return
	}

	session, err := h.service.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"role":       session.Role,
	})
}

// ConsultantLogin godoc
// @Summary Consultant login
// @Description Credentials are sent as query parameters.
// @Tags Authentication
// @Produce json
// @Param user_id query string true "Consultant user id"
// @Param password query string true "Password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /consultant/login [post]
func (h *AuthHandler) ConsultantLogin(c *gin.Context) {
	var req dto.ConsultantLoginRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid login parameters"))
		return
	}

	session, err := h.service.ConsultantLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"consultant_id":   session.SubjectID,
		"consultant_name": session.Name,
		"token":           session.Token,
		"expires_at":      session.ExpiresAt,
	})
}

// Logout godoc
// @Summary Revoke the presented token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "logged out"})
}
