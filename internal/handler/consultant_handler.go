package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type consultantService interface {
	List(ctx context.Context) ([]dto.ConsultantResponse, error)
	Create(ctx context.Context, req dto.CreateConsultantRequest) (*dto.ConsultantResponse, error)
	Update(ctx context.Context, userID string, req dto.UpdateConsultantRequest) (*dto.ConsultantResponse, error)
	Delete(ctx context.Context, userID string) error
}

// ConsultantHandler manages consultant logins.
type ConsultantHandler struct {
	consultants consultantService
}

// NewConsultantHandler constructs the handler.
func NewConsultantHandler(consultants consultantService) *ConsultantHandler {
	return &ConsultantHandler{consultants: consultants}
}

// List godoc
// @Summary List consultants
// @Tags Consultants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/consultants [get]
func (h *ConsultantHandler) List(c *gin.Context) {
	consultants, err := h.consultants.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"consultants": consultants})
}

// Create godoc
// @Summary Create a consultant
// @Tags Consultants
// @Produce json
// @Security BearerAuth
// @Param user_id query string true "Login id"
// @Param name query string true "Display name"
// @Param password query string true "Initial password"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} response.ErrorBody
// @Router /admin/consultants [post]
func (h *ConsultantHandler) Create(c *gin.Context) {
	var req dto.CreateConsultantRequest
	if err := bindQueryOrJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "invalid consultant payload"))
		return
	}

	consultant, err := h.consultants.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Consultant created successfully", "consultant": consultant})
}

// Update godoc
// @Summary Update a consultant
// @Tags Consultants
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Login id"
// @Param name query string false "Display name"
// @Param password query string false "New password"
// @Param active query bool false "Whether the login is enabled"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /admin/consultants/{user_id} [put]
func (h *ConsultantHandler) Update(c *gin.Context) {
	var req dto.UpdateConsultantRequest
	if err := bindQueryOrJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "invalid consultant payload"))
		return
	}

	consultant, err := h.consultants.Update(c.Request.Context(), c.Param("user_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Consultant updated successfully", "consultant": consultant})
}

// Delete godoc
// @Summary Delete a consultant
// @Tags Consultants
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "Login id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /admin/consultants/{user_id} [delete]
func (h *ConsultantHandler) Delete(c *gin.Context) {
	if err := h.consultants.Delete(c.Request.Context(), c.Param("user_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Consultant deleted successfully"})
}
