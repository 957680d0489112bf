package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type bulkDeleter interface {
	BulkDelete(ctx context.Context, req dto.BulkDeleteRequest) (*models.BulkDeleteResult, error)
}

type adminPasswordVerifier interface {
	VerifyAdminPassword(password string) error
}

// MaintenanceHandler exposes destructive admin tools.
type MaintenanceHandler struct {
	maintenance bulkDeleter
	auth        adminPasswordVerifier
}

// NewMaintenanceHandler constructs the handler.
func NewMaintenanceHandler(maintenance bulkDeleter, auth adminPasswordVerifier) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, auth: auth}
}

// VerifyPassword godoc
// @Summary Re-confirm the admin password
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param password query string true "Admin password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Router /admin/verify-password [post]
func (h *MaintenanceHandler) VerifyPassword(c *gin.Context) {
	if err := h.auth.VerifyAdminPassword(c.Query("password")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Password verified"})
}

// BulkDelete godoc
// @Summary Bulk delete records
// @Description Dates are inclusive and read in the display timezone.
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param password query string true "Admin password"
// @Param delete_type query string true "reports, queries, calls, admissions or all"
// @Param consultant_id query string false "Restrict to one consultant"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/bulk-delete [post]
func (h *MaintenanceHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid bulk delete parameters"))
		return
	}

	result, err := h.maintenance.BulkDelete(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"message": fmt.Sprintf("Deleted %d records", result.Total()),
		"deleted": result,
	})
}
