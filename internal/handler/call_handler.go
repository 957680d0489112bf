package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/middleware"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type callService interface {
	Log(ctx context.Context, consultantID string, req dto.LogCallRequest) (*models.CallLog, error)
	ForConsultant(ctx context.Context, consultantID string) (*service.ConsultantCalls, error)
	Overview(ctx context.Context) (*dto.CallOverview, error)
	DeleteForConsultant(ctx context.Context, consultantID, password string) (int64, error)
}

// CallHandler exposes call logging and statistics.
type CallHandler struct {
	calls callService
}

// NewCallHandler constructs the handler.
func NewCallHandler(calls callService) *CallHandler {
	return &CallHandler{calls: calls}
}

// Log godoc
// @Summary Quick-log a call without a report
// @Tags Calls
// @Produce json
// @Security BearerAuth
// @Param consultant_id query string true "Consultant user id"
// @Param call_type query string true "failed or attempted"
// @Param student_name query string false "Student"
// @Param contact_number query string false "Phone"
// @Param remarks query string false "Remarks"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /consultant/calls [post]
func (h *CallHandler) Log(c *gin.Context) {
	consultantID, err := consultantTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LogCallRequest
	if err := bindQueryOrJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "invalid call payload"))
		return
	}

	call, err := h.calls.Log(c.Request.Context(), consultantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Call logged successfully", "call_id": call.ID})
}

// ForConsultant godoc
// @Summary A consultant's calls and statistics
// @Tags Calls
// @Produce json
// @Security BearerAuth
// @Param consultant_id path string true "Consultant user id"
// @Success 200 {object} map[string]interface{}
// @Router /consultant/calls/{consultant_id} [get]
func (h *CallHandler) ForConsultant(c *gin.Context) {
	page, err := h.calls.ForConsultant(c.Request.Context(), c.Param("consultant_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stats": page.Stats, "calls": page.Calls})
}

// Overview godoc
// @Summary Call statistics for every consultant
// @Tags Calls
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/calls [get]
func (h *CallHandler) Overview(c *gin.Context) {
	overview, err := h.calls.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, overview.Cached)
	response.OK(c, gin.H{
		"overall_stats":    overview.OverallStats,
		"consultant_stats": overview.ConsultantStats,
	})
}

// DeleteForConsultant godoc
// @Summary Clear a consultant's call statistics
// @Tags Calls
// @Produce json
// @Security BearerAuth
// @Param consultant_id path string true "Consultant user id"
// @Param password query string true "Admin password"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.ErrorBody
// @Router /admin/calls/{consultant_id} [delete]
func (h *CallHandler) DeleteForConsultant(c *gin.Context) {
	deleted, err := h.calls.DeleteForConsultant(c.Request.Context(), c.Param("consultant_id"), c.Query("password"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Call statistics deleted", "deleted": deleted})
}
