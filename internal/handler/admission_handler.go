package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type admissionService interface {
	List(ctx context.Context, filter dto.AdmissionListFilter) ([]models.Admission, error)
	ForConsultant(ctx context.Context, consultantID string) (*service.ConsultantAdmissions, error)
	Create(ctx context.Context, req dto.AdmissionRequest) (*models.Admission, error)
	Update(ctx context.Context, id string, req dto.AdmissionRequest) (*models.Admission, error)
	Delete(ctx context.Context, id string) error
}

// AdmissionHandler exposes referral admissions and payouts.
type AdmissionHandler struct {
	admissions admissionService
	exporter   fileExporter
}

// NewAdmissionHandler constructs the handler.
func NewAdmissionHandler(admissions admissionService, exporter fileExporter) *AdmissionHandler {
	return &AdmissionHandler{admissions: admissions, exporter: exporter}
}

// List godoc
// @Summary List admissions
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param payout_status query string false "Payout status"
// @Param consultant_id query string false "Consultant user id"
// @Success 200 {object} map[string]interface{}
// @Router /admin/admissions [get]
func (h *AdmissionHandler) List(c *gin.Context) {
	var filter dto.AdmissionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, invalidPayload(err, "invalid filter"))
		return
	}
	admissions, err := h.admissions.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"admissions": admissions, "count": len(admissions)})
}

// Create godoc
// @Summary Record an admission
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param student_name query string true "Student"
// @Param course query string true "Course"
// @Param college query string true "College"
// @Param admission_date query string true "YYYY-MM-DD"
// @Param consultant_id query string true "Consultant user id"
// @Param payout_amount query number false "Payout"
// @Param payout_status query string false "Payout status"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Router /admin/admissions [post]
func (h *AdmissionHandler) Create(c *gin.Context) {
	var req dto.AdmissionRequest
	if err := bindQueryOrJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "invalid admission payload"))
		return
	}
	admission, err := h.admissions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Admission created successfully", "admission": admission})
}

// Update godoc
// @Summary Replace an admission
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admission ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /admin/admissions/{id} [put]
func (h *AdmissionHandler) Update(c *gin.Context) {
	var req dto.AdmissionRequest
	if err := bindQueryOrJSON(c, &req); err != nil {
		response.Error(c, invalidPayload(err, "invalid admission payload"))
		return
	}
	admission, err := h.admissions.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Admission updated successfully", "admission": admission})
}

// Delete godoc
// @Summary Delete an admission
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admission ID"
// @Success 200 {object} map[string]interface{}
// @Router /admin/admissions/{id} [delete]
func (h *AdmissionHandler) Delete(c *gin.Context) {
	if err := h.admissions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Admission deleted successfully"})
}

// Export godoc
// @Summary Download filtered admissions
// @Tags Admissions
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /admin/admissions/export [get]
func (h *AdmissionHandler) Export(c *gin.Context) {
	sendExport(c, h.exporter, models.ExportAdmissions)
}

// ForConsultant godoc
// @Summary A consultant's referral admissions
// @Tags Admissions
// @Produce json
// @Security BearerAuth
// @Param consultant_id path string true "Consultant user id"
// @Success 200 {object} map[string]interface{}
// @Router /consultant/admissions/{consultant_id} [get]
func (h *AdmissionHandler) ForConsultant(c *gin.Context) {
	page, err := h.admissions.ForConsultant(c.Request.Context(), c.Param("consultant_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"admissions": page.Admissions, "summary": page.Summary})
}
