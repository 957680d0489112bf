package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type reportService interface {
	Submit(ctx context.Context, consultantID string, req dto.SubmitReportRequest) (*models.ConsultantReport, error)
	ListForConsultant(ctx context.Context, consultantID string) ([]models.ConsultantReport, error)
	AdminList(ctx context.Context, filter dto.ReportListFilter) (*service.ReportList, error)
	Delete(ctx context.Context, id string) error
}

// ReportHandler exposes daily calling reports.
type ReportHandler struct {
	reports  reportService
	exporter fileExporter
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService, exporter fileExporter) *ReportHandler {
	return &ReportHandler{reports: reports, exporter: exporter}
}

// Submit godoc
// @Summary Submit a daily calling report
// @Description Also logs a successful call. A consultant must wait a few seconds between submissions.
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param consultant_id query string true "Consultant user id"
// @Param payload body dto.SubmitReportRequest true "Report"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /consultant/reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	consultantID, err := consultantTarget(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid report payload"))
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), consultantID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}

// ListForConsultant godoc
// @Summary A consultant's own reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param consultant_id path string true "Consultant user id"
// @Success 200 {object} map[string]interface{}
// @Router /consultant/reports/{consultant_id} [get]
func (h *ReportHandler) ListForConsultant(c *gin.Context) {
	reports, err := h.reports.ListForConsultant(c.Request.Context(), c.Param("consultant_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"reports": reports, "count": len(reports)})
}

// AdminList godoc
// @Summary All consultant reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param consultant query string false "Consultant name or all"
// @Param date query string false "Report date (YYYY-MM-DD)"
// @Param search query string false "Search term"
// @Param interest_scope query string false "Interest scope"
// @Success 200 {object} map[string]interface{}
// @Router /admin/consultant-reports [get]
func (h *ReportHandler) AdminList(c *gin.Context) {
	var filter dto.ReportListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, invalidPayload(err, "invalid filter"))
		return
	}

	list, err := h.reports.AdminList(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"reports":               list.Reports,
		"reports_by_consultant": list.ByConsultant,
		"count":                 list.Count,
	})
}

// Export godoc
// @Summary Download filtered consultant reports
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param consultant query string false "Consultant name"
// @Param date query string false "Report date (YYYY-MM-DD)"
// @Param search query string false "Search term"
// @Param interest_scope query string false "Interest scope"
// @Success 200 {file} file
// @Router /admin/consultant-reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	sendExport(c, h.exporter, models.ExportConsultantReports)
}

// Delete godoc
// @Summary Delete a report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /consultant/reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reports.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Report deleted"})
}
