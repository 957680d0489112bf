package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type queryService interface {
	Submit(ctx context.Context, req dto.CreateQueryRequest) (*models.StudentQuery, error)
	List(ctx context.Context, filter dto.QueryListFilter) ([]models.QueryView, error)
	Get(ctx context.Context, id string) (*models.QueryView, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateQueryStatusRequest) (*models.QueryView, error)
	Delete(ctx context.Context, id string) error
}

// QueryHandler serves the public enquiry form and the admin enquiry desk.
type QueryHandler struct {
	queries  queryService
	exporter fileExporter
}

// NewQueryHandler constructs the handler.
func NewQueryHandler(queries queryService, exporter fileExporter) *QueryHandler {
	return &QueryHandler{queries: queries, exporter: exporter}
}

// Submit godoc
// @Summary Submit a student enquiry
// @Tags Queries
// @Accept json
// @Produce json
// @Param payload body dto.CreateQueryRequest true "Enquiry"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /queries [post]
func (h *QueryHandler) Submit(c *gin.Context) {
	var req dto.CreateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid query payload"))
		return
	}

	query, err := h.queries.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":  "Query submitted successfully",
		"query_id": query.ID,
	})
}

// List godoc
// @Summary List student enquiries
// @Tags Queries
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, email, phone or course"
// @Param status query string false "new, contacted, closed or all"
// @Param date query string false "Submission date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /queries [get]
func (h *QueryHandler) List(c *gin.Context) {
	var filter dto.QueryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, invalidPayload(err, "invalid filter"))
		return
	}

	queries, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"queries": queries, "count": len(queries)})
}

// Get godoc
// @Summary Get one enquiry
// @Tags Queries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Query ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /queries/{id} [get]
func (h *QueryHandler) Get(c *gin.Context) {
	query, err := h.queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"query": query})
}

// UpdateStatus godoc
// @Summary Change an enquiry's status
// @Tags Queries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Query ID"
// @Param status query string true "new, contacted or closed"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} response.ErrorBody
// @Router /queries/{id}/status [patch]
func (h *QueryHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateQueryStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid status"))
		return
	}

	query, err := h.queries.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Status updated", "query": query})
}

// Delete godoc
// @Summary Delete an enquiry
// @Tags Queries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Query ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /queries/{id} [delete]
func (h *QueryHandler) Delete(c *gin.Context) {
	if err := h.queries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Query deleted"})
}

// Export godoc
// @Summary Download filtered enquiries
// @Tags Queries
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Param search query string false "Search term"
// @Param status query string false "Status"
// @Param date query string false "Submission date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Router /queries/export [get]
func (h *QueryHandler) Export(c *gin.Context) {
	sendExport(c, h.exporter, models.ExportQueries)
}
