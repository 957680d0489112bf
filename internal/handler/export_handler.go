package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

// fileExporter renders a filtered dataset for synchronous download.
type fileExporter interface {
	Export(ctx context.Context, dataset models.ExportDataset, params models.ExportJobParams) (*service.ExportFile, error)
}

type exportJobService interface {
	CreateJob(ctx context.Context, req dto.ExportJobRequest, actorID string) (*dto.ExportJobResponse, error)
	GetStatus(ctx context.Context, id string) (*dto.ExportJobResponse, error)
	ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error)
}

// sendExport binds the export query, renders dataset and streams it back.
func sendExport(c *gin.Context, exporter fileExporter, dataset models.ExportDataset) {
	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid export parameters"))
		return
	}
	if req.Format != "" && req.Format != models.ExportFormatCSV && req.Format != models.ExportFormatPDF {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}

	file, err := exporter.Export(c.Request.Context(), dataset, req.Params(dataset))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("X-Export-Rows", strconv.Itoa(file.Rows))
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}

// ExportHandler exposes asynchronous export jobs.
type ExportHandler struct {
	jobs exportJobService
}

// NewExportHandler constructs the handler.
func NewExportHandler(jobs exportJobService) *ExportHandler {
	return &ExportHandler{jobs: jobs}
}

// CreateJob godoc
// @Summary Queue an export job
// @Tags Exports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExportJobRequest true "Export request"
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 503 {object} response.ErrorBody
// @Router /admin/exports [post]
func (h *ExportHandler) CreateJob(c *gin.Context) {
	var req dto.ExportJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid export payload"))
		return
	}
	actor := ""
	if claims := claimsFromContext(c); claims != nil {
		actor = claims.SubjectID
	}

	job, err := h.jobs.CreateJob(c.Request.Context(), req, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, gin.H{"job": job})
}

// JobStatus godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /admin/exports/{id} [get]
func (h *ExportHandler) JobStatus(c *gin.Context) {
	job, err := h.jobs.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"job": job})
}

// Download godoc
// @Summary Download a finished export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 403 {object} response.ErrorBody
// @Router /export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	download, err := h.jobs.ResolveDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to read export file"))
		return
	}

	contentType := "text/csv; charset=utf-8"
	if download.Format == models.ExportFormatPDF {
		contentType = "application/pdf"
	}
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, download.File, map[string]string{
		"Content-Disposition": `attachment; filename="` + download.Filename + `"`,
	})
}
