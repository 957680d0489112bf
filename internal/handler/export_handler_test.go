package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type exportJobServiceMock struct {
	createReq   dto.ExportJobRequest
	actor       string
	createResp  *dto.ExportJobResponse
	createErr   error
	statusResp  *dto.ExportJobResponse
	statusErr   error
	download    *service.ExportDownload
	downloadErr error
}

func (m *exportJobServiceMock) CreateJob(ctx context.Context, req dto.ExportJobRequest, actorID string) (*dto.ExportJobResponse, error) {
	m.createReq, m.actor = req, actorID
	return m.createResp, m.createErr
}

func (m *exportJobServiceMock) GetStatus(ctx context.Context, id string) (*dto.ExportJobResponse, error) {
	return m.statusResp, m.statusErr
}

func (m *exportJobServiceMock) ResolveDownload(ctx context.Context, token string) (*service.ExportDownload, error) {
	return m.download, m.downloadErr
}

func TestExportHandlerCreateJob(t *testing.T) {
	svc := &exportJobServiceMock{createResp: &dto.ExportJobResponse{ID: "job-1", Dataset: models.ExportQueries, Status: models.ExportStatusQueued}}
	handler := NewExportHandler(svc)

	payload := mustJSON(t, dto.ExportJobRequest{Dataset: models.ExportQueries, Format: models.ExportFormatCSV, Status: "new"})
	c, w := newGinContext(http.MethodPost, "/api/admin/exports", payload)
	asAdmin(c)
	handler.CreateJob(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "admin", svc.actor)
	assert.Equal(t, "new", svc.createReq.Status)
	job := decodeBody(t, w)["job"].(map[string]interface{})
	assert.Equal(t, "job-1", job["id"])
	assert.Equal(t, "QUEUED", job["status"])
}

func TestExportHandlerCreateJobQueueBusy(t *testing.T) {
	svc := &exportJobServiceMock{createErr: appErrors.Clone(appErrors.ErrUnavailable, "export queue is busy")}
	handler := NewExportHandler(svc)

	c, w := newGinContext(http.MethodPost, "/api/admin/exports", mustJSON(t, dto.ExportJobRequest{Dataset: models.ExportCalls, Format: models.ExportFormatPDF}))
	handler.CreateJob(c)

	assert.Equal(t, appErrors.ErrUnavailable.Status, w.Code)
}

func TestExportHandlerJobStatus(t *testing.T) {
	url := "/api/export/tok"
	svc := &exportJobServiceMock{statusResp: &dto.ExportJobResponse{ID: "job-1", Status: models.ExportStatusFinished, Progress: 100, ResultURL: &url}}
	handler := NewExportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/admin/exports/job-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "job-1"}}
	handler.JobStatus(c)

	require.Equal(t, http.StatusOK, w.Code)
	job := decodeBody(t, w)["job"].(map[string]interface{})
	assert.Equal(t, url, job["result_url"])
}

func TestExportHandlerDownload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student-queries-2025-03-15.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\n\"Asha\""), 0o600))
	file, err := os.Open(path)
	require.NoError(t, err)

	svc := &exportJobServiceMock{download: &service.ExportDownload{
		File:      file,
		Filename:  "student-queries-2025-03-15.csv",
		Format:    models.ExportFormatCSV,
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	handler := NewExportHandler(svc)

	c, w := newGinContext(http.MethodGet, "/api/export/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}
	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Name\n\"Asha\"", w.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "student-queries-2025-03-15.csv")
}

func TestExportHandlerDownloadForbidden(t *testing.T) {
	handler := NewExportHandler(&exportJobServiceMock{downloadErr: appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")})

	c, w := newGinContext(http.MethodGet, "/api/export/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	handler.Download(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestExportRequestParamsPicksStatusColumn(t *testing.T) {
	req := dto.ExportRequest{Status: "new", InterestScope: "NOT INTERESTED", PayoutStatus: "PAYOUT REFLECTED"}

	assert.Equal(t, "new", req.Params(models.ExportQueries).Status)
	assert.Equal(t, "NOT INTERESTED", req.Params(models.ExportConsultantReports).Status)
	assert.Equal(t, "PAYOUT REFLECTED", req.Params(models.ExportAdmissions).Status)
	assert.Equal(t, "new", req.Params(models.ExportCalls).Status)
}
