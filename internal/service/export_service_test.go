package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
	"github.com/noah-isme/edu-advisor-api/pkg/storage"
)

type stubReportSource struct{ rows []models.ConsultantReport }

func (s stubReportSource) ListAll(ctx context.Context, limit int) ([]models.ConsultantReport, error) {
	return s.rows, nil
}

type stubAdmissionSource struct{ rows []models.Admission }

func (s stubAdmissionSource) List(ctx context.Context) ([]models.Admission, error) { return s.rows, nil }

type stubCallSource struct{ rows []models.CallLog }

func (s stubCallSource) ListAll(ctx context.Context, limit int) ([]models.CallLog, error) {
	return s.rows, nil
}

func newTestExportService(t *testing.T, withStorage bool) *ExportService {
	t.Helper()
	sources := ExportSources{
		Queries: &mockQueryRepo{rows: []models.StudentQuery{
			{ID: "1", Name: "Aarav Mehta", Phone: "+919812345678", Email: "aarav@example.com", Course: "B.Tech CSE",
				Message: "Fees, hostel", Status: models.QueryStatusNew, CreatedAt: time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)},
			{ID: "2", Name: "Diya \"DP\" Patel", Phone: "+919876500000", Email: "diya@example.com", Course: "MBBS",
				Status: models.QueryStatusClosed, CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)},
		}},
		Reports: stubReportSource{rows: []models.ConsultantReport{
			{ID: "r1", ConsultantID: "priya", ConsultantName: "Priya Sharma", StudentName: "Kabir", InterestScope: models.InterestActive,
				CreatedAt: time.Date(2025, 3, 15, 4, 0, 0, 0, time.UTC)},
			{ID: "r2", ConsultantID: "ravi", ConsultantName: "Ravi Kumar", StudentName: "Isha", InterestScope: models.InterestNone,
				CreatedAt: time.Date(2025, 3, 15, 5, 0, 0, 0, time.UTC)},
		}},
		Admissions: stubAdmissionSource{},
		Calls:      stubCallSource{},
	}

	var store fileStorage
	var signer *storage.SignedURLSigner
	if withStorage {
		local, err := storage.NewLocalStorage(t.TempDir())
		require.NoError(t, err)
		store = local
		signer = storage.NewSignedURLSigner("export-secret", time.Hour)
	}
	svc := NewExportService(sources, store, signer, export.NewCSVExporter(), records.IST(), ExportConfig{APIPrefix: "/api"}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 22, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportQueriesCSV(t *testing.T) {
	svc := newTestExportService(t, false)

	file, err := svc.Export(context.Background(), models.ExportQueries, models.ExportJobParams{Format: models.ExportFormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "student-queries-2025-03-15.csv", file.Filename)
	assert.Equal(t, 2, file.Rows)

	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Name,Phone,Email,Institution,Course,Message,Status", lines[0])
	assert.Equal(t, `"2025-03-15","Aarav Mehta","+919812345678","aarav@example.com","","B.Tech CSE","Fees; hostel","new"`, lines[1])
	assert.Contains(t, lines[2], `"Diya ""DP"" Patel"`)
}

func TestExportQueriesAppliesFilters(t *testing.T) {
	svc := newTestExportService(t, false)

	file, err := svc.Export(context.Background(), models.ExportQueries, models.ExportJobParams{Status: "closed"})
	require.NoError(t, err)
	assert.Equal(t, 1, file.Rows)
	assert.Contains(t, string(file.Data), "MBBS")
	assert.NotContains(t, string(file.Data), "Aarav")

	empty, err := svc.Export(context.Background(), models.ExportQueries, models.ExportJobParams{Search: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, "Date,Name,Phone,Email,Institution,Course,Message,Status", string(empty.Data))
}

func TestExportReportsUsesISTAndConsultantFilter(t *testing.T) {
	svc := newTestExportService(t, false)

	file, err := svc.Export(context.Background(), models.ExportConsultantReports, models.ExportJobParams{ConsultantID: "priya"})
	require.NoError(t, err)
	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Date (IST),Consultant,Student Name"))
	assert.True(t, strings.HasPrefix(lines[1], `"15 Mar 2025, 09:30 AM","Priya Sharma","Kabir"`))
	assert.Equal(t, "consultant-reports-2025-03-15.csv", file.Filename)
}

func TestExportPDFAndUnsupported(t *testing.T) {
	svc := newTestExportService(t, false)
	ctx := context.Background()

	file, err := svc.Export(ctx, models.ExportCalls, models.ExportJobParams{Format: models.ExportFormatPDF})
	require.NoError(t, err)
	assert.Equal(t, "call-logs-2025-03-15.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))

	_, err = svc.Export(ctx, models.ExportQueries, models.ExportJobParams{Format: "xlsx"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Export(ctx, "students", models.ExportJobParams{})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Export(ctx, models.ExportQueries, models.ExportJobParams{Date: "tomorrow"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportGenerateStoresSignedFile(t *testing.T) {
	svc := newTestExportService(t, true)
	job := &models.ExportJob{ID: "job-1", Dataset: models.ExportAdmissions, Params: models.ExportJobParams{Format: models.ExportFormatCSV}}

	result, err := svc.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "job-1/admissions-2025-03-15.csv", result.RelativePath)
	assert.Equal(t, "/api/export/"+result.Token, result.URL)

	jobID, relPath, _, err := svc.ParseToken(result.Token, false)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)

	f, err := svc.Open(relPath)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Admission Date,Student Name"))
}

func TestExportGenerateWithoutStorage(t *testing.T) {
	svc := newTestExportService(t, false)

	_, err := svc.Generate(context.Background(), &models.ExportJob{ID: "x", Dataset: models.ExportQueries})
	require.Error(t, err)
}
