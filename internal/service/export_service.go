package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
	"github.com/noah-isme/edu-advisor-api/pkg/storage"
)

type exportQuerySource interface {
	List(ctx context.Context, limit int) ([]models.StudentQuery, error)
}

type exportReportSource interface {
	ListAll(ctx context.Context, limit int) ([]models.ConsultantReport, error)
}

type exportAdmissionSource interface {
	List(ctx context.Context) ([]models.Admission, error)
}

type exportCallSource interface {
	ListAll(ctx context.Context, limit int) ([]models.CallLog, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportSources groups the row sources an export may read.
type ExportSources struct {
	Queries    exportQuerySource
	Reports    exportReportSource
	Admissions exportAdmissionSource
	Calls      exportCallSource
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportResult captures a stored export.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ExportFormat
	ExpiresAt    time.Time
	Rows         int
}

var exportNames = map[models.ExportDataset]string{
	models.ExportQueries:           "student-queries",
	models.ExportConsultantReports: "consultant-reports",
	models.ExportAdmissions:        "admissions",
	models.ExportCalls:             "call-logs",
}

var exportTitles = map[models.ExportDataset]string{
	models.ExportQueries:           "Student Queries",
	models.ExportConsultantReports: "Consultant Reports",
	models.ExportAdmissions:        "Admissions & Payouts",
	models.ExportCalls:             "Call Log",
}

// ExportService projects filtered records into CSV or PDF files.
type ExportService struct {
	sources   ExportSources
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       *export.CSVExporter
	formatter *records.TimestampFormatter
	logger    *zap.Logger
	cfg       ExportConfig
	now       func() time.Time
}

// NewExportService constructs an ExportService. storage and signer may be nil
// when only synchronous downloads are served.
func NewExportService(sources ExportSources, store fileStorage, signer *storage.SignedURLSigner, csv *export.CSVExporter, formatter *records.TimestampFormatter, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if formatter == nil {
		formatter = records.IST()
	}
	return &ExportService{
		sources:   sources,
		storage:   store,
		signer:    signer,
		csv:       csv,
		formatter: formatter,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Build loads the dataset's recent rows and projects the filtered view.
// Params.Status pins the status-like column of each dataset: query status,
// interest scope, or payout status.
func (s *ExportService) Build(ctx context.Context, dataset models.ExportDataset, params models.ExportJobParams) (export.Dataset, error) {
	name := exportNames[dataset]
	loc := s.formatter.Location()
	switch dataset {
	case models.ExportQueries:
		state, err := queryFilter(params.Search, params.Status, params.Date, loc)
		if err != nil {
			return export.Dataset{}, err
		}
		rows, err := s.sources.Queries.List(ctx, serverRowLimit)
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load student queries")
		}
		return records.Project(name, records.Apply(rows, state), models.QueryColumns(s.formatter)), nil
	case models.ExportConsultantReports:
		state, err := reportFilter(params.Search, params.Consultant, params.Status, params.Date, loc)
		if err != nil {
			return export.Dataset{}, err
		}
		rows, err := s.sources.Reports.ListAll(ctx, serverRowLimit)
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load consultant reports")
		}
		state = state.WithEquals("consultant_id", params.ConsultantID)
		return records.Project(name, records.Apply(rows, state), models.ReportColumns(s.formatter)), nil
	case models.ExportAdmissions:
		state, err := admissionFilter(params.Search, params.Status, params.ConsultantID)
		if err != nil {
			return export.Dataset{}, err
		}
		rows, err := s.sources.Admissions.List(ctx)
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load admissions")
		}
		return records.Project(name, records.Apply(rows, state), models.AdmissionColumns(s.formatter)), nil
	case models.ExportCalls:
		state, err := callFilter(params.Search, params.ConsultantID, params.CallType, params.Date, loc)
		if err != nil {
			return export.Dataset{}, err
		}
		rows, err := s.sources.Calls.ListAll(ctx, serverRowLimit)
		if err != nil {
			return export.Dataset{}, internalError(err, "failed to load call logs")
		}
		return records.Project(name, records.Apply(rows, state), models.CallColumns(s.formatter)), nil
	}
	return export.Dataset{}, appErrors.Clone(appErrors.ErrValidation, "unsupported export dataset")
}

// Render encodes a dataset in format and names the file after today's date.
func (s *ExportService) Render(data export.Dataset, dataset models.ExportDataset, format models.ExportFormat) (*ExportFile, error) {
	var renderer export.Renderer
	switch format {
	case "", models.ExportFormatCSV:
		renderer = s.csv
	case models.ExportFormatPDF:
		renderer = export.NewPDFExporter(exportTitles[dataset])
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	payload, err := renderer.Render(data)
	if err != nil {
		return nil, internalError(err, "failed to render export")
	}
	return &ExportFile{
		Filename:    export.Filename(data.Name, renderer.Extension(), s.now()),
		ContentType: renderer.ContentType(),
		Data:        payload,
		Rows:        len(data.Rows),
	}, nil
}

// Export builds and renders in one step for synchronous downloads.
func (s *ExportService) Export(ctx context.Context, dataset models.ExportDataset, params models.ExportJobParams) (*ExportFile, error) {
	data, err := s.Build(ctx, dataset, params)
	if err != nil {
		return nil, err
	}
	file, err := s.Render(data, dataset, params.Format)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("export rendered",
		zap.String("dataset", string(dataset)),
		zap.Int("rows", len(data.Rows)),
		zap.String("filename", file.Filename))
	return file, nil
}

// Generate renders a queued job and stores the file behind a signed URL.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	if s.storage == nil || s.signer == nil {
		return nil, fmt.Errorf("export storage not configured")
	}
	file, err := s.Export(ctx, job.Dataset, job.Params)
	if err != nil {
		return nil, err
	}

	relPath, err := s.storage.Save(job.ID+"/"+file.Filename, file.Data)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       job.Params.Format,
		ExpiresAt:    expiresAt,
		Rows:         file.Rows,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	if s.signer == nil {
		return "", "", time.Time{}, storage.ErrInvalidToken
	}
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl, defaulting to ResultTTL.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}
