package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/phone"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
	"github.com/noah-isme/edu-advisor-api/pkg/throttle"
)

type reportStore interface {
	Create(ctx context.Context, report *models.ConsultantReport, call *models.CallLog) error
	ListAll(ctx context.Context, limit int) ([]models.ConsultantReport, error)
	ListByConsultant(ctx context.Context, consultantID string, limit int) ([]models.ConsultantReport, error)
	Delete(ctx context.Context, id string) error
}

type consultantLookup interface {
	FindByID(ctx context.Context, userID string) (*models.Consultant, error)
}

// ReportList is the admin report page.
type ReportList struct {
	Reports      []models.ConsultantReport            `json:"reports"`
	ByConsultant map[string][]models.ConsultantReport `json:"reports_by_consultant"`
	Count        int                                  `json:"count"`
}

// ReportService handles consultant daily calling reports.
type ReportService struct {
	repo        reportStore
	consultants consultantLookup
	cooldown    *throttle.Cooldown
	cache       *CacheService
	metrics     *MetricsService
	formatter   *records.TimestampFormatter
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewReportService constructs the service. cooldown, cache and metrics may be nil.
func NewReportService(repo reportStore, consultants consultantLookup, cooldown *throttle.Cooldown, cache *CacheService, metrics *MetricsService, formatter *records.TimestampFormatter, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cooldown == nil {
		cooldown = throttle.NewCooldown(0)
	}
	if formatter == nil {
		formatter = records.IST()
	}
	return &ReportService{
		repo:        repo,
		consultants: consultants,
		cooldown:    cooldown,
		cache:       cache,
		metrics:     metrics,
		formatter:   formatter,
		validator:   validate,
		logger:      logger,
	}
}

// Submit stores a report and logs the successful call that produced it.
// Each consultant holds one submit at a time and must wait out the
// cool-down after a successful one.
func (s *ReportService) Submit(ctx context.Context, consultantID string, req dto.SubmitReportRequest) (*models.ConsultantReport, error) {
	slot, ok, wait := s.cooldown.Reserve(consultantID)
	if !ok {
		s.metrics.RecordReportSubmit("throttled")
		return nil, appErrors.TooManyRequests("please wait before submitting another report", wait)
	}
	defer slot.Release()

	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordReportSubmit("rejected")
		return nil, validationError(err, "student name, contact number and interest scope are required")
	}
	if !req.InterestScope.Valid() {
		s.metrics.RecordReportSubmit("rejected")
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown interest scope")
	}
	consultant, err := s.consultants.FindByID(ctx, consultantID)
	if err != nil {
		return nil, notFoundOr(err, "consultant", "failed to load consultant")
	}
	if !consultant.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "consultant account is inactive")
	}

	contact := phone.NormalizeE164(req.ContactNumber)
	report := &models.ConsultantReport{
		ConsultantID:              consultant.UserID,
		ConsultantName:            consultant.Name,
		StudentName:               strings.TrimSpace(req.StudentName),
		ContactNumber:             contact,
		InstitutionName:           strings.TrimSpace(req.InstitutionName),
		CompetitiveExamPreference: strings.TrimSpace(req.CompetitiveExamPreference),
		CareerInterest:            strings.TrimSpace(req.CareerInterest),
		CollegeInterest:           strings.TrimSpace(req.CollegeInterest),
		InterestScope:             req.InterestScope,
		OtherRemarks:              strings.TrimSpace(req.OtherRemarks),
	}
	call := &models.CallLog{
		ConsultantID:   consultant.UserID,
		ConsultantName: consultant.Name,
		CallType:       models.CallSuccessful,
		StudentName:    report.StudentName,
		ContactNumber:  contact,
		Remarks:        "Report submitted",
	}
	if err := s.repo.Create(ctx, report, call); err != nil {
		return nil, internalError(err, "failed to save report")
	}

	slot.Commit()
	s.metrics.RecordReportSubmit("accepted")
	_ = s.cache.Invalidate(ctx, cacheKeyCallOverview+"*")
	s.logger.Info("consultant report submitted",
		zap.String("consultant_id", consultantID),
		zap.String("report_id", report.ID),
		zap.String("interest_scope", string(report.InterestScope)))
	return report, nil
}

// ListForConsultant returns a consultant's own reports, newest first.
func (s *ReportService) ListForConsultant(ctx context.Context, consultantID string) ([]models.ConsultantReport, error) {
	rows, err := s.repo.ListByConsultant(ctx, consultantID, serverRowLimit)
	if err != nil {
		return nil, internalError(err, "failed to load reports")
	}
	return rows, nil
}

// AdminList filters recent reports across consultants and groups them by
// consultant name.
func (s *ReportService) AdminList(ctx context.Context, filter dto.ReportListFilter) (*ReportList, error) {
	state, err := reportFilter(filter.Search, filter.Consultant, filter.Scope, filter.Date, s.formatter.Location())
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListAll(ctx, serverRowLimit)
	if err != nil {
		return nil, internalError(err, "failed to load reports")
	}
	filtered := records.Apply(rows, state)
	return &ReportList{
		Reports:      filtered,
		ByConsultant: models.GroupReportsByConsultant(filtered),
		Count:        len(filtered),
	}, nil
}

// Delete removes one report. Its call log entry is kept.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "report", "failed to delete report")
	}
	s.logger.Info("consultant report deleted", zap.String("report_id", id))
	return nil
}
