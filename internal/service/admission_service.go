package service

import (
	"context"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

type admissionStore interface {
	List(ctx context.Context) ([]models.Admission, error)
	ListByConsultant(ctx context.Context, consultantID string) ([]models.Admission, error)
	FindByID(ctx context.Context, id string) (*models.Admission, error)
	Create(ctx context.Context, a *models.Admission) error
	Update(ctx context.Context, a *models.Admission) error
	Delete(ctx context.Context, id string) error
}

// ConsultantAdmissions is a consultant's referral page.
type ConsultantAdmissions struct {
	Admissions []models.Admission   `json:"admissions"`
	Summary    models.PayoutSummary `json:"summary"`
}

// AdmissionService manages referral admissions and payouts.
type AdmissionService struct {
	repo        admissionStore
	consultants consultantLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAdmissionService constructs the service.
func NewAdmissionService(repo admissionStore, consultants consultantLookup, validate *validator.Validate, logger *zap.Logger) *AdmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AdmissionService{repo: repo, consultants: consultants, validator: validate, logger: logger}
}

// List returns admissions matching the admin filters.
func (s *AdmissionService) List(ctx context.Context, filter dto.AdmissionListFilter) ([]models.Admission, error) {
	state, err := admissionFilter(filter.Search, filter.PayoutStatus, filter.ConsultantID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load admissions")
	}
	return records.Apply(rows, state), nil
}

// ForConsultant returns a consultant's admissions with payout totals.
func (s *AdmissionService) ForConsultant(ctx context.Context, consultantID string) (*ConsultantAdmissions, error) {
	rows, err := s.repo.ListByConsultant(ctx, consultantID)
	if err != nil {
		return nil, internalError(err, "failed to load admissions")
	}
	return &ConsultantAdmissions{Admissions: rows, Summary: models.SummarizePayouts(rows)}, nil
}

// Create records an admission against a consultant.
func (s *AdmissionService) Create(ctx context.Context, req dto.AdmissionRequest) (*models.Admission, error) {
	a := &models.Admission{}
	if err := s.apply(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, internalError(err, "failed to create admission")
	}
	s.logger.Info("admission recorded", zap.String("admission_id", a.ID), zap.String("consultant_id", a.ConsultantID))
	return a, nil
}

// Update replaces every field of an admission.
func (s *AdmissionService) Update(ctx context.Context, id string, req dto.AdmissionRequest) (*models.Admission, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "admission", "failed to load admission")
	}
	if err := s.apply(ctx, a, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, notFoundOr(err, "admission", "failed to update admission")
	}
	return a, nil
}

// Delete removes one admission.
func (s *AdmissionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "admission", "failed to delete admission")
	}
	return nil
}

func (s *AdmissionService) apply(ctx context.Context, a *models.Admission, req dto.AdmissionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, "invalid admission payload")
	}
	if req.PayoutStatus == "" {
		req.PayoutStatus = models.PayoutNotCredited
	}
	if !req.PayoutStatus.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown payout status")
	}
	date, err := civil.ParseDate(req.AdmissionDate)
	if err != nil {
		return validationError(err, "admission_date must be formatted as YYYY-MM-DD")
	}
	consultant, err := s.consultants.FindByID(ctx, req.ConsultantID)
	if err != nil {
		return notFoundOr(err, "consultant", "failed to load consultant")
	}

	a.StudentName = strings.TrimSpace(req.StudentName)
	a.Course = strings.TrimSpace(req.Course)
	a.College = strings.TrimSpace(req.College)
	a.AdmissionDate = models.NewDate(date)
	a.ConsultantID = consultant.UserID
	a.ConsultantName = consultant.Name
	a.PayoutAmount = req.PayoutAmount
	a.PayoutStatus = req.PayoutStatus
	return nil
}
