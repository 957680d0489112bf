package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/phone"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

type queryStore interface {
	List(ctx context.Context, limit int) ([]models.StudentQuery, error)
	FindByID(ctx context.Context, id string) (*models.StudentQuery, error)
	Create(ctx context.Context, q *models.StudentQuery) error
	UpdateStatus(ctx context.Context, id string, status models.QueryStatus) error
	Delete(ctx context.Context, id string) error
}

// QueryService handles public enquiries and the admin enquiry dashboard.
type QueryService struct {
	repo      queryStore
	validator *validator.Validate
	formatter *records.TimestampFormatter
	newWindow time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewQueryService constructs the service. newWindow controls the "new" badge.
func NewQueryService(repo queryStore, validate *validator.Validate, formatter *records.TimestampFormatter, newWindow time.Duration, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if formatter == nil {
		formatter = records.IST()
	}
	if newWindow <= 0 {
		newWindow = 24 * time.Hour
	}
	return &QueryService{repo: repo, validator: validate, formatter: formatter, newWindow: newWindow, logger: logger, now: time.Now}
}

// Submit stores a public enquiry.
func (s *QueryService) Submit(ctx context.Context, req dto.CreateQueryRequest) (*models.StudentQuery, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "name, phone, email and course are required")
	}
	q := &models.StudentQuery{
		Name:               req.Name,
		Phone:              phone.NormalizeE164(req.Phone),
		Email:              req.Email,
		CurrentInstitution: strings.TrimSpace(req.CurrentInstitution),
		Course:             strings.TrimSpace(req.Course),
		Message:            strings.TrimSpace(req.Message),
		Status:             models.QueryStatusNew,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, internalError(err, "failed to save query")
	}
	s.logger.Info("student query received", zap.String("query_id", q.ID), zap.String("course", q.Course))
	return q, nil
}

// List returns the filtered view of the most recent enquiries, newest first.
func (s *QueryService) List(ctx context.Context, filter dto.QueryListFilter) ([]models.QueryView, error) {
	state, err := queryFilter(filter.Search, filter.Status, filter.Date, s.formatter.Location())
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, serverRowLimit)
	if err != nil {
		return nil, internalError(err, "failed to load queries")
	}
	filtered := records.Apply(rows, state)
	now := s.now()
	out := make([]models.QueryView, 0, len(filtered))
	for _, q := range filtered {
		out = append(out, s.view(q, now))
	}
	return out, nil
}

// Get returns one enquiry.
func (s *QueryService) Get(ctx context.Context, id string) (*models.QueryView, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "query", "failed to load query")
	}
	view := s.view(*q, s.now())
	return &view, nil
}

// UpdateStatus moves an enquiry along new, contacted, closed. A closed
// enquiry cannot be reopened as new.
func (s *QueryService) UpdateStatus(ctx context.Context, id string, req dto.UpdateQueryStatusRequest) (*models.QueryView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "status must be new, contacted or closed")
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "query", "failed to load query")
	}
	if current.Status == models.QueryStatusClosed && req.Status == models.QueryStatusNew {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a closed query cannot be reopened as new")
	}
	if current.Status != req.Status {
		if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
			return nil, notFoundOr(err, "query", "failed to update query")
		}
		current.Status = req.Status
		current.UpdatedAt = s.now().UTC()
	}
	view := s.view(*current, s.now())
	return &view, nil
}

// Delete removes an enquiry.
func (s *QueryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "query", "failed to delete query")
	}
	s.logger.Info("student query deleted", zap.String("query_id", id))
	return nil
}

func (s *QueryService) view(q models.StudentQuery, now time.Time) models.QueryView {
	return models.QueryView{
		StudentQuery:     q,
		CreatedAtDisplay: s.formatter.Format(q.CreatedAt),
		IsNew:            records.IsNew(q.CreatedAt, now, s.newWindow),
	}
}
