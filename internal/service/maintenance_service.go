package service

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/repository"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type scopedDeleter interface {
	DeleteScope(ctx context.Context, scope repository.DeleteScope) (int64, error)
}

// MaintenanceTargets lists the collections a bulk delete may clear.
type MaintenanceTargets struct {
	Reports    scopedDeleter
	Queries    scopedDeleter
	Calls      scopedDeleter
	Admissions scopedDeleter
}

// MaintenanceService runs password-guarded bulk deletes.
type MaintenanceService struct {
	targets   MaintenanceTargets
	auth      adminPasswordVerifier
	cache     *CacheService
	location  *time.Location
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaintenanceService constructs the service. Date ranges are read in loc.
func NewMaintenanceService(targets MaintenanceTargets, auth adminPasswordVerifier, cache *CacheService, loc *time.Location, validate *validator.Validate, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &MaintenanceService{targets: targets, auth: auth, cache: cache, location: loc, validator: validate, logger: logger}
}

// BulkDelete removes the selected collection inside the optional consultant
// and inclusive date range. Student queries have no consultant and ignore it.
func (s *MaintenanceService) BulkDelete(ctx context.Context, req dto.BulkDeleteRequest) (*models.BulkDeleteResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk delete request")
	}
	if err := s.auth.VerifyAdminPassword(req.Password); err != nil {
		return nil, err
	}
	rng, err := parseDeleteRange(req)
	if err != nil {
		return nil, err
	}
	scope := s.scope(rng)

	var result models.BulkDeleteResult
	run := func(t models.BulkDeleteType) bool {
		return req.DeleteType == models.BulkDeleteAll || req.DeleteType == t
	}
	steps := []struct {
		kind   models.BulkDeleteType
		target scopedDeleter
		count  *int64
	}{
		{models.BulkDeleteReports, s.targets.Reports, &result.Reports},
		{models.BulkDeleteQueries, s.targets.Queries, &result.Queries},
		{models.BulkDeleteCalls, s.targets.Calls, &result.Calls},
		{models.BulkDeleteAdmissions, s.targets.Admissions, &result.Admissions},
	}
	for _, step := range steps {
		if !run(step.kind) || step.target == nil {
			continue
		}
		n, err := step.target.DeleteScope(ctx, scope)
		if err != nil {
			return nil, internalError(err, "failed to delete "+string(step.kind))
		}
		*step.count = n
	}

	if run(models.BulkDeleteCalls) || run(models.BulkDeleteReports) {
		_ = s.cache.Invalidate(ctx, cacheKeyCallOverview+"*")
	}
	s.logger.Warn("bulk delete executed",
		zap.String("delete_type", string(req.DeleteType)),
		zap.String("consultant_id", req.ConsultantID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int64("deleted", result.Total()))
	return &result, nil
}

// scope converts the inclusive civil range into [from 00:00, to+1 00:00).
func (s *MaintenanceService) scope(rng models.DeleteRange) repository.DeleteScope {
	scope := repository.DeleteScope{ConsultantID: rng.ConsultantID}
	if rng.From != nil {
		from := rng.From.In(s.location)
		scope.From = &from
	}
	if rng.To != nil {
		until := rng.To.AddDays(1).In(s.location)
		scope.Until = &until
	}
	return scope
}

func parseDeleteRange(req dto.BulkDeleteRequest) (models.DeleteRange, error) {
	rng := models.DeleteRange{ConsultantID: req.ConsultantID}
	if req.StartDate != "" {
		d, err := civil.ParseDate(req.StartDate)
		if err != nil {
			return rng, validationError(err, "start_date must be formatted as YYYY-MM-DD")
		}
		rng.From = &d
	}
	if req.EndDate != "" {
		d, err := civil.ParseDate(req.EndDate)
		if err != nil {
			return rng, validationError(err, "end_date must be formatted as YYYY-MM-DD")
		}
		rng.To = &d
	}
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return rng, appErrors.Clone(appErrors.ErrValidation, "end_date must not be before start_date")
	}
	return rng, nil
}
