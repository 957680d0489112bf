package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/repository"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/phone"
)

type callStore interface {
	Create(ctx context.Context, call *models.CallLog) error
	ListByConsultant(ctx context.Context, consultantID string, limit int) ([]models.CallLog, error)
	CountByType(ctx context.Context, consultantID string) ([]models.CallTypeCount, error)
	DeleteScope(ctx context.Context, scope repository.DeleteScope) (int64, error)
}

type adminPasswordVerifier interface {
	VerifyAdminPassword(password string) error
}

// ConsultantCalls is a consultant's own call page.
type ConsultantCalls struct {
	Stats models.CallStats `json:"stats"`
	Calls []models.CallLog `json:"calls"`
}

// CallService logs consultant calls and aggregates their outcomes.
type CallService struct {
	repo        callStore
	consultants consultantLookup
	auth        adminPasswordVerifier
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCallService constructs the service.
func NewCallService(repo callStore, consultants consultantLookup, auth adminPasswordVerifier, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CallService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CallService{repo: repo, consultants: consultants, auth: auth, cache: cache, validator: validate, logger: logger}
}

// Log records a failed or attempted call. Successful calls are only logged
// through report submission.
func (s *CallService) Log(ctx context.Context, consultantID string, req dto.LogCallRequest) (*models.CallLog, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "call_type must be failed or attempted")
	}
	consultant, err := s.consultants.FindByID(ctx, consultantID)
	if err != nil {
		return nil, notFoundOr(err, "consultant", "failed to load consultant")
	}
	if !consultant.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "consultant account is inactive")
	}
	call := &models.CallLog{
		ConsultantID:   consultant.UserID,
		ConsultantName: consultant.Name,
		CallType:       req.CallType,
		StudentName:    strings.TrimSpace(req.StudentName),
		ContactNumber:  phone.NormalizeE164(req.ContactNumber),
		Remarks:        strings.TrimSpace(req.Remarks),
	}
	if err := s.repo.Create(ctx, call); err != nil {
		return nil, internalError(err, "failed to log call")
	}
	_ = s.cache.Invalidate(ctx, cacheKeyCallOverview+"*")
	return call, nil
}

// ForConsultant returns a consultant's statistics and recent calls.
func (s *CallService) ForConsultant(ctx context.Context, consultantID string) (*ConsultantCalls, error) {
	counts, err := s.repo.CountByType(ctx, consultantID)
	if err != nil {
		return nil, internalError(err, "failed to count calls")
	}
	calls, err := s.repo.ListByConsultant(ctx, consultantID, 0)
	if err != nil {
		return nil, internalError(err, "failed to load calls")
	}
	var stats models.CallStats
	for _, c := range counts {
		stats.Add(c.CallType, c.Count)
	}
	return &ConsultantCalls{Stats: stats, Calls: calls}, nil
}

// Overview aggregates call outcomes overall and per consultant.
func (s *CallService) Overview(ctx context.Context) (*dto.CallOverview, error) {
	overview, hit, err := Remember(ctx, s.cache, cacheKeyCallOverview, 0, s.loadOverview)
	if err != nil {
		return nil, err
	}
	overview.Cached = hit
	return &overview, nil
}

func (s *CallService) loadOverview(ctx context.Context) (dto.CallOverview, error) {
	counts, err := s.repo.CountByType(ctx, "")
	if err != nil {
		return dto.CallOverview{}, internalError(err, "failed to count calls")
	}
	overview := dto.CallOverview{ConsultantStats: make(map[string]models.ConsultantCallStats)}
	for _, c := range counts {
		overview.OverallStats.Add(c.CallType, c.Count)
		entry := overview.ConsultantStats[c.ConsultantID]
		entry.ConsultantName = c.ConsultantName
		entry.Add(c.CallType, c.Count)
		overview.ConsultantStats[c.ConsultantID] = entry
	}
	return overview, nil
}

// DeleteForConsultant clears a consultant's call statistics after the admin
// password is re-confirmed.
func (s *CallService) DeleteForConsultant(ctx context.Context, consultantID, password string) (int64, error) {
	if err := s.auth.VerifyAdminPassword(password); err != nil {
		return 0, err
	}
	if strings.TrimSpace(consultantID) == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "consultant id is required")
	}
	n, err := s.repo.DeleteScope(ctx, repository.DeleteScope{ConsultantID: consultantID})
	if err != nil {
		return 0, internalError(err, "failed to delete calls")
	}
	_ = s.cache.Invalidate(ctx, cacheKeyCallOverview+"*")
	s.logger.Info("consultant calls deleted", zap.String("consultant_id", consultantID), zap.Int64("deleted", n))
	return n, nil
}
