package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type consultantStore interface {
	FindByID(ctx context.Context, userID string) (*models.Consultant, error)
	List(ctx context.Context) ([]models.Consultant, error)
	Create(ctx context.Context, c *models.Consultant) error
	Update(ctx context.Context, c *models.Consultant) error
	Delete(ctx context.Context, userID string) error
}

// ConsultantService manages consultant accounts.
type ConsultantService struct {
	repo      consultantStore
	validator *validator.Validate
	logger    *zap.Logger
	cost      int
}

// NewConsultantService constructs the service.
func NewConsultantService(repo consultantStore, validate *validator.Validate, logger *zap.Logger) *ConsultantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ConsultantService{repo: repo, validator: validate, logger: logger, cost: bcrypt.DefaultCost}
}

// List returns every consultant without password hashes.
func (s *ConsultantService) List(ctx context.Context) ([]dto.ConsultantResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list consultants")
	}
	out := make([]dto.ConsultantResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, toConsultantResponse(c))
	}
	return out, nil
}

// Get resolves an active or inactive consultant by user id.
func (s *ConsultantService) Get(ctx context.Context, userID string) (*models.Consultant, error) {
	c, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "consultant", "failed to load consultant")
	}
	return c, nil
}

// Create registers a consultant with a hashed password.
func (s *ConsultantService) Create(ctx context.Context, req dto.CreateConsultantRequest) (*dto.ConsultantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid consultant payload")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, internalError(err, "failed to hash password")
	}
	c := &models.Consultant{UserID: req.UserID, Name: req.Name, PasswordHash: string(hash), Active: true}
	if err := s.repo.Create(ctx, c); err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "user id already exists")
		}
		return nil, internalError(err, "failed to create consultant")
	}
	s.logger.Info("consultant created", zap.String("user_id", c.UserID))
	resp := toConsultantResponse(*c)
	return &resp, nil
}

// Update changes name, password or active flag.
func (s *ConsultantService) Update(ctx context.Context, userID string, req dto.UpdateConsultantRequest) (*dto.ConsultantResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid consultant payload")
	}
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
		if err != nil {
			return nil, internalError(err, "failed to hash password")
		}
		c.PasswordHash = string(hash)
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, notFoundOr(err, "consultant", "failed to update consultant")
	}
	resp := toConsultantResponse(*c)
	return &resp, nil
}

// Delete removes a consultant login. Historical reports stay.
func (s *ConsultantService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return notFoundOr(err, "consultant", "failed to delete consultant")
	}
	s.logger.Info("consultant deleted", zap.String("user_id", userID))
	return nil
}

func toConsultantResponse(c models.Consultant) dto.ConsultantResponse {
	return dto.ConsultantResponse{UserID: c.UserID, Name: c.Name, Active: c.Active}
}
