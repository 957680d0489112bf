package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type consultantAccounts interface {
	FindByID(ctx context.Context, userID string) (*models.Consultant, error)
}

type sessionStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret            string
	Expiry            time.Duration
	Issuer            string
	AdminUsername     string
	AdminPasswordHash string
}

// AuthService issues and validates admin and consultant sessions. All
// password checks happen here against bcrypt hashes.
type AuthService struct {
	consultants consultantAccounts
	sessions    sessionStore
	validator   *validator.Validate
	logger      *zap.Logger
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(consultants consultantAccounts, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Expiry <= 0 {
		config.Expiry = 12 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "edu-advisor-api"
	}
	return &AuthService{consultants: consultants, sessions: sessions, validator: validate, logger: logger, config: config, now: time.Now}
}

// AdminLogin authenticates the back-office administrator.
func (s *AuthService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "username and password are required")
	}
	if s.config.AdminPasswordHash == "" {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "admin login is not configured")
	}
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		s.logger.Info("admin login rejected", zap.String("username", req.Username))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid username or password")
	}
	return s.issue(models.RoleAdmin, s.config.AdminUsername, "Administrator")
}

// ConsultantLogin authenticates a consultant by user id.
func (s *AuthService) ConsultantLogin(ctx context.Context, req dto.ConsultantLoginRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "user id and password are required")
	}
	consultant, err := s.consultants.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid user id or password")
		}
		return nil, internalError(err, "failed to load consultant")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(consultant.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid user id or password")
	}
	if !consultant.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "consultant account is inactive")
	}
	return s.issue(models.RoleConsultant, consultant.UserID, consultant.Name)
}

// ValidateToken parses an access token and rejects revoked sessions.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	if s.sessions != nil {
		revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "session store unavailable")
		}
		if revoked {
			return nil, appErrors.ErrTokenRevoked
		}
	}
	return claims, nil
}

// Logout ends the session identified by claims until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims == nil || claims.ID == "" {
		return appErrors.ErrUnauthorized
	}
	if s.sessions == nil {
		return nil
	}
	expiresAt := s.now().Add(s.config.Expiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.sessions.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return internalError(err, "failed to end session")
	}
	s.logger.Info("session ended", zap.String("role", string(claims.Role)), zap.String("subject", claims.SubjectID))
	return nil
}

// VerifyAdminPassword re-confirms the administrator password before
// destructive operations.
func (s *AuthService) VerifyAdminPassword(password string) error {
	if password == "" {
		return appErrors.Clone(appErrors.ErrValidation, "password is required")
	}
	if s.config.AdminPasswordHash == "" {
		return appErrors.Clone(appErrors.ErrUnavailable, "admin login is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(password)); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect admin password")
	}
	return nil
}

func (s *AuthService) issue(role models.Role, subjectID, name string) (*models.Session, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiry)
	tokenID := uuid.NewString()
	claims := &models.JWTClaims{
		SubjectID: subjectID,
		Role:      role,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.config.Issuer,
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}
	return &models.Session{
		Token:     signed,
		TokenID:   tokenID,
		Role:      role,
		SubjectID: subjectID,
		Name:      name,
		ExpiresAt: expiresAt,
	}, nil
}
