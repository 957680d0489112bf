package dto

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

// AdminLoginRequest is the back-office login.
type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ConsultantLoginRequest is sent as query parameters.
type ConsultantLoginRequest struct {
	UserID   string `form:"user_id" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginResponse carries the issued session.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Role      models.Role `json:"role"`
	SubjectID string      `json:"subject_id"`
	Name      string      `json:"name"`
}
