package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role scopes what a session may do.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleConsultant Role = "CONSULTANT"
)

// JWTClaims represents the JWT payload for access tokens. SubjectID is the
// admin username or the consultant's user id.
type JWTClaims struct {
	SubjectID string `json:"sub_id"`
	Role      Role   `json:"role"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login. The token is opaque to
// clients and expires at ExpiresAt.
type Session struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"`
	Role      Role      `json:"role"`
	SubjectID string    `json:"subject_id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}
