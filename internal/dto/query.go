package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// CreateQueryRequest is the public enquiry form.
type CreateQueryRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Phone              string `json:"phone" validate:"required,max=32"`
	Email              string `json:"email" validate:"required,email"`
	CurrentInstitution string `json:"current_institution" validate:"max=200"`
	Course             string `json:"course" validate:"required,max=120"`
	Message            string `json:"message" validate:"max=2000"`
}

// QueryListFilter mirrors the admin dashboard controls.
type QueryListFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Date   string `form:"date"`
}

// UpdateQueryStatusRequest changes one enquiry's status.
type UpdateQueryStatusRequest struct {
	Status models.QueryStatus `form:"status" json:"status" validate:"required,oneof=new contacted closed"`
}
