package dto

// CreateConsultantRequest registers a consultant login.
type CreateConsultantRequest struct {
	UserID   string `form:"user_id" json:"user_id" validate:"required,min=3,max=64"`
	Name     string `form:"name" json:"name" validate:"required,max=120"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

// UpdateConsultantRequest edits a consultant. Empty fields are left alone.
type UpdateConsultantRequest struct {
	Name     string `form:"name" json:"name" validate:"omitempty,max=120"`
	Password string `form:"password" json:"password" validate:"omitempty,min=6"`
	Active   *bool  `form:"active" json:"active"`
}

// ConsultantResponse omits the password hash.
type ConsultantResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
