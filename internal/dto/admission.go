package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// AdmissionRequest creates or replaces an admission record.
type AdmissionRequest struct {
	StudentName   string              `form:"student_name" json:"student_name" validate:"required,max=120"`
	Course        string              `form:"course" json:"course" validate:"required,max=120"`
	College       string              `form:"college" json:"college" validate:"required,max=200"`
	AdmissionDate string              `form:"admission_date" json:"admission_date" validate:"required,datetime=2006-01-02"`
	ConsultantID  string              `form:"consultant_id" json:"consultant_id" validate:"required"`
	PayoutAmount  float64             `form:"payout_amount" json:"payout_amount" validate:"gte=0"`
	PayoutStatus  models.PayoutStatus `form:"payout_status" json:"payout_status"`
}

// AdmissionListFilter narrows the admin admissions table.
type AdmissionListFilter struct {
	Search       string `form:"search"`
	PayoutStatus string `form:"payout_status"`
	ConsultantID string `form:"consultant_id"`
}
