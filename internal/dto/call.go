package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// LogCallRequest records a call that produced no report.
type LogCallRequest struct {
	CallType      models.CallType `form:"call_type" json:"call_type" validate:"required,oneof=failed attempted"`
	StudentName   string          `form:"student_name" json:"student_name" validate:"max=120"`
	ContactNumber string          `form:"contact_number" json:"contact_number" validate:"max=32"`
	Remarks       string          `form:"remarks" json:"remarks" validate:"max=2000"`
}

// CallOverview is the admin call statistics page.
type CallOverview struct {
	OverallStats    models.CallStats                      `json:"overall_stats"`
	ConsultantStats map[string]models.ConsultantCallStats `json:"consultant_stats"`
	Cached          bool                                  `json:"-"`
}
