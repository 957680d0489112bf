package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// SubmitReportRequest is one daily calling report.
type SubmitReportRequest struct {
	StudentName               string               `json:"student_name" validate:"required,max=120"`
	ContactNumber             string               `json:"contact_number" validate:"required,max=32"`
	InstitutionName           string               `json:"institution_name" validate:"max=200"`
	CompetitiveExamPreference string               `json:"competitive_exam_preference" validate:"max=200"`
	CareerInterest            string               `json:"career_interest" validate:"max=200"`
	CollegeInterest           string               `json:"college_interest" validate:"max=200"`
	InterestScope             models.InterestScope `json:"interest_scope" validate:"required"`
	OtherRemarks              string               `json:"other_remarks" validate:"max=2000"`
}

// ReportListFilter mirrors the admin report controls.
type ReportListFilter struct {
	Consultant string `form:"consultant"`
	Date       string `form:"date"`
	Search     string `form:"search"`
	Scope      string `form:"interest_scope"`
}
