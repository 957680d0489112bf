package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// BulkDeleteRequest removes records by type, consultant and date range.
type BulkDeleteRequest struct {
	Password     string                `form:"password" validate:"required"`
	DeleteType   models.BulkDeleteType `form:"delete_type" validate:"required,oneof=reports queries calls admissions all"`
	ConsultantID string                `form:"consultant_id"`
	StartDate    string                `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string                `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}
