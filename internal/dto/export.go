package dto

import "github.com/noah-isme/edu-advisor-api/internal/models"

// ExportJobRequest queues an asynchronous export.
type ExportJobRequest struct {
	Dataset      models.ExportDataset `json:"dataset" validate:"required,oneof=queries consultant_reports admissions calls"`
	Format       models.ExportFormat  `json:"format" validate:"required,oneof=csv pdf"`
	Search       string               `json:"search"`
	Status       string               `json:"status"`
	ConsultantID string               `json:"consultant_id"`
	Consultant   string               `json:"consultant"`
	Date         string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CallType     string               `json:"call_type"`
}

// ExportJobResponse exposes job progress.
type ExportJobResponse struct {
	ID        string               `json:"id"`
	Dataset   models.ExportDataset `json:"dataset"`
	Status    models.ExportStatus  `json:"status"`
	Progress  int                  `json:"progress"`
	ResultURL *string              `json:"result_url,omitempty"`
	Error     *string              `json:"error,omitempty"`
}

// ExportRequest is a synchronous download. The filters are the list
// endpoint's own query parameters.
type ExportRequest struct {
	Format        models.ExportFormat `form:"format" validate:"omitempty,oneof=csv pdf"`
	Search        string              `form:"search"`
	Status        string              `form:"status"`
	InterestScope string              `form:"interest_scope"`
	PayoutStatus  string              `form:"payout_status"`
	Consultant    string              `form:"consultant"`
	ConsultantID  string              `form:"consultant_id"`
	Date          string              `form:"date"`
	CallType      string              `form:"call_type"`
}

// Params maps the request onto export params for dataset, picking the
// dataset's status-like column.
func (r ExportRequest) Params(dataset models.ExportDataset) models.ExportJobParams {
	status := r.Status
	switch dataset {
	case models.ExportConsultantReports:
		status = r.InterestScope
	case models.ExportAdmissions:
		status = r.PayoutStatus
	}
	return models.ExportJobParams{
		Format:       r.Format,
		Search:       r.Search,
		Status:       status,
		ConsultantID: r.ConsultantID,
		Consultant:   r.Consultant,
		Date:         r.Date,
		CallType:     r.CallType,
	}
}
