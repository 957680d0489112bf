package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExportDataset enumerates exportable record collections.
type ExportDataset string

const (
	ExportQueries           ExportDataset = "queries"
	ExportConsultantReports ExportDataset = "consultant_reports"
	ExportAdmissions        ExportDataset = "admissions"
	ExportCalls             ExportDataset = "calls"
)

// Valid reports whether d is a known dataset.
func (d ExportDataset) Valid() bool {
	switch d {
	case ExportQueries, ExportConsultantReports, ExportAdmissions, ExportCalls:
		return true
	}
	return false
}

// ExportFormat enumerates supported export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob persisted background export metadata.
type ExportJob struct {
	ID           string          `db:"id" json:"id"`
	Dataset      ExportDataset   `db:"dataset" json:"dataset"`
	Params       ExportJobParams `db:"params" json:"params"`
	Status       ExportStatus    `db:"status" json:"status"`
	Progress     int             `db:"progress" json:"progress"`
	ResultURL    *string         `db:"result_url" json:"result_url,omitempty"`
	CreatedBy    string          `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finished_at,omitempty"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
}

// ExportJobParams is the filter and format a job was requested with.
// Persisted as JSONB.
type ExportJobParams struct {
	Format       ExportFormat `json:"format"`
	Search       string       `json:"search,omitempty"`
	Status       string       `json:"status,omitempty"`
	ConsultantID string       `json:"consultant_id,omitempty"`
	Consultant   string       `json:"consultant,omitempty"`
	Date         string       `json:"date,omitempty"`
	CallType     string       `json:"call_type,omitempty"`
}

// Value marshals params to JSON for persistence.
func (p ExportJobParams) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal export job params: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the params struct.
func (p *ExportJobParams) Scan(value interface{}) error {
	if value == nil {
		*p = ExportJobParams{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ExportJobParams", value)
	}
	if len(data) == 0 {
		*p = ExportJobParams{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal export job params: %w", err)
	}
	return nil
}
