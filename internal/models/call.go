package models

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// CallType classifies the outcome of a consultant's call.
type CallType string

const (
	CallSuccessful CallType = "successful"
	CallFailed     CallType = "failed"
	CallAttempted  CallType = "attempted"
)

// ManualCallTypes may be logged directly; successful calls are only logged
// by submitting a report.
var ManualCallTypes = []CallType{CallFailed, CallAttempted}

// CallLog records one call made by a consultant.
type CallLog struct {
	ID             string    `db:"id" json:"id"`
	ConsultantID   string    `db:"consultant_id" json:"consultant_id"`
	ConsultantName string    `db:"consultant_name" json:"consultant_name"`
	CallType       CallType  `db:"call_type" json:"call_type"`
	StudentName    string    `db:"student_name" json:"student_name"`
	ContactNumber  string    `db:"contact_number" json:"contact_number"`
	Remarks        string    `db:"remarks" json:"remarks"`
	ReportID       *string   `db:"report_id" json:"report_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

var _ records.Record = CallLog{}

func (c CallLog) RecordID() string { return c.ID }

func (c CallLog) Field(name string) (string, bool) {
	switch name {
	case records.FieldID:
		return c.ID, true
	case "consultant_id":
		return c.ConsultantID, true
	case "consultant_name":
		return c.ConsultantName, true
	case "call_type":
		return string(c.CallType), true
	case "student_name":
		return c.StudentName, true
	case "contact_number":
		return c.ContactNumber, true
	case "remarks":
		return c.Remarks, true
	}
	return "", false
}

func (c CallLog) Instant(name string) (time.Time, bool) {
	if name == records.FieldCreatedAt {
		return c.CreatedAt, !c.CreatedAt.IsZero()
	}
	return time.Time{}, false
}

// CallStats aggregates call outcomes.
type CallStats struct {
	TotalCalls      int     `json:"total_calls"`
	SuccessfulCalls int     `json:"successful_calls"`
	FailedCalls     int     `json:"failed_calls"`
	AttemptedCalls  int     `json:"attempted_calls"`
	SuccessRate     float64 `json:"success_rate"`
}

// Add counts n calls of type t.
func (s *CallStats) Add(t CallType, n int) {
	switch t {
	case CallSuccessful:
		s.SuccessfulCalls += n
	case CallFailed:
		s.FailedCalls += n
	case CallAttempted:
		s.AttemptedCalls += n
	default:
		return
	}
	s.TotalCalls += n
	s.SuccessRate = 0
	if s.TotalCalls > 0 {
		s.SuccessRate = float64(s.SuccessfulCalls) * 100 / float64(s.TotalCalls)
	}
}

// ConsultantCallStats is one consultant's slice of the admin call overview.
type ConsultantCallStats struct {
	ConsultantName string `json:"consultant_name"`
	CallStats
}

// CallTypeCount is one aggregated row from the call log.
type CallTypeCount struct {
	ConsultantID   string   `db:"consultant_id"`
	ConsultantName string   `db:"consultant_name"`
	CallType       CallType `db:"call_type"`
	Count          int      `db:"count"`
}
