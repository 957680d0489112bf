package models

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// QueryStatus tracks how far the desk has progressed with an enquiry.
type QueryStatus string

const (
	QueryStatusNew       QueryStatus = "new"
	QueryStatusContacted QueryStatus = "contacted"
	QueryStatusClosed    QueryStatus = "closed"
)

// Valid reports whether s is a known status.
func (s QueryStatus) Valid() bool {
	switch s {
	case QueryStatusNew, QueryStatusContacted, QueryStatusClosed:
		return true
	}
	return false
}

// QuerySearchFields are matched by the free-text search box.
var QuerySearchFields = []string{"name", "email", "phone", "course"}

// StudentQuery is an enquiry submitted through the public contact form.
type StudentQuery struct {
	ID                 string      `db:"id" json:"id"`
	Name               string      `db:"name" json:"name"`
	Phone              string      `db:"phone" json:"phone"`
	Email              string      `db:"email" json:"email"`
	CurrentInstitution string      `db:"current_institution" json:"current_institution"`
	Course             string      `db:"course" json:"course"`
	Message            string      `db:"message" json:"message"`
	Status             QueryStatus `db:"status" json:"status"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

var _ records.Record = StudentQuery{}

func (q StudentQuery) RecordID() string { return q.ID }

func (q StudentQuery) Field(name string) (string, bool) {
	switch name {
	case records.FieldID:
		return q.ID, true
	case "name":
		return q.Name, true
	case "phone":
		return q.Phone, true
	case "email":
		return q.Email, true
	case "current_institution":
		return q.CurrentInstitution, true
	case "course":
		return q.Course, true
	case "message":
		return q.Message, true
	case records.FieldStatus:
		return string(q.Status), true
	}
	return "", false
}

func (q StudentQuery) Instant(name string) (time.Time, bool) {
	switch name {
	case records.FieldCreatedAt:
		return q.CreatedAt, !q.CreatedAt.IsZero()
	case "updated_at":
		return q.UpdatedAt, !q.UpdatedAt.IsZero()
	}
	return time.Time{}, false
}

// QueryView decorates a query with display-time fields.
type QueryView struct {
	StudentQuery
	CreatedAtDisplay string `json:"created_at_display"`
	IsNew            bool   `json:"is_new"`
}
