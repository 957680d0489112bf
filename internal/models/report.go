package models

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// InterestScope grades how likely a student is to convert.
type InterestScope string

const (
	InterestActive          InterestScope = "ACTIVELY INTERESTED"
	InterestLess            InterestScope = "LESS INTERESTED"
	InterestRecall          InterestScope = "RECALLING NEEDED"
	InterestDropout         InterestScope = "DROPOUT THIS YEAR"
	InterestCollegeSelected InterestScope = "ALREADY COLLEGE SELECTED"
	InterestNone            InterestScope = "NOT INTERESTED"
)

// InterestScopes lists the accepted scopes in display order.
var InterestScopes = []InterestScope{
	InterestActive, InterestLess, InterestRecall, InterestDropout, InterestCollegeSelected, InterestNone,
}

// Valid reports whether s is a known scope.
func (s InterestScope) Valid() bool {
	for _, v := range InterestScopes {
		if v == s {
			return true
		}
	}
	return false
}

// ReportSearchFields are matched by the admin report search box.
var ReportSearchFields = []string{"student_name", "contact_number", "institution_name", "consultant_name"}

// ConsultantReport is one entry of a consultant's daily calling report.
type ConsultantReport struct {
	ID                        string        `db:"id" json:"id"`
	ConsultantID              string        `db:"consultant_id" json:"consultant_id"`
	ConsultantName            string        `db:"consultant_name" json:"consultant_name"`
	StudentName               string        `db:"student_name" json:"student_name"`
	ContactNumber             string        `db:"contact_number" json:"contact_number"`
	InstitutionName           string        `db:"institution_name" json:"institution_name"`
	CompetitiveExamPreference string        `db:"competitive_exam_preference" json:"competitive_exam_preference"`
	CareerInterest            string        `db:"career_interest" json:"career_interest"`
	CollegeInterest           string        `db:"college_interest" json:"college_interest"`
	InterestScope             InterestScope `db:"interest_scope" json:"interest_scope"`
	OtherRemarks              string        `db:"other_remarks" json:"other_remarks"`
	CreatedAt                 time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt                 time.Time     `db:"updated_at" json:"updated_at"`
}

var _ records.Record = ConsultantReport{}

func (r ConsultantReport) RecordID() string { return r.ID }

func (r ConsultantReport) Field(name string) (string, bool) {
	switch name {
	case records.FieldID:
		return r.ID, true
	case "consultant_id":
		return r.ConsultantID, true
	case "consultant_name":
		return r.ConsultantName, true
	case "student_name":
		return r.StudentName, true
	case "contact_number":
		return r.ContactNumber, true
	case "institution_name":
		return r.InstitutionName, true
	case "competitive_exam_preference":
		return r.CompetitiveExamPreference, true
	case "career_interest":
		return r.CareerInterest, true
	case "college_interest":
		return r.CollegeInterest, true
	case "interest_scope":
		return string(r.InterestScope), true
	case "other_remarks":
		return r.OtherRemarks, true
	}
	return "", false
}

func (r ConsultantReport) Instant(name string) (time.Time, bool) {
	switch name {
	case records.FieldCreatedAt:
		return r.CreatedAt, !r.CreatedAt.IsZero()
	case "updated_at":
		return r.UpdatedAt, !r.UpdatedAt.IsZero()
	}
	return time.Time{}, false
}

// GroupReportsByConsultant buckets reports by consultant name, preserving
// the order of the input inside each bucket.
func GroupReportsByConsultant(reports []ConsultantReport) map[string][]ConsultantReport {
	out := make(map[string][]ConsultantReport)
	for _, r := range reports {
		out[r.ConsultantName] = append(out[r.ConsultantName], r)
	}
	return out
}
