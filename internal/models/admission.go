package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// PayoutStatus tracks the referral commission for an admission.
type PayoutStatus string

const (
	PayoutNotCredited PayoutStatus = "PAYOUT NOT CREDITED YET"
	PayoutReflected   PayoutStatus = "PAYOUT REFLECTED"
	PayoutCommission  PayoutStatus = "CONSULTANT'S COMMISION GIVEN"
)

// PayoutStatuses lists the accepted statuses in workflow order.
var PayoutStatuses = []PayoutStatus{PayoutNotCredited, PayoutReflected, PayoutCommission}

// Valid reports whether s is a known payout status.
func (s PayoutStatus) Valid() bool {
	for _, v := range PayoutStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Date is a calendar day stored in a DATE column and rendered as YYYY-MM-DD.
type Date struct {
	civil.Date
}

// NewDate wraps a civil date.
func NewDate(d civil.Date) Date { return Date{Date: d} }

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid date %v", d.Date)
	}
	return d.String(), nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Date = civil.DateOf(v)
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	case nil:
		d.Date = civil.Date{}
		return nil
	}
	return fmt.Errorf("unsupported type %T for Date", value)
}

func (d *Date) parse(raw string) error {
	if len(raw) > 10 {
		raw = raw[:10]
	}
	parsed, err := civil.ParseDate(raw)
	if err != nil {
		return err
	}
	d.Date = parsed
	return nil
}

// AdmissionSearchFields are matched by the admissions search box.
var AdmissionSearchFields = []string{"student_name", "course", "college", "consultant_name"}

// Admission is a referral that converted into an enrolment.
type Admission struct {
	ID             string       `db:"id" json:"id"`
	StudentName    string       `db:"student_name" json:"student_name"`
	Course         string       `db:"course" json:"course"`
	College        string       `db:"college" json:"college"`
	AdmissionDate  Date         `db:"admission_date" json:"admission_date"`
	ConsultantID   string       `db:"consultant_id" json:"consultant_id"`
	ConsultantName string       `db:"consultant_name" json:"consultant_name"`
	PayoutAmount   float64      `db:"payout_amount" json:"payout_amount"`
	PayoutStatus   PayoutStatus `db:"payout_status" json:"payout_status"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

var _ records.Record = Admission{}

func (a Admission) RecordID() string { return a.ID }

func (a Admission) Field(name string) (string, bool) {
	switch name {
	case records.FieldID:
		return a.ID, true
	case "student_name":
		return a.StudentName, true
	case "course":
		return a.Course, true
	case "college":
		return a.College, true
	case "admission_date":
		return a.AdmissionDate.String(), a.AdmissionDate.IsValid()
	case "consultant_id":
		return a.ConsultantID, true
	case "consultant_name":
		return a.ConsultantName, true
	case "payout_amount":
		return strconv.FormatFloat(a.PayoutAmount, 'f', 2, 64), true
	case "payout_status":
		return string(a.PayoutStatus), true
	}
	return "", false
}

// Instant exposes admission_date as midnight UTC so date filters can target
// it with a UTC location.
func (a Admission) Instant(name string) (time.Time, bool) {
	switch name {
	case records.FieldCreatedAt:
		return a.CreatedAt, !a.CreatedAt.IsZero()
	case "admission_date":
		if !a.AdmissionDate.IsValid() {
			return time.Time{}, false
		}
		return a.AdmissionDate.In(time.UTC), true
	}
	return time.Time{}, false
}

// PayoutSummary totals a consultant's admissions by payout status.
type PayoutSummary struct {
	TotalAdmissions int                      `json:"total_admissions"`
	TotalPayout     float64                  `json:"total_payout"`
	ByStatus        map[PayoutStatus]int     `json:"by_status"`
	AmountByStatus  map[PayoutStatus]float64 `json:"amount_by_status"`
}

// SummarizePayouts folds admissions into a PayoutSummary.
func SummarizePayouts(admissions []Admission) PayoutSummary {
	s := PayoutSummary{
		ByStatus:       make(map[PayoutStatus]int, len(PayoutStatuses)),
		AmountByStatus: make(map[PayoutStatus]float64, len(PayoutStatuses)),
	}
	for _, status := range PayoutStatuses {
		s.ByStatus[status] = 0
		s.AmountByStatus[status] = 0
	}
	for _, a := range admissions {
		s.TotalAdmissions++
		s.TotalPayout += a.PayoutAmount
		s.ByStatus[a.PayoutStatus]++
		s.AmountByStatus[a.PayoutStatus] += a.PayoutAmount
	}
	return s
}
