package service

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// serverRowLimit bounds how many recent rows the dashboards filter over.
const serverRowLimit = 1000

func parseFilterDate(raw string) (records.FilterState, error) {
	d, err := records.ParseDate(raw)
	if err != nil {
		return records.FilterState{}, validationError(err, "date must be formatted as YYYY-MM-DD")
	}
	return records.FilterState{Date: d}, nil
}

func queryFilter(search, status, date string, loc *time.Location) (records.FilterState, error) {
	if status != "" && status != records.All && !models.QueryStatus(status).Valid() {
		return records.FilterState{}, appErrors.Clone(appErrors.ErrValidation, "unknown query status")
	}
	state, err := parseFilterDate(date)
	if err != nil {
		return state, err
	}
	state.SearchTerm = search
	state.SearchFields = models.QuerySearchFields
	state.Location = loc
	return state.WithEquals(records.FieldStatus, status), nil
}

func reportFilter(search, consultant, scope, date string, loc *time.Location) (records.FilterState, error) {
	if scope != "" && scope != records.All && !models.InterestScope(scope).Valid() {
		return records.FilterState{}, appErrors.Clone(appErrors.ErrValidation, "unknown interest scope")
	}
	state, err := parseFilterDate(date)
	if err != nil {
		return state, err
	}
	state.SearchTerm = search
	state.SearchFields = models.ReportSearchFields
	state.Location = loc
	return state.WithEquals("consultant_name", consultant).WithEquals("interest_scope", scope), nil
}

func admissionFilter(search, payoutStatus, consultantID string) (records.FilterState, error) {
	if payoutStatus != "" && payoutStatus != records.All && !models.PayoutStatus(payoutStatus).Valid() {
		return records.FilterState{}, appErrors.Clone(appErrors.ErrValidation, "unknown payout status")
	}
	state := records.FilterState{SearchTerm: search, SearchFields: models.AdmissionSearchFields}
	return state.WithEquals("payout_status", payoutStatus).WithEquals("consultant_id", consultantID), nil
}

func callFilter(search, consultantID, callType, date string, loc *time.Location) (records.FilterState, error) {
	state, err := parseFilterDate(date)
	if err != nil {
		return state, err
	}
	state.SearchTerm = search
	state.SearchFields = []string{"student_name", "contact_number", "remarks"}
	state.Location = loc
	return state.WithEquals("consultant_id", consultantID).WithEquals("call_type", callType), nil
}
