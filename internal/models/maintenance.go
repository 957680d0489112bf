package models

import "cloud.google.com/go/civil"

// BulkDeleteType selects which collection a bulk delete clears.
type BulkDeleteType string

const (
	BulkDeleteReports    BulkDeleteType = "reports"
	BulkDeleteQueries    BulkDeleteType = "queries"
	BulkDeleteCalls      BulkDeleteType = "calls"
	BulkDeleteAdmissions BulkDeleteType = "admissions"
	BulkDeleteAll        BulkDeleteType = "all"
)

// Valid reports whether t is a known bulk delete type.
func (t BulkDeleteType) Valid() bool {
	switch t {
	case BulkDeleteReports, BulkDeleteQueries, BulkDeleteCalls, BulkDeleteAdmissions, BulkDeleteAll:
		return true
	}
	return false
}

// DeleteRange narrows a bulk delete. Zero values mean unbounded; both dates
// are inclusive and read in the display timezone.
type DeleteRange struct {
	ConsultantID string
	From         *civil.Date
	To           *civil.Date
}

// BulkDeleteResult reports how many rows each collection lost.
type BulkDeleteResult struct {
	Reports    int64 `json:"reports"`
	Queries    int64 `json:"queries"`
	Calls      int64 `json:"calls"`
	Admissions int64 `json:"admissions"`
}

// Total sums the per-collection counts.
func (r BulkDeleteResult) Total() int64 {
	return r.Reports + r.Queries + r.Calls + r.Admissions
}
