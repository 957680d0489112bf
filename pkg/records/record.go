// Package records holds the in-memory filter and export engine shared by the
// admin and consultant dashboards: composable predicates, the AND pipeline that
// derives a filtered view, a token-guarded record store, column projection for
// exports and display-timezone formatting.
package records

import "time"

// Record is one row of a domain dataset (query, report, admission, call log).
// Implementations expose their string fields by name so the engine can search
// and project them without knowing the concrete type.
type Record interface {
	RecordID() string
	// Field returns the string-coerced value of a named field.
	Field(name string) (string, bool)
	// Instant returns a time-valued field such as created_at.
	Instant(name string) (time.Time, bool)
}

// Well-known field names shared by every dataset.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldStatus    = "status"
)

// Lookup returns the named field or "" when the record does not carry it.
func Lookup(r Record, name string) string {
	v, ok := r.Field(name)
	if !ok {
		return ""
	}
	return v
}
