package records

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// FieldConstraint pins one field to an expected value.
type FieldConstraint struct {
	Field string
	Value string
}

// FilterState is the set of criteria a dashboard user has chosen. The zero
// value constrains nothing.
type FilterState struct {
	SearchTerm   string
	SearchFields []string
	Equals       []FieldConstraint
	DateField    string
	Date         *civil.Date
	Location     *time.Location
}

// Reset clears every criterion while keeping the configured search fields,
// date field and location.
func (s *FilterState) Reset() {
	s.SearchTerm = ""
	s.Equals = nil
	s.Date = nil
}

// WithEquals returns a copy of s with field pinned to value, replacing any
// earlier constraint on the same field.
func (s FilterState) WithEquals(field, value string) FilterState {
	out := s
	out.Equals = make([]FieldConstraint, 0, len(s.Equals)+1)
	for _, c := range s.Equals {
		if c.Field != field {
			out.Equals = append(out.Equals, c)
		}
	}
	out.Equals = append(out.Equals, FieldConstraint{Field: field, Value: value})
	return out
}

// Constrained reports whether any criterion narrows the view.
func (s FilterState) Constrained() bool {
	if s.SearchTerm != "" || s.Date != nil {
		return true
	}
	for _, c := range s.Equals {
		if c.Value != "" && c.Value != All {
			return true
		}
	}
	return false
}

// Compile builds the conjunction of every active criterion.
func Compile[R Record](s FilterState) Predicate[R] {
	preds := []Predicate[R]{TextSearch[R](s.SearchFields, s.SearchTerm)}
	for _, c := range s.Equals {
		preds = append(preds, FieldEquals[R](c.Field, c.Value))
	}
	dateField := s.DateField
	if dateField == "" {
		dateField = FieldCreatedAt
	}
	preds = append(preds, DateEquals[R](dateField, s.Date, s.Location))
	return And(preds...)
}

// Apply derives the filtered view from scratch. Input order is preserved and
// the input slice is never modified.
func Apply[R Record](in []R, s FilterState) []R {
	out := make([]R, 0, len(in))
	if len(in) == 0 {
		return out
	}
	match := Compile[R](s)
	for _, r := range in {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD query parameter. Empty input yields nil.
func ParseDate(raw string) (*civil.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return &d, nil
}
