package records

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// All is the sentinel that disables an equality constraint.
const All = "all"

// Predicate reports whether a record belongs to the filtered view.
type Predicate[R Record] func(R) bool

// Any matches every record.
func Any[R Record]() Predicate[R] {
	return func(R) bool { return true }
}

// TextSearch matches records where term occurs, ignoring case, inside any of
// the named fields. Phone numbers are plain strings here, so partial digit
// runs match. An empty term matches everything.
func TextSearch[R Record](fields []string, term string) Predicate[R] {
	if term == "" {
		return Any[R]()
	}
	needle := strings.ToLower(term)
	names := append([]string(nil), fields...)
	return func(r R) bool {
		for _, name := range names {
			if strings.Contains(strings.ToLower(Lookup(r, name)), needle) {
				return true
			}
		}
		return false
	}
}

// FieldEquals matches records whose field equals expected exactly. The All
// sentinel and the empty string both mean "no constraint".
func FieldEquals[R Record](field, expected string) Predicate[R] {
	if expected == All || expected == "" {
		return Any[R]()
	}
	return func(r R) bool {
		v, ok := r.Field(field)
		return ok && v == expected
	}
}

// DateEquals matches records whose instant field falls on day when viewed in
// loc. A nil day matches everything; a nil loc means time.Local, resolved at
// comparison time. Records without the instant never match.
func DateEquals[R Record](field string, day *civil.Date, loc *time.Location) Predicate[R] {
	if day == nil {
		return Any[R]()
	}
	want := *day
	return func(r R) bool {
		at, ok := r.Instant(field)
		if !ok || at.IsZero() {
			return false
		}
		zone := loc
		if zone == nil {
			zone = time.Local
		}
		return civil.DateOf(at.In(zone)) == want
	}
}

// And combines predicates; an empty list matches everything.
func And[R Record](preds ...Predicate[R]) Predicate[R] {
	active := make([]Predicate[R], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(r R) bool {
		for _, p := range active {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
