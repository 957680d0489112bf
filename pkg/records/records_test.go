package records

import (
	"time"
)

type row struct {
	id      string
	fields  map[string]string
	created time.Time
}

func (r row) RecordID() string { return r.id }

func (r row) Field(name string) (string, bool) {
	if name == FieldID {
		return r.id, true
	}
	v, ok := r.fields[name]
	return v, ok
}

func (r row) Instant(name string) (time.Time, bool) {
	if name != FieldCreatedAt || r.created.IsZero() {
		return time.Time{}, false
	}
	return r.created, true
}

func sample() []row {
	return []row{
		{id: "1", fields: map[string]string{"name": "Ravi", "phone": "9000000001", "status": "new"}, created: time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)},
		{id: "2", fields: map[string]string{"name": "Asha", "phone": "9000000002", "status": "closed"}, created: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
	}
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.id
	}
	return out
}
