package records

import "github.com/noah-isme/edu-advisor-api/pkg/export"

// Column projects one export cell out of a record.
type Column[R Record] struct {
	Header string
	Value  func(R) string
}

// FieldColumn exports a named field verbatim.
func FieldColumn[R Record](header, field string) Column[R] {
	return Column[R]{Header: header, Value: func(r R) string { return Lookup(r, field) }}
}

// InstantColumn exports an instant field through the formatter.
func InstantColumn[R Record](header, field string, f *TimestampFormatter) Column[R] {
	return Column[R]{Header: header, Value: func(r R) string {
		at, ok := r.Instant(field)
		if !ok {
			return ""
		}
		return f.Format(at)
	}}
}

// Adapt reuses a layout for a record type W that wraps R.
func Adapt[R, W Record](cols []Column[R], unwrap func(W) R) []Column[W] {
	out := make([]Column[W], len(cols))
	for i, c := range cols {
		value := c.Value
		out[i] = Column[W]{Header: c.Header}
		if value != nil {
			out[i].Value = func(w W) string { return value(unwrap(w)) }
		}
	}
	return out
}

// Project builds the tabular dataset for the exporters. A nil extractor
// yields empty cells.
func Project[R Record](name string, rows []R, cols []Column[R]) export.Dataset {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			if c.Value != nil {
				line[i] = c.Value(r)
			}
		}
		out = append(out, line)
	}
	return export.Dataset{Name: name, Headers: headers, Rows: out}
}
