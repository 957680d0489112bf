package records

import (
	"time"
)

const (
	// DefaultZone is the operating region of the counselling desk.
	DefaultZone = "Asia/Kolkata"
	// DisplayLayout renders a date with minute-level time.
	DisplayLayout = "02 Jan 2006, 03:04 PM"

	istOffset = 5*time.Hour + 30*time.Minute
)

// TimestampFormatter renders stored UTC instants in the display timezone.
// Output never depends on the process's local timezone.
type TimestampFormatter struct {
	loc    *time.Location
	layout string
}

// NewTimestampFormatter loads zone from the tz database. When the database is
// unavailable it falls back to a fixed offset, which is exact for zones
// without daylight saving such as IST.
func NewTimestampFormatter(zone string, fallback time.Duration) *TimestampFormatter {
	if zone == "" {
		zone = DefaultZone
	}
	if fallback == 0 {
		fallback = istOffset
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.FixedZone(fallbackName(zone), int(fallback/time.Second))
	}
	return &TimestampFormatter{loc: loc, layout: DisplayLayout}
}

// IST returns the formatter for Asia/Kolkata.
func IST() *TimestampFormatter {
	return NewTimestampFormatter(DefaultZone, istOffset)
}

// Location exposes the resolved display zone.
func (f *TimestampFormatter) Location() *time.Location {
	return f.loc
}

// Format renders t in the display zone. The zero instant renders as "".
func (f *TimestampFormatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(f.layout)
}

// Date renders the calendar date of t in the display zone as YYYY-MM-DD.
func (f *TimestampFormatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(time.DateOnly)
}

// IsNew reports whether created is less than window before now. It is
// evaluated against the caller's clock on every call.
func IsNew(created, now time.Time, window time.Duration) bool {
	if created.IsZero() {
		return false
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return now.Sub(created) < window
}

func fallbackName(zone string) string {
	if zone == DefaultZone {
		return "IST"
	}
	return zone
}
