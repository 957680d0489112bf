// Package phone normalises Indian contact numbers captured by the enquiry
// forms and consultant dashboards.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no country prefix.
const DefaultRegion = "IN"

// NormalizeE164 formats input as E.164. Unparseable or invalid numbers are
// returned trimmed so that operators still see what the student typed.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Valid reports whether input parses to a valid number for DefaultRegion or
// an explicit international prefix.
func Valid(input string) bool {
	number, err := phonenumbers.Parse(strings.TrimSpace(input), DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}
