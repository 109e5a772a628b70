// internal/domain/customer/validate.go
package customer

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// emailPattern is the deliberately simple local@domain.tld shape
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EarliestPickupDate returns the first allowed pickup date (YYYY-MM-DD):
// tomorrow, or the day after when tomorrow is a Sunday (store closed).
func EarliestPickupDate(now time.Time) string {
	d := now.AddDate(0, 0, 1)
	if d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

// Validate checks the record against the checkout gate and returns the list
// of problems found. An empty result means the record may be submitted.
// This gate runs before any network call is made.
func (r Record) Validate(now time.Time) []string {
	var problems []string

	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < 2 {
		problems = append(problems, "name must be at least 2 characters")
	}

	if countDigits(r.Phone) < MinPhoneDigits(r.PhoneCountry) {
		problems = append(problems, "phone number has too few digits for the selected country")
	}

	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		problems = append(problems, "email address is invalid")
	}

	earliest := EarliestPickupDate(now)
	if r.PickupDate == "" || r.PickupDate < earliest {
		problems = append(problems, "pickup date must be "+earliest+" or later")
	}

	if !isValidSlot(r.PickupSlot) {
		problems = append(problems, "pickup slot must be one of the offered time windows")
	}

	return problems
}

func countDigits(value string) int {
	count := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func isValidSlot(slot string) bool {
	for _, s := range PickupSlots {
		if s == slot {
			return true
		}
	}
	return false
}
