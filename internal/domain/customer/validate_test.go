package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday, so tomorrow is a regular weekday.
var wednesday = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

func validRecord() Record {
	return Record{
		Name:         "María López",
		PhoneCountry: "MX",
		Phone:        "+52 55 1234 5678",
		Email:        "maria@example.com",
		PickupDate:   "2026-03-05",
		PickupSlot:   "10:00-12:00",
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	assert.Empty(t, validRecord().Validate(wednesday))
}

func TestValidateRejectsShortName(t *testing.T) {
	r := validRecord()
	r.Name = "M"
	assert.NotEmpty(t, r.Validate(wednesday))
}

func TestValidatePhoneMinimumPerCountry(t *testing.T) {
	tests := []struct {
		country string
		phone   string
		ok      bool
	}{
		{"MX", "55 1234 5678", true},
		{"MX", "55 1234 567", false},
		{"US", "4155550123", true},
		{"FR", "06 12 34 56 78", true},
		{"FR", "06 12 34 5", false},
		{"ES", "612 345 678", true},
		{"DE", "12345678", true},
		{"DE", "1234567", false},
	}

	for _, tt := range tests {
		r := validRecord()
		r.PhoneCountry = tt.country
		r.Phone = tt.phone
		problems := r.Validate(wednesday)
		if tt.ok {
			assert.Empty(t, problems, "%s %s", tt.country, tt.phone)
		} else {
			assert.NotEmpty(t, problems, "%s %s", tt.country, tt.phone)
		}
	}
}

func TestValidateEmailShape(t *testing.T) {
	for _, bad := range []string{"", "maria", "maria@", "maria@example", "ma ria@example.com"} {
		r := validRecord()
		r.Email = bad
		assert.NotEmpty(t, r.Validate(wednesday), "email %q", bad)
	}
}

func TestValidatePickupDateMustBeTomorrowOrLater(t *testing.T) {
	r := validRecord()
	r.PickupDate = "2026-03-04"
	assert.NotEmpty(t, r.Validate(wednesday))

	r.PickupDate = "2026-03-10"
	assert.Empty(t, r.Validate(wednesday))
}

func TestValidatePickupSlotMembership(t *testing.T) {
	r := validRecord()
	r.PickupSlot = "09:00-11:00"
	assert.NotEmpty(t, r.Validate(wednesday))
}

func TestEarliestPickupDateSkipsSunday(t *testing.T) {
	// Saturday 2026-03-07: tomorrow is Sunday, so Monday is earliest.
	saturday := time.Date(2026, time.March, 7, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", EarliestPickupDate(saturday))

	assert.Equal(t, "2026-03-05", EarliestPickupDate(wednesday))
}

func TestMinPhoneDigits(t *testing.T) {
	assert.Equal(t, 10, MinPhoneDigits("MX"))
	assert.Equal(t, 10, MinPhoneDigits("US"))
	assert.Equal(t, 10, MinPhoneDigits("CA"))
	assert.Equal(t, 9, MinPhoneDigits("FR"))
	assert.Equal(t, 9, MinPhoneDigits("ES"))
	assert.Equal(t, 8, MinPhoneDigits("DE"))
}
