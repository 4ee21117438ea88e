package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field limits match the persons table.
const (
	MaxNameLength    = 40
	MaxEmailLength   = 40
	MaxAddressLength = 200
	TINLength        = 8
	DefaultTIN       = "ABC12345"
)

// Gender is one of the fixed gender options.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// GenderOptions lists the valid genders in display order.
var GenderOptions = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender matches s case-insensitively against GenderOptions.
func ParseGender(s string) (Gender, bool) {
	s = strings.TrimSpace(s)
	for _, g := range GenderOptions {
		if strings.EqualFold(s, string(g)) {
			return g, true
		}
	}
	return "", false
}

// Person is the stored entity.
//
// Invariants:
//   - ID is never uuid.Nil once stored
//   - TIN is exactly TINLength characters
//   - CountryID, when set, references an existing country
type Person struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	DateOfBirth        *time.Time
	Gender             Gender
	CountryID          *uuid.UUID
	Address            string
	ReceiveNewsLetters bool
	TIN                string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DateOnly keeps the calendar date of t, as written, at midnight UTC. Dates of
// birth are stored this way by every backend.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Age returns whole years since DateOfBirth at now, rounded to the nearest
// year (ties to even) on a 365.25-day year. Nil without a date of birth.
func (p *Person) Age(now time.Time) *int {
	return ageAt(p.DateOfBirth, now)
}

func ageAt(dob *time.Time, now time.Time) *int {
	if dob == nil {
		return nil
	}
	// Unix seconds rather than time.Duration, which saturates near 292 years.
	days := float64(now.Unix()-dob.Unix()) / 86400
	if days < 0 {
		days = 0
	}
	years := int(math.RoundToEven(days / 365.25))
	return &years
}

// ToResponse builds the read model. countryName is the joined country name
// and may be empty.
func (p *Person) ToResponse(countryName string, now time.Time) Response {
	return Response{
		ID:                 p.ID,
		Name:               p.Name,
		Email:              p.Email,
		DateOfBirth:        p.DateOfBirth,
		Gender:             string(p.Gender),
		CountryID:          p.CountryID,
		Country:            countryName,
		Address:            p.Address,
		ReceiveNewsLetters: p.ReceiveNewsLetters,
		TIN:                p.TIN,
		Age:                p.Age(now),
	}
}

// Row pairs a stored person with its joined country name.
type Row struct {
	Person      *Person
	CountryName string
}
