package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "persons/pkg/domain-errors"
	"persons/pkg/email"
	textutil "persons/pkg/platform/strings"
)

// AddPersonRequest is the input to AddPerson.
type AddPersonRequest struct {
	Name               string     `json:"person_name"`
	Email              string     `json:"email"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Gender             string     `json:"gender"`
	CountryID          *uuid.UUID `json:"country_id,omitempty"`
	Address            string     `json:"address"`
	ReceiveNewsLetters bool       `json:"receive_news_letters"`
	TIN                string     `json:"tin,omitempty"`
}

func (r *AddPersonRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name, r.Email, r.Gender, r.Address, r.TIN, r.CountryID =
		normalizeFields(r.Name, r.Email, r.Gender, r.Address, r.TIN, r.CountryID)
	r.DateOfBirth = normalizeDate(r.DateOfBirth)
}

func (r *AddPersonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "person request is required")
	}
	var c dErrors.Collector
	validateFields(&c, r.Name, r.Email, r.Gender, r.Address, r.TIN, r.DateOfBirth, time.Now())
	return c.Err("invalid person")
}

// ToPerson builds a new entity with the given id and timestamp. Call after Validate.
func (r *AddPersonRequest) ToPerson(id uuid.UUID, now time.Time) *Person {
	gender, _ := ParseGender(r.Gender)
	tin := r.TIN
	if tin == "" {
		tin = DefaultTIN
	}
	return &Person{
		ID:                 id,
		Name:               r.Name,
		Email:              r.Email,
		DateOfBirth:        r.DateOfBirth,
		Gender:             gender,
		CountryID:          r.CountryID,
		Address:            r.Address,
		ReceiveNewsLetters: r.ReceiveNewsLetters,
		TIN:                tin,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// UpdatePersonRequest replaces every editable field of an existing person.
type UpdatePersonRequest struct {
	ID                 uuid.UUID  `json:"person_id"`
	Name               string     `json:"person_name"`
	Email              string     `json:"email"`
	DateOfBirth        *time.Time `json:"date_of_birth,omitempty"`
	Gender             string     `json:"gender"`
	CountryID          *uuid.UUID `json:"country_id,omitempty"`
	Address            string     `json:"address"`
	ReceiveNewsLetters bool       `json:"receive_news_letters"`
	TIN                string     `json:"tin,omitempty"`
}

func (r *UpdatePersonRequest) Normalize() {
	if r == nil {
		return
	}
	r.Name, r.Email, r.Gender, r.Address, r.TIN, r.CountryID =
		normalizeFields(r.Name, r.Email, r.Gender, r.Address, r.TIN, r.CountryID)
	r.DateOfBirth = normalizeDate(r.DateOfBirth)
}

func (r *UpdatePersonRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "person request is required")
	}
	var c dErrors.Collector
	c.Check(r.ID != uuid.Nil, "person_id", "person id can't be blank")
	validateFields(&c, r.Name, r.Email, r.Gender, r.Address, r.TIN, r.DateOfBirth, time.Now())
	return c.Err("invalid person")
}

// ApplyTo copies the request onto p. An empty TIN keeps the stored one.
func (r *UpdatePersonRequest) ApplyTo(p *Person, now time.Time) {
	gender, _ := ParseGender(r.Gender)
	p.Name = r.Name
	p.Email = r.Email
	p.DateOfBirth = r.DateOfBirth
	p.Gender = gender
	p.CountryID = r.CountryID
	p.Address = r.Address
	p.ReceiveNewsLetters = r.ReceiveNewsLetters
	if r.TIN != "" {
		p.TIN = r.TIN
	}
	p.UpdatedAt = now
}

func normalizeFields(name, mail, gender, address, tin string, countryID *uuid.UUID) (string, string, string, string, string, *uuid.UUID) {
	name = textutil.CollapseSpace(name)
	mail = email.Normalize(mail)
	gender = strings.TrimSpace(gender)
	if g, ok := ParseGender(gender); ok {
		gender = string(g)
	}
	address = strings.TrimSpace(address)
	tin = strings.ToUpper(strings.TrimSpace(tin))
	if countryID != nil && *countryID == uuid.Nil {
		countryID = nil
	}
	return name, mail, gender, address, tin, countryID
}

func normalizeDate(dob *time.Time) *time.Time {
	if dob == nil {
		return nil
	}
	d := DateOnly(*dob)
	return &d
}

func validateFields(c *dErrors.Collector, name, mail, gender, address, tin string, dob *time.Time, now time.Time) {
	c.Check(name != "", "person_name", "person name can't be blank")
	c.Check(utf8.RuneCountInString(name) <= MaxNameLength, "person_name", "person name can't exceed 40 characters")

	c.Check(mail != "", "email", "email can't be blank")
	if mail != "" {
		c.Check(email.IsValid(mail), "email", "email value should be a valid email")
	}
	c.Check(utf8.RuneCountInString(mail) <= MaxEmailLength, "email", "email can't exceed 40 characters")

	if gender == "" {
		c.Add("gender", "gender can't be blank")
	} else if _, ok := ParseGender(gender); !ok {
		c.Add("gender", "gender must be one of Male, Female, Other")
	}

	if dob != nil {
		c.Check(!dob.After(now), "date_of_birth", "date of birth can't be in the future")
	}
	c.Check(utf8.RuneCountInString(address) <= MaxAddressLength, "address", "address can't exceed 200 characters")
	if tin != "" {
		c.Check(utf8.RuneCountInString(tin) == TINLength, "tin", "tin must be exactly 8 characters")
	}
}
