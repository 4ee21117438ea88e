// Package seed loads reference countries and sample persons from YAML or
// JSON files and inserts the ones not yet stored.
package seed

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Country is one entry of the countries seed file.
type Country struct {
	ID   string `yaml:"country_id"`
	Name string `yaml:"country_name"`
}

// Person is one entry of the persons seed file. DateOfBirth is YYYY-MM-DD.
type Person struct {
	ID                 string `yaml:"person_id"`
	Name               string `yaml:"person_name"`
	Email              string `yaml:"email"`
	DateOfBirth        string `yaml:"date_of_birth"`
	Gender             string `yaml:"gender"`
	CountryID          string `yaml:"country_id"`
	Address            string `yaml:"address"`
	ReceiveNewsLetters bool   `yaml:"receive_news_letters"`
	TIN                string `yaml:"tin"`
}

const dateLayout = "2006-01-02"

// LoadCountries reads a countries seed file. A missing file yields no entries.
func LoadCountries(path string) ([]Country, error) {
	var out []Country
	if err := load(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadPersons reads a persons seed file. A missing file yields no entries.
func LoadPersons(path string) ([]Person, error) {
	var out []Person
	if err := load(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// load decodes path with yaml.v3, which also accepts JSON documents.
func load(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date_of_birth %q: %w", raw, err)
	}
	return &t, nil
}
