package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Ada.Lovelace@example.com", Normalize("  Ada.Lovelace@EXAMPLE.com "))
	assert.Equal(t, "no-at-sign", Normalize("no-at-sign"))
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		addr  string
		valid bool
	}{
		{"person@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"person@localhost", false},
		{"person@example.", false},
		{"Ada <ada@example.com>", false},
		{"two words@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.addr))
		})
	}
}
