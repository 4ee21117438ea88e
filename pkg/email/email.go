// Package email normalizes and validates person email addresses.
package email

import (
	"net/mail"
	"strings"
)

// Normalize trims surrounding space and lowercases the domain part.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}

// IsValid reports whether addr is a bare address (no display name) with a
// dotted domain.
func IsValid(addr string) bool {
	if addr == "" || strings.ContainsAny(addr, " \t\r\n") {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false
	}
	domain := addr[strings.LastIndexByte(addr, '@')+1:]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}
