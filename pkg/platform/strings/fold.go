// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr is always contained.
//
// Example:
//
//	ContainsFold("Ada Lovelace", "LOVE")
//	// Returns: true
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// CollapseSpace trims s and folds inner runs of whitespace into one space.
//
// Example:
//
//	CollapseSpace("  12  Main\tStreet ")
//	// Returns: "12 Main Street"
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
