package validation

import "strings"

// SanitizeOptional trims an optional string; blank or whitespace-only
// input becomes the empty string so "absent" is stored consistently.
func SanitizeOptional(s string) string {
	return strings.TrimSpace(s)
}

// SanitizeOptionalPtr maps a blank optional string to nil
func SanitizeOptionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
