package common

import (
	"net/mail"
	"strings"
	"time"
)

// ValidateRequiredString validates that a string field is present
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fieldName+" is required")
	}
	return nil
}

// ValidateOptionalString checks the length of an optional string field
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil && len(*value) > maxLength {
		return NewValidationError(fieldName, "exceeds maximum allowed length")
	}
	return nil
}

// ValidateDateFormat validates a YYYY-MM-DD calendar date
func ValidateDateFormat(dateStr, fieldName string) error {
	if strings.TrimSpace(dateStr) == "" {
		return NewValidationError(fieldName, fieldName+" is required")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return NewValidationError(fieldName, "must be in YYYY-MM-DD format")
	}
	return nil
}

// ValidateEmail validates the address part of an email
func ValidateEmail(email, fieldName string) error {
	if err := ValidateRequiredString(email, fieldName); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError(fieldName, "must be a valid email address")
	}
	return nil
}

// ValidateOneOf rejects values outside of the allowed set. Empty values pass.
func ValidateOneOf(value, fieldName string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(fieldName, "must be one of "+strings.Join(allowed, ", "))
}

// SanitizeSearchQuery trims the search term and caps its length
func SanitizeSearchQuery(query string) string {
	query = strings.TrimSpace(query)
	if len(query) > 100 {
		query = query[:100]
	}
	return query
}

// SafeString dereferences an optional string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
