package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports a missing or malformed input field. It is raised
// before any store call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Required builds the error for an absent field.
func Required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// Invalid builds the error for a present but malformed field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ParseID parses a positive integer identifier such as a path parameter.
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Required(field)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(field, "must be a positive integer")
	}
	return id, nil
}
