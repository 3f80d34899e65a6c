// ABOUTME: Field-level validation error shared by the catalog, generator, and sync layers.
// ABOUTME: Collects every failed check so callers can report them together.
package models

import (
	"fmt"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// Validate runs every check and returns a *ValidationError if any failed.
func Validate(checks ...func() string) error {
	var errs []string
	for _, check := range checks {
		if msg := check(); msg != "" {
			errs = append(errs, msg)
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// RequireNonEmpty fails when value is blank.
func RequireNonEmpty(field, value string) string {
	if strings.TrimSpace(value) == "" {
		return fmt.Sprintf("%s is required", field)
	}
	return ""
}

// CheckInList fails when value is not one of allowed (case-insensitive).
func CheckInList(field, value string, allowed []string) string {
	for _, v := range allowed {
		if strings.EqualFold(value, v) {
			return ""
		}
	}
	return fmt.Sprintf("%s has invalid value %q (allowed: %s)", field, value, strings.Join(allowed, ", "))
}

// CheckRange fails when value is outside [lo, hi].
func CheckRange(field string, value, lo, hi int) string {
	if value < lo || value > hi {
		return fmt.Sprintf("%s must be between %d and %d", field, lo, hi)
	}
	return ""
}
