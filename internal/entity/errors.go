package entity

import (
	"errors"
	"fmt"
)

// Domain errors are business-rule violations, never infrastructure failures.
// "Invalid email format" belongs here; "database connection failed" does not.

type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("Required field '%s' is missing", e.Field)
}

type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid value for '%s': %s", e.Field, e.Reason)
}

type InvalidStateTransitionError struct {
	From   ContactStatus
	To     ContactStatus
	Reason string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("Cannot transition from '%s' to '%s': %s", e.From, e.To, e.Reason)
}

// BusinessRuleError is reserved for cross-field rules. None of the current
// rules need it, but callers may return it for rules layered on top of the
// entity (e.g. "cannot delete a contact with active campaigns").
type BusinessRuleError struct {
	Rule    string
	Details string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("Business rule '%s' violated: %s", e.Rule, e.Details)
}

// IsDomainError reports whether err is one of the domain error types.
func IsDomainError(err error) bool {
	var required *RequiredFieldError
	var invalid *InvalidFieldError
	var transition *InvalidStateTransitionError
	var rule *BusinessRuleError
	return errors.As(err, &required) ||
		errors.As(err, &invalid) ||
		errors.As(err, &transition) ||
		errors.As(err, &rule)
}
