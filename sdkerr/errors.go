// Package sdkerr defines the two error families of the SDK.
//
// DefinitionError is produced at load time when a predictor signature is
// malformed; it is fatal to registering that one callable. ValidationError
// is produced at call time when raw invocation values do not satisfy the
// schema; it is scoped to a single invocation. The two families are
// disjoint and never converted into one another.
package sdkerr

import (
	"errors"
	"fmt"
)

// Validation error kinds categorize call-time failures.
const (
	// KindMissingField indicates a required input was not supplied.
	KindMissingField = "missing_field"

	// KindUnknownField indicates a supplied input is not declared in the schema.
	KindUnknownField = "unknown_field"

	// KindTypeMismatch indicates a value could not be coerced to the declared type.
	KindTypeMismatch = "type_mismatch"

	// KindChoices indicates a value is not a member of the declared choice set.
	KindChoices = "choices_violation"

	// KindRange indicates a numeric value is outside the declared ge/le bounds.
	KindRange = "range_violation"

	// KindLength indicates a string or container violates the declared length bounds.
	KindLength = "length_violation"

	// KindFactory indicates a default factory failed while producing a value.
	KindFactory = "factory_error"
)

// DefinitionError reports a malformed predictor signature at load time.
// A Schema exists only if no DefinitionError was produced; there is no
// partially valid state. The message is fixed and machine-checkable.
type DefinitionError struct {
	// Field is the offending input or output name, when one exists.
	// Whole-signature violations (e.g. deferred annotations) leave it empty.
	Field string

	// Message is the fixed rule-violation text.
	Message string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	return e.Message
}

// Definition creates a DefinitionError for a named field.
func Definition(field, format string, args ...any) *DefinitionError {
	return &DefinitionError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationError reports a call-time rejection of a raw value.
// It is always scoped to one invocation and never mutates shared state;
// concurrent invocations are unaffected by each other's failures.
//
// ValidationError supports errors.Is matching on Kind:
//
//	if errors.Is(err, &sdkerr.ValidationError{Kind: sdkerr.KindMissingField}) {
//	    ...
//	}
type ValidationError struct {
	// Field is the offending input name, or "output" for output checks.
	Field string

	// Kind categorizes the failure (KindMissingField, KindTypeMismatch, ...).
	Kind string

	// Expected and Actual describe the type mismatch, when Kind is
	// KindTypeMismatch.
	Expected string
	Actual   string

	// Detail carries the constraint-specific message for choice, range and
	// length violations.
	Detail string

	// Err is the underlying cause, set for KindFactory.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("missing required input: %s", e.Field)
	case KindUnknownField:
		return fmt.Sprintf("unexpected input: %s", e.Field)
	case KindTypeMismatch:
		return fmt.Sprintf("invalid value for %s: expected %s, got %s", e.Field, e.Expected, e.Actual)
	case KindFactory:
		return fmt.Sprintf("default factory for %s failed: %v", e.Field, e.Err)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Detail)
		}
		return fmt.Sprintf("invalid value for %s", e.Field)
	}
}

// Unwrap returns the underlying error, allowing errors.Is and errors.As
// to reach a wrapped factory failure.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches another ValidationError by Kind, and by Field when the target
// sets one. A target with only a Kind matches any field.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return errors.Is(e.Err, target)
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Field != "" && t.Field != e.Field {
		return false
	}
	return t.Kind != "" || t.Field != ""
}

// MissingField creates a ValidationError for an omitted required input.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindMissingField}
}

// UnknownField creates a ValidationError for an undeclared input.
func UnknownField(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindUnknownField}
}

// TypeMismatch creates a ValidationError for a value that cannot be coerced
// to the declared type.
func TypeMismatch(field, expected, actual string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindTypeMismatch, Expected: expected, Actual: actual}
}

// ChoicesViolation creates a ValidationError for a value outside the
// declared choice set.
func ChoicesViolation(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindChoices, Detail: detail}
}

// RangeViolation creates a ValidationError for a value outside the declared
// numeric bounds.
func RangeViolation(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindRange, Detail: detail}
}

// LengthViolation creates a ValidationError for a value violating the
// declared length bounds.
func LengthViolation(field, detail string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindLength, Detail: detail}
}

// FactoryError creates a ValidationError wrapping a failed default factory.
func FactoryError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Kind: KindFactory, Err: err}
}
