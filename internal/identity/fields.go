package identity

import (
	"fmt"
	"sort"
	"strings"
)

// Field names an input field an error is attributed to.
type Field string

const (
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldSecret        Field = "secret"
	FieldConfirmSecret Field = "confirmSecret"
)

// Reason classifies why a field was rejected. Validation reasons can appear
// on several fields at once; store-originated reasons (duplicate, not found,
// wrong secret) appear on exactly one.
type Reason string

const (
	ReasonRequired     Reason = "required"
	ReasonInvalidEmail Reason = "invalid_email"
	ReasonTooShort     Reason = "too_short"
	ReasonMismatch     Reason = "mismatch"
	ReasonDuplicate    Reason = "duplicate"
	ReasonNotFound     Reason = "not_found"
	ReasonWrongSecret  Reason = "wrong_secret"
)

// FieldError is one failure attributed to a named field.
type FieldError struct {
	Reason  Reason
	Message string
}

// FieldErrors maps each invalid field to its failure. It implements error so
// workflow operations can return it through a single error result.
type FieldErrors map[Field]FieldError

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[Field(f)].Message))
	}
	return strings.Join(parts, "; ")
}

// Is reports whether reason is present on any field, so a FieldErrors value
// can be classified without inspecting individual fields.
func (fe FieldErrors) Is(reason Reason) bool {
	for _, e := range fe {
		if e.Reason == reason {
			return true
		}
	}
	return false
}

func fieldError(f Field, reason Reason, msg string) FieldErrors {
	return FieldErrors{f: {Reason: reason, Message: msg}}
}
