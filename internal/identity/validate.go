package identity

import (
	"regexp"
	"strings"
)

// MinSecretLength is the minimum accepted secret length at registration.
const MinSecretLength = 6

// emailShape is a cheap syntactic check (something@something.something),
// not full RFC validation.
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks all registration preconditions and collects every
// violation instead of stopping at the first. A nil result means the input
// is acceptable; the store has not been consulted either way.
func (in RegisterInput) Validate() FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(in.Name) == "" {
		fe[FieldName] = FieldError{Reason: ReasonRequired, Message: "name is required"}
	}

	validateEmail(fe, in.Email)

	if in.Secret == "" {
		fe[FieldSecret] = FieldError{Reason: ReasonRequired, Message: "password is required"}
	} else if len(in.Secret) < MinSecretLength {
		fe[FieldSecret] = FieldError{Reason: ReasonTooShort, Message: "password must be at least 6 characters"}
	}

	if in.Secret != in.ConfirmSecret {
		fe[FieldConfirmSecret] = FieldError{Reason: ReasonMismatch, Message: "passwords do not match"}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Validate checks authentication preconditions: email presence and shape,
// secret presence. No length floor applies to an existing secret.
func (in LoginInput) Validate() FieldErrors {
	fe := FieldErrors{}

	validateEmail(fe, in.Email)

	if in.Secret == "" {
		fe[FieldSecret] = FieldError{Reason: ReasonRequired, Message: "password is required"}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

func validateEmail(fe FieldErrors, email string) {
	if strings.TrimSpace(email) == "" {
		fe[FieldEmail] = FieldError{Reason: ReasonRequired, Message: "email is required"}
	} else if !emailShape.MatchString(email) {
		fe[FieldEmail] = FieldError{Reason: ReasonInvalidEmail, Message: "invalid email"}
	}
}
