// Package identity implements the credential workflow: registration and
// authentication of identities over a record store, with field-scoped
// validation and salted one-way password hashing.
package identity

import "time"

// Record is a stored identity. Records are created exactly once by a
// successful registration and never mutated afterwards; CreatedAt is set at
// creation time. PasswordHash is a self-describing salted digest, never the
// plaintext secret.
type Record struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary is the public view of an identity returned by workflow operations.
// It never carries the secret or the stored hash.
type Summary struct {
	Name      string
	Email     string
	CreatedAt time.Time
}

// RegisterInput is the field set of a registration attempt.
type RegisterInput struct {
	Name          string
	Email         string
	Secret        string
	ConfirmSecret string
}

// LoginInput is the field set of an authentication attempt.
type LoginInput struct {
	Email  string
	Secret string
}

func (r *Record) summary() *Summary {
	return &Summary{Name: r.Name, Email: r.Email, CreatedAt: r.CreatedAt}
}
