package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jfmartinez/credvault/internal/common"
	"github.com/jfmartinez/credvault/internal/cryptox"
)

// Service orchestrates the credential workflow over an injected Repository.
// It never retains records beyond the duration of a single operation.
type Service struct {
	repo        Repository
	hashTimeout time.Duration
}

// NewService constructs a Service. hashTimeout bounds each hash computation;
// zero means no bound beyond the caller's context.
func NewService(repo Repository, hashTimeout time.Duration) *Service {
	return &Service{repo: repo, hashTimeout: hashTimeout}
}

// Register creates a new identity.
//
// All input preconditions are checked first and every violation is collected
// into the returned FieldErrors; the store is not touched in that case.
// A used email fails with a field error on email. Otherwise the secret is
// hashed with a fresh random salt and the record is appended; the append
// itself rejects a concurrent duplicate, so two racing registrations for one
// email produce exactly one record.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Summary, error) {

	if fe := in.Validate(); fe != nil {
		return nil, fe
	}

	// Early duplicate check to avoid burning a hash derivation on an email
	// that is already taken. The append below remains the authoritative,
	// atomic uniqueness gate.
	taken, err := s.repo.Exists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking identity: %w", err)
	}
	if taken {
		return nil, fieldError(FieldEmail, ReasonDuplicate, "email is already registered")
	}

	hash, err := s.hashSecret(ctx, in.Secret)
	if err != nil {
		return nil, fmt.Errorf("error hashing secret: %w", err)
	}

	record := &Record{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Append(ctx, record); err != nil {
		if errors.Is(err, common.ErrorDuplicate) {
			return nil, fieldError(FieldEmail, ReasonDuplicate, "email is already registered")
		}
		return nil, fmt.Errorf("error creating identity: %w", err)
	}

	return record.summary(), nil
}

// Authenticate verifies a secret against the stored hash for the given email.
//
// An unknown email and a wrong secret are reported as distinct field errors.
// This is a local single-user vault, so account enumeration is not a concern
// and the specific failure is more useful to the person at the terminal.
func (s *Service) Authenticate(ctx context.Context, in LoginInput) (*Summary, error) {

	if fe := in.Validate(); fe != nil {
		return nil, fe
	}

	record, err := s.repo.Find(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fieldError(FieldEmail, ReasonNotFound, "no account found for this email")
		}
		return nil, fmt.Errorf("error looking up identity: %w", err)
	}

	ok, err := s.verifySecret(ctx, in.Secret, record.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying secret: %w", err)
	}
	if !ok {
		return nil, fieldError(FieldSecret, ReasonWrongSecret, "wrong password")
	}

	return record.summary(), nil
}

// hashSecret derives the stored hash under the configured time bound.
func (s *Service) hashSecret(ctx context.Context, secret string) (string, error) {
	ctx, cancel := s.hashContext(ctx)
	defer cancel()
	return cryptox.HashSecret(ctx, []byte(secret))
}

func (s *Service) verifySecret(ctx context.Context, secret, encoded string) (bool, error) {
	ctx, cancel := s.hashContext(ctx)
	defer cancel()
	return cryptox.VerifySecret(ctx, []byte(secret), encoded)
}

func (s *Service) hashContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.hashTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.hashTimeout)
}
