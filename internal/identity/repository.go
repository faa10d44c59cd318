package identity

import "context"

// Repository is the credential store: the durable, queryable collection of
// identity records, keyed by exact email (no case-folding, no trimming).
//
// Contract:
//   - Find returns common.ErrorNotFound when no record matches.
//   - Append is the only mutator. The uniqueness check and the insert are a
//     single atomic step; a duplicate email yields common.ErrorDuplicate and
//     leaves the store unchanged.
//   - Any other failure of the backing medium is returned wrapped, never
//     swallowed.
type Repository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Find(ctx context.Context, email string) (*Record, error)
	Append(ctx context.Context, record *Record) error
}
