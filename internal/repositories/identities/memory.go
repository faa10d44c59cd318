// Package identities provides credential store backends implementing
// identity.Repository: a durable SQLite store and an in-memory store for
// tests and ephemeral runs.
package identities

import (
	"context"
	"sync"

	"github.com/jfmartinez/credvault/internal/common"
	"github.com/jfmartinez/credvault/internal/identity"
)

// InMemoryRepository keeps records in a mutex-guarded map keyed by exact
// email. The existence check and the insert in Append run under one lock, so
// concurrent registrations for the same email cannot both succeed.
type InMemoryRepository struct {
	mu      sync.Mutex
	records map[string]identity.Record
}

// NewInMemoryRepository returns an empty in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{records: make(map[string]identity.Record)}
}

func (r *InMemoryRepository) Exists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.records[email]
	return ok, nil
}

func (r *InMemoryRepository) Find(ctx context.Context, email string) (*identity.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[email]
	if !ok {
		return nil, common.ErrorNotFound
	}

	// return a copy so callers cannot mutate the stored record
	return &record, nil
}

func (r *InMemoryRepository) Append(ctx context.Context, record *identity.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.Email]; ok {
		return common.ErrorDuplicate
	}

	r.records[record.Email] = *record
	return nil
}

// Count reports how many records are stored for the given email (0 or 1).
func (r *InMemoryRepository) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[email]; ok {
		return 1
	}
	return 0
}
