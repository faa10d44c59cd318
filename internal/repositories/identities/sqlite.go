package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jfmartinez/credvault/internal/common"
	"github.com/jfmartinez/credvault/internal/dbx"
	"github.com/jfmartinez/credvault/internal/identity"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements identity.Repository using a DBTX
// (either *sql.DB or *sql.Tx). The identities table carries a unique index
// on email, so the uniqueness check and the insert in Append are one atomic
// step enforced by the storage layer itself.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM identities WHERE email = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	return exists, nil
}

func (r *SQLiteRepository) Find(ctx context.Context, email string) (*identity.Record, error) {
	query := `SELECT id, name, email, password_hash, created_at FROM identities
		 WHERE email = ?
		 `

	record := &identity.Record{}
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&record.ID, &record.Name, &record.Email, &record.PasswordHash, &createdAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

func (r *SQLiteRepository) Append(ctx context.Context, record *identity.Record) error {
	query := `INSERT INTO identities (id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Name, record.Email, record.PasswordHash, toMillis(record.CreatedAt))

	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorDuplicate
		}
		return fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT ||
		code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
