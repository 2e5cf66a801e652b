package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/edulane/enrollment-api/internal/models"
)

// pqUniqueViolation is the Postgres error code for duplicate keys.
const pqUniqueViolation = "23505"

// ErrDuplicate marks an insert rejected by a unique constraint. Services map
// it to a Conflict response.
var ErrDuplicate = fmt.Errorf("duplicate key")

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// AccountRepository provides access to the users and admins tables. The two
// kinds share a schema but never an identity space.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func tableFor(kind models.AccountKind) string {
	if kind == models.KindAdmin {
		return "admins"
	}
	return "users"
}

// FindByEmail returns the account stored under the email for the given kind.
func (r *AccountRepository) FindByEmail(ctx context.Context, kind models.AccountKind, email string) (*models.Account, error) {
	query := fmt.Sprintf(`SELECT id, email, full_name, password_hash, created_at FROM %s WHERE email = $1 LIMIT 1`, tableFor(kind))
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find %s by email: %w", kind, err)
	}
	return &account, nil
}

// Insert stores a new credential. A duplicate email yields ErrDuplicate.
func (r *AccountRepository) Insert(ctx context.Context, kind models.AccountKind, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, email, full_name, password_hash, created_at)
        VALUES (:id, :email, :full_name, :password_hash, :created_at)`, tableFor(kind))
	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}
