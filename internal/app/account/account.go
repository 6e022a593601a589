/*
Package account contains persistence for registered user accounts.

An account is the Go-side realization of the external identity provider the
catalog app delegates to: an opaque identity (UUID) bound to an e-mail address
and a bcrypt password hash. Presence of an identity gates favorites and ratings.
*/
package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Account represents a registered user.
type Account struct {
	// ID is the server-assigned UUID, rendered as text. It keys the user's
	// profile document in the document store.
	ID string

	// Email is the unique address the account was registered with.
	Email string

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string

	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// Store provides database access for accounts.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a new account and returns it with the generated id.
// A unique-constraint violation on email surfaces as the raw pgx error;
// callers classify it with db.IsUniqueViolation.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id::text, email, password_hash, created_at`,
		email, passwordHash,
	)

	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmail fetches an account by its e-mail address.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id::text, email, password_hash, created_at, last_login_at
		 FROM accounts WHERE email = $1`,
		email,
	)

	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.LastLoginAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByID fetches an account by its identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id::text, email, password_hash, created_at, last_login_at
		 FROM accounts WHERE id = $1::uuid`,
		id,
	)

	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.LastLoginAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// TouchLastLogin records the time of a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE accounts SET last_login_at = now() WHERE id = $1::uuid`, id)
	return err
}

// IsNotFound reports whether the error means no matching account row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
