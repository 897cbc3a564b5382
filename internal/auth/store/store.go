package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement it. Repositories hang off it as methods so a Tx can
// hand out the same repositories bound to the transaction.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema up to date. It is run once at
	// startup, outside any transaction.
	ApplyMigrations(ctx context.Context) error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user-record repository. Lookups return ErrNotFound when no
// record matches; CreateUser returns ErrAlreadyExists when the email or phone
// is taken.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the lowercased email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// MarkEmailVerified sets the verified flag and timestamp. It reports
	// ErrNotFound for an unknown id.
	MarkEmailVerified(ctx context.Context, userID string, at time.Time) error

	// HasSuperAdmin reports whether a SuperAdmin record exists. Customer
	// records do not count.
	HasSuperAdmin(ctx context.Context) (bool, error)
}
