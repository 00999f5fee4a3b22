package store

import (
	"context"
	"errors"
	"time"

	"github.com/wattlefin/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a conditional write whose expected prior state
	// no longer matched — some concurrent operation got there first. The
	// caller is expected to re-read and retry.
	ErrConflict = errors.New("store: conditional write conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Violating the email or username unique index yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByEmail returns a user by email, the indexed lookup every
	// identity operation starts from.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmail reports whether any user has this email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether any user has this username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// SetOTP writes otp/otp_expiry and bumps updated_at, touching no other
	// fields. The write is conditional on updated_at still being
	// expectedUpdatedAt; a lost race yields ErrConflict.
	SetOTP(ctx context.Context, userID, otp string, expiry time.Time, expectedUpdatedAt time.Time) error

	// CompletePasswordReset replaces password_hash, clears otp/otp_expiry
	// and bumps updated_at in one conditional partial-field write.
	// A lost race yields ErrConflict.
	CompletePasswordReset(ctx context.Context, userID, newHash string, expectedUpdatedAt time.Time) error

	// ClearExpiredOTPs wipes otp/otp_expiry on every row whose code has
	// lapsed. Housekeeping; returns the number of rows cleared.
	ClearExpiredOTPs(ctx context.Context) (int64, error)
}
