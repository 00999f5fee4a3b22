package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/internal/identity/domain"
	"github.com/wattlefin/identity/internal/identity/store"
	"github.com/wattlefin/identity/internal/identity/store/drivers/sqlite"
	"github.com/wattlefin/identity/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *sqlite.Store, email, username string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		Role:         domain.RoleUser,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))

	// Re-read so timestamps match the stored (truncated) representation.
	stored, err := st.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return stored
}

func TestCreateAndGetUser(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "a@x.com", "ada")

	got, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "ada", got.Username)
	require.Equal(t, domain.RoleUser, got.Role)
	require.Empty(t, got.OTP)
	require.Nil(t, got.OTPExpiry)

	_, err = st.Users().GetUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUniqueIndexes(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "a@x.com", "ada")

	now := time.Now().UTC()
	dupEmail := domain.User{
		ID: idx.New().String(), Email: "a@x.com", Username: "other",
		PasswordHash: "h", Role: domain.RoleUser, CreatedAt: now, UpdatedAt: now,
	}
	require.ErrorIs(t, st.Users().CreateUser(ctx, dupEmail), store.ErrAlreadyExists)

	dupUsername := domain.User{
		ID: idx.New().String(), Email: "b@x.com", Username: "ada",
		PasswordHash: "h", Role: domain.RoleUser, CreatedAt: now, UpdatedAt: now,
	}
	require.ErrorIs(t, st.Users().CreateUser(ctx, dupUsername), store.ErrAlreadyExists)
}

func TestExistsChecksAreFieldScoped(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	seedUser(t, st, "a@x.com", "ada")

	ok, err := st.Users().ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Users().ExistsByEmail(ctx, "ada") // username, not an email
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = st.Users().ExistsByUsername(ctx, "ada")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Users().ExistsByUsername(ctx, "a@x.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetOTPConditionalWrite(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "a@x.com", "ada")
	expiry := time.Now().UTC().Add(10 * time.Minute)

	require.NoError(t, st.Users().SetOTP(ctx, u.ID, "123456", expiry, u.UpdatedAt))

	got, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "123456", got.OTP)
	require.NotNil(t, got.OTPExpiry)
	require.WithinDuration(t, expiry, *got.OTPExpiry, time.Second)
	require.True(t, got.UpdatedAt.After(u.UpdatedAt))

	// The first write bumped updated_at, so the stale precondition loses.
	err = st.Users().SetOTP(ctx, u.ID, "654321", expiry, u.UpdatedAt)
	require.ErrorIs(t, err, store.ErrConflict)

	// The stored code is untouched by the failed write.
	got, err = st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "123456", got.OTP)
}

func TestCompletePasswordReset(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st, "a@x.com", "ada")
	require.NoError(t, st.Users().SetOTP(ctx, u.ID, "123456", time.Now().UTC().Add(10*time.Minute), u.UpdatedAt))

	cur, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, st.Users().CompletePasswordReset(ctx, u.ID, "new-hash", cur.UpdatedAt))

	got, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)
	require.Empty(t, got.OTP)
	require.Nil(t, got.OTPExpiry)

	// Replaying the same precondition conflicts.
	err = st.Users().CompletePasswordReset(ctx, u.ID, "other-hash", cur.UpdatedAt)
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestClearExpiredOTPs(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	expired := seedUser(t, st, "expired@x.com", "expired")
	active := seedUser(t, st, "active@x.com", "active")

	require.NoError(t, st.Users().SetOTP(ctx, expired.ID, "111111", time.Now().UTC().Add(-time.Minute), expired.UpdatedAt))
	require.NoError(t, st.Users().SetOTP(ctx, active.ID, "222222", time.Now().UTC().Add(10*time.Minute), active.UpdatedAt))

	n, err := st.Users().ClearExpiredOTPs(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := st.Users().GetUserByEmail(ctx, "expired@x.com")
	require.NoError(t, err)
	require.Empty(t, got.OTP)

	got, err = st.Users().GetUserByEmail(ctx, "active@x.com")
	require.NoError(t, err)
	require.Equal(t, "222222", got.OTP)
}

func TestPing(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}
