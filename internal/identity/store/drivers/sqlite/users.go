package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wattlefin/identity/internal/identity/domain"
	"github.com/wattlefin/identity/internal/identity/store"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, email, username, password_hash, role,
	first_name, last_name, phone, date_of_birth,
	risk_appetite, experience, investment_goal,
	otp, otp_expiry, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.Role,
		u.FirstName, u.LastName, u.Phone, u.DateOfBirth,
		u.RiskAppetite, u.Experience, u.InvestmentGoal,
		fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt),
	)
	if err != nil {
		return mapUnique(err)
	}
	return nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) SetOTP(
	ctx context.Context,
	userID, otp string,
	expiry time.Time,
	expectedUpdatedAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp = ?, otp_expiry = ?, updated_at = ?
		WHERE id = ? AND updated_at = ?`,
		otp, fmtTime(expiry), fmtTime(time.Now()),
		userID, fmtTime(expectedUpdatedAt),
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *usersRepo) CompletePasswordReset(
	ctx context.Context,
	userID, newHash string,
	expectedUpdatedAt time.Time,
) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, otp = NULL, otp_expiry = NULL, updated_at = ?
		WHERE id = ? AND updated_at = ?`,
		newHash, fmtTime(time.Now()),
		userID, fmtTime(expectedUpdatedAt),
	)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *usersRepo) ClearExpiredOTPs(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET otp = NULL, otp_expiry = NULL
		WHERE otp IS NOT NULL AND otp_expiry <= ?`,
		fmtTime(time.Now()),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// requireOneRow turns a zero-row conditional update into ErrConflict:
// the guarded updated_at no longer matched, so a concurrent writer won.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                  domain.User
		otp, otpExpiry     sql.NullString
		createdAt, updated string
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.Phone, &u.DateOfBirth,
		&u.RiskAppetite, &u.Experience, &u.InvestmentGoal,
		&otp, &otpExpiry, &createdAt, &updated,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.OTP = mapNullString(otp)

	if u.OTPExpiry, err = mapNullTimePtr(otpExpiry); err != nil {
		return domain.User{}, fmt.Errorf("sqlite: bad otp_expiry: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.User{}, fmt.Errorf("sqlite: bad created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.User{}, fmt.Errorf("sqlite: bad updated_at: %w", err)
	}

	return u, nil
}
