package domain

import "time"

// RoleUser is the role every account starts with.
const RoleUser = "USER"

// OTPValidity is how long a password-reset code stays usable.
const OTPValidity = 600 * time.Second

// User is the sole persistent entity. The investment-profile and
// personal-info fields are opaque to the identity logic and carried
// through unchanged.
type User struct {
	ID           string // immutable once assigned, generated at registration
	Email        string // globally unique, primary lookup key
	Username     string // globally unique, enforced independently of email
	PasswordHash string // argon2id encoded, never plaintext
	Role         string

	FirstName      string
	LastName       string
	Phone          string
	DateOfBirth    string
	RiskAppetite   string
	Experience     string
	InvestmentGoal string

	// OTP holds the active password-reset code, empty outside a reset
	// window. OTPExpiry is set alongside it; a code at or past its
	// expiry is invalid even if still stored.
	OTP       string
	OTPExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveOTP reports whether a reset code is stored, regardless of
// expiry. Expiry is checked separately so a matching-but-stale code can
// be reported as expired rather than absent.
func (u *User) HasActiveOTP() bool {
	return u.OTP != ""
}
