package service

import "errors"

// The identity operations raise typed, enumerable error kinds. The
// transport layer matches on these and never on message text, and no
// collaborator-internal detail rides along to the caller.
var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAuthenticationFailed covers both unknown email and wrong
	// password at login. The two causes are deliberately
	// indistinguishable so login cannot be used to enumerate accounts.
	ErrAuthenticationFailed = errors.New("invalid credentials")

	// ErrUserNotFound is raised only by the recovery-intent paths
	// (forgot/reset password), which are allowed to distinguish.
	ErrUserNotFound = errors.New("user not found")

	ErrNoOTPRequested = errors.New("no otp requested")
	ErrInvalidOTP     = errors.New("invalid otp")
	ErrOTPExpired     = errors.New("otp expired")

	// ErrConcurrentModification surfaces after a conditional write lost
	// its race twice (the cycle is retried once internally).
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrDeliveryFailed reports that the OTP could not be handed to the
	// notifier. Never swallowed: the caller must know no code arrived.
	ErrDeliveryFailed = errors.New("otp delivery failed")
)
