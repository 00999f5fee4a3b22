package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP code bounds. Codes are always six digits, so the first digit is
// never zero and the string form never needs padding.
const (
	otpMin  = 100000
	otpSpan = 900000
)

// GenerateOTP returns a 6-digit numeric one-time passcode uniformly
// distributed over [100000, 999999], drawn from crypto/rand. Safe for
// concurrent callers.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("cryptox: failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+otpMin), nil
}
