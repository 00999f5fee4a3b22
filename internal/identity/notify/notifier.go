package notify

import (
	"context"
	"errors"
	"log/slog"
)

// ErrDelivery wraps any transport failure while sending a code. Callers
// match on it instead of the mailer's internal error text.
var ErrDelivery = errors.New("notify: delivery failed")

// Notifier delivers a password-reset code to the user out-of-band.
type Notifier interface {
	SendOTP(ctx context.Context, to, code string) error
}

// LogNotifier is the development fallback when no SMTP host is
// configured. It records that a code was issued without printing the
// code itself.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) SendOTP(ctx context.Context, to, code string) error {
	n.Logger.Info("otp issued (smtp unconfigured, not delivered)", "to", to)
	return nil
}
