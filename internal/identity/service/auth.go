package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/wattlefin/identity/internal/identity/domain"
	"github.com/wattlefin/identity/internal/identity/notify"
	"github.com/wattlefin/identity/internal/identity/store"
	"github.com/wattlefin/identity/pkg/cryptox"
	"github.com/wattlefin/identity/pkg/idx"
	"github.com/wattlefin/identity/pkg/jwtx"
	"github.com/wattlefin/identity/pkg/slogx"
)

// PasswordHasher is the credential-hashing collaborator. The production
// implementation is cryptox.Argon2Hasher; tests inject a cheap one.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// AuthConfig tunes an AuthService. Zero values fall back to production
// defaults.
type AuthConfig struct {
	Issuer     string
	SessionTTL time.Duration // token + cookie lifetime, default 24h
	OTPTTL     time.Duration // reset-code lifetime, default 600s

	// HashWorkers bounds how many password hashes may run at once so a
	// burst of login/registration traffic cannot starve the accept path.
	HashWorkers int

	// GenerateOTP produces the reset code. Defaults to cryptox.GenerateOTP.
	GenerateOTP func() (string, error)
}

// AuthService orchestrates registration, login, logout-cookie
// construction, and the OTP password-reset flow. It holds no mutable
// state of its own; everything flows through the store.
type AuthService struct {
	Store    store.Store
	Hasher   PasswordHasher
	Signer   jwtx.Signer
	Notifier notify.Notifier

	issuer      string
	sessionTTL  time.Duration
	otpTTL      time.Duration
	generateOTP func() (string, error)
	hashSem     *semaphore.Weighted
}

// NewAuthService wires an AuthService from its collaborators.
func NewAuthService(
	st store.Store,
	hasher PasswordHasher,
	signer jwtx.Signer,
	notifier notify.Notifier,
	cfg AuthConfig,
) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = jwtx.DefaultSessionTTL
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = domain.OTPValidity
	}
	if cfg.HashWorkers <= 0 {
		cfg.HashWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.GenerateOTP == nil {
		cfg.GenerateOTP = cryptox.GenerateOTP
	}

	return &AuthService{
		Store:       st,
		Hasher:      hasher,
		Signer:      signer,
		Notifier:    notifier,
		issuer:      cfg.Issuer,
		sessionTTL:  cfg.SessionTTL,
		otpTTL:      cfg.OTPTTL,
		generateOTP: cfg.GenerateOTP,
		hashSem:     semaphore.NewWeighted(int64(cfg.HashWorkers)),
	}
}

// RegisterParams is the assembled registration input. Field presence is
// validated at the transport boundary; the service assumes a complete set.
type RegisterParams struct {
	Email       string
	FirstName   string
	LastName    string
	Phone       string
	DateOfBirth string

	Username string
	Password string

	RiskAppetite   string
	Experience     string
	InvestmentGoal string
}

// Register creates a new account and returns the generated user id.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (string, error) {
	log := slogx.FromContext(ctx)

	// 1. Uniqueness checks, each against its own field.
	if taken, err := s.Store.Users().ExistsByEmail(ctx, p.Email); err != nil {
		return "", err
	} else if taken {
		return "", ErrDuplicateEmail
	}
	if taken, err := s.Store.Users().ExistsByUsername(ctx, p.Username); err != nil {
		return "", err
	} else if taken {
		return "", ErrDuplicateUsername
	}

	// 2. Hash the password on the bounded worker pool.
	hash, err := s.hashPassword(ctx, p.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        p.Email,
		Username:     p.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,

		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Phone:          p.Phone,
		DateOfBirth:    p.DateOfBirth,
		RiskAppetite:   p.RiskAppetite,
		Experience:     p.Experience,
		InvestmentGoal: p.InvestmentGoal,

		CreatedAt: now,
		UpdatedAt: now,
	}

	// 3. Persist. The unique indexes close the check-then-insert race;
	// on a violation, re-check which field collided.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			if taken, checkErr := s.Store.Users().ExistsByEmail(ctx, p.Email); checkErr == nil && taken {
				return "", ErrDuplicateEmail
			}
			return "", ErrDuplicateUsername
		}
		log.Error("failed to create user", slog.Any("error", err))
		return "", err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user.ID, nil
}

// LoginResult echoes the authenticated identity alongside the token. The
// token travels both in the session cookie and in the response body.
type LoginResult struct {
	Token  string
	Email  string
	Role   string
	UserID string
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password produce the same error on purpose.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrAuthenticationFailed
		}
		log.Error("login lookup failed", slog.Any("error", err))
		return LoginResult{}, err
	}

	if err := s.verifyPassword(ctx, password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Info("login failed", slog.String("user_id", user.ID))
			return LoginResult{}, ErrAuthenticationFailed
		}
		return LoginResult{}, err
	}

	claims := jwtx.NewSessionClaims(
		user.Email, user.Role, user.ID,
		s.issuer, s.sessionTTL, time.Now().UTC(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return LoginResult{}, err
	}

	return LoginResult{
		Token:  token,
		Email:  user.Email,
		Role:   user.Role,
		UserID: user.ID,
	}, nil
}

// ForgotPassword issues a fresh reset code, superseding any unconsumed
// one, and dispatches it to the notifier. A delivery failure is surfaced;
// the stored code stays valid so a retried request can re-send.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	var user domain.User
	err := s.withConflictRetry(func() error {
		var err error
		user, err = s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		code, err := s.generateOTP()
		if err != nil {
			return err
		}
		user.OTP = code

		expiry := time.Now().UTC().Add(s.otpTTL)
		return s.Store.Users().SetOTP(ctx, user.ID, code, expiry, user.UpdatedAt)
	})
	if err != nil {
		return err
	}

	if err := s.Notifier.SendOTP(ctx, user.Email, user.OTP); err != nil {
		log.Error("otp delivery failed", slog.String("user_id", user.ID), slog.Any("error", err))
		return ErrDeliveryFailed
	}

	log.Info("otp issued", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a valid reset code and replaces the password.
// The checks run in a fixed order: missing user, missing code, code
// mismatch, then expiry — so a wrong code reports as invalid rather than
// expired, and a failed attempt leaves the stored code untouched.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	log := slogx.FromContext(ctx)

	var userID string
	err := s.withConflictRetry(func() error {
		user, err := s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		userID = user.ID

		if !user.HasActiveOTP() {
			return ErrNoOTPRequested
		}
		if subtle.ConstantTimeCompare([]byte(user.OTP), []byte(otp)) != 1 {
			return ErrInvalidOTP
		}
		if user.OTPExpiry == nil || !time.Now().UTC().Before(*user.OTPExpiry) {
			return ErrOTPExpired
		}

		hash, err := s.hashPassword(ctx, newPassword)
		if err != nil {
			return err
		}

		return s.Store.Users().CompletePasswordReset(ctx, user.ID, hash, user.UpdatedAt)
	})
	if err != nil {
		return err
	}

	log.Info("password reset completed", slog.String("user_id", userID))
	return nil
}

// withConflictRetry runs one read-modify-write cycle and retries it once
// if the conditional write lost its race. A second loss surfaces as
// ErrConcurrentModification.
func (s *AuthService) withConflictRetry(fn func() error) error {
	err := fn()
	if !errors.Is(err, store.ErrConflict) {
		return err
	}

	err = fn()
	if errors.Is(err, store.ErrConflict) {
		return ErrConcurrentModification
	}
	return err
}

// hashPassword runs the hasher under the bounded pool. Acquire honours
// the request context so a cancelled request doesn't queue for a slot.
func (s *AuthService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	return s.Hasher.Hash(password)
}

func (s *AuthService) verifyPassword(ctx context.Context, password, hash string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)

	return s.Hasher.Verify(password, hash)
}
