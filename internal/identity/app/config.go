package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string // Issuer claim for session tokens (default: wattlefin-identity)
	JWTSecret string // Required: HS256 signing secret, min 32 bytes

	DatabaseFile string // Path to SQLite database file (default: ./identity.db)
	PepperFile   string // Path to password-hashing pepper file (default: ./pepper)

	CookieSecure   bool   // Secure attribute on the session cookie (default: true)
	CookieDomain   string // Optional: cookie Domain attribute; empty means host-only
	FrontendOrigin string // Allowed CORS origin (default: http://localhost:3000)

	SMTPHost     string // Optional: empty disables email delivery (log-only notifier)
	SMTPPort     int    // SMTP port (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string // From address for OTP mail

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	HashWorkers         int           // Concurrent password-hash bound (default: GOMAXPROCS)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	OTPSweepInterval    time.Duration // Expired-OTP sweep interval (default: 15m)
}

// ErrMissingJWTSecret rejects startup without a signing secret; there is
// no safe default for it.
var ErrMissingJWTSecret = errors.New("app: IDENTITY_JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:    getEnvOrDefault("IDENTITY_ISSUER", "wattlefin-identity"),
		JWTSecret: os.Getenv("IDENTITY_JWT_SECRET"),

		DatabaseFile: getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		PepperFile:   getEnvOrDefault("IDENTITY_PEPPER_FILE", "pepper"),

		CookieSecure:   getEnvBoolOrDefault("COOKIE_SECURE", true),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),
		FrontendOrigin: getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:3000"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		HashWorkers:         getEnvIntOrDefault("HASH_WORKERS", 0),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		OTPSweepInterval:    getEnvDurationOrDefault("OTP_SWEEP_INTERVAL", 15*time.Minute),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are read as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
