package httpx

import "net/http"

// CookieConfig carries the deployment-specific session cookie attributes.
// Secure defaults to true in production; SameSite is derived from it
// because SameSite=None is only legal on Secure cookies.
type CookieConfig struct {
	Secure bool
	Domain string // optional; empty means host-only
}

// SessionCookieMaxAge mirrors the session token's 24-hour validity.
const SessionCookieMaxAge = 86400

// NewSessionCookie builds the HttpOnly session cookie carrying the bearer
// token. Deletion cookies MUST be built through DeleteSessionCookie so
// their scoping attributes (Path, Domain, Secure, SameSite) stay
// byte-identical to the cookie being deleted — a browser ignores a
// deletion directive whose scope differs from the original.
func NewSessionCookie(name, token string, cfg CookieConfig) *http.Cookie {
	return newCookie(name, token, SessionCookieMaxAge, cfg)
}

// DeleteSessionCookie builds the deletion counterpart of NewSessionCookie:
// identical attributes, empty value, Max-Age=0.
func DeleteSessionCookie(name string, cfg CookieConfig) *http.Cookie {
	return newCookie(name, "", -1, cfg)
}

func newCookie(name, value string, maxAge int, cfg CookieConfig) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if cfg.Secure {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSite,
	}
}
