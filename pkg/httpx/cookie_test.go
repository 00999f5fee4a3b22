package httpx_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wattlefin/identity/pkg/httpx"
)

func TestNewSessionCookieAttributes(t *testing.T) {
	t.Parallel()

	t.Run("secure deployment", func(t *testing.T) {
		c := httpx.NewSessionCookie("jwtToken", "tok-123", httpx.CookieConfig{Secure: true})

		require.Equal(t, "jwtToken", c.Name)
		require.Equal(t, "tok-123", c.Value)
		require.Equal(t, "/", c.Path)
		require.Equal(t, 86400, c.MaxAge)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteNoneMode, c.SameSite)
		require.Empty(t, c.Domain)
	})

	t.Run("insecure dev deployment falls back to Lax", func(t *testing.T) {
		c := httpx.NewSessionCookie("jwtToken", "tok-123", httpx.CookieConfig{Secure: false})

		require.False(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("domain attribute set only when configured", func(t *testing.T) {
		c := httpx.NewSessionCookie("jwtToken", "tok-123", httpx.CookieConfig{
			Secure: true,
			Domain: "app.example.com",
		})
		require.Equal(t, "app.example.com", c.Domain)
	})
}

// The deletion cookie must mirror the login cookie's scoping attributes
// exactly; browsers ignore deletion directives whose scope differs.
func TestDeleteSessionCookieMirrorsSessionCookie(t *testing.T) {
	t.Parallel()

	for _, cfg := range []httpx.CookieConfig{
		{Secure: true},
		{Secure: false},
		{Secure: true, Domain: "app.example.com"},
	} {
		set := httpx.NewSessionCookie("jwtToken", "tok-123", cfg)
		del := httpx.DeleteSessionCookie("jwtToken", cfg)

		require.Equal(t, set.Name, del.Name)
		require.Equal(t, set.Path, del.Path)
		require.Equal(t, set.Domain, del.Domain)
		require.Equal(t, set.Secure, del.Secure)
		require.Equal(t, set.SameSite, del.SameSite)
		require.Equal(t, set.HttpOnly, del.HttpOnly)

		require.Empty(t, del.Value)
		require.Contains(t, del.String(), "Max-Age=0")
	}
}

func TestSessionCookieSerialization(t *testing.T) {
	t.Parallel()

	c := httpx.NewSessionCookie("jwtToken", "tok-123", httpx.CookieConfig{Secure: true})
	s := c.String()

	require.Contains(t, s, "jwtToken=tok-123")
	require.Contains(t, s, "HttpOnly")
	require.Contains(t, s, "Path=/")
	require.Contains(t, s, "Max-Age=86400")
	require.Contains(t, s, "Secure")
	require.Contains(t, s, "SameSite=None")
	require.NotContains(t, s, "Domain=")

	// Scoping attributes of the deletion cookie are byte-identical.
	del := httpx.DeleteSessionCookie("jwtToken", httpx.CookieConfig{Secure: true}).String()
	stripped := func(s string) []string {
		var attrs []string
		for _, part := range strings.Split(s, "; ") {
			if strings.HasPrefix(part, "jwtToken=") || strings.HasPrefix(part, "Max-Age=") {
				continue
			}
			attrs = append(attrs, part)
		}
		return attrs
	}
	require.Equal(t, stripped(s), stripped(del))
}
