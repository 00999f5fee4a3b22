package http

import (
	"net/http"

	"github.com/wattlefin/identity/pkg/httpx"
)

// LogoutHandler clears the session cookie. The deletion cookie shares
// every scoping attribute with the login cookie; browsers drop deletion
// directives whose scope differs from the cookie being deleted. Stateless
// tokens mean there is nothing server-side to revoke, so logout always
// succeeds, authenticated or not.
type LogoutHandler struct {
	Cookies httpx.CookieConfig
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, httpx.DeleteSessionCookie(httpx.SessionCookieName, h.Cookies))

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
