package http

import (
	"net/http"

	"github.com/wattlefin/identity/pkg/httpx"
)

// MeHandler returns the identity baked into the presented session token.
// AuthnMiddleware has already verified the token and stashed the claims.
type MeHandler struct{}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		// Only reachable if the route was mounted without AuthnMiddleware.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MeResponse{
		Email:  claims.Subject,
		Role:   claims.Role,
		UserID: claims.UserID,
	})
}
