package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlefin/identity/internal/identity/service"
	"github.com/wattlefin/identity/pkg/httpx"
	"github.com/wattlefin/identity/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
	Cookies     httpx.CookieConfig
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "email and password are required",
		})
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error: "invalid credentials",
			})
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "login failed",
		})
		return
	}

	// The token rides both channels: the HttpOnly cookie for browsers
	// and the body for clients using the Authorization header.
	http.SetCookie(w, httpx.NewSessionCookie(httpx.SessionCookieName, res.Token, h.Cookies))

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Token:  res.Token,
		Email:  res.Email,
		Role:   res.Role,
		UserID: res.UserID,
	})
}
