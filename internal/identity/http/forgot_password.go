package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlefin/identity/internal/identity/service"
	"github.com/wattlefin/identity/pkg/httpx"
	"github.com/wattlefin/identity/pkg/slogx"
)

type ForgotPasswordHandler struct {
	AuthService *service.AuthService
}

func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	if req.Email == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "email is required",
		})
		return
	}

	if err := h.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
		case errors.Is(err, service.ErrConcurrentModification):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error: "request conflicted with a concurrent change, retry",
			})
		case errors.Is(err, service.ErrDeliveryFailed):
			httpx.WriteJSON(w, http.StatusBadGateway, ErrorResponse{
				Error: "could not send OTP email",
			})
		default:
			log.Error("forgot-password failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "could not process request",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "OTP sent to email!"})
}
