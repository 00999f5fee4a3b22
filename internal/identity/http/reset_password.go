package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlefin/identity/internal/identity/service"
	"github.com/wattlefin/identity/pkg/httpx"
	"github.com/wattlefin/identity/pkg/slogx"
)

type ResetPasswordHandler struct {
	AuthService *service.AuthService
}

func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "email, otp, newPassword are required",
		})
		return
	}

	if err := h.AuthService.ResetPassword(ctx, req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "user not found",
			})
		case errors.Is(err, service.ErrNoOTPRequested):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "no OTP requested",
			})
		case errors.Is(err, service.ErrInvalidOTP):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid OTP",
			})
		case errors.Is(err, service.ErrOTPExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "OTP expired",
			})
		case errors.Is(err, service.ErrConcurrentModification):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error: "request conflicted with a concurrent change, retry",
			})
		default:
			log.Error("reset-password failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "could not process request",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password changed successfully!"})
}
