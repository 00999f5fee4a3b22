package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wattlefin/identity/internal/identity/service"
	"github.com/wattlefin/identity/pkg/httpx"
	"github.com/wattlefin/identity/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	if msg, ok := validateRegister(req); !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
		return
	}

	userID, err := h.AuthService.Register(ctx, service.RegisterParams{
		Email:       req.PersonalInfo.Email,
		FirstName:   req.PersonalInfo.FirstName,
		LastName:    req.PersonalInfo.LastName,
		Phone:       req.PersonalInfo.Phone,
		DateOfBirth: req.PersonalInfo.DateOfBirth,

		Username: req.Account.Username,
		Password: req.Account.Password,

		RiskAppetite:   req.InvestmentProfile.RiskAppetite,
		Experience:     req.InvestmentProfile.Experience,
		InvestmentGoal: req.InvestmentProfile.InvestmentGoal,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error: "email already exists",
			})
		case errors.Is(err, service.ErrDuplicateUsername):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
				Error: "username already exists",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "registration failed",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		UserID:  userID,
		Message: "User registered successfully",
	})
}

func validateRegister(req RegisterRequest) (string, bool) {
	switch {
	case req.PersonalInfo.Email == "":
		return "email is required", false
	case req.PersonalInfo.FirstName == "":
		return "firstName is required", false
	case req.PersonalInfo.LastName == "":
		return "lastName is required", false
	case req.PersonalInfo.Phone == "":
		return "phone is required", false
	case req.PersonalInfo.DateOfBirth == "":
		return "dateOfBirth is required", false
	case req.Account.Username == "":
		return "username is required", false
	case req.Account.Password == "":
		return "password is required", false
	case req.InvestmentProfile.RiskAppetite == "":
		return "riskAppetite is required", false
	case req.InvestmentProfile.Experience == "":
		return "experience is required", false
	case req.InvestmentProfile.InvestmentGoal == "":
		return "investmentGoal is required", false
	}
	return "", true
}
