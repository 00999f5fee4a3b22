package http

// Request and response bodies for the /api/auth endpoints. Field names
// follow the JSON contract the frontend already speaks.

// RegisterRequest groups the signup form into its three sections. Every
// field is required; validation happens before the service is called.
type RegisterRequest struct {
	PersonalInfo      PersonalInfo      `json:"personalInfo"`
	Account           Account           `json:"account"`
	InvestmentProfile InvestmentProfile `json:"investmentProfile"`
}

type PersonalInfo struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type InvestmentProfile struct {
	RiskAppetite   string `json:"riskAppetite"`
	Experience     string `json:"experience"`
	InvestmentGoal string `json:"investmentGoal"`
}

type RegisterResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token in the body alongside the session
// cookie, so non-browser clients can use the Authorization header.
type LoginResponse struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// MeResponse echoes the verified session claims back to the caller.
type MeResponse struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
