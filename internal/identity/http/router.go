package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wattlefin/identity/internal/identity/service"
	"github.com/wattlefin/identity/internal/identity/store"
	"github.com/wattlefin/identity/pkg/httpx"
	"github.com/wattlefin/identity/pkg/jwtx"
	"github.com/wattlefin/identity/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	cookies      httpx.CookieConfig
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
}

func NewRouter(
	verifier jwtx.Verifier,
	cookies httpx.CookieConfig,
	cors httpx.CORSConfig,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		cookies:      cookies,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain. CORS sits outside authn so
	// preflights never hit the verifier.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(cors),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSession()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /api/auth/register",
		&RegisterHandler{AuthService: r.AuthService})

	r.Mux.Handle("POST /api/auth/login",
		&LoginHandler{AuthService: r.AuthService, Cookies: r.cookies})

	r.Mux.Handle("POST /api/auth/logout",
		&LogoutHandler{Cookies: r.cookies})

	r.Mux.Handle("POST /api/auth/forgot-password",
		&ForgotPasswordHandler{AuthService: r.AuthService})

	r.Mux.Handle("POST /api/auth/reset-password",
		&ResetPasswordHandler{AuthService: r.AuthService})
}

func (r *Router) registerSession() {
	secured := httpx.Chain(&MeHandler{},
		httpx.AuthnMiddleware(r.verifier),
	)

	r.Mux.Handle("GET /api/auth/me", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
