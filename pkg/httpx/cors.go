package httpx

import "net/http"

// CORSConfig describes the single allowed browser origin. Credentialed
// requests forbid the "*" wildcard, so the origin must be named exactly.
type CORSConfig struct {
	AllowedOrigin string
}

// CORSMiddleware answers preflight requests and attaches the
// Access-Control headers a credentialed single-page client needs
// (cookies only flow cross-origin when Allow-Credentials is set and the
// origin is echoed exactly).
func CORSMiddleware(cfg CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && origin == cfg.AllowedOrigin {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Expose-Headers", "Authorization, Set-Cookie")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
