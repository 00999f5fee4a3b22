package http

import (
	"net/http"
	"time"

	"github.com/wattlefin/identity/internal/identity/store"
	"github.com/wattlefin/identity/pkg/httpx"
)

// ReadyzHandler is the readiness probe. It pings the database and
// reports 503 while any dependency is unhealthy.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
