/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the input form

ROUTE GROUPS:
  /api/schedules/*      Generate reports and CSV exports
  /api/runs/*           Cached runs
  /api/useful-lives/*   Useful-life lookup
  /api/currencies       Display currencies
  /api/scenarios/*      Demo portfolios
  /                     Endpoint index

SECURITY NOTE:
  No authentication middleware. All endpoints are public; the server is
  meant for local or intranet use.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/depreciation/serve.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultCORSOrigins are allowed when the configuration names none.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	if len(corsOrigins) == 0 {
		corsOrigins = DefaultCORSOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/schedules", func(r chi.Router) {
			r.Post("/", h.CreateSchedule)
			r.Post("/csv", h.ExportScheduleCSV)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", h.ListRuns)
			r.Get("/{id}", h.GetRun)
			r.Get("/{id}/csv", h.GetRunCSV)
			r.Delete("/{id}", h.DeleteRun)
		})

		r.Route("/useful-lives", func(r chi.Router) {
			r.Get("/", h.ListUsefulLives)
			r.Get("/suggest", h.SuggestUsefulLife)
		})

		r.Get("/currencies", h.ListCurrencies)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(indexPage))
	})

	return r
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Depreciation Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Straight-Line Depreciation API</h1>
<h2>API Endpoints</h2>
<ul>
<li>POST /api/schedules - Generate a multi-asset schedule</li>
<li>POST /api/schedules/csv - Download the schedule as CSV</li>
<li><a href="/api/runs">/api/runs</a> - Cached runs</li>
<li><a href="/api/useful-lives">/api/useful-lives</a> - Suggested useful lives</li>
<li><a href="/api/currencies">/api/currencies</a> - Display currencies</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo portfolios</li>
</ul>
</body>
</html>`
