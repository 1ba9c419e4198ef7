package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inu/internal/platform/metrics"
	"inu/internal/platform/middleware"
	registrarHandler "inu/internal/registrar/handler"
	registryHandler "inu/internal/registry/handler"
	"inu/pkg/platform/httputil"
)

const (
	requestTimeout = 30 * time.Second
	healthTimeout  = 2 * time.Second
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// Deps is everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Validator middleware.JWTValidator
	Registry  *registryHandler.Handler
	Registrar *registrarHandler.Handler
	Health    map[string]HealthCheck
}

// NewRouter wires the public API under /v1 plus the operational endpoints.
// Queries are public; mutations require a bearer token.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(chimw.Timeout(requestTimeout))
		v1.Use(middleware.ContentTypeJSON)

		deps.Registry.Register(v1)
		deps.Registrar.Register(v1)

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(deps.Validator, deps.Logger))
			deps.Registry.RegisterAuthenticated(authed)
			deps.Registrar.RegisterAuthenticated(authed)
		})
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
