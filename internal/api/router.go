package api

import (
	"net/http"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/observability/tracing"
	"github.com/babylonlabs-io/vesting-engine/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	callerHeader    = "X-Caller-Id"
	requestIDHeader = "X-Request-Id"
)

func NewRouter(service *services.Service) *chi.Mux {
	h := &handler{service: service}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(traceRequest)

	r.Get("/healthcheck", h.healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/pools", h.createPool)
		r.Get("/pools/{poolId}", h.getPool)
		r.Get("/pools/{poolId}/stats", h.getPoolStats)
		r.Post("/pools/{poolId}/grants", h.createGrant)
		r.Get("/pools/{poolId}/grants", h.listGrants)
		r.Post("/pools/{poolId}/grants/{grantId}/claim", h.claim)
		r.Get("/grants/{grantId}", h.grantStatus)
		r.Get("/ids/pool", h.derivePoolID)
		r.Get("/ids/grant", h.deriveGrantID)
	})

	return r
}

// traceRequest attaches a request scoped logger and logs the outcome
func traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.TraceIDFromHeader(r.Context(), r.Header.Get(requestIDHeader))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		log.Ctx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request served")
	})
}
