package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gov-dx-sandbox/member-service/internal/config"
	"github.com/gov-dx-sandbox/member-service/shared/monitoring"
	"github.com/gov-dx-sandbox/member-service/shared/utils"
	"github.com/gov-dx-sandbox/member-service/v1/handlers"
	"github.com/rs/cors"
)

// V1Router handles all V1 API route registration
type V1Router struct {
	memberHandler *handlers.MemberHandler
	metrics       *monitoring.Metrics
	security      config.SecurityConfig
}

// NewV1Router creates a new V1 router. metrics may be nil.
func NewV1Router(memberHandler *handlers.MemberHandler, metrics *monitoring.Metrics, security config.SecurityConfig) *V1Router {
	return &V1Router{
		memberHandler: memberHandler,
		metrics:       metrics,
		security:      security,
	}
}

// Handler builds the HTTP handler serving the member API, health and metrics
func (r *V1Router) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(utils.PanicRecoveryMiddleware)
	mux.Use(r.metrics.HTTPMiddleware)

	mux.Get("/health", r.memberHandler.HealthCheck)
	mux.Handle("/metrics", r.metrics.Handler())
	r.RegisterRoutes(mux)

	if !r.security.EnableCORS {
		return mux
	}
	return cors.New(cors.Options{
		AllowedOrigins:   utils.SplitAndTrim(r.security.AllowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}).Handler(mux)
}

// RegisterRoutes registers the /members routes on mux
func (r *V1Router) RegisterRoutes(mux chi.Router) {
	mux.Route("/members", func(members chi.Router) {
		members.Post("/", r.memberHandler.CreateMember)
		members.Get("/", r.memberHandler.ListMembers)
		members.Get("/{id}", r.memberHandler.GetMember)
		members.Put("/{id}", r.memberHandler.UpdateMember)
		members.Delete("/{id}", r.memberHandler.DeleteMember)
	})
}
