package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterOptions configures cross-cutting middleware
type RouterOptions struct {
	AllowedOrigins []string
}

// NewRouter mounts the payroll API under /api/v1
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(h.Logger))
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/calculate", h.Calculate)
			r.Post("/runs", h.RunPayroll)
		})
		r.Route("/validate", func(r chi.Router) {
			r.Post("/tax-code", h.ValidateTaxCode)
			r.Post("/ni-category", h.ValidateNICategory)
			r.Post("/pension-contribution", h.ValidatePensionContribution)
			r.Post("/auto-enrolment", h.CheckAutoEnrolment)
		})
		r.Get("/tax-years", h.ListTaxYears)
	})

	return r
}

func requestLogger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Infow("request",
				"request_id", chiMiddleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
