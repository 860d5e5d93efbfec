package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/mcqapp/quiz-service/internal/auth"
	"github.com/mcqapp/quiz-service/internal/config"
	"github.com/mcqapp/quiz-service/internal/history"
	"github.com/mcqapp/quiz-service/internal/metrics"
	"github.com/mcqapp/quiz-service/internal/question"
	"github.com/mcqapp/quiz-service/internal/session"
)

// Handlers groups the route handlers wired into the mux.
type Handlers struct {
	Auth      *auth.HTTPHandlers
	AuthSvc   *auth.Service
	Questions *question.HTTPHandler
	Sessions  *session.HTTPHandler
	Play      *session.WSHandler
	History   *history.HTTPHandler
}

// NewMux wires all routes. Exposed separately from NewHTTPServer so tests can
// drive the full router through httptest.
func NewMux(cfg *config.App, logger zerolog.Logger, h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	// Public endpoints
	mux.HandleFunc("POST /v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /v1/auth/refresh", h.Auth.RefreshToken)
	mux.HandleFunc("GET /v1/categories", h.Questions.HandleCategories)

	// Authenticated endpoints
	guard := auth.Middleware(h.AuthSvc, logger)
	mux.Handle("GET /v1/users/me", guard(http.HandlerFunc(h.Auth.GetMe)))
	mux.Handle("POST /v1/sessions", guard(http.HandlerFunc(h.Sessions.HandleStart)))
	mux.Handle("GET /v1/sessions/{id}/question", guard(http.HandlerFunc(h.Sessions.HandleQuestion)))
	mux.Handle("POST /v1/sessions/{id}/answers", guard(http.HandlerFunc(h.Sessions.HandleAnswer)))
	mux.Handle("POST /v1/sessions/{id}/finish", guard(http.HandlerFunc(h.Sessions.HandleFinish)))
	mux.Handle("GET /v1/users/me/history", guard(http.HandlerFunc(h.History.HandleList)))
	mux.Handle("GET /v1/users/me/history/export", guard(http.HandlerFunc(h.History.HandleExport)))

	// WebSocket play endpoint authenticates via token query param itself.
	mux.HandleFunc("GET /ws/play", h.Play.HandlePlay)

	corsMW := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})

	return metrics.Middleware(corsMW.Handler(mux))
}

// NewHTTPServer builds the API server around the wired mux.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewMux(cfg, logger, h),
	}
}
