package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techsaavy8784/face-recognization-wallet/internal/config"
	"github.com/techsaavy8784/face-recognization-wallet/internal/logger"
	"github.com/techsaavy8784/face-recognization-wallet/internal/middleware"
)

const welcomeMessage = "Welcome to the face-recognization wallet server!"

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	service     WalletService
	rateLimiter *middleware.RateLimiter
	httpServer  *http.Server
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, service WalletService, rateLimiter *middleware.RateLimiter) *Server {
	return &Server{
		config:      cfg,
		service:     service,
		rateLimiter: rateLimiter,
	}
}

// Handler builds the full route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/get_wallet", s.handleGetWallet)
	mux.HandleFunc("/create_wallet", s.handleCreateWallet)
	mux.HandleFunc("/recover_wallet", s.handleRecoverWallet)

	// Chain: RequestID -> Metrics -> CORS -> LimitBody -> RateLimiter -> Routes
	var handler http.Handler = mux
	handler = s.rateLimiter.Limit(handler)
	handler = middleware.LimitBody(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Metrics(handler)
	handler = middleware.RequestID(handler)
	return s.loggingMiddleware(handler)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info(context.Background(), "starting server", "addr", s.config.Addr())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := middleware.NewStatusRecorder(w)

		next.ServeHTTP(rec, r)

		logger.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// handleIndex serves the welcome string on the bare root path only.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(welcomeMessage))
}

// handleStatus reports liveness as plain text.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Status: Running"))
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
