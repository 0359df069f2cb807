// Package http exposes the forecast engine as a small JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"previsao/internal/core"
	"previsao/internal/log"
	"previsao/internal/services"
)

// ForecastAPI is the service surface the handlers need.
// *services.ForecastService implements it.
type ForecastAPI interface {
	Evaluate(ctx context.Context, householdID string, month core.Month) (*services.Evaluation, error)
	CreateTransaction(ctx context.Context, tx core.Transaction) (int64, error)
	ListTransactions(ctx context.Context, householdID string, month core.Month) ([]core.Transaction, error)
	NotifyRiskReduced(ctx context.Context, householdID string, month core.Month, amount core.Money)
}

type Server struct {
	http.Server
	svc          ForecastAPI
	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, svc ForecastAPI, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		svc:         svc,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/forecast", s.withAPIGuards(s.handleForecast))
	mux.HandleFunc("/api/insights", s.withAPIGuards(s.handleInsights))
	mux.HandleFunc("/api/transactions", s.withAPIGuards(s.handleTransactions))
	mux.HandleFunc("/api/risk-reduced", s.withAPIGuards(s.handleRiskReduced))

	s.Handler = log.Middleware(logger)(mux)
	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withAPIGuards adds security headers and per-client rate limiting on writes.
func (s *Server) withAPIGuards(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
