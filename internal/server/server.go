// Package server provides the HTTP API for client research reports.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/roles"
	"github.com/jonathan/client-research/internal/server/middleware"
	"github.com/jonathan/client-research/internal/server/ratelimit"
	"github.com/jonathan/client-research/internal/types"
)

// DefaultRunTimeout bounds one report run, including the summarizer call.
const DefaultRunTimeout = 3 * time.Minute

// Runner produces research results for a seed URL.
type Runner interface {
	RunWithProgress(ctx context.Context, seedURL string, role roles.Key, progress research.ProgressCallback) (*research.Result, error)
}

// WebsiteFinder resolves a company name to its website.
type WebsiteFinder interface {
	Find(ctx context.Context, company string) (string, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	runner      Runner
	finder      WebsiteFinder
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	runTimeout  time.Duration
}

// Config holds server configuration
type Config struct {
	Port       int
	Runner     Runner
	Finder     WebsiteFinder // optional; enables company-name requests
	Logger     *zap.Logger
	RateLimit  *ratelimit.Config
	RunTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("server requires a research runner")
	}

	s := &Server{
		runner:      cfg.Runner,
		finder:      cfg.Finder,
		logger:      cfg.Logger,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		runTimeout:  cfg.RunTimeout,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.runTimeout <= 0 {
		s.runTimeout = DefaultRunTimeout
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /reports", s.handleCreateReport)
	mux.HandleFunc("POST /reports/stream", s.handleCreateReportStream)
	mux.HandleFunc("GET /roles", s.handleListRoles)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.RequestID(s.withLogging(s.withRateLimit(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.runTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. It does not stop a running listener.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the logging middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListRoles returns the roles a report can be tailored to.
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	resp := types.RolesResponse{Roles: []types.RoleInfo{}}
	for _, k := range roles.All() {
		resp.Roles = append(resp.Roles, types.RoleInfo{Key: string(k), Name: k.DisplayName()})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, types.ErrorResponse{Error: code, Message: message})
}

// extractClientID extracts the client identifier from the request.
// Forwarded headers are ignored; only the socket address is trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
