// Package server exposes the verifier over HTTP.
//
//	POST /verify   check a transformation
//	POST /tool     execute a tool call
//	GET  /schema   tool schema for agent registration
//	GET  /examples example gallery
//	GET  /health   liveness check
//	GET  /metrics  Prometheus metrics
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/njchilds90/linearcheck"
	"github.com/njchilds90/linearcheck/internal/config"
	"github.com/njchilds90/linearcheck/internal/logging"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20 // 1 MiB

// Server wires HTTP endpoints to a Verifier.
type Server struct {
	verifier     Verifier
	logger       *slog.Logger
	registry     *prometheus.Registry
	metrics      *Metrics
	maxBodyBytes int64
	examples     []linearcheck.Example
	now          func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes bounds request bodies. Values below one are ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithExamples replaces the gallery served on GET /examples.
func WithExamples(examples []linearcheck.Example) Option {
	return func(s *Server) { s.examples = examples }
}

// New constructs a server. Each server owns its own metrics registry.
func New(verifier Verifier, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		verifier:     verifier,
		logger:       logger,
		registry:     reg,
		metrics:      NewMetrics(reg),
		maxBodyBytes: DefaultMaxBodyBytes,
		examples:     linearcheck.Examples(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// Routes returns the HTTP handler with all middleware installed.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID, s.accessLog, s.recoverer)

	r.Post("/verify", s.handleVerify)
	r.Post("/tool", s.handleTool)
	r.Get("/schema", s.handleSchema)
	r.Get("/examples", s.handleExamples)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// VerifyRequest is the body of POST /verify.
type VerifyRequest struct {
	Variables      string `json:"variables"`
	Transformation string `json:"transformation"`
}

// handleVerify answers 200 with the result, or 422 with the same document
// when the verifier reports an error.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	res := s.verifier.VerifyContext(r.Context(), req.Variables, req.Transformation)
	s.metrics.ObserveVerification(outcome(res), time.Since(start))

	status := http.StatusOK
	if !res.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func outcome(res linearcheck.Result) string {
	switch {
	case !res.OK():
		if kind := linearcheck.KindOf(res.Cause); kind != "" {
			return string(kind)
		}
		return "error"
	case res.IsLinear:
		return "linear"
	}
	return "not_linear"
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	var req linearcheck.ToolRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp := s.verifier.HandleToolCall(req)
	status := "ok"
	if resp.Error != "" {
		status = "error"
	}
	s.metrics.IncrementToolCall(toolLabel(req.Tool), status)
	writeJSON(w, http.StatusOK, resp)
}

// toolLabel keeps metric cardinality bounded.
func toolLabel(name string) string {
	if slices.Contains(linearcheck.ToolNames(), name) {
		return name
	}
	return "unknown"
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, linearcheck.MCPToolSpec())
}

func (s *Server) handleExamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"examples": s.examples})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

// decode reads exactly one JSON object with no unknown fields. On failure
// it writes the error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		logging.FromContext(r.Context(), s.logger).DebugContext(r.Context(), "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// HTTPServer builds an *http.Server for cfg.
func (s *Server) HTTPServer(cfg config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cfg config.ServerConfig) error {
	srv := s.HTTPServer(cfg)
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	s.logger.Info("linearcheck server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on cfg.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return s.Serve(ctx, ln, cfg)
}
