package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/numcalc/internal/config"
	"github.com/agbru/numcalc/internal/engine"
	apperrors "github.com/agbru/numcalc/internal/errors"
	"github.com/agbru/numcalc/internal/logging"
	"github.com/agbru/numcalc/internal/rational"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

var tracer = otel.Tracer("github.com/agbru/numcalc/internal/server")

// Server serves evaluations over HTTP.
type Server struct {
	factory  engine.Factory
	cfg      config.AppConfig
	security SecurityConfig
	metrics  *Metrics
	logger   logging.Logger
}

// NewServer builds a server evaluating functions from factory. cfg supplies
// the listen address, the per-request timeout and query defaults.
func NewServer(factory engine.Factory, cfg config.AppConfig, logger logging.Logger) *Server {
	return &Server{
		factory:  factory,
		cfg:      cfg,
		security: DefaultSecurityConfig(),
		metrics:  NewMetrics(),
		logger:   logger,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, SecurityMiddleware(s.security, s.metricsMiddleware(h)))
	}
	route("/eval", s.handleEval)
	route("/functions", s.handleFunctions)
	route("/metrics", s.handleMetrics)
	route("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is canceled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Serve)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type functionInfo struct {
	Name        string `json:"name"`
	Arity       int    `json:"arity"`
	Description string `json:"description"`
}

func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var out []functionInfo
	for _, e := range s.factory.GetAll() {
		out = append(out, functionInfo{Name: e.Name(), Arity: e.Arity(), Description: e.Description()})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// EvalResponse is the body of a successful /eval request.
type EvalResponse struct {
	Function     string  `json:"function"`
	Argument     string  `json:"argument,omitempty"`
	Iterations   uint    `json:"iterations"`
	Value        string  `json:"value"`
	Fraction     string  `json:"fraction"`
	StableDigits int     `json:"stable_digits"`
	Converged    bool    `json:"converged"`
	DurationMS   float64 `json:"duration_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	q := r.URL.Query()
	name := q.Get("fn")
	ctx, span := tracer.Start(r.Context(), "server.eval", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	span.SetAttributes(attribute.String("numcalc.function", name))

	ev, err := s.factory.Get(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	opts := engine.Options{Iterations: s.cfg.Iterations}
	if v := q.Get("k"); v != "" {
		k, err := strconv.ParseUint(v, 10, 32)
		if err != nil || uint(k) > s.security.MaxIterations {
			s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{Field: "k", Message: "must be an integer in [0, " + strconv.FormatUint(uint64(s.security.MaxIterations), 10) + "]"})
			return
		}
		opts.Iterations = uint(k)
	}
	digits := s.cfg.Digits
	if digits <= 0 {
		digits = engine.DefaultDigits
	}
	if v := q.Get("digits"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 || d > s.security.MaxDigits {
			s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{Field: "digits", Message: "must be an integer in [1, " + strconv.Itoa(s.security.MaxDigits) + "]"})
			return
		}
		digits = d
	}
	var x *rational.Rat
	arg := q.Get("x")
	if arg != "" {
		if x, err = config.ParseArgument(arg, s.security.MaxExponent); err != nil {
			s.writeError(w, http.StatusBadRequest, apperrors.ValidationError{Field: "x", Message: err.Error()})
			return
		}
	}
	if err := config.CheckArgument(name, x, s.security.MaxExpArgument); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	res, err := ev.Evaluate(ctx, nil, 0, x, opts)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: name, Limit: timeout}
		}
		s.metrics.Evaluations().Observe(name, elapsed, 0, -1, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, statusFor(err), err)
		return
	}
	s.metrics.Evaluations().Observe(name, elapsed, res.Value.Num().Magnitude().Len()+res.Value.Den().Magnitude().Len(), res.StableDigits, nil)
	span.SetAttributes(
		attribute.Int("numcalc.iterations", int(res.Iterations)),
		attribute.Int("numcalc.stable_digits", res.StableDigits),
	)
	s.logger.Debug("evaluated",
		logging.String("function", name),
		logging.Uint64("k", uint64(res.Iterations)),
		logging.Duration("duration", elapsed),
	)
	s.writeJSON(w, http.StatusOK, EvalResponse{
		Function:     name,
		Argument:     arg,
		Iterations:   res.Iterations,
		Value:        res.Value.ApproxString(digits),
		Fraction:     res.Value.String(),
		StableDigits: res.StableDigits,
		Converged:    res.Converged,
		DurationMS:   float64(elapsed.Microseconds()) / 1000,
	})
}

func statusFor(err error) int {
	var (
		val apperrors.ValidationError
		rng apperrors.NotInRangeError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errors.As(err, &val):
		return http.StatusBadRequest
	case errors.As(err, &rng):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if s.logger != nil && status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.Int("status", status))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
