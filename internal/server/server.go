// Package server exposes the newsroom services over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/deusflow/newsroom/internal/credentials"
	"github.com/deusflow/newsroom/internal/llm"
	"github.com/deusflow/newsroom/internal/logger"
	"github.com/deusflow/newsroom/internal/metrics"
	"github.com/deusflow/newsroom/internal/prompt"
	"github.com/deusflow/newsroom/internal/ratelimit"
	"github.com/deusflow/newsroom/internal/speech"
	"github.com/deusflow/newsroom/internal/summary"
	"github.com/deusflow/newsroom/internal/topics"
	"github.com/deusflow/newsroom/internal/translate"
	"github.com/deusflow/newsroom/internal/writer"
)

// maxBodyBytes leaves room for base64 audio uploads.
const maxBodyBytes = 32 << 20

// Prober checks that the TTS backend answers a real call.
type Prober interface {
	Probe(ctx context.Context) error
}

// Deps are the services behind the routes. TTSProbe is nil when speech runs
// in demo mode; TTSInitErr keeps the reason a configured client failed.
type Deps struct {
	Writer    *writer.Writer
	Topics    *topics.Service
	Translate *translate.Service
	Summary   *summary.Service
	Digest    *summary.Digester
	TTS       *speech.TTS
	STT       *speech.STT

	TTSProbe   Prober
	TTSInitErr error

	Limiter *ratelimit.AILimiter
	Metrics *metrics.Metrics

	// Lookup and Environ feed the credential diagnostics; they default to
	// the process environment.
	Lookup  credentials.Lookup
	Environ func() []string

	RequestTimeout time.Duration
}

type Server struct {
	Deps
	validate *validator.Validate
	now      func() time.Time
}

func New(d Deps) *Server {
	if d.Metrics == nil {
		d.Metrics = metrics.Global
	}
	if d.Lookup == nil {
		d.Lookup = os.Getenv
	}
	if d.Environ == nil {
		d.Environ = os.Environ
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{Deps: d, validate: v, now: time.Now}
}

// Router wires every endpoint.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(s.observe)
	r.Use(s.deadline)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	r.Get("/health", s.handleHealth)
	r.Get("/api/stats", s.handleStats)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ai-write", s.handleWrite)
		r.Get("/hot-topics", s.handleHotTopics)
		r.Post("/translate", s.handleTranslate)
		r.Post("/spellcheck", s.handleSpellCheck)
		r.Post("/translate-url", s.handleTranslateURL)
		r.Post("/content-summary", s.handleSummary)

		r.Get("/content-summary-simple", s.handleDigestHealth)
		r.Post("/content-summary-simple", s.handleDigest)

		r.Get("/text-to-speech", s.handleTTSHealth)
		r.Post("/text-to-speech", s.handleTTS)
		r.Get("/speech-to-text", s.handleSTTHealth)
		r.Post("/speech-to-text", s.handleSTT)

		r.Get("/debug-tts", s.handleDebugTTS)
	})
	return r
}

// cors answers preflight requests itself so they never reach the method
// checks.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.Metrics.IncrementRequests(route)
		s.Metrics.RecordLatency(elapsed)
		logger.Debug("request served", "method", r.Method, "route", route, "status", ww.Status(), "duration", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) deadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.RequestTimeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), s.RequestTimeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("write response", "error", err)
	}
}

// requestError is a malformed or incomplete request body.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

// decode reads a JSON body into v and runs its validate tags. missing is the
// message used when a required field is absent.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any, missing string) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &requestError{message: "Request body too large"}
		case errors.Is(err, io.EOF):
			return &requestError{message: missing}
		}
		return &requestError{message: "Invalid JSON body"}
	}
	if err := s.validate.Struct(v); err != nil {
		logger.Debug("request validation failed", "path", r.URL.Path, "error", err)
		return &requestError{message: missing}
	}
	return nil
}

// failure says how one endpoint words its server errors.
type failure struct {
	// message replaces the error text for 500 answers, except a missing API
	// key; empty keeps it.
	message string
	// details adds the error text under "details".
	details bool
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || strings.Contains(strings.ToLower(err.Error()), "timeout")
}

// statusFor maps service errors to an HTTP status and the message shown to the
// caller.
func statusFor(err error) (int, string) {
	var (
		reqErr     *requestError
		inputErr   *speech.InputError
		extractErr *translate.ExtractError
	)
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.message
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, inputErr.Message
	case errors.As(err, &extractErr):
		return http.StatusBadRequest, extractErr.Error()
	case errors.Is(err, summary.ErrInvalidMode):
		return http.StatusBadRequest, "Invalid mode"
	case errors.Is(err, prompt.ErrUnknownMethod):
		return http.StatusBadRequest, "Invalid input method"
	case errors.Is(err, prompt.ErrUnknownDirection):
		return http.StatusBadRequest, "Invalid direction"
	case errors.Is(err, ratelimit.ErrQuotaExceeded):
		return http.StatusTooManyRequests, err.Error()
	case isTimeout(err):
		return http.StatusRequestTimeout, err.Error()
	}
	return http.StatusInternalServerError, err.Error()
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, f failure) {
	code, msg := statusFor(err)
	if code < http.StatusInternalServerError && code != http.StatusRequestTimeout {
		writeJSON(w, code, errorResponse{Error: msg})
		return
	}

	logger.Error("request failed", "path", r.URL.Path, "status", code, "error", err, "request_id", middleware.GetReqID(r.Context()))
	s.Metrics.SetError(err.Error())

	resp := errorResponse{Error: msg}
	if code == http.StatusInternalServerError && f.message != "" && !errors.Is(err, llm.ErrNotConfigured) {
		resp.Error = f.message
	}
	if f.details {
		resp.Details = err.Error()
	}
	writeJSON(w, code, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.Metrics.GetStats()
	resp := map[string]any{
		"status":         "ok",
		"uptime_seconds": stats["uptime_seconds"],
		"total_requests": stats["total_requests"],
		"last_error":     stats["last_error"],
		"tts_mode":       speechMode(s.TTS == nil || s.TTS.Demo()),
		"stt_mode":       speechMode(s.STT == nil || s.STT.Demo()),
		"timestamp":      s.now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, resp)
}

func speechMode(demo bool) string {
	if demo {
		return speech.ModeDemo
	}
	return speech.ModeProduction
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"requests": s.Metrics.GetStats()}
	if s.Limiter != nil {
		resp["ai_usage"] = s.Limiter.GetStats()
	}
	writeJSON(w, http.StatusOK, resp)
}

// cacheResult counts a cache lookup in both the request metrics and the AI
// usage stats.
func (s *Server) cacheResult(hit bool) {
	if !hit {
		s.Metrics.IncrementCacheMisses()
		return
	}
	s.Metrics.IncrementCacheHits()
	if s.Limiter != nil {
		s.Limiter.RecordCacheHit()
	}
}
