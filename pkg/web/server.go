// Package web renders the price checker page and serves it over HTTP.
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geniass/price-tracker/pkg/checker"
)

type Server struct {
	fetcher checker.Fetcher
	base    BaseContext
	logger  *zap.Logger
}

func NewServer(fetcher checker.Fetcher, base BaseContext, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{fetcher: fetcher, base: base, logger: logger}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.Home)
	mux.HandleFunc("POST /check", s.Check)
	mux.HandleFunc("GET /health", s.HealthCheck)

	return securityHeaders(mux)
}

func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, CheckerContext{BaseContext: s.base})
}

// Check mounts a form for this request, runs one check with the submitted
// product URL and renders the outcome.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	checkID := uuid.NewString()
	logger := s.logger.With(zap.String("check_id", checkID))

	var notice string
	form := checker.NewForm(s.fetcher, checker.NotifierFunc(func(m string) {
		notice = m
	}))
	form.SetInput(r.PostFormValue("product_url"))

	err := form.Check(r.Context())
	switch {
	case err == nil:
		price, _ := form.Price()
		logger.Info("price checked", zap.String("price", price))
	case errors.Is(err, checker.ErrEmptyInput):
		logger.Debug("check refused: empty input")
	default:
		logger.Debug("check failed", zap.Error(err))
	}

	s.render(w, CheckerContext{
		BaseContext: s.base,
		Snapshot:    form.Snapshot(),
		Notice:      notice,
	})
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) render(w http.ResponseWriter, c CheckerContext) {
	// nothing reaches w until the template has fully executed
	var buf bytes.Buffer
	if err := RenderChecker(&buf, c); err != nil {
		s.logger.Error("render page", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private, max-age=0")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		h.Set("Content-Security-Policy", "default-src 'self' 'unsafe-inline'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}
