// Package httpapi exposes the retrieval services over a chi HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/metrics"
	portfoliouc "github.com/emailcraft/outreach/internal/usecase/portfolio"
	templatesuc "github.com/emailcraft/outreach/internal/usecase/templates"
)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server routes retrieval requests to the usecase layer.
type Server struct {
	templates *templatesuc.Service
	portfolio *portfoliouc.Service
	pinger    Pinger // nil when the backend has no external store
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	templates *templatesuc.Service,
	portfolio *portfoliouc.Service,
	pinger Pinger,
	logger *zap.Logger,
) *Server {
	return &Server{
		templates: templates,
		portfolio: portfolio,
		pinger:    pinger,
		logger:    logger,
	}
}

// Router assembles the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogMiddleware(s.logger))
	r.Use(metrics.Middleware)

	r.Post("/v1/retrieve/templates", s.retrieveTemplates)
	r.Post("/v1/retrieve/portfolio", s.retrievePortfolio)
	r.Post("/v1/portfolio/items", s.addPortfolioItem)
	r.Get("/healthz", s.healthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// retrieveTemplates handles POST /v1/retrieve/templates.
func (s *Server) retrieveTemplates(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	items, err := s.templates.Retrieve(r.Context(), req.Job, req.Persona, req.Product, req.Industry)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, templatesResponse{Items: items, Total: len(items)})
}

// retrievePortfolio handles POST /v1/retrieve/portfolio.
func (s *Server) retrievePortfolio(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	items, err := s.portfolio.Retrieve(r.Context(), req.Job, req.Persona, req.Product, req.Industry)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, portfolioResponse{Items: items, Total: len(items)})
}

// addPortfolioItem handles POST /v1/portfolio/items.
func (s *Server) addPortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := s.portfolio.AddItem(r.Context(), req.TechStack, req.Link); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// healthz handles GET /healthz.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			checks["store"] = "unhealthy"
			status = http.StatusServiceUnavailable
		} else {
			checks["store"] = "healthy"
		}
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	writeJSON(w, status, map[string]any{"status": state, "checks": checks})
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", safeDomainMessage(err))
	case errors.Is(err, domain.ErrCorpusNotFound):
		writeError(w, http.StatusNotFound, "corpus_not_found", safeDomainMessage(err))
	case errors.Is(err, domain.ErrCorpusInvalid):
		writeError(w, http.StatusUnprocessableEntity, "corpus_invalid", safeDomainMessage(err))
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, "embedding_provider_error", safeDomainMessage(err))
	case errors.Is(err, domain.ErrCompletionProviderError):
		writeError(w, http.StatusBadGateway, "completion_provider_error", safeDomainMessage(err))
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrCorpusNotFound,
		domain.ErrCorpusInvalid,
		domain.ErrEmbeddingProviderError,
		domain.ErrCompletionProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
