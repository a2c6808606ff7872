// Package httpapi exposes the request-processing core over REST. The
// transport stays thin: decode the body into a raw map, attach the caller
// identity and correlation id, hand everything to Process, and translate the
// Result kind into an HTTP status.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

const correlationHeader = "X-Correlation-ID"

// Core is the application surface the transport drives.
type Core interface {
	Process(ctx context.Context, kind string, raw map[string]any, correlationID string) result.Result[any]
}

// Server is the REST facade over the core.
type Server struct {
	core    Core
	auth    *Authenticator
	limiter *RateLimiter
	metrics *Metrics
	log     *logger.Logger
}

// NewServer assembles the facade. A nil limiter disables rate limiting.
func NewServer(core Core, auth *Authenticator, limiter *RateLimiter, metrics *Metrics, log *logger.Logger) *Server {
	return &Server{core: core, auth: auth, limiter: limiter, metrics: metrics, log: log}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/v1").Subrouter()
	api.Use(s.requestLogging)
	if s.metrics != nil {
		api.Use(s.metrics.Middleware)
	}
	if s.limiter != nil {
		api.Use(s.limiter.Middleware)
	}
	api.Use(s.auth.Middleware)

	api.HandleFunc("/ideas", s.handleSubmitIdea).Methods(http.MethodPost)
	api.HandleFunc("/ideas/search", s.handleSearchIdeas).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{id}", s.handleGetIdea).Methods(http.MethodGet)
	api.HandleFunc("/ideas/{id}", s.handleDeleteIdea).Methods(http.MethodDelete)
	api.HandleFunc("/ideas/{id}/score", s.handleScoreIdea).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{id}/plans", s.handleGeneratePlan).Methods(http.MethodPost)
	api.HandleFunc("/ideas/{id}/plans", s.handleListPlans).Methods(http.MethodGet)

	api.HandleFunc("/projects", s.handleSubmitProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/search", s.handleSearchProjects).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}/score", s.handleScoreProject).Methods(http.MethodPost)

	api.HandleFunc("/plans/{id}", s.handleDeletePlan).Methods(http.MethodDelete)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// process runs one request through the core and writes the outcome.
func (s *Server) process(w http.ResponseWriter, r *http.Request, kind string, raw map[string]any, successStatus int) {
	correlationID := r.Header.Get(correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	w.Header().Set(correlationHeader, correlationID)

	res := s.core.Process(r.Context(), kind, raw, correlationID)
	if res.IsOK() {
		writeJSON(w, successStatus, res.Value())
		return
	}
	s.writeError(w, correlationID, kind, res.Err())
}

// writeError maps the failure taxonomy onto HTTP. Validation details are the
// only internal messages exposed verbatim; everything else stays generic.
func (s *Server) writeError(w http.ResponseWriter, correlationID, kind string, e *result.Error) {
	log := s.log.WithField("correlation_id", correlationID).WithField("kind", kind)
	switch e.Kind {
	case result.KindValidation:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid request",
			"details": e.Details,
		})
	case result.KindNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case result.KindTransientStorage:
		log.WithError(e).Warn("transient storage failure")
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "temporarily unavailable"})
	default:
		log.WithError(e).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON object body into a raw map. An empty body is an
// empty map; malformed JSON is a validation failure before the core runs.
func decodeBody(r *http.Request) (map[string]any, *result.Error) {
	raw := map[string]any{}
	if r.Body == nil || r.ContentLength == 0 {
		return raw, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, result.Validation("invalid request", "body must be a JSON object")
	}
	return raw, nil
}
