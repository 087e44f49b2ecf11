// Package webapi exposes the analysis engine over HTTP.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/recommend"
	"github.com/vedanthq/SLMGen/internal/session"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxUploadBytes caps dataset upload bodies at 100 MB.
const maxUploadBytes = 100 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	engine *engine.Engine
}

// NewHandlers creates a new Handlers around the engine.
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{engine: eng}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleIngest accepts a JSONL (optionally gzipped) dataset body and opens
// an analysis session.
func (h *Handlers) HandleIngest(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	result, err := h.engine.Ingest(r.Context(), body)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleAnalysis returns the quality report and dataset characteristics.
func (h *Handlers) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.Analyze(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleRisk returns the overfitting risk assessment.
func (h *Handlers) HandleRisk(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.AssessRisk(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleConfidence returns the training-confidence assessment.
func (h *Handlers) HandleConfidence(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.AssessConfidence(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandlePersonality returns the inferred behavioral profile.
func (h *Handlers) HandlePersonality(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.Personality(r.PathValue("id"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleRecommendation scores the catalog against the session's dataset and
// the requested task and deployment target.
func (h *Handlers) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.engine.Recommend(r.PathValue("id"), req.Task, req.Deployment)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCatalog returns the model catalog in declaration order.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Models: h.engine.Catalog().Entries()})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, eng *engine.Engine) {
	h := NewHandlers(eng)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/catalog", h.HandleCatalog)
	mux.HandleFunc("POST /api/datasets", h.HandleIngest)
	mux.HandleFunc("GET /api/sessions/{id}/analysis", h.HandleAnalysis)
	mux.HandleFunc("GET /api/sessions/{id}/risk", h.HandleRisk)
	mux.HandleFunc("GET /api/sessions/{id}/confidence", h.HandleConfidence)
	mux.HandleFunc("GET /api/sessions/{id}/personality", h.HandlePersonality)
	mux.HandleFunc("POST /api/sessions/{id}/recommendation", h.HandleRecommendation)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeEngineError maps the engine's error taxonomy to HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d byte limit", maxBytesErr.Limit))
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found or expired")
	case errors.Is(err, dataset.ErrInsufficientData):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnknownTaskType),
		errors.Is(err, models.ErrUnknownDeploymentTarget),
		errors.Is(err, recommend.ErrNoEligibleModel):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
