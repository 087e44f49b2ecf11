package webapi

import "github.com/vedanthq/SLMGen/internal/catalog"

// RecommendationRequest is the body of POST /api/sessions/{id}/recommendation.
type RecommendationRequest struct {
	Task       string `json:"task"`
	Deployment string `json:"deployment"`
}

// CatalogResponse lists the catalog entries in declaration order.
type CatalogResponse struct {
	Models []catalog.Entry `json:"models"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
