// Package engine wires the analysis stages together behind one API used by
// both the CLI and the HTTP layer. Each operation validates its inputs,
// fetches the snapshot and runs pure stage functions; the session store is
// the only shared state.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vedanthq/SLMGen/internal/analyze"
	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/confidence"
	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/personality"
	"github.com/vedanthq/SLMGen/internal/quality"
	"github.com/vedanthq/SLMGen/internal/recommend"
	"github.com/vedanthq/SLMGen/internal/risk"
	"github.com/vedanthq/SLMGen/internal/session"
)

// Engine runs the analysis pipeline over stored sessions.
type Engine struct {
	store   session.Store
	catalog *catalog.Catalog
	now     func() time.Time
}

// New builds an engine over the given store and catalog.
func New(store session.Store, cat *catalog.Catalog) *Engine {
	return &Engine{store: store, catalog: cat, now: time.Now}
}

// IngestResult reports what happened to an upload.
type IngestResult struct {
	SessionID    string                    `json:"session_id"`
	ValidCount   int                       `json:"valid_count"`
	InvalidCount int                       `json:"invalid_count"`
	Issues       []dataset.ValidationIssue `json:"issues,omitempty"`
	Quality      models.QualityReport      `json:"quality"`
	Stats        *dataset.Snapshot         `json:"stats"`
}

// AnalysisResult pairs the quality report with the dataset characteristics.
type AnalysisResult struct {
	Quality         models.QualityReport   `json:"quality"`
	Characteristics models.Characteristics `json:"characteristics"`
}

// Ingest parses an upload, builds the snapshot and stores it under a new
// session. Fails with dataset.ErrInsufficientData when fewer than
// dataset.MinExamples lines are valid; in that case nothing is stored.
func (e *Engine) Ingest(ctx context.Context, r io.Reader) (*IngestResult, error) {
	parsed, err := dataset.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap, err := parsed.Snapshot(e.now())
	if err != nil {
		return nil, err
	}

	report := quality.Score(snap)
	id := e.store.Put(snap)

	slog.Info("dataset ingested",
		"session_id", id,
		"valid", parsed.ValidCount,
		"invalid", parsed.InvalidCount,
		"quality", report.Score)

	return &IngestResult{
		SessionID:    id,
		ValidCount:   parsed.ValidCount,
		InvalidCount: parsed.InvalidCount,
		Issues:       parsed.Issues,
		Quality:      report,
		Stats:        snap,
	}, nil
}

// Analyze recomputes quality and characteristics for a session. Both stages
// are pure, so repeated calls on an unchanged session return identical
// results.
func (e *Engine) Analyze(id string) (*AnalysisResult, error) {
	snap, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{
		Quality:         quality.Score(snap),
		Characteristics: analyze.Characteristics(snap),
	}, nil
}

// AssessRisk computes the overfitting risk for a session.
func (e *Engine) AssessRisk(id string) (models.RiskAssessment, error) {
	snap, err := e.store.Get(id)
	if err != nil {
		return models.RiskAssessment{}, err
	}
	report := quality.Score(snap)
	conf := confidence.Assess(snap, report)
	return risk.Assess(snap, report, conf), nil
}

// AssessConfidence computes the training-confidence assessment for a session.
func (e *Engine) AssessConfidence(id string) (models.ConfidenceAssessment, error) {
	snap, err := e.store.Get(id)
	if err != nil {
		return models.ConfidenceAssessment{}, err
	}
	return confidence.Assess(snap, quality.Score(snap)), nil
}

// Personality infers the behavioral profile for a session.
func (e *Engine) Personality(id string) (personality.Profile, error) {
	snap, err := e.store.Get(id)
	if err != nil {
		return personality.Profile{}, err
	}
	return personality.Detect(snap), nil
}

// Recommend ranks catalog entries for a session and intent. The task and
// deployment strings are validated before any lookup or scoring work.
func (e *Engine) Recommend(id, taskStr, deployStr string) (*recommend.Result, error) {
	task, err := models.ParseTaskType(taskStr)
	if err != nil {
		return nil, err
	}
	deploy, err := models.ParseDeploymentTarget(deployStr)
	if err != nil {
		return nil, err
	}

	snap, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	chars := analyze.Characteristics(snap)
	return recommend.Recommend(e.catalog, snap, chars, task, deploy)
}

// Catalog exposes the engine's model catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
