package dataset

import (
	"fmt"
	"time"

	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/tokens"
)

// Snapshot is the immutable unit of work for every downstream stage. It is
// owned by the session store; consumers receive a reference for the duration
// of one request and must not retain it past that call.
type Snapshot struct {
	Records []models.Conversation `json:"-"`

	TotalExamples       int       `json:"total_examples"`
	InvalidExamples     int       `json:"invalid_examples"`
	TotalTokens         int       `json:"total_tokens"`
	AvgTokensPerExample int       `json:"avg_tokens_per_example"`
	SingleTurnPct       int       `json:"single_turn_pct"`
	MultiTurnPct        int       `json:"multi_turn_pct"`
	HasSystemPrompts    bool      `json:"has_system_prompts"`
	CreatedAt           time.Time `json:"created_at"`
}

// Snapshot builds the immutable dataset snapshot for the parse result.
// Returns ErrInsufficientData when fewer than MinExamples valid records exist.
func (pr *ParseResult) Snapshot(now time.Time) (*Snapshot, error) {
	if pr.ValidCount < MinExamples {
		return nil, fmt.Errorf("%w: need at least %d valid examples, got %d",
			ErrInsufficientData, MinExamples, pr.ValidCount)
	}

	totalTokens := 0
	singleTurn := 0
	hasSystem := false

	for _, rec := range pr.Records {
		totalTokens += tokens.EstimateConversation(rec)
		if rec.HasSystem() {
			hasSystem = true
		}
		// A single-turn record is exactly one user+assistant exchange,
		// ignoring any system message.
		if rec.NonSystemCount() == 2 {
			singleTurn++
		}
	}

	total := len(pr.Records)
	singlePct := singleTurn * 100 / total
	return &Snapshot{
		Records:             pr.Records,
		TotalExamples:       total,
		InvalidExamples:     pr.InvalidCount,
		TotalTokens:         totalTokens,
		AvgTokensPerExample: totalTokens / total,
		SingleTurnPct:       singlePct,
		MultiTurnPct:        100 - singlePct,
		HasSystemPrompts:    hasSystem,
		CreatedAt:           now,
	}, nil
}
