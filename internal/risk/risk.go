// Package risk estimates the chance that fine-tuning on a dataset produces a
// model that memorizes or overfits instead of generalizing.
package risk

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// Additive risk contributions. The total is capped at 1.0.
const (
	smallSizeRisk  = 0.25 // fewer than 100 examples
	modestSizeRisk = 0.10 // fewer than 500

	lowDiversityRisk      = 0.30 // diversity below 0.30
	moderateDiversityRisk = 0.15 // below 0.50

	noSystemPromptRisk = 0.20

	highDuplicationRisk = 0.30 // duplicate fraction above 20%
	someDuplicationRisk = 0.15 // above 5%
)

// Assess computes the overfitting risk for a snapshot. The diversity input is
// the confidence assessment's diversity sub-metric so both stages read the
// same signal. Factors are listed in a fixed order: size, diversity, system
// prompts, duplication.
func Assess(snap *dataset.Snapshot, report models.QualityReport, conf models.ConfidenceAssessment) models.RiskAssessment {
	score := 0.0
	var factors []string

	switch {
	case snap.TotalExamples < 100:
		score += smallSizeRisk
		factors = append(factors,
			fmt.Sprintf("Small dataset (%d examples) increases memorization risk", snap.TotalExamples))
	case snap.TotalExamples < 500:
		score += modestSizeRisk
		factors = append(factors,
			fmt.Sprintf("Modest dataset size (%d examples)", snap.TotalExamples))
	}

	switch {
	case conf.Diversity < 0.30:
		score += lowDiversityRisk
		factors = append(factors, "Low lexical diversity across user prompts")
	case conf.Diversity < 0.50:
		score += moderateDiversityRisk
		factors = append(factors, "Moderate lexical diversity across user prompts")
	}

	if !snap.HasSystemPrompts {
		score += noSystemPromptRisk
		factors = append(factors, "No system prompts to anchor model behavior")
	}

	dupFraction := 0.0
	if snap.TotalExamples > 0 {
		dupFraction = float64(report.DuplicateCount) / float64(snap.TotalExamples)
	}
	switch {
	case dupFraction > 0.20:
		score += highDuplicationRisk
		factors = append(factors,
			fmt.Sprintf("High duplication (%.0f%% of examples)", dupFraction*100))
	case dupFraction > 0.05:
		score += someDuplicationRisk
		factors = append(factors,
			fmt.Sprintf("Duplicated examples (%.0f%%) reinforce memorization", dupFraction*100))
	}

	score = math.Min(1.0, score)
	score = math.Round(score*100) / 100

	if len(factors) == 0 {
		factors = []string{"No significant risk factors detected"}
	}

	level := levelFor(score)
	assessment := models.RiskAssessment{
		Score:          score,
		Level:          level,
		Factors:        factors,
		Recommendation: recommendationFor(level),
	}

	slog.Debug("risk assessed", "score", assessment.Score, "level", assessment.Level)
	return assessment
}

func levelFor(score float64) models.Level {
	switch {
	case score < 0.34:
		return models.LevelLow
	case score < 0.67:
		return models.LevelMedium
	default:
		return models.LevelHigh
	}
}

func recommendationFor(level models.Level) string {
	switch level {
	case models.LevelLow:
		return "Dataset looks safe to train on. Use a held-out split to verify generalization."
	case models.LevelMedium:
		return "Train with early stopping and a validation split. Consider adding more varied examples."
	default:
		return "High overfitting risk. Deduplicate, add more varied examples, and use a strict validation split before training."
	}
}
