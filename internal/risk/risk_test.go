package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

func TestAssess_CleanDataset(t *testing.T) {
	snap := &dataset.Snapshot{TotalExamples: 600, HasSystemPrompts: true}
	conf := models.ConfidenceAssessment{Diversity: 0.80}

	risk := Assess(snap, models.QualityReport{}, conf)

	require.Equal(t, 0.0, risk.Score)
	require.Equal(t, models.LevelLow, risk.Level)
	require.Equal(t, []string{"No significant risk factors detected"}, risk.Factors)
	require.Contains(t, risk.Recommendation, "safe to train")
}

func TestAssess_SmallDataset(t *testing.T) {
	snap := &dataset.Snapshot{TotalExamples: 80, HasSystemPrompts: true}
	conf := models.ConfidenceAssessment{Diversity: 0.80}

	risk := Assess(snap, models.QualityReport{}, conf)

	require.InDelta(t, smallSizeRisk, risk.Score, 1e-9)
	require.Equal(t, models.LevelLow, risk.Level)
	require.Len(t, risk.Factors, 1)
	require.Contains(t, risk.Factors[0], "Small dataset (80 examples)")
}

func TestAssess_StackedFactorsCapAtOne(t *testing.T) {
	// 80 examples, low diversity, no system prompts, 25% duplicates:
	// 0.25 + 0.30 + 0.20 + 0.30 exceeds 1.0 and must be capped.
	snap := &dataset.Snapshot{TotalExamples: 80}
	report := models.QualityReport{DuplicateCount: 20}
	conf := models.ConfidenceAssessment{Diversity: 0.10}

	risk := Assess(snap, report, conf)

	require.Equal(t, 1.0, risk.Score)
	require.Equal(t, models.LevelHigh, risk.Level)
	require.Len(t, risk.Factors, 4)
	require.Contains(t, risk.Factors[0], "Small dataset")
	require.Contains(t, risk.Factors[1], "Low lexical diversity")
	require.Contains(t, risk.Factors[2], "No system prompts")
	require.Contains(t, risk.Factors[3], "High duplication")
	require.Contains(t, risk.Recommendation, "Deduplicate")
}

func TestAssess_MediumRisk(t *testing.T) {
	// 0.10 (modest size) + 0.15 (moderate diversity) + 0.15 (some dups).
	snap := &dataset.Snapshot{TotalExamples: 300, HasSystemPrompts: true}
	report := models.QualityReport{DuplicateCount: 30}
	conf := models.ConfidenceAssessment{Diversity: 0.40}

	risk := Assess(snap, report, conf)

	require.InDelta(t, 0.40, risk.Score, 1e-9)
	require.Equal(t, models.LevelMedium, risk.Level)
	require.Len(t, risk.Factors, 3)
	require.Contains(t, risk.Recommendation, "early stopping")
}

func TestAssess_FactorOrderIsStable(t *testing.T) {
	snap := &dataset.Snapshot{TotalExamples: 80}
	report := models.QualityReport{DuplicateCount: 10}
	conf := models.ConfidenceAssessment{Diversity: 0.20}

	first := Assess(snap, report, conf)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Assess(snap, report, conf))
	}
}
