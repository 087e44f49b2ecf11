package confidence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// letterWord encodes i as a six-letter word so diversity counting sees each
// one as distinct vocabulary.
func letterWord(i int) string {
	var b [6]byte
	for pos := 5; pos >= 0; pos-- {
		b[pos] = byte('a' + i%26)
		i /= 26
	}
	return string(b[:])
}

func variedRecords(n int) []models.Conversation {
	recs := make([]models.Conversation, 0, n)
	for i := 0; i < n; i++ {
		words := make([]string, 5)
		for j := range words {
			words[j] = letterWord(i*5 + j)
		}
		recs = append(recs, models.Conversation{Messages: []models.Message{
			{Role: models.RoleUser, Content: strings.Join(words, " ")},
			{Role: models.RoleAssistant, Content: fmt.Sprintf("response for example %d", i)},
		}})
	}
	return recs
}

func repetitiveRecords(n int) []models.Conversation {
	recs := make([]models.Conversation, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, models.Conversation{Messages: []models.Message{
			{Role: models.RoleUser, Content: "please classify this support ticket for me right now"},
			{Role: models.RoleAssistant, Content: fmt.Sprintf("category %d", i)},
		}})
	}
	return recs
}

func TestAssess_VariedDataset(t *testing.T) {
	snap := &dataset.Snapshot{Records: variedRecords(120), TotalExamples: 120}
	conf := Assess(snap, models.QualityReport{})

	require.Equal(t, 1.0, conf.Coverage)
	require.Equal(t, 0.0, conf.Redundancy)
	require.Equal(t, 1.0, conf.Diversity)
	require.Equal(t, models.LevelHigh, conf.Level)
	require.Contains(t, conf.Explanation, "Broad input coverage")
	require.Contains(t, conf.Explanation, "High lexical diversity")
}

func TestAssess_RepetitivePrompts(t *testing.T) {
	snap := &dataset.Snapshot{Records: repetitiveRecords(100), TotalExamples: 100}
	conf := Assess(snap, models.QualityReport{})

	require.InDelta(t, 0.01, conf.Coverage, 1e-9)
	require.Less(t, conf.Diversity, 0.30)
	require.Contains(t, conf.Explanation, "share the same opening prompt")
	require.Contains(t, conf.Explanation, "Low lexical diversity")
}

func TestAssess_RedundancyFromQualityReport(t *testing.T) {
	snap := &dataset.Snapshot{Records: variedRecords(100), TotalExamples: 100}
	report := models.QualityReport{DuplicateCount: 30}
	conf := Assess(snap, report)

	require.InDelta(t, 0.30, conf.Redundancy, 1e-9)
	require.Contains(t, conf.Explanation, "redundancy")
}

func TestAssess_ScoreIsWeightedSum(t *testing.T) {
	snap := &dataset.Snapshot{Records: variedRecords(80), TotalExamples: 80}
	report := models.QualityReport{DuplicateCount: 8}
	conf := Assess(snap, report)

	expected := conf.Coverage*weightCoverage +
		(1-conf.Redundancy)*weightRedundancy +
		conf.Diversity*weightDiversity
	require.InDelta(t, expected, conf.Score, 0.02)
}

func TestAssess_LevelThresholds(t *testing.T) {
	require.Equal(t, models.LevelLow, levelFor(0.20))
	require.Equal(t, models.LevelLow, levelFor(0.33))
	require.Equal(t, models.LevelMedium, levelFor(0.34))
	require.Equal(t, models.LevelMedium, levelFor(0.66))
	require.Equal(t, models.LevelHigh, levelFor(0.67))
	require.Equal(t, models.LevelHigh, levelFor(0.95))
}

func TestAssess_Deterministic(t *testing.T) {
	snap := &dataset.Snapshot{Records: variedRecords(60), TotalExamples: 60}
	report := models.QualityReport{DuplicateCount: 4}

	first := Assess(snap, report)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Assess(snap, report))
	}
}
