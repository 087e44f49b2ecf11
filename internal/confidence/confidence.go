// Package confidence estimates how much a dataset can be trusted for
// fine-tuning, combining coverage, redundancy and diversity sub-metrics.
package confidence

import (
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// Sub-metric weights. Coverage carries the most weight because poor input
// coverage means the model cannot generalize; redundancy is inverted so
// higher is better. The original constants were not recoverable, so this is
// the documented reference weighting.
const (
	weightCoverage   = 0.40
	weightRedundancy = 0.30 // applied as (1 - redundancy) * weight
	weightDiversity  = 0.30
)

// prefixLen is how much of the first user message is used as a coverage key.
const prefixLen = 48

// diversityNorm scales the vocabulary richness (unique / sqrt(total), a
// Heaps-law style measure) into [0,1].
const diversityNorm = 12.0

// Assess computes the confidence assessment for a snapshot. Redundancy is
// taken from the quality report's duplicate count so both stages agree on
// what counts as a duplicate.
func Assess(snap *dataset.Snapshot, report models.QualityReport) models.ConfidenceAssessment {
	coverage, covNote := measureCoverage(snap.Records)
	redundancy, redNote := measureRedundancy(report, snap.TotalExamples)
	diversity, divNote := measureDiversity(snap.Records)

	score := coverage*weightCoverage +
		(1-redundancy)*weightRedundancy +
		diversity*weightDiversity
	score = math.Round(score*100) / 100

	var notes []string
	for _, n := range []string{covNote, redNote, divNote} {
		if n != "" {
			notes = append(notes, n)
		}
	}
	explanation := "Dataset looks well-structured for training."
	if len(notes) > 0 {
		explanation = strings.Join(notes, ". ") + "."
	}

	assessment := models.ConfidenceAssessment{
		Score:       score,
		Level:       levelFor(score),
		Coverage:    math.Round(coverage*100) / 100,
		Redundancy:  math.Round(redundancy*100) / 100,
		Diversity:   math.Round(diversity*100) / 100,
		Explanation: explanation,
	}

	slog.Debug("confidence assessed", "score", assessment.Score, "level", assessment.Level)
	return assessment
}

// levelFor uses the same three-bucket thresholds as the risk estimator.
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

// measureCoverage proxies input-space coverage by the ratio of unique
// first-user-message prefixes to total examples.
func measureCoverage(records []models.Conversation) (float64, string) {
	if len(records) == 0 {
		return 0, "No examples to measure coverage"
	}

	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		prefix := strings.ToLower(strings.TrimSpace(rec.FirstUserContent()))
		if len(prefix) > prefixLen {
			prefix = prefix[:prefixLen]
		}
		seen[prefix] = true
	}

	coverage := float64(len(seen)) / float64(len(records))
	switch {
	case coverage > 0.7:
		return coverage, "Broad input coverage"
	case coverage > 0.4:
		return coverage, "Moderate input coverage"
	default:
		return coverage, "Many examples share the same opening prompt"
	}
}

func measureRedundancy(report models.QualityReport, total int) (float64, string) {
	if total == 0 {
		return 0, ""
	}
	redundancy := float64(report.DuplicateCount) / float64(total)
	switch {
	case redundancy > 0.2:
		return redundancy, "High redundancy from duplicated examples"
	case redundancy > 0.05:
		return redundancy, "Some duplicate examples found"
	default:
		return redundancy, ""
	}
}

// measureDiversity is a normalized measure of lexical variety across user
// messages: distinct lowercased words of 4+ letters over the square root of
// total occurrences.
func measureDiversity(records []models.Conversation) (float64, string) {
	distinct := make(map[string]bool)
	total := 0

	for _, rec := range records {
		for _, m := range rec.Messages {
			if m.Role != models.RoleUser {
				continue
			}
			for _, word := range strings.FieldsFunc(strings.ToLower(m.Content), notLetter) {
				if len(word) < 4 {
					continue
				}
				distinct[word] = true
				total++
			}
		}
	}

	if total == 0 {
		return 0, "No user message text to measure diversity"
	}

	richness := float64(len(distinct)) / math.Sqrt(float64(total))
	diversity := math.Min(1.0, richness/diversityNorm)
	switch {
	case diversity > 0.7:
		return diversity, "High lexical diversity"
	case diversity > 0.4:
		return diversity, ""
	default:
		return diversity, "Low lexical diversity - user prompts are very similar"
	}
}

func notLetter(r rune) bool {
	return !unicode.IsLetter(r)
}
