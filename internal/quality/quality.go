// Package quality scores a dataset snapshot for issues that affect training
// quality. Scores range from 0.0 (unusable) to 1.0 (clean).
package quality

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"math"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// Penalty constants. Duplicates penalize in bands by duplicate fraction;
// size and consistency issues penalize flat amounts.
const (
	dupPenaltyHigh   = 0.30 // duplicate fraction above 20%
	dupPenaltyMedium = 0.15 // above 10%
	dupPenaltyLow    = 0.05 // above 5%

	sizePenaltySmall  = 0.10 // fewer than 100 examples
	sizePenaltyModest = 0.05 // fewer than 500 examples

	emptyResponsePenalty = 0.20
	inconsistencyPenalty = 0.05

	// messageCountCVThreshold flags datasets whose per-record message counts
	// vary wildly (coefficient of variation above this value).
	messageCountCVThreshold = 0.75

	// shortResponseChars is the length below which an assistant response is
	// considered suspiciously short.
	shortResponseChars = 10

	// invalidFractionThreshold is the invalid-line fraction above which the
	// parse loss is surfaced as a quality issue.
	invalidFractionThreshold = 0.05

	maxDuplicateExamples = 10
)

// Score computes the quality report for a snapshot. It is a pure function:
// identical snapshots always yield identical reports, and issues are emitted
// in a fixed canonical order (duplicates, size, responses, consistency,
// parse loss).
func Score(snap *dataset.Snapshot) models.QualityReport {
	report := models.QualityReport{
		SingleTurnPct:       snap.SingleTurnPct,
		MultiTurnPct:        snap.MultiTurnPct,
		HasSystemPrompts:    snap.HasSystemPrompts,
		AvgTokensPerExample: snap.AvgTokensPerExample,
	}

	if len(snap.Records) == 0 {
		report.Issues = []string{"Empty dataset"}
		return report
	}

	penalty := 0.0

	dupCount, dupExamples := findDuplicates(snap.Records)
	report.DuplicateCount = dupCount
	report.DuplicateExamples = dupExamples
	dupFraction := float64(dupCount) / float64(len(snap.Records))
	switch {
	case dupFraction > 0.20:
		penalty += dupPenaltyHigh
		report.Issues = append(report.Issues,
			fmt.Sprintf("High duplication: %.1f%% of examples are duplicates", dupFraction*100))
	case dupFraction > 0.10:
		penalty += dupPenaltyMedium
		report.Issues = append(report.Issues,
			fmt.Sprintf("Some duplicates found: %.1f%% duplicated", dupFraction*100))
	case dupFraction > 0.05:
		penalty += dupPenaltyLow
		report.Issues = append(report.Issues,
			fmt.Sprintf("A few duplicates: %.1f%%", dupFraction*100))
	}

	switch {
	case snap.TotalExamples < 100:
		penalty += sizePenaltySmall
		report.Issues = append(report.Issues,
			fmt.Sprintf("Only %d examples - below recommended minimum of 100", snap.TotalExamples))
	case snap.TotalExamples < 500:
		penalty += sizePenaltyModest
	}

	emptyCount, shortCount := responseLengths(snap.Records)
	if emptyCount > 0 {
		penalty += emptyResponsePenalty
		report.Issues = append(report.Issues,
			fmt.Sprintf("Found %d empty assistant responses", emptyCount))
	}
	if shortCount*10 > len(snap.Records) {
		report.Issues = append(report.Issues,
			fmt.Sprintf("Many very short responses (%d under %d chars)", shortCount, shortResponseChars))
	}

	if cv := messageCountCV(snap.Records); cv > messageCountCVThreshold {
		penalty += inconsistencyPenalty
		report.Issues = append(report.Issues,
			"Inconsistent message counts across examples")
	}

	if snap.InvalidExamples > 0 {
		submitted := snap.TotalExamples + snap.InvalidExamples
		invalidFraction := float64(snap.InvalidExamples) / float64(submitted)
		if invalidFraction > invalidFractionThreshold {
			report.Issues = append(report.Issues,
				fmt.Sprintf("%d of %d uploaded lines were invalid and skipped", snap.InvalidExamples, submitted))
		}
	}

	report.Score = math.Max(0.0, 1.0-penalty)

	slog.Debug("quality score computed",
		"score", report.Score, "issues", len(report.Issues), "duplicates", dupCount)

	return report
}

// findDuplicates detects exact duplicates via order-sensitive hashing of the
// full message sequence: two records are duplicates only if every message
// matches in role, content and position. Returns the number of extra copies
// and the indices of up to maxDuplicateExamples later occurrences.
func findDuplicates(records []models.Conversation) (int, []int) {
	seen := make(map[[32]byte]bool, len(records))
	count := 0
	var examples []int

	for i, rec := range records {
		h := hashConversation(rec)
		if seen[h] {
			count++
			if len(examples) < maxDuplicateExamples {
				examples = append(examples, i)
			}
			continue
		}
		seen[h] = true
	}
	return count, examples
}

func hashConversation(c models.Conversation) [32]byte {
	h := sha256.New()
	for _, m := range c.Messages {
		h.Write([]byte(m.Role))
		h.Write([]byte{0x00})
		h.Write([]byte(m.Content))
		h.Write([]byte{0x1e})
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func responseLengths(records []models.Conversation) (empty, short int) {
	for _, rec := range records {
		for _, m := range rec.Messages {
			if m.Role != models.RoleAssistant {
				continue
			}
			switch {
			case len(m.Content) == 0:
				empty++
			case len(m.Content) < shortResponseChars:
				short++
			}
		}
	}
	return empty, short
}

// messageCountCV returns the coefficient of variation of per-record message
// counts. Zero when there are fewer than two records or a zero mean.
func messageCountCV(records []models.Conversation) float64 {
	if len(records) < 2 {
		return 0
	}
	sum := 0.0
	for _, rec := range records {
		sum += float64(len(rec.Messages))
	}
	mean := sum / float64(len(records))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, rec := range records {
		diff := float64(len(rec.Messages)) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance/float64(len(records))) / mean
}
