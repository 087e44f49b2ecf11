// Package analyze extracts structural and linguistic characteristics from a
// dataset snapshot. Everything here is a heuristic over a bounded sample,
// not a full linguistic analysis.
package analyze

import (
	"encoding/json"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

const (
	// languageSampleRecords bounds the language detection pass.
	languageSampleRecords = 500
	// jsonSampleRecords bounds the structured-output detection pass.
	jsonSampleRecords = 200

	// dominanceThreshold: a dataset is multilingual when no single language
	// accounts for more than this share of the classified sample.
	dominanceThreshold = 0.70
)

// stopWords maps language codes to common-word sets, checked in fixed order
// so plurality ties resolve deterministically (English first).
var stopWords = []struct {
	code  string
	words map[string]bool
}{
	{"en", wordSet("the", "is", "are", "was", "were", "have", "has", "been", "will", "would", "could", "should", "and", "you", "this", "that")},
	{"es", wordSet("el", "la", "los", "las", "una", "es", "son", "para", "con", "por", "que", "pero", "como", "muy")},
	{"fr", wordSet("le", "les", "une", "est", "sont", "dans", "pour", "avec", "sur", "je", "vous", "pas", "c'est")},
	{"de", wordSet("der", "die", "das", "ein", "eine", "ist", "sind", "und", "nicht", "mit", "auf", "von", "ich")},
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Characteristics derives the traits used for model selection. Pure function
// of the snapshot: repeated calls yield identical results.
func Characteristics(snap *dataset.Snapshot) models.Characteristics {
	chars := models.Characteristics{
		IsMultiTurn:       snap.MultiTurnPct > 50,
		AvgResponseLength: avgResponseLength(snap.Records),
		LooksLikeJSON:     looksLikeJSON(snap.Records),
	}
	chars.DominantLanguage, chars.IsMultilingual = detectLanguage(snap.Records)

	slog.Debug("characteristics extracted",
		"dominant_language", chars.DominantLanguage,
		"multilingual", chars.IsMultilingual,
		"json_output", chars.LooksLikeJSON,
		"multi_turn", chars.IsMultiTurn)

	return chars
}

// detectLanguage classifies each sampled assistant message and returns the
// plurality language plus whether the sample is multilingual (no single
// language above the dominance threshold).
func detectLanguage(records []models.Conversation) (string, bool) {
	sample := records
	if len(sample) > languageSampleRecords {
		sample = sample[:languageSampleRecords]
	}

	counts := make(map[string]int)
	classified := 0
	for _, rec := range sample {
		for _, content := range rec.AssistantContents() {
			lang := classifyMessage(content)
			if lang == "" {
				continue
			}
			counts[lang]++
			classified++
		}
	}

	if classified == 0 {
		return "en", false
	}

	// Fixed evaluation order keeps plurality ties deterministic.
	dominant := "en"
	best := 0
	for _, lang := range languageOrder() {
		if counts[lang] > best {
			best = counts[lang]
			dominant = lang
		}
	}

	multilingual := float64(best)/float64(classified) <= dominanceThreshold
	return dominant, multilingual
}

func languageOrder() []string {
	order := []string{"en", "es", "fr", "de"}
	return append(order, "zh", "ja", "ko", "ru")
}

// classifyMessage assigns a language code to one message, or "" when the
// content carries no usable signal. Script ranges take precedence over
// stop-word overlap since they are far stronger evidence.
func classifyMessage(content string) string {
	if lang := classifyByScript(content); lang != "" {
		return lang
	}

	best := ""
	bestHits := 0
	for _, sw := range stopWords {
		hits := 0
		for _, word := range strings.Fields(strings.ToLower(content)) {
			if sw.words[strings.Trim(word, ".,!?;:\"'()")] {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			best = sw.code
		}
	}
	return best
}

// classifyByScript returns a language code when a non-Latin script dominates
// the letters of the content.
func classifyByScript(content string) string {
	var han, kana, hangul, cyrillic, letters int
	for _, r := range content {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r):
			kana++
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.Is(unicode.Hangul, r):
			hangul++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		}
	}
	if letters == 0 {
		return ""
	}

	// Kana is checked before Han so Japanese text with kanji resolves to ja.
	threshold := letters / 5
	switch {
	case kana > threshold:
		return "ja"
	case han > threshold:
		return "zh"
	case hangul > threshold:
		return "ko"
	case cyrillic > threshold:
		return "ru"
	}
	return ""
}

// looksLikeJSON reports whether a majority of sampled assistant responses
// parse as JSON object or array literals.
func looksLikeJSON(records []models.Conversation) bool {
	sample := records
	if len(sample) > jsonSampleRecords {
		sample = sample[:jsonSampleRecords]
	}

	jsonLike, total := 0, 0
	for _, rec := range sample {
		for _, content := range rec.AssistantContents() {
			total++
			trimmed := strings.TrimSpace(content)
			if trimmed == "" {
				continue
			}
			if (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed)) {
				jsonLike++
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(jsonLike)/float64(total) > 0.5
}

// avgResponseLength is the mean rune length of assistant messages across the
// whole snapshot.
func avgResponseLength(records []models.Conversation) int {
	total, count := 0, 0
	for _, rec := range records {
		for _, content := range rec.AssistantContents() {
			total += utf8.RuneCountInString(content)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / count
}
