// Package personality infers the behavioral profile a dataset would teach a
// model: how formal, how wordy, how technical and how templated the
// assistant responses are.
package personality

import (
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// minResponses is the floor below which the profile falls back to neutral
// defaults with low confidence.
const minResponses = 20

// Profile describes the inferred assistant behavior.
type Profile struct {
	Tone         string  `json:"tone"`         // formal, casual, neutral
	Verbosity    string  `json:"verbosity"`    // concise, moderate, verbose
	Technicality string  `json:"technicality"` // layman, intermediate, expert
	Strictness   string  `json:"strictness"`   // flexible, moderate, strict
	Confidence   float64 `json:"confidence"`
	Summary      string  `json:"summary"`
}

var formalMarkers = markerSet(
	"therefore", "consequently", "furthermore", "moreover", "however",
	"nevertheless", "whereas", "accordingly", "subsequently", "thus",
	"hereby", "henceforth", "notwithstanding", "pursuant", "regarding")

var casualMarkers = markerSet(
	"hey", "cool", "awesome", "gonna", "wanna", "kinda", "sorta", "yeah",
	"nope", "ok", "okay", "sure", "yep", "btw", "lol", "haha", "omg")

var technicalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(api|sdk|cli|gui|http|tcp|udp|sql|nosql|orm|mvc|crud)\b`),
	regexp.MustCompile(`\b(algorithm|function|variable|parameter|argument|instance)\b`),
	regexp.MustCompile(`\b(deploy|compile|debug|refactor|optimize|integrate|implement)\b`),
	regexp.MustCompile(`\b(tensor|gradient|epoch|batch|layer|neural|vector|matrix)\b`),
	regexp.MustCompile(`\b(kubernetes|docker|aws|gcp|azure|terraform|ansible)\b`),
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)
var sentenceSplit = regexp.MustCompile(`[.!?]+`)

func markerSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Detect infers the personality profile from the snapshot's assistant
// responses. Deterministic for a fixed snapshot.
func Detect(snap *dataset.Snapshot) Profile {
	responses := collectResponses(snap.Records)

	if len(responses) < minResponses {
		return Profile{
			Tone:         "neutral",
			Verbosity:    "moderate",
			Technicality: "intermediate",
			Strictness:   "moderate",
			Confidence:   0.3,
			Summary: "Not enough data for a reliable personality analysis. " +
				"Add more examples for a better assessment.",
		}
	}

	tone, toneConf := analyzeTone(responses)
	verbosity, verbConf := analyzeVerbosity(responses)
	technicality, techConf := analyzeTechnicality(responses)
	strictness, strictConf := analyzeStrictness(responses)

	confidence := (toneConf + verbConf + techConf + strictConf) / 4
	confidence = math.Round(confidence*100) / 100

	profile := Profile{
		Tone:         tone,
		Verbosity:    verbosity,
		Technicality: technicality,
		Strictness:   strictness,
		Confidence:   confidence,
		Summary:      summarize(tone, verbosity, technicality, strictness),
	}

	slog.Debug("personality detected",
		"tone", tone, "verbosity", verbosity,
		"technicality", technicality, "strictness", strictness,
		"confidence", confidence)

	return profile
}

func collectResponses(records []models.Conversation) []string {
	var responses []string
	for _, rec := range records {
		for _, content := range rec.AssistantContents() {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				responses = append(responses, trimmed)
			}
		}
	}
	return responses
}

// analyzeTone weighs formal against casual marker vocabulary, with average
// sentence length as a tiebreaker signal.
func analyzeTone(responses []string) (string, float64) {
	allText := strings.ToLower(strings.Join(responses, " "))

	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(allText, -1) {
		words[w] = true
	}
	formalCount, casualCount := 0, 0
	for w := range words {
		if formalMarkers[w] {
			formalCount++
		}
		if casualMarkers[w] {
			casualCount++
		}
	}

	sentences := sentenceSplit.Split(allText, -1)
	totalWords := 0
	for _, s := range sentences {
		totalWords += len(strings.Fields(s))
	}
	avgSentenceLen := float64(totalWords) / math.Max(float64(len(sentences)), 1)

	formalScore := formalCount * 2
	if avgSentenceLen > 15 {
		formalScore++
	}
	casualScore := casualCount * 2
	if avgSentenceLen < 10 {
		casualScore++
	}

	switch {
	case formalScore > casualScore+2:
		return "formal", math.Min(0.9, 0.5+float64(formalScore)*0.1)
	case casualScore > formalScore+2:
		return "casual", math.Min(0.9, 0.5+float64(casualScore)*0.1)
	}
	return "neutral", 0.6
}

func analyzeVerbosity(responses []string) (string, float64) {
	total := 0
	for _, r := range responses {
		total += len(r)
	}
	avgLen := float64(total) / float64(len(responses))

	switch {
	case avgLen < 150:
		return "concise", 0.8
	case avgLen < 500:
		return "moderate", 0.7
	default:
		return "verbose", 0.8
	}
}

// analyzeTechnicality measures jargon density per 100 words.
func analyzeTechnicality(responses []string) (string, float64) {
	allText := strings.ToLower(strings.Join(responses, " "))
	totalWords := len(wordPattern.FindAllString(allText, -1))
	if totalWords == 0 {
		return "layman", 0.3
	}

	techCount := 0
	for _, pattern := range technicalPatterns {
		techCount += len(pattern.FindAllString(allText, -1))
	}

	density := float64(techCount) / (float64(totalWords) / 100)
	switch {
	case density > 3:
		return "expert", 0.85
	case density > 1:
		return "intermediate", 0.75
	default:
		return "layman", 0.7
	}
}

// analyzeStrictness reads response length variance and repeated openings as
// evidence of templated output.
func analyzeStrictness(responses []string) (string, float64) {
	if len(responses) < 10 {
		return "moderate", 0.4
	}

	lengths := make([]float64, len(responses))
	sum := 0.0
	for i, r := range responses {
		lengths[i] = float64(len(r))
		sum += lengths[i]
	}
	mean := sum / float64(len(responses))

	variance := 0.0
	for _, l := range lengths {
		diff := l - mean
		variance += diff * diff
	}
	cv := 0.0
	if mean > 0 {
		cv = math.Sqrt(variance/float64(len(responses))) / mean
	}

	if len(responses) > 20 {
		prefixes := make(map[string]int)
		mostCommon := 0
		for _, r := range responses {
			if len(r) <= 50 {
				continue
			}
			prefixes[r[:50]]++
			if prefixes[r[:50]] > mostCommon {
				mostCommon = prefixes[r[:50]]
			}
		}
		if mostCommon*10 > len(responses) {
			return "strict", 0.8
		}
	}

	switch {
	case cv < 0.3:
		return "strict", 0.75
	case cv < 0.6:
		return "moderate", 0.7
	default:
		return "flexible", 0.75
	}
}

var summaryTemplates = map[[2]string]string{
	{"formal", "expert"}:        "a professional technical specialist who communicates precisely",
	{"formal", "intermediate"}:  "a knowledgeable professional who explains things clearly",
	{"formal", "layman"}:        "a polite assistant who keeps things simple",
	{"casual", "expert"}:        "a friendly tech expert who makes complex topics approachable",
	{"casual", "intermediate"}:  "a helpful buddy who knows their stuff",
	{"casual", "layman"}:        "a casual conversationalist who keeps it simple",
	{"neutral", "expert"}:       "a balanced technical assistant",
	{"neutral", "intermediate"}: "a helpful all-rounder",
	{"neutral", "layman"}:       "a straightforward helper",
}

func summarize(tone, verbosity, technicality, strictness string) string {
	base, ok := summaryTemplates[[2]string{tone, technicality}]
	if !ok {
		base = "a capable assistant"
	}

	switch verbosity {
	case "concise":
		base += " who gets straight to the point"
	case "verbose":
		base += " who provides thorough explanations"
	}
	switch strictness {
	case "strict":
		base += " with consistent, predictable responses"
	case "flexible":
		base += " who adapts to different questions"
	}

	return "Your dataset behaves like " + base + "."
}
