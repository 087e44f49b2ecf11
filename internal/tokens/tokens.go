package tokens

import "github.com/vedanthq/SLMGen/internal/models"

// charsPerToken is the heuristic used for token estimation. Real tokenizers
// vary by model and language; non-Latin scripts and code can be 2-3x denser.
// All counts produced here are approximations, not exact token counts.
const charsPerToken = 4

// Estimate returns an approximate token count for text. Non-empty text
// always counts as at least one token.
func Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	n := len(text) / charsPerToken
	if n < 1 {
		return 1
	}
	return n
}

// EstimateConversation sums the estimate across every message in a record.
func EstimateConversation(c models.Conversation) int {
	total := 0
	for _, m := range c.Messages {
		total += Estimate(m.Content)
	}
	return total
}
