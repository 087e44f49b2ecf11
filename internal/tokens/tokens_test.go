package tokens

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vedanthq/SLMGen/internal/models"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"three chars", "abc", 1},
		{"four chars", "abcd", 1},
		{"eight chars", "abcdefgh", 2},
		{"hundred chars", string(make([]byte, 100)), 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Estimate(tt.text))
		})
	}
}

func TestEstimateConversation(t *testing.T) {
	conv := models.Conversation{Messages: []models.Message{
		{Role: models.RoleUser, Content: "what is the capital of France"},     // 29 chars -> 7
		{Role: models.RoleAssistant, Content: "The capital of France is Paris"}, // 30 chars -> 7
	}}
	require.Equal(t, 14, EstimateConversation(conv))
}
