package personality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

func snapWith(responses []string) *dataset.Snapshot {
	recs := make([]models.Conversation, 0, len(responses))
	for i, r := range responses {
		recs = append(recs, models.Conversation{Messages: []models.Message{
			{Role: models.RoleUser, Content: fmt.Sprintf("question %d", i)},
			{Role: models.RoleAssistant, Content: r},
		}})
	}
	return &dataset.Snapshot{Records: recs, TotalExamples: len(recs)}
}

func TestDetect_TooFewResponses(t *testing.T) {
	profile := Detect(snapWith([]string{"one", "two", "three"}))

	require.Equal(t, "neutral", profile.Tone)
	require.Equal(t, "moderate", profile.Verbosity)
	require.Equal(t, "intermediate", profile.Technicality)
	require.Equal(t, 0.3, profile.Confidence)
	require.Contains(t, profile.Summary, "Not enough data")
}

func TestDetect_CasualConcise(t *testing.T) {
	responses := make([]string, 30)
	for i := range responses {
		responses[i] = fmt.Sprintf("yeah sure, cool okay. yep hey, number %d", i)
	}
	profile := Detect(snapWith(responses))

	require.Equal(t, "casual", profile.Tone)
	require.Equal(t, "concise", profile.Verbosity)
	require.Contains(t, profile.Summary, "Your dataset behaves like")
}

func TestDetect_TechnicalExpert(t *testing.T) {
	responses := make([]string, 30)
	for i := range responses {
		responses[i] = fmt.Sprintf(
			"deploy service %d with docker and kubernetes, then debug the sql layer and optimize the api", i)
	}
	profile := Detect(snapWith(responses))

	require.Equal(t, "expert", profile.Technicality)
}

func TestDetect_TemplatedResponsesAreStrict(t *testing.T) {
	responses := make([]string, 30)
	for i := range responses {
		responses[i] = fmt.Sprintf(
			"Thank you for contacting support. We have reviewed your request and the resolution is option %d.", i)
	}
	profile := Detect(snapWith(responses))

	require.Equal(t, "strict", profile.Strictness)
	require.Contains(t, profile.Summary, "consistent, predictable responses")
}

func TestDetect_Deterministic(t *testing.T) {
	responses := make([]string, 25)
	for i := range responses {
		responses[i] = fmt.Sprintf("the answer to your question is value %d, computed directly", i)
	}
	snap := snapWith(responses)

	first := Detect(snap)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Detect(snap))
	}
	require.GreaterOrEqual(t, first.Confidence, 0.0)
	require.LessOrEqual(t, first.Confidence, 1.0)
}
