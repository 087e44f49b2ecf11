package recommend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

func snapOf(n int) *dataset.Snapshot {
	return &dataset.Snapshot{TotalExamples: n}
}

func TestRecommend_QACloudEnglishDataset(t *testing.T) {
	cat := catalog.Default()
	result, err := Recommend(cat, snapOf(200), models.Characteristics{}, models.TaskQA, models.DeployCloud)
	require.NoError(t, err)

	// phi4 is the first declared entry tagged for both qa and cloud; the
	// qa+cloud entries tie on score so declaration order decides.
	require.Equal(t, "phi4", result.Primary.Model.ID)
	require.Equal(t, 50.0, result.Primary.Score.TaskFit)
	require.Equal(t, 30.0, result.Primary.Score.DeployFit)
	require.True(t, result.Primary.Model.SupportsTask(models.TaskQA))
	require.True(t, result.Primary.Model.SupportsDeploy(models.DeployCloud))

	require.LessOrEqual(t, len(result.Alternatives), 4)
	for _, alt := range result.Alternatives {
		require.GreaterOrEqual(t, result.Primary.Score.Overall, alt.Score.Overall)
	}
}

func TestRecommend_OverallIsExactSum(t *testing.T) {
	cat := catalog.Default()
	result, err := Recommend(cat, snapOf(300), models.Characteristics{IsMultiTurn: true}, models.TaskConversation, models.DeployDesktop)
	require.NoError(t, err)

	all := append([]Scored{result.Primary}, result.Alternatives...)
	for _, s := range all {
		require.Equal(t, s.Score.TaskFit+s.Score.DeployFit+s.Score.DataFit, s.Score.Overall, s.Model.ID)
	}
}

func TestRecommend_MinExamplesExcludesEntry(t *testing.T) {
	cat := catalog.Default()
	// mistral7b requires 200 examples and must not appear anywhere.
	result, err := Recommend(cat, snapOf(150), models.Characteristics{}, models.TaskGeneration, models.DeployCloud)
	require.NoError(t, err)

	require.NotEqual(t, "mistral7b", result.Primary.Model.ID)
	for _, alt := range result.Alternatives {
		require.NotEqual(t, "mistral7b", alt.Model.ID)
	}
}

func TestRecommend_NoEligibleModel(t *testing.T) {
	cat := catalog.Default()
	_, err := Recommend(cat, snapOf(40), models.Characteristics{}, models.TaskQA, models.DeployCloud)
	require.ErrorIs(t, err, ErrNoEligibleModel)
}

func TestRecommend_MultilingualDataPrefersMultilingualModel(t *testing.T) {
	cat := catalog.Default()
	chars := models.Characteristics{IsMultilingual: true}
	result, err := Recommend(cat, snapOf(500), chars, models.TaskExtraction, models.DeployCloud)
	require.NoError(t, err)

	require.Equal(t, "qwen25", result.Primary.Model.ID)
	require.Contains(t, result.Primary.Reasons, "Handles multilingual data well")
}

func TestTaskFit_Adjacency(t *testing.T) {
	cat := catalog.Default()
	qwen, _ := cat.Find("qwen25")
	llama, _ := cat.Find("llama32")
	smol, _ := cat.Find("smollm2")

	// classify: direct match 50, extraction is adjacent 25, neither is 0.
	require.Equal(t, 50.0, taskFit(smol, models.TaskClassify))
	require.Equal(t, 25.0, taskFit(qwen, models.TaskClassify))
	require.Equal(t, 0.0, taskFit(llama, models.TaskClassify))
}

func TestDeployFit_VRAMScaling(t *testing.T) {
	cat := catalog.Default()
	phi4, _ := cat.Find("phi4")
	deepseek, _ := cat.Find("deepseek_coder")
	tiny, _ := cat.Find("tinyllama")

	// Tagged target scores full points.
	require.Equal(t, 30.0, deployFit(phi4, models.DeployDesktop))
	// 8 GB against the 4 GB edge budget is 100% over: scaled to zero.
	require.Equal(t, 0.0, deployFit(phi4, models.DeployEdge))
	// Exactly on budget keeps the full base.
	require.Equal(t, 15.0, deployFit(deepseek, models.DeployMobile))
	// Under budget never exceeds the base.
	require.Equal(t, 15.0, deployFit(tiny, models.DeployDesktop))
}

func TestRecommend_ReasonsBetweenTwoAndFour(t *testing.T) {
	cat := catalog.Default()
	result, err := Recommend(cat, snapOf(100), models.Characteristics{}, models.TaskGeneration, models.DeployBrowser)
	require.NoError(t, err)

	all := append([]Scored{result.Primary}, result.Alternatives...)
	for _, s := range all {
		require.GreaterOrEqual(t, len(s.Reasons), 2, s.Model.ID)
		require.LessOrEqual(t, len(s.Reasons), 4, s.Model.ID)
	}
}

func TestRecommend_TrainingEstimate(t *testing.T) {
	cat := catalog.Default()
	result, err := Recommend(cat, snapOf(200), models.Characteristics{}, models.TaskQA, models.DeployCloud)
	require.NoError(t, err)

	// phi4 trains at 35 minutes per thousand examples.
	require.Equal(t, 7, result.Primary.EstimatedTrainingMinutes)
}

func TestRecommend_Deterministic(t *testing.T) {
	cat := catalog.Default()
	chars := models.Characteristics{IsMultiTurn: true, LooksLikeJSON: true}

	first, err := Recommend(cat, snapOf(250), chars, models.TaskQA, models.DeployServer)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Recommend(cat, snapOf(250), chars, models.TaskQA, models.DeployServer)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
