package models

// Level is a coarse three-bucket classification shared by the risk and
// confidence assessments.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// QualityReport is the output of the quality scorer. It is derived purely
// from a dataset snapshot and recomputed fresh on every call, so it is
// always consistent with the snapshot it was built from.
type QualityReport struct {
	Score               float64  `json:"score"`
	Issues              []string `json:"issues"`
	DuplicateCount      int      `json:"duplicate_count"`
	DuplicateExamples   []int    `json:"duplicate_examples,omitempty"`
	SingleTurnPct       int      `json:"single_turn_pct"`
	MultiTurnPct        int      `json:"multi_turn_pct"`
	HasSystemPrompts    bool     `json:"has_system_prompts"`
	AvgTokensPerExample int      `json:"avg_tokens_per_example"`
}

// Characteristics holds structural and linguistic traits used by the
// recommendation engine.
type Characteristics struct {
	IsMultilingual    bool   `json:"is_multilingual"`
	DominantLanguage  string `json:"dominant_language"`
	LooksLikeJSON     bool   `json:"looks_like_json"`
	IsMultiTurn       bool   `json:"is_multi_turn"`
	AvgResponseLength int    `json:"avg_response_length"`
}

// RiskAssessment estimates how likely a model trained on the dataset is to
// produce ungrounded output.
type RiskAssessment struct {
	Score          float64  `json:"score"`
	Level          Level    `json:"level"`
	Factors        []string `json:"factors"`
	Recommendation string   `json:"recommendation"`
}

// ConfidenceAssessment estimates how much the dataset can be trusted for
// training, combining coverage, redundancy and diversity sub-metrics.
type ConfidenceAssessment struct {
	Score       float64 `json:"score"`
	Level       Level   `json:"level"`
	Coverage    float64 `json:"coverage"`
	Redundancy  float64 `json:"redundancy"`
	Diversity   float64 `json:"diversity"`
	Explanation string  `json:"explanation"`
}

// ScoreBreakdown holds the three independent sub-scores of a recommendation.
// Overall is assigned exactly once as the sum of the three components and is
// never recomputed independently.
type ScoreBreakdown struct {
	TaskFit   float64 `json:"task_fit"`
	DeployFit float64 `json:"deploy_fit"`
	DataFit   float64 `json:"data_fit"`
	Overall   float64 `json:"overall"`
}

// NewScoreBreakdown builds a breakdown with Overall set to the exact sum of
// the three components.
func NewScoreBreakdown(taskFit, deployFit, dataFit float64) ScoreBreakdown {
	return ScoreBreakdown{
		TaskFit:   taskFit,
		DeployFit: deployFit,
		DataFit:   dataFit,
		Overall:   taskFit + deployFit + dataFit,
	}
}
