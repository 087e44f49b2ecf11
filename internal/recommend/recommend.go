// Package recommend ranks catalog entries against a dataset and an intent
// (task plus deployment target) and explains the ranking.
package recommend

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/models"
)

// ErrNoEligibleModel is returned when every catalog entry requires more
// examples than the dataset provides.
var ErrNoEligibleModel = errors.New("no eligible model: every catalog entry requires more examples than the dataset provides; add more examples and re-upload")

// maxAlternatives bounds the list returned alongside the primary pick.
const maxAlternatives = 4

// Sub-score points. Task fit dominates, then deployment, then data shape.
const (
	taskFitFull     = 50.0
	taskFitAdjacent = 25.0

	deployFitFull = 30.0
	deployFitBase = 15.0

	dataFitSizeFull = 8.0
	dataFitSizeHalf = 4.0
	dataFitSlice    = 6.0
	dataFitNeutral  = 3.0
)

// vramBudgets is the working VRAM assumed available per deployment target,
// in GB. Entries not tagged for a target are scored against these.
var vramBudgets = map[models.DeploymentTarget]float64{
	models.DeployCloud:   24,
	models.DeployServer:  16,
	models.DeployDesktop: 8,
	models.DeployEdge:    4,
	models.DeployMobile:  2,
	models.DeployBrowser: 1,
}

// adjacentTasks maps each task to tasks close enough to earn partial credit.
var adjacentTasks = map[models.TaskType][]models.TaskType{
	models.TaskQA:           {models.TaskConversation, models.TaskExtraction},
	models.TaskConversation: {models.TaskQA, models.TaskGeneration},
	models.TaskExtraction:   {models.TaskQA, models.TaskClassify},
	models.TaskClassify:     {models.TaskExtraction},
	models.TaskGeneration:   {models.TaskConversation},
}

// Scored is one ranked catalog entry with its score breakdown and the
// human-readable reasons behind it.
type Scored struct {
	Model                    catalog.Entry         `json:"model"`
	Score                    models.ScoreBreakdown `json:"score"`
	Reasons                  []string              `json:"reasons"`
	EstimatedTrainingMinutes int                   `json:"estimated_training_minutes"`
}

// Result is a full recommendation: the best entry plus up to four runners-up.
type Result struct {
	Primary      Scored   `json:"primary"`
	Alternatives []Scored `json:"alternatives"`
}

// Recommend scores every eligible catalog entry and returns the ranking.
// Eligibility is a hard gate: entries whose minimum example count exceeds
// the dataset size never appear, not even as alternatives. Ties are broken
// by catalog declaration order.
func Recommend(cat *catalog.Catalog, snap *dataset.Snapshot, chars models.Characteristics, task models.TaskType, deploy models.DeploymentTarget) (*Result, error) {
	var scored []Scored
	for _, entry := range cat.Entries() {
		if snap.TotalExamples < entry.MinExamples {
			continue
		}
		scored = append(scored, scoreEntry(entry, snap, chars, task, deploy))
	}

	if len(scored) == 0 {
		return nil, ErrNoEligibleModel
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Overall > scored[j].Score.Overall
	})

	result := &Result{Primary: scored[0]}
	if len(scored) > 1 {
		rest := scored[1:]
		if len(rest) > maxAlternatives {
			rest = rest[:maxAlternatives]
		}
		result.Alternatives = rest
	}

	slog.Debug("recommendation computed",
		"task", task, "deploy", deploy,
		"primary", result.Primary.Model.ID,
		"overall", result.Primary.Score.Overall,
		"alternatives", len(result.Alternatives))

	return result, nil
}

func scoreEntry(entry catalog.Entry, snap *dataset.Snapshot, chars models.Characteristics, task models.TaskType, deploy models.DeploymentTarget) Scored {
	breakdown := models.NewScoreBreakdown(
		taskFit(entry, task),
		deployFit(entry, deploy),
		dataFit(entry, snap, chars),
	)
	return Scored{
		Model:                    entry,
		Score:                    breakdown,
		Reasons:                  reasons(entry, breakdown, chars, task, deploy),
		EstimatedTrainingMinutes: trainingEstimate(entry, snap.TotalExamples),
	}
}

func taskFit(entry catalog.Entry, task models.TaskType) float64 {
	if entry.SupportsTask(task) {
		return taskFitFull
	}
	for _, adjacent := range adjacentTasks[task] {
		if entry.SupportsTask(adjacent) {
			return taskFitAdjacent
		}
	}
	return 0
}

// deployFit gives full points for a tagged target. Untagged entries score
// against the target's VRAM budget: within budget keeps the base, overage
// scales it toward zero.
func deployFit(entry catalog.Entry, deploy models.DeploymentTarget) float64 {
	if entry.SupportsDeploy(deploy) {
		return deployFitFull
	}

	budget := vramBudgets[deploy]
	overage := (entry.VRAMGB - budget) / budget
	scale := math.Min(1, math.Max(0, 1-overage))
	return deployFitBase * scale
}

// dataFit splits 20 points across three slices: size margin over the
// entry's minimum, multilingual match, conversation match. Slices with no
// signal in the dataset score neutral.
func dataFit(entry catalog.Entry, snap *dataset.Snapshot, chars models.Characteristics) float64 {
	fit := 0.0

	switch {
	case snap.TotalExamples >= 2*entry.MinExamples:
		fit += dataFitSizeFull
	case snap.TotalExamples >= entry.MinExamples:
		fit += dataFitSizeHalf
	}

	if chars.IsMultilingual {
		if entry.Multilingual {
			fit += dataFitSlice
		}
	} else {
		fit += dataFitNeutral
	}

	if chars.IsMultiTurn {
		if entry.SupportsTask(models.TaskConversation) {
			fit += dataFitSlice
		}
	} else {
		fit += dataFitNeutral
	}

	return fit
}

func trainingEstimate(entry catalog.Entry, examples int) int {
	minutes := float64(entry.TrainingTimePer1K) * float64(examples) / 1000
	if minutes < 1 {
		return 1
	}
	return int(math.Round(minutes))
}

// reasonRule turns one sub-score signal into a reason string. Rules are
// evaluated in order; between 2 and 4 reasons are always returned.
type reasonRule struct {
	applies func(catalog.Entry, models.ScoreBreakdown, models.Characteristics) bool
	text    func(catalog.Entry, models.TaskType, models.DeploymentTarget) string
}

var reasonRules = []reasonRule{
	{
		applies: func(_ catalog.Entry, s models.ScoreBreakdown, _ models.Characteristics) bool {
			return s.TaskFit >= taskFitFull
		},
		text: func(_ catalog.Entry, task models.TaskType, _ models.DeploymentTarget) string {
			return fmt.Sprintf("Strong match for %s tasks", task)
		},
	},
	{
		applies: func(_ catalog.Entry, s models.ScoreBreakdown, _ models.Characteristics) bool {
			return s.TaskFit >= taskFitAdjacent && s.TaskFit < taskFitFull
		},
		text: func(_ catalog.Entry, task models.TaskType, _ models.DeploymentTarget) string {
			return fmt.Sprintf("Handles tasks adjacent to %s", task)
		},
	},
	{
		applies: func(_ catalog.Entry, s models.ScoreBreakdown, _ models.Characteristics) bool {
			return s.DeployFit >= deployFitFull
		},
		text: func(_ catalog.Entry, _ models.TaskType, deploy models.DeploymentTarget) string {
			return fmt.Sprintf("Fits your %s deployment target", deploy)
		},
	},
	{
		applies: func(e catalog.Entry, _ models.ScoreBreakdown, c models.Characteristics) bool {
			return c.IsMultilingual && e.Multilingual
		},
		text: func(catalog.Entry, models.TaskType, models.DeploymentTarget) string {
			return "Handles multilingual data well"
		},
	},
	{
		applies: func(e catalog.Entry, _ models.ScoreBreakdown, c models.Characteristics) bool {
			return c.IsMultiTurn && e.SupportsTask(models.TaskConversation)
		},
		text: func(catalog.Entry, models.TaskType, models.DeploymentTarget) string {
			return "Suited to multi-turn conversation data"
		},
	},
	{
		applies: func(e catalog.Entry, _ models.ScoreBreakdown, c models.Characteristics) bool {
			return c.LooksLikeJSON && e.JSONOutput
		},
		text: func(catalog.Entry, models.TaskType, models.DeploymentTarget) string {
			return "Reliable at structured JSON output"
		},
	},
}

// fallbackReasons pad the list when few rules fire, so every result carries
// at least two reasons.
func fallbackReasons(entry catalog.Entry) []string {
	out := []string{
		fmt.Sprintf("Needs about %.0f GB of VRAM to fine-tune", entry.VRAMGB),
	}
	if !entry.IsGated {
		out = append(out, "Ungated model, no access approval needed")
	} else {
		out = append(out, fmt.Sprintf("%s context window", formatContext(entry.ContextWindow)))
	}
	return out
}

func formatContext(window int) string {
	if window >= 1000 {
		return fmt.Sprintf("%dK-token", window/1000)
	}
	return fmt.Sprintf("%d-token", window)
}

func reasons(entry catalog.Entry, breakdown models.ScoreBreakdown, chars models.Characteristics, task models.TaskType, deploy models.DeploymentTarget) []string {
	var out []string
	for _, rule := range reasonRules {
		if len(out) == 4 {
			break
		}
		if rule.applies(entry, breakdown, chars) {
			out = append(out, rule.text(entry, task, deploy))
		}
	}
	for _, fb := range fallbackReasons(entry) {
		if len(out) >= 2 {
			break
		}
		out = append(out, fb)
	}
	return out
}
