// Package modelcard renders deployment-ready markdown documentation for a
// fine-tuned model.
package modelcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/personality"
)

// Input collects everything a card is rendered from.
type Input struct {
	Model        catalog.Entry
	Task         models.TaskType
	NumExamples  int
	QualityScore float64
	Personality  *personality.Profile
	RiskLevel    models.Level
	GeneratedAt  time.Time
}

// strengthsByTask feeds the strengths section; every card also gets the
// shared closing line.
var strengthsByTask = map[models.TaskType][]string{
	models.TaskQA: {
		"Follows instructions accurately",
		"Provides helpful, relevant responses",
	},
	models.TaskGeneration: {
		"Follows instructions accurately",
		"Provides helpful, relevant responses",
	},
	models.TaskConversation: {
		"Natural conversational flow",
		"Maintains context across turns",
	},
	models.TaskClassify: {
		"Consistent classification behavior",
		"Clear category assignments",
	},
	models.TaskExtraction: {
		"Extracts fields consistently",
		"Produces structured, parseable output",
	},
}

// Generate renders the full markdown card. Deterministic for a fixed input.
func Generate(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fine-tuned %s\n\n", in.Model.Name)
	fmt.Fprintf(&b, "> A fine-tuned version of %s for %s tasks.\n\n", in.Model.Name, in.Task)
	fmt.Fprintf(&b, "**Generated on:** %s\n", in.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "**Base Model:** %s\n", in.Model.Name)
	fmt.Fprintf(&b, "**Task:** %s\n", in.Task)
	fmt.Fprintf(&b, "**Training Examples:** %d\n\n", in.NumExamples)

	b.WriteString("## Model Details\n\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| Base Model | %s |\n", in.Model.Name)
	fmt.Fprintf(&b, "| Parameters | %s |\n", in.Model.SizeClass)
	fmt.Fprintf(&b, "| Context Window | %d tokens |\n", in.Model.ContextWindow)
	b.WriteString("| Fine-tuning Method | LoRA (Low-Rank Adaptation) |\n")
	fmt.Fprintf(&b, "| Dataset Quality | %d%% |\n", int(in.QualityScore*100))
	fmt.Fprintf(&b, "| VRAM Required | %.0f GB |\n\n", in.Model.VRAMGB)

	if in.Personality != nil {
		b.WriteString("## Model Personality\n\n")
		b.WriteString(in.Personality.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString("## Strengths\n\n")
	for _, s := range strengthsByTask[in.Task] {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	b.WriteString("- Trained on quality-checked data\n\n")

	b.WriteString("## Limitations\n\n")
	b.WriteString("- May still hallucinate on unfamiliar topics\n")
	b.WriteString("- Knowledge limited to training data\n")
	b.WriteString("- Not suitable for high-stakes decisions without human review\n")
	if in.RiskLevel == models.LevelHigh {
		b.WriteString("- **Note:** training data shows elevated overfitting risk indicators\n")
	}
	if in.Model.IsGated {
		b.WriteString("- Base model is gated and requires access approval\n")
	}
	b.WriteString("\n")

	b.WriteString("## Usage\n\n")
	b.WriteString("```python\n")
	b.WriteString("from transformers import AutoModelForCausalLM, AutoTokenizer\n")
	b.WriteString("from peft import PeftModel\n\n")
	fmt.Fprintf(&b, "base_model = AutoModelForCausalLM.from_pretrained(%q)\n", in.Model.HFID)
	b.WriteString("model = PeftModel.from_pretrained(base_model, \"path/to/lora_adapter\")\n")
	fmt.Fprintf(&b, "tokenizer = AutoTokenizer.from_pretrained(%q)\n\n", in.Model.HFID)
	b.WriteString("messages = [{\"role\": \"user\", \"content\": \"Your prompt here\"}]\n")
	b.WriteString("inputs = tokenizer.apply_chat_template(messages, return_tensors=\"pt\")\n")
	b.WriteString("outputs = model.generate(inputs, max_new_tokens=256)\n")
	b.WriteString("print(tokenizer.decode(outputs[0]))\n")
	b.WriteString("```\n")

	return b.String()
}
