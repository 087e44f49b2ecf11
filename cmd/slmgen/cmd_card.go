package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/modelcard"
)

func newCardCommand() *cobra.Command {
	var (
		modelID    string
		taskFlag   string
		deployFlag string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "card <dataset.jsonl>",
		Short: "Generate a markdown model card for a fine-tune",
		Long: `Generate a markdown model card for a fine-tune.

The card combines the dataset analysis (quality, risk, personality) with a
catalog entry. When --model is omitted the top recommendation for --task
and --deploy is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := models.ParseTaskType(taskFlag)
			if err != nil {
				return err
			}

			out, eng, err := runLocalAnalysis(cmd, args[0])
			if err != nil {
				return err
			}

			entry, err := resolveCardModel(eng, out, modelID, string(task), deployFlag)
			if err != nil {
				return err
			}

			card := modelcard.Generate(modelcard.Input{
				Model:        entry,
				Task:         task,
				NumExamples:  out.Ingest.Stats.TotalExamples,
				QualityScore: out.Analysis.Quality.Score,
				Personality:  &out.Personality,
				RiskLevel:    out.Risk.Level,
				GeneratedAt:  time.Now(),
			})

			if outputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), card)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(card), 0o644); err != nil {
				return fmt.Errorf("writing model card: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model card written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "", "Catalog model id (defaults to the top recommendation)")
	cmd.Flags().StringVar(&taskFlag, "task", "", "Task type the model is tuned for (required)")
	cmd.Flags().StringVar(&deployFlag, "deploy", "server", "Deployment target used when picking a model")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the card to a file instead of stdout")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

// resolveCardModel picks the card's catalog entry: an explicit --model id,
// or the primary recommendation for the dataset and intent.
func resolveCardModel(eng *engine.Engine, out *analysisOutput, modelID, task, deploy string) (catalog.Entry, error) {
	if modelID != "" {
		entry, ok := eng.Catalog().Find(modelID)
		if !ok {
			return catalog.Entry{}, fmt.Errorf("unknown model id %q, run 'slmgen catalog' to list models", modelID)
		}
		return entry, nil
	}

	result, err := eng.Recommend(out.Ingest.SessionID, task, deploy)
	if err != nil {
		return catalog.Entry{}, err
	}
	return result.Primary.Model, nil
}
