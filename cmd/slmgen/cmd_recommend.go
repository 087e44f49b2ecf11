package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/display"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/recommend"
	"github.com/vedanthq/SLMGen/internal/session"
)

func newRecommendCommand() *cobra.Command {
	var (
		taskFlag   string
		deployFlag string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <dataset.jsonl>",
		Short: "Recommend models for a dataset, task and deployment target",
		Long: `Recommend models for a dataset, task and deployment target.

When --task or --deploy is omitted and the session is interactive, an
intent wizard collects the missing values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, deploy, err := resolveIntent(cmd, taskFlag, deployFlag)
			if err != nil {
				return err
			}

			reader, closeFn, err := openDataset(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeFn()

			eng := engine.New(session.NewMemoryStore(1, time.Minute), catalog.Default())
			ingested, err := eng.Ingest(cmd.Context(), reader)
			if err != nil {
				if errors.Is(err, dataset.ErrInsufficientData) {
					return &DatasetError{Message: err.Error()}
				}
				return err
			}

			result, err := eng.Recommend(ingested.SessionID, task, deploy)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printRecommendation(cmd.OutOrStdout(), result, task, deploy)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskFlag, "task", "", "Task type (classify, qa, conversation, generation, extraction)")
	cmd.Flags().StringVar(&deployFlag, "deploy", "", "Deployment target (cloud, server, desktop, edge, mobile, browser)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

// resolveIntent fills in missing task/deploy values, interactively when the
// input is a terminal.
func resolveIntent(cmd *cobra.Command, task, deploy string) (string, string, error) {
	if task != "" && deploy != "" {
		return task, deploy, nil
	}
	if !stdinIsTerminal(cmd.InOrStdin()) {
		return "", "", fmt.Errorf("--task and --deploy are required in non-interactive mode")
	}
	return runIntentWizard(cmd.InOrStdin(), cmd.OutOrStdout(), task, deploy)
}

func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runIntentWizard collects missing intent values with a huh form.
func runIntentWizard(in io.Reader, out io.Writer, task, deploy string) (string, string, error) {
	var fields []huh.Field

	if task == "" {
		taskOptions := make([]huh.Option[string], 0, len(models.TaskTypes()))
		for _, t := range models.TaskTypes() {
			taskOptions = append(taskOptions, huh.NewOption(string(t), string(t)))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Task type").
			Description("What should the fine-tuned model do?").
			Options(taskOptions...).
			Value(&task))
	}
	if deploy == "" {
		deployOptions := make([]huh.Option[string], 0, len(models.DeploymentTargets()))
		for _, d := range models.DeploymentTargets() {
			deployOptions = append(deployOptions, huh.NewOption(string(d), string(d)))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Deployment target").
			Description("Where will the model run?").
			Options(deployOptions...).
			Value(&deploy))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).
		WithInput(in).
		WithOutput(out)
	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("intent wizard failed: %w", err)
	}
	return task, deploy, nil
}

func printRecommendation(w io.Writer, result *recommend.Result, task, deploy string) {
	fmt.Fprintf(w, "Recommendation for %s on %s\n\n", task, deploy)

	fmt.Fprintf(w, "Primary: %s (%s, score %.0f/100)\n",
		result.Primary.Model.Name, result.Primary.Model.SizeClass, result.Primary.Score.Overall)
	for _, reason := range result.Primary.Reasons {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
	fmt.Fprintf(w, "  Estimated fine-tuning time: ~%d min\n\n", result.Primary.EstimatedTrainingMinutes)

	if len(result.Alternatives) == 0 {
		return
	}
	table := display.NewTable("ALTERNATIVE", "SIZE", "SCORE", "TASK", "DEPLOY", "DATA")
	for _, alt := range result.Alternatives {
		table.AddRow(
			alt.Model.Name,
			alt.Model.SizeClass,
			fmt.Sprintf("%.0f", alt.Score.Overall),
			fmt.Sprintf("%.0f", alt.Score.TaskFit),
			fmt.Sprintf("%.0f", alt.Score.DeployFit),
			fmt.Sprintf("%.0f", alt.Score.DataFit),
		)
	}
	table.Render(w)
}
