package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/dataset"
	"github.com/vedanthq/SLMGen/internal/display"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/models"
	"github.com/vedanthq/SLMGen/internal/personality"
	"github.com/vedanthq/SLMGen/internal/session"
)

// analysisOutput is the combined result of one local analysis pass.
type analysisOutput struct {
	Ingest      *engine.IngestResult        `json:"ingest"`
	Analysis    *engine.AnalysisResult      `json:"analysis"`
	Risk        models.RiskAssessment       `json:"risk"`
	Confidence  models.ConfidenceAssessment `json:"confidence"`
	Personality personality.Profile         `json:"personality"`
}

func newAnalyzeCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze <dataset.jsonl>",
		Short: "Analyze a JSONL training dataset",
		Long: `Analyze a JSONL training dataset.

Each line must be a JSON object of the form
{"messages": [{"role": "user", "content": "..."}, ...]} with at least one
user and one assistant message. Gzip-compressed files are detected
automatically. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _, err := runLocalAnalysis(cmd, args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			printAnalysis(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

// runLocalAnalysis ingests the file into a throwaway session and runs the
// read-only assessments concurrently. The returned engine still holds the
// session, so callers can run further queries against it.
func runLocalAnalysis(cmd *cobra.Command, path string) (*analysisOutput, *engine.Engine, error) {
	reader, closeFn, err := openDataset(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	defer closeFn()

	eng := engine.New(session.NewMemoryStore(1, time.Hour), catalog.Default())
	ingested, err := eng.Ingest(cmd.Context(), reader)
	if err != nil {
		if errors.Is(err, dataset.ErrInsufficientData) {
			return nil, nil, &DatasetError{Message: err.Error()}
		}
		return nil, nil, err
	}

	out := &analysisOutput{Ingest: ingested}
	g, _ := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		out.Analysis, err = eng.Analyze(ingested.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Risk, err = eng.AssessRisk(ingested.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Confidence, err = eng.AssessConfidence(ingested.SessionID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Personality, err = eng.Personality(ingested.SessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return out, eng, nil
}

func openDataset(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	return f, func() { f.Close() }, nil //nolint:errcheck
}

func printAnalysis(w io.Writer, out *analysisOutput) {
	stats := out.Ingest.Stats
	fmt.Fprintf(w, "Dataset: %d valid examples (%d invalid lines skipped)\n\n",
		out.Ingest.ValidCount, out.Ingest.InvalidCount)

	overview := display.NewTable("METRIC", "VALUE")
	overview.AddRow("Quality score", display.Percent(out.Analysis.Quality.Score))
	overview.AddRow("Total tokens", fmt.Sprintf("%d", stats.TotalTokens))
	overview.AddRow("Avg tokens/example", fmt.Sprintf("%d", stats.AvgTokensPerExample))
	overview.AddRow("Single-turn", fmt.Sprintf("%d%%", stats.SingleTurnPct))
	overview.AddRow("Multi-turn", fmt.Sprintf("%d%%", stats.MultiTurnPct))
	overview.AddRow("System prompts", display.YesNo(stats.HasSystemPrompts))
	overview.AddRow("Dominant language", out.Analysis.Characteristics.DominantLanguage)
	overview.AddRow("Multilingual", display.YesNo(out.Analysis.Characteristics.IsMultilingual))
	overview.AddRow("JSON output", display.YesNo(out.Analysis.Characteristics.LooksLikeJSON))
	overview.Render(w)
	fmt.Fprintln(w)

	if len(out.Analysis.Quality.Issues) > 0 {
		fmt.Fprintln(w, "Quality issues:")
		for _, issue := range out.Analysis.Quality.Issues {
			fmt.Fprintf(w, "  - %s\n", issue)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Risk: %s (%.2f)\n", strings.ToUpper(string(out.Risk.Level)), out.Risk.Score)
	for _, factor := range out.Risk.Factors {
		fmt.Fprintf(w, "  - %s\n", factor)
	}
	fmt.Fprintf(w, "  %s\n\n", out.Risk.Recommendation)

	fmt.Fprintf(w, "Confidence: %s (%.2f)\n", strings.ToUpper(string(out.Confidence.Level)), out.Confidence.Score)
	fmt.Fprintf(w, "  coverage %.2f, redundancy %.2f, diversity %.2f\n",
		out.Confidence.Coverage, out.Confidence.Redundancy, out.Confidence.Diversity)
	fmt.Fprintf(w, "  %s\n\n", out.Confidence.Explanation)

	fmt.Fprintf(w, "Personality: %s/%s/%s/%s\n",
		out.Personality.Tone, out.Personality.Verbosity,
		out.Personality.Technicality, out.Personality.Strictness)
	fmt.Fprintf(w, "  %s\n", out.Personality.Summary)
}
