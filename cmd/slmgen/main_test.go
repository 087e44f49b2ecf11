package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, lines int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb,
			`{"messages":[{"role":"user","content":"what is topic %d about"},{"role":"assistant","content":"topic %d covers a specific subject explained in detail here"}]}`+"\n",
			i, i)
	}
	path := filepath.Join(t.TempDir(), "dataset.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeDataset(t, 120)
	out, err := runCommand(t, "analyze", path)
	require.NoError(t, err)

	require.Contains(t, out, "120 valid examples")
	require.Contains(t, out, "Quality score")
	require.Contains(t, out, "Risk:")
	require.Contains(t, out, "Confidence:")
	require.Contains(t, out, "Personality:")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeDataset(t, 100)
	out, err := runCommand(t, "analyze", path, "--json")
	require.NoError(t, err)

	var result analysisOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, 100, result.Ingest.ValidCount)
	require.NotEmpty(t, result.Risk.Level)
	require.NotEmpty(t, result.Confidence.Level)
}

func TestAnalyzeCommand_InsufficientData(t *testing.T) {
	path := writeDataset(t, 20)
	_, err := runCommand(t, "analyze", path)
	require.Error(t, err)

	var datasetErr *DatasetError
	require.ErrorAs(t, err, &datasetErr)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "analyze", filepath.Join(t.TempDir(), "missing.jsonl"))
	require.Error(t, err)

	var datasetErr *DatasetError
	require.False(t, errors.As(err, &datasetErr), "missing file is a runtime error, not a dataset error")
}

func TestRecommendCommand(t *testing.T) {
	path := writeDataset(t, 200)
	out, err := runCommand(t, "recommend", path, "--task", "qa", "--deploy", "cloud")
	require.NoError(t, err)

	require.Contains(t, out, "Primary:")
	require.Contains(t, out, "ALTERNATIVE")
}

func TestRecommendCommand_JSON(t *testing.T) {
	path := writeDataset(t, 200)
	out, err := runCommand(t, "recommend", path, "--task", "qa", "--deploy", "cloud", "--json")
	require.NoError(t, err)

	var result struct {
		Primary struct {
			Model struct {
				ID string `json:"id"`
			} `json:"model"`
		} `json:"primary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, "phi4", result.Primary.Model.ID)
}

func TestRecommendCommand_NonInteractiveRequiresFlags(t *testing.T) {
	path := writeDataset(t, 100)
	_, err := runCommand(t, "recommend", path)
	require.ErrorContains(t, err, "--task and --deploy are required")
}

func TestRecommendCommand_UnknownTask(t *testing.T) {
	path := writeDataset(t, 100)
	_, err := runCommand(t, "recommend", path, "--task", "translate", "--deploy", "cloud")
	require.ErrorContains(t, err, "unknown task type")
}

func TestCatalogCommand(t *testing.T) {
	out, err := runCommand(t, "catalog")
	require.NoError(t, err)

	require.Contains(t, out, "phi4")
	require.Contains(t, out, "TinyLlama 1.1B")
	require.Contains(t, out, "MIN EXAMPLES")
}

func TestCatalogCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "catalog", "--json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 11)
}

func TestCardCommand(t *testing.T) {
	path := writeDataset(t, 150)
	outPath := filepath.Join(t.TempDir(), "CARD.md")

	out, err := runCommand(t, "card", path, "--task", "qa", "--model", "phi4", "-o", outPath)
	require.NoError(t, err)
	require.Contains(t, out, "Model card written")

	card, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(card), "# Fine-tuned Phi-4 Mini")
	require.Contains(t, string(card), "**Training Examples:** 150")
}

func TestCardCommand_PicksRecommendedModel(t *testing.T) {
	path := writeDataset(t, 200)
	out, err := runCommand(t, "card", path, "--task", "qa", "--deploy", "cloud")
	require.NoError(t, err)
	require.Contains(t, out, "# Fine-tuned Phi-4 Mini")
}

func TestCardCommand_UnknownModel(t *testing.T) {
	path := writeDataset(t, 100)
	_, err := runCommand(t, "card", path, "--task", "qa", "--model", "nope")
	require.ErrorContains(t, err, "unknown model id")
}
