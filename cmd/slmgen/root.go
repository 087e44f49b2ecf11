package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slmgen",
		Short: "slmgen - dataset intelligence and model recommendation for small language models",
		Long: `slmgen inspects JSONL conversational training data and tells you what you
are about to train: quality issues, language and structure traits,
overfitting risk and training confidence. It then ranks a catalog of small
language models by how well each fits your task, deployment target and
data.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newRecommendCommand())
	cmd.AddCommand(newCatalogCommand())
	cmd.AddCommand(newCardCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
