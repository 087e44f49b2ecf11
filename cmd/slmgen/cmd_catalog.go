package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/display"
)

func newCatalogCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the candidate models",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.Default()

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Entries())
			}

			table := display.NewTable("ID", "NAME", "SIZE", "CONTEXT", "VRAM", "MIN EXAMPLES", "TASKS", "GATED")
			for _, e := range cat.Entries() {
				tasks := make([]string, len(e.GoodForTasks))
				for i, t := range e.GoodForTasks {
					tasks[i] = string(t)
				}
				table.AddRow(
					e.ID,
					e.Name,
					e.SizeClass,
					fmt.Sprintf("%d", e.ContextWindow),
					fmt.Sprintf("%.1f GB", e.VRAMGB),
					fmt.Sprintf("%d", e.MinExamples),
					strings.Join(tasks, ","),
					display.YesNo(e.IsGated),
				)
			}
			table.Render(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the catalog as JSON")
	return cmd
}
