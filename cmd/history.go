package cmd

import (
	"fmt"
	"time"

	"vault-export/core/config"
	"vault-export/core/history"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists past export runs from the audit database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent export runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.History)
		if err != nil {
			return err
		}

		runs, err := store.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}

		for _, run := range runs {
			line := fmt.Sprintf("%s  %s  %6s  %4d items  %6dms  %s",
				run.StartedAt.Format(time.RFC3339),
				run.ID,
				run.Status,
				run.ItemCount,
				run.DurationMS,
				run.Output)
			if run.Error != "" {
				line += "  error: " + run.Error
			}
			fmt.Println(line)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list")

	RootCmd.AddCommand(historyCmd)
}
