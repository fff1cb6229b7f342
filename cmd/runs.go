package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kousu/config"
	"kousu/storage"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded ingest runs",
	Long:  `List the most recent ingest runs from the local audit database, newest first.`,
	Example: `
  # Last 20 runs
  kousu runs

  # Last 5 runs
  kousu runs --limit 5
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenRunStore(cfg.RunDBPath())
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No ingest runs recorded yet.")
			return nil
		}

		for _, run := range runs {
			fmt.Printf("#%d  %s  %s  read=%d added=%d updated=%d\n",
				run.ID,
				run.StartedAt.Format("2006-01-02 15:04"),
				run.SourceFile,
				run.RowsRead,
				run.RowsAdded,
				run.RowsUpdate,
			)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
}
