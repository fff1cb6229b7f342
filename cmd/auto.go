package cmd

import (
	"github.com/spf13/cobra"

	"kousu/config"
	"kousu/internal/log"
)

var autoRepoDir string

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run fetch, ingest, and sync as one unattended pipeline",
	Long: `Download the newest portal export, merge it into the durable work-hours
CSV, and push the result to the data repository. Intended for cron or a
scheduled task; progress goes to structured logs instead of plain output.`,
	Example: `
  # Typical crontab entry (weekday mornings)
  # 0 7 * * 1-5 cd ~/data-repo && kousu auto
  kousu auto
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		logger := log.New("auto")

		logger.Info("fetching portal export")
		path, err := runFetch(cmd.Context(), cfg)
		if err != nil {
			logger.Error("fetch failed", "error", err)
			return err
		}
		logger.Info("export downloaded", "path", path)

		result, source, err := runIngest(cfg, path, "work")
		if err != nil {
			logger.Error("ingest failed", "error", err)
			return err
		}
		logger.Info("ingest completed",
			"source", source,
			"rowsRead", result.RowsRead,
			"rowsAdded", result.RowsAdded,
			"rowsUpdated", result.RowsUpdated,
			"rowsTotal", result.RowsTotal,
		)

		committed, err := runSync(cmd.Context(), cfg, autoRepoDir)
		if err != nil {
			logger.Error("sync failed", "error", err)
			return err
		}
		logger.Info("sync completed", "committed", committed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autoCmd)

	autoCmd.Flags().StringVar(&autoRepoDir, "repo", ".", "Git repository holding the data directory")
}
