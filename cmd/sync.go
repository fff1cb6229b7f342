package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"kousu/config"
	"kousu/syncrepo"
)

var syncRepoDir string

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Commit and push the data CSVs to the data repository",
	Long: `Stage the durable data CSVs, commit them, and push to the configured
remote. A clean tree skips the commit and is not an error.`,
	Example: `
  # Push from the current directory
  kousu sync

  # Push from an explicit repository checkout
  kousu sync --repo ~/data-repo
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		committed, err := runSync(cmd.Context(), cfg, syncRepoDir)
		if err != nil {
			return err
		}

		if committed {
			fmt.Println("Data files committed and pushed.")
		} else {
			fmt.Println("No data changes to sync.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncRepoDir, "repo", ".", "Git repository holding the data directory")
}

func runSync(ctx context.Context, cfg *config.Config, repoDir string) (bool, error) {
	files := []string{
		filepath.Join(cfg.Data.Dir, cfg.Data.WorkFile),
		filepath.Join(cfg.Data.Dir, cfg.Data.InspectionFile),
		filepath.Join(cfg.Data.Dir, cfg.Data.EstimateFile),
	}
	return syncrepo.Sync(ctx, syncrepo.Options{
		RepoDir: repoDir,
		Files:   files,
		Remote:  cfg.Sync.Remote,
		Branch:  cfg.Sync.Branch,
		Message: cfg.Sync.Message,
	})
}
