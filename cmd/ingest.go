package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kousu/config"
	"kousu/ingest"
	"kousu/storage"
)

var (
	ingestInput  string
	ingestTarget string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Merge a downloaded export into the durable data CSV",
	Long: `Upsert the rows of a portal export into the durable CSV: rows with a
known key replace the stored row, new keys append at the end, and untouched
rows keep their position.

Work rows key on 日付・作業者・作業種別; estimate rows key on 見積番号・明細.
Without --input, the newest matching file in the download directory is used.
Each run is recorded in the local audit database (see "kousu runs").`,
	Example: `
  # Merge the newest download into the work-hours CSV
  kousu ingest

  # Merge a specific file
  kousu ingest --input ~/Downloads/作業履歴：工数データ_20260828.csv

  # Merge an estimate export
  kousu ingest --target estimate --input ./見積データ_export.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		result, source, err := runIngest(cfg, ingestInput, ingestTarget)
		if err != nil {
			return err
		}

		fmt.Printf("Ingest completed. Source: %s, Rows read: %d, Rows added: %d, Rows updated: %d, Rows total: %d\n",
			source,
			result.RowsRead,
			result.RowsAdded,
			result.RowsUpdated,
			result.RowsTotal,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestInput, "input", "i", "", "Export file to merge (default: newest matching download)")
	ingestCmd.Flags().StringVar(&ingestTarget, "target", "work", "Merge target: work|estimate")
}

func runIngest(cfg *config.Config, input, target string) (*ingest.Result, string, error) {
	var (
		existingPath string
		keyColumns   []string
	)
	switch target {
	case "", "work":
		existingPath = cfg.WorkPath()
		keyColumns = ingest.WorkKeyColumns
	case "estimate":
		existingPath = cfg.EstimatePath()
		keyColumns = ingest.EstimateKeyColumns
	default:
		return nil, "", fmt.Errorf("invalid ingest target %q (supported: work|estimate)", target)
	}

	source := input
	if source == "" {
		downloadDir := cfg.Portal.DownloadDir
		if downloadDir == "" {
			resolved, err := ingest.DefaultDownloadDir()
			if err != nil {
				return nil, "", err
			}
			downloadDir = resolved
		}
		found, err := ingest.FindLatestExport(downloadDir, cfg.Portal.ExportPrefix)
		if err != nil {
			return nil, "", err
		}
		source = found
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create data dir: %w", err)
	}

	started := time.Now()
	result, err := ingest.Merge(existingPath, source, keyColumns)
	if err != nil {
		return nil, "", err
	}

	store, err := storage.OpenRunStore(cfg.RunDBPath())
	if err != nil {
		return nil, "", err
	}
	defer store.Close()

	if _, err := store.RecordRun(storage.Run{
		StartedAt:  started,
		SourceFile: source,
		RowsRead:   result.RowsRead,
		RowsAdded:  result.RowsAdded,
		RowsUpdate: result.RowsUpdated,
	}); err != nil {
		return nil, "", err
	}

	return result, source, nil
}
