package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kousu/config"
	"kousu/portal"
)

var (
	fetchHeadless bool
	fetchBrowser  string
	fetchTimeout  time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Drive the portal browser session and download the work-hours export",
	Long: `Log into the 楽々販売 portal, trigger the work-hours CSV export, and wait
for the download to finish.

Credentials come from RAKURAKU_ID and RAKURAKU_PASSWORD; a .env file in the
working directory is loaded first when present.`,
	Example: `
  # Download the newest export headlessly
  kousu fetch

  # Watch the browser do it
  kousu fetch --headless=false
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		path, err := runFetch(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Export downloaded: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchHeadless, "headless", true, "Run the browser headlessly")
	fetchCmd.Flags().StringVar(&fetchBrowser, "browser", "", "Browser binary override")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 3*time.Minute, "Overall portal session timeout")
}

func runFetch(ctx context.Context, cfg *config.Config) (string, error) {
	// Missing .env is fine when the variables are already exported.
	_ = godotenv.Load()

	creds, err := portal.LoadCredentials()
	if err != nil {
		return "", err
	}

	return portal.Export(ctx, creds, portal.ExportOptions{
		URL:          cfg.Portal.URL,
		DownloadDir:  cfg.Portal.DownloadDir,
		ExportPrefix: cfg.Portal.ExportPrefix,
		BrowserBin:   fetchBrowser,
		Headless:     fetchHeadless,
		Timeout:      fetchTimeout,
	})
}
