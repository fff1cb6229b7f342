package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kousu/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  kousu config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
			fmt.Println("Configuration:")
			fmt.Printf("portal.url: %s\n", cfg.Portal.URL)
			fmt.Printf("portal.export_prefix: %s\n", cfg.Portal.ExportPrefix)
			fmt.Printf("data.dir: %s\n", cfg.Data.Dir)
			fmt.Printf("data.work_file: %s\n", cfg.Data.WorkFile)
			fmt.Printf("data.inspection_file: %s\n", cfg.Data.InspectionFile)
			fmt.Printf("data.estimate_file: %s\n", cfg.Data.EstimateFile)
			fmt.Printf("sync.remote: %s\n", cfg.Sync.Remote)
			fmt.Printf("sync.branch: %s\n", cfg.Sync.Branch)
			fmt.Printf("sync.message: %s\n", cfg.Sync.Message)
			fmt.Printf("serve.port: %d\n", cfg.Serve.Port)
		}
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
