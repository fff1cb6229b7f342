package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage kousu configuration file values.",
	Long: `Create, edit, and display the kousu configuration file.

The configuration stores the portal URL and export prefix, the data
directory and file names, git sync settings, and the dashboard port.`,
	Example: `
  # Create default config in $HOME/.kousu.yaml
  kousu config create

  # Show active config and source file
  kousu config show

  # Open active config in editor (creates example if missing)
  kousu config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
