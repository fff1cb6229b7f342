package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kousu/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kousu",
	Short: "Fetch, merge, and chart work-hour and sales-estimate CSVs.",
	Long: `
**********************************************
*                  KOUSU                     *
**********************************************

This CLI automates the 楽々販売 portal CSV export, merges exports into the
durable data CSVs, pushes updates to the data repository, and serves the
aggregation dashboard (fiscal-term, monthly, and range charts per category,
worker, and estimate).
`,
	Example: `
  # Create configuration file
  kousu config create

  # Drive the portal export and download the work-hours CSV
  kousu fetch

  # Merge the newest download into the durable CSV
  kousu ingest

  # Commit and push updated data CSVs
  kousu sync

  # Run fetch, ingest, and sync unattended
  kousu auto

  # Serve the dashboard
  kousu serve

  # Export a fiscal-term category pivot to Excel
  kousu export --view graph --mode term --term 2024 --format excel --output ./工数2024.xlsx
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.kousu.yaml, then ./.kousu.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kousu")
	}

	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: kousu config create")
	}
}
