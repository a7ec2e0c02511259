// Package cmd provides the CLI commands for ghcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghcost/core/catalog"
	"ghcost/internal/config"
	"ghcost/internal/logging"
)

// version is set at build time
var version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ghcost",
	Short: "Find the cheapest hosting plan for a team's usage",
	Long: `ghcost prices a team's monthly usage against every hosting plan and
recommends the cheapest plan that can legally support it.

Examples:
  ghcost estimate usage.yaml
  ghcost estimate --team-size 5 --runner linux:100:5 --format json
  ghcost plans
  ghcost features`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ghcost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog returns the configured tariff, or the embedded one
func loadCatalog() (*catalog.Catalog, error) {
	if path := config.Get().Tariff.Path; path != "" {
		logging.Debug("loading tariff override " + path)
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ghcost version %s\n", version)
	},
}
