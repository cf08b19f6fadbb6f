// Package commands implements the CLI commands for rentfinder.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "rentfinder",
	Short: "Finds rental listings worth inspecting",
	Long: `Rentfinder crawls a rental-listings site, extracts structured data
from each listing's detail page, infers features like air conditioning and
flooring from the description text, and prints a report.

Supply a filter file to only see listings that meet your criteria, and a
supplemental data file to correct fields the site gets wrong.

Examples:
  # Everything currently listed in a suburb
  rentfinder search -l collingwood-vic-3066

  # Listings with an inspection on a given day, filtered
  rentfinder search -l collingwood-vic-3066 -d 2026-08-29 -f filter.json

  # With manual corrections, as JSON for downstream tooling
  rentfinder search -l collingwood-vic-3066 -s overrides.json --format json`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.rentfinder.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".rentfinder")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("RENTFINDER")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
