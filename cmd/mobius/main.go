// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mobius CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mobius CLI.
var rootCmd = &cobra.Command{
	Use:   "mobius",
	Short: "Extract numeric time series from published mobility report charts",
	Long: `mobius turns the vector line charts embedded in published mobility reports
into structured numeric time series and cross-checks them against the headline
percentages the report text declares.

Each stage is a subcommand: svg and pdf list the available reports, download
fetches a country's files, proc extracts chart data to CSV, and knit combines
chart data with the report text and flags any disagreement between a chart's
last sample and its declared headline.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mobius.yaml or ~/.config/mobius/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mobius")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mobius"))
		}
	}

	viper.SetEnvPrefix("MOBIUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
