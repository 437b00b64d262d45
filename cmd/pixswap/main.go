// Package main is the entry point for the pixswap CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"pixswap/config"
)

// version is set at build time via ldflags.
var version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "pixswap",
	Short:   "Preset-driven image format conversion",
	Version: version,
	Long: `pixswap converts images between formats through a fixed table of
presets. It serves a single-page web UI (serve), converts directories in
batch (convert), and assembles images into PDFs (pdf) — the external
processing the web page's document presets point at.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pixswap.yaml or ~/.config/pixswap/pixswap.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
