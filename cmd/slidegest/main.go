// Package main is the entry point for the slidegest CLI: convert
// word-processing documents into slide decks and back from the command
// line, with every run recorded in the local manifest database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the slidegest CLI.
var rootCmd = &cobra.Command{
	Use:   "slidegest",
	Short: "Convert documents to slide decks and back",
	Long: `slidegest converts word-processing documents into slide decks, one
slide per chunk, carrying annotations into speaker notes with enough
metadata to reverse the conversion later.

Use convert for document-to-deck, reverse for deck-to-document, and
runs to inspect past conversions.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slidegest.yaml or ~/.config/slidegest/config.yaml)")
	rootCmd.PersistentFlags().String("manifest", "", "run manifest database path (default: slidegest-runs.db)")
	rootCmd.PersistentFlags().String("session", "", "session id to group runs under (default: new session)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slidegest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slidegest"))
		}
	}

	viper.SetDefault("manifest_db", "slidegest-runs.db")

	viper.SetEnvPrefix("SLIDEGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger. Output goes to stderr so command
// results on stdout stay pipeable.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// manifestPath resolves the manifest database location: flag, then
// config file / environment, then the default.
func manifestPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("manifest"); p != "" {
		return p
	}
	return viper.GetString("manifest_db")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
