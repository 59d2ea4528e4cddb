// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-researcher CLI.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-researcher CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-researcher",
	Short: "Search arXiv papers with natural-language research questions",
	Long: `arxiv-researcher sends a free-text research question to a search service
that rewrites it into a structured arXiv query and returns matching papers.

Run "arxiv-researcher interactive" for the terminal UI, or
"arxiv-researcher search <question>" for a one-shot search.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./arxiv-researcher.yaml or ~/.config/arxiv-researcher/arxiv-researcher.yaml)")
	pf.String("base-url", "", "search service base URL (default http://localhost:8000)")
	pf.Duration("timeout", 0, "per-search timeout, e.g. 30s (0 = no timeout)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file instead of the default")
	pf.Bool("history", false, "record settled searches in the local journal")
	pf.String("history-path", "", "journal database path")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	bindFlag("service.base_url", "base-url")
	bindFlag("service.timeout", "timeout")
	bindFlag("log.level", "log-level")
	bindFlag("log.file", "log-file")
	bindFlag("history.enabled", "history")
	bindFlag("history.path", "history-path")
	bindFlag("metrics.addr", "metrics-addr")

	setDefaults()
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-researcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-researcher"))
		}
	}

	viper.SetEnvPrefix("ARXIV_RESEARCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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
