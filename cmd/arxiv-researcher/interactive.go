// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-researcher/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive [question]",
	Aliases: []string{"tui", "ui"},
	Short:   "Open the interactive search UI",
	Long: `Interactive opens a terminal UI with a question box and a scrollable
results pane. Press enter to search; a new search may be started while one is
still running, and only the latest one is shown. A question given as
arguments pre-fills the box.

Logs go to ~/.arxiv-researcher/arxiv-researcher.log unless --log-file is set.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dataDir(), "arxiv-researcher.log")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	ctx, a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) > 0 {
		a.ctrl.SetQuery(strings.Join(args, " "))
	}
	return tui.Run(ctx, a.ctrl)
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
