// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-researcher/internal/history"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [match]",
	Short: "List past searches from the local journal",
	Long: `History lists searches recorded in the local journal, newest first.
Searches are only recorded when --history (or history.enabled) is set.

An optional match argument keeps searches whose question or rewritten
query contains it.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	out := cmd.OutOrStdout()

	if _, err := os.Stat(cfg.History.Path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "No searches recorded.")
		return nil
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	outcome, _ := cmd.Flags().GetString("outcome")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := history.ListOptions{
		Match: strings.Join(args, " "),
		Kind:  types.OutcomeKind(outcome),
		Limit: limit,
	}

	entries, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return history.FormatJSON(entries, out)
	}
	history.FormatTable(entries, out)
	return nil
}

func init() {
	historyCmd.Flags().String("outcome", "", "filter by outcome: success, empty, query_error, transport_error")
	historyCmd.Flags().Int("limit", 20, "maximum entries to list")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}
