// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-researcher/internal/search"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a result file saved with search --save",
	Long: `Show loads a result file written by "search --save" and prints it the same
way search printed it. No request is sent to the search service. The exit
status follows the saved outcome.`,
	Example: `  arxiv-researcher show results.yaml
  arxiv-researcher show --format csl results.yaml > refs.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	rf, err := search.ReadResultFile(args[0])
	if err != nil {
		return err
	}
	st, err := rf.State()
	if err != nil {
		return err
	}

	if err := writeView(cmd.OutOrStdout(), format, st); err != nil {
		return err
	}
	return searchError(st)
}

func init() {
	showCmd.Flags().String("format", "table", "output format: table, cards, json, or csl (CSL-YAML citations)")

	rootCmd.AddCommand(showCmd)
}
