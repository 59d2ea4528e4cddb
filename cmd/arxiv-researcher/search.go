// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-researcher/internal/render"
	"github.com/pdiddy/arxiv-researcher/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Run one search and print the results",
	Long: `Search sends a research question to the search service, waits for the
answer, and prints it. The service rewrites the question into an arXiv query;
the rewritten query is shown above the results.

The exit status is non-zero when the service could not build a query or the
request failed. A search that ran and found nothing exits zero.`,
	Example: `  arxiv-researcher search "recent advances in protein structure prediction"
  arxiv-researcher search --format json --save results.yaml "sparse attention"`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("query")
	if question == "" {
		question = strings.Join(args, " ")
	}
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("a research question is required: pass it as an argument or with --query")
	}

	format, _ := cmd.Flags().GetString("format")
	savePath, _ := cmd.Flags().GetString("save")
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, a, err := newApp(ctx, loadConfig())
	if err != nil {
		return err
	}
	defer a.Close()

	st, _ := a.ctrl.Search(ctx, question)

	if err := writeView(cmd.OutOrStdout(), format, st); err != nil {
		return err
	}

	if savePath != "" {
		if err := search.WriteResultFile(savePath, st); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved to %s\n", savePath)
	}

	return searchError(st)
}

func checkFormat(format string) error {
	switch format {
	case "table", "cards", "json", "csl":
		return nil
	}
	return fmt.Errorf("unsupported format %q: use table, cards, json, or csl", format)
}

func writeView(w io.Writer, format string, st search.State) error {
	vm := render.Project(st)
	switch format {
	case "csl":
		return render.WriteCSL(st, w)
	case "json":
		return render.WriteJSON(vm, w)
	case "cards":
		render.WriteCards(vm, w)
	default:
		render.WriteText(vm, w)
	}
	return nil
}

// searchError reports failed outcomes as a command error.
func searchError(st search.State) error {
	vm := render.Project(st)
	switch vm.Panel {
	case render.PanelQueryError:
		return fmt.Errorf("query generation failed")
	case render.PanelTransportError:
		return fmt.Errorf("search request failed")
	}
	return nil
}

func init() {
	searchCmd.Flags().String("query", "", "research question (alternative to positional arguments)")
	searchCmd.Flags().String("format", "table", "output format: table, cards, json, or csl (CSL-YAML citations)")
	searchCmd.Flags().String("save", "", "save the settled result to this YAML file")

	rootCmd.AddCommand(searchCmd)
}
