// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-researcher/internal/logging"
	"github.com/pdiddy/arxiv-researcher/internal/service"
)

const defaultHealthTimeout = 10 * time.Second

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the search service is reachable and healthy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		log, err := logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return err
		}
		defer log.Sync()

		timeout := cfg.Service.Timeout
		if timeout <= 0 {
			timeout = defaultHealthTimeout
		}
		ctx, cancel := context.WithTimeout(logging.WithContext(context.Background(), log), timeout)
		defer cancel()

		client := service.NewClient(cfg.Service)
		if err := client.Health(ctx); err != nil {
			if service.IsUnavailable(err) {
				return fmt.Errorf("search service at %s is unavailable: %w", client.BaseURL(), err)
			}
			return fmt.Errorf("search service at %s: %w", client.BaseURL(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy\n", client.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
