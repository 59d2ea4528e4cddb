// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-researcher/internal/history"
	"github.com/pdiddy/arxiv-researcher/internal/logging"
	"github.com/pdiddy/arxiv-researcher/internal/metrics"
	"github.com/pdiddy/arxiv-researcher/internal/search"
	"github.com/pdiddy/arxiv-researcher/internal/service"
	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

const dataDirName = ".arxiv-researcher"

// dataDir is where the journal and the interactive log live by default.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, dataDirName)
}

func setDefaults() {
	viper.SetDefault("service.base_url", service.DefaultBaseURL)
	viper.SetDefault("service.timeout", 0)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.path", filepath.Join(dataDir(), "history.db"))
}

// loadConfig reads the merged flag, env, file, and default settings.
func loadConfig() types.Config {
	return types.Config{
		Service: types.ServiceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("service.timeout"),
				UserAgent: "arxiv-researcher/" + version,
			},
			BaseURL: viper.GetString("service.base_url"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		},
		History: types.HistoryConfig{
			Enabled: viper.GetBool("history.enabled"),
			Path:    viper.GetString("history.path"),
		},
		Metrics: types.MetricsConfig{
			Addr: viper.GetString("metrics.addr"),
		},
	}
}

// app holds the wired components for one command run.
type app struct {
	cfg      types.Config
	log      *zap.Logger
	client   *service.Client
	ctrl     *search.Controller
	journal  *history.Store
	registry *prometheus.Registry

	stopMetrics context.CancelFunc
	metricsDone chan error
}

// newApp builds the logger, client, controller, and optional journal and
// metrics endpoint. The returned context carries the logger.
func newApp(ctx context.Context, cfg types.Config) (context.Context, *app, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return ctx, nil, err
	}
	ctx = logging.WithContext(ctx, log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	a := &app{
		cfg:      cfg,
		log:      log,
		client:   service.NewClient(cfg.Service),
		registry: reg,
	}

	opts := []search.Option{
		search.WithTimeout(cfg.Service.Timeout),
		search.WithMetrics(metrics.NewRecorder(reg)),
		search.WithLogger(log),
	}

	// Bind first so a busy port fails the command before anything else opens.
	var metricsLn net.Listener
	if cfg.Metrics.Addr != "" {
		metricsLn, err = metrics.Listen(cfg.Metrics.Addr)
		if err != nil {
			log.Error("starting metrics endpoint", zap.String("addr", cfg.Metrics.Addr), zap.Error(err))
			_ = log.Sync()
			return ctx, nil, err
		}
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			if metricsLn != nil {
				metricsLn.Close()
			}
			_ = log.Sync()
			return ctx, nil, err
		}
		a.journal = store
		opts = append(opts, search.WithJournal(store))
	}

	a.ctrl = search.NewController(a.client, opts...)

	if metricsLn != nil {
		mctx, cancel := context.WithCancel(ctx)
		a.stopMetrics = cancel
		a.metricsDone = make(chan error, 1)
		go func() {
			err := metrics.Serve(mctx, metricsLn, reg, log)
			if err != nil {
				log.Error("metrics endpoint stopped", zap.Error(err))
			}
			a.metricsDone <- err
		}()
	}

	log.Debug("configured",
		zap.String("base_url", a.client.BaseURL()),
		zap.Duration("timeout", cfg.Service.Timeout),
		zap.Bool("history", cfg.History.Enabled),
		zap.String("metrics_addr", cfg.Metrics.Addr),
	)
	return ctx, a, nil
}

// Close stops the metrics endpoint, closes the journal, and flushes logs.
func (a *app) Close() error {
	var errs []error
	if a.stopMetrics != nil {
		a.stopMetrics()
		if err := <-a.metricsDone; err != nil {
			errs = append(errs, err)
		}
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.log.Sync()
	return errors.Join(errs...)
}
