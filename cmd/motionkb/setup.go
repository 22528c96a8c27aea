package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"motionkb/internal/app"
	"motionkb/internal/config"
	"motionkb/internal/logging"
	"motionkb/internal/metrics"
)

// loadConfig reads the --config file. The default file is optional; an
// explicitly named one must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path)
}

type session struct {
	app     *app.App
	config  *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

func startSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		Encoding:   cfg.Log.Encoding,
		OutputPath: cfg.Log.Output,
	})
	if err != nil {
		return nil, err
	}

	collector := metrics.New()
	a := app.New(app.Options{Config: cfg, Logger: logger, Metrics: collector})
	if err := a.Init(ctx); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return &session{app: a, config: cfg, logger: logger, metrics: collector}, nil
}

func (s *session) Close(ctx context.Context) {
	if err := s.app.Shutdown(ctx); err != nil {
		s.logger.Warn("shutdown failed", zap.Error(err))
	}
	_ = s.logger.Sync()
}
