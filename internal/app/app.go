package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/userdesk/internal/config"
	"github.com/five82/userdesk/internal/logging"
	"github.com/five82/userdesk/internal/prefs"
	"github.com/five82/userdesk/internal/ui"
)

// Options configure the userdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/userdesk/prefs.toml
	ProbeEvery int    // seconds; zero uses the configured probe interval
}

// Run boots the userdesk TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.ProbeEvery > 0 {
		cfg.ProbeInterval = time.Duration(opts.ProbeEvery) * time.Second
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	rt, err := start(ctx, cfg, runtimeOptions{Logger: logger})
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Info("userdesk started",
		zap.String("base_url", rt.client.BaseURL()),
		zap.Duration("probe_interval", cfg.ProbeInterval),
		zap.Bool("connected", rt.monitor.IsConnected()),
	)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     rt.store,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		LogFile:   cfg.LogFile,
		Logger:    logger.Named("ui"),
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("userdesk stopped")
	return nil
}
