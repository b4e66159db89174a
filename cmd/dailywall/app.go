package main

import (
	"context"

	"github.com/genricoloni/dailywall/internal/config"
	"github.com/genricoloni/dailywall/internal/desktop"
	"github.com/genricoloni/dailywall/internal/domain"
	"github.com/genricoloni/dailywall/internal/engine"
	"github.com/genricoloni/dailywall/internal/executor"
	"github.com/genricoloni/dailywall/internal/fetcher"
	"github.com/genricoloni/dailywall/internal/monitor"
	"github.com/genricoloni/dailywall/internal/processor"
	"github.com/genricoloni/dailywall/internal/provider"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// desktopOptions wires the logger, settings store and monitor inspector
func desktopOptions(cfg *config.AppConfig) fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			if cfg.Debug {
				return &fxevent.ZapLogger{Logger: log}
			}
			return fxevent.NopLogger
		}),

		fx.Supply(cfg),
		fx.Provide(
			func() (*zap.Logger, error) {
				return newLogger(cfg.Debug)
			},
			func(c *config.AppConfig) domain.Config {
				return c
			},
			fx.Annotate(desktop.NewExecRunner, fx.As(new(domain.CommandRunner))),
			fx.Annotate(desktop.NewGSettingsStore, fx.As(new(domain.SettingsStore))),
			newDisplayQuery,
			fx.Annotate(monitor.NewInspector, fx.As(new(domain.Inspector))),
		),
	)
}

// AppOptions wires the full fetch, composite and apply pipeline
func AppOptions(cfg *config.AppConfig) fx.Option {
	return fx.Options(
		desktopOptions(cfg),
		fx.Provide(
			desktop.NewPortalReader,
			func(r *desktop.PortalReader) executor.URIReader {
				return r
			},
			newHTTPFetcher,
			newProviders,
			newCompositor,
			newExecutor,
			engine.NewEngine,
		),
		fx.Invoke(registerHooks),
	)
}

func newDisplayQuery(logger *zap.Logger, cfg *config.AppConfig, runner domain.CommandRunner) (domain.DisplayQuery, error) {
	return monitor.NewDisplayQuery(logger, cfg.DisplayBackend, runner)
}

func newHTTPFetcher(logger *zap.Logger, cfg *config.AppConfig) *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(logger, cfg.HTTPTimeout.Duration)
}

func newProviders(logger *zap.Logger, f *fetcher.HTTPFetcher, cfg *config.AppConfig) ([]domain.Provider, error) {
	return provider.New(logger, f, cfg.Providers, provider.Options{
		NASAAPIKey: cfg.NASAAPIKey,
		PreferHD:   cfg.PreferHD,
	})
}

func newCompositor(logger *zap.Logger, cfg *config.AppConfig) domain.Compositor {
	return processor.NewCompositor(logger, cfg.JPEGQuality)
}

func newExecutor(logger *zap.Logger, store domain.SettingsStore, current executor.URIReader, cfg *config.AppConfig) (domain.Executor, error) {
	return executor.NewExecutor(logger, store, current, executor.Options{
		PictureOptions: cfg.PictureOptions,
		SetDarkURI:     cfg.SetDarkURI,
	})
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, cfg *config.AppConfig, portal *desktop.PortalReader) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("Configuration loaded", cfg.LogFields()...)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := portal.Close(); err != nil {
				logger.Warn("Failed to close session bus", zap.Error(err))
			}
			// Sync fails on terminals, nothing to report
			_ = logger.Sync()
			return nil
		},
	})
}
