package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cricketcli/internal/config"
	"cricketcli/internal/infrastructure"
	"cricketcli/internal/services"
	"cricketcli/internal/store"
	"cricketcli/internal/validation"
)

// ShutdownTimeout bounds the flush of traces and metrics on Stop
const ShutdownTimeout = 5 * time.Second

// Options override configuration from the command line
type Options struct {
	// ConfigFile replaces the config file search when set.
	ConfigFile string
	// InputFile replaces the configured delivery file when set.
	InputFile string
	// Console receives console log output; nil means stderr.
	Console io.Writer
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	Store         *store.Store
	Service       *services.MatchService
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics

	logSink *infrastructure.LogSink
}

// NewApplication loads configuration and wires logging, telemetry, the store
// and the match service. A configuration that fails to load is replaced by
// the defaults with a warning.
func NewApplication(ctx context.Context, opts Options) (*Application, error) {
	cfg, cfgErr := loadConfig(opts.ConfigFile)
	if cfgErr != nil {
		cfg = config.Default()
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if opts.InputFile != "" {
		paths.InputFile = opts.InputFile
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	sink, err := infrastructure.InitializeLogger(cfg.Logging, paths.LogFile, opts.Console)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := sink.Logger

	if cfgErr != nil {
		logger.WarnContext(ctx, "Configuration could not be loaded, using defaults",
			slog.String("error", cfgErr.Error()))
	}
	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))
	paths.LogPathResolution(logger)

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(paths.OutputDir); err != nil {
		_ = sink.Close()
		return nil, err
	}

	a := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		logSink: sink,
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry, paths), logger)
	if err != nil {
		logger.WarnContext(ctx, "OpenTelemetry unavailable, continuing without telemetry",
			slog.String("error", err.Error()))
		providers = infrastructure.NoopProviders(logger)
	}
	a.OTelProviders = providers

	metrics, err := infrastructure.NewMetrics(providers.Meter)
	if err != nil {
		a.Stop(ctx)
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	a.Metrics = metrics

	st, err := store.Open(ctx, cfg.Store, paths.DatabaseFile, logger)
	if err != nil {
		a.Stop(ctx)
		return nil, err
	}
	a.Store = st

	a.Service = services.NewMatchService(services.Dependencies{
		Store:   st,
		Paths:   paths,
		Match:   cfg.Match,
		Tracer:  providers.Tracer,
		Metrics: metrics,
		Logger:  logger,
	})

	return a, nil
}

func loadConfig(configFile string) (*config.Config, error) {
	if configFile != "" {
		if !config.FileExists(configFile) {
			return nil, fmt.Errorf("config file %s not found", configFile)
		}
		return config.LoadFile(configFile)
	}
	return config.Load()
}

// Stop closes the store, flushes telemetry and closes the log file
func (a *Application) Stop(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.ErrorContext(ctx, "Error closing store", slog.String("error", err.Error()))
		}
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if a.logSink != nil {
		_ = a.logSink.Close()
	}
}

// ResolveMatchNumber picks the match from the flag, then the configuration.
// It returns ok=false when neither sets one and the user must be asked.
func (a *Application) ResolveMatchNumber(flagValue int) (int, bool) {
	if flagValue >= 0 {
		return flagValue, true
	}
	if a.Config.Match.Number > 0 {
		return a.Config.Match.Number, true
	}
	return 0, false
}

// Ingest loads the delivery file into the store for matchNo
func (a *Application) Ingest(ctx context.Context, matchNo int) error {
	_, err := a.Service.Ingest(ctx, a.Paths.InputFile, matchNo)
	return err
}
