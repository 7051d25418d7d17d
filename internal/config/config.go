package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Match     MatchConfig     `yaml:"match" envconfig:"MATCH"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration.
// Relative paths are resolved against BaseDir, which defaults to the executable directory.
type PathsConfig struct {
	BaseDir      string `yaml:"base_dir" envconfig:"BASE_DIR"`
	InputFile    string `yaml:"input_file" envconfig:"INPUT_FILE"`
	DatabaseFile string `yaml:"database_file" envconfig:"DATABASE_FILE"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// StoreConfig selects the relational store backing the delivery table
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver" envconfig:"DRIVER"`
	// DSN overrides the connection string. For sqlite it defaults to the database file.
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Table string `yaml:"table" envconfig:"TABLE"`
}

// MatchConfig contains match format settings
type MatchConfig struct {
	// Number preselects the match; 0 means ask on startup.
	Number          int `yaml:"number" envconfig:"NUMBER"`
	MaxOvers        int `yaml:"max_overs" envconfig:"MAX_OVERS"`
	SmoothingWindow int `yaml:"smoothing_window" envconfig:"SMOOTHING_WINDOW"`
}

// TelemetryConfig contains tracing and metrics export settings
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load loads configuration from defaults, an optional YAML file and environment variables.
// Environment variables take precedence over the file, which takes precedence over defaults.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file path. An empty path skips the file.
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// ResolvePaths builds the Paths for this configuration
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		exeDir, err := ExecutableDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get paths: %w", err)
		}
		base = exeDir
	}

	paths := NewPaths(base)
	if c.Paths.InputFile != "" {
		paths.InputFile = paths.resolve(c.Paths.InputFile)
	}
	if c.Paths.DatabaseFile != "" {
		paths.DatabaseFile = paths.resolve(c.Paths.DatabaseFile)
	}
	if c.Paths.OutputDir != "" {
		paths.OutputDir = paths.resolve(c.Paths.OutputDir)
	}
	if c.Logging.FilePath != "" {
		paths.LogFile = paths.resolve(c.Logging.FilePath)
	}
	if c.Telemetry.TraceFile != "" {
		paths.TraceFile = paths.resolve(c.Telemetry.TraceFile)
	}
	if c.Telemetry.MetricsFile != "" {
		paths.MetricsFile = paths.resolve(c.Telemetry.MetricsFile)
	}
	return paths, nil
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store dsn is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}

	if c.Store.Table == "" {
		c.Store.Table = DefaultTableName
	}

	if c.Match.Number < 0 {
		return fmt.Errorf("invalid match number: %d", c.Match.Number)
	}

	if c.Match.MaxOvers <= 0 {
		return fmt.Errorf("max overs must be positive, got %d", c.Match.MaxOvers)
	}

	if c.Match.SmoothingWindow <= 0 {
		return fmt.Errorf("smoothing window must be positive, got %d", c.Match.SmoothingWindow)
	}

	// Always JSON, always stdout plus file
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "both" && c.Logging.Output != "file" && c.Logging.Output != "console" {
		c.Logging.Output = "both"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(DefaultLogsDir, DefaultLogFile)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	if p, err := GetPaths(); err == nil {
		locations = append(locations, filepath.Join(p.BaseDir, "config.yaml"))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   "json",
			Output:   "both",
			FilePath: filepath.Join(DefaultLogsDir, DefaultLogFile),
		},
		Paths: PathsConfig{
			InputFile:    filepath.Join(DefaultDataDir, DefaultInputFile),
			DatabaseFile: filepath.Join(DefaultDataDir, DefaultDatabaseFile),
			OutputDir:    DefaultOutputDir,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			Table:  DefaultTableName,
		},
		Match: MatchConfig{
			MaxOvers:        DefaultMaxOvers,
			SmoothingWindow: DefaultSmoothingWindow,
		},
		Telemetry: TelemetryConfig{
			Enabled:     true,
			ServiceName: AppName,
			TraceFile:   filepath.Join(DefaultLogsDir, DefaultTraceFile),
			MetricsFile: filepath.Join(DefaultMetricsDir, DefaultMetricsFile),
		},
	}
}
