package config

// Application constants
const (
	// Application Info
	AppName    = "cricketcli"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. CRICKET_STORE_DRIVER.
	EnvPrefix = "CRICKET"

	// Store drivers
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultTableName = "cricket_data"

	// File Paths (relative to the base directory)
	DefaultDataDir      = "data"
	DefaultLogsDir      = "logs"
	DefaultOutputDir    = "reports"
	DefaultMetricsDir   = "data/metrics"
	DefaultInputFile    = "ipl.csv"
	DefaultDatabaseFile = "cricket_data.db"
	DefaultLogFile      = "app.log"
	DefaultTraceFile    = "trace.json"
	DefaultMetricsFile  = "cricketcli.prom"

	// Match format
	DefaultMaxOvers        = 20
	DefaultSmoothingWindow = 5

	// Log Settings
	DefaultLogLevel = "info"
)
