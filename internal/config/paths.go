package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	BaseDir    string
	DataDir    string
	LogsDir    string
	OutputDir  string
	MetricsDir string

	InputFile    string
	DatabaseFile string
	LogFile      string
	TraceFile    string
	MetricsFile  string
}

// ExecutableDir returns the directory containing the running executable, with symlinks resolved
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return filepath.Dir(exe), nil
}

// GetPaths returns the application paths relative to the executable location.
// Paths never depend on the current working directory.
func GetPaths() (*Paths, error) {
	exeDir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}
	return NewPaths(exeDir), nil
}

// NewPaths lays out the default directory structure under base:
//
//	base/
//	  ├── data/
//	  │   ├── ipl.csv           (input deliveries)
//	  │   ├── cricket_data.db   (sqlite store)
//	  │   └── metrics/          (prometheus textfile)
//	  ├── logs/                 (application log and traces)
//	  └── reports/              (charts, summaries, csv exports)
func NewPaths(base string) *Paths {
	dataDir := filepath.Join(base, DefaultDataDir)
	logsDir := filepath.Join(base, DefaultLogsDir)
	metricsDir := filepath.Join(base, DefaultMetricsDir)

	return &Paths{
		BaseDir:    base,
		DataDir:    dataDir,
		LogsDir:    logsDir,
		OutputDir:  filepath.Join(base, DefaultOutputDir),
		MetricsDir: metricsDir,

		InputFile:    filepath.Join(dataDir, DefaultInputFile),
		DatabaseFile: filepath.Join(dataDir, DefaultDatabaseFile),
		LogFile:      filepath.Join(logsDir, DefaultLogFile),
		TraceFile:    filepath.Join(logsDir, DefaultTraceFile),
		MetricsFile:  filepath.Join(metricsDir, DefaultMetricsFile),
	}
}

// resolve makes a relative path absolute against the base directory
func (p *Paths) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.LogsDir,
		p.OutputDir,
		filepath.Dir(p.DatabaseFile),
		filepath.Dir(p.LogFile),
		filepath.Dir(p.TraceFile),
		filepath.Dir(p.MetricsFile),
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetReportPath returns the path for a generated report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// ManhattanChartPath returns the workbook path of a Manhattan chart, e.g. match_7_inning_1_manhattan.xlsx
func (p *Paths) ManhattanChartPath(matchNo, inning int) string {
	return p.chartPath(matchNo, inning, "manhattan", "xlsx")
}

// WormChartPath returns the workbook path of a worm chart
func (p *Paths) WormChartPath(matchNo, inning int) string {
	return p.chartPath(matchNo, inning, "worm", "xlsx")
}

// RunRateChartPath returns the workbook path of a run rate chart
func (p *Paths) RunRateChartPath(matchNo, inning int) string {
	return p.chartPath(matchNo, inning, "runrate", "xlsx")
}

// SeriesCSVPath returns the CSV export path of a chart's data series
func (p *Paths) SeriesCSVPath(matchNo, inning int, chart string) string {
	return p.chartPath(matchNo, inning, chart, "csv")
}

// SummaryPath returns the batting summary document path, e.g. match_7_summary.xlsx
func (p *Paths) SummaryPath(matchNo int) string {
	return p.GetReportPath(fmt.Sprintf("match_%d_summary.xlsx", matchNo))
}

// BattingCSVPath returns the per-inning batting CSV export path
func (p *Paths) BattingCSVPath(matchNo, inning int) string {
	return p.chartPath(matchNo, inning, "batting", "csv")
}

func (p *Paths) chartPath(matchNo, inning int, kind, ext string) string {
	return p.GetReportPath(fmt.Sprintf("match_%d_inning_%d_%s.%s", matchNo, inning, kind, ext))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("logs", p.LogsDir),
			slog.String("output", p.OutputDir),
		),
		slog.Group("files",
			slog.String("input", p.InputFile),
			slog.Bool("input_exists", FileExists(p.InputFile)),
			slog.String("database", p.DatabaseFile),
			slog.String("trace", p.TraceFile),
			slog.String("metrics", p.MetricsFile),
		))
}
