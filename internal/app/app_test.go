package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/shared/testutil"
)

func newTestApplication(t *testing.T, extraYAML string) (*Application, string) {
	t.Helper()
	dir := t.TempDir()
	configFile := testutil.WriteConfig(t, dir, extraYAML)
	input := testutil.WriteFile(t, dir, "match.csv", testutil.TwoInningsCSV)

	a, err := NewApplication(context.Background(), Options{
		ConfigFile: configFile,
		InputFile:  input,
		Console:    &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Stop(context.Background()) })
	return a, dir
}

func TestNewApplication(t *testing.T) {
	a, dir := newTestApplication(t, "")

	assert.Equal(t, dir, a.Paths.BaseDir)
	assert.Equal(t, filepath.Join(dir, "match.csv"), a.Paths.InputFile)
	assert.DirExists(t, a.Paths.OutputDir)
	assert.NotNil(t, a.Store)
	assert.NotNil(t, a.Service)
	assert.NotNil(t, a.Metrics)
	assert.Equal(t, "sqlite", a.Store.Driver())
}

func TestApplication_ResolveMatchNumber(t *testing.T) {
	a, _ := newTestApplication(t, "match:\n  number: 7\n")

	n, ok := a.ResolveMatchNumber(3)
	assert.True(t, ok)
	assert.Equal(t, 3, n, "flag wins over config")

	n, ok = a.ResolveMatchNumber(0)
	assert.True(t, ok)
	assert.Equal(t, 0, n, "zero from the flag is a valid match")

	n, ok = a.ResolveMatchNumber(-1)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	a.Config.Match.Number = 0
	_, ok = a.ResolveMatchNumber(-1)
	assert.False(t, ok)
}

func TestApplication_IngestAndSession(t *testing.T) {
	a, _ := newTestApplication(t, "")
	ctx := context.Background()

	require.NoError(t, a.Ingest(ctx, 12))

	input := strings.Join([]string{"1", "1", "2", "2", "3", "1", "4", "6", "5"}, "\n") + "\n"
	var out bytes.Buffer
	session := NewSession(a.Service, strings.NewReader(input), &out, a.Metrics, a.Logger)
	require.NoError(t, session.Run(ctx))

	text := out.String()
	assert.Contains(t, text, "Match 12 Dashboard")
	assert.Contains(t, text, "Inning 1: 11 runs, 1 wickets across 20 overs")
	assert.Contains(t, text, "Inning 2: 8 runs after over 1")
	assert.Contains(t, text, "Rohit")
	assert.Contains(t, text, "Warner")
	assert.Contains(t, text, "Exiting...")

	// dump rows carry the ingested match number
	assert.Contains(t, text, "1\t12\t1\t1\t1\tRohit\t4\t4")

	assert.FileExists(t, a.Paths.ManhattanChartPath(12, 1))
	assert.FileExists(t, a.Paths.WormChartPath(12, 2))
	assert.FileExists(t, a.Paths.RunRateChartPath(12, 1))
	assert.FileExists(t, a.Paths.SummaryPath(12))
}

func TestApplication_IngestMissingFile(t *testing.T) {
	a, dir := newTestApplication(t, "")
	a.Paths.InputFile = filepath.Join(dir, "absent.csv")

	err := a.Ingest(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound), "got %v", err)
	assert.Equal(t, apperrors.ExitFailure, apperrors.ExitCode(err))
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	configFile := testutil.WriteFile(t, dir, "config.yaml", "store:\n  driver: oracle\n")

	cfg, err := loadConfig(configFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)

	_, err = loadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
