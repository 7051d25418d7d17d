package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cricketcli/internal/config"
	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "cricket_data.db")
	s, err := Open(context.Background(), config.StoreConfig{Driver: config.DriverSQLite}, dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDeliveries() []domain.Delivery {
	return []domain.Delivery{
		{Seq: 1, Inning: 1, Over: 1, Ball: 1, Batter: "A", Score: 4, Outcome: domain.RunsOutcome(4)},
		{Seq: 2, Inning: 1, Over: 1, Ball: 2, Batter: "A", Score: 0, Outcome: domain.WicketOutcome()},
		{Seq: 3, Inning: 1, Over: 1, Ball: 3, Batter: "B", Score: 1, Outcome: domain.RunsOutcome(1)},
		{Seq: 4, Inning: 1, Over: 2, Ball: 1, Batter: "B", Score: 6, Outcome: domain.RunsOutcome(6)},
		{Seq: 5, Inning: 1, Over: 2, Ball: 2, Batter: "A", Score: 0, Outcome: domain.RunsOutcome(0)},
		{Seq: 6, Inning: 2, Over: 1, Ball: 1, Batter: "C", Score: 6, Outcome: domain.RunsOutcome(6)},
	}
}

func TestStore_ReplaceMatchData(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	deliveries := sampleDeliveries()
	require.NoError(t, s.ReplaceMatchData(ctx, 10, deliveries))

	for _, d := range deliveries {
		assert.Equal(t, 10, d.MatchNo, "rows are stamped in place")
	}

	stored, err := s.Deliveries(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, deliveries, stored)

	other, err := s.Deliveries(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_ReplaceTwiceKeepsOnlyLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceMatchData(ctx, 10, sampleDeliveries()))
	require.NoError(t, s.ReplaceMatchData(ctx, 11, sampleDeliveries()[:2]))

	old, err := s.Deliveries(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, old, "replace drops the previous table")

	latest, err := s.Deliveries(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, latest, 2)
}

func TestStore_InningTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceMatchData(ctx, 10, sampleDeliveries()))

	tests := []struct {
		inning  int
		runs    int
		wickets int
	}{
		{inning: 1, runs: 11, wickets: 1},
		{inning: 2, runs: 6, wickets: 0},
	}
	for _, tt := range tests {
		totals, err := s.InningTotals(ctx, 10, tt.inning)
		require.NoError(t, err)
		assert.Equal(t, tt.inning, totals.Inning)
		assert.Equal(t, tt.runs, totals.Runs)
		assert.Equal(t, tt.wickets, totals.Wickets)
	}

	empty, err := s.InningTotals(ctx, 99, 1)
	require.NoError(t, err)
	assert.Zero(t, empty.Runs)
	assert.Zero(t, empty.Wickets)
}

func TestStore_BattingStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceMatchData(ctx, 10, sampleDeliveries()))

	lines, err := s.BattingStats(ctx, 10, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// The wicket ball is excluded from A's balls faced
	assert.Equal(t, domain.BattingLine{Batter: "A", Runs: 4, Balls: 2, Fours: 1, Sixes: 0}, lines[0])
	assert.Equal(t, domain.BattingLine{Batter: "B", Runs: 7, Balls: 2, Fours: 0, Sixes: 1}, lines[1])
	assert.Equal(t, "200.00", lines[0].FormattedStrikeRate())

	none, err := s.BattingStats(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, none, 1)
	assert.Equal(t, "C", none[0].Batter)

	missing, err := s.BattingStats(ctx, 42, 1)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestStore_DumpRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceMatchData(ctx, 10, sampleDeliveries()))

	dump, err := s.DumpRows(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, Columns, dump.Columns)
	require.Len(t, dump.Rows, 6)
	assert.Equal(t, []string{"2", "10", "1", "1", "2", "A", "0", "w"}, dump.Rows[1])
}

func TestStore_QueryBeforeIngest(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Deliveries(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.StoreConfig
		errType apperrors.ErrorType
	}{
		{
			name:    "bad table name",
			cfg:     config.StoreConfig{Driver: config.DriverSQLite, Table: "cricket data; DROP"},
			errType: apperrors.ErrTypeConfig,
		},
		{
			name:    "unknown driver",
			cfg:     config.StoreConfig{Driver: "oracle"},
			errType: apperrors.ErrTypeStorage,
		},
		{
			name:    "bad postgres dsn",
			cfg:     config.StoreConfig{Driver: config.DriverPostgres, DSN: "postgres://%zz"},
			errType: apperrors.ErrTypeStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.cfg, filepath.Join(dir, "x.db"), nil)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestDialectRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE x = ? AND y = ?"

	assert.Equal(t, query, dialect{style: placeholderQuestion}.rebind(query))
	assert.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", dialect{style: placeholderDollar}.rebind(query))
}
