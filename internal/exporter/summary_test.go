package exporter

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cricketcli/internal/config"
	"cricketcli/pkg/contracts/domain"
)

func TestSummaryExporter_Export(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	e := NewSummaryExporter(paths, nil)

	summary := &domain.MatchSummary{
		MatchNo: 10,
		Innings: []domain.InningSummary{
			{
				Inning: 1,
				Totals: domain.InningTotals{Inning: 1, Runs: 11, Wickets: 1},
				Lines: []domain.BattingLine{
					{Batter: "A", Runs: 4, Balls: 2, Fours: 1},
					{Batter: "B", Runs: 7, Balls: 2, Sixes: 1},
				},
			},
			{
				Inning: 2,
				Totals: domain.InningTotals{Inning: 2, Runs: 6},
				Lines: []domain.BattingLine{
					{Batter: "C", Runs: 6, Balls: 1, Sixes: 1},
				},
			},
		},
	}

	artifact, err := e.Export(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, paths.SummaryPath(10), artifact.Workbook)

	f, err := excelize.OpenFile(artifact.Workbook)
	require.NoError(t, err)
	defer f.Close()

	tables, err := f.GetTables(SummarySheet)
	require.NoError(t, err)
	require.Len(t, tables, 2, "one table per inning")
	assert.Equal(t, "Inning1", tables[0].Name)
	assert.Equal(t, "A4:F6", tables[0].Range)
	assert.Equal(t, "Inning2", tables[1].Name)
	assert.Equal(t, "A9:F10", tables[1].Range)

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Match 10 Batting Summary"}, rows[0])
	assert.Equal(t, []string{"Inning 1"}, rows[2])
	assert.Equal(t, domain.BattingHeader, rows[3])
	assert.Equal(t, []string{"A", "4", "2", "1", "0", "200.00"}, rows[4])
	assert.Equal(t, []string{"B", "7", "2", "0", "1", "350.00"}, rows[5])
	assert.Equal(t, []string{"Inning 2"}, rows[7])
	assert.Equal(t, domain.BattingHeader, rows[8])
	assert.Equal(t, []string{"C", "6", "1", "0", "1", "600.00"}, rows[9])

	require.Len(t, artifact.CSV, 2)
	assert.Equal(t, paths.BattingCSVPath(10, 1), artifact.CSV[0])
	content, err := os.ReadFile(artifact.CSV[1])
	require.NoError(t, err)
	assert.Equal(t, "Batsman,Runs,Balls Faced,4s,6s,Strike Rate\nC,6,1,0,1,600.00\n", string(content))
}

func TestSummaryExporter_EmptyInning(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	e := NewSummaryExporter(paths, nil)

	summary := &domain.MatchSummary{
		MatchNo: 4,
		Innings: []domain.InningSummary{
			{Inning: 1, Lines: []domain.BattingLine{{Batter: "A", Runs: 1, Balls: 1}}},
			{Inning: 2, Lines: []domain.BattingLine{}},
		},
	}

	artifact, err := e.Export(context.Background(), summary)
	require.NoError(t, err)

	f, err := excelize.OpenFile(artifact.Workbook)
	require.NoError(t, err)
	defer f.Close()

	tables, err := f.GetTables(SummarySheet)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "A8:F9", tables[1].Range)
}
