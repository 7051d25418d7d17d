package exporter

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cricketcli/internal/config"
	"cricketcli/pkg/contracts/domain"
)

func newChartExporter(t *testing.T) (*ChartExporter, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir())
	return NewChartExporter(paths, nil), paths
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestChartExporter_RenderManhattan(t *testing.T) {
	e, paths := newChartExporter(t)

	series := domain.ManhattanSeries{
		MatchNo:     10,
		Inning:      1,
		Overs:       make([]int, 20),
		Runs:        make([]int, 20),
		Wickets:     make([]int, 20),
		WicketOvers: []int{1},
	}
	for i := range series.Overs {
		series.Overs[i] = i + 1
	}
	series.Runs[0] = 4
	series.Wickets[0] = 1

	artifact, err := e.RenderManhattan(context.Background(), series)
	require.NoError(t, err)
	assert.Equal(t, paths.ManhattanChartPath(10, 1), artifact.Workbook)
	assert.True(t, strings.HasSuffix(artifact.Workbook, "match_10_inning_1_manhattan.xlsx"))

	rows := readSheet(t, artifact.Workbook, "Manhattan")
	require.Len(t, rows, 21)
	assert.Equal(t, []string{"Over", "Runs", "Wickets", "", "Wicket Over", "Marker"}, rows[0])
	assert.Equal(t, []string{"1", "4", "1", "", "1", "0"}, rows[1])
	assert.Equal(t, []string{"20", "0", "0"}, rows[20])

	require.Len(t, artifact.CSV, 1)
	content, err := os.ReadFile(artifact.CSV[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Len(t, lines, 21)
	assert.Equal(t, "1,4,1", lines[1])
}

func TestChartExporter_RenderManhattan_NoWickets(t *testing.T) {
	e, _ := newChartExporter(t)

	series := domain.ManhattanSeries{
		MatchNo: 3, Inning: 2,
		Overs: []int{1, 2}, Runs: []int{7, 9}, Wickets: []int{0, 0},
		WicketOvers: []int{},
	}

	artifact, err := e.RenderManhattan(context.Background(), series)
	require.NoError(t, err)

	rows := readSheet(t, artifact.Workbook, "Manhattan")
	assert.Equal(t, []string{"Over", "Runs", "Wickets", "", "Wicket Over", "Marker"}, rows[0])
	assert.Equal(t, []string{"2", "9", "0"}, rows[2])
}

func TestChartExporter_RenderWorm(t *testing.T) {
	e, paths := newChartExporter(t)

	series := domain.WormSeries{
		MatchNo: 10, Inning: 2,
		Points: []domain.OverTotal{{Over: 1, Runs: 5}, {Over: 3, Runs: 11}},
	}

	artifact, err := e.RenderWorm(context.Background(), series)
	require.NoError(t, err)
	assert.Equal(t, paths.WormChartPath(10, 2), artifact.Workbook)

	rows := readSheet(t, artifact.Workbook, "Worm")
	assert.Equal(t, [][]string{
		{"Over", "Cumulative Runs"},
		{"1", "5"},
		{"3", "11"},
	}, rows)
	assert.Equal(t, paths.SeriesCSVPath(10, 2, "worm"), artifact.CSV[0])
}

func TestChartExporter_RenderWorm_Empty(t *testing.T) {
	e, _ := newChartExporter(t)

	artifact, err := e.RenderWorm(context.Background(), domain.WormSeries{MatchNo: 1, Inning: 1})
	require.NoError(t, err)

	rows := readSheet(t, artifact.Workbook, "Worm")
	assert.Equal(t, [][]string{{"Over", "Cumulative Runs"}}, rows)
}

func TestChartExporter_RenderRunRate(t *testing.T) {
	e, paths := newChartExporter(t)

	series := domain.RunRateSeries{
		MatchNo: 10, Inning: 1, Window: 5,
		Points: []domain.RunRatePoint{
			{Inning: 1, Over: 1, Ball: 1, Rate: 18},
			{Inning: 1, Over: 1, Ball: 2, Rate: 12},
		},
	}
	innings := []domain.RunRatePoint{
		{Inning: 1, Over: 1, Ball: 1, Rate: 24},
		{Inning: 2, Over: 1, Ball: 1, Rate: 36},
		{Inning: 1, Over: 1, Ball: 2, Rate: 12},
	}

	artifact, err := e.RenderRunRate(context.Background(), series, innings)
	require.NoError(t, err)
	assert.Equal(t, paths.RunRateChartPath(10, 1), artifact.Workbook)

	rows := readSheet(t, artifact.Workbook, "RunRate")
	assert.Equal(t, [][]string{
		{"Over", "Ball", "Smoothed Run Rate", "Innings Run Rate"},
		{"1", "1", "18", "24"},
		{"1", "2", "12", "12"},
	}, rows)

	content, err := os.ReadFile(artifact.CSV[0])
	require.NoError(t, err)
	assert.Equal(t, "Over,Ball,Run Rate\n1,1,18.00\n1,2,12.00\n", string(content))
}

func TestChartExporter_RenderRunRate_WithoutInningsRate(t *testing.T) {
	e, _ := newChartExporter(t)

	series := domain.RunRateSeries{
		MatchNo: 10, Inning: 2, Window: 5,
		Points:  []domain.RunRatePoint{{Inning: 2, Over: 4, Ball: 1, Rate: 6}},
	}

	artifact, err := e.RenderRunRate(context.Background(), series, nil)
	require.NoError(t, err)

	rows := readSheet(t, artifact.Workbook, "RunRate")
	assert.Equal(t, []string{"4", "1", "6"}, rows[1])
}
