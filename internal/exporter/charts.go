package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cricketcli/internal/config"
	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

const (
	chartWidth  = 720
	chartHeight = 400
)

// Artifact lists the files written for one rendered chart or document.
type Artifact struct {
	Workbook string
	CSV      []string
}

// ChartExporter renders chart workbooks. Each workbook holds the data table
// the chart reads from, and the raw series is also exported as CSV.
type ChartExporter struct {
	paths     *config.Paths
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewChartExporter creates a chart exporter writing under the reports directory
func NewChartExporter(paths *config.Paths, logger *slog.Logger) *ChartExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartExporter{
		paths:     paths,
		csvWriter: NewCSVWriter(paths, logger),
		logger:    logger.With(slog.String("component", "chart_exporter")),
	}
}

// RenderManhattan draws runs per over as columns, with wicket markers
// overlaid as a scatter series at y = 0 on every wicket over.
func (e *ChartExporter) RenderManhattan(ctx context.Context, s domain.ManhattanSeries) (*Artifact, error) {
	const sheet = "Manhattan"

	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers, records := ManhattanRecords(s)
	rows := make([][]interface{}, len(s.Overs))
	for i, over := range s.Overs {
		rows[i] = []interface{}{over, s.Runs[i], s.Wickets[i]}
	}
	if err := writeTable(f, sheet, "A1", headers, rows); err != nil {
		return nil, err
	}

	markers := make([][]interface{}, len(s.WicketOvers))
	for i, over := range s.WicketOvers {
		markers[i] = []interface{}{over, 0}
	}
	if err := writeTable(f, sheet, "E1", []string{"Wicket Over", "Marker"}, markers); err != nil {
		return nil, err
	}

	n := len(s.Overs)
	columns := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       sheet + "!$B$1",
			Categories: columnRef(sheet, "A", n),
			Values:     columnRef(sheet, "B", n),
		}},
		Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("Manhattan: Match %d, Inning %d", s.MatchNo, s.Inning)}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Over"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Runs"}}, MajorGridLines: true},
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
	}

	var combo []*excelize.Chart
	if k := len(s.WicketOvers); k > 0 {
		combo = append(combo, &excelize.Chart{
			Type: excelize.Scatter,
			Series: []excelize.ChartSeries{{
				Name:       "Wickets",
				Categories: columnRef(sheet, "E", k),
				Values:     columnRef(sheet, "F", k),
				Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
				Marker:     excelize.ChartMarker{Symbol: "x", Size: 9},
			}},
		})
	}

	if n > 0 {
		if err := f.AddChart(sheet, "H2", columns, combo...); err != nil {
			return nil, apperrors.NewRenderError("failed to add manhattan chart", err)
		}
	}

	return e.save(ctx, f, domain.ChartManhattan, s.MatchNo, s.Inning,
		e.paths.ManhattanChartPath(s.MatchNo, s.Inning), headers, records)
}

// RenderWorm draws the cumulative runs line over the overs present in the data
func (e *ChartExporter) RenderWorm(ctx context.Context, s domain.WormSeries) (*Artifact, error) {
	const sheet = "Worm"

	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers, records := WormRecords(s)
	rows := make([][]interface{}, len(s.Points))
	for i, p := range s.Points {
		rows[i] = []interface{}{p.Over, p.Runs}
	}
	if err := writeTable(f, sheet, "A1", headers, rows); err != nil {
		return nil, err
	}

	if n := len(s.Points); n > 0 {
		chart := &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{{
				Name:       sheet + "!$B$1",
				Categories: columnRef(sheet, "A", n),
				Values:     columnRef(sheet, "B", n),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
			}},
			Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("Worm: Match %d, Inning %d", s.MatchNo, s.Inning)}},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Over"}}},
			YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Cumulative Runs"}}, MajorGridLines: true},
			Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		}
		if err := f.AddChart(sheet, "D2", chart); err != nil {
			return nil, apperrors.NewRenderError("failed to add worm chart", err)
		}
	} else {
		e.logger.WarnContext(ctx, "No deliveries for worm chart",
			slog.Int("match_no", s.MatchNo),
			slog.Int("inning", s.Inning))
	}

	return e.save(ctx, f, domain.ChartWorm, s.MatchNo, s.Inning,
		e.paths.WormChartPath(s.MatchNo, s.Inning), headers, records)
}

// RenderRunRate draws the smoothed per-over run rate against the over of each
// delivery. When innings holds whole-innings rates for the same deliveries they
// are drawn as a second line, matched by (over, ball).
func (e *ChartExporter) RenderRunRate(ctx context.Context, s domain.RunRateSeries, innings []domain.RunRatePoint) (*Artifact, error) {
	const sheet = "RunRate"

	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type ballKey struct{ over, ball int }
	whole := make(map[ballKey]float64, len(innings))
	for _, p := range innings {
		if p.Inning == s.Inning {
			whole[ballKey{p.Over, p.Ball}] = p.Rate
		}
	}

	headers, records := RunRateRecords(s)
	rows := make([][]interface{}, len(s.Points))
	for i, p := range s.Points {
		row := []interface{}{p.Over, p.Ball, p.Rate}
		if rate, ok := whole[ballKey{p.Over, p.Ball}]; ok {
			row = append(row, rate)
		}
		rows[i] = row
	}
	if err := writeTable(f, sheet, "A1", []string{"Over", "Ball", "Smoothed Run Rate", "Innings Run Rate"}, rows); err != nil {
		return nil, err
	}

	if n := len(s.Points); n > 0 {
		series := []excelize.ChartSeries{{
			Name:       sheet + "!$C$1",
			Categories: columnRef(sheet, "A", n),
			Values:     columnRef(sheet, "C", n),
			Marker:     excelize.ChartMarker{Symbol: "circle", Size: 4},
		}}
		if len(whole) > 0 {
			series = append(series, excelize.ChartSeries{
				Name:       sheet + "!$D$1",
				Categories: columnRef(sheet, "A", n),
				Values:     columnRef(sheet, "D", n),
				Marker:     excelize.ChartMarker{Symbol: "none"},
			})
		}
		chart := &excelize.Chart{
			Type:      excelize.Line,
			Series:    series,
			Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("Run Rate: Match %d, Inning %d (window %d)", s.MatchNo, s.Inning, s.Window)}},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Over"}}, TickLabelSkip: 6},
			YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Runs per Over"}}, MajorGridLines: true},
			Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
		}
		if err := f.AddChart(sheet, "F2", chart); err != nil {
			return nil, apperrors.NewRenderError("failed to add run rate chart", err)
		}
	} else {
		e.logger.WarnContext(ctx, "No deliveries for run rate chart",
			slog.Int("match_no", s.MatchNo),
			slog.Int("inning", s.Inning))
	}

	return e.save(ctx, f, domain.ChartRunRate, s.MatchNo, s.Inning,
		e.paths.RunRateChartPath(s.MatchNo, s.Inning), headers, records)
}

// save writes the workbook and the series CSV next to it
func (e *ChartExporter) save(ctx context.Context, f *excelize.File, kind domain.ChartKind, matchNo, inning int,
	path string, headers []string, records [][]string) (*Artifact, error) {
	if err := saveWorkbook(f, path); err != nil {
		return nil, err
	}

	csvPath, err := e.csvWriter.WriteSimpleCSV(e.paths.SeriesCSVPath(matchNo, inning, string(kind)), headers, records)
	if err != nil {
		return nil, apperrors.NewRenderError("failed to export series csv", err).
			WithContext("chart", string(kind))
	}

	e.logger.InfoContext(ctx, "Chart rendered",
		slog.String("chart", string(kind)),
		slog.Int("match_no", matchNo),
		slog.Int("inning", inning),
		slog.String("workbook", path))

	return &Artifact{Workbook: path, CSV: []string{csvPath}}, nil
}

// newWorkbook creates a workbook whose only sheet is named sheet
func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, apperrors.NewRenderError("failed to name sheet", err)
	}
	return f, nil
}

// writeTable writes a header row at cell followed by rows
func writeTable(f *excelize.File, sheet, cell string, headers []string, rows [][]interface{}) error {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return apperrors.NewRenderError("invalid cell", err)
	}

	if err := f.SetSheetRow(sheet, cell, &headers); err != nil {
		return apperrors.NewRenderError("failed to write header", err)
	}
	for i := range rows {
		at, err := excelize.CoordinatesToCellName(col, row+1+i)
		if err != nil {
			return apperrors.NewRenderError("invalid cell", err)
		}
		if err := f.SetSheetRow(sheet, at, &rows[i]); err != nil {
			return apperrors.NewRenderError("failed to write row", err).WithContext("row", i+1)
		}
	}
	return nil
}

// columnRef returns an absolute reference to n data cells below the header of column col
func columnRef(sheet, col string, n int) string {
	return fmt.Sprintf("%s!$%s$2:$%s$%d", sheet, col, col, n+1)
}

func saveWorkbook(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewRenderError("failed to create output directory", err)
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewRenderError("failed to save workbook", err).WithContext("path", path)
	}
	return nil
}
