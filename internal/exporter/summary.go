package exporter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"cricketcli/internal/config"
	apperrors "cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// SummarySheet is the worksheet holding the batting tables
const SummarySheet = "Summary"

// SummaryExporter writes the batting summary document of a match
type SummaryExporter struct {
	paths     *config.Paths
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewSummaryExporter creates a summary exporter writing under the reports directory
func NewSummaryExporter(paths *config.Paths, logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		paths:     paths,
		csvWriter: NewCSVWriter(paths, logger),
		logger:    logger.With(slog.String("component", "summary_exporter")),
	}
}

// Export writes match_<n>_summary.xlsx with one titled table per inning,
// plus one batting CSV per inning.
func (e *SummaryExporter) Export(ctx context.Context, summary *domain.MatchSummary) (*Artifact, error) {
	f, err := newWorkbook(SummarySheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.SetCellStr(SummarySheet, "A1", fmt.Sprintf("Match %d Batting Summary", summary.MatchNo)); err != nil {
		return nil, apperrors.NewRenderError("failed to write title", err)
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 24)
	_ = f.SetColWidth(SummarySheet, "B", "F", 12)

	artifact := &Artifact{}
	row := 3
	for _, inning := range summary.Innings {
		next, err := writeInningTable(f, row, inning)
		if err != nil {
			return nil, err
		}
		row = next

		headers, records := BattingRecords(inning.Lines)
		csvPath, err := e.csvWriter.WriteSimpleCSV(e.paths.BattingCSVPath(summary.MatchNo, inning.Inning), headers, records)
		if err != nil {
			return nil, apperrors.NewRenderError("failed to export batting csv", err).
				WithContext("inning", inning.Inning)
		}
		artifact.CSV = append(artifact.CSV, csvPath)
	}

	path := e.paths.SummaryPath(summary.MatchNo)
	if err := saveWorkbook(f, path); err != nil {
		return nil, err
	}
	artifact.Workbook = path

	e.logger.InfoContext(ctx, "Summary document written",
		slog.Int("match_no", summary.MatchNo),
		slog.Int("innings", len(summary.Innings)),
		slog.String("document", path))
	return artifact, nil
}

// writeInningTable writes the inning title, header and lines starting at row
// and returns the first free row after a spacer.
func writeInningTable(f *excelize.File, row int, inning domain.InningSummary) (int, error) {
	title, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellStr(SummarySheet, title, fmt.Sprintf("Inning %d", inning.Inning)); err != nil {
		return 0, apperrors.NewRenderError("failed to write inning title", err)
	}

	headerRow := row + 1
	rows := make([][]interface{}, len(inning.Lines))
	for i, line := range inning.Lines {
		rows[i] = []interface{}{line.Batter, line.Runs, line.Balls, line.Fours, line.Sixes, line.FormattedStrikeRate()}
	}
	headerCell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := writeTable(f, SummarySheet, headerCell, domain.BattingHeader, rows); err != nil {
		return 0, err
	}

	// A table needs at least one data row; an empty inning gets a blank one.
	lastRow := headerRow + max(len(rows), 1)
	lastCell, _ := excelize.CoordinatesToCellName(len(domain.BattingHeader), lastRow)
	if err := f.AddTable(SummarySheet, &excelize.Table{
		Range:     headerCell + ":" + lastCell,
		Name:      fmt.Sprintf("Inning%d", inning.Inning),
		StyleName: "TableStyleMedium2",
	}); err != nil {
		return 0, apperrors.NewRenderError("failed to add inning table", err).
			WithContext("inning", inning.Inning)
	}

	return lastRow + 2, nil
}
