// Package exporter renders match statistics into files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with headers and optional UTF-8
// BOM for Excel compatibility.
//
// ChartExporter: Writes Manhattan, Worm and run rate charts as XLSX workbooks.
// Each workbook carries the data table its chart reads from, and the same
// series is exported as CSV next to it.
//
// SummaryExporter: Writes the batting summary document of a match, one titled
// table per inning, plus one batting CSV per inning.
//
// Example usage:
//
//	charts := exporter.NewChartExporter(paths, logger)
//	artifact, err := charts.RenderManhattan(ctx, series)
//
//	summaries := exporter.NewSummaryExporter(paths, logger)
//	artifact, err = summaries.Export(ctx, summary)
package exporter
