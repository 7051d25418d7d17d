package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"cricketcli/internal/config"
	"cricketcli/internal/dataprocessing"
	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/exporter"
	"cricketcli/internal/infrastructure"
	"cricketcli/internal/store"
	"cricketcli/pkg/contracts/domain"
)

// MatchStore is the relational copy of the delivery table
type MatchStore interface {
	dataprocessing.BattingSource
	ReplaceMatchData(ctx context.Context, matchNo int, deliveries []domain.Delivery) error
	DumpRows(ctx context.Context, matchNo int) (*store.Dump, error)
}

// Dependencies wires a MatchService. Store and Paths are required.
type Dependencies struct {
	Store   MatchStore
	Paths   *config.Paths
	Match   config.MatchConfig
	Tracer  trace.Tracer
	Metrics *infrastructure.Metrics
	Logger  *slog.Logger
}

// ManhattanResult is a rendered Manhattan chart
type ManhattanResult struct {
	Series   domain.ManhattanSeries
	Artifact *exporter.Artifact
}

// WormResult is a rendered worm chart
type WormResult struct {
	Series   domain.WormSeries
	Artifact *exporter.Artifact
}

// RunRateResult is a rendered run rate chart with both rate variants
type RunRateResult struct {
	Smoothed domain.RunRateSeries
	Innings  []domain.RunRatePoint
	Artifact *exporter.Artifact
}

// SummaryResult is a written batting summary document
type SummaryResult struct {
	Summary  *domain.MatchSummary
	Artifact *exporter.Artifact
}

// MatchService runs dashboard operations against the match loaded by Ingest
type MatchService struct {
	store      MatchStore
	paths      *config.Paths
	match      config.MatchConfig
	parser     *dataprocessing.DeliveryParser
	summarizer *dataprocessing.Summarizer
	charts     *exporter.ChartExporter
	summaries  *exporter.SummaryExporter
	tracer     trace.Tracer
	metrics    *infrastructure.Metrics
	logger     *slog.Logger

	matchNo    int
	deliveries []domain.Delivery
	loaded     bool
}

// NewMatchService creates a match service from deps
func NewMatchService(deps Dependencies) *MatchService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}
	match := deps.Match
	if match.MaxOvers <= 0 {
		match.MaxOvers = config.DefaultMaxOvers
	}
	if match.SmoothingWindow <= 0 {
		match.SmoothingWindow = config.DefaultSmoothingWindow
	}

	return &MatchService{
		store:      deps.Store,
		paths:      deps.Paths,
		match:      match,
		parser:     dataprocessing.NewDeliveryParser(logger),
		summarizer: dataprocessing.NewSummarizer(deps.Store, logger),
		charts:     exporter.NewChartExporter(deps.Paths, logger),
		summaries:  exporter.NewSummaryExporter(deps.Paths, logger),
		tracer:     tracer,
		metrics:    deps.Metrics,
		logger:     logger.With(slog.String("component", "match_service")),
	}
}

// MatchNo returns the match loaded by Ingest
func (s *MatchService) MatchNo() int {
	return s.matchNo
}

// Deliveries returns the in-memory delivery table loaded by Ingest
func (s *MatchService) Deliveries() []domain.Delivery {
	return s.deliveries
}

// Ingest parses inputFile, stamps every row with matchNo and replaces the
// stored table with it. The parsed table is kept for the rest of the session.
func (s *MatchService) Ingest(ctx context.Context, inputFile string, matchNo int) (int, error) {
	var rows int
	err := s.run(ctx, "ingest", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(
			attribute.String("input_file", inputFile),
			attribute.Int("match_no", matchNo))

		deliveries, err := s.parser.ParseFile(inputFile)
		if err != nil {
			return err
		}
		dataprocessing.StampMatch(deliveries, matchNo)

		if err := s.store.ReplaceMatchData(ctx, matchNo, deliveries); err != nil {
			return err
		}

		s.matchNo = matchNo
		s.deliveries = deliveries
		s.loaded = true
		rows = len(deliveries)

		span.SetAttributes(attribute.Int("rows", rows))
		s.metrics.RecordIngest(ctx, matchNo, rows)
		s.logger.InfoContext(ctx, "Match ingested",
			slog.Int("match_no", matchNo),
			slog.Int("rows", rows),
			slog.String("input_file", inputFile))
		return nil
	})
	return rows, err
}

// Manhattan renders per-over runs and wickets of an inning
func (s *MatchService) Manhattan(ctx context.Context, inning int) (*ManhattanResult, error) {
	var result *ManhattanResult
	err := s.runInning(ctx, "manhattan", inning, func(ctx context.Context) error {
		series := dataprocessing.Manhattan(s.deliveries, s.matchNo, inning, s.match.MaxOvers)
		artifact, err := s.charts.RenderManhattan(ctx, series)
		if err != nil {
			return err
		}
		s.metrics.RecordChart(ctx, string(domain.ChartManhattan), inning)
		result = &ManhattanResult{Series: series, Artifact: artifact}
		return nil
	})
	return result, err
}

// Worm renders the cumulative run progression of an inning
func (s *MatchService) Worm(ctx context.Context, inning int) (*WormResult, error) {
	var result *WormResult
	err := s.runInning(ctx, "worm", inning, func(ctx context.Context) error {
		series := dataprocessing.Worm(s.deliveries, s.matchNo, inning)
		artifact, err := s.charts.RenderWorm(ctx, series)
		if err != nil {
			return err
		}
		s.metrics.RecordChart(ctx, string(domain.ChartWorm), inning)
		result = &WormResult{Series: series, Artifact: artifact}
		return nil
	})
	return result, err
}

// RunRate renders the smoothed per-over run rate of an inning, with the
// whole-innings run rate of the same deliveries as a second line.
func (s *MatchService) RunRate(ctx context.Context, inning int) (*RunRateResult, error) {
	var result *RunRateResult
	err := s.runInning(ctx, "runrate", inning, func(ctx context.Context) error {
		smoothed := dataprocessing.SmoothedRunRate(s.deliveries, s.matchNo, inning, s.match.SmoothingWindow)
		innings := dataprocessing.InningsRunRate(s.deliveries)

		artifact, err := s.charts.RenderRunRate(ctx, smoothed, innings)
		if err != nil {
			return err
		}
		s.metrics.RecordChart(ctx, string(domain.ChartRunRate), inning)
		result = &RunRateResult{Smoothed: smoothed, Innings: innings, Artifact: artifact}
		return nil
	})
	return result, err
}

// Summary writes the batting summary document of the loaded match
func (s *MatchService) Summary(ctx context.Context) (*SummaryResult, error) {
	var result *SummaryResult
	err := s.run(ctx, "summary", func(ctx context.Context, span trace.Span) error {
		if !s.loaded {
			return apperrors.NewAppError(apperrors.ErrTypeNotFound, "match data", ErrNoMatchLoaded)
		}
		span.SetAttributes(attribute.Int("match_no", s.matchNo))

		summary, err := s.summarizer.Summarize(ctx, s.matchNo)
		if err != nil {
			return err
		}
		artifact, err := s.summaries.Export(ctx, summary)
		if err != nil {
			return err
		}
		s.metrics.RecordSummary(ctx, s.matchNo)
		result = &SummaryResult{Summary: summary, Artifact: artifact}
		return nil
	})
	return result, err
}

// Dump reads every stored row of the loaded match back from the store
func (s *MatchService) Dump(ctx context.Context) (*store.Dump, error) {
	var dump *store.Dump
	err := s.run(ctx, "dump", func(ctx context.Context, span trace.Span) error {
		if !s.loaded {
			return apperrors.NewAppError(apperrors.ErrTypeNotFound, "match data", ErrNoMatchLoaded)
		}
		var err error
		dump, err = s.store.DumpRows(ctx, s.matchNo)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("rows", len(dump.Rows)))
		return nil
	})
	return dump, err
}

// runInning validates the inning and requires loaded data before running fn
func (s *MatchService) runInning(ctx context.Context, operation string, inning int, fn func(ctx context.Context) error) error {
	return s.run(ctx, operation, func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(
			attribute.Int("match_no", s.matchNo),
			attribute.Int("inning", inning))

		if !s.loaded {
			return apperrors.NewAppError(apperrors.ErrTypeNotFound, "match data", ErrNoMatchLoaded)
		}
		if inning != 1 && inning != 2 {
			return apperrors.NewAppError(apperrors.ErrTypeValidation,
				fmt.Sprintf("inning must be 1 or 2, got %d", inning), ErrInvalidInning)
		}
		return fn(ctx)
	})
}

// run wraps fn in a span and records its duration and outcome
func (s *MatchService) run(ctx context.Context, operation string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := s.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("operation", operation)))
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	duration := time.Since(start)

	s.metrics.RecordOperation(ctx, operation, duration, err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			slog.String("operation", operation),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.DebugContext(ctx, "Operation completed",
		slog.String("operation", operation),
		slog.Duration("duration", duration))
	return nil
}
