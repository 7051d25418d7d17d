package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"

	"cricketcli/pkg/contracts/domain"
)

// Innings lists the innings covered by a match summary, in document order.
var Innings = []int{1, 2}

// BattingSource answers the grouped queries a batting summary needs.
// The store implements it with SUM/COUNT queries grouped by batter.
type BattingSource interface {
	// InningTotals returns total runs and wickets of an inning.
	InningTotals(ctx context.Context, matchNo, inning int) (domain.InningTotals, error)
	// BattingStats returns one line per batter, wicket deliveries excluded.
	BattingStats(ctx context.Context, matchNo, inning int) ([]domain.BattingLine, error)
}

// Summarizer builds the batting summary of a match.
type Summarizer struct {
	source BattingSource
	logger *slog.Logger
}

// NewSummarizer creates a summarizer reading from source
func NewSummarizer(source BattingSource, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		source: source,
		logger: logger.With(slog.String("component", "summarizer")),
	}
}

// Summarize returns one batting table per inning.
// Inning totals are computed and logged but are not part of the rendered tables.
func (s *Summarizer) Summarize(ctx context.Context, matchNo int) (*domain.MatchSummary, error) {
	summary := &domain.MatchSummary{
		MatchNo: matchNo,
		Innings: make([]domain.InningSummary, 0, len(Innings)),
	}

	for _, inning := range Innings {
		totals, err := s.source.InningTotals(ctx, matchNo, inning)
		if err != nil {
			return nil, fmt.Errorf("inning %d totals: %w", inning, err)
		}

		lines, err := s.source.BattingStats(ctx, matchNo, inning)
		if err != nil {
			return nil, fmt.Errorf("inning %d batting: %w", inning, err)
		}

		s.logger.InfoContext(ctx, "Inning summarized",
			slog.Int("match_no", matchNo),
			slog.Int("inning", inning),
			slog.Int("total_runs", totals.Runs),
			slog.Int("total_wickets", totals.Wickets),
			slog.Int("batters", len(lines)))

		summary.Innings = append(summary.Innings, domain.InningSummary{
			Inning: inning,
			Totals: totals,
			Lines:  lines,
		})
	}

	return summary, nil
}
