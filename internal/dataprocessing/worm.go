package dataprocessing

import (
	"cricketcli/pkg/contracts/domain"
)

// Worm computes the cumulative run progression of one (match, inning).
// Only overs present in the data appear, in ascending order; an over with no
// deliveries is omitted rather than repeated with an unchanged total.
func Worm(deliveries []domain.Delivery, matchNo, inning int) domain.WormSeries {
	runs := runsByOver(FilterInning(deliveries, matchNo, inning))

	series := domain.WormSeries{
		MatchNo: matchNo,
		Inning:  inning,
		Points:  make([]domain.OverTotal, 0, len(runs)),
	}

	total := 0
	for _, over := range sortedOvers(runs) {
		total += runs[over]
		series.Points = append(series.Points, domain.OverTotal{Over: over, Runs: total})
	}

	return series
}
