package dataprocessing

import (
	"cricketcli/pkg/contracts/domain"
)

// Manhattan computes per-over runs and wickets for one (match, inning) over overs 1..maxOvers.
//
// Overs with no deliveries contribute zero, so Runs and Wickets always have
// maxOvers entries. Overs outside the range are dropped from both series.
// WicketOvers keeps the raw over of every wicket delivery in file order,
// including overs outside the range.
func Manhattan(deliveries []domain.Delivery, matchNo, inning, maxOvers int) domain.ManhattanSeries {
	if maxOvers < 0 {
		maxOvers = 0
	}

	subset := FilterInning(deliveries, matchNo, inning)
	runs := runsByOver(subset)
	wickets := wicketsByOver(subset)

	series := domain.ManhattanSeries{
		MatchNo:     matchNo,
		Inning:      inning,
		Overs:       make([]int, maxOvers),
		Runs:        make([]int, maxOvers),
		Wickets:     make([]int, maxOvers),
		WicketOvers: []int{},
	}

	for i := 0; i < maxOvers; i++ {
		over := i + 1
		series.Overs[i] = over
		series.Runs[i] = runs[over]
		series.Wickets[i] = wickets[over]
	}

	for _, d := range subset {
		if d.IsWicket() {
			series.WicketOvers = append(series.WicketOvers, d.Over)
		}
	}

	return series
}
