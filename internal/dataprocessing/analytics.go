package dataprocessing

import (
	"sort"

	"cricketcli/pkg/contracts/domain"
)

// FilterInning returns the deliveries of one (match, inning) in their original order.
func FilterInning(deliveries []domain.Delivery, matchNo, inning int) []domain.Delivery {
	var out []domain.Delivery
	for _, d := range deliveries {
		if d.MatchNo == matchNo && d.Inning == inning {
			out = append(out, d)
		}
	}
	return out
}

// StampMatch sets MatchNo on every delivery and returns the same slice.
func StampMatch(deliveries []domain.Delivery, matchNo int) []domain.Delivery {
	for i := range deliveries {
		deliveries[i].MatchNo = matchNo
	}
	return deliveries
}

// runsByOver sums score per over
func runsByOver(deliveries []domain.Delivery) map[int]int {
	runs := make(map[int]int)
	for _, d := range deliveries {
		runs[d.Over] += d.Score
	}
	return runs
}

// wicketsByOver counts wicket deliveries per over
func wicketsByOver(deliveries []domain.Delivery) map[int]int {
	wickets := make(map[int]int)
	for _, d := range deliveries {
		if d.IsWicket() {
			wickets[d.Over]++
		}
	}
	return wickets
}

// sortedOvers returns the keys of m in ascending order
func sortedOvers(m map[int]int) []int {
	overs := make([]int, 0, len(m))
	for over := range m {
		overs = append(overs, over)
	}
	sort.Ints(overs)
	return overs
}

// sortByOverBall orders a copy of deliveries by (over, ball), keeping file order for ties
func sortByOverBall(deliveries []domain.Delivery) []domain.Delivery {
	sorted := make([]domain.Delivery, len(deliveries))
	copy(sorted, deliveries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Over != sorted[j].Over {
			return sorted[i].Over < sorted[j].Over
		}
		return sorted[i].Ball < sorted[j].Ball
	})
	return sorted
}
